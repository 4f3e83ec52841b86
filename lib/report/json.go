package report

import (
	"encoding/json"
	"io"

	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/runner"
)

type JSON struct{}

type jsonFile struct {
	Path        string                `json:"path"`
	Diagnostics []analyzer.Diagnostic `json:"diagnostics"`
	Error       string                `json:"error,omitempty"`
}

type jsonReport struct {
	Files   []jsonFile `json:"files"`
	Summary Summary    `json:"summary"`
}

func (JSON) Report(w io.Writer, results []runner.Result) error {
	out := jsonReport{Files: make([]jsonFile, 0, len(results)), Summary: Summarize(results)}
	for _, r := range results {
		f := jsonFile{Path: r.Path, Diagnostics: r.Diagnostics}
		if f.Diagnostics == nil {
			f.Diagnostics = []analyzer.Diagnostic{}
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		out.Files = append(out.Files, f)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
