// Package report renders lint results.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/runner"
)

var ErrUnknownFormat = errors.New("unknown report format")

var Formats = []string{"text", "json", "checkstyle"}

type Reporter interface {
	Report(w io.Writer, results []runner.Result) error
}

// For returns the reporter for format. version is written where a format
// records the producing tool.
func For(format, version string) (Reporter, error) {
	switch format {
	case "", "text":
		return Text{}, nil
	case "json":
		return JSON{}, nil
	case "checkstyle":
		return Checkstyle{Version: version}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	// Failed counts files that could not be read or lexed.
	Failed int `json:"failed"`
}

func Summarize(results []runner.Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Errors += analyzer.CountSeverity(r.Diagnostics, analyzer.SeverityError)
		s.Warnings += analyzer.CountSeverity(r.Diagnostics, analyzer.SeverityWarning)
	}
	return s
}

// Failing reports whether the run should exit unsuccessfully.
func (s Summary) Failing() bool {
	return s.Errors > 0 || s.Failed > 0
}

func source(d analyzer.Diagnostic) string {
	if d.Code == "" {
		return d.Rule
	}
	return d.Rule + "." + d.Code
}
