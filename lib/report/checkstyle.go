package report

import (
	"encoding/xml"
	"io"

	"github.com/vyPal/provsniff/lib/runner"
)

// Checkstyle writes the checkstyle XML dialect PHP_CodeSniffer emits, which
// most CI systems can annotate from.
type Checkstyle struct {
	Version string
}

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

func (c Checkstyle) Report(w io.Writer, results []runner.Result) error {
	out := checkstyleReport{Version: c.Version}
	for _, r := range results {
		f := checkstyleFile{Name: r.Path}
		if r.Err != nil {
			f.Errors = append(f.Errors, checkstyleError{
				Severity: "error",
				Message:  r.Err.Error(),
				Source:   "provsniff.internal",
			})
		}
		for _, d := range r.Diagnostics {
			f.Errors = append(f.Errors, checkstyleError{
				Line:     d.Line,
				Column:   d.Column,
				Severity: string(d.Severity),
				Message:  d.Message,
				Source:   source(d),
			})
		}
		if len(f.Errors) > 0 {
			out.Files = append(out.Files, f)
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", " ")
	if err := encoder.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
