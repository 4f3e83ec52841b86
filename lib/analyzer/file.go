package analyzer

import (
	"sort"

	"github.com/vyPal/provsniff/lib/token"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding, anchored at a token.
type Diagnostic struct {
	Rule     string   `json:"rule"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Index    int      `json:"index"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
}

// File is the unit a rule is run against: one lexed source file plus the
// diagnostics collected for it.
type File struct {
	Path   string
	Stream *token.Stream

	rule        string
	severity    map[string]Severity
	diagnostics []Diagnostic
}

func newFile(path string, stream *token.Stream, severity map[string]Severity) *File {
	return &File{Path: path, Stream: stream, severity: severity}
}

// AddError records an error at token ptr on behalf of the running rule.
func (f *File) AddError(message string, ptr int, code string) {
	f.add(message, ptr, code, SeverityError)
}

// AddWarning records a warning at token ptr on behalf of the running rule.
func (f *File) AddWarning(message string, ptr int, code string) {
	f.add(message, ptr, code, SeverityWarning)
}

func (f *File) add(message string, ptr int, code string, sev Severity) {
	if override, ok := f.severity[f.rule]; ok {
		sev = override
	}
	d := Diagnostic{
		Rule:     f.rule,
		Code:     code,
		Message:  message,
		Severity: sev,
		Index:    ptr,
	}
	// anchors past the end keep their index but carry no position
	if tok, ok := f.Stream.At(ptr); ok {
		d.Line = tok.Line
		d.Column = tok.Column
	}
	f.diagnostics = append(f.diagnostics, d)
}

// Diagnostics returns the findings ordered by anchor index. Findings on the
// same token keep the order they were reported in.
func (f *File) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(f.diagnostics))
	copy(out, f.diagnostics)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ErrorCount counts diagnostics with error severity.
func (f *File) ErrorCount() int {
	return CountSeverity(f.diagnostics, SeverityError)
}

func CountSeverity(diags []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
