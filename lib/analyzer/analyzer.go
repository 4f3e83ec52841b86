package analyzer

import (
	phplex "github.com/vyPal/provsniff/lib/lexer"
	"github.com/vyPal/provsniff/lib/token"
)

// Rule is a single check. Register names the token kinds the rule wants to be
// called for; Process is then called once per matching token and returns the
// index listening resumes from. Returning f.Stream.Len() ends the rule's work
// on the file, returning ptr or less continues with the next token.
type Rule interface {
	Name() string
	Register() []token.Kind
	Process(f *File, ptr int) int
}

// Analyzer dispatches token occurrences to rules. An Analyzer and the rules it
// holds are not safe for concurrent use; give every worker its own.
type Analyzer struct {
	rules     []Rule
	listeners map[token.Kind][]int
	severity  map[string]Severity
}

func New(rules ...Rule) *Analyzer {
	a := &Analyzer{
		rules:     rules,
		listeners: make(map[token.Kind][]int),
		severity:  make(map[string]Severity),
	}
	for i, r := range rules {
		for _, k := range r.Register() {
			a.listeners[k] = append(a.listeners[k], i)
		}
	}
	return a
}

// SetSeverity overrides the severity of everything rule reports.
func (a *Analyzer) SetSeverity(rule string, sev Severity) {
	a.severity[rule] = sev
}

func (a *Analyzer) Rules() []Rule { return a.rules }

// Process runs every registered rule over stream.
func (a *Analyzer) Process(path string, stream *token.Stream) *File {
	f := newFile(path, stream, a.severity)

	// resume[i] is the first index rule i still listens at
	resume := make([]int, len(a.rules))
	for i := 0; i < stream.Len(); i++ {
		for _, ri := range a.listeners[stream.Kind(i)] {
			if i < resume[ri] {
				continue
			}
			f.rule = a.rules[ri].Name()
			next := a.rules[ri].Process(f, i)
			if next <= i {
				next = i + 1
			}
			resume[ri] = next
		}
	}
	f.rule = ""
	return f
}

// ProcessSource lexes src and runs the rules over it.
func (a *Analyzer) ProcessSource(path string, src []byte) (*File, error) {
	stream, err := phplex.Lex(path, src)
	if err != nil {
		return nil, err
	}
	return a.Process(path, stream), nil
}
