package providers

import (
	"strings"

	"github.com/vyPal/provsniff/lib/token"
)

// classRef is a class name spelled at one site of the stream.
type classRef struct {
	name string
	// width is how many tokens the spelling occupies
	width int
}

const (
	// Foo :: class
	classConstantWidth = 3
	// 'App\Foo'
	stringLiteralWidth = 1
)

// classNameAt recognises the two spellings of a class reference starting at
// index i: the Foo::class constant and a plain string literal. Class names are
// kept verbatim; the spellings are never unified.
func classNameAt(s *token.Stream, i int) (classRef, bool) {
	tok, ok := s.At(i)
	if !ok {
		return classRef{}, false
	}

	switch tok.Kind {
	case token.KindIdent:
		if s.Kind(i+1) != token.KindDoubleColon || !strings.EqualFold(s.Text(i+2), "class") {
			return classRef{}, false
		}
		return classRef{
			// the keyword is case-insensitive, the class name is kept as written
			name:  tok.Text + s.Text(i+1) + "class",
			width: classConstantWidth,
		}, true
	case token.KindConstantString:
		return classRef{name: unquote(tok.Text), width: stringLiteralWidth}, true
	}
	return classRef{}, false
}

// unquote strips one pair of matching surrounding quotes.
func unquote(text string) string {
	if len(text) >= 2 {
		if q := text[0]; (q == '\'' || q == '"') && text[len(text)-1] == q {
			return text[1 : len(text)-1]
		}
	}
	return text
}
