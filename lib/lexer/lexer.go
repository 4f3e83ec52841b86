package phplex

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/provsniff/lib/token"
)

// Definition is the participle lexer definition for PHP source. Whitespace and
// comments are kept as tokens: rules that look ahead by fixed offsets count
// them.
var Definition = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "OpenTag", Pattern: `<\?php\b\s?|<\?=`, Action: lexer.Push("PHP")},
		{Name: "InlineHTML", Pattern: `[^<]+|<`},
	},
	"PHP": {
		{Name: "CloseTag", Pattern: `\?>\n?`, Action: lexer.Pop()},
		{Name: "DocComment", Pattern: `/\*\*[\s\S]*?\*/`},
		{Name: "Comment", Pattern: `/\*[\s\S]*?\*/|(?://|#)[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Variable", Pattern: `\$[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "SingleString", Pattern: `'(?:\\[\s\S]|[^'\\])*'`},
		{Name: "DoubleString", Pattern: `"(?:\\[\s\S]|[^"\\])*"`},
		{Name: "Number", Pattern: `0[xX][0-9a-fA-F_]+|0[bB][01_]+|\d[\d_]*(?:\.\d[\d_]*)?(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Operator", Pattern: `\?->|<=>|\*\*=|\.\.\.|<<=|>>=|===|!==|\?\?=|::|=>|->|\+\+|--|==|!=|<>|<=|>=|&&|\|\||\?\?|\+=|-=|\*=|/=|\.=|%=|&=|\|=|\^=|<<|>>|\*\*|[-+*/%=<>!&|^~.,;:?@(){}\[\]\\` + "`" + `$]`},
		{Name: "Unknown", Pattern: `[\s\S]`},
	},
})

var keywords = map[string]token.Kind{
	"extends":    token.KindExtends,
	"implements": token.KindImplements,
	"class":      token.KindClass,
	"interface":  token.KindInterface,
	"trait":      token.KindTrait,
	"function":   token.KindFunction,
	"public":     token.KindPublic,
	"protected":  token.KindProtected,
	"private":    token.KindPrivate,
	"array":      token.KindArray,
	"true":       token.KindTrue,
	"false":      token.KindFalse,
	"null":       token.KindNull,
	"return":     token.KindReturn,
	"new":        token.KindNew,
}

// reserved words without a dedicated kind
var reserved = map[string]bool{
	"abstract": true, "and": true, "as": true, "break": true, "callable": true,
	"case": true, "catch": true, "clone": true, "const": true, "continue": true,
	"declare": true, "default": true, "die": true, "do": true, "echo": true,
	"else": true, "elseif": true, "empty": true, "enddeclare": true,
	"endfor": true, "endforeach": true, "endif": true, "endswitch": true,
	"endwhile": true, "enum": true, "eval": true, "exit": true, "final": true,
	"finally": true, "fn": true, "for": true, "foreach": true, "global": true,
	"goto": true, "if": true, "include": true, "include_once": true,
	"instanceof": true, "insteadof": true, "isset": true, "list": true,
	"match": true, "namespace": true, "or": true, "print": true,
	"readonly": true, "require": true, "require_once": true, "static": true,
	"switch": true, "throw": true, "try": true, "unset": true, "use": true,
	"var": true, "while": true, "xor": true, "yield": true,
}

var punctuation = map[string]token.Kind{
	`\`:   token.KindNsSeparator,
	"::":  token.KindDoubleColon,
	"=>":  token.KindDoubleArrow,
	"->":  token.KindObjectOperator,
	"?->": token.KindObjectOperator,
	",":   token.KindComma,
	";":   token.KindSemicolon,
	"(":   token.KindOpenParen,
	")":   token.KindCloseParen,
	"{":   token.KindOpenCurly,
	"}":   token.KindCloseCurly,
	"[":   token.KindOpenSquare,
	"]":   token.KindCloseSquare,
}

var typeNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, typ := range Definition.Symbols() {
		names[typ] = name
	}
	return names
}()

// Lex tokenizes PHP source into a token stream.
func Lex(filename string, src []byte) (*token.Stream, error) {
	return LexString(filename, string(src))
}

// LexString tokenizes PHP source held in a string.
func LexString(filename, src string) (*token.Stream, error) {
	lex, err := Definition.LexString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", filename, err)
	}

	var toks []token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, fmt.Errorf("lexing %s: %w", filename, err)
		}
		if tok.EOF() {
			break
		}
		toks = append(toks, token.Token{
			Kind:   classify(typeNames[tok.Type], tok.Value),
			Text:   tok.Value,
			Index:  len(toks),
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}

	resolveContext(toks)
	return token.NewStream(toks), nil
}

func classify(typ, text string) token.Kind {
	switch typ {
	case "OpenTag":
		return token.KindOpenTag
	case "CloseTag":
		return token.KindCloseTag
	case "InlineHTML":
		return token.KindInlineHTML
	case "DocComment":
		return token.KindDocComment
	case "Comment":
		return token.KindComment
	case "Whitespace":
		return token.KindWhitespace
	case "Variable":
		return token.KindVariable
	case "SingleString":
		return token.KindConstantString
	case "DoubleString":
		if interpolates(text) {
			return token.KindDoubleQuotedString
		}
		return token.KindConstantString
	case "Number":
		return token.KindNumber
	case "Ident":
		lower := strings.ToLower(text)
		if k, ok := keywords[lower]; ok {
			return k
		}
		if reserved[lower] {
			return token.KindKeyword
		}
		return token.KindIdent
	case "Operator":
		if k, ok := punctuation[text]; ok {
			return k
		}
		return token.KindOperator
	}
	return token.KindUnknown
}

// interpolates reports whether a double quoted literal embeds variables.
func interpolates(text string) bool {
	for i := 1; i < len(text)-1; i++ {
		switch text[i] {
		case '\\':
			i++
		case '$':
			c := text[i+1]
			if c == '_' || c == '{' || c >= 0x80 || (c|0x20 >= 'a' && c|0x20 <= 'z') {
				return true
			}
		case '{':
			if text[i+1] == '$' {
				return true
			}
		}
	}
	return false
}

// resolveContext applies the kind fixes that depend on neighbouring tokens:
// member names after -> and :: are never keywords, [ ] pairs are split into
// short arrays and index access, and array is a literal only before (.
func resolveContext(toks []token.Token) {
	defer resolveArrayTypes(toks)

	var brackets []token.Kind
	prev := -1
	for i := range toks {
		t := &toks[i]

		if prev >= 0 && isMemberAccess(toks[prev].Kind) && isWord(t.Text) {
			t.Kind = token.KindIdent
		}

		switch t.Kind {
		case token.KindOpenSquare:
			if prev < 0 || !endsValue(toks[prev].Kind) {
				t.Kind = token.KindOpenShortArray
			}
			brackets = append(brackets, t.Kind)
		case token.KindCloseSquare:
			if n := len(brackets); n > 0 {
				if brackets[n-1] == token.KindOpenShortArray {
					t.Kind = token.KindCloseShortArray
				}
				brackets = brackets[:n-1]
			}
		}

		if !insignificant(t.Kind) {
			prev = i
		}
	}
}

// resolveArrayTypes turns array used as a type declaration or cast into a
// plain identifier, leaving KindArray for array( literals only.
func resolveArrayTypes(toks []token.Token) {
	for i := range toks {
		if toks[i].Kind != token.KindArray {
			continue
		}
		next := i + 1
		for next < len(toks) && insignificant(toks[next].Kind) {
			next++
		}
		if next >= len(toks) || toks[next].Kind != token.KindOpenParen {
			toks[i].Kind = token.KindIdent
		}
	}
}

func isMemberAccess(k token.Kind) bool {
	return k == token.KindObjectOperator || k == token.KindDoubleColon
}

func isWord(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return c == '_' || c >= 0x80 || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

func endsValue(k token.Kind) bool {
	switch k {
	case token.KindVariable, token.KindIdent, token.KindCloseParen,
		token.KindCloseSquare, token.KindCloseShortArray,
		token.KindConstantString, token.KindDoubleQuotedString:
		return true
	}
	return false
}

func insignificant(k token.Kind) bool {
	return k == token.KindWhitespace || k == token.KindComment || k == token.KindDocComment
}
