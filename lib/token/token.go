package token

import "fmt"

// Kind is the lexical category of a Token.
type Kind int

const (
	// KindNone is returned for lookups outside the stream.
	KindNone Kind = iota
	KindUnknown

	KindOpenTag
	KindCloseTag
	KindInlineHTML
	KindWhitespace
	KindComment
	KindDocComment

	KindVariable
	KindIdent
	KindConstantString
	KindDoubleQuotedString
	KindNumber

	KindExtends
	KindImplements
	KindClass
	KindInterface
	KindTrait
	KindFunction
	KindPublic
	KindProtected
	KindPrivate
	KindArray
	KindTrue
	KindFalse
	KindNull
	KindReturn
	KindNew
	KindKeyword

	KindNsSeparator
	KindDoubleColon
	KindDoubleArrow
	KindObjectOperator
	KindComma
	KindSemicolon
	KindOpenParen
	KindCloseParen
	KindOpenCurly
	KindCloseCurly
	KindOpenShortArray
	KindCloseShortArray
	KindOpenSquare
	KindCloseSquare
	KindOperator
)

var kindNames = map[Kind]string{
	KindNone:               "NONE",
	KindUnknown:            "UNKNOWN",
	KindOpenTag:            "OPEN_TAG",
	KindCloseTag:           "CLOSE_TAG",
	KindInlineHTML:         "INLINE_HTML",
	KindWhitespace:         "WHITESPACE",
	KindComment:            "COMMENT",
	KindDocComment:         "DOC_COMMENT",
	KindVariable:           "VARIABLE",
	KindIdent:              "STRING",
	KindConstantString:     "CONSTANT_ENCAPSED_STRING",
	KindDoubleQuotedString: "DOUBLE_QUOTED_STRING",
	KindNumber:             "NUMBER",
	KindExtends:            "EXTENDS",
	KindImplements:         "IMPLEMENTS",
	KindClass:              "CLASS",
	KindInterface:          "INTERFACE",
	KindTrait:              "TRAIT",
	KindFunction:           "FUNCTION",
	KindPublic:             "PUBLIC",
	KindProtected:          "PROTECTED",
	KindPrivate:            "PRIVATE",
	KindArray:              "ARRAY",
	KindTrue:               "TRUE",
	KindFalse:              "FALSE",
	KindNull:               "NULL",
	KindReturn:             "RETURN",
	KindNew:                "NEW",
	KindKeyword:            "KEYWORD",
	KindNsSeparator:        "NS_SEPARATOR",
	KindDoubleColon:        "DOUBLE_COLON",
	KindDoubleArrow:        "DOUBLE_ARROW",
	KindObjectOperator:     "OBJECT_OPERATOR",
	KindComma:              "COMMA",
	KindSemicolon:          "SEMICOLON",
	KindOpenParen:          "OPEN_PARENTHESIS",
	KindCloseParen:         "CLOSE_PARENTHESIS",
	KindOpenCurly:          "OPEN_CURLY_BRACKET",
	KindCloseCurly:         "CLOSE_CURLY_BRACKET",
	KindOpenShortArray:     "OPEN_SHORT_ARRAY",
	KindCloseShortArray:    "CLOSE_SHORT_ARRAY",
	KindOpenSquare:         "OPEN_SQUARE_BRACKET",
	KindCloseSquare:        "CLOSE_SQUARE_BRACKET",
	KindOperator:           "OPERATOR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText lets Kind appear by name in JSON token dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a single lexeme. Tokens are never mutated once lexed.
type Token struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Index  int    `json:"index"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Index)
}

// Stream is a read-only, random access view over the tokens of one file.
// Every lookup is bounds safe.
type Stream struct {
	tokens []Token
}

// NewStream wraps tokens, renumbering Index to match slice positions.
func NewStream(tokens []Token) *Stream {
	toks := make([]Token, len(tokens))
	for i, t := range tokens {
		t.Index = i
		toks[i] = t
	}
	return &Stream{tokens: toks}
}

func (s *Stream) Len() int { return len(s.tokens) }

// At returns the token at index i, or false when i is out of range.
func (s *Stream) At(i int) (Token, bool) {
	if i < 0 || i >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[i], true
}

// Kind returns the kind at index i, KindNone when out of range.
func (s *Stream) Kind(i int) Kind {
	t, _ := s.At(i)
	return t.Kind
}

// Text returns the raw text at index i, "" when out of range.
func (s *Stream) Text(i int) string {
	t, _ := s.At(i)
	return t.Text
}

// Is reports whether the token at i has the given kind and text.
func (s *Stream) Is(i int, kind Kind, text string) bool {
	t, ok := s.At(i)
	return ok && t.Kind == kind && t.Text == text
}

// FindNext returns the first index at or after from whose kind is one of kinds.
func (s *Stream) FindNext(from int, kinds ...Kind) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s.tokens); i++ {
		for _, k := range kinds {
			if s.tokens[i].Kind == k {
				return i, true
			}
		}
	}
	return -1, false
}

// Tokens returns a copy of the underlying tokens.
func (s *Stream) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}
