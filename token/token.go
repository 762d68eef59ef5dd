package token

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind is the symbol naming a class of tokens, e.g. "T_INT".
type Kind string

// EndOfStream is the kind a TokenStream emits once its input is exhausted,
// unless configured otherwise.
const EndOfStream Kind = "T_EOS"

// Valid reports whether k can be used as a token kind: it must be non-empty
// and free of whitespace.
func (k Kind) Valid() bool {
	if k == "" {
		return false
	}
	return strings.IndexFunc(string(k), unicode.IsSpace) < 0
}

func (k Kind) String() string {
	return string(k)
}

// Token is an immutable (kind, lexeme) pair. Tokens compare equal with ==.
type Token struct {
	Kind   Kind
	Lexeme string
}

func New(kind Kind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme}
}

func (t Token) Equal(other Token) bool {
	return t == other
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}
