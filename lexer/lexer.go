// Package lexer turns source text into tokens. A TokenStream drives a stack
// of lexical modes (States) over its input one line at a time; a Scanner adds
// bounded lookahead on top of any Tokenizer.
package lexer

import "PrattKit/token"

// Shifter is the side channel a State uses while recognizing a token.
type Shifter interface {
	// Skip discards the token currently being produced.
	Skip()
	// Push suspends the active mode and activates state.
	Push(state State) error
	// Pop resumes the most recently suspended mode.
	Pop() error
}

// State is a lexical mode. Token tries to recognize one token in buffer
// starting at offset; ok is false when nothing matches.
type State interface {
	Token(sh Shifter, buffer string, offset int) (tok token.Token, ok bool, err error)
}

// StateFunc adapts a function to the State interface.
type StateFunc func(sh Shifter, buffer string, offset int) (token.Token, bool, error)

func (f StateFunc) Token(sh Shifter, buffer string, offset int) (token.Token, bool, error) {
	return f(sh, buffer, offset)
}

// Tokenizer produces a monotonic sequence of tokens.
type Tokenizer interface {
	Valid() bool
	Next() (token.Token, error)
	Position() token.Position
	Error(message string) error
}

// Lexer is a Tokenizer with lookahead.
type Lexer interface {
	Tokenizer
	Peek(distance int) (token.Token, error)
	Match(kinds ...token.Kind) bool
	Consume(kinds ...token.Kind) (token.Token, bool)
	Demand(kind token.Kind, message string) (token.Token, error)
}
