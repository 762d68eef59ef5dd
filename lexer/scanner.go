package lexer

import (
	"fmt"
	"slices"
	"strings"

	"PrattKit/token"
)

// DefaultDemandMessage is the template Demand uses when the caller gives
// none. Templates receive the expected kind and then the actual kind.
const DefaultDemandMessage = "Expecting %[1]s, but got %[2]s"

type lookahead struct {
	valid    bool
	position token.Position
	token    token.Token
}

// Scanner adds bounded lookahead to a Tokenizer. It borrows the tokenizer
// and never closes it.
//
// An error met while filling the lookahead buffer is kept: Match and Consume
// then report no match, and Peek, Next and Demand return it.
type Scanner struct {
	tokenizer Tokenizer
	tokens    []lookahead
	err       error
}

func NewScanner(tokenizer Tokenizer) *Scanner {
	return &Scanner{tokenizer: tokenizer}
}

func (s *Scanner) Valid() bool {
	if len(s.tokens) > 0 {
		return s.tokens[0].valid
	}
	return s.tokenizer.Valid()
}

func (s *Scanner) Next() (token.Token, error) {
	if len(s.tokens) > 0 {
		head := s.tokens[0]
		s.tokens = s.tokens[1:]
		return head.token, nil
	}
	if s.err != nil {
		return token.Token{}, s.err
	}
	return s.tokenizer.Next()
}

func (s *Scanner) Position() token.Position {
	if len(s.tokens) > 0 {
		return s.tokens[0].position
	}
	return s.tokenizer.Position()
}

// Peek returns the token distance places ahead without consuming it.
// Negative distances are treated as zero.
func (s *Scanner) Peek(distance int) (token.Token, error) {
	distance = max(0, distance)

	for distance >= len(s.tokens) {
		if s.err != nil {
			return token.Token{}, s.err
		}
		entry := lookahead{
			valid:    s.tokenizer.Valid(),
			position: s.tokenizer.Position(),
		}
		tok, err := s.tokenizer.Next()
		if err != nil {
			s.err = err
			return token.Token{}, err
		}
		entry.token = tok
		s.tokens = append(s.tokens, entry)
	}

	return s.tokens[distance].token, nil
}

// Err returns the error met while filling the lookahead buffer, if any.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) Error(message string) error {
	return token.NewParseFailure(message, s.Position())
}

// Match reports whether the next token is of one of the given kinds.
func (s *Scanner) Match(kinds ...token.Kind) bool {
	next, err := s.Peek(0)
	if err != nil {
		return false
	}
	return slices.Contains(kinds, next.Kind)
}

// Consume returns the next token if it is of one of the given kinds, and
// leaves the stream untouched otherwise.
func (s *Scanner) Consume(kinds ...token.Kind) (token.Token, bool) {
	if !s.Match(kinds...) {
		return token.Token{}, false
	}
	tok, err := s.Next()
	return tok, err == nil
}

// Demand consumes the next token, which must be of the given kind. An empty
// message selects DefaultDemandMessage.
func (s *Scanner) Demand(kind token.Kind, message string) (token.Token, error) {
	if tok, ok := s.Consume(kind); ok {
		return tok, nil
	}

	actual, err := s.Peek(0)
	if err != nil {
		return token.Token{}, err
	}
	if message == "" {
		message = DefaultDemandMessage
	}
	return token.Token{}, s.Error(formatDemand(message, kind, actual.Kind))
}

// formatDemand applies the two demand arguments to message. Templates that
// use fewer than both arguments are not penalized with fmt's EXTRA suffix.
func formatDemand(message string, expected, actual token.Kind) string {
	text := fmt.Sprintf(message, expected, actual)
	if i := strings.LastIndex(text, "%!(EXTRA "); i >= 0 && !strings.Contains(message, "%!(EXTRA ") {
		text = text[:i]
	}
	return text
}

func (s *Scanner) String() string {
	return fmt.Sprintf("Scanner(%d buffered)", len(s.tokens))
}
