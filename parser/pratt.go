package parser

import (
	"PrattKit/lexer"
	"PrattKit/token"
)

// PrattParser climbs precedences over a Lexer. All positional and lookahead
// state lives in the Lexer.
type PrattParser struct {
	lexer   lexer.Lexer
	grammar Grammar
}

func NewPrattParser(l lexer.Lexer, g Grammar) *PrattParser {
	return &PrattParser{lexer: l, grammar: g}
}

func (p *PrattParser) Valid() bool {
	return p.lexer.Valid()
}

func (p *PrattParser) Next() (token.Token, error) {
	return p.lexer.Next()
}

func (p *PrattParser) Position() token.Position {
	return p.lexer.Position()
}

func (p *PrattParser) Error(message string) error {
	return p.lexer.Error(message)
}

func (p *PrattParser) Peek(distance int) (token.Token, error) {
	return p.lexer.Peek(distance)
}

func (p *PrattParser) Match(kinds ...token.Kind) bool {
	return p.lexer.Match(kinds...)
}

func (p *PrattParser) Consume(kinds ...token.Kind) (token.Token, bool) {
	return p.lexer.Consume(kinds...)
}

func (p *PrattParser) Demand(kind token.Kind, message string) (token.Token, error) {
	return p.lexer.Demand(kind, message)
}

// Expression parses a prefix expression and keeps folding infix operators
// into it while the next token binds tighter than precedence.
func (p *PrattParser) Expression(precedence int) (Expression, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return nil, err
	}
	left, err := p.grammar.Prefix(p, tok)
	if err != nil {
		return nil, err
	}

	for {
		next, err := p.lexer.Peek(0)
		if err != nil {
			return nil, err
		}
		if precedence >= p.grammar.Precedence(next) {
			return left, nil
		}
		if _, err := p.lexer.Next(); err != nil {
			return nil, err
		}
		if left, err = p.grammar.Infix(p, left, next); err != nil {
			return nil, err
		}
	}
}

// Parse reads one whole expression and demands the end token after it,
// usually the stream's end of stream kind.
func (p *PrattParser) Parse(end token.Kind) (Expression, error) {
	expr, err := p.Expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.lexer.Demand(end, "Unexpected %[2]s token after expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *PrattParser) String() string {
	return "PrattParser"
}
