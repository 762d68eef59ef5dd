// Package parser implements precedence climbing ("Pratt") expression parsing
// over a lexer.Lexer, driven by a Grammar that maps token kinds to prefix and
// infix behaviors.
package parser

import (
	"PrattKit/lexer"
	"PrattKit/token"
)

// Expression is whatever node type the grammar builds.
type Expression any

// Parser is the view of the engine handed to grammar behaviors.
type Parser interface {
	lexer.Lexer
	// Expression parses an expression whose operators bind tighter than
	// precedence.
	Expression(precedence int) (Expression, error)
}

type PrefixParser interface {
	ParsePrefix(p Parser, tok token.Token) (Expression, error)
}

type InfixParser interface {
	// Precedence is the binding power of the operator; larger binds tighter
	// and 0 does not bind at all.
	Precedence() int
	ParseInfix(p Parser, left Expression, tok token.Token) (Expression, error)
}

// MixfixParser handles a kind that can both start and continue an
// expression, such as "-" or "(".
type MixfixParser interface {
	PrefixParser
	InfixParser
}

// PrefixFunc adapts a function to PrefixParser.
type PrefixFunc func(p Parser, tok token.Token) (Expression, error)

func (f PrefixFunc) ParsePrefix(p Parser, tok token.Token) (Expression, error) {
	return f(p, tok)
}

type InfixFunc func(p Parser, left Expression, tok token.Token) (Expression, error)

type infix struct {
	precedence int
	fn         InfixFunc
}

// NewInfix returns an InfixParser binding with the given precedence.
func NewInfix(precedence int, fn InfixFunc) InfixParser {
	return infix{precedence: precedence, fn: fn}
}

func (i infix) Precedence() int {
	return i.precedence
}

func (i infix) ParseInfix(p Parser, left Expression, tok token.Token) (Expression, error) {
	return i.fn(p, left, tok)
}

type mixfix struct {
	PrefixFunc
	infix
}

func NewMixfix(precedence int, prefixFn PrefixFunc, infixFn InfixFunc) MixfixParser {
	return mixfix{PrefixFunc: prefixFn, infix: infix{precedence: precedence, fn: infixFn}}
}
