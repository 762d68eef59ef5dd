package parser

import (
	"fmt"
	"maps"

	"PrattKit/token"
)

// Grammar dispatches tokens to prefix and infix behaviors.
type Grammar interface {
	// Precedence is 0 when tok has no infix behavior.
	Precedence(tok token.Token) int
	Prefix(p Parser, tok token.Token) (Expression, error)
	Infix(p Parser, left Expression, tok token.Token) (Expression, error)
}

// GrammarBuilder collects behaviors and freezes them into a Grammar.
type GrammarBuilder struct {
	prefixes map[token.Kind]PrefixParser
	infixes  map[token.Kind]InfixParser
}

func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{
		prefixes: map[token.Kind]PrefixParser{},
		infixes:  map[token.Kind]InfixParser{},
	}
}

func (b *GrammarBuilder) Prefix(kind token.Kind, p PrefixParser) *GrammarBuilder {
	if b.prefixes == nil {
		b.prefixes = map[token.Kind]PrefixParser{}
	}
	b.prefixes[kind] = p
	return b
}

func (b *GrammarBuilder) Infix(kind token.Kind, p InfixParser) *GrammarBuilder {
	if b.infixes == nil {
		b.infixes = map[token.Kind]InfixParser{}
	}
	b.infixes[kind] = p
	return b
}

// Mixfix registers p as both the prefix and the infix behavior of kind.
func (b *GrammarBuilder) Mixfix(kind token.Kind, p MixfixParser) *GrammarBuilder {
	return b.Prefix(kind, p).Infix(kind, p)
}

// Build returns a Grammar holding everything registered so far and empties
// the builder, so later registrations never reach an already built Grammar.
func (b *GrammarBuilder) Build() Grammar {
	g := &grammar{
		prefixes: maps.Clone(b.prefixes),
		infixes:  maps.Clone(b.infixes),
	}
	if g.prefixes == nil {
		g.prefixes = map[token.Kind]PrefixParser{}
	}
	if g.infixes == nil {
		g.infixes = map[token.Kind]InfixParser{}
	}
	b.prefixes = map[token.Kind]PrefixParser{}
	b.infixes = map[token.Kind]InfixParser{}
	return g
}

func (b *GrammarBuilder) String() string {
	return fmt.Sprintf("GrammarBuilder(%d prefix, %d infix)", len(b.prefixes), len(b.infixes))
}

type grammar struct {
	prefixes map[token.Kind]PrefixParser
	infixes  map[token.Kind]InfixParser
}

func (g *grammar) Precedence(tok token.Token) int {
	if p, ok := g.infixes[tok.Kind]; ok {
		return max(0, p.Precedence())
	}
	return 0
}

func (g *grammar) Prefix(p Parser, tok token.Token) (Expression, error) {
	prefix, ok := g.prefixes[tok.Kind]
	if !ok {
		return nil, p.Error(fmt.Sprintf("Failed to parse %s token", tok.Kind))
	}
	return prefix.ParsePrefix(p, tok)
}

func (g *grammar) Infix(p Parser, left Expression, tok token.Token) (Expression, error) {
	infix, ok := g.infixes[tok.Kind]
	if !ok {
		return nil, p.Error(fmt.Sprintf("Failed to parse %s token after expression %T", tok.Kind, left))
	}
	return infix.ParseInfix(p, left, tok)
}

func (g *grammar) String() string {
	return fmt.Sprintf("Grammar(%d prefix, %d infix)", len(g.prefixes), len(g.infixes))
}
