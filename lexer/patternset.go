package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"PrattKit/token"
)

// Pattern binds a token kind to a regular expression in Perl/.NET syntax.
// Patterns are matched at the stream offset but see the whole line, so `^`,
// `\b` and lookbehinds behave as they would at that point of the line.
type Pattern struct {
	Kind token.Kind
	Expr string
}

// Handler runs whenever its kind matches, before the token is returned. It
// may use sh to skip the token or switch modes.
type Handler func(sh Shifter, lexeme string) error

func noop(Shifter, string) error { return nil }

// PatternSet is a State that recognizes one of several patterns at the
// current offset. When more than one pattern fires, the first declared wins.
type PatternSet struct {
	regex    *regexp2.Regexp
	kinds    []token.Kind
	groups   []int
	handlers map[token.Kind]Handler
}

func NewPatternSet(patterns ...Pattern) (*PatternSet, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptyPatternSet
	}

	ps := &PatternSet{
		kinds:    make([]token.Kind, 0, len(patterns)),
		handlers: make(map[token.Kind]Handler, len(patterns)),
	}

	branches := make([]string, 0, len(patterns))
	for i, p := range patterns {
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("%w: invalid kind %q at index %d", ErrInvalidPattern, p.Kind, i)
		}
		if _, dup := ps.handlers[p.Kind]; dup {
			return nil, fmt.Errorf("%w: duplicate kind %s", ErrInvalidPattern, p.Kind)
		}
		// compiled alone so that a pattern like `a)|(b` cannot leak out of
		// its branch
		if _, err := regexp2.Compile(p.Expr, regexp2.None); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, p.Kind, err)
		}
		ps.kinds = append(ps.kinds, p.Kind)
		ps.handlers[p.Kind] = noop
		branches = append(branches, "(?<"+groupName(i)+">"+p.Expr+")")
	}

	regex, err := regexp2.Compile(`\G(?:`+strings.Join(branches, "|")+`)`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: token set (%s) compiled pattern: %v", ErrInvalidPattern, ps.kindList(), err)
	}
	ps.regex = regex

	ps.groups = make([]int, len(ps.kinds))
	for i := range ps.kinds {
		ps.groups[i] = regex.GroupNumberFromName(groupName(i))
	}
	return ps, nil
}

func groupName(i int) string {
	return "prattkit_branch_" + strconv.Itoa(i)
}

// On registers the handler for kind, replacing any previous one.
func (ps *PatternSet) On(kind token.Kind, handler Handler) error {
	if _, ok := ps.handlers[kind]; !ok {
		return fmt.Errorf("%w %s in set (%s)%s", ErrUnknownKind, kind, ps.kindList(), suggest(string(kind), ps.names()))
	}
	if handler == nil {
		handler = noop
	}
	ps.handlers[kind] = handler
	return nil
}

// Must is On for statically known kinds; it panics on error.
func (ps *PatternSet) Must(kind token.Kind, handler Handler) *PatternSet {
	if err := ps.On(kind, handler); err != nil {
		panic(err)
	}
	return ps
}

// Kinds returns the kinds in declaration order.
func (ps *PatternSet) Kinds() []token.Kind {
	return append([]token.Kind(nil), ps.kinds...)
}

func (ps *PatternSet) Token(sh Shifter, buffer string, offset int) (token.Token, bool, error) {
	if offset < 0 || offset > len(buffer) || (offset < len(buffer) && !utf8.RuneStart(buffer[offset])) {
		return token.Token{}, false, nil
	}

	m, err := ps.regex.FindStringMatchStartingAt(buffer, offset)
	if err != nil {
		return token.Token{}, false, fmt.Errorf("match token set (%s): %w", ps.kindList(), err)
	}
	if m == nil {
		return token.Token{}, false, nil
	}

	kind, found := ps.branch(m)
	if !found {
		return token.Token{}, false, fmt.Errorf("%w from token set (%s)", ErrUntaggedMatch, ps.kindList())
	}

	lexeme := m.String()
	if err := ps.handlers[kind](sh, lexeme); err != nil {
		return token.Token{}, false, err
	}
	return token.New(kind, lexeme), true, nil
}

func (ps *PatternSet) branch(m *regexp2.Match) (token.Kind, bool) {
	for i, n := range ps.groups {
		if g := m.GroupByNumber(n); g != nil && len(g.Captures) > 0 {
			return ps.kinds[i], true
		}
	}
	return "", false
}

func (ps *PatternSet) names() []string {
	names := make([]string, len(ps.kinds))
	for i, k := range ps.kinds {
		names[i] = string(k)
	}
	return names
}

func (ps *PatternSet) kindList() string {
	return strings.Join(ps.names(), ", ")
}

func (ps *PatternSet) String() string {
	return "PatternSet(" + ps.kindList() + ")"
}
