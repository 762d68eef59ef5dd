package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PrattKit/token"
)

// recorder is a Shifter that remembers what was asked of it.
type recorder struct {
	skips  int
	pushed []State
	pops   int
}

func (r *recorder) Skip()                  { r.skips++ }
func (r *recorder) Push(state State) error { r.pushed = append(r.pushed, state); return nil }
func (r *recorder) Pop() error             { r.pops++; return nil }

func TestPatternSetReturnsToken(t *testing.T) {
	sh := &recorder{}
	set, err := NewPatternSet(Pattern{"T_FOO", "foo"})
	require.NoError(t, err)

	calls := 0
	require.NoError(t, set.On("T_FOO", func(s Shifter, lexeme string) error {
		assert.Same(t, sh, s)
		assert.Equal(t, "foo", lexeme)
		calls++
		return nil
	}))

	tok, ok, err := set.Token(sh, "foo is bar", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.New("T_FOO", "foo"), tok)
	assert.Equal(t, 1, calls)
}

func TestPatternSetIsAnchoredAtOffset(t *testing.T) {
	set, err := NewPatternSet(Pattern{"T_FOO", "foo"})
	require.NoError(t, err)
	require.NoError(t, set.On("T_FOO", func(Shifter, string) error {
		t.Fatal("unexpected handler call")
		return nil
	}))

	_, ok, err := set.Token(&recorder{}, "This is foo", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = set.Token(&recorder{}, "This is foo", 12)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPatternSetMatchesMidBuffer(t *testing.T) {
	set, err := NewPatternSet(Pattern{"T_FOO", "foo"}, Pattern{"T_WS", `\s+`})
	require.NoError(t, err)

	tok, ok, err := set.Token(&recorder{}, "This is foo", 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.New("T_WS", " "), tok)

	tok, ok, err = set.Token(&recorder{}, "This is foo", 8)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.New("T_FOO", "foo"), tok)
}

func TestPatternSetSeesLeftContext(t *testing.T) {
	set := mustPatternSet(t,
		Pattern{"T_WORD", `\bfoo`},
		Pattern{"T_CARET", `^x`},
		Pattern{"T_AFTER_A", `(?<=a)b`},
	)

	tests := []struct {
		name   string
		buffer string
		offset int
		want   token.Token
		ok     bool
	}{
		{"word boundary inside a word", "xfoo", 1, token.Token{}, false},
		{"word boundary after a space", "x foo", 2, token.New("T_WORD", "foo"), true},
		{"caret past the line start", "axb", 1, token.Token{}, false},
		{"caret at the line start", "xb", 0, token.New("T_CARET", "x"), true},
		{"lookbehind into consumed text", "ab", 1, token.New("T_AFTER_A", "b"), true},
		{"lookbehind at the line start", "b", 0, token.Token{}, false},
		{"after multibyte text", "é foo", 3, token.New("T_WORD", "foo"), true},
		{"inside a multibyte rune", "éfoo", 1, token.Token{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok, err := set.Token(&recorder{}, tt.buffer, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, tok)
		})
	}
}

func TestPatternSetFirstDeclaredWins(t *testing.T) {
	tests := []struct {
		name     string
		patterns []Pattern
		input    string
		want     token.Token
	}{
		{
			name:     "keyword before identifier",
			patterns: []Pattern{{"T_IF", "if"}, {"T_ID", "[a-z]+"}},
			input:    "iffy",
			want:     token.New("T_IF", "if"),
		},
		{
			name:     "identifier before keyword",
			patterns: []Pattern{{"T_ID", "[a-z]+"}, {"T_IF", "if"}},
			input:    "iffy",
			want:     token.New("T_ID", "iffy"),
		},
		{
			name:     "later pattern fires when earlier does not",
			patterns: []Pattern{{"T_INT", `\d+`}, {"T_ID", `\w+`}},
			input:    "x1 2",
			want:     token.New("T_ID", "x1"),
		},
		{
			name:     "alternation stays inside its branch",
			patterns: []Pattern{{"T_FOO", "foo|fuu"}, {"T_BAR", "bar"}},
			input:    "fuu",
			want:     token.New("T_FOO", "fuu"),
		},
		{
			name:     "capture groups inside patterns",
			patterns: []Pattern{{"T_PAIR", `(a)(b)`}, {"T_A", `(a)`}},
			input:    "ab",
			want:     token.New("T_PAIR", "ab"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewPatternSet(tt.patterns...)
			require.NoError(t, err)
			tok, ok, err := set.Token(&recorder{}, tt.input, 0)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, tok)
		})
	}
}

func TestPatternSetHandlerDrivesShifter(t *testing.T) {
	sh := &recorder{}
	inner, err := NewPatternSet(Pattern{"T_TEXT", `[^"]+`})
	require.NoError(t, err)

	set, err := NewPatternSet(Pattern{"T_WS", `\s+`}, Pattern{"T_QUOTE", `"`})
	require.NoError(t, err)
	set.Must("T_WS", func(s Shifter, _ string) error {
		s.Skip()
		return nil
	}).Must("T_QUOTE", func(s Shifter, _ string) error {
		return s.Push(inner)
	})

	_, _, err = set.Token(sh, `  "x"`, 0)
	require.NoError(t, err)
	_, _, err = set.Token(sh, `  "x"`, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, sh.skips)
	require.Len(t, sh.pushed, 1)
	assert.Same(t, inner, sh.pushed[0])
}

func TestPatternSetHandlerError(t *testing.T) {
	boom := errors.New("boom")
	set, err := NewPatternSet(Pattern{"T_FOO", "foo"})
	require.NoError(t, err)
	require.NoError(t, set.On("T_FOO", func(Shifter, string) error { return boom }))

	_, ok, err := set.Token(&recorder{}, "foo", 0)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestPatternSetUnknownKind(t *testing.T) {
	set, err := NewPatternSet(Pattern{"T_FOO", "foo"}, Pattern{"T_BAR", "bar"})
	require.NoError(t, err)

	err = set.On("T_ZOID", func(Shifter, string) error { return nil })
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "T_FOO, T_BAR")

	err = set.On("T_FOX", nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "did you mean T_FOO?")

	assert.Panics(t, func() { set.Must("T_ZOID", nil) })
}

func TestPatternSetConstructionErrors(t *testing.T) {
	tests := []struct {
		name     string
		patterns []Pattern
		want     error
	}{
		{"empty set", nil, ErrEmptyPatternSet},
		{"invalid pattern", []Pattern{{"T_FOO", "("}}, ErrInvalidPattern},
		{"pattern escaping its branch", []Pattern{{"T_FOO", "a)|(b"}}, ErrInvalidPattern},
		{"empty kind", []Pattern{{"", "foo"}}, ErrInvalidPattern},
		{"kind with spaces", []Pattern{{"T FOO", "foo"}}, ErrInvalidPattern},
		{"duplicate kind", []Pattern{{"T_FOO", "foo"}, {"T_FOO", "bar"}}, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewPatternSet(tt.patterns...)
			assert.Nil(t, set)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPatternSetKinds(t *testing.T) {
	set, err := NewPatternSet(Pattern{"T_B", "b"}, Pattern{"T_A", "a"})
	require.NoError(t, err)

	kinds := set.Kinds()
	assert.Equal(t, []token.Kind{"T_B", "T_A"}, kinds)
	kinds[0] = "T_X"
	assert.Equal(t, []token.Kind{"T_B", "T_A"}, set.Kinds())
	assert.Equal(t, "PatternSet(T_B, T_A)", set.String())
}

func TestStateFunc(t *testing.T) {
	var st State = StateFunc(func(sh Shifter, buffer string, offset int) (token.Token, bool, error) {
		return token.New("T_ALL", buffer[offset:]), true, nil
	})
	tok, ok, err := st.Token(&recorder{}, "abc", 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bc", tok.Lexeme)
}
