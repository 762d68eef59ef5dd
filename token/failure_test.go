package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFailure(t *testing.T) {
	pos, err := NewPosition("1 + x\n", 4, 4)
	require.NoError(t, err)

	f := NewParseFailure("Unexpected token", pos)
	assert.Equal(t, "Unexpected token at line 4, column 5", f.Error())
	assert.Nil(t, f.Unwrap())
	assert.Equal(t, 5, f.Position.Column())

	f = NewParseFailure("Unexpected token", Position{})
	assert.Equal(t, "Unexpected token", f.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("stack is full")
	pos, err := NewPosition("abc", 1, 2)
	require.NoError(t, err)

	var target error = Wrap(cause, "Unexpected token", pos)
	assert.Equal(t, "Unexpected token: stack is full at line 1, column 3", target.Error())
	assert.ErrorIs(t, target, cause)

	var failure *ParseFailure
	require.ErrorAs(t, target, &failure)
	assert.Equal(t, "Unexpected token", failure.Message)
	assert.Same(t, cause, failure.Err)
}
