package lexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	ErrInvalidOption   = errors.New("invalid token stream option")
	ErrInvalidInput    = errors.New("invalid token stream input")
	ErrReadFailed      = errors.New("unable to read from input stream")
	ErrEmptyPatternSet = errors.New("no token patterns to compile")
	ErrInvalidPattern  = errors.New("invalid token pattern")
	ErrUnknownKind     = errors.New("unknown token kind")
	ErrUntaggedMatch   = errors.New("unable to determine token kind")
	ErrStackOverflow   = errors.New("cannot push a tokenizer state into a full stack")
	ErrStackUnderflow  = errors.New("cannot pop a tokenizer state from an empty stack")
	ErrUnknownMode     = errors.New("unknown lexer mode")
)

// suggest returns a " (did you mean X?)" hint for the candidate closest to
// name, or "" when nothing is close enough.
func suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/3) {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", best)
}
