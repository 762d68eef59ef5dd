package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

var (
	ErrMultilinePosition = errors.New("multiline position buffer not allowed")
	ErrInvalidLine       = errors.New("invalid position line number")
	ErrInvalidOffset     = errors.New("invalid position buffer offset")
)

// widths is pinned so caret rendering does not depend on the locale of the
// process.
var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Position locates a byte within a single source line. The zero value is the
// unknown position.
type Position struct {
	buffer string
	line   int
	offset int
	column int
	width  int
	eol    string
	known  bool
}

// NewPosition builds a known position for the byte at offset in buffer, the
// full text of line number line (1-based). The buffer may end with a line
// terminator but must not contain one elsewhere.
func NewPosition(buffer string, line, offset int) (Position, error) {
	body := trimEOL(buffer)
	if strings.ContainsAny(body, "\r\n") {
		return Position{}, ErrMultilinePosition
	}
	if line < 1 {
		return Position{}, fmt.Errorf("%w: %d", ErrInvalidLine, line)
	}
	if offset < 0 || offset >= len(buffer) {
		return Position{}, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	prefix := buffer[:offset]
	p := Position{
		buffer: buffer,
		line:   line,
		offset: offset,
		column: utf8.RuneCountInString(prefix) + 1,
		width:  widths.StringWidth(prefix),
		known:  true,
	}
	if len(body) == len(buffer) {
		p.eol = "\n"
	}
	return p, nil
}

func trimEOL(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
		return s[:len(s)-1]
	}
	return s
}

func (p Position) Known() bool {
	return p.known
}

// Buffer returns the source line, including its terminator if it had one.
func (p Position) Buffer() string {
	return p.buffer
}

func (p Position) Line() int {
	if !p.known {
		return -1
	}
	return p.line
}

// Column is 1-based and counted in Unicode scalar values.
func (p Position) Column() int {
	if !p.known {
		return -1
	}
	return p.column
}

func (p Position) Offset() int {
	if !p.known {
		return -1
	}
	return p.offset
}

// Width is the display width of the text preceding the position. Tabs count
// as zero; use Indent to line text up with a line that contains them.
func (p Position) Width() int {
	if !p.known {
		return -1
	}
	return p.width
}

// Location renders "line N, column M", or "unknown position".
func (p Position) Location() string {
	return p.LocationFormat(0, "line %d, column %d", "unknown position")
}

// LocationFormat renders the position with a custom template taking the line
// and column, indented by indent spaces.
func (p Position) LocationFormat(indent int, known, unknown string) string {
	prefix := strings.Repeat(" ", max(0, indent))
	if p.known {
		return prefix + fmt.Sprintf(known, p.line, p.column)
	}
	return prefix + unknown
}

// Marker renders the source line followed by a caret under the position.
func (p Position) Marker(indent int) string {
	return p.MarkerWith(indent, ' ', '^')
}

func (p Position) MarkerWith(indent int, pad, mark rune) string {
	prefix := strings.Repeat(" ", max(0, indent))
	if !p.known {
		return prefix
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(p.buffer)
	sb.WriteString(p.eol)
	sb.WriteString(prefix)
	sb.WriteString(p.Indent(pad))
	sb.WriteRune(mark)
	return sb.String()
}

// Indent returns the text that lines up with everything before the position:
// tabs are kept so they expand the same way the source line does, and every
// other display cell becomes pad.
func (p Position) Indent(pad rune) string {
	if !p.known {
		return ""
	}
	cells := strings.Split(p.buffer[:p.offset], "\t")
	for i, c := range cells {
		cells[i] = strings.Repeat(string(pad), widths.StringWidth(c))
	}
	return strings.Join(cells, "\t")
}

func (p Position) String() string {
	return strings.TrimSpace(p.Location() + "\n" + p.Marker(0))
}
