// Package report renders parse failures for humans: the message, the
// location, the offending source line and a caret under the failing column.
package report

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"PrattKit/token"
)

const indent = 2

// Styles controls how each part of a report is drawn.
type Styles struct {
	Message  lipgloss.Style
	Location lipgloss.Style
	Source   lipgloss.Style
	Caret    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Message:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Source:   lipgloss.NewStyle(),
		Caret:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
	}
}

// PlainStyles draws nothing but text.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Message: plain, Location: plain, Source: plain, Caret: plain}
}

// Render draws err with DefaultStyles.
func Render(err error) string {
	return RenderWith(err, DefaultStyles())
}

// Plain draws err without any styling.
func Plain(err error) string {
	if err == nil {
		return ""
	}
	return strings.Join(lines(err, PlainStyles()), "\n")
}

// RenderWith draws err with st. Errors that are not parse failures render as
// their message alone.
func RenderWith(err error, st Styles) string {
	if err == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines(err, st)...)
}

func lines(err error, st Styles) []string {
	var failure *token.ParseFailure
	if !errors.As(err, &failure) {
		return []string{st.Message.Render(err.Error())}
	}

	msg := failure.Message
	if failure.Err != nil {
		msg += ": " + failure.Err.Error()
	}
	out := []string{st.Message.Render(msg)}

	pos := failure.Position
	out = append(out, st.Location.Render(pos.LocationFormat(indent, "line %d, column %d", "unknown position")))
	if !pos.Known() {
		return out
	}

	// tabs stay tabs on both rows so the caret lines up
	pad := strings.Repeat(" ", indent)
	source := strings.TrimRight(pos.Buffer(), "\r\n")
	out = append(out,
		pad+st.Source.TabWidth(lipgloss.NoTabConversion).Render(source),
		pad+pos.Indent(' ')+st.Caret.Render("^"),
	)
	return out
}
