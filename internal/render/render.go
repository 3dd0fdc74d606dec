// Package render turns a processed snippet body into its final surface:
// an HTML preformatted block, ANSI-styled terminal text, or plain text.
package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snipmd/internal/config"
)

// HTML wraps a processed snippet body in a preformatted block element
func HTML(body string) string {
	return "<pre>" + body + "</pre>"
}

// Styles holds the terminal styles for the embedded operation markers
type Styles struct {
	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Emphasis lipgloss.Style
	Link     lipgloss.Style
}

// DefaultStyles returns marker styles with built-in colors
func DefaultStyles() Styles {
	return Styles{
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Italic:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("36")),
		Emphasis: lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color("220")),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("33")),
	}
}

// StylesFromConfig returns marker styles with configured colors
func StylesFromConfig() Styles {
	return Styles{
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(config.GetColorBold())),
		Italic:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(config.GetColorItalic())),
		Emphasis: lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color(config.GetColorEmphasis())),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(config.GetColorLink())),
	}
}

// markerRe matches the fixed marker vocabulary emitted by the engine
var markerRe = regexp.MustCompile(`</?b>|</?i>|</?em>|<a data-ref="[^"]*">|</a>`)

// ANSI renders the marker vocabulary as styled terminal text. Markers may
// nest; the innermost open marker wins. Text outside markers and unknown
// tags pass through with only HTML entities decoded.
func (s Styles) ANSI(body string) string {
	var b strings.Builder
	var stack []lipgloss.Style
	last := 0

	render := func(text string) {
		if text == "" {
			return
		}
		text = html.UnescapeString(text)
		if len(stack) > 0 {
			text = stack[len(stack)-1].Render(text)
		}
		b.WriteString(text)
	}

	for _, loc := range markerRe.FindAllStringIndex(body, -1) {
		render(body[last:loc[0]])
		last = loc[1]

		marker := body[loc[0]:loc[1]]
		switch {
		case strings.HasPrefix(marker, "</"):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case marker == "<b>":
			stack = append(stack, s.Bold)
		case marker == "<i>":
			stack = append(stack, s.Italic)
		case marker == "<em>":
			stack = append(stack, s.Emphasis)
		default: // link anchor
			stack = append(stack, s.Link)
		}
	}
	render(body[last:])

	return b.String()
}

// Text strips the marker vocabulary and decodes HTML entities, keeping
// link and highlight text in place
func Text(body string) string {
	return html.UnescapeString(markerRe.ReplaceAllString(body, ""))
}
