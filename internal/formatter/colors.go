package formatter

import "github.com/charmbracelet/lipgloss"

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a small stylesheet built with named [lipgloss.Style] fields.
//
// Styles degrade to plain text when the output is not a terminal.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders a heading.
func Title(s string) string { return styles.title.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return styles.help.Render(s) }

// Decision renders the block decision as a colored label.
func Decision(blocked bool) string {
	if blocked {
		return styles.err.Render("BLOCKED")
	}
	return styles.ok.Render("ALLOWED")
}

// Status renders a pass/fail/warn word in the matching color.
func Status(s string) string {
	switch s {
	case "pass":
		return styles.ok.Render("PASS")
	case "fail":
		return styles.err.Render("FAIL")
	default:
		return styles.warn.Render(s)
	}
}
