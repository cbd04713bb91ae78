package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
	"github.com/muesli/termenv"

	"github.com/ginjaninja78/cardview/internal/cards"
)

// TextRenderer draws each card in a rounded frame.
type TextRenderer struct {
	width int

	header lipgloss.Style
	frame  lipgloss.Style
	title  lipgloss.Style
	line   lipgloss.Style
	icon   lipgloss.Style
	footer lipgloss.Style
}

// NewTextRenderer creates a text renderer. Styles are bound to their own
// lipgloss renderer so output never depends on the current terminal.
func NewTextRenderer(theme Theme, options Options) *TextRenderer {
	r := lipgloss.NewRenderer(io.Discard)
	if options.Color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	r.SetHasDarkBackground(theme.IsDark)

	width := options.Width
	if width <= 0 {
		width = DefaultOptions().Width
	}

	return &TextRenderer{
		width: width,
		header: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Width(width - 2),
		title: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		line: r.NewStyle(),
		icon: r.NewStyle().
			Foreground(theme.Accent),
		footer: r.NewStyle().
			Foreground(theme.Muted),
	}
}

// Render implements Renderer.
func (t *TextRenderer) Render(doc Document) ([]byte, error) {
	var b strings.Builder

	b.WriteString(t.header.Render(doc.Card))
	b.WriteString("\n")
	if doc.Source != "" {
		b.WriteString(t.footer.Render("from " + doc.Source))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(doc.Cards) == 0 {
		b.WriteString(t.footer.Render("No cards."))
		b.WriteString("\n")
		return []byte(b.String()), nil
	}

	for _, card := range doc.Cards {
		b.WriteString(t.renderCard(card))
		b.WriteString("\n")
	}

	summary := english.Plural(len(doc.Cards), "card", "")
	if !doc.GeneratedAt.IsZero() {
		summary += " · generated " + doc.GeneratedAt.Format("Jan 2, 2006 15:04")
	}
	b.WriteString(t.footer.Render(summary))
	b.WriteString("\n")

	return []byte(b.String()), nil
}

func (t *TextRenderer) renderCard(card cards.Card) string {
	rows := make([]string, 0, len(card.Lines)+1)
	rows = append(rows, t.title.Render(card.Title))
	for _, line := range card.Lines {
		rows = append(rows, t.icon.Render(Glyph(line.IconClass))+" "+t.line.Render(line.SubHeading))
	}
	return t.frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Extension implements Renderer.
func (t *TextRenderer) Extension() string {
	return ".txt"
}
