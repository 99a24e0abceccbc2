package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/turntable/internal/models"
)

// Palette is a stylesheet built with named [lipgloss.Style] fields for one mood.
type Palette struct {
	Mood       models.Mood
	Dark       bool
	Background lipgloss.Style
	Title      lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	OK         lipgloss.Style
	Err        lipgloss.Style
	Warn       lipgloss.Style
	Help       lipgloss.Style
	Vinyl      lipgloss.Style
}

// ForMood builds the palette drawn over the mood's background.
func ForMood(m models.Mood) *Palette {
	dark := IsDark(m)
	text, muted := "#1C1C1C", "#626262"
	if dark {
		text, muted = "#FAFAFA", "#A9A9A9"
	}

	bg := Background(m)
	return &Palette{
		Mood:       m,
		Dark:       dark,
		Background: lipgloss.NewStyle().Background(lipgloss.Color(bg.Top)),
		Title:      NewBold(text).MarginBottom(1),
		Text:       NewStyle(text),
		Muted:      NewStyle(muted),
		OK:         NewBold("#04B575"),
		Err:        NewBold("#FF0000"),
		Warn:       NewStyle("#FFA500"),
		Help:       NewEm(muted),
		Vinyl:      NewStyle(VinylColor),
	}
}

// Label styles the vinyl label of a card.
func (p *Palette) Label(g models.Genre) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(AccentColor(g)).Bold(true)
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
