package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/turntable/internal/models"
)

const (
	// DefaultAccent colours genres without an entry and the placeholder card.
	DefaultAccent = "#64748b"
	// VinylColor is the record body.
	VinylColor = "#525252"
)

var accents = map[models.Genre]string{
	"J-POP":         "#e11d48",
	"J-Rock":        "#b91c1c",
	"J-HipHop":      "#d97706",
	"Hip Hop":       "#7c3aed",
	"Lo-fi Hip Hop": "#b45309",
	"City Pop":      "#0891b2",
	"R&B":           "#4f46e5",
	"J-R&B":         "#7c3aed",
	"Anime Song":    "#0ea5e9",
	"Vocaloid":      "#14b8a6",
	"Idol Pop":      "#ec4899",
	"K-POP (Boy)":   "#6366f1",
	"K-POP (Girl)":  "#db2777",
	"EDM":           "#65a30d",
	"House":         "#ea580c",
	"Techno":        "#7c3aed",
	"Acoustic":      "#ca8a04",
	"Jazz":          "#b45309",
	"Piano":         "#047857",
	"Chill Out":     "#0d9488",
	"City Jazz":     "#2563eb",
}

// Accent returns the label colour of a genre.
func Accent(g models.Genre) string {
	if c, ok := accents[g]; ok {
		return c
	}
	return DefaultAccent
}

// AccentColor is [Accent] as a lipgloss colour.
func AccentColor(g models.Genre) lipgloss.Color {
	return lipgloss.Color(Accent(g))
}
