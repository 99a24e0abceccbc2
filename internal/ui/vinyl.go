package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/turntable/internal/rotation"
)

// CellAspect is the height of a terminal cell in cell widths.
const CellAspect = 2

const (
	minRadius = 4
	maxRadius = 12

	// labelRatio is the label's share of the disc radius.
	labelRatio = 0.35
)

type cell int

const (
	cellBlank cell = iota
	cellGroove
	cellGrooveAlt
	cellLabel
	cellMarker
	cellHole
)

// Disc draws the record as text. Radius is measured in rows.
type Disc struct {
	Radius int
	Vinyl  lipgloss.Style
	Label  lipgloss.Style
}

// Width is the number of columns the disc occupies.
func (d Disc) Width() int { return 2*d.Radius*CellAspect + 1 }

// Height is the number of rows the disc occupies.
func (d Disc) Height() int { return 2*d.Radius + 1 }

// at classifies the cell at col, row for a record turned by deg.
func (d Disc) at(col, row int, deg float64) cell {
	dx := float64(col-d.Radius*CellAspect) / CellAspect
	dy := float64(row - d.Radius)
	dist := math.Hypot(dx, dy)
	r := float64(d.Radius)

	switch {
	case dist > r+0.25:
		return cellBlank
	case dist < 0.5:
		return cellHole
	}

	label := r * labelRatio
	if dist > label {
		// The marker narrows towards the rim so it reads as one line.
		width := math.Max(4, math.Atan2(0.75, dist)*180/math.Pi)
		if math.Abs(rotation.ShortestDelta(deg, rotation.AngleFromCenter(rotation.Point{X: dx, Y: dy}, rotation.Point{}))) <= width {
			return cellMarker
		}
	}
	if dist <= label {
		return cellLabel
	}
	if int(math.Round(dist))%2 == 0 {
		return cellGroove
	}
	return cellGrooveAlt
}

// Render draws the disc turned by deg. Runs of equal cells share one style call.
func (d Disc) Render(deg float64) string {
	var b strings.Builder
	for row := range d.Height() {
		var run strings.Builder
		kind := cellBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(d.style(kind).Render(run.String()))
			run.Reset()
		}
		for col := range d.Width() {
			c := d.at(col, row, deg)
			if c != kind {
				flush()
				kind = c
			}
			run.WriteRune(glyphs[c])
		}
		flush()
		if row < d.Height()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var glyphs = map[cell]rune{
	cellBlank:     ' ',
	cellGroove:    '░',
	cellGrooveAlt: '▒',
	cellLabel:     '█',
	cellMarker:    '▓',
	cellHole:      '·',
}

func (d Disc) style(c cell) lipgloss.Style {
	switch c {
	case cellLabel, cellMarker, cellHole:
		return d.Label
	case cellBlank:
		return lipgloss.NewStyle()
	default:
		return d.Vinyl
	}
}

// layout places the disc on screen and converts cells to machine coordinates.
type layout struct {
	radius int
	left   int
	top    int
	ok     bool
}

// headerRows is the title line plus its margin.
const headerRows = 2

// footerRows leaves room for the card, status and help lines.
const footerRows = 7

func newLayout(width, height int) layout {
	r := (height - headerRows - footerRows - 1) / 2
	if byWidth := (width - 1) / (2 * CellAspect); byWidth < r {
		r = byWidth
	}
	r = max(minRadius, min(maxRadius, r))

	w := 2*r*CellAspect + 1
	return layout{radius: r, left: max(0, (width-w)/2), top: headerRows, ok: width > 0 && height > 0}
}

// point converts a terminal cell to machine coordinates.
func (l layout) point(col, row int) rotation.Point {
	return rotation.Point{X: float64(col) / CellAspect, Y: float64(row)}
}

// center is the disc centre in machine coordinates.
func (l layout) center() rotation.Point {
	return l.point(l.left+l.radius*CellAspect, l.top+l.radius)
}
