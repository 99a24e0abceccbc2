package ui

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/turntable/internal/deck"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/tasks"
	tu "github.com/desertthunder/turntable/internal/testing"
)

func loadedDeck(t *testing.T, genres ...models.Genre) *deck.Deck {
	t.Helper()
	d := deck.New(deck.Options{
		Builder:   tasks.NewPlaylistEngine(tasks.EngineOpts{Generator: &tu.MockGenerator{}}),
		Mood:      models.Mood{Weather: models.WeatherRain, TimeOfDay: models.Night},
		Selection: genres,
	})
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("failed to load deck: %v", err)
	}
	d.Wait()
	return d
}

func newTestModel(t *testing.T, d *deck.Deck) *Model {
	t.Helper()
	return NewModel(context.Background(), Options{
		Deck:              d,
		Config:            rotation.DefaultConfig(),
		RegenerateCurrent: true,
		RegenerateAll:     true,
	})
}

// rim returns the cell on the disc edge at deg.
func rim(m *Model, deg float64) (int, int) {
	l := m.layout
	rad := deg * math.Pi / 180
	col := l.left + l.radius*CellAspect + int(math.Round(float64(l.radius*CellAspect)*math.Cos(rad)))
	row := l.top + l.radius + int(math.Round(float64(l.radius)*math.Sin(rad)))
	return col, row
}

func mouse(m *Model, action tea.MouseAction, deg float64) {
	col, row := rim(m, deg)
	m.Update(tea.MouseMsg{X: col, Y: row, Action: action, Button: tea.MouseButtonLeft})
}

func drag(m *Model, from, to float64) {
	mouse(m, tea.MouseActionPress, from)
	step := 10.0
	if to < from {
		step = -10
	}
	for deg := from + step; math.Abs(deg-from) < math.Abs(to-from); deg += step {
		mouse(m, tea.MouseActionMotion, deg)
	}
	mouse(m, tea.MouseActionRelease, to)
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		radius int
	}{
		{"large terminals cap the radius", 200, 80, maxRadius},
		{"short terminals shrink it", 120, 25, 7},
		{"narrow terminals shrink it", 30, 60, 7},
		{"tiny terminals keep the minimum", 10, 10, minRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(tt.width, tt.height)
			if l.radius != tt.radius {
				t.Errorf("expected radius %d, got %d", tt.radius, l.radius)
			}
		})
	}

	t.Run("center sits in the middle of the disc", func(t *testing.T) {
		l := newLayout(80, 40)
		c := l.center()
		want := l.point(l.left+l.radius*CellAspect, l.top+l.radius)
		if c != want {
			t.Errorf("expected %+v, got %+v", want, c)
		}
	})
}

func TestDisc(t *testing.T) {
	d := Disc{Radius: 6}

	t.Run("has the expected size", func(t *testing.T) {
		lines := strings.Split(d.Render(0), "\n")
		if len(lines) != d.Height() {
			t.Fatalf("expected %d lines, got %d", d.Height(), len(lines))
		}
		for i, line := range lines {
			if n := lipgloss.Width(line); n != d.Width() {
				t.Errorf("expected line %d to be %d wide, got %d", i, d.Width(), n)
			}
		}
	})

	t.Run("marker follows the rotation", func(t *testing.T) {
		right := d.at(d.Width()-2, d.Radius, 0)
		if right != cellMarker {
			t.Errorf("expected the marker at 0°, got %v", right)
		}
		if got := d.at(d.Width()-2, d.Radius, 180); got == cellMarker {
			t.Error("expected no marker on the right at 180°")
		}
		if got := d.at(1, d.Radius, 180); got != cellMarker {
			t.Errorf("expected the marker on the left at 180°, got %v", got)
		}
	})

	t.Run("corners are blank and the middle is the hole", func(t *testing.T) {
		if got := d.at(0, 0, 0); got != cellBlank {
			t.Errorf("expected blank corner, got %v", got)
		}
		if got := d.at(d.Radius*CellAspect, d.Radius, 0); got != cellHole {
			t.Errorf("expected the hole, got %v", got)
		}
	})
}

func TestModelDrag(t *testing.T) {
	t.Run("a quarter turn pages the deck", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano", "House")
		m := newTestModel(t, d)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

		drag(m, 0, 90)

		if m.release == nil || m.release.Effective != rotation.ZonePaginate {
			t.Fatalf("expected a paginate release, got %+v", m.release)
		}
		if m.release.Direction != rotation.DirectionNext {
			t.Errorf("expected next, got %s", m.release.Direction)
		}
		if d.Current().Genre != "Piano" {
			t.Errorf("expected Piano, got %s", d.Current().Genre)
		}
		if !strings.Contains(m.View(), "Piano") {
			t.Error("expected the view to show the new card")
		}
	})

	t.Run("a counter-clockwise turn pages back", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano", "House")
		m := newTestModel(t, d)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

		drag(m, 0, -90)

		if d.Current().Genre != "House" {
			t.Errorf("expected House, got %s", d.Current().Genre)
		}
	})

	t.Run("a small turn snaps back", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano")
		m := newTestModel(t, d)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

		drag(m, 0, 30)

		if m.machine.Mode() != rotation.ModeSnappingBack {
			t.Errorf("expected snapping back, got %s", m.machine.Mode())
		}
		if d.Index() != 0 {
			t.Errorf("expected no paging, got index %d", d.Index())
		}
	})

	t.Run("an unsized terminal contributes no rotation", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano")
		m := newTestModel(t, d)

		drag(m, 0, 90)

		if m.release == nil || m.release.Effective != rotation.ZoneNoOp || m.release.Cumulative != 0 {
			t.Errorf("expected a no-op release, got %+v", m.release)
		}
	})

	t.Run("esc cancels a drag", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano")
		m := newTestModel(t, d)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

		mouse(m, tea.MouseActionPress, 0)
		mouse(m, tea.MouseActionMotion, 50)
		mouse(m, tea.MouseActionMotion, 90)
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})

		if m.release == nil || !m.release.Cancelled {
			t.Fatalf("expected a cancelled release, got %+v", m.release)
		}
		if d.Index() != 0 {
			t.Errorf("expected no paging, got index %d", d.Index())
		}
	})

	t.Run("opening the card list cancels a drag", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano")
		m := newTestModel(t, d)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
		clock := tu.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		m.Update(frameMsg(clock.Now()))

		mouse(m, tea.MouseActionPress, 0)
		for deg := 10.0; deg <= 60; deg += 10 {
			mouse(m, tea.MouseActionMotion, deg)
		}
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		mouse(m, tea.MouseActionRelease, 60)
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})

		if m.view != VinylView {
			t.Fatalf("expected the vinyl, got %v", m.view)
		}
		if m.machine.Mode() != rotation.ModeIdle {
			t.Fatalf("expected idle, got %s", m.machine.Mode())
		}
		if m.release == nil || !m.release.Cancelled {
			t.Errorf("expected a cancelled release, got %+v", m.release)
		}
		if d.Index() != 0 {
			t.Errorf("expected no paging, got index %d", d.Index())
		}

		before := m.machine.Rotation()
		m.Update(frameMsg(clock.Advance(time.Second)))
		m.Update(frameMsg(clock.Advance(time.Second)))
		if got := m.machine.Rotation(); math.Abs(got-before-30) > 1e-6 {
			t.Errorf("expected the idle spin to advance 30°, got %v -> %v", before, got)
		}

		drag(m, 0, 90)
		if d.Current().Genre != "Piano" {
			t.Errorf("expected the next drag to page to Piano, got %s", d.Current().Genre)
		}
	})
}

func TestModelFrames(t *testing.T) {
	m := newTestModel(t, loadedDeck(t, "Jazz"))
	clock := tu.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if _, cmd := m.Update(frameMsg(clock.Now())); cmd == nil {
		t.Error("expected the next frame to be scheduled")
	}
	m.Update(frameMsg(clock.Advance(time.Second)))

	if got := m.machine.Rotation(); math.Abs(got-30) > 1e-9 {
		t.Errorf("expected 30° after one second, got %v", got)
	}
}

func TestModelKeys(t *testing.T) {
	t.Run("arrows page the deck", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano", "House")
		m := newTestModel(t, d)

		m.Update(tea.KeyMsg{Type: tea.KeyRight})
		if d.Current().Genre != "Piano" {
			t.Errorf("expected Piano, got %s", d.Current().Genre)
		}
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		if d.Current().Genre != "House" {
			t.Errorf("expected House, got %s", d.Current().Genre)
		}
	})

	t.Run("tab opens the card list and enter jumps", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano", "House")
		m := newTestModel(t, d)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.view != DeckView {
			t.Fatalf("expected the card list, got %v", m.view)
		}
		m.cards.Select(2)
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		if m.view != VinylView {
			t.Errorf("expected the vinyl, got %v", m.view)
		}
		if d.Current().Genre != "House" {
			t.Errorf("expected House, got %s", d.Current().Genre)
		}
	})

	t.Run("r regenerates the current card", func(t *testing.T) {
		d := loadedDeck(t, "Jazz", "Piano")
		m := newTestModel(t, d)
		before := d.Current().ID

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
		if cmd == nil {
			t.Fatal("expected a rebuild command")
		}
		cmd()
		d.Wait()

		if d.Current().ID == before {
			t.Error("expected a new card")
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := newTestModel(t, loadedDeck(t, "Jazz"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected a quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestModelDeckUpdates(t *testing.T) {
	t.Run("errors show in the status line", func(t *testing.T) {
		m := newTestModel(t, loadedDeck(t, "Jazz"))
		m.Update(deckUpdateMsg(deck.Update{Mode: models.LoadingAll, Err: errors.New("proxy down"), Done: true}))

		if !strings.Contains(m.View(), "proxy down") {
			t.Error("expected the error in the view")
		}
	})

	t.Run("a finished rebuild clears the error", func(t *testing.T) {
		m := newTestModel(t, loadedDeck(t, "Jazz"))
		m.Update(errorMsg(shared.ErrDeckBusy))
		m.Update(deckUpdateMsg(deck.Update{Mode: models.LoadingAll, Done: true}))

		if m.err != nil {
			t.Errorf("expected no error, got %v", m.err)
		}
	})

	t.Run("an empty deck loads on start", func(t *testing.T) {
		d := deck.New(deck.Options{
			Builder:   tasks.NewPlaylistEngine(tasks.EngineOpts{Generator: &tu.MockGenerator{}}),
			Selection: []models.Genre{"Jazz"},
		})
		m := newTestModel(t, d)

		cmd := m.ensureLoaded()
		if cmd == nil {
			t.Fatal("expected a load command")
		}
		cmd()
		d.Wait()

		if d.Len() != 1 {
			t.Errorf("expected 1 card, got %d", d.Len())
		}
	})
}
