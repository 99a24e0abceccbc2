package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/turntable/internal/deck"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/theme"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	VinylView ViewState = iota
	DeckView
)

// Options configures a [Model].
type Options struct {
	Deck              *deck.Deck
	Config            rotation.Config
	RegenerateCurrent bool
	RegenerateAll     bool
	Logger            *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	opts    Options
	deck    *deck.Deck
	machine *rotation.Machine
	center  *rotation.TrackedCenter
	logger  *log.Logger
	layout  layout
	width   int
	height  int
	palette *theme.Palette
	mood    models.Mood
	cards   list.Model
	spinner spinner.Model
	update  *deck.Update
	release *rotation.Release
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Deck == nil {
		opts.Deck = deck.New(deck.Options{Logger: opts.Logger})
	}
	if opts.Config.FrameInterval <= 0 {
		opts.Config.FrameInterval = rotation.DefaultConfig().FrameInterval
	}

	m := &Model{
		ctx:     ctx,
		view:    VinylView,
		opts:    opts,
		deck:    opts.Deck,
		center:  &rotation.TrackedCenter{},
		logger:  opts.Logger,
		layout:  newLayout(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.machine = rotation.NewMachine(opts.Config, m.center,
		opts.Deck.Handlers(ctx, opts.RegenerateCurrent, opts.RegenerateAll),
		rotation.WithLogger(opts.Logger))
	m.cards = list.New(cardItems(opts.Deck.Items()), list.NewDefaultDelegate(), 0, 0)
	m.cards.Title = "Cards"
	m.refreshPalette()
	return m
}

// Init starts the frame clock and the deck listener, and loads the deck when it is empty.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.frame(), m.spinner.Tick, m.waitForUpdate(), m.ensureLoaded())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DeckView:
			return m.handleDeckKeys(msg)
		default:
			return m.handleVinylKeys(msg)
		}

	case tea.MouseMsg:
		if m.view == VinylView {
			m.handleMouse(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == DeckView {
		var cmd tea.Cmd
		m.cards, cmd = m.cards.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgFrame:
		m.machine.Frame(msg.data.(time.Time))
		return m, m.frame()

	case MsgDeckUpdate:
		u := msg.data.(deck.Update)
		m.update = &u
		if u.Err != nil {
			m.err = u.Err
		}
		if u.Done {
			m.update = nil
			if u.Err == nil {
				m.err = nil
			}
			m.cards.SetItems(cardItems(m.deck.Items()))
			m.refreshPalette()
		}
		return m, m.waitForUpdate()

	case MsgError:
		m.err = msg.data.(error)
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DeckView:
		return m.renderDeck()
	default:
		return m.renderVinyl()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.layout = newLayout(width, height)
	if m.layout.ok {
		m.center.Set(m.layout.center())
	} else {
		m.center.Reset()
	}
	m.cards.SetSize(width-4, height-4)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.layout.point(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.machine.PointerDown(p)
		}
	case tea.MouseActionMotion:
		if m.machine.Mode() == rotation.ModeDragging {
			m.machine.PointerMove(p)
		}
	case tea.MouseActionRelease:
		if m.machine.Mode() != rotation.ModeDragging {
			return
		}
		m.machine.PointerMove(p)
		m.finish(m.machine.PointerUp())
	}
}

func (m *Model) finish(r rotation.Release) {
	if r.Ignored {
		return
	}
	m.release = &r
	m.logger.Debug("release", "zone", r.Zone, "effective", r.Effective, "cumulative", r.Cumulative)
	if r.Effective == rotation.ZonePaginate {
		m.refreshPalette()
	}
}

func (m *Model) handleVinylKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.machine.Mode() == rotation.ModeDragging {
			m.finish(m.machine.PointerCancel())
		}
	case key.Matches(msg, m.keys.prev):
		m.page(rotation.DirectionPrevious)
	case key.Matches(msg, m.keys.next):
		m.page(rotation.DirectionNext)
	case key.Matches(msg, m.keys.regenerate):
		if m.opts.RegenerateCurrent {
			return m, m.run(m.deck.RegenerateCurrent)
		}
	case key.Matches(msg, m.keys.regenerateAll):
		if m.opts.RegenerateAll {
			return m, m.run(m.deck.RegenerateAll)
		}
	case key.Matches(msg, m.keys.cards):
		// The card list does not forward the mouse, so a drag cannot outlive it.
		if m.machine.Mode() == rotation.ModeDragging {
			m.finish(m.machine.PointerCancel())
		}
		m.cards.SetItems(cardItems(m.deck.Items()))
		m.cards.Select(m.deck.Index())
		m.view = DeckView
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleDeckKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.cards.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.cards, cmd = m.cards.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.cards):
		m.view = VinylView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.cards.SelectedItem().(cardItem); ok {
			m.selectCard(item.playlist.ID)
		}
		m.view = VinylView
		return m, nil
	}

	var cmd tea.Cmd
	m.cards, cmd = m.cards.Update(msg)
	return m, cmd
}

// page moves the deck from the keyboard. Dragging owns the record, so keys wait.
func (m *Model) page(dir rotation.Direction) {
	if m.machine.Mode() == rotation.ModeDragging {
		return
	}
	m.deck.Advance(dir)
	m.refreshPalette()
}

func (m *Model) selectCard(id string) {
	for i, p := range m.deck.Items() {
		if p.ID == id {
			m.deck.Select(i)
			m.refreshPalette()
			return
		}
	}
}

func (m *Model) refreshPalette() {
	if mood := m.deck.Mood(); m.palette == nil || mood != m.mood {
		m.mood = mood
		m.palette = theme.ForMood(mood)
	}
}

// frame schedules the next machine frame.
func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.opts.Config.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case u := <-m.deck.Updates():
			return deckUpdateMsg(u)
		}
	}
}

func (m *Model) ensureLoaded() tea.Cmd {
	if m.deck.Len() > 0 || m.deck.Loading() != models.LoadingNone {
		return nil
	}
	return m.run(m.deck.Load)
}

// run starts a deck rebuild. A busy deck is reported, not fatal.
func (m *Model) run(start func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := start(m.ctx); err != nil {
			if errors.Is(err, shared.ErrDeckBusy) {
				m.logger.Debug("rebuild skipped", "error", err)
			}
			return errorMsg(err)
		}
		return nil
	}
}

func (m *Model) renderVinyl() string {
	p := m.palette
	current := m.deck.Current()

	disc := Disc{Radius: m.layout.radius, Vinyl: p.Vinyl, Label: p.Label(current.Genre)}
	pad := strings.Repeat(" ", m.layout.left)
	lines := strings.Split(disc.Render(m.machine.Rotation()), "\n")

	var b strings.Builder
	b.WriteString(p.Title.Render(fmt.Sprintf("turntable • %s", m.mood)))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(pad + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderCard(current))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(p.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderCard(current models.Playlist) string {
	p := m.palette
	if current.IsEmpty() {
		return p.Muted.Render("No cards yet")
	}
	return fmt.Sprintf("%s %s\n%s",
		p.Label(current.Genre).Render(string(current.Genre)),
		p.Text.Render(current.Title),
		p.Muted.Render(fmt.Sprintf("%d/%d • %s", m.deck.Index()+1, m.deck.Len(), current.Query)),
	)
}

func (m *Model) renderStatus() string {
	p := m.palette
	snap := m.machine.Snapshot()

	switch {
	case snap.Mode == rotation.ModeDragging:
		return p.Text.Render(fmt.Sprintf("%+.0f° → %s", snap.Cumulative, snap.Preview))
	case m.deck.Loading() != models.LoadingNone:
		status := m.deck.Loading().Describe()
		if m.update != nil && m.update.Progress != nil && m.update.Progress.Message != "" {
			status = fmt.Sprintf("%s (%d/%d)", m.update.Progress.Message, m.update.Progress.Step, m.update.Progress.Total)
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), p.Warn.Render(status))
	case m.err != nil:
		return p.Err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.release != nil:
		r := m.release
		label := r.Effective.String()
		if r.Effective == rotation.ZonePaginate {
			label = fmt.Sprintf("%s %s", label, r.Direction)
		}
		return p.OK.Render(fmt.Sprintf("%s (%+.0f°)", label, r.Cumulative))
	default:
		return p.Muted.Render(snap.Mode.String())
	}
}

func (m *Model) renderDeck() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.cards.View(), m.palette.Help.Render(m.help.ShortHelpView(helpKeys)))
}
