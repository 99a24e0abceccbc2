package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/turntable/internal/deck"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFrame MsgKind = iota
	MsgDeckUpdate
	MsgError
)

// frameMsg is the constructor for [MsgFrame]
func frameMsg(now time.Time) Msg {
	return Msg{kind: MsgFrame, data: now}
}

// deckUpdateMsg is the constructor for [MsgDeckUpdate]
func deckUpdateMsg(u deck.Update) Msg {
	return Msg{kind: MsgDeckUpdate, data: u}
}

// errorMsg is the constructor for [MsgError]
func errorMsg(err error) Msg {
	return Msg{kind: MsgError, data: err}
}
