// Package ui implements the interactive vinyl using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [VinylView] : the spinning record. Drag it with the mouse to page or regenerate cards.
//  2. [DeckView] : the card list. Jump to a card with enter.
//
// The (view) [Model] owns one [rotation.Machine] and calls it from Update only. Frames come
// from tea.Tick at the configured frame interval, mouse press/motion/release become
// pointer-down/move/up, and deck rebuild updates arrive through a command that waits on
// [deck.Deck.Updates].
//
// Terminal cells are about twice as tall as they are wide, so pointer positions are
// scaled by [CellAspect] before they reach the machine.
package ui
