// Package deck holds the ordered playlist cards the vinyl pages through.
//
// A [Deck] is safe for concurrent use. Paging is synchronous; every rebuild
// (initial load, regenerate current, regenerate all, added genres, mood
// change) runs on its own goroutine and reports progress and completion on
// the channel returned by [Deck.Updates]. Only one rebuild runs at a time: a
// second request while one is outstanding fails with shared.ErrDeckBusy.
//
// # Cards
//
// Cards are kept in selection order, one per genre. An empty deck shows
// models.EmptyPlaylist and cannot be paged. Paging wraps around in both
// directions.
//
// # Rotation
//
// [Deck.Handlers] adapts a deck to rotation.Handlers so a gesture machine can
// page it and request rebuilds from its release callbacks without blocking.
package deck
