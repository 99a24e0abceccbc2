// Package repositories implements SQLite persistence for the deck and the genre selection.
//
// Key Implementations:
//   - [PlaylistRepository] : models.Repository[*models.Playlist] over the last generated deck,
//     plus [PlaylistRepository.LoadDeck] and [PlaylistRepository.SaveDeck] for the deck package
//   - [GenreRepository] : the listener's selected genres in display order
//
// Writes that replace a whole set run in one transaction through [withTx], so a
// reader never sees half a deck.
package repositories
