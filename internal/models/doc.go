// Package models defines turntable's domain entities and the persistence
// interface implemented by the repositories package.
//
// # Ambient Context
//
//   - [Weather] : one of nine conditions, unknown names read as [WeatherClear]
//   - [TimeOfDay] : dawn, day, dusk or night, derived from the local hour
//   - [Mood] : the pair of both, the input to playlist generation
//
// # Deck Content
//
//   - [Playlist] : one card of the deck (genre, title, search query, cover)
//   - [Genre] : a listener-selectable genre, at most [MaxSelectedGenres] at once
//
// [DiffGenres] and [HasGenresChanged] compare selections so the deck can
// regenerate only the cards whose genre was added.
package models
