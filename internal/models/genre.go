package models

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownGenre  = errors.New("unknown genre")
	ErrTooManyGenres = errors.New("too many genres selected")
)

// Genre is a listener-selectable music genre.
type Genre string

// MaxSelectedGenres caps the selection, and with it the deck size.
const MaxSelectedGenres = 8

// AllGenres lists the known genres in display order.
var AllGenres = []Genre{
	"J-POP", "J-Rock", "J-HipHop", "Hip Hop", "Lo-fi Hip Hop", "City Pop",
	"R&B", "J-R&B", "Anime Song", "Vocaloid", "Idol Pop", "K-POP (Boy)",
	"K-POP (Girl)", "EDM", "House", "Techno", "Acoustic", "Jazz", "Piano",
	"Chill Out", "City Jazz",
}

// DefaultGenres is the selection of a first run.
var DefaultGenres = []Genre{"J-POP", "J-Rock", "Hip Hop", "City Pop", "K-POP (Girl)"}

// IsKnownGenre reports whether g is in [AllGenres].
func IsKnownGenre(g Genre) bool {
	return slices.Contains(AllGenres, g)
}

// ValidateGenres checks a selection for unknown entries, duplicates and size.
func ValidateGenres(genres []Genre) error {
	if len(genres) > MaxSelectedGenres {
		return fmt.Errorf("%w: %d selected, at most %d", ErrTooManyGenres, len(genres), MaxSelectedGenres)
	}

	seen := make(map[Genre]bool, len(genres))
	for _, g := range genres {
		if !IsKnownGenre(g) {
			return fmt.Errorf("%w: %q", ErrUnknownGenre, g)
		}
		if seen[g] {
			return fmt.Errorf("%w: %q selected twice", ErrUnknownGenre, g)
		}
		seen[g] = true
	}
	return nil
}

// GenresFromStrings converts config or CLI values.
func GenresFromStrings(values []string) []Genre {
	out := make([]Genre, 0, len(values))
	for _, v := range values {
		out = append(out, Genre(v))
	}
	return out
}

// HasGenresChanged compares two selections ignoring order.
func HasGenresChanged(prev, current []Genre) bool {
	if len(prev) != len(current) {
		return true
	}
	a, b := slices.Clone(prev), slices.Clone(current)
	slices.Sort(a)
	slices.Sort(b)
	return !slices.Equal(a, b)
}

// GenreDiff splits a selection change into its parts.
type GenreDiff struct {
	Added     []Genre
	Removed   []Genre
	Unchanged []Genre
}

// DiffGenres reports added and unchanged genres in current's order and
// removed ones in prev's order.
func DiffGenres(prev, current []Genre) GenreDiff {
	var d GenreDiff
	for _, g := range current {
		if slices.Contains(prev, g) {
			d.Unchanged = append(d.Unchanged, g)
		} else {
			d.Added = append(d.Added, g)
		}
	}
	for _, g := range prev {
		if !slices.Contains(current, g) {
			d.Removed = append(d.Removed, g)
		}
	}
	return d
}
