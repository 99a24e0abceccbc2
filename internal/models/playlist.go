package models

import (
	"errors"
	"fmt"
	"time"
)

// EmptyPlaylistID identifies the placeholder card shown by an empty deck.
const EmptyPlaylistID = "empty"

// Playlist is one card of the deck.
type Playlist struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id,omitempty"`
	Genre     Genre     `json:"genre"`
	Title     string    `json:"title"`
	Query     string    `json:"query"`
	ImageURL  string    `json:"image_url"`
	Mood      Mood      `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// EmptyPlaylist is the placeholder card shown while the deck has nothing to page through.
var EmptyPlaylist = Playlist{
	ID:    EmptyPlaylistID,
	Genre: "---",
	Title: "No playlists yet",
}

func (p *Playlist) Key() string { return p.ID }

// IsEmpty reports whether p is the placeholder card.
func (p *Playlist) IsEmpty() bool { return p.ID == EmptyPlaylistID }

func (p *Playlist) Validate() error {
	switch {
	case p.ID == "":
		return errors.New("playlist id is required")
	case p.Genre == "":
		return fmt.Errorf("playlist %s has no genre", p.ID)
	case p.Title == "":
		return fmt.Errorf("playlist %s has no title", p.ID)
	}
	return nil
}

// LoadingMode says why the deck is (re)building.
type LoadingMode string

const (
	LoadingNone    LoadingMode = ""
	LoadingInitial LoadingMode = "initial"
	LoadingAll     LoadingMode = "all"
	LoadingSingle  LoadingMode = "single"
	LoadingAdded   LoadingMode = "added"
	LoadingAuto    LoadingMode = "auto"
)

// Describe is the status line shown while loading.
func (m LoadingMode) Describe() string {
	switch m {
	case LoadingAll:
		return "Rebuilding every playlist"
	case LoadingSingle:
		return "Rebuilding this playlist"
	case LoadingAdded:
		return "Building playlists for added genres"
	case LoadingAuto:
		return "Rebuilding for the new weather and time"
	case LoadingNone:
		return ""
	default:
		return "Building playlists"
	}
}
