package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/turntable/internal/models"
)

var (
	_ list.Item = cardItem{}
)

// cardItem wraps [models.Playlist] to implement [list.Item].
type cardItem struct {
	playlist models.Playlist
}

func (i cardItem) FilterValue() string { return i.playlist.Title }
func (i cardItem) Title() string       { return i.playlist.Title }
func (i cardItem) Description() string {
	desc := string(i.playlist.Genre)
	if i.playlist.Query != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Query)
	}
	return desc
}

func cardItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = cardItem{playlist: p}
	}
	return items
}
