package services

import (
	"context"

	"github.com/desertthunder/turntable/internal/models"
)

// Idea is a generated playlist before it gets an id and a cover.
type Idea struct {
	Genre models.Genre `json:"genre"`
	Title string       `json:"title"`
	Query string       `json:"query"`
}

// Generator produces one [Idea] per requested genre.
type Generator interface {
	Generate(ctx context.Context, mood models.Mood, genres []models.Genre) ([]Idea, error)
	Name() string
}

// CoverFinder resolves a search query to a cover image URL.
type CoverFinder interface {
	Cover(ctx context.Context, query string) (string, error)
}

// WeatherSource reports the current condition.
type WeatherSource interface {
	Current(ctx context.Context) (models.Weather, error)
}
