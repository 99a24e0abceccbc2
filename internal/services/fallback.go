package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/turntable/internal/models"
)

// FallbackGenerator builds ideas from the mood labels alone.
type FallbackGenerator struct{}

func (FallbackGenerator) Name() string { return "fallback" }

func (FallbackGenerator) Generate(_ context.Context, mood models.Mood, genres []models.Genre) ([]Idea, error) {
	return FallbackIdeas(mood, genres), nil
}

// FallbackIdeas titles each genre after the mood, e.g. "Rainy night Jazz".
func FallbackIdeas(mood models.Mood, genres []models.Genre) []Idea {
	weather, tod := mood.Weather.Label(), mood.TimeOfDay.Label()

	ideas := make([]Idea, 0, len(genres))
	for _, g := range genres {
		ideas = append(ideas, Idea{
			Genre: g,
			Title: fmt.Sprintf("%s %s %s", weather, tod, g),
			Query: fmt.Sprintf("%s %s %s", g, weather, tod),
		})
	}
	return ideas
}

// MockImageURL returns a placeholder cover seeded by the sum of the genre's code points.
func MockImageURL(genre models.Genre) string {
	seed := 0
	for _, r := range string(genre) {
		seed += int(r)
	}
	return fmt.Sprintf("https://picsum.photos/seed/%d/400/400", seed)
}
