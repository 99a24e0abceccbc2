// Client for the playlist generation proxy
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
)

// APIService asks a playlist generation proxy for ideas.
//
// The proxy accepts POST /generate with the mood and genres and answers with
// a JSON array of ideas.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a client for the proxy at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (a *APIService) Name() string { return "proxy" }

type generateRequest struct {
	Weather   models.Weather   `json:"weather"`
	TimeOfDay models.TimeOfDay `json:"time_of_day"`
	Genres    []models.Genre   `json:"genres"`
}

// Generate implements [Generator]. Ideas for genres that were not requested are dropped.
func (a *APIService) Generate(ctx context.Context, mood models.Mood, genres []models.Genre) ([]Idea, error) {
	body := generateRequest{Weather: mood.Weather, TimeOfDay: mood.TimeOfDay, Genres: genres}

	var ideas []Idea
	if err := a.postJSON(ctx, "/generate", body, &ideas); err != nil {
		return nil, err
	}

	requested := make(map[models.Genre]bool, len(genres))
	for _, g := range genres {
		requested[g] = true
	}

	kept := ideas[:0]
	for _, idea := range ideas {
		if requested[idea.Genre] && idea.Title != "" {
			kept = append(kept, idea)
		}
	}
	return kept, nil
}

// Health reports whether the proxy answers GET /health with a 2xx status.
func (a *APIService) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	_, err = a.do(req)
	return err
}

func (a *APIService) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := a.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (a *APIService) do(req *http.Request) ([]byte, error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %s returned %d", shared.ErrAPIRequest, req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}
