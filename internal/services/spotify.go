// Spotify cover art lookup
//
// Response types follow https://developer.spotify.com/documentation/web-api/reference/search
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/turntable/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyAlbum is the part of an album a cover lookup needs.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyTrack is the part of a track a cover lookup needs.
type SpotifyTrack struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Album SpotifyAlbum `json:"album"`
}

// SpotifySearchResponse is the body of GET /search?type=track.
type SpotifySearchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyService finds cover art through the Spotify Web API.
type SpotifyService struct {
	config     clientcredentials.Config
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService builds a client using the client credentials flow.
//
// base, when set, carries both the token request and the API calls.
func NewSpotifyService(ctx context.Context, creds shared.SpotifyConfig, base *http.Client) (*SpotifyService, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	tokenURL := creds.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	apiURL := creds.APIURL
	if apiURL == "" {
		apiURL = spotifyBaseURL
	}

	cfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	return &SpotifyService{
		config:     cfg,
		baseURL:    apiURL,
		httpClient: cfg.Client(ctx),
	}, nil
}

func (s *SpotifyService) Name() string { return "Spotify" }

// Search returns up to limit tracks matching query.
func (s *SpotifyService) Search(ctx context.Context, query string, limit int) ([]SpotifyTrack, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprint(limit))

	var resp SpotifySearchResponse
	if err := s.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Tracks.Items, nil
}

// Cover implements [CoverFinder] with the album art of the top search hit.
func (s *SpotifyService) Cover(ctx context.Context, query string) (string, error) {
	tracks, err := s.Search(ctx, query, 1)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 || len(tracks[0].Album.Images) == 0 {
		return "", fmt.Errorf("%w: %q", shared.ErrCoverNotFound, query)
	}
	return tracks[0].Album.Images[0].URL, nil
}

// doRequest performs an authenticated GET against the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
