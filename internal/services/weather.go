package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
)

// StaticWeather always reports the same condition.
type StaticWeather models.Weather

func (s StaticWeather) Current(context.Context) (models.Weather, error) {
	return models.Weather(s), nil
}

// OpenWeatherService reads the current condition from the OpenWeather API.
type OpenWeatherService struct {
	cfg        shared.WeatherConfig
	httpClient *http.Client
}

func NewOpenWeatherService(cfg shared.WeatherConfig, client *http.Client) (*OpenWeatherService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: weather api_key", shared.ErrMissingCredentials)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.openweathermap.org/data/2.5"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenWeatherService{cfg: cfg, httpClient: client}, nil
}

type owmResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Current implements [WeatherSource]. Conditions outside the supported set read as Clear.
func (o *OpenWeatherService) Current(ctx context.Context) (models.Weather, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprint(o.cfg.Lat))
	params.Set("lon", fmt.Sprint(o.cfg.Lon))
	params.Set("appid", o.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.APIURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: openweather status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Weather) == 0 {
		return models.WeatherClear, nil
	}

	w, _ := models.ParseWeather(body.Weather[0].Main)
	return w, nil
}
