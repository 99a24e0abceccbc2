// Package services talks to the outside world on behalf of the deck: where
// playlist ideas come from, where cover art comes from and what the weather
// is.
//
// # Generators
//
// A [Generator] turns a [models.Mood] and a genre selection into [Idea]s.
// [APIService] asks a playlist generation proxy over HTTP; [FallbackGenerator]
// builds deterministic ideas locally and is used whenever the proxy is not
// configured or fails.
//
// # Cover Art
//
// [SpotifyService] implements [CoverFinder] with an app-only token from the
// client credentials flow. The [clientcredentials.Config] client refreshes the
// token on its own. [MockImageURL] gives every genre a stable placeholder.
//
// # Weather
//
// [OpenWeatherService] reads the current condition from OpenWeather;
// [StaticWeather] returns a fixed condition from config.
//
// # Error Handling
//
// Services wrap the sentinels of the shared package:
//   - [shared.ErrMissingCredentials] : a client was built without credentials
//   - [shared.ErrAPIRequest] : the upstream answered with a non-2xx status
//   - [shared.ErrCoverNotFound] : a search returned no image
package services
