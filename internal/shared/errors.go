package shared

import "errors"

var (
	ErrNotImplemented = errors.New("not implemented")

	// Configuration errors
	ErrMissingConfig       = errors.New("configuration not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrMissingCredentials  = errors.New("missing credentials")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrConfigAlreadyExists = errors.New("config file already exists")

	// Deck errors
	ErrDeckBusy  = errors.New("regeneration already in progress")
	ErrEmptyDeck = errors.New("deck has no playlists")
	ErrNoGenres  = errors.New("no genres selected")

	// Storage errors
	ErrNotFound = errors.New("record not found")

	// API and service errors
	ErrAPIRequest         = errors.New("API request failed")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrCoverNotFound      = errors.New("cover art not found")
	ErrTimeout            = errors.New("operation timed out")

	// Input validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidScript   = errors.New("invalid gesture script")
)
