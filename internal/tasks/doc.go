// Package tasks builds decks of playlists with real-time progress reporting.
//
// # Core Operations
//
// [PlaylistEngine.Build] turns a mood and a genre selection into playlists:
//
//  1. Ideas : the configured [services.Generator] titles one playlist per genre
//     - runs under a timeout
//     - genres it fails on, or skips, get fallback ideas
//
//  2. Covers : a rate-limited worker pool resolves cover art per idea
//     - a failed lookup falls back to the genre's placeholder image
//
//  3. Done : playlists come back in selection order with fresh ids and a
//     shared batch id
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct carries the phase, step counters and a message.
// Updates use select with default so a slow reader never stalls a build.
package tasks
