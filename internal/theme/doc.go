// Package theme maps a mood and a genre onto colours.
//
// Backgrounds are a static weather x time-of-day table of gradient stops with
// a separate top colour. A mood whose top colour is not the bright default is
// dark, and text drawn over it switches to light colours. Unknown weather
// falls back to the Clear row.
//
// Genre accents colour the vinyl label. [Palette] bundles the lipgloss styles
// the TUI draws with.
package theme
