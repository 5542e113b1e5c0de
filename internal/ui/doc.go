// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for the captioning pipeline:
//  1. [InputView] : Enter a video URL
//  2. [RunView] : Monitor real-time pipeline progress with a percentage bar
//  3. [ResultView] : Display the outcome, the download link, and affected words
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Progress updates flow through a channel from the pipeline Engine, providing
// non-blocking status reporting during a run. Submissions are ignored while a
// run is in flight; input is re-enabled on every terminal transition.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
