// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the jukebox database:
//  1. [ListBrowseView] : Browse stored album lists
//  2. [AlbumView] : View a list's albums with catalog metadata
//  3. [ReviewView] : Read reviews for a selected album
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Album metadata is resolved through the export engine so the browser shares its
// hydration path with bulk exports.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
