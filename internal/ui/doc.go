// Package ui contains the Bubble Tea program that renders the accessible
// autocomplete widget in a terminal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys, mouse, lookup results, status ticks, catalogue reloads).
//   - Handlers call operations on the selection state machine in
//     internal/ui/state and turn the returned Change into commands: a lookup
//     through the command bus, or nothing at all.
//   - finishUpdate compares the described status with the last one and starts
//     a debounce tick when it changed; only the newest tick is announced.
//
// State ownership:
//   - internal/ui/state.Combobox owns the query, the options, the highlight,
//     focus and whether the menu is open. The Model only keeps the latest
//     Snapshot for rendering.
//   - Announcements go through internal/announce, which alternates between two
//     regions shown below the options.
//
// Backend interactions:
//   - Lookups run as tea.Cmd values on the command bus. Each carries the
//     sequence number of the query that issued it; results for older queries
//     are dropped when they arrive.
//   - A backend.Watcher streams catalogue reloads. Update hands them to the
//     dispatcher and re-runs the lookup for the current query.
package ui
