/*
Package tui implements the interactive launcher for curlfmt.

# Architecture

The launcher follows the Bubble Tea Model-Update-View pattern:
  - model.go: state, initialization and the Run entry point
  - keys.go: keyboard handling for the query input and the result list
  - render.go: view rendering and item delegate
  - styles.go: lipgloss styles and layout constants

# Flow

The query input starts focused. On start, and whenever enter is pressed in
the input, the query is handed to launcher.Handler inside a tea.Cmd so the
curl process never blocks the event loop. Results replace the list; stale
results from an older query are dropped.

Tab moves focus to the list. Enter on an item activates it: copy items
write their report to the clipboard and close the launcher, hide items
just close it.

# Example Usage

	handler := launcher.NewHandler(builder, nil, logger)
	copied, err := tui.Run(handler, "")
	if err != nil {
		log.Fatal(err)
	}
*/
package tui
