package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"tasnim.dev/idc-audit/internal/tui/theme"
)

// HelpContext determines which keybinding set to show.
type HelpContext int

const (
	HelpContextRoot HelpContext = iota
	HelpContextTable
	HelpContextDetail
	HelpContextPolicy
)

type helpBinding struct {
	key  string
	desc string
}

func renderHelp(ctx HelpContext, width, height int) string {
	var title string
	var bindings []helpBinding

	switch ctx {
	case HelpContextRoot:
		title = "Keybindings — Root"
		bindings = []helpBinding{
			{"Enter", "Select entity"},
			{"j/k", "Navigate up/down"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	case HelpContextTable:
		title = "Keybindings — Table"
		bindings = []helpBinding{
			{"Enter", "Drill down"},
			{"/", "Filter rows"},
			{"n", "Next page"},
			{"p", "Prev page"},
			{"L", "Load more"},
			{"r", "Refresh data"},
			{"c", "Copy ID"},
			{"C", "Copy ARN"},
			{"j/k", "Navigate up/down"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	case HelpContextDetail:
		title = "Keybindings — Permission Set Detail"
		bindings = []helpBinding{
			{"Tab/1-3", "Switch tabs"},
			{"r", "Refresh data"},
			{"c", "Copy ID"},
			{"C", "Copy ARN"},
			{"j/k", "Scroll up/down"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	case HelpContextPolicy:
		title = "Keybindings — Policy Document"
		bindings = []helpBinding{
			{"/", "Search"},
			{"n/N", "Next/prev match"},
			{"w", "Toggle wrap"},
			{"j/k", "Scroll up/down"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	}

	var b strings.Builder
	b.WriteString(theme.HelpTitleStyle.Render(title) + "\n")
	for _, binding := range bindings {
		b.WriteString(theme.HelpKeyStyle.Render(binding.key) + theme.HelpDescStyle.Render(binding.desc) + "\n")
	}

	box := theme.HelpBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// detectHelpContext determines the help context from the current view. Views
// with special bindings expose them through an optional HelpContext method;
// anything filterable is a table, everything else gets the root bindings.
func detectHelpContext(v View) HelpContext {
	if hv, ok := v.(interface{ HelpContext() *HelpContext }); ok {
		if ctx := hv.HelpContext(); ctx != nil {
			return *ctx
		}
	}
	if _, ok := v.(FilterableView); ok {
		return HelpContextTable
	}
	return HelpContextRoot
}
