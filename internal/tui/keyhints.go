package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"tasnim.dev/idc-audit/internal/tui/theme"
)

type keyHint struct {
	key  string
	desc string
}

// contextHints orders each context's footer hints most-used first; rendering
// drops hints from the tail when the terminal is narrow.
var contextHints = map[HelpContext][]keyHint{
	HelpContextRoot: {
		{"Enter", "select"},
		{"j/k", "navigate"},
		{"?", "help"},
		{"q", "quit"},
	},
	HelpContextTable: {
		{"Enter", "drill"},
		{"/", "filter"},
		{"n/p", "page"},
		{"L", "more"},
		{"r", "refresh"},
		{"c", "copy"},
		{"?", "help"},
	},
	HelpContextDetail: {
		{"Tab", "switch"},
		{"r", "refresh"},
		{"c", "copy"},
		{"Esc", "back"},
		{"?", "help"},
	},
	HelpContextPolicy: {
		{"/", "search"},
		{"n/N", "next/prev"},
		{"w", "wrap"},
		{"Esc", "back"},
		{"?", "help"},
	},
}

var fallbackHints = []keyHint{
	{"Esc", "back"},
	{"?", "help"},
	{"q", "quit"},
}

// RenderKeyHints builds the one-line hint footer for a context, keeping as
// many hints as fit in width. The first hint always renders.
func RenderKeyHints(ctx HelpContext, width int) string {
	hints, ok := contextHints[ctx]
	if !ok {
		hints = fallbackHints
	}

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.Muted)
	sep := mutedStyle.Render(" · ")

	var b strings.Builder
	// Track printable width by hand; the rendered string is padded with
	// ANSI codes that would throw off len.
	used := 0
	for i, h := range hints {
		cost := len(h.key) + 1 + len(h.desc)
		if i > 0 {
			cost += 3
		}
		if i > 0 && used+cost > width {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(keyStyle.Render(h.key))
		b.WriteByte(' ')
		b.WriteString(mutedStyle.Render(h.desc))
		used += cost
	}
	return b.String()
}
