package tui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"tasnim.dev/idc-audit/internal/tui/theme"
)

// tabSet drives the pane bar of a detail view: a fixed set of named panes,
// built lazily on first visit, one active at a time.
type tabSet struct {
	names  []string
	views  []View
	active int
	build  func(idx int) View
}

func newTabSet(names []string, build func(int) View) *tabSet {
	return &tabSet{
		names: names,
		views: make([]View, len(names)),
		build: build,
	}
}

// Switch activates pane idx, building it on first visit, and returns the
// pane's Init command.
func (t *tabSet) Switch(idx int) tea.Cmd {
	t.active = idx
	if t.views[idx] == nil && t.build != nil {
		t.views[idx] = t.build(idx)
	}
	if v := t.views[idx]; v != nil {
		return v.Init()
	}
	return nil
}

// HandleKey consumes pane navigation: tab and shift+tab cycle, digits jump
// (1-9 for the first nine panes, 0 for the tenth). Reports whether the key
// was consumed.
func (t *tabSet) HandleKey(key string) (bool, tea.Cmd) {
	n := len(t.names)
	switch key {
	case "tab":
		return true, t.Switch((t.active + 1) % n)
	case "shift+tab":
		return true, t.Switch((t.active + n - 1) % n)
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if key == "0" {
			idx = 9
		}
		if idx >= 0 && idx < n {
			return true, t.Switch(idx)
		}
	}
	return false, nil
}

// Bar renders the pane labels prefixed with their jump digits.
func (t *tabSet) Bar() string {
	labels := make([]string, len(t.names))
	for i, name := range t.names {
		label := strconv.Itoa((i+1)%10) + ":" + name
		style := theme.TabInactiveStyle
		if i == t.active {
			style = theme.TabActiveStyle
		}
		labels[i] = style.Render(label)
	}
	return theme.TabBarStyle.Render(strings.Join(labels, ""))
}

// Active returns the current pane, nil before its first Switch.
func (t *tabSet) Active() View {
	return t.views[t.active]
}

// Resize forwards the size to the active pane when it is resizable.
func (t *tabSet) Resize(width, height int) {
	if rv, ok := t.Active().(ResizableView); ok {
		rv.SetSize(width, height)
	}
}

// Forward delivers msg to the active pane and keeps its replacement.
func (t *tabSet) Forward(msg tea.Msg) tea.Cmd {
	if v := t.views[t.active]; v != nil {
		updated, cmd := v.Update(msg)
		t.views[t.active] = updated
		return cmd
	}
	return nil
}
