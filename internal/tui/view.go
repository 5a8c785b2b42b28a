package tui

import (
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	"tasnim.dev/idc-audit/internal/tui/theme"
)

// View is one screen on the navigation stack: the entity menu, an entity
// table, or a detail pane. Update returns the view to keep on the stack,
// which lets a view replace itself.
type View interface {
	Title() string
	View() string
	Update(msg tea.Msg) (View, tea.Cmd)
	Init() tea.Cmd
}

// Views navigate by message: PushViewMsg stacks a drill-down, PopViewMsg
// returns to the parent screen.
type PushViewMsg struct{ View View }

type PopViewMsg struct{}

// pushView wraps a drill-down target in a PushViewMsg command.
func pushView(v View) tea.Cmd {
	return func() tea.Msg {
		return PushViewMsg{View: v}
	}
}

// errViewMsg carries an async fetch failure back to the owning view.
type errViewMsg struct{ err error }

// Optional view capabilities. The model type-asserts these to decide which
// global keys apply to the current screen.

// FilterableView supports the "/" text filter over its rows.
type FilterableView interface {
	View
	AllRows() []table.Row
	SetRows(rows []table.Row)
}

// CopyableView supports c/C clipboard copy of the selected entity.
type CopyableView interface {
	View
	CopyID() string
	CopyARN() string
}

// ResizableView adapts to terminal size changes.
type ResizableView interface {
	View
	SetSize(width, height int)
}

// InputCapturingView temporarily owns the keyboard, e.g. while a search
// prompt is open. Global key handling pauses while CapturesInput is true.
type InputCapturingView interface {
	View
	CapturesInput() bool
}

func renderBreadcrumb(titles []string) string {
	var b strings.Builder
	sep := theme.BreadcrumbSepStyle.Render(" › ")
	for i, t := range titles {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(theme.BreadcrumbStyle.Render(t))
	}
	return b.String()
}
