package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
	"tasnim.dev/idc-audit/internal/tui/theme"
)

type clearStatusMsg struct{}

// Model is the root Bubble Tea model for the directory browser. It owns the
// view stack, the filter prompt, clipboard feedback, and the help overlay.
type Model struct {
	client    *awsclient.ServiceClient
	instance  ssoadmin.Instance
	profile   string
	accountID string
	stack     []View

	// Window size
	width  int
	height int

	// Filter state
	filtering   bool
	filterInput textinput.Model
	filterQuery string

	// Copy / status feedback
	copiedText string
	statusErr  error

	// Help overlay
	showHelp bool
}

// NewModel creates a new directory browser model rooted at the entity menu.
func NewModel(client *awsclient.ServiceClient, instance ssoadmin.Instance, profile, accountID string) Model {
	root := NewRootView(client, instance)

	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 64

	return Model{
		client:      client,
		instance:    instance,
		profile:     profile,
		accountID:   accountID,
		stack:       []View{root},
		filterInput: ti,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.stack) > 0 {
		return m.stack[len(m.stack)-1].Init()
	}
	return nil
}

// contentSize returns the width and height available to stack views.
// Chrome takes ~8 lines: header(2) + filter(1) + padding(3) + help(2).
func (m Model) contentSize() (int, int) {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return m.width - 6, h
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearStatusMsg:
		m.copiedText = ""
		m.statusErr = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.contentSize()
		// Resize all views in the stack so back-navigation uses correct size
		for _, v := range m.stack {
			if rv, ok := v.(ResizableView); ok {
				rv.SetSize(w, h)
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		// Help overlay: ? toggles, Esc dismisses
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.filtering {
			return m.updateFilterMode(msg)
		}

		return m.updateNormalKey(msg)

	case PushViewMsg:
		return m.push(msg.View)

	case PopViewMsg:
		return m.pop(), nil

	case navigateGroupMsg:
		return m.push(NewGroupMembersView(m.client, m.instance, msg.group))

	case navigateGroupErrMsg:
		m.statusErr = msg.err
		return m, m.clearStatusAfter()
	}

	// Delegate to current view
	if len(m.stack) > 0 {
		current := m.stack[len(m.stack)-1]
		updated, cmd := current.Update(msg)
		m.stack[len(m.stack)-1] = updated
		return m, cmd
	}

	return m, nil
}

func (m Model) push(v View) (tea.Model, tea.Cmd) {
	m.stack = append(m.stack, v)
	if m.width > 0 && m.height > 0 {
		if rv, ok := v.(ResizableView); ok {
			rv.SetSize(m.contentSize())
		}
	}
	return m, v.Init()
}

func (m Model) pop() Model {
	if len(m.stack) <= 1 {
		return m
	}
	popped := m.stack[len(m.stack)-1]
	if c, ok := popped.(interface{ Cancel() }); ok {
		c.Cancel()
	}
	m.stack = m.stack[:len(m.stack)-1]
	return m
}

func (m Model) View() tea.View {
	// Help overlay replaces the whole frame
	if m.showHelp && len(m.stack) > 0 {
		ctx := detectHelpContext(m.stack[len(m.stack)-1])
		v := tea.NewView(renderHelp(ctx, m.width, m.height))
		v.AltScreen = true
		return v
	}

	// Build breadcrumb
	titles := make([]string, len(m.stack))
	for i, v := range m.stack {
		titles[i] = v.Title()
	}
	breadcrumb := renderBreadcrumb(titles)

	// Profile, identity store, and account info
	profileText := "default"
	if m.profile != "" {
		profileText = m.profile
	}
	infoText := fmt.Sprintf("profile: %s  store: %s", profileText, m.instance.IdentityStoreID)
	if m.accountID != "" {
		infoText += "  account: " + m.accountID
	}
	info := theme.ProfileStyle.Render(infoText)

	header := lipgloss.JoinHorizontal(lipgloss.Top, breadcrumb, "   ", info)

	// Filter bar
	filterBar := ""
	if m.filtering {
		filterBar = theme.FilterStyle.Render("/ ") + m.filterInput.View() + "\n"
	} else if m.filterQuery != "" {
		filterBar = theme.FilterStyle.Render(fmt.Sprintf("filter: %s", m.filterQuery)) + "\n"
	}

	// Current view content
	content := ""
	if len(m.stack) > 0 {
		content = m.stack[len(m.stack)-1].View()
	}

	// Footer: copy feedback, status errors, or context key hints
	var help string
	switch {
	case m.copiedText != "":
		help = theme.CopiedStyle.Render(fmt.Sprintf("Copied: %s", m.copiedText))
	case m.statusErr != nil:
		help = theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.statusErr))
	case m.filtering:
		help = theme.HelpStyle.Render("Enter to lock filter • Esc to clear")
	default:
		ctx := HelpContextRoot
		if len(m.stack) > 0 {
			ctx = detectHelpContext(m.stack[len(m.stack)-1])
		}
		help = theme.HelpStyle.Render(RenderKeyHints(ctx, m.width-6))
	}

	base := theme.AppStyle.Render(
		theme.HeaderStyle.Render(header) + "\n\n" +
			filterBar +
			content + "\n" +
			help,
	)

	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (m Model) updateFilterMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterQuery = ""
		m.filterInput.SetValue("")
		if fv, ok := m.currentFilterable(); ok {
			fv.SetRows(fv.AllRows())
		}
		return m, nil
	case "enter":
		m.filtering = false
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filterQuery = m.filterInput.Value()
		if fv, ok := m.currentFilterable(); ok {
			m.applyFilter(fv)
		}
		return m, cmd
	}
}

func (m Model) updateNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// Views with an open prompt (e.g. document search) get keys untouched.
	if len(m.stack) > 0 {
		if icv, ok := m.stack[len(m.stack)-1].(InputCapturingView); ok && icv.CapturesInput() {
			current := m.stack[len(m.stack)-1]
			updated, cmd := current.Update(msg)
			m.stack[len(m.stack)-1] = updated
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.stack) > 1 {
			return m.pop(), nil
		}
		return m, tea.Quit
	case "backspace":
		if len(m.stack) > 1 {
			return m.pop(), nil
		}
	case "/":
		if _, ok := m.currentFilterable(); ok {
			m.filtering = true
			m.filterInput.SetValue("")
			m.filterInput.Focus()
			return m, textinput.Blink
		}
	case "?":
		m.showHelp = true
		return m, nil
	case "c":
		if cv, ok := m.currentCopyable(); ok {
			id := cv.CopyID()
			if id != "" {
				clipboard.WriteAll(id)
				m.copiedText = id
				return m, m.clearStatusAfter()
			}
		}
	case "C":
		if cv, ok := m.currentCopyable(); ok {
			arn := cv.CopyARN()
			if arn != "" {
				clipboard.WriteAll(arn)
				m.copiedText = arn
				return m, m.clearStatusAfter()
			}
		}
	}

	// Delegate to current view for unhandled keys
	if len(m.stack) > 0 {
		current := m.stack[len(m.stack)-1]
		updated, cmd := current.Update(msg)
		m.stack[len(m.stack)-1] = updated
		return m, cmd
	}
	return m, nil
}

func (m Model) currentFilterable() (FilterableView, bool) {
	if len(m.stack) == 0 {
		return nil, false
	}
	fv, ok := m.stack[len(m.stack)-1].(FilterableView)
	return fv, ok
}

func (m Model) currentCopyable() (CopyableView, bool) {
	if len(m.stack) == 0 {
		return nil, false
	}
	cv, ok := m.stack[len(m.stack)-1].(CopyableView)
	return cv, ok
}

func (m Model) applyFilter(fv FilterableView) {
	if m.filterQuery == "" {
		fv.SetRows(fv.AllRows())
		return
	}
	query := strings.ToLower(m.filterQuery)
	var filtered []table.Row
	for _, row := range fv.AllRows() {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), query) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	fv.SetRows(filtered)
}

func (m Model) clearStatusAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
