package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"tasnim.dev/idc-audit/internal/tui/theme"
)

// PolicyView renders an IAM policy document with JSON highlighting,
// case-insensitive search, and a soft-wrap toggle. It implements the View
// and ResizableView interfaces.
type PolicyView struct {
	title    string
	doc      string // indented, highlighted policy text
	viewport viewport.Model
	ready    bool

	// Search
	searching   bool
	searchInput textinput.Model
	searchQuery string
	matchLines  []int
	matchIndex  int

	softWrap bool

	width  int
	height int
}

var searchHighlightStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#F59E0B")).
	Foreground(lipgloss.Color("#000000"))

// NewPolicyView builds a PolicyView from a raw policy document. The document
// is re-indented before highlighting; anything json.Indent rejects renders
// as-is.
func NewPolicyView(title, doc string) *PolicyView {
	pv := &PolicyView{
		title:    title,
		softWrap: true,
		width:    80,
		height:   24,
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(doc), "", "  "); err == nil {
		doc = buf.String()
	}
	pv.doc = highlightJSON(doc)
	return pv
}

// highlightJSON runs doc through chroma's JSON lexer. Tokenise or format
// failures fall back to the plain text.
func highlightJSON(doc string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return doc
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, doc)
	if err != nil {
		return doc
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return doc
	}
	return buf.String()
}

func (pv *PolicyView) newViewport() viewport.Model {
	h := pv.height - 2 // reserve space for status bar
	if h < 1 {
		h = 1
	}

	vp := viewport.New(
		viewport.WithWidth(pv.width),
		viewport.WithHeight(h),
	)
	vp.MouseWheelEnabled = true
	vp.SoftWrap = pv.softWrap
	vp.Style = lipgloss.NewStyle().Padding(0, 1)
	vp.LeftGutterFunc = func(info viewport.GutterContext) string {
		if info.Soft {
			return "     " + theme.MutedStyle.Render("│ ")
		}
		if info.Index >= info.TotalLines {
			return "   " + theme.MutedStyle.Render("~ │ ")
		}
		return theme.MutedStyle.Render(fmt.Sprintf("%4d │ ", info.Index+1))
	}

	return vp
}

func (pv *PolicyView) Title() string { return pv.title }

func (pv *PolicyView) HelpContext() *HelpContext {
	ctx := HelpContextPolicy
	return &ctx
}

// CapturesInput reports whether the search prompt currently owns the keyboard.
func (pv *PolicyView) CapturesInput() bool { return pv.searching }

func (pv *PolicyView) Init() tea.Cmd {
	pv.viewport = pv.newViewport()
	pv.viewport.SetContent(pv.doc)
	pv.ready = true

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 256
	pv.searchInput = ti

	return nil
}

func (pv *PolicyView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		key := msg.String()

		if pv.searching {
			switch key {
			case "enter":
				pv.applySearch()
				pv.searching = false
				pv.searchInput.Blur()
				return pv, nil
			case "esc":
				pv.clearSearch()
				pv.searching = false
				pv.searchInput.Blur()
				return pv, nil
			default:
				var cmd tea.Cmd
				pv.searchInput, cmd = pv.searchInput.Update(msg)
				return pv, cmd
			}
		}

		switch key {
		case "/":
			pv.searching = true
			pv.searchInput.SetValue("")
			pv.searchInput.Focus()
			return pv, textinput.Blink
		case "n":
			if len(pv.matchLines) > 0 {
				pv.matchIndex = (pv.matchIndex + 1) % len(pv.matchLines)
				pv.jumpToMatch()
			}
			return pv, nil
		case "shift+n", "N":
			if len(pv.matchLines) > 0 {
				pv.matchIndex = (pv.matchIndex - 1 + len(pv.matchLines)) % len(pv.matchLines)
				pv.jumpToMatch()
			}
			return pv, nil
		case "w":
			pv.softWrap = !pv.softWrap
			pv.viewport.SoftWrap = pv.softWrap
			return pv, nil
		}
	}

	if pv.ready {
		var cmd tea.Cmd
		pv.viewport, cmd = pv.viewport.Update(msg)
		return pv, cmd
	}
	return pv, nil
}

func (pv *PolicyView) applySearch() {
	query := pv.searchInput.Value()
	if query == "" {
		pv.clearSearch()
		return
	}
	pv.searchQuery = query
	pv.matchLines = matchLines(pv.doc, query)
	pv.matchIndex = 0

	if len(pv.matchLines) == 0 {
		pv.viewport.SetContent(pv.doc)
		return
	}
	pv.viewport.SetContent(markMatches(pv.doc, query))
	pv.jumpToMatch()
}

func (pv *PolicyView) clearSearch() {
	pv.searchQuery = ""
	pv.matchLines = nil
	pv.matchIndex = 0
	pv.viewport.SetContent(pv.doc)
}

// matchLines returns the line number of every case-insensitive occurrence of
// query in doc, one entry per occurrence, in document order.
func matchLines(doc, query string) []int {
	lower := strings.ToLower(doc)
	q := strings.ToLower(query)

	var lines []int
	line, pos := 0, 0
	for {
		idx := strings.Index(lower[pos:], q)
		if idx < 0 {
			return lines
		}
		line += strings.Count(doc[pos:pos+idx], "\n")
		lines = append(lines, line)
		pos += idx + len(q)
	}
}

// markMatches wraps every case-insensitive occurrence of query in the search
// highlight style.
func markMatches(doc, query string) string {
	lower := strings.ToLower(doc)
	q := strings.ToLower(query)

	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(lower[pos:], q)
		if idx < 0 {
			b.WriteString(doc[pos:])
			return b.String()
		}
		b.WriteString(doc[pos : pos+idx])
		b.WriteString(searchHighlightStyle.Render(doc[pos+idx : pos+idx+len(q)]))
		pos += idx + len(q)
	}
}

// jumpToMatch scrolls the viewport to the line of the current match.
func (pv *PolicyView) jumpToMatch() {
	if !pv.ready || pv.matchIndex >= len(pv.matchLines) {
		return
	}
	pv.viewport.SetYOffset(pv.matchLines[pv.matchIndex])
}

func (pv *PolicyView) View() string {
	if !pv.ready {
		return ""
	}

	var status strings.Builder
	status.WriteString(fmt.Sprintf(" %.0f%%", pv.viewport.ScrollPercent()*100))
	if pv.softWrap {
		status.WriteString("  wrap")
	}
	status.WriteString("  / search  w wrap  n/N next/prev")
	if pv.searchQuery != "" {
		if len(pv.matchLines) > 0 {
			status.WriteString(fmt.Sprintf("  [%d/%d]", pv.matchIndex+1, len(pv.matchLines)))
		} else {
			status.WriteString("  no match")
		}
	}
	status.WriteString("  Esc back")

	if pv.searching {
		return pv.viewport.View() + "\n/" + pv.searchInput.View()
	}
	return pv.viewport.View() + "\n" + theme.MutedStyle.Render(status.String())
}

func (pv *PolicyView) SetSize(width, height int) {
	pv.width = width
	pv.height = height
	if pv.ready {
		pv.viewport.SetWidth(width)
		h := height - 2
		if h < 1 {
			h = 1
		}
		pv.viewport.SetHeight(h)
	}
}
