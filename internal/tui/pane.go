package tui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// paneView is a static text pane backed by a scrollable viewport. Detail
// tabs use it for prerendered content.
type paneView struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
	width   int
	height  int
}

func newPaneView(title, content string) *paneView {
	return &paneView{title: title, content: content, width: 80, height: 20}
}

// newPaneViewport builds the scrolling surface all panes share: mouse wheel,
// soft wrap, a space of side padding. Width is clamped to 80 and height to 1
// so content set before the first WindowSizeMsg still lays out.
func newPaneViewport(width, height int) viewport.Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 80)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	vp.SoftWrap = true
	vp.Style = lipgloss.NewStyle().Padding(0, 1)
	return vp
}

func (p *paneView) Title() string { return p.title }

func (p *paneView) Init() tea.Cmd {
	p.vp = newPaneViewport(p.width, p.height)
	p.vp.SetContent(p.content)
	p.ready = true
	return nil
}

func (p *paneView) Update(msg tea.Msg) (View, tea.Cmd) {
	if !p.ready {
		return p, nil
	}
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

func (p *paneView) View() string {
	if !p.ready {
		return ""
	}
	return p.vp.View()
}

func (p *paneView) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.ready {
		p.vp.SetWidth(width)
		p.vp.SetHeight(max(height, 1))
	}
}
