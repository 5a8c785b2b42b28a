package utils

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// DetailBuilder accumulates the body of a detail pane: aligned label/value
// rows broken into named sections. The label column has a fixed width so
// values line up down the pane.
type DetailBuilder struct {
	sb    strings.Builder
	label lipgloss.Style
	rule  lipgloss.Style
}

// NewDetailBuilder returns a builder whose labels occupy labelWidth columns.
// Labels and section rules render in style.
func NewDetailBuilder(labelWidth int, style lipgloss.Style) *DetailBuilder {
	return &DetailBuilder{
		label: style.Width(labelWidth),
		rule:  style,
	}
}

// Section opens a named group with a horizontal rule, "── name ─────".
func (d *DetailBuilder) Section(name string) {
	filler := 40 - len(name)
	if filler < 4 {
		filler = 4
	}
	d.sb.WriteString(d.rule.Render("  ── " + name + " " + strings.Repeat("─", filler)))
	d.sb.WriteByte('\n')
}

// Row writes one aligned label/value pair.
func (d *DetailBuilder) Row(label, value string) {
	d.sb.WriteString("  ")
	d.sb.WriteString(d.label.Render(label))
	d.sb.WriteByte(' ')
	d.sb.WriteString(value)
	d.sb.WriteByte('\n')
}

// Blank separates groups with an empty line.
func (d *DetailBuilder) Blank() {
	d.sb.WriteByte('\n')
}

// String returns the assembled pane body.
func (d *DetailBuilder) String() string {
	return d.sb.String()
}
