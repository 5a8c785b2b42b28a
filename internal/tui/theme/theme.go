package theme

import (
	"image/color"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"
)

// Palette. Indigo accent with a slate secondary; semantic colors for
// entity statuses.
var (
	Primary   = lipgloss.Color("#7C83FD")
	Secondary = lipgloss.Color("#3D4A6B")
	Muted     = lipgloss.Color("#707A8A")
	Success   = lipgloss.Color("#2BB673")
	Warning   = lipgloss.Color("#E3A008")
	Error     = lipgloss.Color("#E5484D")
)

// Frame chrome: outer padding, header rule, breadcrumb trail.
var (
	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)

	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Muted).
			Padding(0, 1)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	BreadcrumbSepStyle = lipgloss.NewStyle().
				Foreground(Muted)

	ProfileStyle = lipgloss.NewStyle().
			Foreground(Secondary)
)

// Footer and inline feedback.
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(1, 0, 0, 0)

	FilterStyle = lipgloss.NewStyle().
			Foreground(Primary)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(2)
)

// Detail tabs.
var (
	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 1)

	TabBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Muted)
)

// Help overlay.
var (
	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 3)

	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C9CEDA"))
)

// StatusColor maps Identity Center and Organizations entity statuses to the
// palette. Account states (ACTIVE, SUSPENDED, PENDING_CLOSURE), user and
// group enablement, and permission set provisioning states all route here.
func StatusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "active", "enabled", "succeeded", "provisioned", "healthy",
		"latest_permission_set_provisioned":
		return Success
	case "suspended", "disabled", "failed", "deleted",
		"latest_permission_set_not_provisioned":
		return Error
	case "pending_closure", "in_progress", "creating", "updating",
		"create_in_progress", "delete_in_progress":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus prefixes a status string with a bullet in its status color.
func RenderStatus(status string) string {
	bullet := lipgloss.NewStyle().Foreground(StatusColor(status)).Render("●")
	return bullet + " " + status
}

// DefaultTableStyles restyles the bubbles table with the palette: ruled bold
// header, selection inverted on the accent color.
func DefaultTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F4F5F9")).
		Background(Secondary).
		Bold(false)
	return s
}

// NewSpinner returns the spinner every loading state shares.
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(Primary)),
	)
}
