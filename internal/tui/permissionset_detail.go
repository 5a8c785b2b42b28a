package tui

import (
	"context"
	"fmt"
	"unsafe"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
	"tasnim.dev/idc-audit/internal/tui/theme"
	"tasnim.dev/idc-audit/internal/utils"
)

// permissionSetDetailMsg delivers the aggregated describe result.
type permissionSetDetailMsg struct {
	viewID uintptr
	detail *ssoadmin.PermissionSetDetail
}

// PermissionSetDetailView shows one permission set across three tabs:
// overview, inline policy document, and managed policy attachments.
type PermissionSetDetailView struct {
	client   *awsclient.ServiceClient
	instance ssoadmin.Instance
	arn      string
	name     string

	detail  *ssoadmin.PermissionSetDetail
	tabs    *tabSet
	spinner spinner.Model
	loading bool
	err     error

	width  int
	height int
}

// NewPermissionSetDetailView creates the detail view for a permission set ARN.
// The name is shown in the breadcrumb while the describe call is in flight.
func NewPermissionSetDetailView(client *awsclient.ServiceClient, instance ssoadmin.Instance, arn, name string) *PermissionSetDetailView {
	if name == "" {
		name = utils.PermissionSetID(arn)
	}
	return &PermissionSetDetailView{
		client:   client,
		instance: instance,
		arn:      arn,
		name:     name,
		spinner:  theme.NewSpinner(),
		loading:  true,
		width:    80,
		height:   24,
	}
}

func (v *PermissionSetDetailView) Title() string { return v.name }

func (v *PermissionSetDetailView) HelpContext() *HelpContext {
	ctx := HelpContextDetail
	return &ctx
}

func (v *PermissionSetDetailView) CopyID() string  { return utils.PermissionSetID(v.arn) }
func (v *PermissionSetDetailView) CopyARN() string { return v.arn }

func (v *PermissionSetDetailView) viewID() uintptr {
	return uintptr(unsafe.Pointer(v))
}

func (v *PermissionSetDetailView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetchDetail())
}

func (v *PermissionSetDetailView) fetchDetail() tea.Cmd {
	id := v.viewID()
	client := v.client
	instanceARN := v.instance.InstanceARN
	arn := v.arn
	return func() tea.Msg {
		details, err := client.SSOAdmin.DescribePermissionSets(context.Background(), instanceARN, []string{arn})
		if err != nil {
			return errViewMsg{err: err}
		}
		d, ok := details[arn]
		if !ok {
			return errViewMsg{err: fmt.Errorf("permission set %s not found", arn)}
		}
		return permissionSetDetailMsg{viewID: id, detail: &d}
	}
}

func (v *PermissionSetDetailView) contentHeight() int {
	h := v.height - 3 // tab bar and its border
	if h < 3 {
		h = 3
	}
	return h
}

func (v *PermissionSetDetailView) initTab(idx int) View {
	switch idx {
	case 0:
		return newPaneView("Overview", v.renderOverview())
	case 1:
		if v.detail.InlinePolicy == "" {
			return newPaneView("Inline Policy",
				theme.MutedStyle.Render("No inline policy attached."))
		}
		return NewPolicyView("Inline Policy", v.detail.InlinePolicy)
	case 2:
		return v.newManagedPoliciesTab()
	}
	return nil
}

func (v *PermissionSetDetailView) newManagedPoliciesTab() View {
	policies := v.detail.ManagedPolicies
	return NewTableView(TableViewConfig[ssoadmin.AttachedManagedPolicy]{
		Title:       "Managed Policies",
		LoadingText: "Loading managed policies...",
		Columns: []table.Column{
			{Title: "Name", Width: 32},
			{Title: "ARN", Width: 58},
		},
		FetchFunc: func(ctx context.Context) ([]ssoadmin.AttachedManagedPolicy, error) {
			return policies, nil
		},
		RowMapper: func(p ssoadmin.AttachedManagedPolicy) table.Row {
			return table.Row{p.Name, p.ARN}
		},
		CopyIDFunc:  func(p ssoadmin.AttachedManagedPolicy) string { return p.Name },
		CopyARNFunc: func(p ssoadmin.AttachedManagedPolicy) string { return p.ARN },
	})
}

func (v *PermissionSetDetailView) renderOverview() string {
	d := v.detail
	db := utils.NewDetailBuilder(16, theme.MutedStyle)

	db.Section("Permission Set")
	db.Row("Name", d.Name)
	db.Row("ID", utils.PermissionSetID(d.ARN))
	db.Row("ARN", d.ARN)
	db.Row("Instance", utils.InstanceID(d.ARN))
	if d.Description != "" {
		db.Row("Description", d.Description)
	}
	session := utils.ISODuration(d.SessionDuration)
	if session == "" {
		session = "—"
	}
	db.Row("Session", session)
	if d.RelayState != "" {
		db.Row("Relay State", d.RelayState)
	}
	db.Row("Created", utils.TimeOrDash(d.CreatedAt, utils.DateTime))

	db.Blank()
	db.Section("Policies")
	inline := "none"
	if d.InlinePolicy != "" {
		inline = fmt.Sprintf("%d bytes (tab 2)", len(d.InlinePolicy))
	}
	db.Row("Inline", inline)
	db.Row("Managed", fmt.Sprintf("%d attached (tab 3)", len(d.ManagedPolicies)))

	db.Blank()
	db.Section("Permissions Boundary")
	switch {
	case d.Boundary == nil:
		db.Row("Boundary", "none")
	case d.Boundary.ManagedPolicyARN != "":
		db.Row("Type", "AWS managed policy")
		db.Row("Policy ARN", d.Boundary.ManagedPolicyARN)
	default:
		db.Row("Type", "Customer managed policy")
		db.Row("Name", d.Boundary.CustomerManagedPolicyName)
		db.Row("Path", d.Boundary.CustomerManagedPolicyPath)
	}

	return db.String()
}

func (v *PermissionSetDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case permissionSetDetailMsg:
		if msg.viewID != v.viewID() {
			return v, nil
		}
		v.detail = msg.detail
		v.loading = false
		v.err = nil
		v.tabs = newTabSet(
			[]string{"Overview", "Inline Policy", "Managed Policies"},
			v.initTab,
		)
		cmd := v.tabs.Switch(0)
		v.tabs.Resize(v.width, v.contentHeight())
		return v, cmd

	case errViewMsg:
		v.err = msg.err
		v.loading = false
		return v, nil

	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyPressMsg:
		key := msg.String()
		if key == "r" {
			v.loading = true
			v.err = nil
			v.tabs = nil
			return v, tea.Batch(v.spinner.Tick, v.fetchDetail())
		}
		if v.tabs != nil {
			if handled, cmd := v.tabs.HandleKey(key); handled {
				v.tabs.Resize(v.width, v.contentHeight())
				return v, cmd
			}
			return v, v.tabs.Forward(msg)
		}
		return v, nil
	}

	if v.tabs != nil {
		return v, v.tabs.Forward(msg)
	}
	return v, nil
}

func (v *PermissionSetDetailView) View() string {
	if v.loading {
		return "\n" + theme.LoadingStyle.Render(v.spinner.View()+" Loading permission set...") + "\n"
	}
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err)) +
			"\n\n" + theme.HelpStyle.Render("Press r to retry • Esc to go back")
	}
	if v.tabs == nil {
		return ""
	}

	content := ""
	if active := v.tabs.Active(); active != nil {
		content = active.View()
	}
	return v.tabs.Bar() + "\n" + content
}

func (v *PermissionSetDetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
	if v.tabs != nil {
		v.tabs.Resize(width, v.contentHeight())
	}
}
