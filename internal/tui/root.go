package tui

import (
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
)

type entityItem struct {
	name string
	desc string
}

func (i entityItem) Title() string       { return i.name }
func (i entityItem) Description() string { return i.desc }
func (i entityItem) FilterValue() string { return i.name }

type RootView struct {
	client   *awsclient.ServiceClient
	instance ssoadmin.Instance
	list     list.Model
}

func NewRootView(client *awsclient.ServiceClient, instance ssoadmin.Instance) *RootView {
	items := []list.Item{
		entityItem{name: "Accounts", desc: "Organizations — Member accounts"},
		entityItem{name: "Users", desc: "Identity Store — Users and their account access"},
		entityItem{name: "Groups", desc: "Identity Store — Groups and memberships"},
		entityItem{name: "Permission Sets", desc: "SSO Admin — Permission sets and policy documents"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 14)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return &RootView{
		client:   client,
		instance: instance,
		list:     l,
	}
}

func (v *RootView) Title() string { return "Identity Center" }

func (v *RootView) Init() tea.Cmd { return nil }

func (v *RootView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			selected, ok := v.list.SelectedItem().(entityItem)
			if !ok {
				return v, nil
			}
			return v, v.handleSelection(selected.name)
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *RootView) handleSelection(name string) tea.Cmd {
	switch name {
	case "Accounts":
		return pushView(NewAccountsView(v.client))
	case "Users":
		return pushView(NewUsersView(v.client, v.instance))
	case "Groups":
		return pushView(NewGroupsView(v.client, v.instance))
	case "Permission Sets":
		return pushView(NewPermissionSetsView(v.client, v.instance))
	}
	return nil
}

func (v *RootView) View() string {
	return v.list.View()
}

func (v *RootView) SetSize(width, height int) {
	v.list.SetSize(width, height)
}
