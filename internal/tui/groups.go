package tui

import (
	"context"
	"fmt"
	"sort"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/identitystore"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
	"tasnim.dev/idc-audit/internal/tui/theme"
)

// NewGroupsView lists identity store groups. Enter drills into the group's
// membership roster.
func NewGroupsView(client *awsclient.ServiceClient, instance ssoadmin.Instance) *TableView[identitystore.Group] {
	return NewTableView(TableViewConfig[identitystore.Group]{
		Title:       "Groups",
		LoadingText: fmt.Sprintf("Loading groups from %s...", instance.IdentityStoreID),
		Columns: []table.Column{
			{Title: "Display Name", Width: 28},
			{Title: "Group ID", Width: 26},
			{Title: "Description", Width: 36},
		},
		FetchFunc: func(ctx context.Context) ([]identitystore.Group, error) {
			groups, err := client.IdentityStore.ListGroups(ctx, instance.IdentityStoreID)
			if err != nil {
				return nil, err
			}
			sort.Slice(groups, func(i, j int) bool {
				return groups[i].DisplayName < groups[j].DisplayName
			})
			return groups, nil
		},
		RowMapper: func(g identitystore.Group) table.Row {
			return table.Row{g.DisplayName, g.GroupID, g.Description}
		},
		CopyIDFunc: func(g identitystore.Group) string { return g.GroupID },
		OnEnter: func(g identitystore.Group) tea.Cmd {
			return pushView(NewGroupMembersView(client, instance, g))
		},
		SummaryFunc: func(groups []identitystore.Group) string {
			return theme.MutedStyle.Render(fmt.Sprintf("Groups: %d", len(groups)))
		},
		HeightOffset: 3,
	})
}

// groupMember pairs a membership record with the resolved user, which is
// zero-valued when the user no longer exists in the store.
type groupMember struct {
	membership identitystore.GroupMembership
	user       identitystore.User
}

// NewGroupMembersView lists the members of one group with their user records
// resolved against the identity store.
func NewGroupMembersView(client *awsclient.ServiceClient, instance ssoadmin.Instance, group identitystore.Group) *TableView[groupMember] {
	title := group.DisplayName
	if title == "" {
		title = group.GroupID
	}
	return NewTableView(TableViewConfig[groupMember]{
		Title:       title,
		LoadingText: fmt.Sprintf("Loading members of %s...", title),
		Columns: []table.Column{
			{Title: "User Name", Width: 22},
			{Title: "Display Name", Width: 24},
			{Title: "Email", Width: 30},
			{Title: "Membership ID", Width: 26},
		},
		FetchFunc: func(ctx context.Context) ([]groupMember, error) {
			memberships, err := client.IdentityStore.ListGroupMemberships(ctx, instance.IdentityStoreID, group.GroupID)
			if err != nil {
				return nil, err
			}
			users, err := client.IdentityStore.ListUsers(ctx, instance.IdentityStoreID)
			if err != nil {
				return nil, err
			}
			members := make([]groupMember, 0, len(memberships))
			for _, ms := range memberships {
				members = append(members, groupMember{
					membership: ms,
					user:       users[ms.UserID],
				})
			}
			sort.Slice(members, func(i, j int) bool {
				return members[i].user.UserName < members[j].user.UserName
			})
			return members, nil
		},
		RowMapper: func(m groupMember) table.Row {
			name := m.user.UserName
			if name == "" {
				name = m.membership.UserID
			}
			return table.Row{name, m.user.DisplayName, m.user.Email, m.membership.MembershipID}
		},
		CopyIDFunc: func(m groupMember) string { return m.membership.UserID },
		OnEnter: func(m groupMember) tea.Cmd {
			if m.user.UserID == "" {
				return nil
			}
			return pushView(NewUserAccessView(client, instance, m.user))
		},
		SummaryFunc: func(members []groupMember) string {
			return theme.MutedStyle.Render(fmt.Sprintf("Members: %d", len(members)))
		},
		HeightOffset: 3,
	})
}
