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

// NewUsersView lists identity store users. Enter drills into the selected
// user's resolved account access.
func NewUsersView(client *awsclient.ServiceClient, instance ssoadmin.Instance) *TableView[identitystore.User] {
	return NewTableView(TableViewConfig[identitystore.User]{
		Title:       "Users",
		LoadingText: fmt.Sprintf("Loading users from %s...", instance.IdentityStoreID),
		Columns: []table.Column{
			{Title: "User Name", Width: 22},
			{Title: "Display Name", Width: 24},
			{Title: "Email", Width: 30},
			{Title: "User ID", Width: 26},
		},
		FetchFunc: func(ctx context.Context) ([]identitystore.User, error) {
			byID, err := client.IdentityStore.ListUsers(ctx, instance.IdentityStoreID)
			if err != nil {
				return nil, err
			}
			users := make([]identitystore.User, 0, len(byID))
			for _, u := range byID {
				users = append(users, u)
			}
			sort.Slice(users, func(i, j int) bool {
				return users[i].UserName < users[j].UserName
			})
			return users, nil
		},
		RowMapper: func(u identitystore.User) table.Row {
			return table.Row{u.UserName, u.DisplayName, u.Email, u.UserID}
		},
		CopyIDFunc: func(u identitystore.User) string { return u.UserID },
		OnEnter: func(u identitystore.User) tea.Cmd {
			return pushView(NewUserAccessView(client, instance, u))
		},
		SummaryFunc: func(users []identitystore.User) string {
			return theme.MutedStyle.Render(fmt.Sprintf("Users: %d", len(users)))
		},
		HeightOffset: 3,
	})
}
