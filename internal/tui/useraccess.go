package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	"tasnim.dev/idc-audit/internal/audit"
	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/identitystore"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
	"tasnim.dev/idc-audit/internal/tui/theme"
	"tasnim.dev/idc-audit/internal/utils"
)

// NewUserAccessView shows the resolved account access for one user: every
// account and permission set reachable directly or through group membership.
// Enter opens the permission set detail, g jumps to the granting group.
func NewUserAccessView(client *awsclient.ServiceClient, instance ssoadmin.Instance, user identitystore.User) *TableView[audit.AccessRow] {
	return NewTableView(TableViewConfig[audit.AccessRow]{
		Title:       user.UserName,
		LoadingText: fmt.Sprintf("Resolving access for %s...", user.UserName),
		Columns: []table.Column{
			{Title: "Account", Width: 22},
			{Title: "Account ID", Width: 14},
			{Title: "Permission Set", Width: 26},
			{Title: "Via", Width: 20},
			{Title: "Session", Width: 10},
		},
		FetchFunc: func(ctx context.Context) ([]audit.AccessRow, error) {
			collector := audit.NewCollector(client, instance, nil)
			return collector.UserAccess(ctx, user)
		},
		RowMapper: func(r audit.AccessRow) table.Row {
			via := "direct"
			if r.ViaGroup {
				via = r.GroupName
			}
			return table.Row{
				r.AccountName,
				r.AccountID,
				r.PermissionSetName,
				via,
				utils.ISODuration(r.SessionDuration),
			}
		},
		CopyIDFunc:  func(r audit.AccessRow) string { return r.AccountID },
		CopyARNFunc: func(r audit.AccessRow) string { return r.PermissionSetARN },
		OnEnter: func(r audit.AccessRow) tea.Cmd {
			return pushView(NewPermissionSetDetailView(client, instance, r.PermissionSetARN, r.PermissionSetName))
		},
		KeyHandlers: map[string]func(audit.AccessRow) tea.Cmd{
			"g": func(r audit.AccessRow) tea.Cmd {
				if !r.ViaGroup {
					return nil
				}
				return NavigateToGroup(client.IdentityStore, instance.IdentityStoreID, r.GroupID)
			},
		},
		SummaryFunc: func(rows []audit.AccessRow) string {
			direct := 0
			for _, r := range rows {
				if !r.ViaGroup {
					direct++
				}
			}
			return theme.MutedStyle.Render(fmt.Sprintf(
				"Assignments: %d  Direct: %d  Via groups: %d",
				len(rows), direct, len(rows)-direct))
		},
		HeightOffset: 3,
	})
}
