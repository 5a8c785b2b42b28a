package tui

import (
	"context"
	"fmt"
	"sort"

	"charm.land/bubbles/v2/table"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/organizations"
	"tasnim.dev/idc-audit/internal/tui/theme"
	"tasnim.dev/idc-audit/internal/utils"
)

// NewAccountsView lists the organization's member accounts.
func NewAccountsView(client *awsclient.ServiceClient) *TableView[organizations.Account] {
	return NewTableView(TableViewConfig[organizations.Account]{
		Title:       "Accounts",
		LoadingText: "Loading accounts...",
		Columns: []table.Column{
			{Title: "Name", Width: 24},
			{Title: "Account ID", Width: 14},
			{Title: "Email", Width: 30},
			{Title: "Status", Width: 16},
			{Title: "Joined", Width: 12},
		},
		FetchFunc: func(ctx context.Context) ([]organizations.Account, error) {
			byID, err := client.Organizations.ListAccounts(ctx)
			if err != nil {
				return nil, err
			}
			accounts := make([]organizations.Account, 0, len(byID))
			for _, a := range byID {
				accounts = append(accounts, a)
			}
			sort.Slice(accounts, func(i, j int) bool {
				return accounts[i].Name < accounts[j].Name
			})
			return accounts, nil
		},
		RowMapper: func(a organizations.Account) table.Row {
			return table.Row{
				a.Name,
				a.ID,
				a.Email,
				theme.RenderStatus(a.Status),
				utils.TimeOrDash(a.JoinedAt, utils.DateOnly),
			}
		},
		CopyIDFunc:  func(a organizations.Account) string { return a.ID },
		CopyARNFunc: func(a organizations.Account) string { return a.ARN },
		SummaryFunc: func(accounts []organizations.Account) string {
			active := 0
			for _, a := range accounts {
				if a.Status == "ACTIVE" {
					active++
				}
			}
			return theme.MutedStyle.Render(
				fmt.Sprintf("Active: %d  Total: %d", active, len(accounts)))
		},
		HeightOffset: 3,
	})
}
