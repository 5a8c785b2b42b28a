package tui

import (
	"context"
	"fmt"
	"sort"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
	"tasnim.dev/idc-audit/internal/tui/theme"
	"tasnim.dev/idc-audit/internal/utils"
)

// NewPermissionSetsView lists the instance's permission sets with their
// policy surface. Enter opens the tabbed detail.
func NewPermissionSetsView(client *awsclient.ServiceClient, instance ssoadmin.Instance) *TableView[ssoadmin.PermissionSetDetail] {
	return NewTableView(TableViewConfig[ssoadmin.PermissionSetDetail]{
		Title:       "Permission Sets",
		LoadingText: "Loading permission sets...",
		Columns: []table.Column{
			{Title: "Name", Width: 28},
			{Title: "Session", Width: 10},
			{Title: "Managed", Width: 8},
			{Title: "Inline", Width: 7},
			{Title: "Boundary", Width: 9},
			{Title: "Created", Width: 12},
		},
		FetchFunc: func(ctx context.Context) ([]ssoadmin.PermissionSetDetail, error) {
			arns, err := client.SSOAdmin.ListPermissionSets(ctx, instance.InstanceARN)
			if err != nil {
				return nil, err
			}
			byARN, err := client.SSOAdmin.DescribePermissionSets(ctx, instance.InstanceARN, arns)
			if err != nil {
				return nil, err
			}
			details := make([]ssoadmin.PermissionSetDetail, 0, len(byARN))
			for _, d := range byARN {
				details = append(details, d)
			}
			sort.Slice(details, func(i, j int) bool {
				return details[i].Name < details[j].Name
			})
			return details, nil
		},
		RowMapper: func(d ssoadmin.PermissionSetDetail) table.Row {
			inline := "—"
			if d.InlinePolicy != "" {
				inline = "yes"
			}
			boundary := "—"
			if d.Boundary != nil {
				boundary = "yes"
			}
			return table.Row{
				d.Name,
				utils.ISODuration(d.SessionDuration),
				fmt.Sprintf("%d", len(d.ManagedPolicies)),
				inline,
				boundary,
				utils.TimeOrDash(d.CreatedAt, utils.DateOnly),
			}
		},
		CopyIDFunc:  func(d ssoadmin.PermissionSetDetail) string { return utils.PermissionSetID(d.ARN) },
		CopyARNFunc: func(d ssoadmin.PermissionSetDetail) string { return d.ARN },
		OnEnter: func(d ssoadmin.PermissionSetDetail) tea.Cmd {
			return pushView(NewPermissionSetDetailView(client, instance, d.ARN, d.Name))
		},
		SummaryFunc: func(details []ssoadmin.PermissionSetDetail) string {
			inline, bounded := 0, 0
			for _, d := range details {
				if d.InlinePolicy != "" {
					inline++
				}
				if d.Boundary != nil {
					bounded++
				}
			}
			return theme.MutedStyle.Render(fmt.Sprintf(
				"Permission sets: %d  With inline policy: %d  With boundary: %d",
				len(details), inline, bounded))
		},
		HeightOffset: 3,
	})
}
