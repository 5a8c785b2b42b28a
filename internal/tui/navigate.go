package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"tasnim.dev/idc-audit/internal/aws/identitystore"
)

// navigateGroupMsg is sent when a group lookup succeeds.
type navigateGroupMsg struct {
	group identitystore.Group
}

// navigateGroupErrMsg is sent when a group lookup fails.
type navigateGroupErrMsg struct {
	err error
}

// NavigateToGroup looks up a group by ID and returns a message to open its
// membership roster. The user access view uses it to jump to the group that
// granted an assignment.
func NavigateToGroup(ids *identitystore.Client, identityStoreID, groupID string) tea.Cmd {
	return func() tea.Msg {
		groups, err := ids.ListGroups(context.Background(), identityStoreID)
		if err != nil {
			return navigateGroupErrMsg{err: err}
		}
		for _, g := range groups {
			if g.GroupID == groupID {
				return navigateGroupMsg{group: g}
			}
		}
		return navigateGroupErrMsg{err: fmt.Errorf("group %s not found", groupID)}
	}
}
