package audit

import (
	"sort"

	"tasnim.dev/idc-audit/internal/aws/identitystore"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
	"tasnim.dev/idc-audit/internal/utils"
)

// AccessRow is one line of a user access report: a user's effective access to
// one permission set in one account, with names resolved and the provisioning
// path preserved.
type AccessRow struct {
	UserID            string `json:"user_id"`
	UserName          string `json:"user_name"`
	AccountID         string `json:"account_id"`
	AccountName       string `json:"account_name"`
	PermissionSetARN  string `json:"permission_set_arn"`
	PermissionSetName string `json:"permission_set_name"`
	SessionDuration   string `json:"session_duration,omitempty"`
	ViaGroup          bool   `json:"via_group"`
	GroupID           string `json:"group_id,omitempty"`
	GroupName         string `json:"group_name,omitempty"`
}

// BuildUserRows joins one user's assignments against the snapshot's lookups.
// Pure function of its inputs; the snapshot is not mutated. The row's UserID
// is always the queried user, even for assignments provisioned through a
// group.
func BuildUserRows(user identitystore.User, assignments []ssoadmin.Assignment, snap *Snapshot) []AccessRow {
	rows := make([]AccessRow, 0, len(assignments))
	for _, a := range assignments {
		row := AccessRow{
			UserID:            a.OriginalPrincipalID,
			UserName:          user.UserName,
			AccountID:         a.AccountID,
			AccountName:       snap.AccountName(a.AccountID),
			PermissionSetARN:  a.PermissionSetARN,
			PermissionSetName: snap.PermissionSetName(a.PermissionSetARN),
		}
		if d, ok := snap.PermissionSets[a.PermissionSetARN]; ok {
			row.SessionDuration = d.SessionDuration
		}
		if a.PrincipalType == "GROUP" {
			row.ViaGroup = true
			row.GroupID = a.PrincipalID
			row.GroupName = snap.GroupName(a.PrincipalID)
		}
		rows = append(rows, row)
	}
	return rows
}

// AccountName resolves an account ID to its name, falling back to the ID for
// accounts missing from the snapshot.
func (s *Snapshot) AccountName(accountID string) string {
	if a, ok := s.Accounts[accountID]; ok && a.Name != "" {
		return a.Name
	}
	return accountID
}

// PermissionSetName resolves a permission set ARN to its name, falling back
// to the ARN's last path segment.
func (s *Snapshot) PermissionSetName(arn string) string {
	if d, ok := s.PermissionSets[arn]; ok && d.Name != "" {
		return d.Name
	}
	return utils.PermissionSetID(arn)
}

// GroupName resolves a group ID to its display name, falling back to the ID.
func (s *Snapshot) GroupName(groupID string) string {
	for _, g := range s.Groups {
		if g.GroupID == groupID {
			if g.DisplayName != "" {
				return g.DisplayName
			}
			break
		}
	}
	return groupID
}

func sortRows(rows []AccessRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UserName != rows[j].UserName {
			return rows[i].UserName < rows[j].UserName
		}
		if rows[i].AccountName != rows[j].AccountName {
			return rows[i].AccountName < rows[j].AccountName
		}
		if rows[i].PermissionSetName != rows[j].PermissionSetName {
			return rows[i].PermissionSetName < rows[j].PermissionSetName
		}
		return rows[i].PermissionSetARN < rows[j].PermissionSetARN
	})
}
