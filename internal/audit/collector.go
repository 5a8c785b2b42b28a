package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/aws/identitystore"
	"tasnim.dev/idc-audit/internal/aws/organizations"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
)

// SSOAdminClient is the slice of the SSO Admin client the collector uses.
type SSOAdminClient interface {
	ListInstances(ctx context.Context) ([]ssoadmin.Instance, error)
	ListPermissionSets(ctx context.Context, instanceARN string) ([]string, error)
	ListAssignmentsForUser(ctx context.Context, instanceARN, userID string) ([]ssoadmin.Assignment, error)
	DescribePermissionSets(ctx context.Context, instanceARN string, arns []string) (map[string]ssoadmin.PermissionSetDetail, error)
}

// IdentityStoreClient is the slice of the Identity Store client the collector uses.
type IdentityStoreClient interface {
	ListUsers(ctx context.Context, identityStoreID string) (map[string]identitystore.User, error)
	ListGroups(ctx context.Context, identityStoreID string) ([]identitystore.Group, error)
}

// OrganizationsClient is the slice of the Organizations client the collector uses.
type OrganizationsClient interface {
	ListAccounts(ctx context.Context) (map[string]organizations.Account, error)
}

// Collector runs the sequential enumeration chain against one Identity Center
// instance: accounts, then users and groups, then permission sets and their
// details, then per-user assignments. Progress lines go to the writer as work
// proceeds. Any unrecovered remote error aborts the run; nothing partial is
// returned.
type Collector struct {
	sso      SSOAdminClient
	ids      IdentityStoreClient
	orgs     OrganizationsClient
	instance ssoadmin.Instance
	progress io.Writer
}

func NewCollector(client *awsclient.ServiceClient, instance ssoadmin.Instance, progress io.Writer) *Collector {
	if progress == nil {
		progress = io.Discard
	}
	return &Collector{
		sso:      client.SSOAdmin,
		ids:      client.IdentityStore,
		orgs:     client.Organizations,
		instance: instance,
		progress: progress,
	}
}

// ResolveInstance picks the Identity Center instance to work against: the one
// matching instanceARN, or the first instance listed when instanceARN is empty.
func ResolveInstance(ctx context.Context, sso SSOAdminClient, instanceARN string) (ssoadmin.Instance, error) {
	instances, err := sso.ListInstances(ctx)
	if err != nil {
		return ssoadmin.Instance{}, err
	}
	if len(instances) == 0 {
		return ssoadmin.Instance{}, errors.New("no IAM Identity Center instance found in this account/region")
	}
	if instanceARN == "" {
		return instances[0], nil
	}
	for _, inst := range instances {
		if inst.InstanceARN == instanceARN {
			return inst, nil
		}
	}
	return ssoadmin.Instance{}, fmt.Errorf("no Identity Center instance with ARN %s", instanceARN)
}

// Snapshot is one run's view of the directory: every lookup an access report
// joins against. Read-only once built.
type Snapshot struct {
	Instance       ssoadmin.Instance
	Accounts       map[string]organizations.Account
	Users          map[string]identitystore.User
	Groups         []identitystore.Group
	PermissionSets map[string]ssoadmin.PermissionSetDetail
}

// Snapshot fetches the full directory for the collector's instance.
func (c *Collector) Snapshot(ctx context.Context) (*Snapshot, error) {
	fmt.Fprintln(c.progress, "Looking up Accounts in your Organization...")
	accounts, err := c.orgs.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(c.progress, "Total Accounts in Organization: %d\n", len(accounts))

	storeID := c.instance.IdentityStoreID
	fmt.Fprintf(c.progress, "Looking up users in Identity store: %s\n", storeID)
	users, err := c.ids.ListUsers(ctx, storeID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(c.progress, "Total Users in Identity store %s : %d\n", storeID, len(users))

	groups, err := c.ids.ListGroups(ctx, storeID)
	if err != nil {
		return nil, err
	}

	arns, err := c.sso.ListPermissionSets(ctx, c.instance.InstanceARN)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(c.progress, "Total permission sets found in Organization: %d\n", len(arns))

	fmt.Fprintf(c.progress, "Looking up permission set details for %d permission sets\n", len(arns))
	details, err := c.sso.DescribePermissionSets(ctx, c.instance.InstanceARN, arns)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Instance:       c.instance,
		Accounts:       accounts,
		Users:          users,
		Groups:         groups,
		PermissionSets: details,
	}, nil
}

// Report runs the full chain and returns one row per assignment, for all
// users or for the single user matching userFilter (user ID or user name).
// Rows come back sorted by user name, account name, then permission set name.
func (c *Collector) Report(ctx context.Context, userFilter string) ([]AccessRow, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	users, err := snap.selectUsers(userFilter)
	if err != nil {
		return nil, err
	}

	var rows []AccessRow
	for _, u := range users {
		assignments, err := c.sso.ListAssignmentsForUser(ctx, c.instance.InstanceARN, u.UserID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, BuildUserRows(u, assignments, snap)...)
	}
	sortRows(rows)
	return rows, nil
}

// UserAccess runs the narrow per-user chain: assignments first, then only the
// lookups the join needs (accounts, groups, details of the referenced
// permission sets).
func (c *Collector) UserAccess(ctx context.Context, user identitystore.User) ([]AccessRow, error) {
	assignments, err := c.sso.ListAssignmentsForUser(ctx, c.instance.InstanceARN, user.UserID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	accounts, err := c.orgs.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := c.ids.ListGroups(ctx, c.instance.IdentityStoreID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var arns []string
	for _, a := range assignments {
		if !seen[a.PermissionSetARN] {
			seen[a.PermissionSetARN] = true
			arns = append(arns, a.PermissionSetARN)
		}
	}
	details, err := c.sso.DescribePermissionSets(ctx, c.instance.InstanceARN, arns)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Instance:       c.instance,
		Accounts:       accounts,
		Groups:         groups,
		PermissionSets: details,
	}
	rows := BuildUserRows(user, assignments, snap)
	sortRows(rows)
	return rows, nil
}

func (s *Snapshot) selectUsers(filter string) ([]identitystore.User, error) {
	if filter == "" {
		users := make([]identitystore.User, 0, len(s.Users))
		for _, u := range s.Users {
			users = append(users, u)
		}
		return users, nil
	}
	if u, ok := s.Users[filter]; ok {
		return []identitystore.User{u}, nil
	}
	for _, u := range s.Users {
		if u.UserName == filter {
			return []identitystore.User{u}, nil
		}
	}
	return nil, fmt.Errorf("no user %q in identity store %s", filter, s.Instance.IdentityStoreID)
}
