package ssoadmin

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awssso "github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	ssotypes "github.com/aws/aws-sdk-go-v2/service/ssoadmin/types"
	"github.com/aws/smithy-go"
)

type mockSSOAdminAPI struct {
	listInstancesFunc                      func(ctx context.Context, params *awssso.ListInstancesInput, optFns ...func(*awssso.Options)) (*awssso.ListInstancesOutput, error)
	listPermissionSetsFunc                 func(ctx context.Context, params *awssso.ListPermissionSetsInput, optFns ...func(*awssso.Options)) (*awssso.ListPermissionSetsOutput, error)
	listAccountAssignmentsForPrincipalFunc func(ctx context.Context, params *awssso.ListAccountAssignmentsForPrincipalInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountAssignmentsForPrincipalOutput, error)
	listManagedPoliciesFunc                func(ctx context.Context, params *awssso.ListManagedPoliciesInPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.ListManagedPoliciesInPermissionSetOutput, error)
	describePermissionSetFunc              func(ctx context.Context, params *awssso.DescribePermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.DescribePermissionSetOutput, error)
	getInlinePolicyFunc                    func(ctx context.Context, params *awssso.GetInlinePolicyForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetInlinePolicyForPermissionSetOutput, error)
	getPermissionsBoundaryFunc             func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error)
}

func (m *mockSSOAdminAPI) ListInstances(ctx context.Context, params *awssso.ListInstancesInput, optFns ...func(*awssso.Options)) (*awssso.ListInstancesOutput, error) {
	return m.listInstancesFunc(ctx, params, optFns...)
}

func (m *mockSSOAdminAPI) ListPermissionSets(ctx context.Context, params *awssso.ListPermissionSetsInput, optFns ...func(*awssso.Options)) (*awssso.ListPermissionSetsOutput, error) {
	return m.listPermissionSetsFunc(ctx, params, optFns...)
}

func (m *mockSSOAdminAPI) ListAccountAssignmentsForPrincipal(ctx context.Context, params *awssso.ListAccountAssignmentsForPrincipalInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountAssignmentsForPrincipalOutput, error) {
	return m.listAccountAssignmentsForPrincipalFunc(ctx, params, optFns...)
}

func (m *mockSSOAdminAPI) ListManagedPoliciesInPermissionSet(ctx context.Context, params *awssso.ListManagedPoliciesInPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.ListManagedPoliciesInPermissionSetOutput, error) {
	return m.listManagedPoliciesFunc(ctx, params, optFns...)
}

func (m *mockSSOAdminAPI) DescribePermissionSet(ctx context.Context, params *awssso.DescribePermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.DescribePermissionSetOutput, error) {
	return m.describePermissionSetFunc(ctx, params, optFns...)
}

func (m *mockSSOAdminAPI) GetInlinePolicyForPermissionSet(ctx context.Context, params *awssso.GetInlinePolicyForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetInlinePolicyForPermissionSetOutput, error) {
	return m.getInlinePolicyFunc(ctx, params, optFns...)
}

func (m *mockSSOAdminAPI) GetPermissionsBoundaryForPermissionSet(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
	return m.getPermissionsBoundaryFunc(ctx, params, optFns...)
}

const (
	testInstanceARN = "arn:aws:sso:::instance/ssoins-1234567890abcdef"
	testStoreID     = "d-9267abc123"
)

func TestListInstances(t *testing.T) {
	created := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

	mock := &mockSSOAdminAPI{
		listInstancesFunc: func(ctx context.Context, params *awssso.ListInstancesInput, optFns ...func(*awssso.Options)) (*awssso.ListInstancesOutput, error) {
			return &awssso.ListInstancesOutput{
				Instances: []ssotypes.InstanceMetadata{
					{
						InstanceArn:     awssdk.String(testInstanceARN),
						IdentityStoreId: awssdk.String(testStoreID),
						Name:            awssdk.String("main"),
						OwnerAccountId:  awssdk.String("111122223333"),
						Status:          ssotypes.InstanceStatusActive,
						CreatedDate:     &created,
					},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	instances, err := client.ListInstances(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(instances))
	}

	inst := instances[0]
	if inst.InstanceARN != testInstanceARN {
		t.Errorf("InstanceARN = %s, want %s", inst.InstanceARN, testInstanceARN)
	}
	if inst.IdentityStoreID != testStoreID {
		t.Errorf("IdentityStoreID = %s, want %s", inst.IdentityStoreID, testStoreID)
	}
	if inst.Status != "ACTIVE" {
		t.Errorf("Status = %s, want ACTIVE", inst.Status)
	}
	if !inst.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", inst.CreatedAt, created)
	}
}

func TestListPermissionSets(t *testing.T) {
	mock := &mockSSOAdminAPI{
		listPermissionSetsFunc: func(ctx context.Context, params *awssso.ListPermissionSetsInput, optFns ...func(*awssso.Options)) (*awssso.ListPermissionSetsOutput, error) {
			if awssdk.ToString(params.InstanceArn) != testInstanceARN {
				t.Errorf("InstanceArn = %s, want %s", awssdk.ToString(params.InstanceArn), testInstanceARN)
			}
			return &awssso.ListPermissionSetsOutput{
				PermissionSets: []string{"arn:ps/admin", "arn:ps/readonly"},
			}, nil
		},
	}

	client := NewClient(mock)
	arns, err := client.ListPermissionSets(context.Background(), testInstanceARN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(arns) != 2 {
		t.Fatalf("expected 2 permission sets, got %d", len(arns))
	}
	if arns[0] != "arn:ps/admin" || arns[1] != "arn:ps/readonly" {
		t.Errorf("unexpected order: %v", arns)
	}
}

func TestListPermissionSetsPagination(t *testing.T) {
	pages := [][]string{
		{"arn:ps/1", "arn:ps/2"},
		{"arn:ps/3", "arn:ps/4"},
		{"arn:ps/5", "arn:ps/6"},
	}

	calls := 0
	mock := &mockSSOAdminAPI{
		listPermissionSetsFunc: func(ctx context.Context, params *awssso.ListPermissionSetsInput, optFns ...func(*awssso.Options)) (*awssso.ListPermissionSetsOutput, error) {
			page := pages[calls]
			calls++
			out := &awssso.ListPermissionSetsOutput{PermissionSets: page}
			if calls < len(pages) {
				out.NextToken = awssdk.String("next")
			}
			return out, nil
		},
	}

	client := NewClient(mock)
	arns, err := client.ListPermissionSets(context.Background(), testInstanceARN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 API calls, got %d", calls)
	}
	want := []string{"arn:ps/1", "arn:ps/2", "arn:ps/3", "arn:ps/4", "arn:ps/5", "arn:ps/6"}
	if len(arns) != len(want) {
		t.Fatalf("expected %d permission sets, got %d", len(want), len(arns))
	}
	for i := range want {
		if arns[i] != want[i] {
			t.Errorf("arns[%d] = %s, want %s", i, arns[i], want[i])
		}
	}
}

func TestListAssignmentsForUser(t *testing.T) {
	mock := &mockSSOAdminAPI{
		listAccountAssignmentsForPrincipalFunc: func(ctx context.Context, params *awssso.ListAccountAssignmentsForPrincipalInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountAssignmentsForPrincipalOutput, error) {
			if params.PrincipalType != ssotypes.PrincipalTypeUser {
				t.Errorf("PrincipalType = %s, want USER", params.PrincipalType)
			}
			if awssdk.ToString(params.PrincipalId) != "u-123" {
				t.Errorf("PrincipalId = %s, want u-123", awssdk.ToString(params.PrincipalId))
			}
			return &awssso.ListAccountAssignmentsForPrincipalOutput{
				AccountAssignments: []ssotypes.AccountAssignmentForPrincipal{
					{
						AccountId:        awssdk.String("111122223333"),
						PermissionSetArn: awssdk.String("arn:ps/admin"),
						PrincipalId:      awssdk.String("u-123"),
						PrincipalType:    ssotypes.PrincipalTypeUser,
					},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	assignments, err := client.ListAssignmentsForUser(context.Background(), testInstanceARN, "u-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}

	a := assignments[0]
	if a.AccountID != "111122223333" {
		t.Errorf("AccountID = %s, want 111122223333", a.AccountID)
	}
	if a.PermissionSetARN != "arn:ps/admin" {
		t.Errorf("PermissionSetARN = %s, want arn:ps/admin", a.PermissionSetARN)
	}
	if a.OriginalPrincipalID != "u-123" {
		t.Errorf("OriginalPrincipalID = %s, want u-123", a.OriginalPrincipalID)
	}
}

// Access provisioned through a group comes back with the group as the
// assignment principal. The record keeps the group's ID, but
// OriginalPrincipalID must still be the queried user.
func TestListAssignmentsForUserGroupPrincipal(t *testing.T) {
	mock := &mockSSOAdminAPI{
		listAccountAssignmentsForPrincipalFunc: func(ctx context.Context, params *awssso.ListAccountAssignmentsForPrincipalInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountAssignmentsForPrincipalOutput, error) {
			return &awssso.ListAccountAssignmentsForPrincipalOutput{
				AccountAssignments: []ssotypes.AccountAssignmentForPrincipal{
					{
						AccountId:        awssdk.String("111122223333"),
						PermissionSetArn: awssdk.String("arn:ps/admin"),
						PrincipalId:      awssdk.String("u-123"),
						PrincipalType:    ssotypes.PrincipalTypeUser,
					},
					{
						AccountId:        awssdk.String("444455556666"),
						PermissionSetArn: awssdk.String("arn:ps/readonly"),
						PrincipalId:      awssdk.String("g-admins"),
						PrincipalType:    ssotypes.PrincipalTypeGroup,
					},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	assignments, err := client.ListAssignmentsForUser(context.Background(), testInstanceARN, "u-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}

	viaGroup := assignments[1]
	if viaGroup.PrincipalID != "g-admins" {
		t.Errorf("PrincipalID = %s, want g-admins", viaGroup.PrincipalID)
	}
	if viaGroup.PrincipalType != "GROUP" {
		t.Errorf("PrincipalType = %s, want GROUP", viaGroup.PrincipalType)
	}
	for i, a := range assignments {
		if a.OriginalPrincipalID != "u-123" {
			t.Errorf("assignments[%d].OriginalPrincipalID = %s, want u-123", i, a.OriginalPrincipalID)
		}
	}
}

func TestListAssignmentsForUserPagination(t *testing.T) {
	calls := 0
	mock := &mockSSOAdminAPI{
		listAccountAssignmentsForPrincipalFunc: func(ctx context.Context, params *awssso.ListAccountAssignmentsForPrincipalInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountAssignmentsForPrincipalOutput, error) {
			calls++
			switch calls {
			case 1:
				return &awssso.ListAccountAssignmentsForPrincipalOutput{
					AccountAssignments: []ssotypes.AccountAssignmentForPrincipal{
						{AccountId: awssdk.String("1"), PermissionSetArn: awssdk.String("arn:ps/a")},
						{AccountId: awssdk.String("2"), PermissionSetArn: awssdk.String("arn:ps/b")},
					},
					NextToken: awssdk.String("t1"),
				}, nil
			case 2:
				return &awssso.ListAccountAssignmentsForPrincipalOutput{
					AccountAssignments: []ssotypes.AccountAssignmentForPrincipal{
						{AccountId: awssdk.String("3"), PermissionSetArn: awssdk.String("arn:ps/c")},
						{AccountId: awssdk.String("4"), PermissionSetArn: awssdk.String("arn:ps/d")},
					},
					NextToken: awssdk.String("t2"),
				}, nil
			default:
				return &awssso.ListAccountAssignmentsForPrincipalOutput{
					AccountAssignments: []ssotypes.AccountAssignmentForPrincipal{
						{AccountId: awssdk.String("5"), PermissionSetArn: awssdk.String("arn:ps/e")},
						{AccountId: awssdk.String("6"), PermissionSetArn: awssdk.String("arn:ps/f")},
					},
				}, nil
			}
		},
	}

	client := NewClient(mock)
	assignments, err := client.ListAssignmentsForUser(context.Background(), testInstanceARN, "u-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 6 {
		t.Fatalf("expected 6 assignments, got %d", len(assignments))
	}
	for i, a := range assignments {
		want := string(rune('1' + i))
		if a.AccountID != want {
			t.Errorf("assignments[%d].AccountID = %s, want %s", i, a.AccountID, want)
		}
		if a.OriginalPrincipalID != "u-9" {
			t.Errorf("assignments[%d].OriginalPrincipalID = %s, want u-9", i, a.OriginalPrincipalID)
		}
	}
}

func TestListManagedPolicies(t *testing.T) {
	calls := 0
	mock := &mockSSOAdminAPI{
		listManagedPoliciesFunc: func(ctx context.Context, params *awssso.ListManagedPoliciesInPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.ListManagedPoliciesInPermissionSetOutput, error) {
			calls++
			if calls == 1 {
				return &awssso.ListManagedPoliciesInPermissionSetOutput{
					AttachedManagedPolicies: []ssotypes.AttachedManagedPolicy{
						{Name: awssdk.String("AdministratorAccess"), Arn: awssdk.String("arn:aws:iam::aws:policy/AdministratorAccess")},
					},
					NextToken: awssdk.String("t1"),
				}, nil
			}
			return &awssso.ListManagedPoliciesInPermissionSetOutput{
				AttachedManagedPolicies: []ssotypes.AttachedManagedPolicy{
					{Name: awssdk.String("ViewOnlyAccess"), Arn: awssdk.String("arn:aws:iam::aws:policy/job-function/ViewOnlyAccess")},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	policies, err := client.ListManagedPolicies(context.Background(), testInstanceARN, "arn:ps/admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("expected 2 policies, got %d", len(policies))
	}
	if policies[0].Name != "AdministratorAccess" {
		t.Errorf("Name = %s, want AdministratorAccess", policies[0].Name)
	}
	if policies[1].Name != "ViewOnlyAccess" {
		t.Errorf("Name = %s, want ViewOnlyAccess", policies[1].Name)
	}
}

func TestGetInlinePolicy(t *testing.T) {
	mock := &mockSSOAdminAPI{
		getInlinePolicyFunc: func(ctx context.Context, params *awssso.GetInlinePolicyForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetInlinePolicyForPermissionSetOutput, error) {
			return &awssso.GetInlinePolicyForPermissionSetOutput{
				InlinePolicy: awssdk.String(`{"Version":"2012-10-17"}`),
			}, nil
		},
	}

	client := NewClient(mock)
	policy, err := client.GetInlinePolicy(context.Background(), testInstanceARN, "arn:ps/admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy != `{"Version":"2012-10-17"}` {
		t.Errorf("policy = %s", policy)
	}
}

func TestGetInlinePolicyEmpty(t *testing.T) {
	mock := &mockSSOAdminAPI{
		getInlinePolicyFunc: func(ctx context.Context, params *awssso.GetInlinePolicyForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetInlinePolicyForPermissionSetOutput, error) {
			return &awssso.GetInlinePolicyForPermissionSetOutput{}, nil
		},
	}

	client := NewClient(mock)
	policy, err := client.GetInlinePolicy(context.Background(), testInstanceARN, "arn:ps/empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy != "" {
		t.Errorf("policy = %q, want empty", policy)
	}
}

// A ResourceNotFoundException means the permission set has no boundary. That
// is a normal state, not an error.
func TestGetPermissionsBoundaryNotFound(t *testing.T) {
	mock := &mockSSOAdminAPI{
		getPermissionsBoundaryFunc: func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
			return nil, &ssotypes.ResourceNotFoundException{Message: awssdk.String("no boundary")}
		},
	}

	client := NewClient(mock)
	boundary, err := client.GetPermissionsBoundary(context.Background(), testInstanceARN, "arn:ps/admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if boundary != nil {
		t.Errorf("boundary = %+v, want nil", boundary)
	}
}

func TestGetPermissionsBoundaryOtherError(t *testing.T) {
	mock := &mockSSOAdminAPI{
		getPermissionsBoundaryFunc: func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}
		},
	}

	client := NewClient(mock)
	_, err := client.GetPermissionsBoundary(context.Background(), testInstanceARN, "arn:ps/admin")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetPermissionsBoundaryManagedPolicy(t *testing.T) {
	mock := &mockSSOAdminAPI{
		getPermissionsBoundaryFunc: func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
			return &awssso.GetPermissionsBoundaryForPermissionSetOutput{
				PermissionsBoundary: &ssotypes.PermissionsBoundary{
					ManagedPolicyArn: awssdk.String("arn:aws:iam::aws:policy/PowerUserAccess"),
				},
			}, nil
		},
	}

	client := NewClient(mock)
	boundary, err := client.GetPermissionsBoundary(context.Background(), testInstanceARN, "arn:ps/admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if boundary == nil {
		t.Fatal("boundary = nil, want value")
	}
	if boundary.ManagedPolicyARN != "arn:aws:iam::aws:policy/PowerUserAccess" {
		t.Errorf("ManagedPolicyARN = %s", boundary.ManagedPolicyARN)
	}
}

func TestGetPermissionsBoundaryCustomerManaged(t *testing.T) {
	mock := &mockSSOAdminAPI{
		getPermissionsBoundaryFunc: func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
			return &awssso.GetPermissionsBoundaryForPermissionSetOutput{
				PermissionsBoundary: &ssotypes.PermissionsBoundary{
					CustomerManagedPolicyReference: &ssotypes.CustomerManagedPolicyReference{
						Name: awssdk.String("team-boundary"),
						Path: awssdk.String("/boundaries/"),
					},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	boundary, err := client.GetPermissionsBoundary(context.Background(), testInstanceARN, "arn:ps/admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if boundary == nil {
		t.Fatal("boundary = nil, want value")
	}
	if boundary.CustomerManagedPolicyName != "team-boundary" {
		t.Errorf("CustomerManagedPolicyName = %s", boundary.CustomerManagedPolicyName)
	}
	if boundary.CustomerManagedPolicyPath != "/boundaries/" {
		t.Errorf("CustomerManagedPolicyPath = %s", boundary.CustomerManagedPolicyPath)
	}
}

func detailMock() *mockSSOAdminAPI {
	return &mockSSOAdminAPI{
		describePermissionSetFunc: func(ctx context.Context, params *awssso.DescribePermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.DescribePermissionSetOutput, error) {
			arn := awssdk.ToString(params.PermissionSetArn)
			name := "ReadOnly"
			if arn == "arn:ps/admin" {
				name = "Admin"
			}
			return &awssso.DescribePermissionSetOutput{
				PermissionSet: &ssotypes.PermissionSet{
					PermissionSetArn: params.PermissionSetArn,
					Name:             awssdk.String(name),
					Description:      awssdk.String(name + " access"),
					SessionDuration:  awssdk.String("PT8H"),
				},
			}, nil
		},
		getInlinePolicyFunc: func(ctx context.Context, params *awssso.GetInlinePolicyForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetInlinePolicyForPermissionSetOutput, error) {
			if awssdk.ToString(params.PermissionSetArn) == "arn:ps/admin" {
				return &awssso.GetInlinePolicyForPermissionSetOutput{
					InlinePolicy: awssdk.String(`{"Version":"2012-10-17"}`),
				}, nil
			}
			return &awssso.GetInlinePolicyForPermissionSetOutput{}, nil
		},
		getPermissionsBoundaryFunc: func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
			if awssdk.ToString(params.PermissionSetArn) == "arn:ps/admin" {
				return &awssso.GetPermissionsBoundaryForPermissionSetOutput{
					PermissionsBoundary: &ssotypes.PermissionsBoundary{
						ManagedPolicyArn: awssdk.String("arn:aws:iam::aws:policy/PowerUserAccess"),
					},
				}, nil
			}
			return nil, &ssotypes.ResourceNotFoundException{Message: awssdk.String("no boundary")}
		},
		listManagedPoliciesFunc: func(ctx context.Context, params *awssso.ListManagedPoliciesInPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.ListManagedPoliciesInPermissionSetOutput, error) {
			if awssdk.ToString(params.PermissionSetArn) == "arn:ps/admin" {
				return &awssso.ListManagedPoliciesInPermissionSetOutput{
					AttachedManagedPolicies: []ssotypes.AttachedManagedPolicy{
						{Name: awssdk.String("AdministratorAccess"), Arn: awssdk.String("arn:aws:iam::aws:policy/AdministratorAccess")},
					},
				}, nil
			}
			return &awssso.ListManagedPoliciesInPermissionSetOutput{}, nil
		},
	}
}

func TestDescribePermissionSets(t *testing.T) {
	client := NewClient(detailMock())
	details, err := client.DescribePermissionSets(context.Background(), testInstanceARN, []string{"arn:ps/admin", "arn:ps/readonly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}

	admin, ok := details["arn:ps/admin"]
	if !ok {
		t.Fatal("missing arn:ps/admin")
	}
	if admin.Name != "Admin" {
		t.Errorf("Name = %s, want Admin", admin.Name)
	}
	if admin.SessionDuration != "PT8H" {
		t.Errorf("SessionDuration = %s, want PT8H", admin.SessionDuration)
	}
	if admin.InlinePolicy != `{"Version":"2012-10-17"}` {
		t.Errorf("InlinePolicy = %s", admin.InlinePolicy)
	}
	// A fetched boundary is always stored on the detail.
	if admin.Boundary == nil {
		t.Fatal("Boundary = nil, want value")
	}
	if admin.Boundary.ManagedPolicyARN != "arn:aws:iam::aws:policy/PowerUserAccess" {
		t.Errorf("Boundary.ManagedPolicyARN = %s", admin.Boundary.ManagedPolicyARN)
	}
	if len(admin.ManagedPolicies) != 1 || admin.ManagedPolicies[0].Name != "AdministratorAccess" {
		t.Errorf("ManagedPolicies = %+v", admin.ManagedPolicies)
	}

	readonly, ok := details["arn:ps/readonly"]
	if !ok {
		t.Fatal("missing arn:ps/readonly")
	}
	if readonly.Boundary != nil {
		t.Errorf("Boundary = %+v, want nil for boundary-less set", readonly.Boundary)
	}
	if readonly.InlinePolicy != "" {
		t.Errorf("InlinePolicy = %q, want empty", readonly.InlinePolicy)
	}
	if readonly.ManagedPolicies == nil || len(readonly.ManagedPolicies) != 0 {
		t.Errorf("ManagedPolicies = %+v, want empty non-nil", readonly.ManagedPolicies)
	}
}

// The boundary not-found path must not abort the aggregation of the remaining
// permission sets.
func TestDescribePermissionSetsBoundaryNotFound(t *testing.T) {
	mock := detailMock()
	mock.getPermissionsBoundaryFunc = func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
		return nil, &ssotypes.ResourceNotFoundException{Message: awssdk.String("no boundary")}
	}

	client := NewClient(mock)
	details, err := client.DescribePermissionSets(context.Background(), testInstanceARN, []string{"arn:ps/admin", "arn:ps/readonly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}
	for arn, d := range details {
		if d.Boundary != nil {
			t.Errorf("%s: Boundary = %+v, want nil", arn, d.Boundary)
		}
	}
}

func TestDescribePermissionSetsDescribeError(t *testing.T) {
	mock := detailMock()
	mock.describePermissionSetFunc = func(ctx context.Context, params *awssso.DescribePermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.DescribePermissionSetOutput, error) {
		return nil, errors.New("ThrottlingException")
	}

	client := NewClient(mock)
	_, err := client.DescribePermissionSets(context.Background(), testInstanceARN, []string{"arn:ps/admin"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Other-than-not-found boundary errors abort the aggregation too.
func TestDescribePermissionSetsBoundaryErrorAborts(t *testing.T) {
	mock := detailMock()
	mock.getPermissionsBoundaryFunc = func(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error) {
		return nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}
	}

	client := NewClient(mock)
	_, err := client.DescribePermissionSets(context.Background(), testInstanceARN, []string{"arn:ps/admin"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Serialized details use inline_policy and managed_policies as key names and
// keep them present even when empty. An earlier rendition of this data carried
// a stray trailing space in the managed policies key; that key must not come
// back.
func TestPermissionSetDetailJSONKeys(t *testing.T) {
	client := NewClient(detailMock())
	details, err := client.DescribePermissionSets(context.Background(), testInstanceARN, []string{"arn:ps/readonly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(details["arn:ps/readonly"])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := m["inline_policy"]; !ok {
		t.Error("missing inline_policy key")
	}
	if _, ok := m["managed_policies"]; !ok {
		t.Error("missing managed_policies key")
	}
	if _, ok := m["managed_policies "]; ok {
		t.Error("legacy trailing-space managed policies key present")
	}
	if string(m["managed_policies"]) != "[]" {
		t.Errorf("managed_policies = %s, want []", m["managed_policies"])
	}
	if string(m["permission_boundary"]) != "null" {
		t.Errorf("permission_boundary = %s, want null", m["permission_boundary"])
	}
}
