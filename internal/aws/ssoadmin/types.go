package ssoadmin

import "time"

type Instance struct {
	InstanceARN     string
	IdentityStoreID string
	Name            string
	OwnerAccountID  string
	Status          string
	CreatedAt       time.Time
}

// Assignment links a principal to a permission set within one account. The
// service reports group-provisioned access under the group's principal ID;
// OriginalPrincipalID is always the user the query ran for, regardless.
type Assignment struct {
	AccountID           string `json:"account_id"`
	PermissionSetARN    string `json:"permission_set_arn"`
	PrincipalID         string `json:"principal_id"`
	PrincipalType       string `json:"principal_type"`
	OriginalPrincipalID string `json:"original_principal_id"`
}

type AttachedManagedPolicy struct {
	Name string `json:"name"`
	ARN  string `json:"arn"`
}

// PermissionsBoundary references either an AWS managed policy or a customer
// managed policy used as the boundary.
type PermissionsBoundary struct {
	ManagedPolicyARN          string `json:"managed_policy_arn,omitempty"`
	CustomerManagedPolicyName string `json:"customer_managed_policy_name,omitempty"`
	CustomerManagedPolicyPath string `json:"customer_managed_policy_path,omitempty"`
}

// PermissionSetDetail merges the describe call with the permission set's
// inline policy, permissions boundary, and managed policy attachments.
// Boundary is nil when the permission set has no boundary configured.
type PermissionSetDetail struct {
	ARN             string                  `json:"arn"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	SessionDuration string                  `json:"session_duration,omitempty"`
	RelayState      string                  `json:"relay_state,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	InlinePolicy    string                  `json:"inline_policy"`
	Boundary        *PermissionsBoundary    `json:"permission_boundary"`
	ManagedPolicies []AttachedManagedPolicy `json:"managed_policies"`
}
