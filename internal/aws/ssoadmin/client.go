package ssoadmin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssso "github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	ssotypes "github.com/aws/aws-sdk-go-v2/service/ssoadmin/types"
	"github.com/aws/smithy-go"
)

type SSOAdminAPI interface {
	ListInstances(ctx context.Context, params *awssso.ListInstancesInput, optFns ...func(*awssso.Options)) (*awssso.ListInstancesOutput, error)
	ListPermissionSets(ctx context.Context, params *awssso.ListPermissionSetsInput, optFns ...func(*awssso.Options)) (*awssso.ListPermissionSetsOutput, error)
	ListAccountAssignmentsForPrincipal(ctx context.Context, params *awssso.ListAccountAssignmentsForPrincipalInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountAssignmentsForPrincipalOutput, error)
	ListManagedPoliciesInPermissionSet(ctx context.Context, params *awssso.ListManagedPoliciesInPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.ListManagedPoliciesInPermissionSetOutput, error)
	DescribePermissionSet(ctx context.Context, params *awssso.DescribePermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.DescribePermissionSetOutput, error)
	GetInlinePolicyForPermissionSet(ctx context.Context, params *awssso.GetInlinePolicyForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetInlinePolicyForPermissionSetOutput, error)
	GetPermissionsBoundaryForPermissionSet(ctx context.Context, params *awssso.GetPermissionsBoundaryForPermissionSetInput, optFns ...func(*awssso.Options)) (*awssso.GetPermissionsBoundaryForPermissionSetOutput, error)
}

type Client struct {
	api SSOAdminAPI
}

func NewClient(api SSOAdminAPI) *Client {
	return &Client{api: api}
}

// resourceNotFound reports whether err is the service's ResourceNotFoundException.
func resourceNotFound(err error) bool {
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == (&ssotypes.ResourceNotFoundException{}).ErrorCode()
}

// ListInstances returns the Identity Center instances visible to the caller.
// Instances carry the instance ARN and identity store ID every other call in
// this package is scoped by.
func (c *Client) ListInstances(ctx context.Context) ([]Instance, error) {
	var instances []Instance
	var nextToken *string

	for {
		out, err := c.api.ListInstances(ctx, &awssso.ListInstancesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListInstances: %w", err)
		}

		for _, inst := range out.Instances {
			var createdAt time.Time
			if inst.CreatedDate != nil {
				createdAt = *inst.CreatedDate
			}
			instances = append(instances, Instance{
				InstanceARN:     aws.ToString(inst.InstanceArn),
				IdentityStoreID: aws.ToString(inst.IdentityStoreId),
				Name:            aws.ToString(inst.Name),
				OwnerAccountID:  aws.ToString(inst.OwnerAccountId),
				Status:          string(inst.Status),
				CreatedAt:       createdAt,
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return instances, nil
}

// ListPermissionSets returns the ARNs of all permission sets in the instance,
// in service order.
func (c *Client) ListPermissionSets(ctx context.Context, instanceARN string) ([]string, error) {
	var arns []string
	var nextToken *string

	for {
		out, err := c.api.ListPermissionSets(ctx, &awssso.ListPermissionSetsInput{
			InstanceArn: aws.String(instanceARN),
			NextToken:   nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListPermissionSets: %w", err)
		}

		arns = append(arns, out.PermissionSets...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return arns, nil
}

// ListAssignmentsForUser returns every account assignment visible to the user,
// one record per (account, permission set) pair. OriginalPrincipalID is set to
// userID on every record, even when the service substitutes the provisioning
// group's ID as the assignment principal.
func (c *Client) ListAssignmentsForUser(ctx context.Context, instanceARN, userID string) ([]Assignment, error) {
	var assignments []Assignment
	var nextToken *string

	for {
		out, err := c.api.ListAccountAssignmentsForPrincipal(ctx, &awssso.ListAccountAssignmentsForPrincipalInput{
			InstanceArn:   aws.String(instanceARN),
			PrincipalId:   aws.String(userID),
			PrincipalType: ssotypes.PrincipalTypeUser,
			NextToken:     nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAccountAssignmentsForPrincipal(%s): %w", userID, err)
		}

		for _, a := range out.AccountAssignments {
			assignments = append(assignments, Assignment{
				AccountID:           aws.ToString(a.AccountId),
				PermissionSetARN:    aws.ToString(a.PermissionSetArn),
				PrincipalID:         aws.ToString(a.PrincipalId),
				PrincipalType:       string(a.PrincipalType),
				OriginalPrincipalID: userID,
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return assignments, nil
}

// ListManagedPolicies returns the managed policies attached to a permission
// set, in service order.
func (c *Client) ListManagedPolicies(ctx context.Context, instanceARN, permissionSetARN string) ([]AttachedManagedPolicy, error) {
	var policies []AttachedManagedPolicy
	var nextToken *string

	for {
		out, err := c.api.ListManagedPoliciesInPermissionSet(ctx, &awssso.ListManagedPoliciesInPermissionSetInput{
			InstanceArn:      aws.String(instanceARN),
			PermissionSetArn: aws.String(permissionSetARN),
			NextToken:        nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListManagedPoliciesInPermissionSet(%s): %w", permissionSetARN, err)
		}

		for _, p := range out.AttachedManagedPolicies {
			policies = append(policies, AttachedManagedPolicy{
				Name: aws.ToString(p.Name),
				ARN:  aws.ToString(p.Arn),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return policies, nil
}

// GetInlinePolicy returns the inline policy document of a permission set, or
// an empty string when none is set.
func (c *Client) GetInlinePolicy(ctx context.Context, instanceARN, permissionSetARN string) (string, error) {
	out, err := c.api.GetInlinePolicyForPermissionSet(ctx, &awssso.GetInlinePolicyForPermissionSetInput{
		InstanceArn:      aws.String(instanceARN),
		PermissionSetArn: aws.String(permissionSetARN),
	})
	if err != nil {
		return "", fmt.Errorf("GetInlinePolicyForPermissionSet(%s): %w", permissionSetARN, err)
	}
	return aws.ToString(out.InlinePolicy), nil
}

// GetPermissionsBoundary returns the permissions boundary of a permission set.
// A ResourceNotFoundException from the service means no boundary is configured
// and yields (nil, nil), not an error.
func (c *Client) GetPermissionsBoundary(ctx context.Context, instanceARN, permissionSetARN string) (*PermissionsBoundary, error) {
	out, err := c.api.GetPermissionsBoundaryForPermissionSet(ctx, &awssso.GetPermissionsBoundaryForPermissionSetInput{
		InstanceArn:      aws.String(instanceARN),
		PermissionSetArn: aws.String(permissionSetARN),
	})
	if err != nil {
		if resourceNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPermissionsBoundaryForPermissionSet(%s): %w", permissionSetARN, err)
	}
	if out.PermissionsBoundary == nil {
		return nil, nil
	}

	boundary := &PermissionsBoundary{
		ManagedPolicyARN: aws.ToString(out.PermissionsBoundary.ManagedPolicyArn),
	}
	if ref := out.PermissionsBoundary.CustomerManagedPolicyReference; ref != nil {
		boundary.CustomerManagedPolicyName = aws.ToString(ref.Name)
		boundary.CustomerManagedPolicyPath = aws.ToString(ref.Path)
	}
	return boundary, nil
}

// DescribePermissionSets resolves each ARN into a full detail record merging
// the base description, inline policy, permissions boundary, and managed
// policy attachments. Each detail is built whole and then inserted; the result
// has exactly the given ARNs as keys. The boundary lookup is the only call
// whose not-found error is recovered; any other failure aborts the whole run.
func (c *Client) DescribePermissionSets(ctx context.Context, instanceARN string, arns []string) (map[string]PermissionSetDetail, error) {
	details := make(map[string]PermissionSetDetail, len(arns))

	for _, arn := range arns {
		out, err := c.api.DescribePermissionSet(ctx, &awssso.DescribePermissionSetInput{
			InstanceArn:      aws.String(instanceARN),
			PermissionSetArn: aws.String(arn),
		})
		if err != nil {
			return nil, fmt.Errorf("DescribePermissionSet(%s): %w", arn, err)
		}

		detail := PermissionSetDetail{ARN: arn}
		if ps := out.PermissionSet; ps != nil {
			detail.Name = aws.ToString(ps.Name)
			detail.Description = aws.ToString(ps.Description)
			detail.SessionDuration = aws.ToString(ps.SessionDuration)
			detail.RelayState = aws.ToString(ps.RelayState)
			if ps.CreatedDate != nil {
				detail.CreatedAt = *ps.CreatedDate
			}
		}

		inline, err := c.GetInlinePolicy(ctx, instanceARN, arn)
		if err != nil {
			return nil, err
		}
		detail.InlinePolicy = inline

		boundary, err := c.GetPermissionsBoundary(ctx, instanceARN, arn)
		if err != nil {
			return nil, err
		}
		detail.Boundary = boundary

		policies, err := c.ListManagedPolicies(ctx, instanceARN, arn)
		if err != nil {
			return nil, err
		}
		if policies == nil {
			policies = []AttachedManagedPolicy{}
		}
		detail.ManagedPolicies = policies

		details[arn] = detail
	}

	return details, nil
}
