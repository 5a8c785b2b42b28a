package identitystore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsids "github.com/aws/aws-sdk-go-v2/service/identitystore"
	idstypes "github.com/aws/aws-sdk-go-v2/service/identitystore/types"
)

type IdentityStoreAPI interface {
	ListUsers(ctx context.Context, params *awsids.ListUsersInput, optFns ...func(*awsids.Options)) (*awsids.ListUsersOutput, error)
	ListGroups(ctx context.Context, params *awsids.ListGroupsInput, optFns ...func(*awsids.Options)) (*awsids.ListGroupsOutput, error)
	ListGroupMemberships(ctx context.Context, params *awsids.ListGroupMembershipsInput, optFns ...func(*awsids.Options)) (*awsids.ListGroupMembershipsOutput, error)
}

type Client struct {
	api IdentityStoreAPI
}

func NewClient(api IdentityStoreAPI) *Client {
	return &Client{api: api}
}

// ListUsers returns every user in the identity store, keyed by user ID.
func (c *Client) ListUsers(ctx context.Context, identityStoreID string) (map[string]User, error) {
	users := make(map[string]User)
	var nextToken *string

	for {
		out, err := c.api.ListUsers(ctx, &awsids.ListUsersInput{
			IdentityStoreId: aws.String(identityStoreID),
			NextToken:       nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListUsers(%s): %w", identityStoreID, err)
		}

		for _, u := range out.Users {
			id := aws.ToString(u.UserId)
			user := User{
				UserID:      id,
				UserName:    aws.ToString(u.UserName),
				DisplayName: aws.ToString(u.DisplayName),
			}
			if u.Name != nil {
				user.GivenName = aws.ToString(u.Name.GivenName)
				user.FamilyName = aws.ToString(u.Name.FamilyName)
			}
			for _, e := range u.Emails {
				if e.Primary || user.Email == "" {
					user.Email = aws.ToString(e.Value)
				}
				if e.Primary {
					break
				}
			}
			for _, ext := range u.ExternalIds {
				user.ExternalIDs = append(user.ExternalIDs, ExternalID{
					Issuer: aws.ToString(ext.Issuer),
					ID:     aws.ToString(ext.Id),
				})
			}
			users[id] = user
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return users, nil
}

// ListGroups returns every group in the identity store, in service order.
func (c *Client) ListGroups(ctx context.Context, identityStoreID string) ([]Group, error) {
	var groups []Group
	var nextToken *string

	for {
		out, err := c.api.ListGroups(ctx, &awsids.ListGroupsInput{
			IdentityStoreId: aws.String(identityStoreID),
			NextToken:       nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListGroups(%s): %w", identityStoreID, err)
		}

		for _, g := range out.Groups {
			groups = append(groups, Group{
				GroupID:     aws.ToString(g.GroupId),
				DisplayName: aws.ToString(g.DisplayName),
				Description: aws.ToString(g.Description),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return groups, nil
}

// ListGroupMemberships returns the membership records of one group. The member
// user ID is decoded from the service's MemberId union; non-user members are
// skipped.
func (c *Client) ListGroupMemberships(ctx context.Context, identityStoreID, groupID string) ([]GroupMembership, error) {
	var memberships []GroupMembership
	var nextToken *string

	for {
		out, err := c.api.ListGroupMemberships(ctx, &awsids.ListGroupMembershipsInput{
			IdentityStoreId: aws.String(identityStoreID),
			GroupId:         aws.String(groupID),
			NextToken:       nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListGroupMemberships(%s): %w", groupID, err)
		}

		for _, m := range out.GroupMemberships {
			member, ok := m.MemberId.(*idstypes.MemberIdMemberUserId)
			if !ok {
				continue
			}
			memberships = append(memberships, GroupMembership{
				MembershipID: aws.ToString(m.MembershipId),
				GroupID:      aws.ToString(m.GroupId),
				UserID:       member.Value,
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return memberships, nil
}
