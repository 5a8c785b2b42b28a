package organizations

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsorgs "github.com/aws/aws-sdk-go-v2/service/organizations"
)

type OrganizationsAPI interface {
	ListAccounts(ctx context.Context, params *awsorgs.ListAccountsInput, optFns ...func(*awsorgs.Options)) (*awsorgs.ListAccountsOutput, error)
}

type Client struct {
	api OrganizationsAPI
}

func NewClient(api OrganizationsAPI) *Client {
	return &Client{api: api}
}

// ListAccounts returns every account in the organization, keyed by account ID.
func (c *Client) ListAccounts(ctx context.Context) (map[string]Account, error) {
	accounts := make(map[string]Account)
	var nextToken *string

	for {
		out, err := c.api.ListAccounts(ctx, &awsorgs.ListAccountsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAccounts: %w", err)
		}

		for _, a := range out.Accounts {
			var joinedAt time.Time
			if a.JoinedTimestamp != nil {
				joinedAt = *a.JoinedTimestamp
			}
			id := aws.ToString(a.Id)
			accounts[id] = Account{
				ID:       id,
				Name:     aws.ToString(a.Name),
				Email:    aws.ToString(a.Email),
				ARN:      aws.ToString(a.Arn),
				Status:   string(a.Status),
				JoinedAt: joinedAt,
			}
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return accounts, nil
}
