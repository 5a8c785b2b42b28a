package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsids "github.com/aws/aws-sdk-go-v2/service/identitystore"
	awsorgs "github.com/aws/aws-sdk-go-v2/service/organizations"
	awssso "github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"tasnim.dev/idc-audit/internal/aws/identitystore"
	"tasnim.dev/idc-audit/internal/aws/organizations"
	"tasnim.dev/idc-audit/internal/aws/ssoadmin"
)

// ServiceClient bundles the three service wrappers every run needs, built
// from one resolved config.
type ServiceClient struct {
	Cfg           aws.Config
	SSOAdmin      *ssoadmin.Client
	IdentityStore *identitystore.Client
	Organizations *organizations.Client
}

func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &ServiceClient{
		Cfg:           cfg,
		SSOAdmin:      ssoadmin.NewClient(awssso.NewFromConfig(cfg)),
		IdentityStore: identitystore.NewClient(awsids.NewFromConfig(cfg)),
		Organizations: organizations.NewClient(awsorgs.NewFromConfig(cfg)),
	}, nil
}

// AccountID resolves the caller's account via STS for the header line.
// Display only; failures degrade to an empty string instead of blocking
// startup.
func (c *ServiceClient) AccountID(ctx context.Context) string {
	ident, err := sts.NewFromConfig(c.Cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ""
	}
	return aws.ToString(ident.Account)
}
