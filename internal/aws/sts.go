package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity represents the caller identity of the current credentials
type Identity struct {
	AccountID string
	ARN       string
	UserID    string
}

// GetCallerIdentity retrieves the identity of the current credentials
func (c *Client) GetCallerIdentity(ctx context.Context) (*Identity, error) {
	output, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &Identity{
		AccountID: awssdk.ToString(output.Account),
		ARN:       awssdk.ToString(output.Arn),
		UserID:    awssdk.ToString(output.UserId),
	}, nil
}

// ResolveAccountID returns the AWS account ID for the current credentials,
// memoizing the STS lookup for the lifetime of the client
func (c *Client) ResolveAccountID(ctx context.Context) (string, error) {
	if c.accountID != "" {
		return c.accountID, nil
	}

	identity, err := c.GetCallerIdentity(ctx)
	if err != nil {
		return "", err
	}

	c.accountID = identity.AccountID
	return c.accountID, nil
}
