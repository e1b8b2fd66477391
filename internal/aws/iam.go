package aws

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// Role represents the subset of IAM role information the deployment checks use
type Role struct {
	Name string
	ARN  string
	ID   string
}

// AttachedPolicy represents a managed policy attached to a role
type AttachedPolicy struct {
	Name string
	ARN  string
}

// RoleNameFromArn extracts the role name from a role ARN.
// Role ARNs look like arn:aws:iam::123456789012:role/path/RoleName.
func RoleNameFromArn(roleArn string) string {
	idx := strings.LastIndex(roleArn, "/")
	if idx < 0 || idx == len(roleArn)-1 {
		return roleArn
	}
	return roleArn[idx+1:]
}

// GetRole retrieves an IAM role by name.
// Returns (nil, nil) when the role does not exist.
func (c *Client) GetRole(ctx context.Context, roleName string) (*Role, error) {
	output, err := c.IAM.GetRole(ctx, &iam.GetRoleInput{
		RoleName: &roleName,
	})
	if err != nil {
		var notFound *types.NoSuchEntityException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role %s: %w", roleName, err)
	}

	if output.Role == nil {
		return nil, nil
	}

	return &Role{
		Name: awssdk.ToString(output.Role.RoleName),
		ARN:  awssdk.ToString(output.Role.Arn),
		ID:   awssdk.ToString(output.Role.RoleId),
	}, nil
}

// ListRolePolicies retrieves the inline policy names of a role
func (c *Client) ListRolePolicies(ctx context.Context, roleName string) ([]string, error) {
	var policyNames []string

	paginator := iam.NewListRolePoliciesPaginator(c.IAM, &iam.ListRolePoliciesInput{
		RoleName: &roleName,
	})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list policies for role %s: %w", roleName, err)
		}
		policyNames = append(policyNames, output.PolicyNames...)
	}

	return policyNames, nil
}

// GetRolePolicyDocument retrieves an inline policy document as decoded JSON.
// IAM returns policy documents URL-encoded.
func (c *Client) GetRolePolicyDocument(ctx context.Context, roleName, policyName string) (string, error) {
	output, err := c.IAM.GetRolePolicy(ctx, &iam.GetRolePolicyInput{
		RoleName:   &roleName,
		PolicyName: &policyName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get policy %s for role %s: %w", policyName, roleName, err)
	}

	document, err := url.QueryUnescape(awssdk.ToString(output.PolicyDocument))
	if err != nil {
		return "", fmt.Errorf("failed to decode policy %s for role %s: %w", policyName, roleName, err)
	}

	return document, nil
}

// ListAttachedRolePolicies retrieves the managed policies attached to a role
func (c *Client) ListAttachedRolePolicies(ctx context.Context, roleName string) ([]AttachedPolicy, error) {
	var policies []AttachedPolicy

	paginator := iam.NewListAttachedRolePoliciesPaginator(c.IAM, &iam.ListAttachedRolePoliciesInput{
		RoleName: &roleName,
	})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list attached policies for role %s: %w", roleName, err)
		}
		for _, policy := range output.AttachedPolicies {
			policies = append(policies, AttachedPolicy{
				Name: awssdk.ToString(policy.PolicyName),
				ARN:  awssdk.ToString(policy.PolicyArn),
			})
		}
	}

	return policies, nil
}
