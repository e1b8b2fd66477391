package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	"github.com/zxkane/aws-skills/internal/models"
)

// DescribeStack retrieves a CloudFormation stack by name.
// Returns (nil, nil) when no stack exists with that name, which
// CloudFormation reports as a ValidationError rather than a typed
// not-found exception.
func (c *Client) DescribeStack(ctx context.Context, stackName string) (*models.Stack, error) {
	output, err := c.CloudFormation.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: &stackName,
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	if len(output.Stacks) == 0 {
		return nil, nil
	}

	return convertStackToModel(output.Stacks[0]), nil
}

// convertStackToModel converts a CloudFormation stack to our Stack model
func convertStackToModel(stack types.Stack) *models.Stack {
	model := &models.Stack{
		Name:         awssdk.ToString(stack.StackName),
		ID:           awssdk.ToString(stack.StackId),
		Status:       string(stack.StackStatus),
		StatusReason: awssdk.ToString(stack.StackStatusReason),
		Description:  awssdk.ToString(stack.Description),
		CreatedAt:    awssdk.ToTime(stack.CreationTime),
		UpdatedAt:    awssdk.ToTime(stack.LastUpdatedTime),
	}

	if len(stack.Outputs) > 0 {
		model.Outputs = make(map[string]string, len(stack.Outputs))
		for _, output := range stack.Outputs {
			model.Outputs[awssdk.ToString(output.OutputKey)] = awssdk.ToString(output.OutputValue)
		}
	}

	return model
}
