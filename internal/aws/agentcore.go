package aws

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"

	"github.com/zxkane/aws-skills/internal/models"
)

// ListGateways retrieves all AgentCore gateways in the current region
func (c *Client) ListGateways(ctx context.Context) ([]models.Gateway, error) {
	var gateways []models.Gateway

	paginator := bedrockagentcorecontrol.NewListGatewaysPaginator(c.AgentCore, &bedrockagentcorecontrol.ListGatewaysInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list gateways: %w", err)
		}

		for _, item := range output.Items {
			gateways = append(gateways, convertGatewaySummaryToModel(item))
		}
	}

	return gateways, nil
}

// GetGateway retrieves detailed information about a specific gateway.
// Returns (nil, nil) when no gateway exists with that identifier.
func (c *Client) GetGateway(ctx context.Context, identifier string) (*models.Gateway, error) {
	output, err := c.AgentCore.GetGateway(ctx, &bedrockagentcorecontrol.GetGatewayInput{
		GatewayIdentifier: &identifier,
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gateway %s: %w", identifier, err)
	}

	return convertGatewayToModel(output), nil
}

// ListGatewayTargets retrieves the targets attached to a gateway
func (c *Client) ListGatewayTargets(ctx context.Context, gatewayID string) ([]models.Target, error) {
	var targets []models.Target

	paginator := bedrockagentcorecontrol.NewListGatewayTargetsPaginator(c.AgentCore, &bedrockagentcorecontrol.ListGatewayTargetsInput{
		GatewayIdentifier: &gatewayID,
	})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list targets for gateway %s: %w", gatewayID, err)
		}

		for _, item := range output.Items {
			targets = append(targets, convertTargetSummaryToModel(gatewayID, item))
		}
	}

	return targets, nil
}

// GetGatewayTarget retrieves detailed information about a specific target.
// Returns (nil, nil) when the target does not exist.
func (c *Client) GetGatewayTarget(ctx context.Context, gatewayID, targetID string) (*models.Target, error) {
	output, err := c.AgentCore.GetGatewayTarget(ctx, &bedrockagentcorecontrol.GetGatewayTargetInput{
		GatewayIdentifier: &gatewayID,
		TargetId:          &targetID,
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get target %s for gateway %s: %w", targetID, gatewayID, err)
	}

	return convertTargetToModel(gatewayID, output), nil
}

// convertGatewaySummaryToModel converts a gateway listing entry to our Gateway model
func convertGatewaySummaryToModel(item types.GatewaySummary) models.Gateway {
	return models.Gateway{
		ID:             awssdk.ToString(item.GatewayId),
		Name:           awssdk.ToString(item.Name),
		Description:    awssdk.ToString(item.Description),
		Status:         string(item.Status),
		ProtocolType:   string(item.ProtocolType),
		AuthorizerType: string(item.AuthorizerType),
		CreatedAt:      awssdk.ToTime(item.CreatedAt),
		UpdatedAt:      awssdk.ToTime(item.UpdatedAt),
	}
}

// convertGatewayToModel converts a full gateway response to our Gateway model
func convertGatewayToModel(output *bedrockagentcorecontrol.GetGatewayOutput) *models.Gateway {
	return &models.Gateway{
		ID:             awssdk.ToString(output.GatewayId),
		ARN:            awssdk.ToString(output.GatewayArn),
		Name:           awssdk.ToString(output.Name),
		Description:    awssdk.ToString(output.Description),
		Status:         string(output.Status),
		StatusReasons:  output.StatusReasons,
		URL:            awssdk.ToString(output.GatewayUrl),
		RoleArn:        awssdk.ToString(output.RoleArn),
		ProtocolType:   string(output.ProtocolType),
		AuthorizerType: string(output.AuthorizerType),
		CreatedAt:      awssdk.ToTime(output.CreatedAt),
		UpdatedAt:      awssdk.ToTime(output.UpdatedAt),
	}
}

// convertTargetSummaryToModel converts a target listing entry to our Target model
func convertTargetSummaryToModel(gatewayID string, item types.TargetSummary) models.Target {
	return models.Target{
		ID:          awssdk.ToString(item.TargetId),
		GatewayID:   gatewayID,
		Name:        awssdk.ToString(item.Name),
		Description: awssdk.ToString(item.Description),
		Status:      string(item.Status),
		CreatedAt:   awssdk.ToTime(item.CreatedAt),
		UpdatedAt:   awssdk.ToTime(item.UpdatedAt),
	}
}

// convertTargetToModel converts a full target response to our Target model
func convertTargetToModel(gatewayID string, output *bedrockagentcorecontrol.GetGatewayTargetOutput) *models.Target {
	target := &models.Target{
		ID:            awssdk.ToString(output.TargetId),
		GatewayID:     gatewayID,
		Name:          awssdk.ToString(output.Name),
		Description:   awssdk.ToString(output.Description),
		Status:        string(output.Status),
		StatusReasons: output.StatusReasons,
		TargetType:    targetTypeFromConfiguration(output.TargetConfiguration),
		CreatedAt:     awssdk.ToTime(output.CreatedAt),
		UpdatedAt:     awssdk.ToTime(output.UpdatedAt),
	}

	for _, provider := range output.CredentialProviderConfigurations {
		target.CredentialProviderTypes = append(target.CredentialProviderTypes, string(provider.CredentialProviderType))
	}

	return target
}

// targetTypeFromConfiguration derives a display name from the target configuration union
func targetTypeFromConfiguration(conf types.TargetConfiguration) string {
	switch conf.(type) {
	case *types.TargetConfigurationMemberMcp:
		return "MCP"
	case nil:
		return ""
	}
	return "UNKNOWN"
}
