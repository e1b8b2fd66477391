package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zxkane/aws-skills/internal/aws"
	"github.com/zxkane/aws-skills/internal/models"
	"github.com/zxkane/aws-skills/pkg/gateway"
)

// requiredServices are the service prefixes the gateway execution role must
// be allowed to call. MCP tool invocation needs bedrock-agentcore, and the
// outbound credential provider is resolved through secretsmanager.
var requiredServices = []string{"bedrock-agentcore", "secretsmanager"}

// DeploymentChecks builds the check sequence that verifies a deployed
// gateway. The checks run in order and share lookup results: the gateway
// fetched by the existence check feeds the target, role, and stack checks.
type DeploymentChecks struct {
	manager    *gateway.Manager
	client     *aws.Client
	identifier string
	stackName  string

	gateway *models.Gateway
	targets []models.Target
}

// NewDeploymentChecks creates the check sequence for a gateway identifier.
// An empty stackName derives the stack name from the gateway name and the
// configured prefix.
func NewDeploymentChecks(manager *gateway.Manager, client *aws.Client, identifier, stackName string) *DeploymentChecks {
	return &DeploymentChecks{
		manager:    manager,
		client:     client,
		identifier: identifier,
		stackName:  stackName,
	}
}

// Checks returns the deployment checks in execution order
func (d *DeploymentChecks) Checks() []Check {
	return []Check{
		{Name: "Gateway existence", Run: d.checkGatewayExists},
		{Name: "Gateway targets", Run: d.checkTargets},
		{Name: "Target details", Run: d.checkTargetDetails},
		{Name: "IAM role policies", Run: d.checkRolePolicies},
		{Name: "CloudFormation stack", Run: d.checkStack},
	}
}

// checkGatewayExists verifies the gateway exists. This is the only hard
// failure in the sequence: a missing gateway stops the run.
func (d *DeploymentChecks) checkGatewayExists(ctx context.Context) models.CheckResult {
	result := models.CheckResult{Status: models.CheckStatusPass}

	gw, err := d.manager.GetGateway(ctx, d.identifier)
	if err != nil {
		result.Status = models.CheckStatusFail
		result.AddMessage(fmt.Sprintf("Gateway not found: %s", d.identifier))
		result.AddMessage(fmt.Sprintf("Lookup failed: %v", err))
		return result
	}
	if gw == nil {
		result.Status = models.CheckStatusFail
		result.AddMessage(fmt.Sprintf("Gateway not found: %s", d.identifier))
		return result
	}

	d.gateway = gw
	result.AddMessage(fmt.Sprintf("Gateway: %s (%s)", gw.Name, gw.ID))
	result.AddMessage(fmt.Sprintf("Status: %s", gw.Status))
	if gw.URL != "" {
		result.AddMessage(fmt.Sprintf("Endpoint: %s", gw.URL))
	}
	if gw.ProtocolType != "" {
		result.AddMessage(fmt.Sprintf("Protocol: %s", gw.ProtocolType))
	}

	if !gw.IsReady() {
		result.Status = models.CheckStatusWarn
		for _, reason := range gw.StatusReasons {
			result.AddMessage(fmt.Sprintf("Status reason: %s", reason))
		}
	}

	return result
}

// checkTargets lists the targets attached to the gateway
func (d *DeploymentChecks) checkTargets(ctx context.Context) models.CheckResult {
	result := models.CheckResult{Status: models.CheckStatusPass}

	targets, err := d.manager.GetTargets(ctx, d.gateway.ID)
	if err != nil {
		result.Status = models.CheckStatusWarn
		result.AddMessage(fmt.Sprintf("Failed to list targets: %v", err))
		return result
	}

	if len(targets) == 0 {
		result.Status = models.CheckStatusWarn
		result.AddMessage("No targets attached to gateway")
		return result
	}

	d.targets = targets
	result.AddMessage(fmt.Sprintf("Found %d target(s)", len(targets)))
	for _, target := range targets {
		result.AddMessage(fmt.Sprintf("%s (%s): %s", target.Name, target.ID, target.Status))
	}

	return result
}

// checkTargetDetails fetches full detail for every target and verifies each
// one is ready
func (d *DeploymentChecks) checkTargetDetails(ctx context.Context) models.CheckResult {
	result := models.CheckResult{Status: models.CheckStatusPass}

	if len(d.targets) == 0 {
		result.Status = models.CheckStatusInfo
		result.AddMessage("No targets to inspect")
		return result
	}

	detailed, err := d.manager.GetTargetDetails(ctx, d.gateway.ID)
	if err != nil {
		result.Status = models.CheckStatusWarn
		result.AddMessage(fmt.Sprintf("Failed to retrieve target details: %v", err))
		return result
	}

	for _, target := range detailed {
		line := fmt.Sprintf("%s: %s", target.Name, target.Status)
		if target.TargetType != "" {
			line += fmt.Sprintf(", type %s", target.TargetType)
		}
		if len(target.CredentialProviderTypes) > 0 {
			line += fmt.Sprintf(", credentials %s", strings.Join(target.CredentialProviderTypes, ", "))
		}
		result.AddMessage(line)

		if !target.IsReady() {
			result.Status = models.CheckStatusWarn
			for _, reason := range target.StatusReasons {
				result.AddMessage(fmt.Sprintf("Status reason: %s", reason))
			}
		}
		if len(target.CredentialProviderTypes) == 0 {
			result.Status = models.CheckStatusWarn
			result.AddMessage(fmt.Sprintf("Target %s has no credential provider configured", target.Name))
		}
	}

	return result
}

// checkRolePolicies cross-references the gateway execution role against the
// services the gateway needs. Inline policy documents are scanned for the
// required service prefixes; managed policies are listed but not fetched.
func (d *DeploymentChecks) checkRolePolicies(ctx context.Context) models.CheckResult {
	result := models.CheckResult{Status: models.CheckStatusPass}

	if d.gateway.RoleArn == "" {
		result.Status = models.CheckStatusWarn
		result.AddMessage("Gateway has no execution role configured")
		return result
	}

	roleName := aws.RoleNameFromArn(d.gateway.RoleArn)
	role, err := d.client.GetRole(ctx, roleName)
	if err != nil {
		result.Status = models.CheckStatusWarn
		if aws.IsAccessDenied(err) {
			result.AddMessage(fmt.Sprintf("Access denied looking up role %s (validation needs iam:GetRole)", roleName))
		} else {
			result.AddMessage(fmt.Sprintf("Failed to look up role %s: %v", roleName, err))
		}
		return result
	}
	if role == nil {
		result.Status = models.CheckStatusWarn
		result.AddMessage(fmt.Sprintf("Execution role not found: %s", roleName))
		return result
	}

	result.AddMessage(fmt.Sprintf("Execution role: %s", role.ARN))

	policyNames, err := d.client.ListRolePolicies(ctx, roleName)
	if err != nil {
		result.Status = models.CheckStatusWarn
		if aws.IsAccessDenied(err) {
			result.AddMessage("Access denied listing inline policies (validation needs iam:ListRolePolicies)")
		} else {
			result.AddMessage(fmt.Sprintf("Failed to list inline policies: %v", err))
		}
		return result
	}

	granted := make(map[string][]string)
	for _, policyName := range policyNames {
		doc, err := d.client.GetRolePolicyDocument(ctx, roleName, policyName)
		if err != nil {
			result.Status = models.CheckStatusWarn
			result.AddMessage(fmt.Sprintf("Failed to read policy %s: %v", policyName, err))
			continue
		}
		for _, service := range requiredServices {
			if strings.Contains(doc, service) {
				granted[service] = append(granted[service], policyName)
			}
		}
	}

	if attached, err := d.client.ListAttachedRolePolicies(ctx, roleName); err == nil && len(attached) > 0 {
		names := make([]string, 0, len(attached))
		for _, policy := range attached {
			names = append(names, policy.Name)
		}
		result.AddMessage(fmt.Sprintf("Managed policies attached: %s", strings.Join(names, ", ")))
	}

	for _, service := range requiredServices {
		if policies := granted[service]; len(policies) > 0 {
			result.AddMessage(fmt.Sprintf("%s access granted by %s", service, strings.Join(policies, ", ")))
		} else {
			result.Status = models.CheckStatusWarn
			result.AddMessage(fmt.Sprintf("No inline policy grants %s access", service))
		}
	}

	return result
}

// checkStack reports the status of the CloudFormation stack deployed
// alongside the gateway. A missing stack is informational, not a failure:
// gateways can be created without the bundled CDK stack.
func (d *DeploymentChecks) checkStack(ctx context.Context) models.CheckResult {
	result := models.CheckResult{Status: models.CheckStatusPass}

	stackName := d.stackName
	if stackName == "" {
		stackName = d.manager.StackNameForGateway(d.gateway)
	}
	stack, err := d.manager.GetStack(ctx, stackName)
	if err != nil {
		result.Status = models.CheckStatusWarn
		result.AddMessage(fmt.Sprintf("Failed to describe stack %s: %v", stackName, err))
		return result
	}

	if stack == nil {
		result.Status = models.CheckStatusInfo
		result.AddMessage(fmt.Sprintf("CloudFormation stack not found: %s", stackName))
		result.AddMessage("Gateway may have been deployed without the bundled stack")
		return result
	}

	result.AddMessage(fmt.Sprintf("Stack %s: %s", stack.Name, stack.Status))

	switch {
	case stack.IsHealthy():
		keys := make([]string, 0, len(stack.Outputs))
		for key := range stack.Outputs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			result.AddMessage(fmt.Sprintf("Output %s = %s", key, stack.Outputs[key]))
		}
	case stack.IsInProgress():
		result.Status = models.CheckStatusWarn
		result.AddMessage("Stack operation in progress")
	case stack.IsRolledBack():
		result.Status = models.CheckStatusWarn
		result.AddMessage("Last stack operation was rolled back")
		if stack.StatusReason != "" {
			result.AddMessage(fmt.Sprintf("Status reason: %s", stack.StatusReason))
		}
	default:
		result.Status = models.CheckStatusWarn
		if stack.StatusReason != "" {
			result.AddMessage(fmt.Sprintf("Status reason: %s", stack.StatusReason))
		}
	}

	return result
}
