package models

import "time"

// Gateway status values as reported by the AgentCore control plane
const (
	GatewayStatusCreating = "CREATING"
	GatewayStatusUpdating = "UPDATING"
	GatewayStatusReady    = "READY"
	GatewayStatusFailed   = "FAILED"
	GatewayStatusDeleting = "DELETING"
)

// Target status values as reported by the AgentCore control plane
const (
	TargetStatusCreating = "CREATING"
	TargetStatusUpdating = "UPDATING"
	TargetStatusReady    = "READY"
	TargetStatusFailed   = "FAILED"
	TargetStatusDeleting = "DELETING"
)

// Gateway represents an AgentCore gateway
type Gateway struct {
	ID             string    `json:"gateway_id"`
	ARN            string    `json:"gateway_arn"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	StatusReasons  []string  `json:"status_reasons,omitempty"`
	URL            string    `json:"gateway_url,omitempty"`
	RoleArn        string    `json:"role_arn,omitempty"`
	ProtocolType   string    `json:"protocol_type,omitempty"`
	AuthorizerType string    `json:"authorizer_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Target represents a target attached to an AgentCore gateway
type Target struct {
	ID                      string    `json:"target_id"`
	GatewayID               string    `json:"gateway_id"`
	Name                    string    `json:"name"`
	Description             string    `json:"description,omitempty"`
	Status                  string    `json:"status"`
	StatusReasons           []string  `json:"status_reasons,omitempty"`
	TargetType              string    `json:"target_type,omitempty"`
	CredentialProviderTypes []string  `json:"credential_provider_types,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// IsReady returns true when the gateway is in a fully operational state
func (g *Gateway) IsReady() bool {
	return g.Status == GatewayStatusReady
}

// IsTransitional returns true while the control plane is still working on the gateway
func (g *Gateway) IsTransitional() bool {
	switch g.Status {
	case GatewayStatusCreating, GatewayStatusUpdating, GatewayStatusDeleting:
		return true
	}
	return false
}

// IsReady returns true when the target is in a fully operational state
func (t *Target) IsReady() bool {
	return t.Status == TargetStatusReady
}

// IsTransitional returns true while the control plane is still working on the target
func (t *Target) IsTransitional() bool {
	switch t.Status {
	case TargetStatusCreating, TargetStatusUpdating, TargetStatusDeleting:
		return true
	}
	return false
}

// GetUpdated returns the most recent modification time of the gateway
func (g *Gateway) GetUpdated() time.Time {
	if g.UpdatedAt.IsZero() {
		return g.CreatedAt
	}
	return g.UpdatedAt
}
