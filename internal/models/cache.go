package models

import "time"

// GatewaysCache represents cached gateway listing data
type GatewaysCache struct {
	Gateways []Gateway `json:"gateways"`
	CachedAt time.Time `json:"cached_at"`
	TTL      int       `json:"ttl"`
}

// TargetsCache represents cached target data for a single gateway
type TargetsCache struct {
	GatewayID string    `json:"gateway_id"`
	Targets   []Target  `json:"targets"`
	CachedAt  time.Time `json:"cached_at"`
	TTL       int       `json:"ttl"`
}

// StackCache represents cached CloudFormation stack data
type StackCache struct {
	// Stack is nil when the lookup found no stack with that name
	Stack    *Stack    `json:"stack"`
	CachedAt time.Time `json:"cached_at"`
	TTL      int       `json:"ttl"`
}
