package cache

import (
	"time"

	"github.com/zxkane/aws-skills/internal/models"
)

// Cache defines the interface for cache operations
type Cache interface {
	// Gateway operations
	GetGateways() (*models.GatewaysCache, error)
	SetGateways(gateways []models.Gateway, ttl int) error

	// Gateway target operations
	GetTargets(gatewayID string) (*models.TargetsCache, error)
	SetTargets(gatewayID string, targets []models.Target, ttl int) error

	// CloudFormation stack operations
	GetStack(stackName string) (*models.StackCache, error)
	SetStack(stackName string, stack *models.Stack, ttl int) error

	// Cache management
	ClearCache() error
	DeleteGatewayCache(gatewayID string) error
}

// CacheItem represents a generic cache item with TTL
type CacheItem struct {
	Data     interface{} `json:"data"`
	CachedAt time.Time   `json:"cached_at"`
	TTL      int         `json:"ttl"`
}

// IsExpired checks if the cache item has expired
func (c *CacheItem) IsExpired() bool {
	return time.Since(c.CachedAt).Seconds() > float64(c.TTL)
}

// NewCacheItem creates a new cache item
func NewCacheItem(data interface{}, ttl int) *CacheItem {
	return &CacheItem{
		Data:     data,
		CachedAt: time.Now(),
		TTL:      ttl,
	}
}
