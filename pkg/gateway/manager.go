package gateway

import (
	"context"
	"fmt"

	"github.com/zxkane/aws-skills/internal/aws"
	"github.com/zxkane/aws-skills/internal/cache"
	"github.com/zxkane/aws-skills/internal/config"
	"github.com/zxkane/aws-skills/internal/logger"
	"github.com/zxkane/aws-skills/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Manager represents the AgentCore gateway manager
type Manager struct {
	awsClient  *aws.Client
	cache      *cache.FileCache
	config     *config.Config
	cacheUsage *CacheUsage
}

// CacheUsage tracks cache usage information
type CacheUsage struct {
	GatewaysFromCache bool
	TargetsFromCache  bool
	StacksFromCache   bool
}

// NewManager creates a new gateway manager instance
func NewManager(awsClient *aws.Client, cache *cache.FileCache, cfg *config.Config) *Manager {
	return &Manager{
		awsClient:  awsClient,
		cache:      cache,
		config:     cfg,
		cacheUsage: &CacheUsage{},
	}
}

// GetGateways retrieves gateways from cache or AWS API
func (m *Manager) GetGateways(ctx context.Context) ([]models.Gateway, error) {
	logger.GetLogger().Debug("GetGateways called")

	if cachedGateways, err := m.cache.GetGateways(); err == nil {
		logger.GetLogger().Debug("Gateway cache hit")
		m.cacheUsage.GatewaysFromCache = true
		return cachedGateways.Gateways, nil
	} else {
		logger.GetLogger().Debug("Gateway cache miss", zap.Error(err))
		m.cacheUsage.GatewaysFromCache = false
	}

	gateways, err := m.awsClient.ListGateways(ctx)
	if err != nil {
		return nil, err
	}

	if err := m.cache.SetGateways(gateways, m.config.Cache.GatewaysTTL); err != nil {
		logger.GetLogger().Warn("Failed to cache gateways", zap.Error(err))
	}

	return gateways, nil
}

// GetGateway retrieves a single gateway directly from the AWS API.
// Validation needs the live status, so the list cache is bypassed.
// Returns nil when the gateway does not exist.
func (m *Manager) GetGateway(ctx context.Context, identifier string) (*models.Gateway, error) {
	logger.GetLogger().Debug("GetGateway called", zap.String("gateway", identifier))
	return m.awsClient.GetGateway(ctx, identifier)
}

// GetTargets retrieves targets for a gateway from cache or AWS API
func (m *Manager) GetTargets(ctx context.Context, gatewayID string) ([]models.Target, error) {
	logger.GetLogger().Debug("GetTargets called", zap.String("gateway", gatewayID))

	if cachedTargets, err := m.cache.GetTargets(gatewayID); err == nil {
		logger.GetLogger().Debug("Target cache hit", zap.String("gateway", gatewayID))
		m.cacheUsage.TargetsFromCache = true
		return cachedTargets.Targets, nil
	} else {
		logger.GetLogger().Debug("Target cache miss", zap.String("gateway", gatewayID), zap.Error(err))
		m.cacheUsage.TargetsFromCache = false
	}

	targets, err := m.awsClient.ListGatewayTargets(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	if err := m.cache.SetTargets(gatewayID, targets, m.config.Cache.TargetsTTL); err != nil {
		logger.GetLogger().Warn("Failed to cache targets", zap.String("gateway", gatewayID), zap.Error(err))
	}

	return targets, nil
}

// GetTargetDetails retrieves full target detail for every target of a gateway
func (m *Manager) GetTargetDetails(ctx context.Context, gatewayID string) ([]models.Target, error) {
	return m.GetTargetDetailsWithProgress(ctx, gatewayID, false)
}

// GetTargetDetailsWithProgress retrieves full target detail for every target of
// a gateway, with optional progress display. Detail lookups run concurrently,
// bounded by execution.max_concurrent, and the results keep the listing order.
// Targets deleted between the list and the detail call fall back to their
// summary entry.
func (m *Manager) GetTargetDetailsWithProgress(ctx context.Context, gatewayID string, showProgress bool) ([]models.Target, error) {
	targets, err := m.GetTargets(ctx, gatewayID)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}

	logger.GetLogger().Debug("Retrieving target details",
		zap.String("gateway", gatewayID),
		zap.Int("count", len(targets)),
		zap.Int("max_concurrent", m.config.Execution.MaxConcurrent))

	var progress *models.ProgressInfo
	if showProgress {
		progress = models.NewProgressInfo(len(targets))
		fmt.Printf("Retrieving details for %d target(s)...\n", len(targets))
	}

	detailed := make([]models.Target, len(targets))
	copy(detailed, targets)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.config.Execution.MaxConcurrent)

	for i, target := range targets {
		g.Go(func() error {
			detail, err := m.awsClient.GetGatewayTarget(gctx, gatewayID, target.ID)
			if err != nil {
				return err
			}
			if detail != nil {
				detailed[i] = *detail
			}
			if progress != nil {
				progress.IncrementAPI()
				fmt.Printf("\r%s", progress.GetProgressString())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if progress != nil {
		fmt.Printf("\r%s\n", progress.GetCompletionSummary())
	}

	if err := m.cache.SetTargets(gatewayID, detailed, m.config.Cache.TargetsTTL); err != nil {
		logger.GetLogger().Warn("Failed to cache target details", zap.String("gateway", gatewayID), zap.Error(err))
	}

	return detailed, nil
}

// GetStack retrieves a CloudFormation stack from cache or AWS API.
// A missing stack is cached too, as a nil entry, so repeated validation
// runs do not hammer DescribeStacks for stacks that were never created.
// Returns nil when the stack does not exist.
func (m *Manager) GetStack(ctx context.Context, stackName string) (*models.Stack, error) {
	logger.GetLogger().Debug("GetStack called", zap.String("stack", stackName))

	if cachedStack, err := m.cache.GetStack(stackName); err == nil {
		logger.GetLogger().Debug("Stack cache hit", zap.String("stack", stackName))
		m.cacheUsage.StacksFromCache = true
		return cachedStack.Stack, nil
	} else {
		logger.GetLogger().Debug("Stack cache miss", zap.String("stack", stackName), zap.Error(err))
		m.cacheUsage.StacksFromCache = false
	}

	stack, err := m.awsClient.DescribeStack(ctx, stackName)
	if err != nil {
		return nil, err
	}

	if err := m.cache.SetStack(stackName, stack, m.config.Cache.StacksTTL); err != nil {
		logger.GetLogger().Warn("Failed to cache stack", zap.String("stack", stackName), zap.Error(err))
	}

	return stack, nil
}

// StackNameForGateway derives the CloudFormation stack name deployed
// alongside a gateway
func (m *Manager) StackNameForGateway(gw *models.Gateway) string {
	return m.config.Stack.NamePrefix + gw.Name
}

// ClearCache clears all cached data
func (m *Manager) ClearCache() error {
	return m.cache.ClearCache()
}

// DeleteGatewayCache removes cached data for a single gateway
func (m *Manager) DeleteGatewayCache(gatewayID string) error {
	return m.cache.DeleteGatewayCache(gatewayID)
}

// GetCacheUsage returns the current cache usage information
func (m *Manager) GetCacheUsage() *CacheUsage {
	return m.cacheUsage
}
