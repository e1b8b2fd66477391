package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zxkane/aws-skills/internal/logger"
	"github.com/zxkane/aws-skills/internal/models"

	"go.uber.org/zap"
)

// FileCache represents a file-based cache implementation
type FileCache struct {
	baseDir    string
	awsContext *AWSContext
	config     *CacheConfig
}

// NewFileCache creates a new file cache instance
func NewFileCache(baseDir string) *FileCache {
	return &FileCache{
		baseDir:    baseDir,
		awsContext: nil, // Will be set when AWS context is available
	}
}

// NewFileCacheWithContext creates a new file cache instance with AWS context
func NewFileCacheWithContext(baseDir string, awsContext *AWSContext) *FileCache {
	return &FileCache{
		baseDir:    baseDir,
		awsContext: awsContext,
	}
}

// SetAWSContext sets the AWS context for cache isolation
func (fc *FileCache) SetAWSContext(awsContext *AWSContext) {
	fc.awsContext = awsContext
}

// getCacheDir returns the cache directory with AWS context isolation
func (fc *FileCache) getCacheDir() string {
	if fc.awsContext == nil {
		return fc.baseDir
	}
	return filepath.Join(fc.baseDir, fc.awsContext.GetCacheSubDirectory())
}

// GetCacheDir returns the cache directory (public method for external access)
func (fc *FileCache) GetCacheDir() string {
	return fc.getCacheDir()
}

// GetGateways retrieves cached gateway data
func (fc *FileCache) GetGateways() (*models.GatewaysCache, error) {
	var cache models.GatewaysCache
	if err := fc.getCacheItem("gateways.json", &cache); err != nil {
		return nil, err
	}

	if err := checkTTL(cache.CachedAt, cache.TTL); err != nil {
		logger.GetLogger().Debug("Gateway cache expired")
		return nil, err
	}

	logger.GetLogger().Debug("Cache hit - returning gateways", zap.Int("count", len(cache.Gateways)))
	return &cache, nil
}

// SetGateways stores gateway data in cache
func (fc *FileCache) SetGateways(gateways []models.Gateway, ttl int) error {
	cache := models.GatewaysCache{
		Gateways: gateways,
		CachedAt: time.Now(),
		TTL:      ttl,
	}

	return fc.setCacheItem("gateways.json", cache)
}

// GetTargets retrieves cached target data for a gateway
func (fc *FileCache) GetTargets(gatewayID string) (*models.TargetsCache, error) {
	filename := filepath.Join("gateway_targets", fmt.Sprintf("%s.json", gatewayID))

	var cache models.TargetsCache
	if err := fc.getCacheItem(filename, &cache); err != nil {
		return nil, err
	}

	elapsed := time.Since(cache.CachedAt).Seconds()
	logger.GetLogger().Debug("Target cache TTL check",
		zap.Float64("elapsed", elapsed), zap.Int("ttl", cache.TTL), zap.String("gateway", gatewayID))
	if elapsed > float64(cache.TTL) {
		logger.GetLogger().Debug("Target cache expired", zap.String("gateway", gatewayID))
		return nil, fmt.Errorf("cache expired")
	}

	logger.GetLogger().Debug("Target cache hit", zap.String("gateway", gatewayID))
	return &cache, nil
}

// SetTargets stores target data for a gateway in cache
func (fc *FileCache) SetTargets(gatewayID string, targets []models.Target, ttl int) error {
	cache := models.TargetsCache{
		GatewayID: gatewayID,
		Targets:   targets,
		CachedAt:  time.Now(),
		TTL:       ttl,
	}

	filename := filepath.Join("gateway_targets", fmt.Sprintf("%s.json", gatewayID))
	return fc.setCacheItem(filename, cache)
}

// GetStack retrieves cached CloudFormation stack data
func (fc *FileCache) GetStack(stackName string) (*models.StackCache, error) {
	filename := filepath.Join("stacks", fmt.Sprintf("%s.json", stackName))

	var cache models.StackCache
	if err := fc.getCacheItem(filename, &cache); err != nil {
		return nil, err
	}

	elapsed := time.Since(cache.CachedAt).Seconds()
	logger.GetLogger().Debug("Stack cache TTL check",
		zap.Float64("elapsed", elapsed), zap.Int("ttl", cache.TTL), zap.String("stack", stackName))
	if elapsed > float64(cache.TTL) {
		logger.GetLogger().Debug("Stack cache expired", zap.String("stack", stackName))
		return nil, fmt.Errorf("cache expired")
	}

	logger.GetLogger().Debug("Stack cache hit", zap.String("stack", stackName))
	return &cache, nil
}

// SetStack stores CloudFormation stack data in cache. A nil stack records
// that the lookup found nothing, so repeated misses stay cheap.
func (fc *FileCache) SetStack(stackName string, stack *models.Stack, ttl int) error {
	cache := models.StackCache{
		Stack:    stack,
		CachedAt: time.Now(),
		TTL:      ttl,
	}

	filename := filepath.Join("stacks", fmt.Sprintf("%s.json", stackName))
	return fc.setCacheItem(filename, cache)
}

// ClearCache removes all cached data
func (fc *FileCache) ClearCache() error {
	var errors []error

	logger.GetLogger().Debug("Clearing all cache data", zap.String("baseDir", fc.baseDir))

	entries, err := os.ReadDir(fc.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.GetLogger().Debug("Cache directory does not exist", zap.String("dir", fc.baseDir))
			return nil // Nothing to clear
		}
		logger.GetLogger().Error("Failed to read cache directory", zap.String("dir", fc.baseDir), zap.Error(err))
		return fmt.Errorf("failed to read cache directory %s: %w", fc.baseDir, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(fc.baseDir, entry.Name())
		logger.GetLogger().Debug("Removing cache entry", zap.String("path", entryPath), zap.Bool("isDir", entry.IsDir()))

		if entry.IsDir() {
			if err := os.RemoveAll(entryPath); err != nil {
				logger.GetLogger().Error("Failed to remove cache directory", zap.String("path", entryPath), zap.Error(err))
				errors = append(errors, fmt.Errorf("failed to remove cache directory %s: %w", entryPath, err))
			}
		} else {
			if err := os.Remove(entryPath); err != nil {
				logger.GetLogger().Error("Failed to remove cache file", zap.String("path", entryPath), zap.Error(err))
				errors = append(errors, fmt.Errorf("failed to remove cache file %s: %w", entryPath, err))
			}
		}
	}

	if len(errors) > 0 {
		var errorMessages []string
		for _, err := range errors {
			errorMessages = append(errorMessages, err.Error())
		}
		return fmt.Errorf("cache clear encountered errors: %s", strings.Join(errorMessages, "; "))
	}

	logger.GetLogger().Debug("Cache cleared successfully")
	return nil
}

// DeleteGatewayCache removes cached data for a specific gateway
func (fc *FileCache) DeleteGatewayCache(gatewayID string) error {
	cacheDir := fc.getCacheDir()

	// Delete the gateway's target cache
	targetsPath := filepath.Join(cacheDir, "gateway_targets", fmt.Sprintf("%s.json", gatewayID))
	if err := os.Remove(targetsPath); err != nil && !os.IsNotExist(err) {
		logger.GetLogger().Debug("Failed to remove target cache", zap.String("gateway", gatewayID), zap.Error(err))
		return fmt.Errorf("failed to remove target cache for %s: %w", gatewayID, err)
	}

	// Update gateways.json to remove the specific gateway
	if err := fc.removeGatewayFromGatewaysCache(gatewayID); err != nil {
		logger.GetLogger().Debug("Failed to remove gateway from gateways cache", zap.String("gateway", gatewayID), zap.Error(err))
		// Not critical, the listing cache simply expires on its own
	}

	logger.GetLogger().Debug("Gateway cache deleted successfully", zap.String("gateway", gatewayID))
	return nil
}

// removeGatewayFromGatewaysCache removes a specific gateway from gateways.json cache
func (fc *FileCache) removeGatewayFromGatewaysCache(gatewayID string) error {
	var cache models.GatewaysCache
	if err := fc.getCacheItem("gateways.json", &cache); err != nil {
		if cacheErr, ok := err.(*CacheError); ok && os.IsNotExist(cacheErr.Err) {
			return nil // Cache file doesn't exist, nothing to remove
		}
		return err
	}

	var updatedGateways []models.Gateway
	for _, gateway := range cache.Gateways {
		if gateway.ID != gatewayID {
			updatedGateways = append(updatedGateways, gateway)
		}
	}
	cache.Gateways = updatedGateways

	return fc.setCacheItem("gateways.json", cache)
}

// Generic cache operations implementation

// Get retrieves cache data for a given key
func (fc *FileCache) Get(key string, target interface{}) error {
	return fc.getCacheItem(key, target)
}

// Set stores cache data for a given key
func (fc *FileCache) Set(key string, data interface{}, ttl int) error {
	cacheItem := NewCacheItem(data, ttl)
	return fc.setCacheItem(key, cacheItem)
}

// Delete removes cache data for a given key
func (fc *FileCache) Delete(key string) error {
	cacheDir := fc.getCacheDir()
	cachePath := filepath.Join(cacheDir, key)

	if err := os.Remove(cachePath); err != nil && !os.IsNotExist(err) {
		return &CacheError{Operation: "delete", Key: key, Err: err}
	}

	return nil
}

// Exists checks if cache data exists for a given key
func (fc *FileCache) Exists(key string) bool {
	cacheDir := fc.getCacheDir()
	cachePath := filepath.Join(cacheDir, key)

	if _, err := os.Stat(cachePath); err != nil {
		return false
	}

	return true
}
