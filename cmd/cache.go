package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/cache"
	"github.com/zxkane/aws-skills/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache management commands",
	Long:  `Manage the cached AgentCore control-plane responses.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all cached data",
	Long:  `Clear all cached data including gateways, gateway targets, and stack descriptions.`,
	RunE:  runCacheClear,
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache status",
	Long:  `Show the current cache status for all data types.`,
	RunE:  runCacheStatus,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Cache entries are isolated per AWS region/profile context
	awsContext := cache.NewAWSContext(cfg.AWS.Region, cfg.AWS.Profile)
	fileCache := cache.NewFileCacheWithContext(cfg.Cache.Directory, awsContext)

	if err := fileCache.ClearCache(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Printf("Cache cleared successfully from directory: %s\n", cfg.Cache.Directory)
	return nil
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	awsContext := cache.NewAWSContext(cfg.AWS.Region, cfg.AWS.Profile)
	fileCache := cache.NewFileCacheWithContext(cfg.Cache.Directory, awsContext)

	return showCacheStatus(fileCache, cfg, awsContext)
}

func showCacheStatus(fileCache *cache.FileCache, cfg *config.Config, awsContext *cache.AWSContext) error {
	fmt.Printf("=== Cache Status ===\n\n")

	// Cache configuration
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Base Directory: %s\n", cfg.Cache.Directory)
	fmt.Printf("  AWS Region: %s\n", cfg.AWS.Region)
	fmt.Printf("  AWS Profile: %s\n", cfg.AWS.Profile)
	fmt.Printf("  Cache Subdirectory: %s\n", awsContext.GetCacheSubDirectory())
	fmt.Printf("  TTL Settings:\n")
	fmt.Printf("    Gateways: %d seconds\n", cfg.Cache.GatewaysTTL)
	fmt.Printf("    Targets: %d seconds\n", cfg.Cache.TargetsTTL)
	fmt.Printf("    Stacks: %d seconds\n", cfg.Cache.StacksTTL)
	fmt.Println()

	// Cache status
	fmt.Printf("Cache Data Status:\n")

	if gatewaysCache, err := fileCache.GetGateways(); err == nil {
		elapsed := time.Since(gatewaysCache.CachedAt)
		remaining := time.Duration(gatewaysCache.TTL)*time.Second - elapsed
		status := "Valid"
		if remaining <= 0 {
			status = "Expired"
		}
		fmt.Printf("  ✓ Gateways: %s (%d items, cached %s ago, %s)\n",
			status, len(gatewaysCache.Gateways), formatDuration(elapsed), formatRemaining(remaining))
	} else {
		fmt.Printf("  ✗ Gateways: Not available\n")
	}

	targetCount, stackCount := countGatewayCaches(fileCache)
	if targetCount > 0 {
		fmt.Printf("  ✓ Targets: %d gateway(s) cached\n", targetCount)
	} else {
		fmt.Printf("  ✗ Targets: No cached gateway targets\n")
	}

	if stackCount > 0 {
		fmt.Printf("  ✓ Stacks: %d stack(s) cached\n", stackCount)
	} else {
		fmt.Printf("  ✗ Stacks: No cached stack descriptions\n")
	}

	// Cache size information
	fmt.Println()
	fmt.Printf("Cache Size Information:\n")
	totalSize, err := calculateCacheSize(cfg.Cache.Directory, awsContext)
	if err != nil {
		fmt.Printf("  Unable to calculate cache size: %v\n", err)
	} else {
		fmt.Printf("  Total Size: %s\n", formatBytes(totalSize))
	}

	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else {
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}

func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	return fmt.Sprintf("expires in %s", formatDuration(d))
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func countGatewayCaches(fileCache *cache.FileCache) (int, int) {
	cacheDir := fileCache.GetCacheDir()

	targetCount := countFilesInDir(filepath.Join(cacheDir, "gateway_targets"))
	stackCount := countFilesInDir(filepath.Join(cacheDir, "stacks"))

	return targetCount, stackCount
}

func countFilesInDir(dirPath string) int {
	if dirPath == "" {
		return 0
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			count++
		}
	}

	return count
}

func calculateCacheSize(baseDir string, awsContext *cache.AWSContext) (int64, error) {
	cacheDir := filepath.Join(baseDir, awsContext.GetCacheSubDirectory())

	var totalSize int64
	err := filepath.Walk(cacheDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files that can't be accessed
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil && !os.IsNotExist(err) {
		return 0, err
	}

	return totalSize, nil
}
