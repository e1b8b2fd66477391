package common

import (
	"context"
	"fmt"

	"github.com/zxkane/aws-skills/internal/aws"
	"github.com/zxkane/aws-skills/internal/cache"
	"github.com/zxkane/aws-skills/internal/config"
	"github.com/zxkane/aws-skills/pkg/gateway"
)

// CommonSetup contains the components shared by the AWS-facing commands
type CommonSetup struct {
	Config    *config.Config
	AWSClient *aws.Client
	FileCache *cache.FileCache
	Manager   *gateway.Manager
}

// NewCommonSetup initializes the components shared by the deploy, validate,
// list, and status commands
func NewCommonSetup(ctx context.Context) (*CommonSetup, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	awsClient, err := aws.NewClient(ctx, cfg.AWS.Region, cfg.AWS.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}

	// Cache entries are isolated per AWS region/profile context
	awsContext := cache.NewAWSContext(cfg.AWS.Region, cfg.AWS.Profile)
	fileCache := cache.NewFileCacheWithContext(cfg.Cache.Directory, awsContext)

	manager := gateway.NewManager(awsClient, fileCache, cfg)

	return &CommonSetup{
		Config:    cfg,
		AWSClient: awsClient,
		FileCache: fileCache,
		Manager:   manager,
	}, nil
}
