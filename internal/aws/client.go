package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client represents AWS service clients
type Client struct {
	AgentCore      *bedrockagentcorecontrol.Client
	CloudFormation *cloudformation.Client
	IAM            *iam.Client
	STS            *sts.Client
	Config         awssdk.Config
	Region         string

	accountID string
}

// NewClient creates a new AWS client with the specified region and profile
// If region or profile are empty strings, the current environment settings will be used
func NewClient(ctx context.Context, region, profile string) (*Client, error) {
	var opts []func(*config.LoadOptions) error

	// Only set region if explicitly provided (not empty string)
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	// Only set profile if explicitly provided (not empty string)
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	// LoadDefaultConfig will use environment variables, shared config files,
	// and other default sources when no explicit options are provided
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		AgentCore:      bedrockagentcorecontrol.NewFromConfig(cfg),
		CloudFormation: cloudformation.NewFromConfig(cfg),
		IAM:            iam.NewFromConfig(cfg),
		STS:            sts.NewFromConfig(cfg),
		Config:         cfg,
		Region:         cfg.Region,
	}, nil
}
