package config

import (
	"os"
	"path/filepath"

	"github.com/zxkane/aws-skills/internal/logger"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config represents the application configuration
type Config struct {
	Cache     CacheConfig     `yaml:"cache"`
	AWS       AWSConfig       `yaml:"aws"`
	Output    OutputConfig    `yaml:"output"`
	Deploy    DeployConfig    `yaml:"deploy"`
	Stack     StackConfig     `yaml:"stack"`
	Skills    SkillsConfig    `yaml:"skills"`
	Execution ExecutionConfig `yaml:"execution"`
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Directory   string `yaml:"directory"`
	GatewaysTTL int    `yaml:"gateways_ttl"`
	TargetsTTL  int    `yaml:"targets_ttl"`
	StacksTTL   int    `yaml:"stacks_ttl"`
}

// AWSConfig represents AWS configuration
type AWSConfig struct {
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Format string `yaml:"format"` // table, json, csv
	Color  bool   `yaml:"color"`
}

// DeployConfig represents deployment command configuration
type DeployConfig struct {
	BuildCommand  string `yaml:"build_command"`
	DeployCommand string `yaml:"deploy_command"`
}

// StackConfig represents CDK stack analysis configuration
type StackConfig struct {
	SynthCommand string   `yaml:"synth_command"`
	SourceDirs   []string `yaml:"source_dirs"`
	OutputDir    string   `yaml:"output_dir"`
	NamePrefix   string   `yaml:"name_prefix"` // Prefix used to derive stack names from gateway names
}

// SkillsConfig represents skill document configuration
type SkillsConfig struct {
	Directory string `yaml:"directory"`
}

// ExecutionConfig represents execution configuration
type ExecutionConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"` // Maximum number of concurrent API calls
	Timeout       int `yaml:"timeout"`        // Timeout in seconds for external commands
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	// Set default values (these will be used if not specified in config file)
	viper.SetDefault("cache.directory", getDefaultCacheDir())
	viper.SetDefault("cache.gateways_ttl", 1800)
	viper.SetDefault("cache.targets_ttl", 900)
	viper.SetDefault("cache.stacks_ttl", 300)
	// AWS defaults are empty strings so the ambient environment is used
	viper.SetDefault("aws.region", "")
	viper.SetDefault("aws.profile", "")
	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.color", true)
	viper.SetDefault("deploy.build_command", "npm run build")
	viper.SetDefault("deploy.deploy_command", "npx cdk deploy --require-approval never")
	viper.SetDefault("stack.synth_command", "npx cdk synth --quiet")
	viper.SetDefault("stack.source_dirs", []string{"lib", "bin", "src"})
	viper.SetDefault("stack.output_dir", "cdk.out")
	viper.SetDefault("stack.name_prefix", "agentcore-gateway-")
	viper.SetDefault("skills.directory", "skills")
	viper.SetDefault("execution.max_concurrent", 5)
	viper.SetDefault("execution.timeout", 600)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Manual override for cache TTL values if viper.Unmarshal didn't work properly
	if config.Cache.GatewaysTTL == 0 {
		config.Cache.GatewaysTTL = viper.GetInt("cache.gateways_ttl")
	}
	if config.Cache.TargetsTTL == 0 {
		config.Cache.TargetsTTL = viper.GetInt("cache.targets_ttl")
	}
	if config.Cache.StacksTTL == 0 {
		config.Cache.StacksTTL = viper.GetInt("cache.stacks_ttl")
	}

	// Manual override for execution values if viper.Unmarshal didn't work properly
	if config.Execution.MaxConcurrent == 0 {
		config.Execution.MaxConcurrent = viper.GetInt("execution.max_concurrent")
	}
	if config.Execution.Timeout == 0 {
		config.Execution.Timeout = viper.GetInt("execution.timeout")
	}

	if config.Deploy.BuildCommand == "" {
		config.Deploy.BuildCommand = viper.GetString("deploy.build_command")
	}
	if config.Deploy.DeployCommand == "" {
		config.Deploy.DeployCommand = viper.GetString("deploy.deploy_command")
	}
	if config.Stack.SynthCommand == "" {
		config.Stack.SynthCommand = viper.GetString("stack.synth_command")
	}
	if len(config.Stack.SourceDirs) == 0 {
		config.Stack.SourceDirs = viper.GetStringSlice("stack.source_dirs")
	}
	if config.Stack.OutputDir == "" {
		config.Stack.OutputDir = viper.GetString("stack.output_dir")
	}
	if config.Stack.NamePrefix == "" {
		config.Stack.NamePrefix = viper.GetString("stack.name_prefix")
	}
	if config.Skills.Directory == "" {
		config.Skills.Directory = viper.GetString("skills.directory")
	}

	// Expand tilde in cache directory path
	config.Cache.Directory = expandPath(config.Cache.Directory)

	logger.GetLogger().Debug("Configuration loaded",
		zap.String("cache_directory", config.Cache.Directory),
		zap.Int("gateways_ttl", config.Cache.GatewaysTTL),
		zap.Int("targets_ttl", config.Cache.TargetsTTL),
		zap.Int("stacks_ttl", config.Cache.StacksTTL),
		zap.String("skills_directory", config.Skills.Directory),
		zap.Int("execution_max_concurrent", config.Execution.MaxConcurrent),
		zap.Int("execution_timeout", config.Execution.Timeout))

	return &config, nil
}

// getDefaultCacheDir returns the default cache directory
func getDefaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".aws-skills/cache"
	}
	return filepath.Join(homeDir, ".aws-skills", "cache")
}

// expandPath expands tilde (~) in file paths
func expandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
