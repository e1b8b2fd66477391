package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/aws"
	"github.com/zxkane/aws-skills/internal/config"
	"github.com/zxkane/aws-skills/internal/envfile"
	"github.com/zxkane/aws-skills/internal/errors"
	"github.com/zxkane/aws-skills/internal/logger"
	"github.com/zxkane/aws-skills/internal/utils"
	"github.com/zxkane/aws-skills/internal/validation"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <env-file>",
	Short: "Build and deploy an AgentCore gateway stack",
	Long: `Build and deploy an AgentCore gateway stack using the variables from an
environment file. The file must define GATEWAY_IDENTIFIER,
CREDENTIAL_PROVIDER_NAME, and AWS_REGION. The build and deploy commands
default to "npm run build" and "npx cdk deploy --require-approval never"
and can be overridden via config or the BUILD_COMMAND / DEPLOY_COMMAND
variables in the environment file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

// requiredDeployVars must be present and non-empty in the environment file
// before any AWS call is made
var requiredDeployVars = []string{
	"GATEWAY_IDENTIFIER",
	"CREDENTIAL_PROVIDER_NAME",
	"AWS_REGION",
}

func init() {
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	envFile, err := envfile.Load(args[0])
	if err != nil {
		return err
	}

	if missing := envFile.Missing(requiredDeployVars); len(missing) > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("missing required variables in %s: %s", args[0], strings.Join(missing, ", ")), nil)
	}

	validator := validation.NewValidator()
	if err := validator.ValidateGatewayIdentifier(envFile.Get("GATEWAY_IDENTIFIER")); err != nil {
		return err
	}
	if err := validator.ValidateRegion(envFile.Get("AWS_REGION")); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The environment file's region governs the deployment, matching the
	// variables exported to the child processes
	region := envFile.Get("AWS_REGION")
	awsClient, err := aws.NewClient(ctx, region, cfg.AWS.Profile)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	accountID, err := awsClient.ResolveAccountID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS account: %w", err)
	}

	fmt.Printf("%s %s\n", utils.Info("Gateway:"), utils.Highlight(envFile.Get("GATEWAY_IDENTIFIER")))
	fmt.Printf("%s %s\n", utils.Info("Credential provider:"), utils.Highlight(envFile.Get("CREDENTIAL_PROVIDER_NAME")))
	fmt.Printf("%s %s (%s)\n", utils.Info("Account:"), utils.Highlight(accountID), region)

	env := envFile.Environ(os.Environ())
	env = append(env,
		"CDK_DEPLOY_ACCOUNT="+accountID,
		"CDK_DEPLOY_REGION="+region,
	)

	buildCommand := cfg.Deploy.BuildCommand
	if v := envFile.Get("BUILD_COMMAND"); v != "" {
		buildCommand = v
	}
	deployCommand := cfg.Deploy.DeployCommand
	if v := envFile.Get("DEPLOY_COMMAND"); v != "" {
		deployCommand = v
	}

	steps := []struct {
		name    string
		command string
	}{
		{"build", buildCommand},
		{"deploy", deployCommand},
	}

	for _, step := range steps {
		if err := runDeployStep(ctx, step.name, step.command, env, cfg.Execution.Timeout); err != nil {
			return err
		}
	}

	utils.SuccessPrintf("Deployment completed for gateway %s", envFile.Get("GATEWAY_IDENTIFIER"))
	return nil
}

// runDeployStep runs one deployment step with the child process output
// streamed through the logger
func runDeployStep(ctx context.Context, step, command string, env []string, timeoutSeconds int) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errors.NewConfigError(fmt.Sprintf("%s command is not configured", step), nil)
	}

	fmt.Printf("%s %s\n", utils.Info("Running:"), command)

	stepCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	c := logger.Command(stepCtx, fields[0], fields[1:]...)
	c.Env = env
	if err := c.Run(); err != nil {
		return errors.NewExecError(fmt.Sprintf("%s step failed", step), err).
			WithContext("command", command)
	}

	return nil
}
