package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/checks"
	"github.com/zxkane/aws-skills/internal/common"
	"github.com/zxkane/aws-skills/internal/errors"
	"github.com/zxkane/aws-skills/internal/models"
	"github.com/zxkane/aws-skills/internal/utils"
	"github.com/zxkane/aws-skills/internal/validation"
)

var validateDeploymentCmd = &cobra.Command{
	Use:   "validate-deployment <gateway-identifier>",
	Short: "Verify a deployed AgentCore gateway",
	Long: `Run a sequence of checks against a deployed AgentCore gateway: gateway
existence, attached targets, per-target detail, IAM role policies, and the
CloudFormation stack deployed alongside it.

Only a missing gateway fails the run. Everything else is reported as a
warning or an informational note, and the command exits 0.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateDeployment,
}

var (
	validateStackName    string
	validateFormat       string
	validateRefreshCache bool
)

func init() {
	rootCmd.AddCommand(validateDeploymentCmd)

	validateDeploymentCmd.Flags().StringVar(&validateStackName, "stack-name", "", "CloudFormation stack name (default: configured prefix + gateway name)")
	validateDeploymentCmd.Flags().StringVarP(&validateFormat, "format", "f", "table", "Output format (table, json)")
	validateDeploymentCmd.Flags().BoolVar(&validateRefreshCache, "refresh-cache", false, "Refresh cached gateway data before validating")
}

func runValidateDeployment(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	identifier := args[0]

	validator := validation.NewValidator()
	if err := validator.ValidateGatewayIdentifier(identifier); err != nil {
		return err
	}
	if validateStackName != "" {
		if err := validator.ValidateStackName(validateStackName); err != nil {
			return err
		}
	}
	if err := validator.ValidateStringInSlice(validateFormat, []string{"table", "json"}, "format"); err != nil {
		return err
	}

	setup, err := common.NewCommonSetup(ctx)
	if err != nil {
		return err
	}

	if validateRefreshCache {
		if err := setup.FileCache.DeleteGatewayCache(identifier); err != nil {
			fmt.Printf("%s Failed to refresh gateway cache: %v\n", utils.Warning("WARNING"), err)
		}
	}

	// In JSON mode the live check lines are suppressed and the report is
	// emitted once at the end
	out := io.Writer(os.Stdout)
	jsonOutput := validateFormat == "json"
	if jsonOutput {
		out = io.Discard
	}

	report := models.NewValidationReport(identifier)
	report.Region = setup.AWSClient.Region
	if accountID, err := setup.AWSClient.ResolveAccountID(ctx); err == nil {
		report.AccountID = accountID
	}

	fmt.Fprintf(out, "%s %s\n\n", utils.Info("Validating gateway deployment:"), utils.Highlight(identifier))

	deployment := checks.NewDeploymentChecks(setup.Manager, setup.AWSClient, identifier, validateStackName)
	runner := checks.NewRunner(out, report)
	runner.Execute(ctx, deployment.Checks())
	runner.PrintSummary()

	if jsonOutput {
		if err := utils.NewFormatter("json").FormatReport(report, os.Stdout); err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
	}

	if report.HasFailure() {
		return errors.NewAWSError(fmt.Sprintf("Gateway not found: %s", identifier), nil)
	}

	return nil
}
