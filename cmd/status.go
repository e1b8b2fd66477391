package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/common"
	"github.com/zxkane/aws-skills/internal/errors"
	"github.com/zxkane/aws-skills/internal/models"
	"github.com/zxkane/aws-skills/internal/utils"
	"github.com/zxkane/aws-skills/internal/validation"
)

var statusCmd = &cobra.Command{
	Use:   "status <gateway-identifier>",
	Short: "Show gateway status and its targets",
	Long: `Show the live status of an AgentCore gateway and the targets attached to
it. The gateway is always read from the API; target details come from the
cache when fresh.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

var (
	statusFormat       string
	statusRefreshCache bool
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "table", "Output format (table, json)")
	statusCmd.Flags().BoolVar(&statusRefreshCache, "refresh-cache", false, "Refresh cached data for this gateway first")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	identifier := args[0]

	validator := validation.NewValidator()
	if err := validator.ValidateGatewayIdentifier(identifier); err != nil {
		return err
	}
	if err := validator.ValidateStringInSlice(statusFormat, []string{"table", "json"}, "format"); err != nil {
		return err
	}

	setup, err := common.NewCommonSetup(ctx)
	if err != nil {
		return err
	}

	if statusRefreshCache {
		fmt.Printf("%s Refreshing cache for gateway: %s\n", utils.Info("INFO"), utils.Highlight(identifier))
		if err := setup.FileCache.DeleteGatewayCache(identifier); err != nil {
			fmt.Printf("%s Failed to refresh gateway cache: %v\n", utils.Warning("WARNING"), err)
		}
	}

	gw, err := setup.Manager.GetGateway(ctx, identifier)
	if err != nil {
		return fmt.Errorf("failed to get gateway: %w", err)
	}
	if gw == nil {
		return errors.NewAWSError(fmt.Sprintf("Gateway not found: %s", identifier), nil)
	}

	showProgress := statusFormat != "json"
	targets, err := setup.Manager.GetTargetDetailsWithProgress(ctx, gw.ID, showProgress)
	if err != nil {
		return fmt.Errorf("failed to get targets: %w", err)
	}

	if statusFormat == "json" {
		payload := struct {
			Gateway *models.Gateway `json:"gateway"`
			Targets []models.Target `json:"targets"`
		}{gw, targets}
		return utils.NewFormatter("json").FormatJSON(payload, os.Stdout)
	}

	printGatewayStatus(gw)

	fmt.Printf("\n%s %d\n", utils.Info("Targets:"), len(targets))
	if len(targets) > 0 {
		formatter := utils.NewFormatterWithOptions("table", true)
		if err := formatter.FormatTargets(targets, os.Stdout); err != nil {
			return fmt.Errorf("failed to format targets: %w", err)
		}
	}

	return nil
}

func printGatewayStatus(gw *models.Gateway) {
	fmt.Printf("%s %s\n", utils.Info("Gateway Status:"), utils.Highlight(gw.Name))
	fmt.Printf("  ID: %s\n", gw.ID)
	fmt.Printf("  Status: %s\n", formatGatewayStatus(gw.Status))
	if gw.URL != "" {
		fmt.Printf("  Endpoint: %s\n", gw.URL)
	}
	if gw.ProtocolType != "" {
		fmt.Printf("  Protocol: %s\n", gw.ProtocolType)
	}
	if gw.AuthorizerType != "" {
		fmt.Printf("  Authorizer: %s\n", gw.AuthorizerType)
	}
	if gw.RoleArn != "" {
		fmt.Printf("  Execution role: %s\n", gw.RoleArn)
	}
	if !gw.CreatedAt.IsZero() {
		fmt.Printf("  Created: %s\n", gw.CreatedAt.Local().Format("2006-01-02 15:04:05-0700"))
	}
	if !gw.GetUpdated().IsZero() {
		fmt.Printf("  Last Updated: %s\n", gw.GetUpdated().Local().Format("2006-01-02 15:04:05-0700"))
	}
	for _, reason := range gw.StatusReasons {
		fmt.Printf("  Status reason: %s\n", reason)
	}
}

// formatGatewayStatus colors a gateway status by severity
func formatGatewayStatus(status string) string {
	switch status {
	case models.GatewayStatusReady:
		return utils.Success(status)
	case models.GatewayStatusFailed:
		return utils.Error(status)
	case models.GatewayStatusCreating, models.GatewayStatusUpdating, models.GatewayStatusDeleting:
		return utils.Warning(status)
	default:
		return status
	}
}
