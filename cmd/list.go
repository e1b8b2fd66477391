package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/common"
	"github.com/zxkane/aws-skills/internal/utils"
	"github.com/zxkane/aws-skills/internal/validation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List AgentCore gateways",
	Long:  `List the AgentCore gateways in the account and region with their current status.`,
	RunE:  runList,
}

var (
	listFormat       string
	listNameFilter   string
	listStatusFilter string
	listSort         string
	listShowDetails  bool
	listRefreshCache bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, csv)")
	listCmd.Flags().StringVar(&listNameFilter, "name-filter", "", "Filter by gateway name or ID substring")
	listCmd.Flags().StringVar(&listStatusFilter, "status-filter", "", "Filter by gateway status (ready, failed, in-progress, ...)")
	listCmd.Flags().StringVar(&listSort, "sort", "name", "Sort order (name, updated)")
	listCmd.Flags().BoolVar(&listShowDetails, "show-details", false, "Show detailed information (Gateway ID, Protocol, Authorizer)")
	listCmd.Flags().BoolVar(&listRefreshCache, "refresh-cache", false, "Refresh cached data before listing")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	setup, err := common.NewCommonSetup(ctx)
	if err != nil {
		return err
	}

	if listRefreshCache {
		if err := setup.FileCache.ClearCache(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	gateways, err := setup.Manager.GetGateways(ctx)
	if err != nil {
		return fmt.Errorf("failed to list gateways: %w", err)
	}

	if listNameFilter != "" {
		gateways = utils.FilterGatewaysByName(gateways, listNameFilter)
	}
	if listStatusFilter != "" {
		gateways = utils.FilterGatewaysByStatus(gateways, listStatusFilter)
	}

	validator := validation.NewValidator()
	if err := validator.ValidateStringInSlice(listSort, []string{"name", "updated"}, "sort"); err != nil {
		return err
	}
	switch listSort {
	case "updated":
		utils.SortGatewaysByUpdated(gateways)
	default:
		utils.SortGatewaysByName(gateways)
	}

	// Output format comes from config, overridable via flag
	format := listFormat
	if format == "table" && setup.Config.Output.Format != "" {
		format = setup.Config.Output.Format
	}
	if err := validator.ValidateOutputFormat(format); err != nil {
		return err
	}

	cacheUsage := setup.Manager.GetCacheUsage()
	fmt.Printf("%s: %s\n", utils.Info("Cache Directory"), utils.Highlight(setup.Config.Cache.Directory))
	fmt.Printf("%s: Gateways=%s\n",
		utils.Info("Cache Status"),
		utils.GetCacheStatusColorText(cacheUsage.GatewaysFromCache))
	fmt.Println()

	formatter := utils.NewFormatterWithOptions(format, listShowDetails)
	if err := formatter.FormatGateways(gateways, os.Stdout); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return nil
}
