package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/config"
	"github.com/zxkane/aws-skills/internal/stack"
	"github.com/zxkane/aws-skills/internal/utils"
)

var validateStackCmd = &cobra.Command{
	Use:   "validate-stack [project-dir]",
	Short: "Synthesize and inspect a CDK gateway stack",
	Long: `Synthesize the CDK application in the project directory, scan its sources
for common anti-patterns, and report the resource counts of every generated
template.

Anti-pattern matches are warnings and never change the exit code. The
command fails only when the synthesis tool is missing or synthesis itself
fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateStack,
}

func init() {
	rootCmd.AddCommand(validateStackCmd)
}

func runValidateStack(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	analyzer := stack.NewAnalyzer(projectDir, cfg.Stack, time.Duration(cfg.Execution.Timeout)*time.Second)

	if err := analyzer.CheckTools(); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", utils.Info("Synthesizing:"), utils.Highlight(projectDir))
	synthResult, err := analyzer.Synth(ctx)
	if err != nil {
		return err
	}
	utils.SuccessPrintf("Synthesis completed in %s (%d templates)",
		synthResult.Duration.Round(time.Millisecond), len(synthResult.Stacks))

	fmt.Println()
	hits, err := analyzer.ScanSources()
	if err != nil {
		return fmt.Errorf("failed to scan sources: %w", err)
	}
	printPatternHits(hits)

	summaries, err := analyzer.CountResources()
	if err != nil {
		return fmt.Errorf("failed to count resources: %w", err)
	}
	printResourceCounts(summaries)

	// Warnings never change the exit code, only a failed synthesis does
	return nil
}

func printPatternHits(hits []stack.PatternHit) {
	if len(hits) == 0 {
		utils.SuccessPrintf("No anti-patterns detected")
		return
	}

	fmt.Printf("%s %d potential issue(s) found:\n", utils.Warning("WARNING:"), len(hits))
	for _, hit := range hits {
		line := fmt.Sprintf("%s %s:%d %s", utils.WarnMark(), hit.File, hit.Line, hit.Rule)
		if rule, ok := stack.RuleByName(hit.Rule); ok {
			line += fmt.Sprintf(" (%s)", rule.Description)
		}
		fmt.Printf("  %s\n", line)
	}
}

func printResourceCounts(summaries []stack.TemplateSummary) {
	for _, summary := range summaries {
		fmt.Printf("\n%s %s (%d resources)\n", utils.Info("Template:"), utils.Highlight(summary.Name), summary.Total)

		types := make([]string, 0, len(summary.ByType))
		for resourceType := range summary.ByType {
			types = append(types, resourceType)
		}
		sort.Strings(types)

		for _, resourceType := range types {
			fmt.Printf("  %4d  %s\n", summary.ByType[resourceType], resourceType)
		}
	}
}
