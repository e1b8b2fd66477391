package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxkane/aws-skills/internal/config"
	"github.com/zxkane/aws-skills/internal/errors"
	"github.com/zxkane/aws-skills/internal/models"
	"github.com/zxkane/aws-skills/internal/skills"
	"github.com/zxkane/aws-skills/internal/utils"
	"github.com/zxkane/aws-skills/internal/validation"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Skill document management commands",
	Long:  `Discover, list, and lint the SKILL.md documents of the skill corpus.`,
}

var skillsLintCmd = &cobra.Command{
	Use:   "lint [dir]",
	Short: "Lint SKILL.md documents",
	Long: `Validate every SKILL.md under the directory: the frontmatter must parse,
the name must be kebab-case and match the containing directory, and the
description must be present.

Warnings do not affect the exit code; the command fails only when errors
were found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSkillsLint,
}

var skillsListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List discovered skill documents",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSkillsList,
}

var skillsListFormat string

func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.AddCommand(skillsLintCmd)
	skillsCmd.AddCommand(skillsListCmd)

	skillsListCmd.Flags().StringVarP(&skillsListFormat, "format", "f", "table", "Output format (table, json, csv)")
}

// resolveSkillsRoot picks the corpus root: the positional argument, then the
// configured directory when it exists, then the current directory
func resolveSkillsRoot(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Skills.Directory != "" {
		if _, err := os.Stat(cfg.Skills.Directory); err == nil {
			return cfg.Skills.Directory
		}
	}
	return "."
}

func runSkillsLint(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	root := resolveSkillsRoot(args, cfg)
	loaded, issues, err := skills.NewScanner(root).Load()
	if err != nil {
		return err
	}

	issues = append(issues, skills.NewLinter().LintAll(loaded)...)

	var errorCount, warningCount int
	for _, issue := range issues {
		mark := utils.WarnMark()
		if issue.Severity == models.LintSeverityError {
			mark = utils.FailMark()
			errorCount++
		} else {
			warningCount++
		}
		fmt.Printf("%s %s: %s\n", mark, issue.Path, issue.Message)
	}

	fmt.Printf("\n%d skill(s), %d error(s), %d warning(s)\n", len(loaded), errorCount, warningCount)

	if skills.HasErrors(issues) {
		return errors.NewValidationError(fmt.Sprintf("lint failed with %d error(s)", errorCount), nil)
	}

	utils.SuccessPrintf("Skill corpus passed lint")
	return nil
}

func runSkillsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format := skillsListFormat
	if format == "table" && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	if err := validation.NewValidator().ValidateOutputFormat(format); err != nil {
		return err
	}

	root := resolveSkillsRoot(args, cfg)
	loaded, issues, err := skills.NewScanner(root).Load()
	if err != nil {
		return err
	}

	for _, issue := range issues {
		fmt.Printf("%s %s: %s\n", utils.WarnMark(), issue.Path, issue.Message)
	}

	formatter := utils.NewFormatter(format)
	if err := formatter.FormatSkills(loaded, os.Stdout); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return nil
}
