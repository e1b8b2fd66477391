// Package stack runs CDK synthesis for a gateway infrastructure project and
// performs static checks over its sources and synthesized templates.
package stack

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zxkane/aws-skills/internal/config"
	"github.com/zxkane/aws-skills/internal/errors"
	"github.com/zxkane/aws-skills/internal/logger"
)

// sourceExtensions are the file types included in the anti-pattern scan
var sourceExtensions = map[string]bool{
	".ts": true,
	".js": true,
	".py": true,
}

const templateSuffix = ".template.json"

// Rule is a named anti-pattern matched against source lines
type Rule struct {
	Name        string
	Description string
	Pattern     *regexp.Regexp
}

// AntiPatternRules are the conventions checked before deploying gateway stacks.
// Matches are advisory, they never fail the validation.
var AntiPatternRules = []Rule{
	{
		Name:        "hardcoded-resource-name",
		Description: "physical resource names block parallel deployments and rename-on-replace",
		Pattern:     regexp.MustCompile(`(bucketName|tableName|functionName|roleName|queueName)\s*:\s*['"` + "`" + `]`),
	},
	{
		Name:        "wildcard-iam-action",
		Description: "IAM policies should scope actions instead of granting *",
		Pattern:     regexp.MustCompile(`actions\s*:\s*\[\s*['"]\*['"]|"Action"\s*:\s*"\*"`),
	},
	{
		Name:        "wildcard-iam-resource",
		Description: "IAM policies should scope resources instead of granting *",
		Pattern:     regexp.MustCompile(`resources\s*:\s*\[\s*['"]\*['"]|"Resource"\s*:\s*"\*"`),
	},
	{
		Name:        "l1-construct",
		Description: "prefer L2 constructs over raw Cfn resources",
		Pattern:     regexp.MustCompile(`\bnew\s+Cfn[A-Z]`),
	},
}

// PatternHit represents a single anti-pattern occurrence in a source file
type PatternHit struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Rule string `json:"rule"`
	Text string `json:"text"`
}

// SynthResult contains the result of synthesis
type SynthResult struct {
	TemplateDir string        `json:"template_dir"`
	Stacks      []string      `json:"stacks"`
	Duration    time.Duration `json:"duration"`
}

// TemplateSummary holds per-template resource counts
type TemplateSummary struct {
	Name      string         `json:"name"`
	StackName string         `json:"stack_name"`
	Total     int            `json:"total"`
	ByType    map[string]int `json:"by_type"`
}

// cfnTemplate is the synthesized CloudFormation template, reduced to the
// fields the resource count needs
type cfnTemplate struct {
	Resources map[string]cfnResource `json:"Resources"`
}

type cfnResource struct {
	Type string `json:"Type"`
}

// Analyzer validates a CDK project directory
type Analyzer struct {
	projectDir string
	cfg        config.StackConfig
	timeout    time.Duration
}

// NewAnalyzer creates an analyzer for the given project directory
func NewAnalyzer(projectDir string, cfg config.StackConfig, timeout time.Duration) *Analyzer {
	return &Analyzer{
		projectDir: projectDir,
		cfg:        cfg,
		timeout:    timeout,
	}
}

// CheckTools verifies the synthesis command's executable is installed
func (a *Analyzer) CheckTools() error {
	fields := strings.Fields(a.cfg.SynthCommand)
	if len(fields) == 0 {
		return errors.NewConfigError("synth command is not configured", nil)
	}

	tool := fields[0]
	if _, err := exec.LookPath(tool); err != nil {
		return errors.NewExecError(fmt.Sprintf("required tool not found: %s", tool), err)
	}

	return nil
}

// Synth runs the CDK synthesis command in the project directory
func (a *Analyzer) Synth(ctx context.Context) (*SynthResult, error) {
	fields := strings.Fields(a.cfg.SynthCommand)
	if len(fields) == 0 {
		return nil, errors.NewConfigError("synth command is not configured", nil)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	logger.GetLogger().Info("Running synthesis",
		zap.String("command", a.cfg.SynthCommand),
		zap.String("dir", a.projectDir))

	start := time.Now()
	cmd := logger.Command(ctx, fields[0], fields[1:]...)
	cmd.Dir = a.projectDir
	if err := cmd.Run(); err != nil {
		return nil, errors.NewExecError("synthesis failed", err).
			WithContext("command", a.cfg.SynthCommand)
	}

	result := &SynthResult{
		TemplateDir: filepath.Join(a.projectDir, a.cfg.OutputDir),
		Duration:    time.Since(start),
	}

	stacks, err := a.listTemplates()
	if err != nil {
		return nil, err
	}
	for _, template := range stacks {
		result.Stacks = append(result.Stacks, strings.TrimSuffix(template, templateSuffix))
	}

	return result, nil
}

// listTemplates returns the template file names in the synthesis output directory
func (a *Analyzer) listTemplates() ([]string, error) {
	outputDir := filepath.Join(a.projectDir, a.cfg.OutputDir)

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, errors.NewExecError(
			fmt.Sprintf("synthesis output directory not found: %s", outputDir), err)
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateSuffix) {
			continue
		}
		templates = append(templates, entry.Name())
	}

	sort.Strings(templates)
	return templates, nil
}

// ScanSources checks the project's source directories for anti-patterns.
// Missing source directories are skipped, matching projects that only use
// a subset of the conventional layout.
func (a *Analyzer) ScanSources() ([]PatternHit, error) {
	var hits []PatternHit

	for _, dir := range a.cfg.SourceDirs {
		sourceDir := filepath.Join(a.projectDir, dir)
		if _, err := os.Stat(sourceDir); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if strings.HasPrefix(name, ".") || name == "node_modules" || name == a.cfg.OutputDir {
					return filepath.SkipDir
				}
				return nil
			}
			if !sourceExtensions[filepath.Ext(path)] || strings.HasSuffix(path, ".d.ts") {
				return nil
			}

			fileHits, err := scanFile(a.projectDir, path)
			if err != nil {
				return err
			}
			hits = append(hits, fileHits...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", sourceDir, err)
		}
	}

	return hits, nil
}

// scanFile applies every anti-pattern rule to each line of one source file
func scanFile(projectDir, path string) ([]PatternHit, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	rel, err := filepath.Rel(projectDir, path)
	if err != nil {
		rel = path
	}

	var hits []PatternHit
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		for _, rule := range AntiPatternRules {
			if rule.Pattern.MatchString(line) {
				hits = append(hits, PatternHit{
					File: rel,
					Line: lineNum,
					Rule: rule.Name,
					Text: strings.TrimSpace(line),
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return hits, nil
}

// CountResources summarizes the resources in each synthesized template
func (a *Analyzer) CountResources() ([]TemplateSummary, error) {
	templates, err := a.listTemplates()
	if err != nil {
		return nil, err
	}

	outputDir := filepath.Join(a.projectDir, a.cfg.OutputDir)
	var summaries []TemplateSummary

	for _, name := range templates {
		data, err := os.ReadFile(filepath.Join(outputDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}

		var template cfnTemplate
		if err := json.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}

		summary := TemplateSummary{
			Name:      name,
			StackName: strings.TrimSuffix(name, templateSuffix),
			Total:     len(template.Resources),
			ByType:    make(map[string]int),
		}
		for _, resource := range template.Resources {
			summary.ByType[resource.Type]++
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// RuleByName returns the rule definition for a hit's rule name
func RuleByName(name string) (Rule, bool) {
	for _, rule := range AntiPatternRules {
		if rule.Name == name {
			return rule, true
		}
	}
	return Rule{}, false
}
