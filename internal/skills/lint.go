package skills

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zxkane/aws-skills/internal/models"
	"github.com/zxkane/aws-skills/internal/validation"
)

// maxDescriptionLength is the longest description the agent tooling accepts
const maxDescriptionLength = 1024

// Linter checks skill documents against the documented conventions
type Linter struct {
	validator *validation.Validator
}

// NewLinter creates a new linter instance
func NewLinter() *Linter {
	return &Linter{
		validator: validation.NewValidator(),
	}
}

// Lint checks a single parsed skill document
func (l *Linter) Lint(skill models.Skill) []models.LintIssue {
	var issues []models.LintIssue

	addIssue := func(severity models.LintSeverity, message string) {
		issues = append(issues, models.LintIssue{
			Path:     skill.Path,
			Severity: severity,
			Message:  message,
		})
	}

	if err := l.validator.ValidateSkillName(skill.Meta.Name); err != nil {
		addIssue(models.LintSeverityError, err.Error())
	} else if dir := filepath.Base(skill.Dir); dir != "." && skill.Meta.Name != dir {
		addIssue(models.LintSeverityWarning,
			fmt.Sprintf("name '%s' does not match directory '%s'", skill.Meta.Name, dir))
	}

	description := strings.TrimSpace(skill.Meta.Description)
	if description == "" {
		addIssue(models.LintSeverityError, "description is required")
	} else if len(description) > maxDescriptionLength {
		addIssue(models.LintSeverityError,
			fmt.Sprintf("description is %d characters, limit is %d", len(description), maxDescriptionLength))
	}

	if strings.TrimSpace(skill.Body) == "" {
		addIssue(models.LintSeverityWarning, "document has no body")
	}

	for _, key := range skill.UnknownKeys {
		addIssue(models.LintSeverityWarning, fmt.Sprintf("unknown frontmatter key '%s'", key))
	}

	return issues
}

// LintAll checks every parsed skill document
func (l *Linter) LintAll(skills []models.Skill) []models.LintIssue {
	var issues []models.LintIssue
	for _, skill := range skills {
		issues = append(issues, l.Lint(skill)...)
	}
	return issues
}

// HasErrors reports whether any issue in the list is an error
func HasErrors(issues []models.LintIssue) bool {
	for _, issue := range issues {
		if issue.Severity == models.LintSeverityError {
			return true
		}
	}
	return false
}
