package models

// SkillMeta represents the YAML frontmatter of a SKILL.md document
type SkillMeta struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	License     string `yaml:"license,omitempty" json:"license,omitempty"`
}

// Skill represents a skill document discovered in the repository
type Skill struct {
	Meta SkillMeta `json:"meta"`
	// Dir is the skill directory path relative to the scan root
	Dir string `json:"dir"`
	// Path is the SKILL.md file path relative to the scan root
	Path string `json:"path"`
	Body string `json:"-"`
	// UnknownKeys lists frontmatter keys outside the documented set
	UnknownKeys []string `json:"-"`
}

// LintSeverity classifies a lint finding
type LintSeverity string

const (
	LintSeverityError   LintSeverity = "error"
	LintSeverityWarning LintSeverity = "warning"
)

// LintIssue represents a single finding from linting a skill document
type LintIssue struct {
	Path     string       `json:"path"`
	Severity LintSeverity `json:"severity"`
	Message  string       `json:"message"`
}
