// Package skills discovers and parses the SKILL.md documents that make up
// the repository's skill corpus. A skill document is markdown with a YAML
// frontmatter block delimited by --- lines.
package skills

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zxkane/aws-skills/internal/errors"
	"github.com/zxkane/aws-skills/internal/models"
)

const skillFileName = "SKILL.md"

// knownMetaKeys are the frontmatter keys skill documents may carry
var knownMetaKeys = map[string]bool{
	"name":        true,
	"description": true,
	"license":     true,
}

// Scanner discovers skill documents under a root directory
type Scanner struct {
	root string
}

// NewScanner creates a scanner rooted at the given directory
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Discover returns the SKILL.md paths under the root, relative to it and
// sorted. Hidden directories and generated output directories are skipped.
func (s *Scanner) Discover() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == s.root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || name == "node_modules" || name == "cdk.out" {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() != skillFileName {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewValidationError(fmt.Sprintf("skills directory not found: %s", s.root), nil)
		}
		return nil, fmt.Errorf("failed to scan %s: %w", s.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Load discovers and parses every skill document. Documents that fail to
// parse are reported as lint issues rather than aborting the scan.
func (s *Scanner) Load() ([]models.Skill, []models.LintIssue, error) {
	paths, err := s.Discover()
	if err != nil {
		return nil, nil, err
	}

	var skills []models.Skill
	var issues []models.LintIssue

	for _, rel := range paths {
		content, err := os.ReadFile(filepath.Join(s.root, rel))
		if err != nil {
			issues = append(issues, models.LintIssue{
				Path:     rel,
				Severity: models.LintSeverityError,
				Message:  fmt.Sprintf("failed to read file: %v", err),
			})
			continue
		}

		skill, err := Parse(rel, content)
		if err != nil {
			issues = append(issues, models.LintIssue{
				Path:     rel,
				Severity: models.LintSeverityError,
				Message:  err.Error(),
			})
			continue
		}

		skills = append(skills, *skill)
	}

	return skills, issues, nil
}

// Parse parses a skill document into its frontmatter and body
func Parse(relPath string, content []byte) (*models.Skill, error) {
	frontmatter, body, err := splitFrontmatter(string(content))
	if err != nil {
		return nil, err
	}

	var meta models.SkillMeta
	if err := yaml.Unmarshal([]byte(frontmatter), &meta); err != nil {
		return nil, fmt.Errorf("invalid frontmatter YAML: %w", err)
	}

	skill := &models.Skill{
		Meta: meta,
		Dir:  filepath.Dir(relPath),
		Path: relPath,
		Body: body,
	}

	// A second pass over the raw mapping catches keys the model ignores
	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatter), &raw); err == nil {
		for key := range raw {
			if !knownMetaKeys[key] {
				skill.UnknownKeys = append(skill.UnknownKeys, key)
			}
		}
		sort.Strings(skill.UnknownKeys)
	}

	return skill, nil
}

// splitFrontmatter separates the YAML frontmatter block from the markdown body
func splitFrontmatter(content string) (frontmatter, body string, err error) {
	// Normalize CRLF so the delimiter scan only deals with \n
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, "---\n") {
		return "", "", fmt.Errorf("missing frontmatter: document must start with ---")
	}

	rest := content[len("---\n"):]

	// Empty frontmatter block
	if strings.HasPrefix(rest, "---\n") {
		return "", rest[len("---\n"):], nil
	}
	if rest == "---" {
		return "", "", nil
	}

	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n---") {
			return rest[:len(rest)-len("\n---")], "", nil
		}
		return "", "", fmt.Errorf("unterminated frontmatter: closing --- not found")
	}

	frontmatter = rest[:end]
	body = rest[end+len("\n---\n"):]

	return frontmatter, body, nil
}
