package skills

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zxkane/aws-skills/internal/models"
)

const validSkill = `---
name: aws-cdk
description: Guidance for building AWS CDK applications.
license: MIT
---

# AWS CDK

Use constructs, not raw CloudFormation.
`

func TestParse(t *testing.T) {
	skill, err := Parse("aws-cdk/SKILL.md", []byte(validSkill))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if skill.Meta.Name != "aws-cdk" {
		t.Errorf("expected name aws-cdk, got %s", skill.Meta.Name)
	}
	if skill.Meta.Description != "Guidance for building AWS CDK applications." {
		t.Errorf("unexpected description %q", skill.Meta.Description)
	}
	if skill.Meta.License != "MIT" {
		t.Errorf("expected license MIT, got %s", skill.Meta.License)
	}
	if skill.Dir != "aws-cdk" {
		t.Errorf("expected dir aws-cdk, got %s", skill.Dir)
	}
	if !strings.Contains(skill.Body, "# AWS CDK") {
		t.Errorf("body missing heading: %q", skill.Body)
	}
	if len(skill.UnknownKeys) != 0 {
		t.Errorf("expected no unknown keys, got %v", skill.UnknownKeys)
	}
}

func TestParse_UnknownKeys(t *testing.T) {
	content := `---
name: aws-cdk
description: CDK guidance.
version: "1.0"
author: someone
---
Body text.
`
	skill, err := Parse("aws-cdk/SKILL.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{"author", "version"}
	if !reflect.DeepEqual(skill.UnknownKeys, want) {
		t.Errorf("UnknownKeys = %v, want %v", skill.UnknownKeys, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no frontmatter",
			content: "# Just markdown\n",
		},
		{
			name:    "unterminated frontmatter",
			content: "---\nname: test\n",
		},
		{
			name:    "invalid yaml",
			content: "---\nname: [unclosed\n---\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse("x/SKILL.md", []byte(tt.content)); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}

func TestParse_CRLF(t *testing.T) {
	content := strings.ReplaceAll(validSkill, "\n", "\r\n")
	skill, err := Parse("aws-cdk/SKILL.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if skill.Meta.Name != "aws-cdk" {
		t.Errorf("expected name aws-cdk, got %s", skill.Meta.Name)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		frontmatter string
		body        string
		wantErr     bool
	}{
		{
			name:        "standard document",
			content:     "---\nname: a\n---\nbody\n",
			frontmatter: "name: a",
			body:        "body\n",
		},
		{
			name:        "no body",
			content:     "---\nname: a\n---",
			frontmatter: "name: a",
			body:        "",
		},
		{
			name:        "empty frontmatter",
			content:     "---\n---\nbody\n",
			frontmatter: "",
			body:        "body\n",
		},
		{
			name:    "missing opening delimiter",
			content: "name: a\n---\n",
			wantErr: true,
		},
		{
			name:    "missing closing delimiter",
			content: "---\nname: a\nbody\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frontmatter, body, err := splitFrontmatter(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("splitFrontmatter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if frontmatter != tt.frontmatter {
				t.Errorf("frontmatter = %q, want %q", frontmatter, tt.frontmatter)
			}
			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestScanner_Discover(t *testing.T) {
	root := t.TempDir()

	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("aws-cdk/SKILL.md", validSkill)
	mustWrite("bedrock-agentcore/SKILL.md", validSkill)
	mustWrite("bedrock-agentcore/references/gateway.md", "# ref\n")
	mustWrite("README.md", "# readme\n")
	mustWrite(".hidden/SKILL.md", validSkill)
	mustWrite("node_modules/pkg/SKILL.md", validSkill)

	scanner := NewScanner(root)
	paths, err := scanner.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		filepath.Join("aws-cdk", "SKILL.md"),
		filepath.Join("bedrock-agentcore", "SKILL.md"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Discover() = %v, want %v", paths, want)
	}
}

func TestScanner_DiscoverMissingRoot(t *testing.T) {
	scanner := NewScanner(filepath.Join(t.TempDir(), "absent"))
	if _, err := scanner.Discover(); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestScanner_Load(t *testing.T) {
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "good"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "good", "SKILL.md"), []byte(validSkill), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "broken"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken", "SKILL.md"), []byte("no frontmatter\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	scanner := NewScanner(root)
	skills, issues, err := scanner.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(skills) != 1 {
		t.Fatalf("expected 1 parsed skill, got %d", len(skills))
	}
	if skills[0].Meta.Name != "aws-cdk" {
		t.Errorf("unexpected skill %+v", skills[0])
	}

	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Severity != models.LintSeverityError {
		t.Errorf("expected error severity, got %s", issues[0].Severity)
	}
	if issues[0].Path != filepath.Join("broken", "SKILL.md") {
		t.Errorf("unexpected issue path %s", issues[0].Path)
	}
}
