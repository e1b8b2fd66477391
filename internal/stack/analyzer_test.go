package stack

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/zxkane/aws-skills/internal/config"
)

func testStackConfig() config.StackConfig {
	return config.StackConfig{
		SynthCommand: "npx cdk synth --quiet",
		SourceDirs:   []string{"lib", "bin", "src"},
		OutputDir:    "cdk.out",
		NamePrefix:   "agentcore-gateway-",
	}
}

func writeProjectFile(t *testing.T, projectDir, rel, content string) {
	t.Helper()
	path := filepath.Join(projectDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzer_ScanSources(t *testing.T) {
	projectDir := t.TempDir()

	writeProjectFile(t, projectDir, "lib/gateway-stack.ts", `import * as cdk from 'aws-cdk-lib';

const bucket = new s3.Bucket(this, 'Artifacts', {
  bucketName: 'my-hardcoded-bucket',
});

const policy = new iam.PolicyStatement({
  actions: ['*'],
  resources: ['*'],
});

const raw = new CfnGateway(this, 'Raw', {});
`)
	writeProjectFile(t, projectDir, "lib/clean-stack.ts", `const bucket = new s3.Bucket(this, 'Artifacts');
const statement = new iam.PolicyStatement({
  actions: ['s3:GetObject'],
  resources: [bucket.arnForObjects('*')],
});
`)
	// Files outside the configured extensions are ignored
	writeProjectFile(t, projectDir, "lib/README.md", "bucketName: 'x'\n")
	// Declarations are excluded
	writeProjectFile(t, projectDir, "lib/types.d.ts", "bucketName: 'x'\n")

	analyzer := NewAnalyzer(projectDir, testStackConfig(), time.Minute)
	hits, err := analyzer.ScanSources()
	if err != nil {
		t.Fatalf("ScanSources() error = %v", err)
	}

	counts := make(map[string]int)
	for _, hit := range hits {
		counts[hit.Rule]++
		if hit.File != filepath.Join("lib", "gateway-stack.ts") {
			t.Errorf("unexpected file in hit: %s", hit.File)
		}
	}

	want := map[string]int{
		"hardcoded-resource-name": 1,
		"wildcard-iam-action":     1,
		"wildcard-iam-resource":   1,
		"l1-construct":            1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("rule counts = %v, want %v", counts, want)
	}
}

func TestAnalyzer_ScanSourcesLineNumbers(t *testing.T) {
	projectDir := t.TempDir()

	writeProjectFile(t, projectDir, "src/app.ts", `const ok = 1;
const bad = { tableName: 'fixed' };
`)

	analyzer := NewAnalyzer(projectDir, testStackConfig(), time.Minute)
	hits, err := analyzer.ScanSources()
	if err != nil {
		t.Fatalf("ScanSources() error = %v", err)
	}

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d: %v", len(hits), hits)
	}
	if hits[0].Line != 2 {
		t.Errorf("expected hit on line 2, got %d", hits[0].Line)
	}
	if hits[0].Rule != "hardcoded-resource-name" {
		t.Errorf("unexpected rule %s", hits[0].Rule)
	}
}

func TestAnalyzer_ScanSourcesMissingDirs(t *testing.T) {
	analyzer := NewAnalyzer(t.TempDir(), testStackConfig(), time.Minute)
	hits, err := analyzer.ScanSources()
	if err != nil {
		t.Fatalf("ScanSources() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestAnalyzer_CountResources(t *testing.T) {
	projectDir := t.TempDir()

	writeProjectFile(t, projectDir, "cdk.out/agentcore-gateway-demo.template.json", `{
  "Resources": {
    "GatewayRole": {"Type": "AWS::IAM::Role"},
    "GatewayPolicy": {"Type": "AWS::IAM::Policy"},
    "TokenSecret": {"Type": "AWS::SecretsManager::Secret"},
    "HelperRole": {"Type": "AWS::IAM::Role"}
  }
}`)
	writeProjectFile(t, projectDir, "cdk.out/empty.template.json", `{"Resources": {}}`)
	// Non-template artifacts in the output directory are ignored
	writeProjectFile(t, projectDir, "cdk.out/manifest.json", `{}`)

	analyzer := NewAnalyzer(projectDir, testStackConfig(), time.Minute)
	summaries, err := analyzer.CountResources()
	if err != nil {
		t.Fatalf("CountResources() error = %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	demo := summaries[0]
	if demo.StackName != "agentcore-gateway-demo" {
		t.Errorf("unexpected stack name %s", demo.StackName)
	}
	if demo.Total != 4 {
		t.Errorf("expected 4 resources, got %d", demo.Total)
	}
	if demo.ByType["AWS::IAM::Role"] != 2 {
		t.Errorf("expected 2 roles, got %d", demo.ByType["AWS::IAM::Role"])
	}

	if summaries[1].StackName != "empty" || summaries[1].Total != 0 {
		t.Errorf("unexpected summary %+v", summaries[1])
	}
}

func TestAnalyzer_CountResourcesMissingOutputDir(t *testing.T) {
	analyzer := NewAnalyzer(t.TempDir(), testStackConfig(), time.Minute)
	if _, err := analyzer.CountResources(); err == nil {
		t.Error("expected error when output directory is missing")
	}
}

func TestAnalyzer_CheckTools(t *testing.T) {
	cfg := testStackConfig()

	// A shell is present on any test host
	cfg.SynthCommand = "sh -c true"
	analyzer := NewAnalyzer(t.TempDir(), cfg, time.Minute)
	if err := analyzer.CheckTools(); err != nil {
		t.Errorf("CheckTools() unexpected error = %v", err)
	}

	cfg.SynthCommand = "definitely-not-a-real-tool-xyz synth"
	analyzer = NewAnalyzer(t.TempDir(), cfg, time.Minute)
	if err := analyzer.CheckTools(); err == nil {
		t.Error("expected error for missing tool")
	}

	cfg.SynthCommand = ""
	analyzer = NewAnalyzer(t.TempDir(), cfg, time.Minute)
	if err := analyzer.CheckTools(); err == nil {
		t.Error("expected error for empty synth command")
	}
}

func TestRuleByName(t *testing.T) {
	rule, ok := RuleByName("l1-construct")
	if !ok {
		t.Fatal("expected to find l1-construct rule")
	}
	if rule.Description == "" {
		t.Error("expected rule description")
	}

	if _, ok := RuleByName("no-such-rule"); ok {
		t.Error("expected lookup miss for unknown rule")
	}
}
