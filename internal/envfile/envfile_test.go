package envfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zxkane/aws-skills/internal/errors"
)

func writeTempEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env.gateway")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp env file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
		wantErr  bool
	}{
		{
			name: "simple assignments",
			content: `GATEWAY_IDENTIFIER=my-gateway-abc123
CREDENTIAL_PROVIDER_NAME=github-oauth
AWS_REGION=us-east-1
`,
			expected: map[string]string{
				"GATEWAY_IDENTIFIER":       "my-gateway-abc123",
				"CREDENTIAL_PROVIDER_NAME": "github-oauth",
				"AWS_REGION":               "us-east-1",
			},
		},
		{
			name: "comments and blank lines skipped",
			content: `# gateway settings

GATEWAY_IDENTIFIER=my-gateway
# region
AWS_REGION=us-west-2
`,
			expected: map[string]string{
				"GATEWAY_IDENTIFIER": "my-gateway",
				"AWS_REGION":         "us-west-2",
			},
		},
		{
			name: "export prefix stripped",
			content: `export GATEWAY_IDENTIFIER=my-gateway
export AWS_REGION=eu-west-1
`,
			expected: map[string]string{
				"GATEWAY_IDENTIFIER": "my-gateway",
				"AWS_REGION":         "eu-west-1",
			},
		},
		{
			name: "quoted values unwrapped",
			content: `NAME="quoted value"
OTHER='single quoted'
PARTIAL="unbalanced
`,
			expected: map[string]string{
				"NAME":    "quoted value",
				"OTHER":   "single quoted",
				"PARTIAL": `"unbalanced`,
			},
		},
		{
			name: "value containing equals sign",
			content: `QUERY=a=b=c
`,
			expected: map[string]string{
				"QUERY": "a=b=c",
			},
		},
		{
			name:    "line without equals sign",
			content: "GATEWAY_IDENTIFIER\n",
			wantErr: true,
		},
		{
			name:    "empty variable name",
			content: "=value\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempEnv(t, tt.content)
			env, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(env.Vars, tt.expected) {
				t.Errorf("Load() vars = %v, want %v", env.Vars, tt.expected)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.env")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %T", err)
	}
	if !strings.Contains(err.Error(), "Environment file not found") {
		t.Errorf("expected not-found message, got %q", err.Error())
	}
}

func TestLoad_ParseErrorIncludesLineNumber(t *testing.T) {
	path := writeTempEnv(t, "AWS_REGION=us-east-1\nbroken line\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line number in error, got %q", err.Error())
	}
}

func TestEnvFile_Missing(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		required []string
		expected []string
	}{
		{
			name: "all present",
			vars: map[string]string{
				"GATEWAY_IDENTIFIER":       "gw",
				"CREDENTIAL_PROVIDER_NAME": "cp",
				"AWS_REGION":               "us-east-1",
			},
			required: []string{"GATEWAY_IDENTIFIER", "CREDENTIAL_PROVIDER_NAME", "AWS_REGION"},
			expected: nil,
		},
		{
			name: "one absent",
			vars: map[string]string{
				"GATEWAY_IDENTIFIER": "gw",
				"AWS_REGION":         "us-east-1",
			},
			required: []string{"GATEWAY_IDENTIFIER", "CREDENTIAL_PROVIDER_NAME", "AWS_REGION"},
			expected: []string{"CREDENTIAL_PROVIDER_NAME"},
		},
		{
			name: "empty value counts as missing",
			vars: map[string]string{
				"GATEWAY_IDENTIFIER": "  ",
				"AWS_REGION":         "us-east-1",
			},
			required: []string{"GATEWAY_IDENTIFIER", "AWS_REGION"},
			expected: []string{"GATEWAY_IDENTIFIER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &EnvFile{Vars: tt.vars}
			got := env.Missing(tt.required)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Missing() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEnvFile_Environ(t *testing.T) {
	env := &EnvFile{
		Vars: map[string]string{
			"AWS_REGION":         "us-west-2",
			"GATEWAY_IDENTIFIER": "gw-1",
		},
	}

	base := []string{"PATH=/usr/bin", "AWS_REGION=us-east-1", "HOME=/home/user"}
	merged := env.Environ(base)

	want := map[string]string{
		"PATH":               "/usr/bin",
		"AWS_REGION":         "us-west-2",
		"HOME":               "/home/user",
		"GATEWAY_IDENTIFIER": "gw-1",
	}

	got := make(map[string]string, len(merged))
	for _, entry := range merged {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			t.Fatalf("malformed environ entry %q", entry)
		}
		got[key] = value
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}

	// File variables must override base entries in place, not append duplicates
	count := 0
	for _, entry := range merged {
		if strings.HasPrefix(entry, "AWS_REGION=") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one AWS_REGION entry, got %d", count)
	}
}
