// Package envfile loads deployment environment files of KEY=VALUE lines,
// the format used by the gateway deployment templates.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zxkane/aws-skills/internal/errors"
)

// EnvFile represents a parsed environment file
type EnvFile struct {
	Path string
	Vars map[string]string
}

// Load reads and parses an environment file
func Load(path string) (*EnvFile, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewValidationError(fmt.Sprintf("Environment file not found: %s", path), nil)
		}
		return nil, errors.NewConfigError(fmt.Sprintf("failed to open environment file: %s", path), err)
	}
	defer file.Close()

	env := &EnvFile{
		Path: path,
		Vars: make(map[string]string),
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Shell-style "export KEY=VALUE" lines are accepted
		line = strings.TrimPrefix(line, "export ")
		line = strings.TrimSpace(line)

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid line %d in %s: expected KEY=VALUE", lineNum, path), nil)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid line %d in %s: empty variable name", lineNum, path), nil)
		}

		env.Vars[key] = unquote(strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read environment file: %s", path), err)
	}

	return env, nil
}

// unquote strips one layer of matching single or double quotes
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	last := value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

// Get returns the value for a key, or an empty string when absent
func (e *EnvFile) Get(key string) string {
	return e.Vars[key]
}

// Missing returns the required keys that are absent or empty, in sorted order
func (e *EnvFile) Missing(required []string) []string {
	var missing []string
	for _, key := range required {
		if strings.TrimSpace(e.Vars[key]) == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// Environ merges the file's variables over a base environment, producing
// KEY=VALUE entries suitable for exec.Cmd.Env
func (e *EnvFile) Environ(base []string) []string {
	merged := make([]string, 0, len(base)+len(e.Vars))
	seen := make(map[string]bool, len(e.Vars))

	for _, entry := range base {
		key, _, found := strings.Cut(entry, "=")
		if found {
			if value, ok := e.Vars[key]; ok {
				merged = append(merged, key+"="+value)
				seen[key] = true
				continue
			}
		}
		merged = append(merged, entry)
	}

	keys := make([]string, 0, len(e.Vars))
	for key := range e.Vars {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		merged = append(merged, key+"="+e.Vars[key])
	}

	return merged
}
