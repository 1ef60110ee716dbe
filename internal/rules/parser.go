package rules

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// InvalidError is returned by Parse when a rule document fails schema
// validation.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return "invalid rule: " + strings.Join(parts, "; ")
}

// Load reads, validates, and parses a rule file.
func Load(path string) (*Rule, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading rule %s: %w", path, err)
	}
	return r, nil
}

// Parse validates data against the rule schema and decodes it.
func Parse(data []byte) (*Rule, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}

	var r Rule
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing rule: %w", err)
	}
	return &r, nil
}

// Marshal renders a rule as YAML.
func Marshal(r *Rule) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling rule: %w", err)
	}
	return data, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
