package rules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/rule.schema.json
var schemaBytes []byte

const schemaName = "rule.schema.json"

var printer = message.NewPrinter(language.English)

// ValidationResult is the outcome of checking one rule document.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation, e.g. Path "/patches/0/remove"
// with Keyword "minItems".
type ValidationIssue struct {
	Path    string
	Message string
	Keyword string
}

// getSchema compiles the embedded rule schema on first use.
var getSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaName, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := c.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
})

// Validate checks a YAML rule document against the rule schema. The error
// return is reserved for documents that are not YAML at all; schema
// violations are reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := yamlInstance(data)
	if err != nil {
		return nil, err
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Issues: issuesOf(ve)}, nil
}

// ValidateFile reads path and validates it as a rule document.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// yamlInstance decodes YAML and hands it to the validator as JSON, so
// numbers arrive as json.Number and map keys as strings.
func yamlInstance(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	jsonData, err := json.Marshal(stringKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
}

// issuesOf flattens the error tree into its leaves, one issue per distinct
// location and keyword, ordered by path.
func issuesOf(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[ValidationIssue]bool)

	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}
		if ve.ErrorKind == nil {
			continue
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			continue
		}
		issue := ValidationIssue{
			Path:    "/" + strings.Join(ve.InstanceLocation, "/"),
			Message: ve.ErrorKind.LocalizedString(printer),
			Keyword: kw[len(kw)-1],
		}
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Keyword < issues[j].Keyword
	})
	return issues
}

// stringKeys rewrites maps with non-string keys (e.g. `1: x`) so the
// document can be marshaled as JSON.
func stringKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = stringKeys(item)
		}
		return val
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = stringKeys(item)
		}
		return m
	case []interface{}:
		for i, item := range val {
			val[i] = stringKeys(item)
		}
		return val
	default:
		return val
	}
}
