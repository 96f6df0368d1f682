package manifest

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/template.schema.json
var schemaBytes []byte

const schemaName = "template.schema.json"

var printer = message.NewPrinter(language.English)

// loadSchema compiles the embedded schema on first use.
var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding manifest schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaName, doc); err != nil {
		return nil, fmt.Errorf("registering manifest schema: %w", err)
	}
	s, err := c.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", err)
	}
	return s, nil
})

// ValidationResult is the outcome of checking one manifest.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string `json:"path"`    // JSON pointer into the manifest, "" for the root
	Message string `json:"message"` // localized description
	Keyword string `json:"keyword"` // failing schema keyword, e.g. "required"
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validate checks YAML manifest bytes against the schema. The error return
// covers YAML syntax and schema loading; violations land in the result.
func Validate(data []byte) (*ValidationResult, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidManifest, err)
	}
	return validateDocument(doc)
}

// ValidateFile validates the manifest at path as it sits on disk. Unrendered
// $KEY tokens are ordinary strings to the schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

func validateDocument(doc any) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	// The validator wants JSON values: string keys and json.Number.
	encoded, err := json.Marshal(toJSONValue(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &ValidationResult{Issues: issuesFrom(ve)}, nil
}

// Keywords that only wrap the real failures.
var wrapperKeywords = map[string]bool{"": true, "$ref": true, "allOf": true, "anyOf": true, "oneOf": true}

// issuesFrom flattens the error tree into its leaves, drops duplicates and
// orders them by location.
func issuesFrom(root *jsonschema.ValidationError) []ValidationIssue {
	seen := make(map[ValidationIssue]bool)
	var issues []ValidationIssue

	var visit func(*jsonschema.ValidationError)
	visit = func(ve *jsonschema.ValidationError) {
		for _, cause := range ve.Causes {
			visit(cause)
		}
		if len(ve.Causes) > 0 || ve.ErrorKind == nil {
			return
		}
		issue := ValidationIssue{Message: ve.ErrorKind.LocalizedString(printer)}
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		if wrapperKeywords[issue.Keyword] || seen[issue] {
			return
		}
		seen[issue] = true
		issues = append(issues, issue)
	}
	visit(root)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	slices.SortStableFunc(issues, func(a, b ValidationIssue) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return issues
}

// toJSONValue rewrites YAML-decoded values into JSON-encodable ones.
// Non-string mapping keys are stringified.
func toJSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = toJSONValue(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[fmt.Sprint(k)] = toJSONValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toJSONValue(e)
		}
		return out
	default:
		return val
	}
}
