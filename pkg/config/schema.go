package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/arthur-debert/prjconf/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/arthur-debert/prjconf/schema/project.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// SchemaContent returns the embedded project file schema.
func SchemaContent() string {
	return string(schemaJSON)
}

func projectSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = errors.Wrap(err, errors.ErrInternal, "failed to add project schema")
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, errors.ErrInternal, "failed to compile project schema")
		}
	})
	return compiledSchema, schemaErr
}

// Violation is one schema violation.
type Violation struct {
	Path    string
	Message string
}

// Validate checks a raw configuration document against the project schema.
func Validate(doc map[string]interface{}) error {
	schema, err := projectSchema()
	if err != nil {
		return err
	}

	// Round trip through JSON so parser specific types become JSON types.
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "configuration is not representable as JSON")
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to decode configuration JSON")
	}

	if err := schema.Validate(obj); err != nil {
		return schemaError(err)
	}
	return nil
}

func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(err, errors.ErrConfigInvalid, "invalid configuration")
	}

	var violations []Violation
	collectViolations(ve, &violations)
	if len(violations) == 0 {
		violations = append(violations, Violation{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message})
	}

	first := violations[0]
	return errors.Newf(errors.ErrConfigInvalid, "invalid configuration at %s: %s", first.Path, first.Message).
		WithDetail("path", first.Path).
		WithDetail("violations", violations)
}

func collectViolations(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{Path: pointerToPath(err.InstanceLocation), Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, out)
	}
}

// pointerToPath turns a JSON pointer such as /rules/0/name into rules[0].name.
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return "(root)"
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
