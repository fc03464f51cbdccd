package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	"github.com/syssam/tgen"
	"github.com/syssam/tgen/variables"
)

// Load decodes a YAML model from r, fills in default table and column
// names and validates the result.
func Load(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	m := &Model{}
	if err := dec.Decode(m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile loads the YAML model stored at path.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// TableName returns the default table name of an entity class: the
// upper-case, underscore separated form of the class name.
func TableName(className string) string {
	return variables.Upper(inflect.Underscore(className))
}

// ColumnName returns the default column name of an attribute.
func ColumnName(attributeName string) string {
	return variables.Upper(inflect.Underscore(attributeName))
}

func (m *Model) applyDefaults() {
	for _, e := range m.Entities {
		if e == nil {
			continue
		}
		if e.DatabaseTable == "" && e.ClassName != "" {
			e.DatabaseTable = TableName(e.ClassName)
		}
		for _, a := range e.Attributes {
			if a != nil && a.DatabaseName == "" && a.Name != "" {
				a.DatabaseName = ColumnName(a.Name)
			}
		}
	}
}

// Validate checks that entities and attributes are named and unique.
// All problems found are reported together.
func (m *Model) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(m.Entities))
	for i, e := range m.Entities {
		if e == nil || strings.TrimSpace(e.ClassName) == "" {
			errs = append(errs, tgen.NewValidationError("", "", fmt.Sprintf("entity #%d has no class name", i+1)))
			continue
		}
		if seen[e.ClassName] {
			errs = append(errs, tgen.NewValidationError(e.ClassName, "", "duplicate entity"))
		}
		seen[e.ClassName] = true
		errs = append(errs, e.validate()...)
	}
	return tgen.NewAggregateError(errs...)
}

func (e *Entity) validate() []error {
	var errs []error
	names := make(map[string]bool, len(e.Attributes))
	for i, a := range e.Attributes {
		if a == nil || strings.TrimSpace(a.Name) == "" {
			errs = append(errs, tgen.NewValidationError(e.ClassName, "", fmt.Sprintf("attribute #%d has no name", i+1)))
			continue
		}
		if names[a.Name] {
			errs = append(errs, tgen.NewValidationError(e.ClassName, a.Name, "duplicate attribute"))
		}
		names[a.Name] = true
	}
	return errs
}
