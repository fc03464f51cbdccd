// Package load reads the project configuration of a generation: where the
// model, the templates and the targets catalog live, where files are
// generated, and the project variables.
package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/syssam/tgen"
	"github.com/syssam/tgen/variables"
)

// DefaultFile is the project configuration file name.
const DefaultFile = "tgen.yaml"

// DefaultVariables are bound when the project does not define them.
var DefaultVariables = []variables.Variable{
	{Name: "SRC", Value: "src/main/java"},
	{Name: "RES", Value: "src/main/resources"},
	{Name: "WEB", Value: "src/main/webapp"},
	{Name: "TEST_SRC", Value: "src/test/java"},
	{Name: "TEST_RES", Value: "src/test/resources"},
	{Name: "DOC", Value: "doc"},
	{Name: "TMP", Value: "tmp"},
}

// Project is a loaded project configuration.
type Project struct {
	// Dir is the directory of the configuration file. Relative paths
	// are resolved against it.
	Dir string `yaml:"-"`
	// Destination is the folder receiving the generated files.
	Destination string `yaml:"destination"`
	// Templates is the folder holding the templates and resources.
	Templates string `yaml:"templates"`
	// Catalog is the targets catalog file.
	Catalog string `yaml:"catalog"`
	// Model is the YAML model file.
	Model string `yaml:"model"`
	// QualifiedColumns prefixes the select columns with the table name.
	QualifiedColumns bool `yaml:"qualifiedColumns"`
	// Workers bounds the number of files generated in parallel.
	Workers int `yaml:"workers"`
	// Variables are the project variables, in file order.
	Variables *variables.Set `yaml:"-"`
}

type projectFile struct {
	Project   `yaml:",inline"`
	Variables yaml.Node `yaml:"variables"`
}

// Parse decodes a project configuration. dir is used to resolve relative
// paths.
func Parse(r io.Reader, dir string) (*Project, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var pf projectFile
	if err := dec.Decode(&pf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	p := pf.Project
	p.Dir = dir
	vars, err := decodeVariables(&pf.Variables)
	if err != nil {
		return nil, err
	}
	for _, v := range DefaultVariables {
		if _, ok := vars.Get(v.Name); !ok {
			vars = vars.With(v.Name, v.Value)
		}
	}
	p.Variables = vars
	if p.Catalog == "" && p.Templates != "" {
		p.Catalog = filepath.Join(p.Templates, "templates.cfg")
	}
	if p.Workers < 0 {
		return nil, tgen.NewConfigError("workers", p.Workers, "cannot be negative")
	}
	for _, path := range []*string{&p.Destination, &p.Templates, &p.Catalog, &p.Model} {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(dir, *path)
		}
	}
	return &p, nil
}

// File loads the project configuration stored at path.
func File(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(bytes.NewReader(data), filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}
	return p, nil
}

// decodeVariables reads the variables mapping keeping the file order.
func decodeVariables(node *yaml.Node) (*variables.Set, error) {
	if node.Kind == 0 {
		return variables.New()
	}
	if node.Kind != yaml.MappingNode {
		return nil, tgen.NewConfigError("variables", node.Line, "expected a mapping of names to values")
	}
	vars := make([]variables.Variable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, tgen.NewConfigError("variables", k.Value, "value must be a scalar")
		}
		vars = append(vars, variables.Variable{Name: k.Value, Value: v.Value})
	}
	return variables.New(vars...)
}
