package gen

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/syssam/tgen"
	"github.com/syssam/tgen/variables"
)

// Config holds the settings of a generation task.
type Config struct {
	// Destination is the folder receiving the generated files.
	Destination string
	// Templates holds the templates and the resource files.
	Templates fs.FS
	// Variables are the project variables substituted in target patterns.
	Variables *variables.Set
	// QualifiedColumns prefixes the select columns with the table name.
	QualifiedColumns bool
	// Workers bounds the number of files generated in parallel.
	Workers int
	// Format runs goimports on generated Go files.
	Format bool
	// Logger receives the generation events.
	Logger *slog.Logger
	// Renderers maps a template extension (".jen") to its renderer.
	// Templates with another extension use the default renderer.
	Renderers map[string]Renderer
	// Renderer is the default renderer. When nil, a TemplateRenderer
	// over Templates is used.
	Renderer Renderer
}

// Option configures code generation.
type Option func(*Config) error

// WithDestination sets the folder receiving the generated files.
func WithDestination(dir string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(dir) == "" {
			return tgen.NewConfigError("Destination", nil, "destination folder cannot be empty")
		}
		c.Destination = dir
		return nil
	}
}

// WithTemplates sets the file system holding templates and resources.
func WithTemplates(fsys fs.FS) Option {
	return func(c *Config) error {
		if fsys == nil {
			return tgen.NewConfigError("Templates", nil, "templates cannot be nil")
		}
		c.Templates = fsys
		return nil
	}
}

// WithTemplateDir reads templates and resources from a folder.
func WithTemplateDir(dir string) Option {
	return func(c *Config) error {
		info, err := os.Stat(dir)
		if err != nil {
			return tgen.NewConfigError("Templates", dir, err.Error())
		}
		if !info.IsDir() {
			return tgen.NewConfigError("Templates", dir, "not a directory")
		}
		c.Templates = os.DirFS(dir)
		return nil
	}
}

// WithVariables sets the project variables.
func WithVariables(vars *variables.Set) Option {
	return func(c *Config) error {
		c.Variables = vars
		return nil
	}
}

// WithQualifiedColumns prefixes the select columns with the table name.
func WithQualifiedColumns(qualified bool) Option {
	return func(c *Config) error {
		c.QualifiedColumns = qualified
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return tgen.NewConfigError("Workers", n, "must not be negative")
		}
		if n > 0 {
			c.Workers = n
		}
		return nil
	}
}

// WithFormat enables or disables goimports formatting of Go files.
func WithFormat(format bool) Option {
	return func(c *Config) error {
		c.Format = format
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return tgen.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithRenderer registers a renderer for the templates ending with ext.
func WithRenderer(ext string, r Renderer) Option {
	return func(c *Config) error {
		if r == nil {
			return tgen.NewConfigError("Renderer", ext, "renderer cannot be nil")
		}
		if !strings.HasPrefix(ext, ".") {
			return tgen.NewConfigError("Renderer", ext, "extension must start with a dot")
		}
		if c.Renderers == nil {
			c.Renderers = make(map[string]Renderer)
		}
		c.Renderers[ext] = r
		return nil
	}
}

// WithDefaultRenderer replaces the template renderer.
func WithDefaultRenderer(r Renderer) Option {
	return func(c *Config) error {
		if r == nil {
			return tgen.NewConfigError("Renderer", nil, "renderer cannot be nil")
		}
		c.Renderer = r
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
// Go files are formatted and the statements renderer handles ".jen"
// templates unless the options say otherwise.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Workers:   runtime.GOMAXPROCS(0),
		Format:    true,
		Logger:    slog.Default(),
		Renderers: map[string]Renderer{StatementsExt: StatementsRenderer{}},
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Destination == "" {
		return nil, tgen.NewConfigError("Destination", nil, "destination folder is required")
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
