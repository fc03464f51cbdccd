package gen

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tgen"
	"github.com/syssam/tgen/variables"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewConfig(WithDestination("out"))
		require.NoError(t, err)

		assert.Equal(t, "out", c.Destination)
		assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
		assert.True(t, c.Format)
		assert.NotNil(t, c.Logger)
		assert.Contains(t, c.Renderers, StatementsExt)
		assert.Nil(t, c.Renderer)
	})

	t.Run("destination is required", func(t *testing.T) {
		_, err := NewConfig()
		require.Error(t, err)
		assert.True(t, tgen.IsConfigError(err))
	})

	t.Run("first failing option is returned", func(t *testing.T) {
		_, err := NewConfig(WithDestination("out"), WithWorkers(-1), WithLogger(nil))
		require.Error(t, err)
		var cfgErr *tgen.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Workers", cfgErr.Option)
	})
}

func TestMustNewConfig(t *testing.T) {
	assert.Panics(t, func() { MustNewConfig() })
	assert.NotPanics(t, func() { MustNewConfig(WithDestination("out")) })
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(
		WithDestination(""),
		WithWorkers(-2),
		WithQualifiedColumns(true),
	)
	require.Error(t, err)
	assert.True(t, tgen.IsConfigError(err))
	assert.Contains(t, err.Error(), "Destination")
	assert.Contains(t, err.Error(), "Workers")
	assert.True(t, c.QualifiedColumns)
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		want    int
		wantErr bool
	}{
		{"positive", 3, 3, false},
		{"zero keeps the current value", 0, 7, false},
		{"negative", -1, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Workers: 7}
			err := WithWorkers(tt.n)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, tgen.IsConfigError(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, c.Workers)
		})
	}
}

func TestWithTemplateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tmpl"), []byte("a"), 0o644))

	t.Run("folder", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithTemplateDir(dir)(c))
		data, err := fsReadFile(c, "a.tmpl")
		require.NoError(t, err)
		assert.Equal(t, "a", data)
	})

	t.Run("file", func(t *testing.T) {
		err := WithTemplateDir(filepath.Join(dir, "a.tmpl"))(&Config{})
		require.Error(t, err)
		assert.True(t, tgen.IsConfigError(err))
	})

	t.Run("missing", func(t *testing.T) {
		err := WithTemplateDir(filepath.Join(dir, "missing"))(&Config{})
		require.Error(t, err)
		assert.True(t, tgen.IsConfigError(err))
	})
}

func TestWithRenderer(t *testing.T) {
	r := RendererFunc(func(context.Context, io.Writer, string, *Context) error { return nil })

	t.Run("registers by extension", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithRenderer(".up", r)(c))
		assert.Contains(t, c.Renderers, ".up")
	})

	t.Run("extension needs a dot", func(t *testing.T) {
		err := WithRenderer("up", r)(&Config{})
		assert.True(t, tgen.IsConfigError(err))
	})

	t.Run("nil renderer", func(t *testing.T) {
		assert.True(t, tgen.IsConfigError(WithRenderer(".up", nil)(&Config{})))
		assert.True(t, tgen.IsConfigError(WithDefaultRenderer(nil)(&Config{})))
	})
}

func TestSimpleOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	vars := variables.MustNew(variables.Variable{Name: "SRC", Value: "src"})
	fsys := fstest.MapFS{}

	c := &Config{}
	require.NoError(t, c.Apply(
		WithTemplates(fsys),
		WithVariables(vars),
		WithFormat(false),
		WithLogger(logger),
		WithQualifiedColumns(true),
	))
	assert.Equal(t, vars, c.Variables)
	assert.False(t, c.Format)
	assert.Same(t, logger, c.Logger)
	assert.True(t, c.QualifiedColumns)
	assert.NotNil(t, c.Templates)

	assert.True(t, tgen.IsConfigError(WithTemplates(nil)(c)))
	assert.True(t, tgen.IsConfigError(WithDestination("  ")(c)))
}

func fsReadFile(c *Config, name string) (string, error) {
	f, err := c.Templates.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	return string(data), err
}
