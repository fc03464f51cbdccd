// Package cli implements the tgen commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/tgen/compiler/gen"
	"github.com/syssam/tgen/compiler/load"
	"github.com/syssam/tgen/model"
	"github.com/syssam/tgen/target"
)

// workspace is a loaded project: its configuration, model and targets.
type workspace struct {
	project *load.Project
	model   *model.Model
	targets []target.Definition
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", load.DefaultFile, "Project configuration file")
}

// loadWorkspace reads the project configuration named by the --config flag,
// then its model and catalog. Only the named targets are kept when names
// is not empty.
func loadWorkspace(cmd *cobra.Command, names []string) (*workspace, error) {
	path, _ := cmd.Flags().GetString("config")
	p, err := load.File(path)
	if err != nil {
		return nil, err
	}
	if p.Model == "" {
		return nil, fmt.Errorf("%s: no model file configured", path)
	}
	m, err := model.LoadFile(p.Model)
	if err != nil {
		return nil, err
	}
	w := &workspace{project: p, model: m}
	if p.Catalog == "" {
		return w, nil
	}
	defs, err := target.LoadCatalog(p.Catalog)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		w.targets = defs
		return w, nil
	}
	for _, name := range names {
		def, err := target.Find(defs, name)
		if err != nil {
			return nil, err
		}
		w.targets = append(w.targets, def)
	}
	return w, nil
}

// config returns the generation options of the workspace.
func (w *workspace) config(logger *slog.Logger, opts ...gen.Option) (*gen.Config, error) {
	p := w.project
	base := []gen.Option{
		gen.WithDestination(p.Destination),
		gen.WithVariables(p.Variables),
		gen.WithQualifiedColumns(p.QualifiedColumns),
		gen.WithWorkers(p.Workers),
		gen.WithLogger(logger),
	}
	if p.Destination == "" {
		base[0] = gen.WithDestination(p.Dir)
	}
	if p.Templates != "" {
		base = append(base, gen.WithTemplateDir(p.Templates))
	}
	return gen.NewConfig(append(base, opts...)...)
}

// newLogger returns a text logger writing to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
