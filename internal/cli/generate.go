package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/syssam/tgen/compiler/gen"
	"github.com/syssam/tgen/compiler/load"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the targets of a project",
		Long: `Generate the files of the project targets.

Entity targets are generated for every entity of the model, or for the
entities given with --entity. Once targets are generated a single time and
resources are copied from the templates folder.

Usage:
  tgen generate                            # All targets, all entities
  tgen generate -e Author -e Book          # Only some entities
  tgen generate -t "Java Bean"             # Only some targets
  tgen generate --watch                    # Regenerate on changes`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addConfigFlag(cmd)
	cmd.Flags().StringArrayP("entity", "e", nil, "Entity to generate (repeatable)")
	cmd.Flags().StringArrayP("target", "t", nil, "Target to generate (repeatable)")
	cmd.Flags().Bool("watch", false, "Regenerate when the model, the catalog or a template changes")
	cmd.Flags().BoolP("verbose", "v", false, "Log every generated file")
	cmd.Flags().Bool("no-format", false, "Do not format generated Go files")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	watch, _ := cmd.Flags().GetBool("watch")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	generate := func(ctx context.Context) error {
		res, err := generateOnce(ctx, cmd, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) generated, %d resource(s) copied\n", res.FilesGenerated, res.ResourcesCopied)
		return nil
	}
	if err := generate(cmd.Context()); err != nil {
		if !watch {
			return err
		}
		logger.Error("generation failed", "error", err)
	}
	if !watch {
		return nil
	}

	paths, err := watchPaths(cmd)
	if err != nil {
		return err
	}
	return gen.Watch(cmd.Context(), logger, paths, gen.DefaultDebounce, generate)
}

// watchPaths returns the files and folders of the project configuration
// named by --config. Only the configuration itself is read, so a broken
// model or catalog is still watched.
func watchPaths(cmd *cobra.Command) ([]string, error) {
	path, _ := cmd.Flags().GetString("config")
	p, err := load.File(path)
	if err != nil {
		return nil, err
	}
	paths := []string{path}
	for _, name := range []string{p.Model, p.Templates, p.Catalog} {
		if name != "" && !slices.Contains(paths, name) {
			paths = append(paths, name)
		}
	}
	return paths, nil
}

// generateOnce reloads the project and runs a generation.
func generateOnce(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) (*gen.Result, error) {
	targets, _ := cmd.Flags().GetStringArray("target")
	entities, _ := cmd.Flags().GetStringArray("entity")
	noFormat, _ := cmd.Flags().GetBool("no-format")

	w, err := loadWorkspace(cmd, targets)
	if err != nil {
		return nil, err
	}
	cfg, err := w.config(logger, gen.WithFormat(!noFormat))
	if err != nil {
		return nil, err
	}
	task, err := gen.NewTask(cfg, w.model, w.targets, entities...)
	if err != nil {
		return nil, err
	}
	return task.Run(ctx)
}
