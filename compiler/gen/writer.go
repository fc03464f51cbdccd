package gen

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/tgen"
	"github.com/syssam/tgen/dialect/sql"
	"github.com/syssam/tgen/model"
	"github.com/syssam/tgen/target"
)

// Task generates the files of a set of targets for a set of entities.
type Task struct {
	cfg      *Config
	model    *model.Model
	entities []*model.Entity
	targets  []target.Definition
	renderer Renderer
	logger   *slog.Logger
}

// Result summarizes a generation.
type Result struct {
	// FilesGenerated is the number of rendered files.
	FilesGenerated int
	// ResourcesCopied is the number of copied resource files.
	ResourcesCopied int
	// TotalBytes is the size of all written files.
	TotalBytes int64
	// Files are the written files, relative to the destination, sorted.
	Files []string
	// Duration is the time spent in Run.
	Duration time.Duration
}

// NewTask returns a task generating targets for the named entities of m.
// No entity name selects every entity of the model.
func NewTask(cfg *Config, m *model.Model, targets []target.Definition, entities ...string) (*Task, error) {
	if cfg == nil {
		return nil, fmt.Errorf("gen: nil config: %w", tgen.ErrMissingInput)
	}
	if m == nil {
		return nil, fmt.Errorf("gen: nil model: %w", tgen.ErrMissingInput)
	}
	selected, err := m.Select(entities...)
	if err != nil {
		return nil, err
	}
	fallback := cfg.Renderer
	if fallback == nil && cfg.Templates != nil {
		fallback = NewTemplateRenderer(cfg.Templates)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Task{
		cfg:      cfg,
		model:    m,
		entities: selected,
		targets:  targets,
		renderer: &mux{byExt: cfg.Renderers, fallback: fallback},
		logger:   logger,
	}, nil
}

// fileTask is a single file to produce.
type fileTask struct {
	target *target.Target
	entity *model.Entity
	kind   target.Kind
	path   string // relative to the destination, slash separated
}

// Plan resolves every target for the selected entities. Entity targets
// are resolved once per entity, once and resource targets a single time.
// Two targets resolving to the same file are reported as an error.
func (t *Task) Plan() ([]*target.Target, error) {
	files, err := t.plan()
	if err != nil {
		return nil, err
	}
	targets := make([]*target.Target, len(files))
	for i, f := range files {
		targets[i] = f.target
	}
	return targets, nil
}

func (t *Task) plan() ([]fileTask, error) {
	var (
		files []fileTask
		seen  = make(map[string]string)
	)
	add := func(tg *target.Target, e *model.Entity, kind target.Kind) error {
		p := filepath.ToSlash(tg.OutputFileNameInProject())
		if prev, ok := seen[p]; ok {
			return tgen.NewConfigError("Targets", p, fmt.Sprintf("file generated by both %q and %q", prev, tg.Name()))
		}
		seen[p] = tg.Name()
		files = append(files, fileTask{target: tg, entity: e, kind: kind, path: p})
		return nil
	}
	for _, def := range t.targets {
		if def.Kind != target.KindEntity {
			if err := add(target.ForProject(def, t.cfg.Variables), nil, def.Kind); err != nil {
				return nil, err
			}
			continue
		}
		for _, e := range t.entities {
			tg, err := target.ForEntity(def, e, t.cfg.Variables)
			if err != nil {
				return nil, err
			}
			if err := add(tg, e, def.Kind); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

// Run generates all files, in parallel. It stops at the first failure.
func (t *Task) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	files, err := t.plan()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(t.cfg.Destination, 0o755); err != nil {
		return nil, fmt.Errorf("create destination folder: %w", err)
	}

	// Statements are shared by all the targets of an entity.
	requests := make(map[*model.Entity]*sql.Requests, len(t.entities))
	for _, e := range t.entities {
		requests[e] = sql.NewRequests(e, t.cfg.QualifiedColumns)
	}

	var (
		mu  sync.Mutex
		res = &Result{}
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(t.cfg.Workers, 1))
	for _, f := range files {
		f := f
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			n, phase, err := t.generateFile(ctx, f, requests[f.entity])
			if err != nil {
				return tgen.NewGenerationError(f.target.Name(), f.target.EntityName(), f.path, phase, err)
			}
			t.logger.Debug("file generated", "target", f.target.Name(), "entity", f.target.EntityName(), "file", f.path, "bytes", n)
			mu.Lock()
			defer mu.Unlock()
			if f.kind == target.KindResource {
				res.ResourcesCopied++
			} else {
				res.FilesGenerated++
			}
			res.TotalBytes += n
			res.Files = append(res.Files, f.path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(res.Files)
	res.Duration = time.Since(start)
	t.logger.Info("generation completed",
		"files", res.FilesGenerated,
		"resources", res.ResourcesCopied,
		"bytes", res.TotalBytes,
		"duration", res.Duration,
	)
	return res, nil
}

// Phases of a file generation, reported as the GenerationError message.
const (
	PhaseRead   = "read"
	PhaseRender = "render"
	PhaseFormat = "format"
	PhaseWrite  = "write"
)

// generateFile renders or copies a single file and returns its size. On
// failure it also returns the phase that failed.
func (t *Task) generateFile(ctx context.Context, f fileTask, r *sql.Requests) (int64, string, error) {
	var buf bytes.Buffer
	if f.kind == target.KindResource {
		if t.cfg.Templates == nil {
			return 0, PhaseRead, fmt.Errorf("no templates to copy resource %q from", f.target.Template())
		}
		data, err := fs.ReadFile(t.cfg.Templates, f.target.Template())
		if err != nil {
			return 0, PhaseRead, err
		}
		buf.Write(data)
	} else {
		data := &Context{
			Target:    f.target,
			Entity:    f.entity,
			Model:     t.model,
			Requests:  r,
			Variables: t.cfg.Variables,
		}
		if err := t.renderer.Render(ctx, &buf, f.target.Template(), data); err != nil {
			return 0, PhaseRender, err
		}
	}

	fullPath := f.target.OutputFileNameInFileSystem(t.cfg.Destination)
	content := buf.Bytes()
	if t.cfg.Format && f.kind != target.KindResource && filepath.Ext(fullPath) == ".go" {
		formatted, err := imports.Process(fullPath, content, nil)
		if err != nil {
			// Keep the unformatted output next to the target for debugging.
			debugPath := fullPath + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, content, 0o644)
			return 0, PhaseFormat, fmt.Errorf("%w (unformatted written to %s)", err, debugPath)
		}
		content = formatted
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, PhaseWrite, err
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return 0, PhaseWrite, err
	}
	return int64(len(content)), "", nil
}
