package gen

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig/v3"
	"github.com/dave/jennifer/jen"

	"github.com/syssam/tgen/dialect"
	"github.com/syssam/tgen/dialect/sql"
	"github.com/syssam/tgen/model"
	"github.com/syssam/tgen/target"
	"github.com/syssam/tgen/variables"
)

// StatementsExt is the template extension handled by StatementsRenderer.
const StatementsExt = ".jen"

// Context is the data given to a renderer for one target.
type Context struct {
	// Target is the resolved target.
	Target *target.Target
	// Entity is the current entity, nil for once and resource targets.
	Entity *model.Entity
	// Model is the whole model.
	Model *model.Model
	// Requests holds the SQL statements of Entity, nil without entity.
	Requests *sql.Requests
	// Variables are the project variables.
	Variables *variables.Set
}

// Var returns the value of a project variable, or "" if it is not bound.
func (c *Context) Var(name string) string {
	v, _ := c.Variables.Get(name)
	return v
}

// Renderer produces the content of a target file.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, name string, data *Context) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, w io.Writer, name string, data *Context) error

// Render calls f(ctx, w, name, data).
func (f RendererFunc) Render(ctx context.Context, w io.Writer, name string, data *Context) error {
	return f(ctx, w, name, data)
}

// TemplateRenderer renders text/template files read from a file system.
// Parsed templates are cached; a TemplateRenderer is safe for concurrent use.
type TemplateRenderer struct {
	fsys  fs.FS
	funcs template.FuncMap

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewTemplateRenderer returns a renderer for the templates of fsys.
// The sprig functions are available in templates, along with:
//
//	rebind       dialect.Rebind
//	placeholder  the "${NAME}" form of a variable name
func NewTemplateRenderer(fsys fs.FS) *TemplateRenderer {
	funcs := sprig.TxtFuncMap()
	funcs["rebind"] = dialect.Rebind
	funcs["placeholder"] = variables.Placeholder
	return &TemplateRenderer{
		fsys:  fsys,
		funcs: funcs,
		cache: make(map[string]*template.Template),
	}
}

// Render implements the Renderer interface.
func (r *TemplateRenderer) Render(_ context.Context, w io.Writer, name string, data *Context) error {
	t, err := r.lookup(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

func (r *TemplateRenderer) lookup(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[name]; ok {
		return t, nil
	}
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read template %q: %w", name, err)
	}
	t, err := template.New(path.Base(name)).Funcs(r.funcs).Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}
	r.cache[name] = t
	return t, nil
}

// StatementsRenderer writes a Go file declaring the SQL statements of the
// current entity as constants, along with the column lists. The package
// name is derived from the target folder.
type StatementsRenderer struct{}

// Render implements the Renderer interface.
func (StatementsRenderer) Render(_ context.Context, w io.Writer, name string, data *Context) error {
	if data.Entity == nil || data.Requests == nil {
		return fmt.Errorf("template %q needs an entity", name)
	}
	prefix := data.Entity.ClassName
	r := data.Requests
	f := jen.NewFile(PackageName(data.Target.Folder()))
	f.HeaderComment("Code generated by tgen. DO NOT EDIT.")
	f.Commentf("SQL statements of entity %s, table %s.", prefix, r.Table())
	f.Const().DefsFunc(func(g *jen.Group) {
		g.Id(prefix + "Table").Op("=").Lit(r.Table())
		g.Id(prefix + "SelectSQL").Op("=").Lit(r.SelectSQL())
		g.Id(prefix + "ExistsSQL").Op("=").Lit(r.ExistsSQL())
		g.Id(prefix + "InsertSQL").Op("=").Lit(r.InsertSQL())
		g.Id(prefix + "UpdateSQL").Op("=").Lit(r.UpdateSQL())
		g.Id(prefix + "DeleteSQL").Op("=").Lit(r.DeleteSQL())
	})
	f.Var().DefsFunc(func(g *jen.Group) {
		g.Id(prefix + "KeyColumns").Op("=").Index().String().Values(columns(r.PrimaryKey())...)
		g.Id(prefix + "InsertColumns").Op("=").Index().String().Values(columns(r.Insert())...)
		g.Id(prefix + "UpdateColumns").Op("=").Index().String().Values(columns(r.Update())...)
	})
	return f.Render(w)
}

func columns(attrs []*model.Attribute) []jen.Code {
	codes := make([]jen.Code, 0, len(attrs))
	for _, a := range attrs {
		codes = append(codes, jen.Lit(a.DatabaseName))
	}
	return codes
}

// PackageName returns the Go package name of a folder: its last element,
// lower-cased, keeping letters, digits and underscores.
func PackageName(folder string) string {
	base := path.Base(strings.ReplaceAll(folder, "\\", "/"))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "main"
	}
	return name
}

// mux picks the renderer of a template from its extension.
type mux struct {
	byExt    map[string]Renderer
	fallback Renderer
}

func (m *mux) Render(ctx context.Context, w io.Writer, name string, data *Context) error {
	if r, ok := m.byExt[path.Ext(name)]; ok {
		return r.Render(ctx, w, name, data)
	}
	if m.fallback == nil {
		return fmt.Errorf("no renderer for template %q", name)
	}
	return m.fallback.Render(ctx, w, name, data)
}
