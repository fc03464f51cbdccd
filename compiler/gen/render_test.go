package gen

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tgen/dialect/sql"
	"github.com/syssam/tgen/model"
	"github.com/syssam/tgen/target"
	"github.com/syssam/tgen/variables"
)

const bookstore = `
name: bookstore
entities:
  - class: Author
    table: AUTHOR
    attributes:
      - name: id
        type: int
        column: ID
        key: true
      - name: firstName
        type: string
      - name: email
        type: string
        column: EMAIL
  - class: Badge
    table: BADGE
    attributes:
      - name: code
        type: int
        column: BADGE_CODE
        key: true
        autoIncremented: true
      - name: name
        type: string
`

func loadModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Load(strings.NewReader(bookstore))
	require.NoError(t, err)
	return m
}

func projectVars() *variables.Set {
	vars, err := variables.FromPairs(
		"SRC", "src",
		"ENTITY_PKG", "org.demo.bean",
		"DOC", "doc",
		"WEB", "web",
	)
	if err != nil {
		panic(err)
	}
	return vars
}

func entityContext(t *testing.T, m *model.Model, class string, def target.Definition) *Context {
	t.Helper()
	e, err := m.Entity(class)
	require.NoError(t, err)
	vars := projectVars()
	tg, err := target.ForEntity(def, e, vars)
	require.NoError(t, err)
	return &Context{
		Target:    tg,
		Entity:    e,
		Model:     m,
		Requests:  sql.NewRequests(e, false),
		Variables: vars,
	}
}

func TestTemplateRenderer(t *testing.T) {
	m := loadModel(t)
	fsys := fstest.MapFS{
		"bean.tmpl": {Data: []byte(
			`{{ .Entity.ClassName | upper }} in {{ .Target.Folder }}` + "\n" +
				`{{ .Requests.SelectSQL }}` + "\n" +
				`{{ .Requests.SelectSQL | rebind "postgres" }}` + "\n" +
				`{{ .Var "ENTITY_PKG" }} {{ placeholder "SRC" }}`,
		)},
		"broken.tmpl":  {Data: []byte(`{{ .Entity.ClassName `)},
		"unknown.tmpl": {Data: []byte(`{{ .Entity.Nope }}`)},
	}
	r := NewTemplateRenderer(fsys)
	def := target.Definition{Name: "Bean", File: "${BEANNAME}.txt", Folder: "${ENTITY_PKG}", Template: "bean.tmpl"}
	data := entityContext(t, m, "Author", def)

	t.Run("render", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(context.Background(), &buf, "bean.tmpl", data))
		lines := strings.Split(buf.String(), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "AUTHOR in "+data.Target.Folder(), lines[0])
		assert.Equal(t, "select ID, FIRST_NAME, EMAIL from AUTHOR where ID = ?", lines[1])
		assert.Equal(t, "select ID, FIRST_NAME, EMAIL from AUTHOR where ID = $1", lines[2])
		assert.Equal(t, "org.demo.bean ${SRC}", lines[3])
	})

	t.Run("cached", func(t *testing.T) {
		var a, b bytes.Buffer
		require.NoError(t, r.Render(context.Background(), &a, "bean.tmpl", data))
		require.NoError(t, r.Render(context.Background(), &b, "bean.tmpl", data))
		assert.Equal(t, a.String(), b.String())
		assert.Len(t, r.cache, 1)
	})

	t.Run("missing template", func(t *testing.T) {
		err := r.Render(context.Background(), io.Discard, "missing.tmpl", data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.tmpl")
	})

	t.Run("parse error", func(t *testing.T) {
		err := r.Render(context.Background(), io.Discard, "broken.tmpl", data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse template")
	})

	t.Run("execution error", func(t *testing.T) {
		err := r.Render(context.Background(), io.Discard, "unknown.tmpl", data)
		require.Error(t, err)
	})
}

func TestStatementsRenderer(t *testing.T) {
	m := loadModel(t)
	def := target.Definition{Name: "SQL", File: "${BEANNAME}SQL.go", Folder: "${ENTITY_PKG}", Template: "sql.jen"}

	t.Run("entity", func(t *testing.T) {
		var buf bytes.Buffer
		data := entityContext(t, m, "Badge", def)
		require.NoError(t, StatementsRenderer{}.Render(context.Background(), &buf, "sql.jen", data))
		out := buf.String()

		assert.True(t, strings.HasPrefix(out, "// Code generated by tgen. DO NOT EDIT."))
		assert.Contains(t, out, "package bean")
		for name, value := range map[string]string{
			"BadgeTable":     "BADGE",
			"BadgeSelectSQL": "select BADGE_CODE, NAME from BADGE where BADGE_CODE = ?",
			"BadgeExistsSQL": "select count(*) from BADGE where BADGE_CODE = ?",
			"BadgeInsertSQL": "insert into BADGE ( NAME ) values ( ? )",
			"BadgeUpdateSQL": "update BADGE set NAME = ? where BADGE_CODE = ?",
			"BadgeDeleteSQL": "delete from BADGE where BADGE_CODE = ?",
		} {
			assert.Regexp(t, regexp.MustCompile(name+`\s+= "`+regexp.QuoteMeta(value)+`"`), out)
		}
		assert.Regexp(t, `BadgeKeyColumns\s+= \[\]string\{"BADGE_CODE"\}`, out)
		assert.Regexp(t, `BadgeInsertColumns\s+= \[\]string\{"NAME"\}`, out)
		assert.Regexp(t, `BadgeUpdateColumns\s+= \[\]string\{"NAME"\}`, out)
	})

	t.Run("needs an entity", func(t *testing.T) {
		tg := target.ForProject(def, projectVars())
		err := StatementsRenderer{}.Render(context.Background(), io.Discard, "sql.jen", &Context{Target: tg, Model: m})
		require.Error(t, err)
	})
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{"src/org/demo/bean", "bean"},
		{`src\org\demo\bean`, "bean"},
		{"src/org/demo/Data-Access", "dataaccess"},
		{"src/org/demo/bean/", "bean"},
		{"src/org/demo/2d", "main"},
		{"", "main"},
		{"---", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			assert.Equal(t, tt.want, PackageName(tt.folder))
		})
	}
}

func TestMux(t *testing.T) {
	var calls []string
	named := func(name string) Renderer {
		return RendererFunc(func(_ context.Context, w io.Writer, tmpl string, _ *Context) error {
			calls = append(calls, name+":"+tmpl)
			return nil
		})
	}
	m := &mux{byExt: map[string]Renderer{".up": named("up")}, fallback: named("default")}
	require.NoError(t, m.Render(context.Background(), io.Discard, "a.up", nil))
	require.NoError(t, m.Render(context.Background(), io.Discard, "b.tmpl", nil))
	assert.Equal(t, []string{"up:a.up", "default:b.tmpl"}, calls)

	err := (&mux{}).Render(context.Background(), io.Discard, "b.tmpl", nil)
	require.Error(t, err)
}
