package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/tgen/dialect"
	"github.com/syssam/tgen/dialect/sql"
	"github.com/syssam/tgen/model"
)

// SQLCmd returns the sql command printing the statements of an entity.
func SQLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql ENTITY",
		Short: "Print the SQL statements of an entity",
		Long: `Print the select, exists, insert, update and delete statements of an
entity, along with its key, insert and update columns.

The model is read from the project configuration, or from --model.
Statements use '?' placeholders unless a dialect is given.

Usage:
  tgen sql Author
  tgen sql Author --dialect postgres --qualified`,
		Args: cobra.ExactArgs(1),
		RunE: runSQL,
	}

	addConfigFlag(cmd)
	cmd.Flags().StringP("model", "m", "", "Model file, instead of the project model")
	cmd.Flags().StringP("dialect", "d", "", "Rebind placeholders for a dialect (mysql, sqlite3, postgres)")
	cmd.Flags().Bool("qualified", false, "Prefix the select columns with the table name")

	return cmd
}

func runSQL(cmd *cobra.Command, args []string) error {
	modelPath, _ := cmd.Flags().GetString("model")
	dialectName, _ := cmd.Flags().GetString("dialect")
	qualified, _ := cmd.Flags().GetBool("qualified")
	if dialectName != "" && !dialect.Valid(dialectName) {
		return fmt.Errorf("unknown dialect %q", dialectName)
	}

	var (
		m   *model.Model
		err error
	)
	if modelPath != "" {
		m, err = model.LoadFile(modelPath)
	} else {
		var w *workspace
		if w, err = loadWorkspace(cmd, nil); err == nil {
			m = w.model
			qualified = qualified || w.project.QualifiedColumns
		}
	}
	if err != nil {
		return err
	}
	e, err := m.Entity(args[0])
	if err != nil {
		return err
	}

	r := sql.NewRequests(e, qualified)
	out := cmd.OutOrStdout()
	for _, s := range []struct{ name, query string }{
		{"select", r.SelectSQL()},
		{"exists", r.ExistsSQL()},
		{"insert", r.InsertSQL()},
		{"update", r.UpdateSQL()},
		{"delete", r.DeleteSQL()},
	} {
		query := s.query
		if dialectName != "" {
			query = dialect.Rebind(dialectName, query)
		}
		fmt.Fprintf(out, "%-15s %s\n", s.name+":", query)
	}
	fmt.Fprintf(out, "%-15s %s\n", "key columns:", strings.Join(columnNames(r.PrimaryKey()), ", "))
	fmt.Fprintf(out, "%-15s %s\n", "insert columns:", strings.Join(columnNames(r.Insert()), ", "))
	fmt.Fprintf(out, "%-15s %s\n", "update columns:", strings.Join(columnNames(r.Update()), ", "))
	return nil
}

func columnNames(attrs []*model.Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.DatabaseName
	}
	return names
}
