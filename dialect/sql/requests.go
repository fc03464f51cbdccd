package sql

import (
	"strings"

	"github.com/syssam/tgen/model"
)

// Requests holds the JDBC statements of one entity, together with the
// attributes each statement binds. Everything is computed by NewRequests;
// the getters return copies.
type Requests struct {
	table     string
	qualified bool

	primaryKey []*model.Attribute
	selected   []*model.Attribute
	inserted   []*model.Attribute
	updated    []*model.Attribute

	selectSQL string
	existsSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// NewRequests builds the statements of the given entity. When qualified is
// set, the columns of the select statement are prefixed with the table name.
// It panics if entity is nil.
func NewRequests(entity *model.Entity, qualified bool) *Requests {
	if entity == nil {
		panic("sql: NewRequests called with a nil entity")
	}
	r := &Requests{
		table:     entity.DatabaseTable,
		qualified: qualified,
	}
	for _, a := range entity.Attributes {
		r.selected = append(r.selected, a)
		if a.Key {
			r.primaryKey = append(r.primaryKey, a)
		}
		if !a.AutoIncremented {
			r.inserted = append(r.inserted, a)
			if !a.Key {
				r.updated = append(r.updated, a)
			}
		}
	}
	r.selectSQL = "select " + r.columns(r.selected, r.qualified) +
		" from " + r.table +
		" where " + r.criteria(r.primaryKey, " and ")
	r.existsSQL = "select count(*) from " + r.table +
		" where " + r.criteria(r.primaryKey, " and ")
	r.insertSQL = "insert into " + r.table +
		" ( " + r.columns(r.inserted, false) + " )" +
		" values ( " + placeholders(len(r.inserted)) + " )"
	r.updateSQL = "update " + r.table +
		" set " + r.criteria(r.updated, ", ") +
		" where " + r.criteria(r.primaryKey, " and ")
	r.deleteSQL = "delete from " + r.table +
		" where " + r.criteria(r.primaryKey, " and ")
	return r
}

// Table returns the database table of the entity.
func (r *Requests) Table() string { return r.table }

// PrimaryKey returns the key attributes, in declaration order.
func (r *Requests) PrimaryKey() []*model.Attribute { return clone(r.primaryKey) }

// Select returns the attributes read by the select statement: all of them.
func (r *Requests) Select() []*model.Attribute { return clone(r.selected) }

// Insert returns the attributes written by the insert statement: all but
// the auto-incremented ones.
func (r *Requests) Insert() []*model.Attribute { return clone(r.inserted) }

// Update returns the attributes written by the update statement: all but
// the key and auto-incremented ones.
func (r *Requests) Update() []*model.Attribute { return clone(r.updated) }

// SelectSQL returns the statement selecting one row by primary key.
func (r *Requests) SelectSQL() string { return r.selectSQL }

// ExistsSQL returns the statement counting the rows with a primary key.
func (r *Requests) ExistsSQL() string { return r.existsSQL }

// InsertSQL returns the statement inserting one row.
func (r *Requests) InsertSQL() string { return r.insertSQL }

// UpdateSQL returns the statement updating one row by primary key.
func (r *Requests) UpdateSQL() string { return r.updateSQL }

// DeleteSQL returns the statement deleting one row by primary key.
func (r *Requests) DeleteSQL() string { return r.deleteSQL }

// columns joins the column names with ", ".
func (r *Requests) columns(attrs []*model.Attribute, prefix bool) string {
	var b strings.Builder
	for i, a := range attrs {
		if i > 0 {
			b.WriteString(", ")
		}
		if prefix {
			b.WriteString(r.table)
			b.WriteByte('.')
		}
		b.WriteString(a.DatabaseName)
	}
	return b.String()
}

// criteria joins "column = ?" clauses with sep. It is used for the where
// criteria and the set values of the update statement.
func (r *Requests) criteria(attrs []*model.Attribute, sep string) string {
	var b strings.Builder
	for i, a := range attrs {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(a.DatabaseName)
		b.WriteString(" = ?")
	}
	return b.String()
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func clone(attrs []*model.Attribute) []*model.Attribute {
	return append([]*model.Attribute(nil), attrs...)
}
