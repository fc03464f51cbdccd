package dialect

import (
	"strconv"
	"strings"
)

// Database dialects.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

// Valid reports whether name is a known dialect.
func Valid(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}

// Rebind rewrites the '?' placeholders of query for the given dialect.
// Postgres placeholders are numbered ($1, $2, ...); other dialects keep
// the query unchanged. Question marks inside quoted literals or
// identifiers are left as is.
func Rebind(name, query string) string {
	if name != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var (
		b     strings.Builder
		n     int
		quote byte
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Placeholders returns the number of '?' placeholders in query, ignoring
// quoted literals and identifiers.
func Placeholders(query string) int {
	var (
		n     int
		quote byte
	)
	for i := 0; i < len(query); i++ {
		switch c := query[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			n++
		}
	}
	return n
}
