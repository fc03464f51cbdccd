// Package dialect names the database dialects targeted by generated code.
//
// The statements built by package dialect/sql use '?' placeholders, as JDBC
// does. Templates producing code for another placeholder style use Rebind:
//
//	dialect.Rebind(dialect.Postgres, "delete from AUTHOR where ID = ?")
//	// delete from AUTHOR where ID = $1
package dialect
