// Package sql builds the JDBC statements used to persist an entity.
//
// NewRequests classifies the entity attributes and derives five
// parametrized statements from them:
//
//	r := sql.NewRequests(author, false)
//	r.SelectSQL() // select ID, NAME, EMAIL from AUTHOR where ID = ?
//	r.ExistsSQL() // select count(*) from AUTHOR where ID = ?
//	r.InsertSQL() // insert into AUTHOR ( ID, NAME, EMAIL ) values ( ?, ?, ? )
//	r.UpdateSQL() // update AUTHOR set NAME = ?, EMAIL = ? where ID = ?
//	r.DeleteSQL() // delete from AUTHOR where ID = ?
//
// Columns always follow the declaration order of the attributes. An entity
// without key attributes still gets a "where " clause, left empty.
//
// The statements are only built here, never executed.
package sql
