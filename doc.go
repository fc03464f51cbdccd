// Package tgen holds the errors shared by the tgen packages.
//
// tgen resolves the output location of template-driven generation targets
// and synthesizes the JDBC statements needed to persist a model entity.
// The work is split across packages:
//
//   - variables: ordered project variables and ${NAME} substitution
//   - model: entity and attribute descriptors
//   - target: target definitions and resolved targets
//   - dialect/sql: classified attributes and SQL statements for an entity
//   - compiler/load: the tgen.yaml project configuration
//   - compiler/gen: the generation task tying everything together
//   - cmd/tgen: the command line
package tgen
