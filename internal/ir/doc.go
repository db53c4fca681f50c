// Package ir holds the typed intermediate representation produced by the
// resolver: expressions are split by static type, names are replaced by
// module-unique VariableIDs, and every function carries its locals table.
package ir
