// Package store persists search runs and the improvements of their best
// genotype.
//
// The memory backend is always available. The SQLite backend is built with
// the sqlite build tag.
package store
