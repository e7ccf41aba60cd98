// Package problem describes the functions to evolve: their test vectors,
// termination predicate and search options.
//
// Problems are either compiled in and registered by name, or loaded from a
// Starlark descriptor script.
package problem
