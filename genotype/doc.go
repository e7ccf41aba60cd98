// Package genotype implements candidate programs as sequences of catalog
// records, their random synthesis and mutation, and their compilation to
// x86-64 machine code.
//
// A genotype always begins with the catalog prologue and ends with the
// catalog suffix. The interior between them is at most ChromoMax records
// long and only holds interior templates, so a compiled genotype always
// returns to its caller.
package genotype
