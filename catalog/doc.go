// Package catalog describes the x86-64 instruction templates that candidate
// programs are assembled from.
//
// A template is a fixed opcode byte sequence, an optional register selector
// (ModRM) byte and an optional immediate. Each template carries the processor
// tier that introduced it, the data domain it operates on (integer registers
// or XMM scalar floats) and its operation class. A Catalog is the subset of
// the template table enabled for one problem, laid out as the frame templates
// (prologue and suffix) followed by the interior templates that mutation may
// draw from.
package catalog
