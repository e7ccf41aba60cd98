// Package harness runs compiled genotypes against the test vectors of a
// problem and scores them.
//
// The Native scorer calls candidates in process through one shared code
// buffer. The Isolated scorer hands each candidate to a worker subprocess
// and treats a late reply, or a dead worker, as the worst score.
package harness
