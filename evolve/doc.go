// Package evolve drives a population of genotypes toward a problem.
//
// Each generation is scored, the best PopKeep are ranked to the front and
// the rest of the population is bred from them. A run that stops improving
// for Deadend generations starts over from a fresh population while keeping
// its best genotype as the bar to beat.
package evolve
