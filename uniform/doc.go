// Package uniform provides uniformly distributed bounded random integers.
//
// Values are derived from a byte source using rejection sampling, so that
// every value in [0, upperBound) is equally likely. By default the
// process-wide CSPRNG of package rng is used as the byte source. Until the
// modules are started, and again after shutdown, the default source reads
// from the OS RNG, so it is always available.
package uniform
