// Package rng provides the process-wide CSPRNG.
//
// CSPRNG used is fortuna: github.com/seehuhn/fortuna
// The CSPRNG is seeded and periodically reseeded from the OS RNG.
// Callers may stir the generator or mix in their own data.
package rng
