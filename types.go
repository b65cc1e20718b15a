// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

import "math/rand/v2"

// Value is an element stored in the MultiQueue: a key ordered by the
// configured comparator, and an arbitrary payload carried alongside it.
// Values are stored and returned by copy.
type Value[K comparable, V any] struct {
	Key K
	Val V
}

// Less reports whether a sorts strictly before b (a ≺ b).
//
// Less must define a strict weak ordering over K. It is supplied by the
// caller at Config construction and is never inferred from K's built-in
// comparison operators, so MultiQueue works over arbitrary key types
// (not just cmp.Ordered ones).
type Less[K any] func(a, b K) bool

// Handle is per-goroutine access state: a seeded PRNG and an id unique
// within its MultiQueue. Handles are not thread-safe and must not be shared across
// goroutines — exactly one goroutine owns a Handle at a time, for its
// entire lifetime.
//
// Obtain a Handle with [MultiQueue.GetHandle]; keep it for the life of
// the goroutine that will call Push/TryPop.
type Handle struct {
	id  uint64
	rng *rand.Rand
}

// newHandle seeds a per-handle PCG PRNG from the shared config seed and
// this handle's id, so identical (seed, id) pairs reproduce identical
// PRNG streams across runs.
func newHandle(id uint64, seed uint64) *Handle {
	return &Handle{
		id:  id,
		rng: rand.New(rand.NewPCG(seed, id)),
	}
}
