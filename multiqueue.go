// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

import "code.hybscloud.com/atomix"

// MultiQueue is a relaxed concurrent priority queue: a fixed-size array
// of N = C·P independently lockable sequential priority queues ("inner
// PQs"). Push places a value into one random inner PQ; TryPop samples k
// random inner PQs and extracts from whichever currently looks smallest.
// Extractions return one of the currently small elements, not
// necessarily the global minimum — this trades strict ordering for
// throughput by eliminating the single point of contention a strict
// concurrent heap suffers under.
//
// N is constructed once from numThreads (fixed for the life of the
// MultiQueue) and cfg.C, then rounded up to a power of two so the
// operation policy can mask a PRNG draw (rng & (N-1)) instead of taking
// a general modulo.
//
// Length is intentionally not provided: an accurate count would require
// summing N independently-locked compartments under cross-core
// synchronization on every call, which defeats the point of sharding in
// the first place. Track counts in application logic if needed.
type MultiQueue[K comparable, V any] struct {
	inner        []*innerPQ[K, V]
	mask         uint64
	less         Less[K]
	sentinel     K
	cfg          Config[K, V]
	nextHandleID atomix.Uint64
}

// New constructs a MultiQueue sized for numThreads concurrent callers.
// Allocates N = roundToPow2(cfg.C * numThreads) inner PQs, each
// initialized to empty with the sentinel top-key and unlocked. Panics if
// numThreads < 1.
func New[K comparable, V any](numThreads int, cfg Config[K, V]) *MultiQueue[K, V] {
	if numThreads < 1 {
		panic("mq: numThreads must be >= 1")
	}
	n := roundToPow2(cfg.c * numThreads)
	if cfg.popCandidates > n {
		panic("mq: PopCandidates must be <= C*numThreads rounded up to a power of two")
	}

	wrapped := wrapSentinel(cfg.sentinel, cfg.less)

	mq := &MultiQueue[K, V]{
		inner:    make([]*innerPQ[K, V], n),
		mask:     uint64(n - 1),
		less:     wrapped,
		sentinel: cfg.sentinel.value,
		cfg:      cfg,
	}
	for i := range mq.inner {
		mq.inner[i] = newInnerPQ[K, V](cfg.heapDegree, cfg.insertionBufferSize, cfg.deletionBufferSize, wrapped, cfg.sift, mq.sentinel)
	}
	return mq
}

// GetHandle creates a new per-goroutine Handle: a monotonically
// increasing id (from this MultiQueue's own handle counter, matching
// code.hybscloud.com/lfq's own FAA-based id counters) and a PRNG seeded
// from (cfg.Seed, id). The returned Handle must be used by exactly one
// goroutine for its entire lifetime.
func (mq *MultiQueue[K, V]) GetHandle() *Handle {
	id := mq.nextHandleID.AddAcqRel(1) - 1
	return newHandle(id, mq.cfg.seed)
}

// N returns the number of inner PQs (C·P rounded up to a power of two).
func (mq *MultiQueue[K, V]) N() int {
	return len(mq.inner)
}
