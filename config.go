// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

// Config configures MultiQueue construction and operation policy.
//
// Config is built with a fluent Builder-style API, mirroring
// code.hybscloud.com/lfq's Builder/Options: construct with NewConfig,
// chain With... setters, and pass the result to New (the package-level
// MultiQueue constructor). Invalid settings panic at construction time,
// the same as lfq.New(capacity) panics on capacity < 2.
type Config[K comparable, V any] struct {
	less     Less[K]
	sentinel SentinelPolicy[K]

	c                   int
	popCandidates       int
	popTries            int
	scanIfEmpty         bool
	heapDegree          int
	insertionBufferSize int
	deletionBufferSize  int
	compareStrict       bool
	seed                uint64
	sift                siftStrategy
}

// NewConfig creates a Config with the package defaults (C=4,
// PopCandidates=2, PopTries=1, ScanIfEmpty=true, HeapDegree=8,
// InsertionBufferSize=16, DeletionBufferSize=16, CompareStrict=true,
// Seed=1), given the required comparator and sentinel policy.
//
// Example:
//
//	cfg := mq.NewConfig[int, string](
//	    func(a, b int) bool { return a < b },
//	    mq.Implicit(math.MaxInt),
//	)
//	q := mq.New[int, string](numThreads, cfg)
func NewConfig[K comparable, V any](less Less[K], sentinel SentinelPolicy[K]) Config[K, V] {
	return Config[K, V]{
		less:                less,
		sentinel:            sentinel,
		c:                   4,
		popCandidates:       2,
		popTries:            1,
		scanIfEmpty:         true,
		heapDegree:          8,
		insertionBufferSize: 16,
		deletionBufferSize:  16,
		compareStrict:       true,
		seed:                1,
		sift:                fullDown,
	}
}

// WithC sets the per-thread inner-PQ factor: N = C·P. Panics if c < 1.
func (cfg Config[K, V]) WithC(c int) Config[K, V] {
	if c < 1 {
		panic("mq: C must be >= 1")
	}
	cfg.c = c
	return cfg
}

// WithPopCandidates sets k, the number of random inner PQs sampled per
// TryPop attempt (best-of-k). Panics if k < 1.
func (cfg Config[K, V]) WithPopCandidates(k int) Config[K, V] {
	if k < 1 {
		panic("mq: PopCandidates must be >= 1")
	}
	cfg.popCandidates = k
	return cfg
}

// WithPopTries sets the retry budget per TryPop before giving up (absent
// a scan-if-empty fallback). Panics if tries < 1.
func (cfg Config[K, V]) WithPopTries(tries int) Config[K, V] {
	if tries < 1 {
		panic("mq: PopTries must be >= 1")
	}
	cfg.popTries = tries
	return cfg
}

// WithScanIfEmpty sets whether TryPop falls back to a full linear scan
// of every inner PQ once the retry budget is exhausted, guaranteeing a
// value is returned whenever any inner PQ is non-empty.
func (cfg Config[K, V]) WithScanIfEmpty(enabled bool) Config[K, V] {
	cfg.scanIfEmpty = enabled
	return cfg
}

// WithHeapDegree sets the d-ary heap arity. Panics if degree < 1.
func (cfg Config[K, V]) WithHeapDegree(degree int) Config[K, V] {
	if degree < 1 {
		panic("mq: HeapDegree must be >= 1")
	}
	cfg.heapDegree = degree
	return cfg
}

// WithInsertionBufferSize sets BI, the insertion buffer capacity.
// Panics if size < 1.
func (cfg Config[K, V]) WithInsertionBufferSize(size int) Config[K, V] {
	if size < 1 {
		panic("mq: InsertionBufferSize must be >= 1")
	}
	cfg.insertionBufferSize = size
	return cfg
}

// WithDeletionBufferSize sets BD, the deletion buffer capacity.
// Panics if size < 1.
func (cfg Config[K, V]) WithDeletionBufferSize(size int) Config[K, V] {
	if size < 1 {
		panic("mq: DeletionBufferSize must be >= 1")
	}
	cfg.deletionBufferSize = size
	return cfg
}

// WithCompareStrict sets whether, after acquiring a candidate's lock,
// TryPop re-checks the locked top key against the pre-lock snapshot and
// retries on mismatch (true), or proceeds regardless (false).
func (cfg Config[K, V]) WithCompareStrict(strict bool) Config[K, V] {
	cfg.compareStrict = strict
	return cfg
}

// WithSeed sets the PRNG seed shared by every handle's per-handle PCG
// stream. Identical seeds across runs with the same thread count give
// the handle with a given id the same index sequence.
func (cfg Config[K, V]) WithSeed(seed uint64) Config[K, V] {
	cfg.seed = seed
	return cfg
}

// WithFullUpSift selects the conventional sift-down strategy (compare
// against the hole's value at every level) instead of the default
// full-down strategy (walk to a leaf, then sift up). Both produce valid
// heaps; full-down does fewer comparisons in the common post-pop case.
func (cfg Config[K, V]) WithFullUpSift() Config[K, V] {
	cfg.sift = fullUp
	return cfg
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
