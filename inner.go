// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// cachePad is two cache lines (128 bytes), not one: empirically, a
// single 64-byte pad lets an adjacent-line hardware prefetcher still
// drag a neighbor's hot cache line in behind the one it was asked for,
// reintroducing false sharing between adjacent inner PQs.
type cachePad [128]byte

// innerPQ is one of the MultiQueue's N = C·P independently lockable
// sequential priority queues: a single-word CAS lock guarding a
// bufferedPQ, plus a lock-free snapshot of the guarded PQ's current
// minimum key.
//
// locked uses the same CAS-spinlock idiom code.hybscloud.com/lfq's
// MPMCSeq uses for its tail/head index counters (CompareAndSwapAcqRel
// to claim, StoreRelease to release), here guarding a single bit
// instead of a monotonic counter.
//
// topKey cannot live in an atomix type: atomix's surface is concrete
// fixed-width types (Bool, Int32, Int64, Uint64, Uint128, Uintptr), none
// of which can hold an arbitrary comparable K. atomic.Pointer[K] is the
// standard library's generic lock-free box and is used for exactly
// this one field.
type innerPQ[K comparable, V any] struct {
	_      cachePad
	locked atomix.Uint64 // 0 = unlocked, 1 = locked
	_      cachePad
	topKey atomic.Pointer[K]
	_      cachePad
	pq     *bufferedPQ[K, V]
	_      cachePad
}

func newInnerPQ[K comparable, V any](degree, insertionCap, deletionCap int, less Less[K], sift siftStrategy, sentinel K) *innerPQ[K, V] {
	q := &innerPQ[K, V]{
		pq: newBufferedPQ[K, V](degree, insertionCap, deletionCap, less, sift),
	}
	q.topKey.Store(&sentinel)
	return q
}

// tryLock attempts to claim the inner PQ's lock. Never blocks.
func (q *innerPQ[K, V]) tryLock() bool {
	return q.locked.CompareAndSwapAcqRel(0, 1)
}

// unlock releases the lock. Precondition: caller holds it.
func (q *innerPQ[K, V]) unlock() {
	q.locked.StoreRelease(0)
}

// topKeySnapshot reads the cached top key without holding the lock. May
// be stale: a concurrent lock holder may be mid-operation. Safe to call
// from any goroutine at any time.
func (q *innerPQ[K, V]) topKeySnapshot() K {
	return *q.topKey.Load()
}

// lockedPush inserts v and refreshes the top-key snapshot.
// Precondition: caller holds the lock.
func (q *innerPQ[K, V]) lockedPush(v Value[K, V]) {
	q.pq.Push(v)
	top := q.pq.Top().Key
	q.topKey.Store(&top)
}

// lockedTryPop extracts and returns the current minimum, refreshing the
// top-key snapshot to the new minimum or to sentinel if now empty.
// Precondition: caller holds the lock. ok is false if the guarded PQ was
// already empty.
func (q *innerPQ[K, V]) lockedTryPop(sentinel K) (v Value[K, V], ok bool) {
	if q.pq.Empty() {
		return v, false
	}
	v = q.pq.Top()
	q.pq.Pop()
	if q.pq.Empty() {
		q.topKey.Store(&sentinel)
	} else {
		top := q.pq.Top().Key
		q.topKey.Store(&top)
	}
	return v, true
}
