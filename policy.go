// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

import "code.hybscloud.com/spin"

// maxStackCandidates bounds the stack-allocated candidate-index buffer;
// PopCandidates values above this (uncommon — the default is 2) fall
// back to a heap-allocated slice.
const maxStackCandidates = 8

// Push inserts (key, val) into one randomly chosen inner PQ: draw a
// uniform index, try to lock it, push under the lock, release. On lock
// contention, redraw and retry — the probability of repeatedly
// targeting a held queue is O(1/C), so retries redistribute load rather
// than converging on a hot queue.
//
// Push has no bounded-capacity failure mode: each inner PQ's heap grows
// as needed, unlike a fixed-size ring buffer. It always succeeds.
func (mq *MultiQueue[K, V]) Push(h *Handle, key K, val V) {
	v := Value[K, V]{Key: key, Val: val}
	sw := spin.Wait{}
	for {
		idx := h.rng.Uint64() & mq.mask
		pq := mq.inner[idx]
		if pq.tryLock() {
			pq.lockedPush(v)
			pq.unlock()
			return
		}
		sw.Once()
	}
}

// TryPop samples PopCandidates random inner PQs, operates on whichever
// currently has the smallest cached top key (best-of-k), and returns its
// extracted minimum. It returns (zero, ErrEmpty) once PopTries rounds
// have all sampled nothing but the sentinel (and, if ScanIfEmpty is
// disabled, no full scan rescues the call) — the only routine failure
// mode, matching spec's framing of "apparently empty" as a control-flow
// signal, not an error.
//
// Lock-acquisition failures and the post-lock staleness re-check do not
// consume a PopTries slot: they are transient contention, and retry
// immediately. Only a round where every sampled snapshot is the
// sentinel counts as a "try" — pop_tries measures apparent global
// emptiness, not scheduler noise.
func (mq *MultiQueue[K, V]) TryPop(h *Handle) (Value[K, V], error) {
	sw := spin.Wait{}
	for tries := 0; tries < mq.cfg.popTries; {
		best, bestKey, found := mq.sampleBest(h)
		if !found {
			tries++
			continue
		}

		pq := mq.inner[best]
		if !pq.tryLock() {
			sw.Once()
			continue
		}

		current := pq.topKeySnapshot()
		if current == mq.sentinel {
			// Drained by another goroutine before we locked it.
			pq.unlock()
			sw.Once()
			continue
		}
		if mq.cfg.compareStrict && current != bestKey {
			pq.unlock()
			sw.Once()
			continue
		}

		v, ok := pq.lockedTryPop(mq.sentinel)
		pq.unlock()
		if ok {
			return v, nil
		}
		sw.Once()
	}

	if mq.cfg.scanIfEmpty {
		if v, ok := mq.scanPop(); ok {
			return v, nil
		}
	}

	var zero Value[K, V]
	return zero, ErrEmpty
}

// sampleBest draws PopCandidates distinct random indices (without
// replacement — a repeated index would collapse best-of-k into
// best-of-(k-1)) and returns the one with the smallest snapshot, broken
// arbitrarily but deterministically by draw order on ties. found is
// false iff every sampled snapshot was the sentinel.
func (mq *MultiQueue[K, V]) sampleBest(h *Handle) (idx uint64, key K, found bool) {
	k := mq.cfg.popCandidates

	var stackBuf [maxStackCandidates]uint64
	var candidates []uint64
	if k <= maxStackCandidates {
		candidates = stackBuf[:k]
	} else {
		candidates = make([]uint64, k)
	}
	mq.drawCandidates(h, candidates)

	best := candidates[0]
	bestKey := mq.inner[best].topKeySnapshot()
	for i := 1; i < k; i++ {
		if k := mq.inner[candidates[i]].topKeySnapshot(); mq.less(k, bestKey) {
			best = candidates[i]
			bestKey = k
		}
	}
	if bestKey == mq.sentinel {
		return 0, bestKey, false
	}
	return best, bestKey, true
}

// drawCandidates fills out with len(out) distinct uniform indices in
// [0, N), drawn without replacement via reject-and-redraw.
func (mq *MultiQueue[K, V]) drawCandidates(h *Handle, out []uint64) {
	out[0] = h.rng.Uint64() & mq.mask
	for i := 1; i < len(out); i++ {
		for {
			idx := h.rng.Uint64() & mq.mask
			dup := false
			for j := 0; j < i; j++ {
				if out[j] == idx {
					dup = true
					break
				}
			}
			if !dup {
				out[i] = idx
				break
			}
		}
	}
}

// scanPop iterates every inner PQ in order, extracting from the first
// non-empty one it can lock. Used only once PopTries is exhausted and
// ScanIfEmpty is enabled, to guarantee TryPop returns a value whenever
// any inner PQ is non-empty.
func (mq *MultiQueue[K, V]) scanPop() (Value[K, V], bool) {
	for _, pq := range mq.inner {
		if !pq.tryLock() {
			continue
		}
		v, ok := pq.lockedTryPop(mq.sentinel)
		pq.unlock()
		if ok {
			return v, true
		}
	}
	var zero Value[K, V]
	return zero, false
}
