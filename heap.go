// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

// siftStrategy selects how pop() restores the heap property after
// moving the last element into the vacated root. Both produce a valid
// heap; fullDown is the default because it saves comparisons in the
// common case where the moved-in element is large.
type siftStrategy int

const (
	// fullDown walks the hole to a leaf always choosing the smallest
	// child, then sifts the displaced element back up from there.
	fullDown siftStrategy = iota
	// fullUp is the conventional sift-down: compare against the hole's
	// value at every level and stop as soon as no child is smaller.
	fullUp
)

// heap is a single-threaded implicit d-ary min-heap over Value[K, V],
// ordered by less. It is the innermost, un-guarded layer of an inner
// PQ — callers are responsible for any synchronization.
type heap[K comparable, V any] struct {
	items  []Value[K, V]
	degree int
	less   Less[K]
	sift   siftStrategy
}

func newHeap[K comparable, V any](degree int, less Less[K], sift siftStrategy) *heap[K, V] {
	if degree < 1 {
		panic("mq: heap degree must be >= 1")
	}
	return &heap[K, V]{degree: degree, less: less, sift: sift}
}

func (h *heap[K, V]) parent(i int) int {
	return (i - 1) / h.degree
}

func (h *heap[K, V]) firstChild(i int) int {
	return h.degree*i + 1
}

func (h *heap[K, V]) Len() int    { return len(h.items) }
func (h *heap[K, V]) Empty() bool { return len(h.items) == 0 }

func (h *heap[K, V]) Reserve(n int) {
	if cap(h.items) < n {
		grown := make([]Value[K, V], len(h.items), n)
		copy(grown, h.items)
		h.items = grown
	}
}

func (h *heap[K, V]) Clear() {
	h.items = h.items[:0]
}

// Top returns the minimum element. Precondition: !Empty().
func (h *heap[K, V]) Top() Value[K, V] {
	return h.items[0]
}

// Push inserts v, restoring the heap property via hole-based sift-up:
// walk the hole toward the root while the parent is strictly larger,
// then drop v into the final hole position. This halves the swap cost
// of a conventional sift-up that swaps at every step.
func (h *heap[K, V]) Push(v Value[K, V]) {
	h.items = append(h.items, v)
	i := len(h.items) - 1
	for i > 0 {
		p := h.parent(i)
		if !h.less(v.Key, h.items[p].Key) {
			break
		}
		h.items[i] = h.items[p]
		i = p
	}
	h.items[i] = v
}

// Pop removes and discards the minimum element.
// Precondition: !Empty().
func (h *heap[K, V]) Pop() {
	last := len(h.items) - 1
	moved := h.items[last]
	var zero Value[K, V]
	h.items[last] = zero
	h.items = h.items[:last]
	if last == 0 {
		return
	}
	switch h.sift {
	case fullUp:
		h.siftDownFullUp(0, moved)
	default:
		h.siftDownFullDown(0, moved)
	}
}

// ExtractTop copies out the minimum element, then pops it.
// Precondition: !Empty().
func (h *heap[K, V]) ExtractTop() Value[K, V] {
	top := h.items[0]
	h.Pop()
	return top
}

// minChild returns the index of the strictly smallest child of the
// node at index, scanning only the children that actually exist (the
// last parent in the heap may have fewer than degree children).
func (h *heap[K, V]) minChild(index int) int {
	first := h.firstChild(index)
	n := len(h.items)
	last := first + h.degree
	if last > n {
		last = n
	}
	best := first
	for i := first + 1; i < last; i++ {
		if h.less(h.items[i].Key, h.items[best].Key) {
			best = i
		}
	}
	return best
}

// siftDownFullDown walks the hole all the way to a leaf, always
// descending into the smallest child, then sifts moved back up from
// the leaf. Fewer comparisons than fullUp when moved ends up near the
// bottom, which is the common case right after a pop.
func (h *heap[K, V]) siftDownFullDown(hole int, moved Value[K, V]) {
	n := len(h.items)
	for h.firstChild(hole) < n {
		child := h.minChild(hole)
		h.items[hole] = h.items[child]
		hole = child
	}
	i := hole
	for i > 0 {
		p := h.parent(i)
		if !h.less(moved.Key, h.items[p].Key) {
			break
		}
		h.items[i] = h.items[p]
		i = p
	}
	h.items[i] = moved
}

// siftDownFullUp is the conventional sift-down: at each level, compare
// moved against the smallest child and stop as soon as moved is no
// larger than it.
func (h *heap[K, V]) siftDownFullUp(hole int, moved Value[K, V]) {
	n := len(h.items)
	for h.firstChild(hole) < n {
		child := h.minChild(hole)
		if !h.less(h.items[child].Key, moved.Key) {
			break
		}
		h.items[hole] = h.items[child]
		hole = child
	}
	h.items[hole] = moved
}

// isHeap reports whether the heap property holds for every non-root
// index. Used by tests; not part of the hot path.
func (h *heap[K, V]) isHeap() bool {
	for i := 1; i < len(h.items); i++ {
		p := h.parent(i)
		if h.less(h.items[i].Key, h.items[p].Key) {
			return false
		}
	}
	return true
}
