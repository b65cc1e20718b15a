// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

// bufferedPQ amortizes heap operations behind two small compartments:
// an unordered insertion buffer absorbing pushes, and a sorted deletion
// buffer serving pops without touching the heap.
//
// Deletion buffer convention: back is min. deletionBuffer[len-1] is the
// current top (the smallest buffered key); deletionBuffer[0] is the
// largest of the buffered smalls. This matches the original
// buffered_pq.hpp's own top()/push(), not the opposite convention some
// of its near-duplicate headers use.
//
// Invariant B1: every element of deletionBuffer is <= every element of
// insertionBuffer and heap. Invariant B2: Empty() iff deletionBuffer is
// empty.
type bufferedPQ[K comparable, V any] struct {
	heap            *heap[K, V]
	insertionBuffer []Value[K, V]
	deletionBuffer  []Value[K, V]
	insertionCap    int
	deletionCap     int
	less            Less[K]
}

func newBufferedPQ[K comparable, V any](degree, insertionCap, deletionCap int, less Less[K], sift siftStrategy) *bufferedPQ[K, V] {
	if insertionCap < 1 {
		panic("mq: insertion buffer size must be >= 1")
	}
	if deletionCap < 1 {
		panic("mq: deletion buffer size must be >= 1")
	}
	return &bufferedPQ[K, V]{
		heap:            newHeap[K, V](degree, less, sift),
		insertionBuffer: make([]Value[K, V], 0, insertionCap),
		deletionBuffer:  make([]Value[K, V], 0, deletionCap),
		insertionCap:    insertionCap,
		deletionCap:     deletionCap,
		less:            less,
	}
}

func (b *bufferedPQ[K, V]) Empty() bool {
	return len(b.deletionBuffer) == 0
}

func (b *bufferedPQ[K, V]) Size() int {
	return len(b.insertionBuffer) + len(b.deletionBuffer) + b.heap.Len()
}

// Top returns the current minimum. Precondition: !Empty().
func (b *bufferedPQ[K, V]) Top() Value[K, V] {
	return b.deletionBuffer[len(b.deletionBuffer)-1]
}

// Pop removes the current minimum, refilling the deletion buffer from
// the heap (via the insertion buffer) if that empties it.
func (b *bufferedPQ[K, V]) Pop() {
	b.deletionBuffer = b.deletionBuffer[:len(b.deletionBuffer)-1]
	if len(b.deletionBuffer) == 0 {
		b.refillDeletionBuffer()
	}
}

// Push inserts v, keeping B1/B2. Case 1: empty, v becomes the sole
// deletion-buffer element. Case 2: v belongs in the deletion buffer
// (strictly better than its current worst); insert in sorted position,
// falling through the displaced max into the insertion buffer if the
// deletion buffer was already full. Case 3: v is no better than
// everything buffered for deletion; goes to the insertion buffer,
// flushing it to the heap first if full.
func (b *bufferedPQ[K, V]) Push(v Value[K, V]) {
	if b.Empty() {
		b.deletionBuffer = append(b.deletionBuffer, v)
		return
	}

	worst := b.deletionBuffer[0]
	if b.less(v.Key, worst.Key) {
		if len(b.deletionBuffer) != b.deletionCap {
			b.insertSorted(v)
			return
		}
		// Deletion buffer full: v displaces the worst buffered element,
		// which falls through to the insertion buffer instead. Drop
		// index 0 (the old worst) and re-insert v among what remains.
		displaced := worst
		copy(b.deletionBuffer[0:len(b.deletionBuffer)-1], b.deletionBuffer[1:])
		b.deletionBuffer = b.deletionBuffer[:len(b.deletionBuffer)-1]
		b.insertSorted(v)
		v = displaced
	}

	b.insertInsertion(v)
}

// insertSorted places v into its sorted position in a deletion buffer
// with room to grow. The buffer is kept in descending order (index 0
// worst/largest, last index best/smallest): v is appended, then bubbled
// left past every element smaller than it.
func (b *bufferedPQ[K, V]) insertSorted(v Value[K, V]) {
	b.deletionBuffer = append(b.deletionBuffer, v)
	i := len(b.deletionBuffer) - 1
	for i > 0 && b.less(b.deletionBuffer[i-1].Key, v.Key) {
		b.deletionBuffer[i] = b.deletionBuffer[i-1]
		i--
	}
	b.deletionBuffer[i] = v
}

func (b *bufferedPQ[K, V]) insertInsertion(v Value[K, V]) {
	if len(b.insertionBuffer) == b.insertionCap {
		b.flushInsertionBuffer()
	}
	b.insertionBuffer = append(b.insertionBuffer, v)
}

func (b *bufferedPQ[K, V]) flushInsertionBuffer() {
	for _, v := range b.insertionBuffer {
		b.heap.Push(v)
	}
	b.insertionBuffer = b.insertionBuffer[:0]
}

// refillDeletionBuffer flushes the insertion buffer into the heap, then
// repeatedly extracts the heap's minimum into the deletion buffer until
// it holds min(deletionCap, heap.Len()) elements in sorted (back-is-min)
// order.
func (b *bufferedPQ[K, V]) refillDeletionBuffer() {
	b.flushInsertionBuffer()
	n := b.deletionCap
	if b.heap.Len() < n {
		n = b.heap.Len()
	}
	b.deletionBuffer = b.deletionBuffer[:n]
	for i := n - 1; i >= 0; i-- {
		b.deletionBuffer[i] = b.heap.ExtractTop()
	}
}
