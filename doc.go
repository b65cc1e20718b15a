// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mq provides a relaxed concurrent priority queue.
//
// A MultiQueue shards priority into N = C·P independently lockable
// sequential priority queues ("inner PQs"), where P is the number of
// participating threads. Push places a value into one randomly chosen
// inner PQ; TryPop samples k random inner PQs (best-of-k) and extracts
// from whichever currently looks smallest. The result is one of the
// currently small elements, not necessarily the global minimum — this
// relaxation is what lets Push and TryPop scale across cores instead of
// serializing on a single heap.
//
// # Quick Start
//
//	cfg := mq.NewConfig[int, string](
//	    func(a, b int) bool { return a < b },
//	    mq.Implicit(math.MaxInt),
//	)
//	q := mq.New[int, string](runtime.GOMAXPROCS(0), cfg)
//
//	h := q.GetHandle()
//	q.Push(h, 5, "hello")
//	q.Push(h, 1, "world")
//
//	v, err := q.TryPop(h)
//	if mq.IsEmpty(err) {
//	    // apparently nothing available right now
//	}
//
// # Handles
//
// Every goroutine that calls Push or TryPop needs its own [Handle],
// obtained once via GetHandle and reused for the goroutine's lifetime. A
// Handle owns a private PRNG stream; sharing one across goroutines is a
// data race.
//
// # Common Patterns
//
// Worker pool draining a shared task queue:
//
//	q := mq.New[int, Job](numWorkers, mq.NewConfig[int, Job](less, sentinel))
//
//	for range numWorkers {
//	    go func() {
//	        h := q.GetHandle()
//	        for {
//	            job, err := q.TryPop(h)
//	            if mq.IsEmpty(err) {
//	                continue
//	            }
//	            job.Val.Run()
//	        }
//	    }()
//	}
//
//	// Submit from anywhere with its own handle
//	submitter := q.GetHandle()
//	q.Push(submitter, priority, job)
//
// # Sentinel Policies
//
// MultiQueue needs a designated "nothing here" key to mark an empty
// inner PQ's cached top and to signal an empty best-of-k sample. Two
// policies are available:
//
//	mq.Implicit(maxKey)   // caller supplies a real key that never occurs in data
//	mq.DefaultConstructed[K]() // zero value of K, with comparisons against
//	                           // it wrapped so it always sorts last
//
// Implicit is cheaper (no wrapping on every comparison) and should be
// preferred whenever the key space has a natural extreme value (e.g.
// math.MaxInt, or a timestamp far in the future).
//
// # Configuration
//
// [Config] is built fluently from [NewConfig] and tunes both the
// structural shape of each inner PQ and the operation policy:
//
//	cfg := mq.NewConfig[int, Job](less, sentinel).
//	    WithC(4).                     // N = C * numThreads
//	    WithPopCandidates(2).         // best-of-k sample size
//	    WithPopTries(8).              // retries before giving up
//	    WithScanIfEmpty(true).        // full scan fallback
//	    WithHeapDegree(8).            // d-ary heap arity
//	    WithInsertionBufferSize(16).
//	    WithDeletionBufferSize(16).
//	    WithCompareStrict(true)
//
// Defaults match the values recommended by the algorithm's own
// analysis: C=4, PopCandidates=2, PopTries=1, HeapDegree=8,
// InsertionBufferSize=16, DeletionBufferSize=16.
//
// # Error Handling
//
// TryPop returns [iox.ErrWouldBlock] (aliased as [ErrEmpty]) when nothing
// could be found across the retry budget and, if enabled, the
// full-scan fallback. This error is sourced from
// [code.hybscloud.com/iox] for ecosystem consistency with
// code.hybscloud.com/lfq's own queues.
//
//	v, err := q.TryPop(h)
//	if err != nil {
//	    if mq.IsEmpty(err) {
//	        continue // nothing available right now, not a failure
//	    }
//	    return err
//	}
//
// For semantic error classification (delegates to iox):
//
//	mq.IsEmpty(err)      // true if apparently empty
//	mq.IsSemantic(err)   // true if control flow signal
//	mq.IsNonFailure(err) // true if nil or ErrEmpty
//
// Push never fails: every inner PQ's heap grows as needed, so there is
// no bounded-capacity rejection the way a fixed-size ring buffer has.
//
// # Length
//
// MultiQueue does not provide a Len method: an accurate count would
// require summing N independently locked compartments under
// cross-core synchronization on every call, defeating the point of
// sharding priority in the first place. Track counts in application
// logic if needed.
//
// # Thread Safety
//
// Push and TryPop are safe to call concurrently from any number of
// goroutines, each with its own Handle. The only restriction is that a
// single Handle must not be shared between goroutines.
//
// # Race Detection
//
// Each inner PQ's payload (the bufferedPQ and its heap) is guarded by a
// single-word CAS spinlock rather than sync.Mutex, matching the
// CAS-spinlock idiom code.hybscloud.com/lfq's sequence-based queues
// use for their index counters. Go's race detector tracks explicit
// synchronization primitives (mutex, channels, atomic operations on
// the SAME variable the guarded data is read through) but cannot
// always follow happens-before relationships established by a CAS on
// one variable guarding access to separate non-atomic fields. The
// concurrent stress tests skip themselves when RaceEnabled is true (set
// by the race build tag) for this reason; algorithm correctness does not
// depend on the race detector observing it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions
// during spin-retry backoff, and the standard library's
// math/rand/v2 PCG generator for per-handle randomized index draws.
package mq
