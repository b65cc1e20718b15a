// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

import "code.hybscloud.com/iox"

// ErrEmpty indicates that TryPop found no candidate to return.
//
// This is the *only* routine failure mode: every sampled inner queue
// reported the sentinel (or, with ScanIfEmpty off, the retry budget was
// exhausted). It does not guarantee the MultiQueue is globally empty
// unless ScanIfEmpty is enabled and the caller has established external
// quiescence (see Config.WithScanIfEmpty).
//
// ErrEmpty is a control flow signal, not a failure. Callers implementing
// "await" semantics should spin or sleep externally and retry.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency
// with code.hybscloud.com/lfq and the rest of the stack.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := q.TryPop(h)
//	    if err == nil {
//	        backoff.Reset()
//	        process(v)
//	        continue
//	    }
//	    if mq.IsEmpty(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    panic(err) // unreachable: TryPop has no other failure mode
//	}
var ErrEmpty = iox.ErrWouldBlock

// IsEmpty reports whether err is the "no candidate found" signal from
// TryPop. Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsEmpty(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrEmpty.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
