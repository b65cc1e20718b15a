// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

// SentinelPolicy reserves a key value to mean "inner PQ empty" in the
// lock-free top-key cache. Two construction policies are supported; both
// produce a SentinelPolicy, so a MultiQueue instantiation only ever
// needs to hold the reserved value and a flag for whether the working
// comparator must be wrapped to give it correct ordering.
type SentinelPolicy[K comparable] struct {
	value   K
	wrapped bool
}

// Implicit reserves maxKey, a natural extreme of K under the caller's
// comparator (e.g. math.MaxInt64 for an ascending int comparator), as
// the empty-queue sentinel. The comparator already orders maxKey last,
// so no wrapping is needed; the caller must guarantee no live key ever
// equals maxKey.
func Implicit[K comparable](maxKey K) SentinelPolicy[K] {
	return SentinelPolicy[K]{value: maxKey}
}

// DefaultConstructed reserves the zero value of K as the empty-queue
// sentinel. Because a zero key may otherwise compare as a perfectly
// ordinary live key under the caller's comparator, the working
// comparator is wrapped (see wrapSentinel) so the sentinel always sorts
// as strictly worse than every live key.
func DefaultConstructed[K comparable]() SentinelPolicy[K] {
	var zero K
	return SentinelPolicy[K]{value: zero, wrapped: true}
}

// wrapSentinel folds sentinel discipline into less, producing the
// comparator the rest of the package uses internally. For an Implicit
// policy this is a pass-through: the caller's comparator is already
// consistent with the reserved extreme. For a DefaultConstructed policy,
// the sentinel is forced to compare as worse than any non-sentinel key
// and equal to itself, so a sentinel-valued inner PQ never wins a
// best-of-k snapshot comparison.
func wrapSentinel[K comparable](policy SentinelPolicy[K], less Less[K]) Less[K] {
	if !policy.wrapped {
		return less
	}
	sentinel := policy.value
	return func(a, b K) bool {
		aSentinel := a == sentinel
		bSentinel := b == sentinel
		switch {
		case aSentinel && bSentinel:
			return false
		case aSentinel:
			return false
		case bSentinel:
			return true
		default:
			return less(a, b)
		}
	}
}
