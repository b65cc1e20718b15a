// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mq

import "testing"

const sentinelKey = 1 << 30

func TestInnerPQSentinelWhenEmpty(t *testing.T) {
	q := newInnerPQ[int, string](4, 4, 4, intLess, fullDown, sentinelKey)
	if got := q.topKeySnapshot(); got != sentinelKey {
		t.Fatalf("topKeySnapshot on empty: got %d, want sentinel %d", got, sentinelKey)
	}
}

func TestInnerPQLockedPushUpdatesSnapshot(t *testing.T) {
	q := newInnerPQ[int, string](4, 4, 4, intLess, fullDown, sentinelKey)
	if !q.tryLock() {
		t.Fatal("tryLock on unlocked queue must succeed")
	}
	q.lockedPush(Value[int, string]{Key: 5, Val: "a"})
	if got := q.topKeySnapshot(); got != 5 {
		t.Fatalf("topKeySnapshot: got %d, want 5", got)
	}
	q.lockedPush(Value[int, string]{Key: 2, Val: "b"})
	if got := q.topKeySnapshot(); got != 2 {
		t.Fatalf("topKeySnapshot after smaller push: got %d, want 2", got)
	}
	q.unlock()
}

func TestInnerPQLockedTryPopRestoresSentinel(t *testing.T) {
	q := newInnerPQ[int, string](4, 4, 4, intLess, fullDown, sentinelKey)
	q.tryLock()
	q.lockedPush(Value[int, string]{Key: 3, Val: "x"})
	v, ok := q.lockedTryPop(sentinelKey)
	q.unlock()
	if !ok {
		t.Fatal("lockedTryPop on non-empty queue must succeed")
	}
	if v.Key != 3 || v.Val != "x" {
		t.Fatalf("lockedTryPop: got %+v, want Key=3 Val=x", v)
	}
	if got := q.topKeySnapshot(); got != sentinelKey {
		t.Fatalf("topKeySnapshot after draining last element: got %d, want sentinel", got)
	}

	q.tryLock()
	_, ok = q.lockedTryPop(sentinelKey)
	q.unlock()
	if ok {
		t.Fatal("lockedTryPop on empty queue must report ok=false")
	}
}

func TestInnerPQTryLockMutualExclusion(t *testing.T) {
	q := newInnerPQ[int, string](4, 4, 4, intLess, fullDown, sentinelKey)
	if !q.tryLock() {
		t.Fatal("first tryLock must succeed")
	}
	if q.tryLock() {
		t.Fatal("second tryLock while held must fail")
	}
	q.unlock()
	if !q.tryLock() {
		t.Fatal("tryLock after unlock must succeed")
	}
	q.unlock()
}
