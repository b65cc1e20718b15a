// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package mq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the heaviest concurrent stress tests, which
// trigger false positives: the buffered PQ payload is guarded by the
// release store on innerPQ.locked, a different atomic variable, which
// the race detector cannot track as a happens-before edge.
const RaceEnabled = true
