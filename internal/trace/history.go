/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package trace

// history keeps pre-stroke surface snapshots with a byte-budget cap. When the
// budget is exceeded the oldest snapshots are pruned, so undo depth degrades
// gracefully on large surfaces instead of growing without bound.
type history struct {
	snaps      [][]byte
	totalBytes int
	maxBytes   int
}

func newHistory(maxBytes int) *history {
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &history{maxBytes: maxBytes}
}

func (h *history) push(snap []byte) {
	h.snaps = append(h.snaps, snap)
	h.totalBytes += len(snap)
	for h.totalBytes > h.maxBytes && len(h.snaps) > 1 {
		h.totalBytes -= len(h.snaps[0])
		h.snaps = h.snaps[1:]
	}
}

func (h *history) pop() ([]byte, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	s := h.snaps[len(h.snaps)-1]
	h.snaps = h.snaps[:len(h.snaps)-1]
	h.totalBytes -= len(s)
	return s, true
}

func (h *history) clear() {
	h.snaps = nil
	h.totalBytes = 0
}

func (h *history) depth() int { return len(h.snaps) }
