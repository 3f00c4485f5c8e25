// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blocksort

// mergeStrategy is how a combine pass moves items: by swapping with a
// scrolling buffer inside the sequence, by writing over a buffer saved in the
// external buffer, or by rotations without any buffer. It is chosen once per
// sort call.
type mergeStrategy interface {
	// begin prepares the blockLen items before start as merge buffer.
	begin(start, blockLen int)
	// smartMerge merges a leftover run with the next block of rightLen items.
	smartMerge(start, leftLen int, leftOrigin subarray, rightLen, bufferOffset int) blockRun
	// skip moves a run that needs no merging in front of the buffer.
	skip(start, length, bufferOffset int)
	// merge merges two plain sorted runs.
	merge(start, leftLen, rightLen, bufferOffset int)
	// finish puts the buffer back in front of [start, start+length).
	finish(start, length, blockLen int)
}

type inPlaceMerge[E any] struct{ s *sorter[E] }

func (inPlaceMerge[E]) begin(int, int) {}

func (m inPlaceMerge[E]) smartMerge(start, leftLen int, leftOrigin subarray, rightLen, bufferOffset int) blockRun {
	return m.s.smartMerge(start, leftLen, leftOrigin, rightLen, bufferOffset)
}

func (m inPlaceMerge[E]) skip(start, length, bufferOffset int) {
	m.s.blockSwap(start-bufferOffset, start, length)
}

func (m inPlaceMerge[E]) merge(start, leftLen, rightLen, bufferOffset int) {
	m.s.mergeForwards(start, leftLen, rightLen, bufferOffset)
}

func (m inPlaceMerge[E]) finish(start, length, blockLen int) {
	m.s.inPlaceBufferReset(start, length, blockLen)
}

type outOfPlaceMerge[E any] struct{ s *sorter[E] }

func (m outOfPlaceMerge[E]) begin(start, blockLen int) {
	copy(m.s.ext[:blockLen], m.s.data[start-blockLen:start])
}

func (m outOfPlaceMerge[E]) smartMerge(start, leftLen int, leftOrigin subarray, rightLen, bufferOffset int) blockRun {
	return m.s.smartMergeOutOfPlace(start, leftLen, leftOrigin, rightLen, bufferOffset)
}

func (m outOfPlaceMerge[E]) skip(start, length, bufferOffset int) {
	copy(m.s.data[start-bufferOffset:], m.s.data[start:start+length])
}

func (m outOfPlaceMerge[E]) merge(start, leftLen, rightLen, bufferOffset int) {
	m.s.mergeOutOfPlace(start, leftLen, rightLen, bufferOffset)
}

func (m outOfPlaceMerge[E]) finish(start, length, blockLen int) {
	m.s.outOfPlaceBufferReset(start, length, blockLen)
	copy(m.s.data[start-blockLen:start], m.s.ext[:blockLen])
}

// lazyMerge never moves a run ahead of a buffer, every block stays where the
// selection sort put it.
type lazyMerge[E any] struct{ s *sorter[E] }

func (lazyMerge[E]) begin(int, int) {}

func (m lazyMerge[E]) smartMerge(start, leftLen int, leftOrigin subarray, rightLen, _ int) blockRun {
	return m.s.smartLazyMerge(start, leftLen, leftOrigin, rightLen)
}

func (lazyMerge[E]) skip(int, int, int) {}

func (m lazyMerge[E]) merge(start, leftLen, rightLen, _ int) {
	m.s.lazyMerge(start, leftLen, rightLen)
}

func (lazyMerge[E]) finish(int, int, int) {}
