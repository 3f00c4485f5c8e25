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

import "github.com/pingcap/blocksort/pkg/util/mathutil"

// pairwiseSwaps sorts every pair of [start, start+length) and moves it two
// places to the left, into the first two buffer slots; the buffer items it
// displaces end up at the right.
func (s *sorter[E]) pairwiseSwaps(start, length int) {
	index := 1
	for ; index < length; index += 2 {
		left := start + index - 1
		right := start + index
		if s.cmp(s.data[left], s.data[right]) > 0 {
			s.swap(left-2, right)
			s.swap(right-2, left)
		} else {
			s.swap(left-2, left)
			s.swap(right-2, right)
		}
	}
	if left := start + index - 1; left < start+length {
		s.swap(left-2, left)
	}
}

// pairwiseWrites is pairwiseSwaps for a saved buffer.
func (s *sorter[E]) pairwiseWrites(start, length int) {
	index := 1
	for ; index < length; index += 2 {
		left := start + index - 1
		right := start + index
		if s.cmp(s.data[left], s.data[right]) > 0 {
			s.data[left-2], s.data[right-2] = s.data[right], s.data[left]
		} else {
			s.data[left-2], s.data[right-2] = s.data[left], s.data[right]
		}
	}
	if left := start + index - 1; left < start+length {
		s.data[left-2] = s.data[left]
	}
}

// buildInPlace doubles sorted runs of currentLen items up to bufferLen with
// forward merges, each level shifting the data left by the run length. The
// last level merges backwards so that the buffer ends up in front again.
func (s *sorter[E]) buildInPlace(start, length, currentLen, bufferLen int) {
	for mergeLen := currentLen; mergeLen < bufferLen; mergeLen *= 2 {
		fullMerge := 2 * mergeLen
		mergeEnd := start + length - fullMerge
		bufferOffset := mergeLen

		mergeIndex := start
		for ; mergeIndex <= mergeEnd; mergeIndex += fullMerge {
			s.mergeForwards(mergeIndex, mergeLen, mergeLen, bufferOffset)
		}

		leftOver := length - (mergeIndex - start)
		if leftOver > mergeLen {
			s.mergeForwards(mergeIndex, mergeLen, leftOver-mergeLen, bufferOffset)
		} else {
			s.rotate(mergeIndex-mergeLen, mergeLen, leftOver)
		}

		start -= mergeLen
	}

	fullMerge := 2 * bufferLen
	finalBlock := length % fullMerge
	finalOffset := start + length - finalBlock

	if finalBlock <= bufferLen {
		s.rotate(finalOffset, finalBlock, bufferLen)
	} else {
		s.mergeBackwards(finalOffset, bufferLen, finalBlock-bufferLen, bufferLen)
	}

	for mergeIndex := finalOffset - fullMerge; mergeIndex >= start; mergeIndex -= fullMerge {
		s.mergeBackwards(mergeIndex, bufferLen, bufferLen, bufferLen)
	}
}

// buildOutOfPlace runs the first levels of buildInPlace with plain writes,
// as far as extLen items of the buffer can be saved in the external buffer,
// and then hands over to buildInPlace.
func (s *sorter[E]) buildOutOfPlace(start, length, bufferLen, extLen int) {
	copy(s.ext[:extLen], s.data[start-extLen:start])

	s.pairwiseWrites(start, length)
	start -= 2

	mergeLen := 2
	for ; mergeLen < extLen; mergeLen *= 2 {
		fullMerge := 2 * mergeLen
		mergeEnd := start + length - fullMerge
		bufferOffset := mergeLen

		mergeIndex := start
		for ; mergeIndex <= mergeEnd; mergeIndex += fullMerge {
			s.mergeOutOfPlace(mergeIndex, mergeLen, mergeLen, bufferOffset)
		}

		leftOver := length - (mergeIndex - start)
		if leftOver > mergeLen {
			s.mergeOutOfPlace(mergeIndex, mergeLen, leftOver-mergeLen, bufferOffset)
		} else {
			copy(s.data[mergeIndex-mergeLen:], s.data[mergeIndex:mergeIndex+leftOver])
		}

		start -= mergeLen
	}

	copy(s.data[start+length:], s.ext[:extLen])
	s.buildInPlace(start, length, mergeLen, bufferLen)
}

// buildBlocks sorts [start, start+length) into runs of 2*bufferLen items
// (the last one possibly shorter) using the bufferLen items before start as
// scratch space. The buffer is back in front of the range afterwards, its
// items permuted.
func (s *sorter[E]) buildBlocks(start, length, bufferLen int) {
	// Two slots are the least the pairwise pass writes into.
	if extLen := mathutil.Min(bufferLen, len(s.ext)); extLen >= 2 {
		s.buildOutOfPlace(start, length, bufferLen, extLen)
		return
	}
	s.pairwiseSwaps(start, length)
	s.buildInPlace(start-2, length, 2, bufferLen)
}
