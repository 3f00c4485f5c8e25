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

// mergeBlocks merges the blockCount selection-sorted blocks at start. Keys
// from firstKey on tag every block with its subarray; consecutive blocks of
// the same subarray are already in order and only runs that switch subarray
// are merged. When lastLen is not zero, lastLeftBlocks more left blocks and a
// fragment of lastLen right items follow and are merged at the end.
func (s *sorter[E]) mergeBlocks(m mergeStrategy, firstKey, medianKey, start, blockCount, blockLen, lastLeftBlocks, lastLen int) {
	nextBlock := start + blockLen
	run := blockRun{length: blockLen, origin: s.getSubarray(firstKey, medianKey)}

	for keyIndex := 1; keyIndex < blockCount; keyIndex++ {
		currBlock := nextBlock - run.length
		nextOrigin := s.getSubarray(firstKey+keyIndex, medianKey)

		if nextOrigin == run.origin {
			m.skip(currBlock, run.length, blockLen)
			run.length = blockLen
		} else {
			run = m.smartMerge(currBlock, run.length, run.origin, blockLen, blockLen)
		}
		nextBlock += blockLen
	}

	currBlock := nextBlock - run.length
	if lastLen == 0 {
		m.skip(currBlock, run.length, blockLen)
		return
	}

	if run.origin == subarrayRight {
		m.skip(currBlock, run.length, blockLen)
		currBlock = nextBlock
		run = blockRun{length: blockLen * lastLeftBlocks, origin: subarrayLeft}
	} else {
		run.length += blockLen * lastLeftBlocks
	}
	m.merge(currBlock, run.length, lastLen, blockLen)
}

// combine merges every pair of adjacent subarrays of subarrayLen items in
// [start, start+length), followed by an irregular last pair of lastSubarray
// items if that is not zero.
func (s *sorter[E]) combine(m mergeStrategy, firstKey, start, length, subarrayLen, blockLen, mergeCount, lastSubarray int) {
	m.begin(start, blockLen)

	fullMerge := 2 * subarrayLen
	for mergeIndex := 0; mergeIndex < mergeCount; mergeIndex++ {
		offset := start + mergeIndex*fullMerge
		blockCount := fullMerge / blockLen

		s.insertSort(firstKey, blockCount)

		medianKey := subarrayLen / blockLen
		medianKey = s.blockSelectSort(firstKey, offset, medianKey, blockCount, blockLen)

		s.mergeBlocks(m, firstKey, firstKey+medianKey, offset, blockCount, blockLen, 0, 0)
	}

	if lastSubarray != 0 {
		offset := start + mergeCount*fullMerge
		rightBlocks := lastSubarray / blockLen

		s.insertSort(firstKey, rightBlocks+1)

		medianKey := subarrayLen / blockLen
		medianKey = s.blockSelectSort(firstKey, offset, medianKey, rightBlocks, blockLen)

		// The last subarray may divide into whole blocks, then there is no
		// fragment to look at.
		lastFragment := lastSubarray - rightBlocks*blockLen
		leftBlocks := 0
		if lastFragment != 0 {
			leftBlocks = s.countLastMergeBlocks(offset, rightBlocks, blockLen)
		}

		blockCount := rightBlocks - leftBlocks
		if blockCount == 0 {
			m.merge(offset, leftBlocks*blockLen, lastFragment, blockLen)
		} else {
			s.mergeBlocks(m, firstKey, firstKey+medianKey, offset, blockCount, blockLen, leftBlocks, lastFragment)
		}
	}

	m.finish(start, length, blockLen)
}

// combineBlocks runs one combine pass over [start, start+length), which holds
// sorted subarrays of subarrayLen items. The keys start at firstKey, at least
// 2*subarrayLen/blockLen of them.
func (s *sorter[E]) combineBlocks(m mergeStrategy, firstKey, start, length, subarrayLen, blockLen int) {
	fullMerge := 2 * subarrayLen
	mergeCount := length / fullMerge
	lastSubarray := length - fullMerge*mergeCount

	// A trailing subarray without a partner is already sorted.
	if lastSubarray <= subarrayLen {
		length -= lastSubarray
		lastSubarray = 0
	}

	s.combine(m, firstKey, start, length, subarrayLen, blockLen, mergeCount, lastSubarray)
}
