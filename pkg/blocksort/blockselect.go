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

// blockSelectSort selection-sorts blockCount blocks of blockLen items that
// start at start, by their first items. The keys at firstKey move along with
// their blocks and break ties, so equal blocks keep their subarray order.
// It returns the new index of the key that was at medianKey: keys less than
// it tag blocks of the left subarray.
func (s *sorter[E]) blockSelectSort(firstKey, start, medianKey, blockCount, blockLen int) int {
	for firstBlock := 0; firstBlock < blockCount; firstBlock++ {
		selectBlock := firstBlock

		for currBlock := firstBlock + 1; currBlock < blockCount; currBlock++ {
			compare := s.cmp(s.data[start+currBlock*blockLen], s.data[start+selectBlock*blockLen])
			if compare < 0 || (compare == 0 && s.cmp(s.data[firstKey+currBlock], s.data[firstKey+selectBlock]) < 0) {
				selectBlock = currBlock
			}
		}

		if selectBlock != firstBlock {
			s.blockSwap(start+firstBlock*blockLen, start+selectBlock*blockLen, blockLen)
			s.swap(firstKey+firstBlock, firstKey+selectBlock)

			switch medianKey {
			case firstBlock:
				medianKey = selectBlock
			case selectBlock:
				medianKey = firstBlock
			}
		}
	}
	return medianKey
}

// getSubarray reports which subarray the block tagged by currentKey came from.
func (s *sorter[E]) getSubarray(currentKey, medianKey int) subarray {
	if s.cmp(s.data[currentKey], s.data[medianKey]) < 0 {
		return subarrayLeft
	}
	return subarrayRight
}

// countLastMergeBlocks counts the trailing blocks among the blockCount blocks
// at offset whose first item is greater than the first item of the fragment
// right after them. Those blocks have to be merged with the fragment instead
// of taking part in the block merge.
func (s *sorter[E]) countLastMergeBlocks(offset, blockCount, blockLen int) int {
	blocksToMerge := 0

	lastRightFrag := offset + blockCount*blockLen
	prevLeftBlock := lastRightFrag - blockLen

	for blocksToMerge < blockCount && s.cmp(s.data[lastRightFrag], s.data[prevLeftBlock]) < 0 {
		blocksToMerge++
		prevLeftBlock -= blockLen
	}
	return blocksToMerge
}
