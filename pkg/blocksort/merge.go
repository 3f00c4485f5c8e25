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

// subarray tells which half of a merge window a block or run came from.
type subarray uint8

const (
	subarrayLeft subarray = iota
	subarrayRight
)

func (o subarray) opposite() subarray {
	if o == subarrayLeft {
		return subarrayRight
	}
	return subarrayLeft
}

func (o subarray) String() string {
	if o == subarrayLeft {
		return "left"
	}
	return "right"
}

// blockRun is the unmerged tail carried from one block merge to the next:
// length items that came from origin and still sit right before the next
// block.
type blockRun struct {
	length int
	origin subarray
}

// mergeForwards merges [start, start+leftLen) with the following rightLen
// items into the scrolling buffer that ends bufferOffset items before start.
//
//	buffer + left + right --> merged + buffer
func (s *sorter[E]) mergeForwards(start, leftLen, rightLen, bufferOffset int) {
	buffer := start - bufferOffset
	left := start
	middle := start + leftLen
	right := middle
	end := middle + rightLen

	for right < end {
		if left == middle || s.cmp(s.data[left], s.data[right]) > 0 {
			s.swap(buffer, right)
			right++
		} else {
			s.swap(buffer, left)
			left++
		}
		buffer++
	}
	if buffer != left {
		s.blockSwap(buffer, left, middle-left)
	}
}

// mergeBackwards is the mirror image of mergeForwards: the buffer sits
// bufferOffset items after the right run and the merge fills it from the end.
//
//	left + right + buffer --> buffer + merged
func (s *sorter[E]) mergeBackwards(start, leftLen, rightLen, bufferOffset int) {
	end := start - 1
	left := start + leftLen - 1
	middle := left
	right := middle + rightLen
	buffer := right + bufferOffset

	for left > end {
		if right == middle || s.cmp(s.data[left], s.data[right]) > 0 {
			s.swap(buffer, left)
			left--
		} else {
			s.swap(buffer, right)
			right--
		}
		buffer--
	}
	if right != buffer {
		for right > middle {
			s.swap(buffer, right)
			buffer--
			right--
		}
	}
}

// mergeOutOfPlace is mergeForwards for a buffer whose content has been saved
// elsewhere: items are written instead of swapped and the free space is left
// with stale copies.
func (s *sorter[E]) mergeOutOfPlace(start, leftLen, rightLen, bufferOffset int) {
	buffer := start - bufferOffset
	left := start
	middle := start + leftLen
	right := middle
	end := middle + rightLen

	for right < end {
		if left == middle || s.cmp(s.data[left], s.data[right]) > 0 {
			s.data[buffer] = s.data[right]
			right++
		} else {
			s.data[buffer] = s.data[left]
			left++
		}
		buffer++
	}
	if buffer != left {
		copy(s.data[buffer:], s.data[left:middle])
	}
}

// smartMerge merges a run of leftOrigin items with the next block until one
// of them is used up. Ties go to whichever side came from the left subarray,
// that is what keeps the sort stable. The returned run is what is left over,
// moved in front of the buffer so the next block can be merged with it.
func (s *sorter[E]) smartMerge(start, leftLen int, leftOrigin subarray, rightLen, bufferOffset int) blockRun {
	buffer := start - bufferOffset
	left := start
	middle := start + leftLen
	right := middle
	end := middle + rightLen

	// A left run wins ties, a right run loses them.
	limit := 0
	if leftOrigin == subarrayLeft {
		limit = 1
	}
	for left < middle && right < end {
		if s.cmp(s.data[left], s.data[right]) < limit {
			s.swap(buffer, left)
			left++
		} else {
			s.swap(buffer, right)
			right++
		}
		buffer++
	}

	if left < middle {
		s.inPlaceBufferRewind(left, middle, end)
		return blockRun{length: middle - left, origin: leftOrigin}
	}
	return blockRun{length: end - right, origin: leftOrigin.opposite()}
}

// smartMergeOutOfPlace is smartMerge writing into a saved buffer.
func (s *sorter[E]) smartMergeOutOfPlace(start, leftLen int, leftOrigin subarray, rightLen, bufferOffset int) blockRun {
	buffer := start - bufferOffset
	left := start
	middle := start + leftLen
	right := middle
	end := middle + rightLen

	limit := 0
	if leftOrigin == subarrayLeft {
		limit = 1
	}
	for left < middle && right < end {
		if s.cmp(s.data[left], s.data[right]) < limit {
			s.data[buffer] = s.data[left]
			left++
		} else {
			s.data[buffer] = s.data[right]
			right++
		}
		buffer++
	}

	if left < middle {
		s.outOfPlaceBufferRewind(left, middle, end)
		return blockRun{length: middle - left, origin: leftOrigin}
	}
	return blockRun{length: end - right, origin: leftOrigin.opposite()}
}

// smartLazyMerge is smartMerge without any buffer: it repeatedly finds where
// the head of the left run belongs in the right block and rotates it there.
func (s *sorter[E]) smartLazyMerge(start, leftLen int, leftOrigin subarray, rightLen int) blockRun {
	if leftLen == 0 {
		return blockRun{length: rightLen, origin: leftOrigin.opposite()}
	}
	middle := start + leftLen

	// For a left run an equal right item stays behind, for a right run it
	// goes first.
	limit := 1
	search := s.binarySearchLeft
	if leftOrigin == subarrayRight {
		limit = 0
		search = s.binarySearchRight
	}
	if s.cmp(s.data[middle-1], s.data[middle]) >= limit {
		for leftLen != 0 {
			insertPos := search(middle, rightLen, s.data[start])
			if insertPos != 0 {
				s.rotate(start, leftLen, insertPos)
				start += insertPos
				rightLen -= insertPos
			}
			middle = start + leftLen

			if rightLen == 0 {
				return blockRun{length: leftLen, origin: leftOrigin}
			}
			for {
				start++
				leftLen--
				if leftLen == 0 || s.cmp(s.data[start], s.data[middle]) >= limit {
					break
				}
			}
		}
	}
	return blockRun{length: rightLen, origin: leftOrigin.opposite()}
}

// lazyMerge is the classic buffer-free stable merge built on binary search
// and rotation. The shorter run is searched into the longer one.
//
// cost: min(leftLen, rightLen)^2 + max(leftLen, rightLen)
func (s *sorter[E]) lazyMerge(start, leftLen, rightLen int) {
	if leftLen < rightLen {
		middle := start + leftLen
		for leftLen != 0 {
			insertPos := s.binarySearchLeft(middle, rightLen, s.data[start])
			if insertPos != 0 {
				s.rotate(start, leftLen, insertPos)
				start += insertPos
				rightLen -= insertPos
			}
			middle = start + leftLen

			if rightLen == 0 {
				return
			}
			for {
				start++
				leftLen--
				if leftLen == 0 || s.cmp(s.data[start], s.data[middle]) > 0 {
					break
				}
			}
		}
		return
	}

	end := start + leftLen + rightLen - 1
	for rightLen != 0 {
		insertPos := s.binarySearchRight(start, leftLen, s.data[end])
		if insertPos != leftLen {
			s.rotate(start+insertPos, leftLen-insertPos, rightLen)
			leftLen = insertPos
		}
		end = start + leftLen + rightLen - 1

		if leftLen == 0 {
			return
		}
		middle := start + leftLen
		for {
			rightLen--
			end--
			if rightLen == 0 || s.cmp(s.data[middle-1], s.data[end]) > 0 {
				break
			}
		}
	}
}

// inPlaceBufferReset swaps the scrolling buffer, which a combine pass has
// pushed to the end of [start-bufferLen, start+resetLen), back to its front.
// Costs O(n) swaps.
func (s *sorter[E]) inPlaceBufferReset(start, resetLen, bufferLen int) {
	for index := start + resetLen - 1; index >= start; index-- {
		s.swap(index, index-bufferLen)
	}
}

// outOfPlaceBufferReset shifts [start-bufferLen, start+resetLen-bufferLen) right
// by bufferLen, the caller restores the saved buffer afterwards.
func (s *sorter[E]) outOfPlaceBufferReset(start, resetLen, bufferLen int) {
	for index := start + resetLen - 1; index >= start; index-- {
		s.data[index] = s.data[index-bufferLen]
	}
}

// inPlaceBufferRewind moves the leftovers [start, leftOvers) of a smart merge
// to just before buffer, the end of the merge, so they continue the merge
// with the next block. Costs O(sqrt n) swaps in the worst case.
func (s *sorter[E]) inPlaceBufferRewind(start, leftOvers, buffer int) {
	for leftOvers > start {
		leftOvers--
		buffer--
		s.swap(buffer, leftOvers)
	}
}

func (s *sorter[E]) outOfPlaceBufferRewind(start, leftOvers, buffer int) {
	for leftOvers > start {
		leftOvers--
		buffer--
		s.data[buffer] = s.data[leftOvers]
	}
}

// lazyStableSort is a bottom-up merge sort made only of lazy merges. It is
// used when the input has too few distinct values to build any buffer.
func (s *sorter[E]) lazyStableSort(start, length int) {
	for index := 1; index < length; index += 2 {
		left := start + index - 1
		right := start + index
		if s.cmp(s.data[left], s.data[right]) > 0 {
			s.swap(left, right)
		}
	}
	for mergeLen := 2; mergeLen < length; mergeLen *= 2 {
		fullMerge := 2 * mergeLen
		mergeEnd := length - fullMerge

		mergeIndex := 0
		for ; mergeIndex <= mergeEnd; mergeIndex += fullMerge {
			s.lazyMerge(start+mergeIndex, mergeLen, mergeLen)
		}
		if leftOver := length - mergeIndex; leftOver > mergeLen {
			s.lazyMerge(start+mergeIndex, mergeLen, leftOver-mergeLen)
		}
	}
}
