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

// sorter holds the sequence being sorted. Every helper addresses it by index,
// the scratch regions are borrowed sub-ranges of data.
type sorter[E any] struct {
	data []E
	cmp  func(a, b E) int
	// ext is the external buffer. It only saves the part of data that an
	// out-of-place merge overwrites, nil means every merge swaps.
	ext []E
}

func newSorter[E any](data []E, cmp func(a, b E) int) *sorter[E] {
	return &sorter[E]{data: data, cmp: cmp}
}

func (s *sorter[E]) swap(a, b int) {
	s.data[a], s.data[b] = s.data[b], s.data[a]
}

func (s *sorter[E]) blockSwap(a, b, blockLen int) {
	for i := 0; i < blockLen; i++ {
		s.swap(a+i, b+i)
	}
}

// rotate exchanges the adjacent ranges [start, start+leftLen) and
// [start+leftLen, start+leftLen+rightLen). It is the Gries-Mills rotation:
// each round swaps the shorter side into its final place.
func (s *sorter[E]) rotate(start, leftLen, rightLen int) {
	for leftLen > 0 && rightLen > 0 {
		if leftLen <= rightLen {
			s.blockSwap(start, start+leftLen, leftLen)
			start += leftLen
			rightLen -= leftLen
		} else {
			s.blockSwap(start+leftLen-rightLen, start+leftLen, rightLen)
			leftLen -= rightLen
		}
	}
}

// insertSort is a stable insertion sort that moves items with swaps.
func (s *sorter[E]) insertSort(start, length int) {
	for item := 1; item < length; item++ {
		left := start + item - 1
		right := start + item
		for left >= start && s.cmp(s.data[left], s.data[right]) > 0 {
			s.swap(left, right)
			left--
			right--
		}
	}
}

// binarySearchLeft returns the offset of the first item in
// [start, start+length) that is not less than target.
func (s *sorter[E]) binarySearchLeft(start, length int, target E) int {
	left, right := 0, length
	for left < right {
		middle := int(uint(left+right) >> 1)
		if s.cmp(s.data[start+middle], target) < 0 {
			left = middle + 1
		} else {
			right = middle
		}
	}
	return left
}

// binarySearchRight returns the offset of the first item in
// [start, start+length) that is greater than target.
func (s *sorter[E]) binarySearchRight(start, length int, target E) int {
	left, right := 0, length
	for left < right {
		middle := int(uint(left+right) >> 1)
		if s.cmp(s.data[start+middle], target) > 0 {
			right = middle
		} else {
			left = middle + 1
		}
	}
	return right
}
