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

// collectKeys gathers up to idealKeys distinct items from [start,
// start+length) and moves them, sorted, to the front of the range. It returns
// how many were found. The first occurrence of every value becomes its key,
// so the items left behind keep their relative order.
//
// cost: 2 * length + idealKeys^2 / 2
func (s *sorter[E]) collectKeys(start, length, idealKeys int) int {
	keysFound := 1
	firstKey := 0
	for currKey := 1; currKey < length && keysFound < idealKeys; currKey++ {
		insertPos := s.binarySearchLeft(start+firstKey, keysFound, s.data[start+currKey])
		if insertPos != keysFound && s.cmp(s.data[start+currKey], s.data[start+firstKey+insertPos]) == 0 {
			continue
		}
		// Drag the keys next to the candidate first, which is far cheaper
		// than moving every skipped duplicate, then insert it.
		s.rotate(start+firstKey, keysFound, currKey-(firstKey+keysFound))
		firstKey = currKey - keysFound
		s.rotate(start+firstKey+insertPos, keysFound-insertPos, 1)
		keysFound++
	}
	s.rotate(start, firstKey, keysFound)
	return keysFound
}
