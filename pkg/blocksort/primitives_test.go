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

import (
	"cmp"
	"testing"

	"github.com/pingcap/blocksort/pkg/util/sortutil"
	"github.com/stretchr/testify/require"
)

func newIntSorter(data ...int) *sorter[int] {
	return newSorter(data, cmp.Compare[int])
}

func newPairSorter(data []sortutil.Pair) *sorter[sortutil.Pair] {
	return newSorter(data, sortutil.ComparePairs)
}

func TestRotate(t *testing.T) {
	cases := []struct {
		leftLen, rightLen int
		expected          []int
	}{
		{0, 7, []int{0, 1, 2, 3, 4, 5, 6}},
		{7, 0, []int{0, 1, 2, 3, 4, 5, 6}},
		{1, 6, []int{1, 2, 3, 4, 5, 6, 0}},
		{6, 1, []int{6, 0, 1, 2, 3, 4, 5}},
		{2, 5, []int{2, 3, 4, 5, 6, 0, 1}},
		{3, 4, []int{3, 4, 5, 6, 0, 1, 2}},
		{5, 2, []int{5, 6, 0, 1, 2, 3, 4}},
	}
	for _, c := range cases {
		s := newIntSorter(0, 1, 2, 3, 4, 5, 6)
		s.rotate(0, c.leftLen, c.rightLen)
		require.Equal(t, c.expected, s.data, "left %d right %d", c.leftLen, c.rightLen)
	}

	s := newIntSorter(9, 0, 1, 2, 3, 9)
	s.rotate(1, 1, 3)
	require.Equal(t, []int{9, 1, 2, 3, 0, 9}, s.data)
}

func TestBlockSwap(t *testing.T) {
	s := newIntSorter(0, 1, 2, 3, 4, 5)
	s.blockSwap(0, 3, 2)
	require.Equal(t, []int{3, 4, 2, 0, 1, 5}, s.data)
}

func TestInsertSortIsStable(t *testing.T) {
	pairs := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(40, 5)
	ref := sortutil.Reference(pairs)
	s := newPairSorter(pairs)
	s.insertSort(0, len(pairs))
	require.NoError(t, sortutil.CheckPairs(s.data, ref))
}

func TestBinarySearch(t *testing.T) {
	s := newIntSorter(7, 1, 2, 2, 2, 5, 7)
	for _, c := range []struct {
		target, left, right int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 4},
		{3, 4, 4},
		{5, 4, 5},
		{9, 5, 5},
	} {
		require.Equal(t, c.left, s.binarySearchLeft(1, 5, c.target), "left of %d", c.target)
		require.Equal(t, c.right, s.binarySearchRight(1, 5, c.target), "right of %d", c.target)
	}
	require.Equal(t, 0, s.binarySearchLeft(1, 0, 3))
	require.Equal(t, 0, s.binarySearchRight(1, 0, 3))
}
