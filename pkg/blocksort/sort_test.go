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
	"strings"
	"testing"

	"github.com/pingcap/blocksort/pkg/metrics"
	"github.com/pingcap/blocksort/pkg/testkit/testfork"
	"github.com/pingcap/blocksort/pkg/util/sortutil"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// withIndex turns ints into pairs that remember their input position.
func withIndex(ints []int) []sortutil.Pair {
	pairs := make([]sortutil.Pair, len(ints))
	for i, v := range ints {
		pairs[i] = sortutil.Pair{Key: v, Value: i}
	}
	return pairs
}

func TestSortSmallInput(t *testing.T) {
	ints := []int{11, 10, 15, 0, 0, 14, 3, 9, 12, 9, 4, 0, 13, 2, 4}
	pairs := withIndex(ints)

	Sort(ints)
	require.Equal(t, []int{0, 0, 0, 2, 3, 4, 4, 9, 9, 10, 11, 12, 13, 14, 15}, ints)

	stats, err := SortStatsFunc(pairs, sortutil.ComparePairs, nil)
	require.NoError(t, err)
	require.Equal(t, StrategyInsertion, stats.Strategy)
	require.Equal(t, 15, stats.Length)
	require.NoError(t, sortutil.CheckPairs(pairs, sortutil.Reference(withIndex([]int{11, 10, 15, 0, 0, 14, 3, 9, 12, 9, 4, 0, 13, 2, 4}))))
}

func TestSortReversed(t *testing.T) {
	ints := sortutil.Reversed(50)
	Sort(ints)
	for i, v := range ints {
		require.Equal(t, i, v)
	}
}

func TestSortEmptyAndSingleton(t *testing.T) {
	var empty []int
	Sort(empty)
	require.Empty(t, empty)
	require.NoError(t, SortBufferedFunc([]int{}, cmp.Compare[int], make([]int, 8)))

	one := []int{42}
	Sort(one)
	require.Equal(t, []int{42}, one)
}

func TestSortNamedSliceAndStrings(t *testing.T) {
	type words []string
	w := words(strings.Fields("the quick brown fox jumps over the lazy dog while the cat sleeps in the warm sun today"))
	Sort(w)
	require.True(t, slices.IsSorted(w))

	floats := []float64{3.5, -1, 2.25, 0, 2.25, 1e9, -7.5, 0.5, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	Sort(floats)
	require.True(t, slices.IsSorted(floats))
}

func TestSortStrategies(t *testing.T) {
	const length = 1000
	// 1000 items need 32 keys for the blocks plus a block of 32 as buffer.
	cases := []struct {
		distinct int
		strategy Strategy
	}{
		{1, StrategyLazy},
		{3, StrategyLazy},
		{4, StrategyKeyBuffer},
		{17, StrategyKeyBuffer},
		{63, StrategyKeyBuffer},
		{64, StrategyFullBuffer},
		{1000, StrategyFullBuffer},
	}
	g := sortutil.NewGenerator(sortutil.DefaultSeed)
	for _, c := range cases {
		pairs := sortutil.DistinctPairs(g, length, c.distinct)
		ref := sortutil.Reference(pairs)
		stats, err := SortStatsFunc(pairs, sortutil.ComparePairs, nil)
		require.NoError(t, err)
		require.Equal(t, c.strategy, stats.Strategy, "distinct %d", c.distinct)
		require.Equal(t, 64, stats.IdealKeys)
		require.Equal(t, min(c.distinct, 64), stats.KeysFound)
		require.NoError(t, sortutil.CheckPairs(pairs, ref), "distinct %d", c.distinct)

		switch c.strategy {
		case StrategyFullBuffer:
			require.Equal(t, 32, stats.BlockLen)
			require.Equal(t, 32, stats.KeyLen)
			require.Zero(t, stats.LazyPasses)
		case StrategyKeyBuffer:
			require.Zero(t, stats.BlockLen)
			require.LessOrEqual(t, stats.KeyLen, stats.KeysFound)
			require.Greater(t, 2*stats.KeyLen, stats.KeysFound)
		}
	}
}

func TestSortKeyBufferTurnsLazy(t *testing.T) {
	g := sortutil.NewGenerator(sortutil.DefaultSeed)

	pairs := sortutil.DistinctPairs(g, 100000, 600)
	ref := sortutil.Reference(pairs)
	stats, err := SortStatsFunc(pairs, sortutil.ComparePairs, nil)
	require.NoError(t, err)
	require.Equal(t, StrategyKeyBuffer, stats.Strategy)
	require.Equal(t, 512, stats.KeyLen)
	require.Greater(t, stats.LazyPasses, 0)
	require.Greater(t, stats.Passes, stats.LazyPasses)
	require.NoError(t, sortutil.CheckPairs(pairs, ref))

	pairs = sortutil.DistinctPairs(g, 100000, 8)
	ref = sortutil.Reference(pairs)
	stats, err = SortStatsFunc(pairs, sortutil.ComparePairs, nil)
	require.NoError(t, err)
	require.Equal(t, 8, stats.KeyLen)
	require.Equal(t, stats.Passes, stats.LazyPasses)
	require.NoError(t, sortutil.CheckPairs(pairs, ref))
}

func TestSortManyItemsFewValues(t *testing.T) {
	if testing.Short() {
		t.Skip("sorts a million items")
	}
	pairs := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(1000000, 3)
	ref := sortutil.Reference(pairs)
	stats, err := SortStatsFunc(pairs, sortutil.ComparePairs, nil)
	require.NoError(t, err)
	require.Equal(t, StrategyLazy, stats.Strategy)
	require.NoError(t, sortutil.CheckPairs(pairs, ref))
}

func TestSortBufferPolicies(t *testing.T) {
	testfork.RunTest(t, func(t *testfork.T) {
		length := testfork.PickEnum(t, 15, 16, 17, 100, 1023, 5000)
		keyCount := testfork.PickEnum(t, 0, 2, 5, 30, 255, 2000)

		input := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(length, keyCount)
		ref := sortutil.Reference(input)
		var outputs [][]sortutil.Pair
		for _, policy := range BufferPolicies {
			pairs := slices.Clone(input)
			require.NoError(t, SortWithPolicyFunc(pairs, sortutil.ComparePairs, policy))
			require.NoError(t, sortutil.CheckPairs(pairs, ref), "policy %s", policy)
			outputs = append(outputs, pairs)
		}
		for _, out := range outputs[1:] {
			require.Equal(t, outputs[0], out)
		}
	})
}

func TestSortTinyAndHugeBuffers(t *testing.T) {
	input := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(3000, 0)
	ref := sortutil.Reference(input)
	for _, bufLen := range []int{1, 2, 4, 64, 4096} {
		pairs := slices.Clone(input)
		stats, err := SortRangeStatsFunc(pairs, 0, len(pairs), sortutil.ComparePairs, make([]sortutil.Pair, bufLen))
		require.NoError(t, err)
		require.Equal(t, StrategyFullBuffer, stats.Strategy)
		require.Equal(t, bufLen >= stats.BlockLen, stats.OutOfPlace, "buffer %d", bufLen)
		require.NoError(t, sortutil.CheckPairs(pairs, ref), "buffer %d", bufLen)
	}
}

func TestSortStaticBufferTooSmallForBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("sorts 300000 items")
	}
	input := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(300000, 0)
	ref := sortutil.Reference(input)
	stats, err := SortRangeStatsFunc(input, 0, len(input), sortutil.ComparePairs, NewBuffer[sortutil.Pair](StaticBuffer, len(input)))
	require.NoError(t, err)
	require.Equal(t, 1024, stats.BlockLen)
	require.False(t, stats.OutOfPlace)
	require.NoError(t, sortutil.CheckPairs(input, ref))
}

func TestSortIsIdempotent(t *testing.T) {
	pairs := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(2000, 40)
	SortFunc(pairs, sortutil.ComparePairs)
	once := slices.Clone(pairs)
	SortFunc(pairs, sortutil.ComparePairs)
	require.Equal(t, once, pairs)
}

func TestSortKeepsItems(t *testing.T) {
	ints := sortutil.NewGenerator(sortutil.DefaultSeed).Ints(3000, 100)
	orig := slices.Clone(ints)
	require.NoError(t, SortWithPolicyFunc(ints, cmp.Compare[int], DynamicBuffer))
	require.True(t, slices.IsSorted(ints))
	require.True(t, sortutil.SameMultiset(orig, ints))
}

func TestSortRange(t *testing.T) {
	ints := sortutil.NewGenerator(sortutil.DefaultSeed).Ints(500, 1000)
	orig := slices.Clone(ints)
	require.NoError(t, SortRangeFunc(ints, 100, 300, cmp.Compare[int], make([]int, 16)))

	require.Equal(t, orig[:100], ints[:100])
	require.Equal(t, orig[400:], ints[400:])
	expected := slices.Clone(orig[100:400])
	slices.Sort(expected)
	require.Equal(t, expected, ints[100:400])

	require.NoError(t, SortRangeFunc(ints, 500, 0, cmp.Compare[int], nil))
}

func TestSortInvalidArguments(t *testing.T) {
	ints := sortutil.Reversed(200)
	orig := slices.Clone(ints)

	err := SortBufferedFunc(ints, cmp.Compare[int], make([]int, 100))
	require.Error(t, err)
	require.True(t, ErrInvalidArgument.Equal(err))
	require.Contains(t, err.Error(), "not a power of two")

	for _, r := range [][2]int{{-1, 10}, {0, -1}, {150, 51}, {201, 0}} {
		err = SortRangeFunc(ints, r[0], r[1], cmp.Compare[int], nil)
		require.Error(t, err, "start %d length %d", r[0], r[1])
		require.True(t, ErrInvalidArgument.Equal(err))
	}
	require.Equal(t, orig, ints)
}

func TestSortUpdatesMetrics(t *testing.T) {
	counter := metrics.BlockSortCounter.WithLabelValues(StrategyFullBuffer.String(), "external")
	before := testutil.ToFloat64(counter)

	input := sortutil.NewGenerator(sortutil.DefaultSeed).Pairs(500, 0)
	require.NoError(t, SortWithPolicyFunc(input, sortutil.ComparePairs, DynamicBuffer))
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "insertion", StrategyInsertion.String())
	require.Equal(t, "full-buffer", StrategyFullBuffer.String())
	require.Equal(t, "key-buffer", StrategyKeyBuffer.String())
	require.Equal(t, "lazy", StrategyLazy.String())
	require.Equal(t, "unknown", Strategy(42).String())
}
