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

	"github.com/pingcap/blocksort/pkg/metrics"
	"github.com/pingcap/blocksort/pkg/util/logutil"
	"github.com/pingcap/blocksort/pkg/util/mathutil"
	"go.uber.org/zap"
)

// Sort sorts x in ascending order without any external buffer. Equal items
// keep their order.
func Sort[S ~[]E, E cmp.Ordered](x S) {
	SortFunc(x, cmp.Compare[E])
}

// SortFunc sorts x in ascending order as determined by cmp, without any
// external buffer. cmp(a, b) should return a negative number when a < b, a
// positive number when a > b and zero when a == b. Equal items keep their
// order.
func SortFunc[S ~[]E, E any](x S, cmp func(a, b E) int) {
	sortSlice(x, cmp, nil)
}

// SortBufferedFunc is SortFunc with an external buffer. buf may be empty,
// otherwise its length must be a power of two. Its content is clobbered.
func SortBufferedFunc[S ~[]E, E any](x S, cmp func(a, b E) int, buf []E) error {
	return SortRangeFunc(x, 0, len(x), cmp, buf)
}

// SortWithPolicyFunc is SortFunc with the external buffer chosen by policy.
func SortWithPolicyFunc[S ~[]E, E any](x S, cmp func(a, b E) int, policy BufferPolicy) error {
	return SortBufferedFunc(x, cmp, NewBuffer[E](policy, len(x)))
}

// SortRangeFunc sorts x[start:start+length] and leaves the rest of x alone.
// An invalid range or buffer fails with ErrInvalidArgument before x is
// touched.
func SortRangeFunc[S ~[]E, E any](x S, start, length int, cmp func(a, b E) int, buf []E) error {
	_, err := SortRangeStatsFunc(x, start, length, cmp, buf)
	return err
}

// SortStatsFunc is SortBufferedFunc that also reports how x was sorted.
func SortStatsFunc[S ~[]E, E any](x S, cmp func(a, b E) int, buf []E) (Stats, error) {
	return SortRangeStatsFunc(x, 0, len(x), cmp, buf)
}

// SortRangeStatsFunc is SortRangeFunc that also reports how the range was
// sorted.
func SortRangeStatsFunc[S ~[]E, E any](x S, start, length int, cmp func(a, b E) int, buf []E) (Stats, error) {
	if err := validateRange(len(x), start, length); err != nil {
		return Stats{}, err
	}
	if err := validateBuffer(len(buf)); err != nil {
		return Stats{}, err
	}
	return sortSlice(x[start:start+length], cmp, buf), nil
}

func sortSlice[E any](data []E, cmp func(a, b E) int, buf []E) Stats {
	s := newSorter(data, cmp)
	stats := s.commonSort(buf)
	observe(stats, len(buf))
	return stats
}

func observe(stats Stats, bufLen int) {
	buffer := "none"
	if bufLen > 0 {
		buffer = "external"
	}
	strategy := stats.Strategy.String()
	metrics.BlockSortCounter.WithLabelValues(strategy, buffer).Inc()
	metrics.BlockSortLengthHistogram.WithLabelValues(strategy).Observe(float64(stats.Length))

	if stats.Strategy == StrategyInsertion {
		return
	}
	if ce := logutil.BgLogger().Check(zap.DebugLevel, "block sort finished"); ce != nil {
		ce.Write(
			zap.Stringer("strategy", stats.Strategy),
			zap.Int("length", stats.Length),
			zap.Int("idealKeys", stats.IdealKeys),
			zap.Int("keysFound", stats.KeysFound),
			zap.Int("blockLen", stats.BlockLen),
			zap.Int("keyLen", stats.KeyLen),
			zap.Int("bufferLen", bufLen),
			zap.Bool("outOfPlace", stats.OutOfPlace),
			zap.Int("passes", stats.Passes),
			zap.Int("lazyPasses", stats.LazyPasses),
		)
	}
}

// commonSort sorts s.data using ext, which is empty or has a power of two
// length, as external buffer.
func (s *sorter[E]) commonSort(ext []E) Stats {
	length := len(s.data)
	stats := Stats{Length: length}
	if length < 16 {
		s.insertSort(0, length)
		stats.Strategy = StrategyInsertion
		return stats
	}

	blockLen := mathutil.CeilSqrtPowerOfTwo(length)
	keyLen := mathutil.DivCeil(length, blockLen)
	// Ideally there are 2*sqrt(n) distinct items: one key per block plus a
	// block worth of buffer.
	idealKeys := keyLen + blockLen

	keysFound := s.collectKeys(0, length, idealKeys)
	stats.IdealKeys, stats.KeysFound = idealKeys, keysFound

	idealBuffer := keysFound >= idealKeys
	switch {
	case idealBuffer:
		stats.Strategy = StrategyFullBuffer
	case keysFound < 4:
		stats.Strategy = StrategyLazy
		s.lazyStableSort(0, length)
		return stats
	default:
		stats.Strategy = StrategyKeyBuffer
		keyLen = mathutil.Min(blockLen, mathutil.FloorPowerOfTwo(keysFound))
		blockLen = 0
	}
	stats.BlockLen, stats.KeyLen = blockLen, keyLen

	bufferEnd := blockLen + keyLen
	subarrayLen := keyLen
	if idealBuffer {
		subarrayLen = blockLen
	}

	var buffered mergeStrategy = inPlaceMerge[E]{s}
	if idealBuffer && len(ext) > 0 {
		s.ext = ext
		defer func() { s.ext = nil }()
		if blockLen <= len(ext) {
			buffered = outOfPlaceMerge[E]{s}
			stats.OutOfPlace = true
		}
	}
	var lazy mergeStrategy = lazyMerge[E]{s}

	s.buildBlocks(bufferEnd, length-bufferEnd, subarrayLen)

	for length-bufferEnd > 2*subarrayLen {
		subarrayLen *= 2

		m, currentBlockLen := buffered, blockLen
		if !idealBuffer {
			// The number of keys is fixed while the subarrays keep growing:
			// use half the keys as buffer while they still tag every block,
			// afterwards make the blocks larger and merge without a buffer.
			keyBuffer := keyLen / 2
			if keyBuffer*keyBuffer >= 2*subarrayLen {
				currentBlockLen = keyBuffer
			} else {
				currentBlockLen = (2 * subarrayLen) / keyLen
				m = lazy
				stats.LazyPasses++
			}
		}

		s.combineBlocks(m, 0, bufferEnd, length-bufferEnd, subarrayLen, currentBlockLen)
		stats.Passes++
	}

	s.insertSort(0, bufferEnd)
	s.lazyMerge(0, bufferEnd, length-bufferEnd)
	return stats
}
