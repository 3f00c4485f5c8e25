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

package mathutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 512, 1 << 20} {
		require.True(t, IsPowerOfTwo(n), n)
	}
	for _, n := range []int{-4, 0, 3, 6, 100, 513} {
		require.False(t, IsPowerOfTwo(n), n)
	}

	require.Equal(t, 0, FloorPowerOfTwo(0))
	require.Equal(t, 1, FloorPowerOfTwo(1))
	require.Equal(t, 64, FloorPowerOfTwo(100))
	require.Equal(t, 512, FloorPowerOfTwo(512))
}

func TestCeilSqrtPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 4},
		{16, 4},
		{17, 8},
		{1000000, 1024},
		{1 << 20, 1024},
	}
	for _, test := range tests {
		require.Equal(t, test.expected, CeilSqrtPowerOfTwo(test.n), test.n)
	}
}

func TestDivCeil(t *testing.T) {
	require.Equal(t, 0, DivCeil(0, 8))
	require.Equal(t, 1, DivCeil(1, 8))
	require.Equal(t, 1, DivCeil(8, 8))
	require.Equal(t, 2, DivCeil(9, 8))
	require.Equal(t, uint64(977), DivCeil(uint64(1000000), 1024))
}

func TestMin(t *testing.T) {
	require.Equal(t, 1, Min(1, 2))
	require.Equal(t, "a", Min("b", "a"))
	require.Equal(t, -1.0, Min(2.5, -1))
}

func TestExponentialMovingAverage(t *testing.T) {
	ema := NewExponentialMovingAverage(0.5, 2)
	ema.Add(2)
	require.Equal(t, 2.0, ema.Get())
	ema.Add(4)
	require.Equal(t, 3.0, ema.Get())
	ema.Add(5)
	require.Equal(t, 4.0, ema.Get())
	require.Equal(t, 3, ema.Count())

	ema.Reset()
	require.Equal(t, 0, ema.Count())
	require.Equal(t, 0.0, ema.Get())

	require.Panics(t, func() { NewExponentialMovingAverage(1, 0) })
}
