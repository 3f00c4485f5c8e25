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

package sortutil

import "math"

// DefaultSeed is the seed the drivers start from when none is configured.
const DefaultSeed = 100000001

// Pair is a key with a payload. Only Key takes part in comparisons, Value
// tells equal keys apart so that stability can be checked.
type Pair struct {
	Key   int
	Value int
}

// ComparePairs orders pairs by key alone.
func ComparePairs(a, b Pair) int {
	switch {
	case a.Key < b.Key:
		return -1
	case a.Key > b.Key:
		return 1
	}
	return 0
}

// Generator is a small deterministic linear congruential generator, so the
// same seed always yields the same test arrays on every platform.
type Generator struct {
	seed int32
}

// NewGenerator creates a Generator.
func NewGenerator(seed int32) *Generator {
	return &Generator{seed: seed}
}

// Seed returns the current state, handing it to NewGenerator replays the
// sequence from here.
func (g *Generator) Seed() int32 {
	return g.seed
}

// Next returns a number in [0, bound).
func (g *Generator) Next(bound int) int {
	g.seed = g.seed*1234565 + 1
	return int((int64(g.seed&math.MaxInt32) * int64(bound)) >> 31)
}

// Pairs generates length pairs whose keys are drawn from [0, keyCount). The
// value of a pair counts the earlier pairs with the same key, so a stable sort
// leaves every run of equal keys with increasing values. A keyCount of zero
// draws keys from [0, 1e9) and leaves every value at zero.
func (g *Generator) Pairs(length, keyCount int) []Pair {
	pairs := make([]Pair, length)
	if keyCount == 0 {
		for i := range pairs {
			pairs[i] = Pair{Key: g.Next(1000000000)}
		}
		return pairs
	}
	counts := make([]int, keyCount)
	for i := range pairs {
		key := g.Next(keyCount)
		pairs[i] = Pair{Key: key, Value: counts[key]}
		counts[key]++
	}
	return pairs
}

// Ints generates length numbers in [0, bound).
func (g *Generator) Ints(length, bound int) []int {
	ints := make([]int, length)
	for i := range ints {
		ints[i] = g.Next(bound)
	}
	return ints
}

// Shuffle permutes x with a Fisher-Yates shuffle.
func Shuffle[E any](g *Generator, x []E) {
	for i := len(x) - 1; i > 0; i-- {
		j := g.Next(i + 1)
		x[i], x[j] = x[j], x[i]
	}
}

// Reversed returns n-1, n-2, ..., 0.
func Reversed(n int) []int {
	ints := make([]int, n)
	for i := range ints {
		ints[i] = n - 1 - i
	}
	return ints
}

// DistinctPairs returns n pairs whose keys cycle through distinct values, in
// a shuffled order: exactly min(n, distinct) different keys occur.
func DistinctPairs(g *Generator, n, distinct int) []Pair {
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i].Key = i % distinct
	}
	Shuffle(g, pairs)
	counts := make(map[int]int, distinct)
	for i := range pairs {
		pairs[i].Value = counts[pairs[i].Key]
		counts[pairs[i].Key]++
	}
	return pairs
}
