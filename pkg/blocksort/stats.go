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

// Strategy identifies the tier a sort call ran.
type Strategy int

const (
	// StrategyInsertion is used for fewer than 16 items.
	StrategyInsertion Strategy = iota
	// StrategyFullBuffer has keys for every block plus a scrolling buffer of
	// one block.
	StrategyFullBuffer
	// StrategyKeyBuffer has at least 4 keys but not enough for the full
	// buffer.
	StrategyKeyBuffer
	// StrategyLazy has fewer than 4 distinct values and merges by rotation.
	StrategyLazy
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyInsertion:
		return "insertion"
	case StrategyFullBuffer:
		return "full-buffer"
	case StrategyKeyBuffer:
		return "key-buffer"
	case StrategyLazy:
		return "lazy"
	}
	return "unknown"
}

// Stats describes what a sort call did.
type Stats struct {
	Strategy Strategy
	Length   int
	// IdealKeys is how many distinct items the sort looked for, KeysFound how
	// many it got.
	IdealKeys int
	KeysFound int
	// BlockLen and KeyLen are the sizes of the scrolling buffer and of the key
	// region carved out of the front of the range.
	BlockLen int
	KeyLen   int
	// OutOfPlace is set when the external buffer replaced swaps in the
	// combine passes.
	OutOfPlace bool
	// Passes counts the combine passes, LazyPasses those without a buffer.
	Passes     int
	LazyPasses int
}
