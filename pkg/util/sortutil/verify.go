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

import (
	"github.com/pingcap/errors"
	"golang.org/x/exp/slices"
)

var (
	// ErrUnsorted means two neighbours are out of order.
	ErrUnsorted = errors.Normalize("items %d and %d are out of order", errors.RFCCodeText("BlockSort:ErrUnsorted"))
	// ErrUnstable means two equal neighbours swapped their input order.
	ErrUnstable = errors.Normalize("items %d and %d are unstable", errors.RFCCodeText("BlockSort:ErrUnstable"))
	// ErrMismatch means the output differs from the reference.
	ErrMismatch = errors.Normalize("item %d does not match the reference", errors.RFCCodeText("BlockSort:ErrMismatch"))
)

// CheckSorted returns ErrUnsorted for the first pair of neighbours in x that
// cmp puts out of order.
func CheckSorted[E any](x []E, cmp func(a, b E) int) error {
	for i := 1; i < len(x); i++ {
		if cmp(x[i-1], x[i]) > 0 {
			return ErrUnsorted.GenWithStackByArgs(i-1, i)
		}
	}
	return nil
}

// Reference returns a sorted copy of pairs made by a stable sort from the
// standard toolbox.
func Reference(pairs []Pair) []Pair {
	ref := slices.Clone(pairs)
	slices.SortStableFunc(ref, ComparePairs)
	return ref
}

// CheckPairs verifies got, sorted pairs from Pairs or DistinctPairs, against
// ref: order first, then stability, then item by item equality.
func CheckPairs(got, ref []Pair) error {
	if len(got) != len(ref) {
		return errors.Errorf("got %d pairs, want %d", len(got), len(ref))
	}
	for i := 1; i < len(got); i++ {
		switch c := ComparePairs(got[i-1], got[i]); {
		case c > 0:
			return ErrUnsorted.GenWithStackByArgs(i-1, i)
		case c == 0 && got[i-1].Value > got[i].Value:
			return ErrUnstable.GenWithStackByArgs(i-1, i)
		}
	}
	for i := range got {
		if got[i] != ref[i] {
			return ErrMismatch.GenWithStackByArgs(i)
		}
	}
	return nil
}

// SameMultiset reports whether a and b hold the same items, counting
// repetitions.
func SameMultiset[E comparable](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[E]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// CountDistinct returns the number of different keys among pairs.
func CountDistinct(pairs []Pair) int {
	seen := make(map[int]struct{}, len(pairs))
	for _, p := range pairs {
		seen[p.Key] = struct{}{}
	}
	return len(seen)
}
