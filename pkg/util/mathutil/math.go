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

import "golang.org/x/exp/constraints"

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// DivCeil returns ceil(a / b) for a >= 0 and b > 0.
func DivCeil[T constraints.Integer](a, b T) T {
	if a == 0 {
		return 0
	}
	return (a-1)/b + 1
}

// CeilSqrtPowerOfTwo returns the smallest power of two p with p*p >= n.
func CeilSqrtPowerOfTwo(n int) int {
	p := 1
	for p*p < n {
		p *= 2
	}
	return p
}

// FloorPowerOfTwo returns the largest power of two not greater than n, or 0
// when n < 1.
func FloorPowerOfTwo(n int) int {
	if n < 1 {
		return 0
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
