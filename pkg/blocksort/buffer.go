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
	"strings"

	"github.com/pingcap/blocksort/pkg/util/mathutil"
	"github.com/pingcap/errors"
)

// StaticBufferLen is the length of the buffer allocated for StaticBuffer.
const StaticBufferLen = 512

// BufferPolicy decides which external buffer a sort call gets.
type BufferPolicy int

const (
	// NoBuffer sorts in place with O(1) extra memory.
	NoBuffer BufferPolicy = iota
	// StaticBuffer uses a fixed buffer of StaticBufferLen items.
	StaticBuffer
	// DynamicBuffer uses a buffer of about sqrt(n) items, the smallest power
	// of two whose square is at least n.
	DynamicBuffer
)

// BufferPolicies lists every policy in declaration order.
var BufferPolicies = []BufferPolicy{NoBuffer, StaticBuffer, DynamicBuffer}

// String implements fmt.Stringer.
func (p BufferPolicy) String() string {
	switch p {
	case NoBuffer:
		return "none"
	case StaticBuffer:
		return "static"
	case DynamicBuffer:
		return "dynamic"
	}
	return "unknown"
}

// ParseBufferPolicy parses the names returned by BufferPolicy.String.
func ParseBufferPolicy(s string) (BufferPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return NoBuffer, nil
	case "static":
		return StaticBuffer, nil
	case "dynamic":
		return DynamicBuffer, nil
	}
	return NoBuffer, errors.Annotatef(ErrInvalidArgument, "unknown buffer policy %q", s)
}

// BufferLen returns the buffer length policy asks for when sorting n items.
func (p BufferPolicy) BufferLen(n int) int {
	switch p {
	case StaticBuffer:
		return StaticBufferLen
	case DynamicBuffer:
		return mathutil.CeilSqrtPowerOfTwo(n)
	}
	return 0
}

// NewBuffer allocates the buffer policy asks for when sorting n items. It
// returns nil for NoBuffer.
func NewBuffer[E any](policy BufferPolicy, n int) []E {
	bufLen := policy.BufferLen(n)
	if bufLen == 0 {
		return nil
	}
	return make([]E, bufLen)
}
