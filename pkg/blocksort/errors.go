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
	"github.com/pingcap/blocksort/pkg/util/mathutil"
	"github.com/pingcap/errors"
)

// ErrInvalidArgument is returned when the range or the external buffer passed
// to a sort call is unusable. Nothing is mutated when it is returned.
var ErrInvalidArgument = errors.Normalize("invalid argument", errors.RFCCodeText("BlockSort:ErrInvalidArgument"))

func validateRange(n, start, length int) error {
	if start < 0 || length < 0 {
		return errors.Annotatef(ErrInvalidArgument, "negative range start %d length %d", start, length)
	}
	if start > n-length {
		return errors.Annotatef(ErrInvalidArgument, "range [%d, %d) exceeds sequence length %d", start, start+length, n)
	}
	return nil
}

func validateBuffer(bufLen int) error {
	if bufLen != 0 && !mathutil.IsPowerOfTwo(bufLen) {
		return errors.Annotatef(ErrInvalidArgument, "external buffer length %d is not a power of two", bufLen)
	}
	return nil
}
