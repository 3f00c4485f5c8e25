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

// Package blocksort implements an in-place, stable block merge sort.
//
// The sort needs O(1) extra memory: it collects up to 2*sqrt(n) distinct
// elements from the input and uses them both as a scrolling merge buffer and
// as tags that record where each block came from. An optional external
// buffer whose length is a power of two replaces swaps with plain writes in
// the buffer-assisted merges.
//
// Depending on how many distinct values the input holds, one of three tiers
// is used:
//
//   - StrategyFullBuffer: enough distinct values for keys plus a scrolling
//     buffer of one block.
//   - StrategyKeyBuffer: at least four distinct values; merges use part of
//     the keys as a small buffer when possible and rotation based merges
//     otherwise.
//   - StrategyLazy: fewer than four distinct values; a buffer-free merge sort
//     built on rotations.
//
// The comparator must describe a strict weak ordering. Violations produce an
// unspecified permutation of the input, they are not detected.
package blocksort
