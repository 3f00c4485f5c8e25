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

package testfork

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// T wraps testing.T so a test body can pick values. RunTest replays the body
// once for every combination of the values it picks.
type T struct {
	*testing.T
	picker *picker
}

type choice struct {
	index int
	count int
}

type picker struct {
	path  []choice
	depth int
	names []string
}

func (p *picker) pick(t require.TestingT, count int) int {
	require.Greater(t, count, 0, "nothing to pick from")
	if p.depth < len(p.path) {
		c := p.path[p.depth]
		require.Equal(t, c.count, count, "picks must be deterministic across forks")
		p.depth++
		return c.index
	}
	p.path = append(p.path, choice{count: count})
	p.depth++
	return 0
}

// advance moves to the next combination in lexicographic order.
func (p *picker) advance() bool {
	p.depth = 0
	p.names = p.names[:0]
	for len(p.path) > 0 {
		last := &p.path[len(p.path)-1]
		if last.index+1 < last.count {
			last.index++
			return true
		}
		p.path = p.path[:len(p.path)-1]
	}
	return false
}

// RunTest runs f as a subtest, once per combination of its picks.
func RunTest(t *testing.T, f func(t *T)) {
	p := &picker{}
	for fork := 0; ; fork++ {
		t.Run(fmt.Sprintf("fork-%d", fork), func(t *testing.T) {
			f(&T{T: t, picker: p})
			t.Logf("picked %s", strings.Join(p.names, ","))
		})
		if !p.advance() {
			return
		}
	}
}

// Pick returns one of the values, every value in turn across forks.
func Pick[E any](t *T, values []E) E {
	v := values[t.picker.pick(t, len(values))]
	t.picker.names = append(t.picker.names, fmt.Sprintf("%v", v))
	return v
}

// PickEnum is Pick over its arguments.
func PickEnum[E any](t *T, values ...E) E {
	return Pick(t, values)
}
