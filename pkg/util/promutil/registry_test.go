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

package promutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNoopRegistry(t *testing.T) {
	r := NewNoopRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_total", Help: "noop"})
	require.NoError(t, r.Register(c))
	require.NoError(t, r.Register(c))
	require.True(t, r.Unregister(c))
}

func TestGather(t *testing.T) {
	r := NewDefaultRegistry()
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blocksort",
		Name:      "test_total",
		Help:      "Counter for the gather test.",
	}, []string{"type"})
	r.MustRegister(c)
	c.WithLabelValues("a").Add(3)

	text, err := Gather(r)
	require.NoError(t, err)
	require.Contains(t, text, "# HELP blocksort_test_total Counter for the gather test.")
	require.Contains(t, text, `blocksort_test_total{type="a"} 3`)

	r.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: "other_gauge", Help: "Unrelated gauge."}))
	text, err = Gather(r, "blocksort_")
	require.NoError(t, err)
	require.Contains(t, text, "blocksort_test_total")
	require.NotContains(t, text, "other_gauge")

	text, err = Gather(r)
	require.NoError(t, err)
	require.Contains(t, text, "other_gauge")
}

func TestFilterFamilies(t *testing.T) {
	name := func(s string) *dto.MetricFamily { return &dto.MetricFamily{Name: &s} }
	families := []*dto.MetricFamily{name("blocksort_a"), name("go_goroutines"), name("blocksort_b")}
	kept := filterFamilies(families, []string{"blocksort_"})
	require.Len(t, kept, 2)
	require.Equal(t, "blocksort_b", kept[1].GetName())
}
