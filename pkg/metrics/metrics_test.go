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

package metrics

import (
	"testing"

	"github.com/pingcap/blocksort/pkg/util/promutil"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	// Make sure it doesn't panic.
	BlockSortCounter.WithLabelValues("full-buffer", "none").Inc()
	BlockSortLengthHistogram.WithLabelValues("full-buffer").Observe(1024)
	BlockSortDurationHistogram.WithLabelValues("blocksort", "dynamic").Observe(0.5)
	BlockSortSmoothedDuration.WithLabelValues("stable", "none", "1024", "3").Set(0.25)
	VerifyCounter.WithLabelValues("ok").Inc()
	require.Equal(t, 0.25, testutil.ToFloat64(BlockSortSmoothedDuration.WithLabelValues("stable", "none", "1024", "3")))
}

func TestRegisterMetrics(t *testing.T) {
	r := promutil.NewDefaultRegistry()
	RegisterMetrics(r)
	// Registering twice must not panic on duplicate collectors.
	RegisterMetrics(r)

	before := testutil.ToFloat64(BlockSortCounter.WithLabelValues("lazy", "external"))
	BlockSortCounter.WithLabelValues("lazy", "external").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(BlockSortCounter.WithLabelValues("lazy", "external")))

	text, err := promutil.Gather(r)
	require.NoError(t, err)
	require.Contains(t, text, "blocksort_engine_sort_total")
}
