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
	"sync"

	"github.com/pingcap/blocksort/pkg/util/promutil"
	"github.com/prometheus/client_golang/prometheus"
)

// label constants.
const (
	LblStrategy = "strategy"
	LblBuffer   = "buffer"
	LblType     = "type"
	LblResult   = "result"
	LblLength   = "length"
	LblKeys     = "keys"
)

var registerOnce sync.Once

func init() {
	InitMetrics()
}

// InitMetrics is used to initialize metrics.
func InitMetrics() {
	InitBlockSortMetrics()
}

// NewCounterVec creates a new CounterVec.
func NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(opts, labelNames)
}

// NewHistogramVec creates a new HistogramVec.
func NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(opts, labelNames)
}

// NewGaugeVec creates a new GaugeVec.
func NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(opts, labelNames)
}

// RegisterMetrics registers every collector of this package to r. Only the
// first call has an effect.
func RegisterMetrics(r promutil.Registry) {
	registerOnce.Do(func() {
		r.MustRegister(BlockSortCounter)
		r.MustRegister(BlockSortLengthHistogram)
		r.MustRegister(BlockSortDurationHistogram)
		r.MustRegister(BlockSortSmoothedDuration)
		r.MustRegister(VerifyCounter)
	})
}
