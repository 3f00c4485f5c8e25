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

import "github.com/prometheus/client_golang/prometheus"

// Block sort metrics.
var (
	BlockSortCounter           *prometheus.CounterVec
	BlockSortLengthHistogram   *prometheus.HistogramVec
	BlockSortDurationHistogram *prometheus.HistogramVec
	BlockSortSmoothedDuration  *prometheus.GaugeVec
	VerifyCounter              *prometheus.CounterVec
)

// InitBlockSortMetrics initializes block sort metrics.
func InitBlockSortMetrics() {
	BlockSortCounter = NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blocksort",
			Subsystem: "engine",
			Name:      "sort_total",
			Help:      "Counter of sort calls by selected strategy and buffer mode.",
		}, []string{LblStrategy, LblBuffer})

	BlockSortLengthHistogram = NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blocksort",
			Subsystem: "engine",
			Name:      "sort_length",
			Help:      "Bucketed histogram of the number of elements sorted per call.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 12), // 16 ~ 64Mi
		}, []string{LblStrategy})

	BlockSortDurationHistogram = NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blocksort",
			Subsystem: "bench",
			Name:      "sort_duration_seconds",
			Help:      "Bucketed histogram of the time (s) the driver spent in one sort.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 24), // 10us ~ 84s
		}, []string{LblType, LblBuffer})

	BlockSortSmoothedDuration = NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "blocksort",
			Subsystem: "bench",
			Name:      "smoothed_duration_seconds",
			Help:      "Moving average of the sort time (s) per input shape.",
		}, []string{LblType, LblBuffer, LblLength, LblKeys})

	VerifyCounter = NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blocksort",
			Subsystem: "bench",
			Name:      "verify_total",
			Help:      "Counter of verified scenarios by result.",
		}, []string{LblResult})
}
