// Copyright 2022 PingCAP, Inc.
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

// ExponentialMovingAverage smooths a series of samples. The first warmupWindow
// samples are averaged arithmetically, later ones are blended in with factor.
// It is not thread-safe.
type ExponentialMovingAverage struct {
	value        float64
	sum          float64
	factor       float64
	warmupWindow int
	count        int
}

// NewExponentialMovingAverage creates an ExponentialMovingAverage. factor must
// be in (0, 1).
func NewExponentialMovingAverage(factor float64, warmupWindow int) *ExponentialMovingAverage {
	if factor >= 1 || factor <= 0 {
		panic("factor must be (0, 1)")
	}
	return &ExponentialMovingAverage{factor: factor, warmupWindow: warmupWindow}
}

// Add feeds one sample.
func (m *ExponentialMovingAverage) Add(value float64) {
	m.count++
	if m.count <= m.warmupWindow {
		m.sum += value
		m.value = m.sum / float64(m.count)
		return
	}
	m.value += (value - m.value) * m.factor
}

// Get returns the smoothed value.
func (m *ExponentialMovingAverage) Get() float64 {
	return m.value
}

// Count returns how many samples have been added.
func (m *ExponentialMovingAverage) Count() int {
	return m.count
}

// Reset drops every sample.
func (m *ExponentialMovingAverage) Reset() {
	m.value, m.sum, m.count = 0, 0, 0
}
