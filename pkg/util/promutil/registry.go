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

package promutil

import (
	"bytes"
	"strings"

	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Registry is the interface to register or unregister metrics.
type Registry = prometheus.Registerer

var _ Registry = noopRegistry{}

type noopRegistry struct{}

func (noopRegistry) Register(_ prometheus.Collector) error {
	return nil
}

func (noopRegistry) MustRegister(_ ...prometheus.Collector) {}

func (noopRegistry) Unregister(_ prometheus.Collector) bool {
	return true
}

// NewNoopRegistry returns a Registry that does nothing. Callers that don't
// want to expose the sort metrics anywhere use it.
func NewNoopRegistry() Registry {
	return noopRegistry{}
}

// NewDefaultRegistry returns a registry that can also be gathered.
func NewDefaultRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Gather renders the metric families of g in the prometheus text format. With
// prefixes, only the families whose name starts with one of them are kept.
func Gather(g prometheus.Gatherer, prefixes ...string) (string, error) {
	families, err := g.Gather()
	if err != nil {
		return "", errors.Trace(err)
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range filterFamilies(families, prefixes) {
		if err := enc.Encode(mf); err != nil {
			return "", errors.Trace(err)
		}
	}
	return buf.String(), nil
}

func filterFamilies(families []*dto.MetricFamily, prefixes []string) []*dto.MetricFamily {
	if len(prefixes) == 0 {
		return families
	}
	kept := families[:0]
	for _, mf := range families {
		for _, prefix := range prefixes {
			if strings.HasPrefix(mf.GetName(), prefix) {
				kept = append(kept, mf)
				break
			}
		}
	}
	return kept
}
