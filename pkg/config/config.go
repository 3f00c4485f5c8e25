// Copyright 2017 PingCAP, Inc.
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

package config

import (
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/blocksort/pkg/blocksort"
	"github.com/pingcap/blocksort/pkg/util/logutil"
	"github.com/pingcap/errors"
)

// ErrConfigValidationFailed is returned when a config file or flag value is
// rejected.
var ErrConfigValidationFailed = errors.Normalize("config validation failed: %s", errors.RFCCodeText("BlockSort:ErrConfigValidationFailed"))

// Config contains configuration options.
type Config struct {
	Log    Log    `toml:"log" json:"log"`
	Bench  Bench  `toml:"bench" json:"bench"`
	Verify Verify `toml:"verify" json:"verify"`
}

// Log is the log section of config.
type Log struct {
	// Log level.
	Level string `toml:"level" json:"level"`
	// Log format. one of json, text, or console.
	Format string `toml:"format" json:"format"`
	// Disable automatic timestamps in output.
	DisableTimestamp bool `toml:"disable-timestamp" json:"disable-timestamp"`
	// File log config.
	File logutil.FileLogConfig `toml:"file" json:"file"`
}

// Bench is the bench section of the config.
type Bench struct {
	Lengths   []int    `toml:"lengths" json:"lengths"`
	KeyCounts []int    `toml:"key-counts" json:"key-counts"`
	Buffers   []string `toml:"buffers" json:"buffers"`
	Rounds    int      `toml:"rounds" json:"rounds"`
	Seed      int32    `toml:"seed" json:"seed"`
	// Smoothing is the factor of the moving average over round timings.
	Smoothing float64 `toml:"smoothing" json:"smoothing"`
	// Stable and Sorty time the standard library stable sort and sorty on the
	// same inputs.
	Stable bool `toml:"stable" json:"stable"`
	Sorty  bool `toml:"sorty" json:"sorty"`
	// SortyConcurrency caps the goroutines sorty may use, 0 keeps its default.
	SortyConcurrency int `toml:"sorty-concurrency" json:"sorty-concurrency"`
}

// Verify is the verify section of the config.
type Verify struct {
	// MaxLength and MaxKeyCount bound the sweep over lengths 5, 50, 500, ...
	// and key counts 1, 3, 7, 15, ...
	MaxLength   int   `toml:"max-length" json:"max-length"`
	MaxKeyCount int   `toml:"max-key-count" json:"max-key-count"`
	Seed        int32 `toml:"seed" json:"seed"`
	// Scenarios runs the fixed list of inputs that force each strategy.
	Scenarios bool `toml:"scenarios" json:"scenarios"`
	// ScenarioMaxLength drops the scenarios longer than this.
	ScenarioMaxLength int `toml:"scenario-max-length" json:"scenario-max-length"`
	// Concurrency is how many buffer policies sort the same input at once.
	Concurrency int `toml:"concurrency" json:"concurrency"`
}

var defaultConf = Config{
	Log: Log{
		Level:  logutil.DefaultLogLevel,
		Format: logutil.DefaultLogFormat,
		File:   logutil.NewFileLogConfig(logutil.DefaultLogMaxSize),
	},
	Bench: Bench{
		Lengths:   []int{1 << 10, 1 << 16, 1 << 20},
		KeyCounts: []int{3, 1023, 0},
		Buffers:   []string{"none", "static", "dynamic"},
		Rounds:    5,
		Seed:      100000001,
		Smoothing: 0.3,
		Stable:    true,
		Sorty:     true,
	},
	Verify: Verify{
		MaxLength:         500000,
		MaxKeyCount:       250000,
		Seed:              100000001,
		Scenarios:         true,
		ScenarioMaxLength: 1000000,
		Concurrency:       3,
	},
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	conf, err := CloneConf(&defaultConf)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load loads config options from a toml file. Unknown keys are rejected.
func (c *Config) Load(confFile string) error {
	metaData, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Trace(err)
	}
	if undecoded := metaData.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, item := range undecoded {
			keys = append(keys, item.String())
		}
		return ErrConfigValidationFailed.GenWithStackByArgs("unknown keys " + strings.Join(keys, ", "))
	}
	return nil
}

// Valid checks if this config is valid.
func (c *Config) Valid() error {
	if _, err := c.Bench.BufferPolicies(); err != nil {
		return errors.Trace(err)
	}
	if c.Bench.Rounds < 1 {
		return ErrConfigValidationFailed.GenWithStackByArgs("bench.rounds must be positive")
	}
	if c.Bench.Smoothing <= 0 || c.Bench.Smoothing >= 1 {
		return ErrConfigValidationFailed.GenWithStackByArgs("bench.smoothing must be in (0, 1)")
	}
	for _, n := range c.Bench.Lengths {
		if n < 0 {
			return ErrConfigValidationFailed.GenWithStackByArgs("bench.lengths must not be negative")
		}
	}
	for _, n := range c.Bench.KeyCounts {
		if n < 0 {
			return ErrConfigValidationFailed.GenWithStackByArgs("bench.key-counts must not be negative")
		}
	}
	if c.Bench.SortyConcurrency < 0 {
		return ErrConfigValidationFailed.GenWithStackByArgs("bench.sorty-concurrency must not be negative")
	}
	if c.Verify.MaxLength < 0 || c.Verify.MaxKeyCount < 0 || c.Verify.ScenarioMaxLength < 0 {
		return ErrConfigValidationFailed.GenWithStackByArgs("verify limits must not be negative")
	}
	if c.Verify.Concurrency < 1 {
		return ErrConfigValidationFailed.GenWithStackByArgs("verify.concurrency must be positive")
	}
	return nil
}

// BufferPolicies parses Buffers.
func (b *Bench) BufferPolicies() ([]blocksort.BufferPolicy, error) {
	policies := make([]blocksort.BufferPolicy, 0, len(b.Buffers))
	for _, name := range b.Buffers {
		policy, err := blocksort.ParseBufferPolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// ToLogConfig converts *Log to *logutil.LogConfig.
func (l *Log) ToLogConfig() *logutil.LogConfig {
	return logutil.NewLogConfig(l.Level, l.Format, l.File, l.DisableTimestamp)
}

// CloneConf deeply clones this config.
func CloneConf(conf *Config) (*Config, error) {
	content, err := json.Marshal(conf)
	if err != nil {
		return nil, err
	}
	var clonedConf Config
	if err := json.Unmarshal(content, &clonedConf); err != nil {
		return nil, err
	}
	return &clonedConf, nil
}
