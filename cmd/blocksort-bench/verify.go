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

package main

import (
	"context"
	"time"

	"github.com/pingcap/blocksort/pkg/blocksort"
	"github.com/pingcap/blocksort/pkg/config"
	"github.com/pingcap/blocksort/pkg/metrics"
	"github.com/pingcap/blocksort/pkg/util/logutil"
	"github.com/pingcap/blocksort/pkg/util/sortutil"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	flagMaxLength         = "max-length"
	flagMaxKeyCount       = "max-key-count"
	flagScenarios         = "scenarios"
	flagScenarioMaxLength = "scenario-max-length"
	flagConcurrency       = "concurrency"

	typeBlockSort = "blocksort"
	typeStable    = "stable"
	typeSorty     = "sorty"

	resultOK     = "ok"
	resultFailed = "failed"
)

// scenario is one generated input: length pairs with keys drawn from
// [0, keyCount).
type scenario struct {
	name     string
	length   int
	keyCount int
	// strict scenarios must be sorted with strategy.
	strict   bool
	strategy blocksort.Strategy
}

// strategyScenarios are inputs known to end up in each tier.
var strategyScenarios = []scenario{
	{"insertion", 15, 4, true, blocksort.StrategyInsertion},
	{"insertion", 15, 8, true, blocksort.StrategyInsertion},

	{"lazy", 1000000, 3, true, blocksort.StrategyLazy},
	{"key-buffer", 1000000, 1023, true, blocksort.StrategyKeyBuffer},
	{"full-buffer", 1000000, 500000, true, blocksort.StrategyFullBuffer},

	{"lazy", 10000000, 3, true, blocksort.StrategyLazy},
	{"key-buffer", 10000000, 4095, true, blocksort.StrategyKeyBuffer},
	{"full-buffer", 10000000, 5000000, true, blocksort.StrategyFullBuffer},

	{"lazy", 50000000, 3, true, blocksort.StrategyLazy},
	{"key-buffer", 50000000, 8191, true, blocksort.StrategyKeyBuffer},
	{"full-buffer", 50000000, 25000000, true, blocksort.StrategyFullBuffer},
}

// sweepScenarios lists lengths 5, 50, 500, ... up to maxLength, each with key
// counts 1, 3, 7, 15, ... below the length and up to maxKeyCount.
func sweepScenarios(maxLength, maxKeyCount int) []scenario {
	var scenarios []scenario
	for length := 5; length <= maxLength; length *= 10 {
		for v := 2; v <= length && v <= maxKeyCount; v *= 2 {
			scenarios = append(scenarios, scenario{name: "sweep", length: length, keyCount: v - 1})
		}
	}
	return scenarios
}

// NewVerifyCommand returns the verify subcommand.
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "sort generated inputs with every buffer policy and check them against a reference stable sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := initConfig(cmd, parseVerifyFlags)
			if err != nil {
				return err
			}
			ctx := logutil.WithCategory(cmd.Context(), "verify")
			if err := runVerify(ctx, &conf.Verify); err != nil {
				return err
			}
			return printMetrics(cmd)
		},
	}
	cmd.Flags().Int(flagMaxLength, 0, "Set the longest input of the sweep")
	cmd.Flags().Int(flagMaxKeyCount, 0, "Set the largest key count of the sweep")
	cmd.Flags().Int32(flagSeed, 0, "Set the seed of the input generator")
	cmd.Flags().Bool(flagScenarios, true, "Run the inputs that force each strategy after the sweep")
	cmd.Flags().Int(flagScenarioMaxLength, 0, "Skip strategy inputs longer than this")
	cmd.Flags().Int(flagConcurrency, 0, "Set how many buffer policies sort the same input at once")
	return cmd
}

func parseVerifyFlags(conf *config.Config, flags *pflag.FlagSet) error {
	var err error
	v := &conf.Verify
	if flags.Changed(flagMaxLength) {
		if v.MaxLength, err = flags.GetInt(flagMaxLength); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagMaxKeyCount) {
		if v.MaxKeyCount, err = flags.GetInt(flagMaxKeyCount); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagSeed) {
		if v.Seed, err = flags.GetInt32(flagSeed); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagScenarios) {
		if v.Scenarios, err = flags.GetBool(flagScenarios); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagScenarioMaxLength) {
		if v.ScenarioMaxLength, err = flags.GetInt(flagScenarioMaxLength); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagConcurrency) {
		if v.Concurrency, err = flags.GetInt(flagConcurrency); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func runVerify(ctx context.Context, conf *config.Verify) error {
	scenarios := sweepScenarios(conf.MaxLength, conf.MaxKeyCount)
	if conf.Scenarios {
		for _, sc := range strategyScenarios {
			if sc.length <= conf.ScenarioMaxLength {
				scenarios = append(scenarios, sc)
			}
		}
	}

	start := time.Now()
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		if err := verifyScenario(ctx, sc, conf.Seed, conf.Concurrency); err != nil {
			return err
		}
	}
	logutil.Logger(ctx).Info("all inputs sorted correctly",
		zap.Int("inputs", len(scenarios)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// verifyScenario sorts the input of sc once per buffer policy, at most
// concurrency of them at a time, and checks every result against the
// reference.
func verifyScenario(ctx context.Context, sc scenario, seed int32, concurrency int) error {
	logger := logutil.Logger(ctx).With(
		zap.String(logutil.LogFieldScenario, sc.name),
		zap.Int("length", sc.length),
		zap.Int("keyCount", sc.keyCount))
	logf := logger.Debug
	if sc.strict {
		logf = logger.Info
	}

	input := sortutil.NewGenerator(seed).Pairs(sc.length, sc.keyCount)
	start := time.Now()
	ref := sortutil.Reference(input)
	elapsed := time.Since(start)
	metrics.BlockSortDurationHistogram.WithLabelValues(typeStable, blocksort.NoBuffer.String()).Observe(elapsed.Seconds())
	logf("reference sorted", zap.Duration("elapsed", elapsed))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for _, policy := range blocksort.BufferPolicies {
		policy := policy
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return errors.Trace(err)
			}
			err := verifyPolicy(sc, policy, input, ref, logf)
			if err != nil {
				metrics.VerifyCounter.WithLabelValues(resultFailed).Inc()
				logger.Error("sort verification failed", zap.Stringer("buffer", policy), zap.Error(err))
				return errors.Annotatef(err, "%s input of %d items with %d keys, %s buffer",
					sc.name, sc.length, sc.keyCount, policy)
			}
			metrics.VerifyCounter.WithLabelValues(resultOK).Inc()
			return nil
		})
	}
	return eg.Wait()
}

// verifyPolicy sorts a copy of input with policy. input and ref are only read.
func verifyPolicy(sc scenario, policy blocksort.BufferPolicy, input, ref []sortutil.Pair, logf func(string, ...zap.Field)) error {
	data := slices.Clone(input)
	buf := blocksort.NewBuffer[sortutil.Pair](policy, len(data))

	start := time.Now()
	stats, err := blocksort.SortStatsFunc(data, sortutil.ComparePairs, buf)
	if err != nil {
		return errors.Trace(err)
	}
	elapsed := time.Since(start)
	metrics.BlockSortDurationHistogram.WithLabelValues(typeBlockSort, policy.String()).Observe(elapsed.Seconds())

	if err := sortutil.CheckPairs(data, ref); err != nil {
		return err
	}
	if sc.strict && stats.Strategy != sc.strategy {
		return errors.Errorf("sorted with strategy %s instead of %s", stats.Strategy, sc.strategy)
	}
	logf("sort verified",
		zap.Stringer("buffer", policy),
		zap.Stringer("strategy", stats.Strategy),
		zap.Int("keysFound", stats.KeysFound),
		zap.Duration("elapsed", elapsed))
	return nil
}
