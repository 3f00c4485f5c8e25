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
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jfcg/sorty/v2"
	"github.com/pingcap/blocksort/pkg/blocksort"
	"github.com/pingcap/blocksort/pkg/config"
	"github.com/pingcap/blocksort/pkg/metrics"
	"github.com/pingcap/blocksort/pkg/util/logutil"
	"github.com/pingcap/blocksort/pkg/util/mathutil"
	"github.com/pingcap/blocksort/pkg/util/sortutil"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	flagLength    = "length"
	flagKeys      = "keys"
	flagBuffer    = "buffer"
	flagRounds    = "rounds"
	flagSmoothing = "smoothing"
	flagStable    = "stable"
	flagSorty     = "sorty"
)

// contender is one way of sorting the bench inputs.
type contender struct {
	typ    string
	buffer string
	sort   func(data []sortutil.Pair) error
}

// NewBenchCommand returns the bench subcommand.
func NewBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time the block sort against the standard library stable sort and sorty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := initConfig(cmd, parseBenchFlags)
			if err != nil {
				return err
			}
			ctx := logutil.WithCategory(cmd.Context(), "bench")
			if err := runBench(ctx, &conf.Bench, cmd.OutOrStdout()); err != nil {
				return err
			}
			return printMetrics(cmd)
		},
	}
	cmd.Flags().IntSlice(flagLength, nil, "Set the input lengths")
	cmd.Flags().IntSlice(flagKeys, nil, "Set the key counts, 0 draws keys from [0, 1e9)")
	cmd.Flags().StringSlice(flagBuffer, nil, "Set the buffer policies: none, static or dynamic")
	cmd.Flags().Int(flagRounds, 0, "Set how many times each input is sorted")
	cmd.Flags().Float64(flagSmoothing, 0, "Set the moving average factor over the rounds, in (0, 1)")
	cmd.Flags().Int32(flagSeed, 0, "Set the seed of the input generator")
	cmd.Flags().Bool(flagStable, true, "Also time the standard library stable sort")
	cmd.Flags().Bool(flagSorty, true, "Also time sorty, which is concurrent and unstable")
	return cmd
}

func parseBenchFlags(conf *config.Config, flags *pflag.FlagSet) error {
	var err error
	b := &conf.Bench
	if flags.Changed(flagLength) {
		if b.Lengths, err = flags.GetIntSlice(flagLength); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagKeys) {
		if b.KeyCounts, err = flags.GetIntSlice(flagKeys); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagBuffer) {
		if b.Buffers, err = flags.GetStringSlice(flagBuffer); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagRounds) {
		if b.Rounds, err = flags.GetInt(flagRounds); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagSmoothing) {
		if b.Smoothing, err = flags.GetFloat64(flagSmoothing); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagSeed) {
		if b.Seed, err = flags.GetInt32(flagSeed); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagStable) {
		if b.Stable, err = flags.GetBool(flagStable); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(flagSorty) {
		if b.Sorty, err = flags.GetBool(flagSorty); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func sortyPairs(data []sortutil.Pair) {
	sorty.Sort(len(data), func(i, k, r, s int) bool {
		if data[i].Key < data[k].Key { // strict comparator like < or >
			if r != s {
				data[r], data[s] = data[s], data[r]
			}
			return true
		}
		return false
	})
}

func newContenders(conf *config.Bench) ([]contender, error) {
	policies, err := conf.BufferPolicies()
	if err != nil {
		return nil, err
	}
	contenders := make([]contender, 0, len(policies)+2)
	for _, policy := range policies {
		policy := policy
		contenders = append(contenders, contender{
			typ:    typeBlockSort,
			buffer: policy.String(),
			sort: func(data []sortutil.Pair) error {
				return blocksort.SortWithPolicyFunc(data, sortutil.ComparePairs, policy)
			},
		})
	}
	none := blocksort.NoBuffer.String()
	if conf.Stable {
		contenders = append(contenders, contender{typ: typeStable, buffer: none, sort: func(data []sortutil.Pair) error {
			slices.SortStableFunc(data, sortutil.ComparePairs)
			return nil
		}})
	}
	if conf.Sorty {
		contenders = append(contenders, contender{typ: typeSorty, buffer: none, sort: func(data []sortutil.Pair) error {
			sortyPairs(data)
			return nil
		}})
	}
	return contenders, nil
}

func runBench(ctx context.Context, conf *config.Bench, out io.Writer) error {
	contenders, err := newContenders(conf)
	if err != nil {
		return err
	}
	if conf.SortyConcurrency > 0 {
		oldSortyGor := sorty.MaxGor
		sorty.MaxGor = uint64(conf.SortyConcurrency)
		defer func() { sorty.MaxGor = oldSortyGor }()
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Sort", "Buffer", "Length", "Keys", "Smoothed", "Best"})
	for _, length := range conf.Lengths {
		for _, keyCount := range conf.KeyCounts {
			input := sortutil.NewGenerator(conf.Seed).Pairs(length, keyCount)
			ref := sortutil.Reference(input)
			for _, c := range contenders {
				smoothed, best, err := timeContender(ctx, c, input, ref, conf.Rounds, conf.Smoothing)
				if err != nil {
					return errors.Annotatef(err, "%s sort with %s buffer, %d items with %d keys",
						c.typ, c.buffer, length, keyCount)
				}
				metrics.BlockSortSmoothedDuration.
					WithLabelValues(c.typ, c.buffer, strconv.Itoa(length), strconv.Itoa(keyCount)).
					Set(smoothed.Seconds())
				t.AppendRow(table.Row{c.typ, c.buffer, length, keyCount, smoothed, best})
				logutil.Logger(ctx).Debug("input timed",
					zap.String("type", c.typ),
					zap.String("buffer", c.buffer),
					zap.Int("length", length),
					zap.Int("keyCount", keyCount),
					zap.Duration("smoothed", smoothed),
					zap.Duration("best", best))
			}
		}
	}
	_, err = fmt.Fprintln(out, t.Render())
	return errors.Trace(err)
}

// timeContender sorts a copy of input rounds times and returns the smoothed
// and the best duration. The stable sorts are checked against ref, sorty only
// for order.
func timeContender(ctx context.Context, c contender, input, ref []sortutil.Pair, rounds int, smoothing float64) (smoothed, best time.Duration, err error) {
	avg := mathutil.NewExponentialMovingAverage(smoothing, 1)
	data := make([]sortutil.Pair, len(input))
	for round := 0; round < rounds; round++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, errors.Trace(err)
		}
		copy(data, input)
		start := time.Now()
		if err := c.sort(data); err != nil {
			return 0, 0, errors.Trace(err)
		}
		elapsed := time.Since(start)
		metrics.BlockSortDurationHistogram.WithLabelValues(c.typ, c.buffer).Observe(elapsed.Seconds())
		avg.Add(float64(elapsed))
		if round == 0 || elapsed < best {
			best = elapsed
		}
	}

	if c.typ == typeSorty {
		err = sortutil.CheckSorted(data, sortutil.ComparePairs)
	} else {
		err = sortutil.CheckPairs(data, ref)
	}
	if err != nil {
		return 0, 0, err
	}
	return time.Duration(avg.Get()), best, nil
}
