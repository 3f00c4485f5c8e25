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
	"github.com/pingcap/blocksort/pkg/config"
	"github.com/pingcap/blocksort/pkg/metrics"
	"github.com/pingcap/blocksort/pkg/util/logutil"
	"github.com/pingcap/blocksort/pkg/util/promutil"
	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// FlagConfig is the name of config flag.
	FlagConfig = "config"
	// FlagLogLevel is the name of log-level flag.
	FlagLogLevel = "log-level"
	// FlagLogFile is the name of log-file flag.
	FlagLogFile = "log-file"
	// FlagLogFormat is the name of log-format flag.
	FlagLogFormat = "log-format"
	// FlagPrintMetrics is the name of print-metrics flag.
	FlagPrintMetrics = "print-metrics"

	flagSeed = "seed"
)

var registry = newRegistry()

func newRegistry() *prometheus.Registry {
	r := promutil.NewDefaultRegistry()
	r.MustRegister(collectors.NewGoCollector())
	return r
}

// DefineCommonFlags defines the flags shared by every command.
func DefineCommonFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(FlagConfig, "C", "",
		"Set the toml config file. Flags override its values")
	cmd.PersistentFlags().StringP(FlagLogLevel, "L", logutil.DefaultLogLevel,
		"Set the log level")
	cmd.PersistentFlags().String(FlagLogFile, "",
		"Set the log file path. If not set, logs will output to stderr")
	cmd.PersistentFlags().String(FlagLogFormat, logutil.DefaultLogFormat,
		"Set the log format")
	cmd.PersistentFlags().Bool(FlagPrintMetrics, false,
		"Print the collected sort metrics in text format when the command finishes")
}

// initConfig builds the config from the defaults, the config file and the
// flags, later sources winning, and sets up logging and metrics with it.
// parseFlags copies the command's own flags into the config.
func initConfig(cmd *cobra.Command, parseFlags func(*config.Config, *pflag.FlagSet) error) (*config.Config, error) {
	flags := cmd.Flags()
	conf := config.NewConfig()

	path, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if path != "" {
		if err := conf.Load(path); err != nil {
			return nil, errors.Annotatef(err, "load config %s", path)
		}
	}
	if err := parseLogFlags(&conf.Log, flags); err != nil {
		return nil, err
	}
	if err := parseFlags(conf, flags); err != nil {
		return nil, err
	}
	if err := conf.Valid(); err != nil {
		return nil, err
	}

	if err := logutil.InitLogger(conf.Log.ToLogConfig()); err != nil {
		return nil, errors.Trace(err)
	}
	metrics.RegisterMetrics(registry)
	return conf, nil
}

func parseLogFlags(l *config.Log, flags *pflag.FlagSet) error {
	var err error
	if flags.Changed(FlagLogLevel) {
		if l.Level, err = flags.GetString(FlagLogLevel); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(FlagLogFormat) {
		if l.Format, err = flags.GetString(FlagLogFormat); err != nil {
			return errors.Trace(err)
		}
	}
	if flags.Changed(FlagLogFile) {
		if l.File.Filename, err = flags.GetString(FlagLogFile); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func printMetrics(cmd *cobra.Command) error {
	enabled, err := cmd.Flags().GetBool(FlagPrintMetrics)
	if err != nil || !enabled {
		return errors.Trace(err)
	}
	text, err := promutil.Gather(registry, "blocksort_")
	if err != nil {
		return errors.Trace(err)
	}
	cmd.Print(text)
	return nil
}
