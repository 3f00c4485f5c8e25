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

package logutil

import (
	"context"
	"testing"

	"github.com/pingcap/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLevel(t *testing.T) {
	conf := NewLogConfig("info", DefaultLogFormat, EmptyFileLogConfig(), false)
	require.NoError(t, InitLogger(conf))

	require.NoError(t, SetLevel("debug"))
	require.Equal(t, zap.DebugLevel, log.GetLevel())
	require.NoError(t, SetLevel("warn"))
	require.Equal(t, zap.WarnLevel, log.GetLevel())
	require.Error(t, SetLevel("unknown"))
	require.NoError(t, SetLevel("info"))
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := context.WithValue(context.Background(), CtxLogKey, zap.New(core))

	ctx = WithCategory(ctx, "blocksort")
	ctx = WithFields(ctx, zap.String(LogFieldScenario, "strategy-1"))
	Logger(ctx).Info("sorted")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "blocksort", fields[LogFieldCategory])
	require.Equal(t, "strategy-1", fields[LogFieldScenario])
}

func TestLoggerFallsBackToGlobal(t *testing.T) {
	require.Equal(t, log.L(), Logger(context.Background()))
	require.Equal(t, log.L(), BgLogger())
}
