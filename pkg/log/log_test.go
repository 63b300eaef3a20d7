// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Falco Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultIsNop(t *testing.T) {
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))

	L().Debug("hello", zap.Int("n", 1))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)

	restore()
	L().Debug("dropped")
	assert.Equal(t, 1, logs.Len())

	restore = Replace(nil)
	defer restore()
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLevels(t *testing.T) {
	lg, err := New(WithLevel(OffLevel))
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zapcore.ErrorLevel))

	lg, err = New(WithLevel(WarnLevel))
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, lg.Core().Enabled(zapcore.WarnLevel))

	lg, err = New()
	require.NoError(t, err)
	assert.True(t, lg.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, lg.Core().Enabled(zapcore.DebugLevel))

	_, err = New(WithLevel("verbose"))
	assert.Error(t, err)

	_, err = New(WithFormat("xml"))
	assert.Error(t, err)
}

func TestNewJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	lg, err := New(WithLevel(DebugLevel), WithFormat(JSONFormat), WithOutputPaths(path, ""))
	require.NoError(t, err)

	lg.Debug("created", zap.Uint32("value", 7))
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "created", entry["msg"])
	assert.Equal(t, "debug", entry["lvl"])
	assert.Equal(t, loggerName, entry["logger"])
	assert.Equal(t, float64(7), entry["value"])
}
