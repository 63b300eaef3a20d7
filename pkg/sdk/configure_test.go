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

package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
	"github.com/falcosecurity/counter-ffi-go/pkg/log"
)

func TestConfigureString(t *testing.T) {
	defer log.Replace(nil)
	defer SetLastError(nil)

	path := filepath.Join(t.TempDir(), "counter.log")
	rc := ConfigureString("logLevel: debug\nlogFormat: json\nlogOutputs: [" + path + "]\n")
	require.Equal(t, RcSuccess, rc)
	assert.NoError(t, LastError())
	assert.True(t, log.L().Core().Enabled(zapcore.DebugLevel))

	Destroy(Create(counter.Args{Init: 1}))
	require.NoError(t, log.L().Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "counter destroyed")

	rc = ConfigureString("logLevel: verbose")
	assert.Equal(t, RcFailure, rc)
	assert.Error(t, LastError())
	// the previous logger is kept
	assert.True(t, log.L().Core().Enabled(zapcore.DebugLevel))

	rc = ConfigureString(`{"logLevel": "off"}`)
	assert.Equal(t, RcSuccess, rc)
	assert.NoError(t, LastError())
	assert.False(t, log.L().Core().Enabled(zapcore.ErrorLevel))
}

// openCount returns how many file descriptors of the process refer to path.
func openCount(t *testing.T, path string) int {
	fds, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("can't list open files: %s", err.Error())
	}
	path, err = filepath.EvalSymlinks(path)
	require.NoError(t, err)
	n := 0
	for _, fd := range fds {
		if target, err := os.Readlink(filepath.Join("/proc/self/fd", fd.Name())); err == nil && target == path {
			n++
		}
	}
	return n
}

func TestConfigureClosesPreviousOutputs(t *testing.T) {
	defer SetLastError(nil)
	defer ConfigureString("")

	first := filepath.Join(t.TempDir(), "first.log")
	second := filepath.Join(t.TempDir(), "second.log")

	require.Equal(t, RcSuccess, ConfigureString("logLevel: debug\nlogOutputs: ["+first+"]\n"))
	Destroy(Create(counter.Args{Init: 2}))
	assert.Equal(t, 1, openCount(t, first))

	require.Equal(t, RcSuccess, ConfigureString("logLevel: debug\nlogOutputs: ["+second+"]\n"))
	assert.Equal(t, 0, openCount(t, first))
	assert.Equal(t, 1, openCount(t, second))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "counter destroyed")

	require.Equal(t, RcSuccess, ConfigureString("logLevel: off"))
	assert.Equal(t, 0, openCount(t, second))
}
