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

package loader

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
)

// LibraryEnvVar points to a counter shared library built with:
// go build -buildmode=c-shared -o libcounter.so ./cmd/libcounter
const LibraryEnvVar = "COUNTER_FFI_LIBRARY"

func openLibrary(t *testing.T) *Library {
	path := os.Getenv(LibraryEnvVar)
	if len(path) == 0 {
		t.Skipf("%s is not set", LibraryEnvVar)
	}
	lib, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(lib.Close)
	return lib
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.so"))
	assert.Error(t, err)
}

func TestCounter(t *testing.T) {
	lib := openLibrary(t)

	c, err := lib.NewCounter(10, 3)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, counter.Snapshot{Value: 10, Step: 3}, c.Snapshot())
	assert.Equal(t, uint32(13), c.Increment())
	assert.Equal(t, uint32(6), c.DecrementBy(7))
	assert.Equal(t, uint32(12), c.IncrementByMany(1, 2, 3))
	assert.Equal(t, uint32(9), c.Decrement())
	assert.Equal(t, uint32(12), c.IncrementBy(3))
	assert.Equal(t, uint32(2), c.DecrementByMany(4, 6))
	assert.Equal(t, uint32(2), c.IncrementByMany())
	assert.Equal(t, uint32(2), c.Value())

	if diff := cmp.Diff(counter.DefaultPositions(), c.Positions()); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestCounterWraparound(t *testing.T) {
	lib := openLibrary(t)

	c, err := lib.NewCounter(math.MaxUint32, 2)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, uint32(1), c.Increment())
	assert.Equal(t, uint32(math.MaxUint32), c.Decrement())
}

func TestCounterClose(t *testing.T) {
	lib := openLibrary(t)

	c, err := lib.NewCounter(5, 5)
	require.NoError(t, err)
	assert.False(t, c.Closed())

	c.Close()
	assert.True(t, c.Closed())
	assert.Zero(t, c.Value())
	assert.Zero(t, c.Increment())
	assert.Equal(t, counter.Snapshot{}, c.Snapshot())
	assert.Nil(t, c.Positions())
	c.Close()
}

func TestCounterConcurrent(t *testing.T) {
	lib := openLibrary(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i uint32) {
			defer wg.Done()
			c, err := lib.NewCounter(i, 1)
			if !assert.NoError(t, err) {
				return
			}
			defer c.Close()
			for j := 0; j < 1000; j++ {
				c.Increment()
			}
			assert.Equal(t, i+1000, c.Value())
		}(uint32(i))
	}
	wg.Wait()
}

func TestConfigure(t *testing.T) {
	lib := openLibrary(t)

	assert.NoError(t, lib.Configure("logLevel: off"))
	assert.Error(t, lib.Configure("logLevel: verbose"))
	assert.Error(t, lib.Configure("unknown: 1"))
}

func TestMetrics(t *testing.T) {
	lib := openLibrary(t)

	c, err := lib.NewCounter(0, 1)
	require.NoError(t, err)
	c.Increment()
	c.Close()

	text, err := lib.Metrics()
	require.NoError(t, err)
	assert.Contains(t, text, `counter_ffi_calls_total{op="incrementCounter"}`)
	assert.Contains(t, text, "counter_ffi_live_handles")
}

func TestClosedLibrary(t *testing.T) {
	lib := openLibrary(t)
	lib.Close()

	_, err := lib.NewCounter(1, 1)
	assert.Error(t, err)
	_, err = lib.Metrics()
	assert.Error(t, err)
	assert.Error(t, lib.Configure(""))
	lib.Close()
}
