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
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falcosecurity/counter-ffi-go/pkg/cgo"
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
)

func TestNewInstance(t *testing.T) {
	baseline := LiveAllocations()
	in := NewInstance(counter.Args{Init: 10, Step: 3})
	assert.Equal(t, counter.Snapshot{Value: 10, Step: 3}, in.Counter().Snapshot())
	require.Equal(t, 3, in.Positions().Len())
	assert.Equal(t, baseline+1, LiveAllocations())

	in.Destroy()
	assert.Equal(t, baseline, LiveAllocations())
	assert.Nil(t, in.Positions().ArrayPtr())
}

func TestCreateDestroy(t *testing.T) {
	handles := cgo.Count()
	allocs := LiveAllocations()

	h := Create(counter.Args{Init: 1, Step: 2})
	require.NotZero(t, h)
	assert.Equal(t, handles+1, cgo.Count())
	assert.Equal(t, allocs+1, LiveAllocations())

	in, err := Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), in.Counter().Increment())

	Destroy(h)
	assert.Equal(t, handles, cgo.Count())
	assert.Equal(t, allocs, LiveAllocations())

	_, err = Lookup(h)
	assert.ErrorIs(t, err, cgo.ErrInvalidHandle)

	// second destroy and null destroy are ignored
	Destroy(h)
	Destroy(0)
	assert.Equal(t, handles, cgo.Count())
	assert.Equal(t, allocs, LiveAllocations())
}

func TestCreateNoLeaks(t *testing.T) {
	handles := cgo.Count()
	allocs := LiveAllocations()

	var hs []uintptr
	for i := 0; i < 100; i++ {
		hs = append(hs, Create(counter.Args{Init: uint32(i), Step: 1}))
	}
	for _, h := range hs {
		Destroy(h)
	}
	assert.Equal(t, handles, cgo.Count())
	assert.Equal(t, allocs, LiveAllocations())
}

func TestPositionsStable(t *testing.T) {
	h := Create(counter.Args{Init: 0, Step: 5})
	defer Destroy(h)

	in, err := Lookup(h)
	require.NoError(t, err)
	before := in.Positions().ArrayPtr()

	in.Counter().IncrementByMany([]uint32{1, 2, 3})
	in.Counter().Decrement()

	after, err := Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, before, after.Positions().ArrayPtr())

	var got []counter.Point2D
	for i := 0; i < after.Positions().Len(); i++ {
		got = append(got, after.Positions().Get(i))
	}
	if diff := cmp.Diff(counter.DefaultPositions(), got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentHandles(t *testing.T) {
	const workers = 8
	const rounds = 50

	handles := cgo.Count()
	allocs := LiveAllocations()

	var wg sync.WaitGroup
	errs := make(chan string, workers*rounds)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w uint32) {
			defer wg.Done()
			for r := uint32(0); r < rounds; r++ {
				initial := w*1000 + r
				h := Create(counter.Args{Init: initial, Step: w + 1})
				got := Guard("testConcurrent", h, func(in *Instance) uint32 {
					in.Counter().Increment()
					in.Counter().DecrementBy(1)
					return in.Counter().IncrementByMany([]uint32{1, 2})
				})
				if want := initial + w + 3; got != want {
					errs <- "unexpected value"
				}
				Destroy(h)
				if Guard("testConcurrent", h, func(*Instance) bool { return true }) {
					errs <- "destroyed handle still resolves"
				}
			}
		}(uint32(w))
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	assert.Equal(t, handles, cgo.Count())
	assert.Equal(t, allocs, LiveAllocations())
}
