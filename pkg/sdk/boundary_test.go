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
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/falcosecurity/counter-ffi-go/pkg/cgo"
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
	"github.com/falcosecurity/counter-ffi-go/pkg/log"
	"github.com/falcosecurity/counter-ffi-go/pkg/metrics"
	"github.com/falcosecurity/counter-ffi-go/pkg/ptr"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(log.Replace(zap.New(core)))
	return logs
}

func TestLookup(t *testing.T) {
	_, err := Lookup(0)
	assert.ErrorIs(t, err, ErrNullHandle)

	_, err = Lookup(uintptr(cgo.MaxHandle + 1))
	assert.ErrorIs(t, err, cgo.ErrInvalidHandle)

	other := cgo.NewHandle("not a counter")
	defer other.Delete()
	_, err = Lookup(uintptr(other))
	assert.ErrorIs(t, err, cgo.ErrInvalidHandle)

	h := Create(counter.Args{Init: 4, Step: 4})
	defer Destroy(h)
	in, err := Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), in.Counter().Value())
}

func TestGuard(t *testing.T) {
	const op = "testGuard"
	logs := observe(t)

	h := Create(counter.Args{Init: 10, Step: 3})
	calls := testutil.ToFloat64(metrics.Calls.WithLabelValues(op))
	nulls := testutil.ToFloat64(metrics.DegradedCalls.WithLabelValues(op, metrics.ReasonNull))
	invalids := testutil.ToFloat64(metrics.DegradedCalls.WithLabelValues(op, metrics.ReasonInvalid))

	got := Guard(op, h, func(in *Instance) uint32 {
		return in.Counter().Increment()
	})
	assert.Equal(t, uint32(13), got)
	assert.Equal(t, calls+1, testutil.ToFloat64(metrics.Calls.WithLabelValues(op)))
	assert.Equal(t, nulls, testutil.ToFloat64(metrics.DegradedCalls.WithLabelValues(op, metrics.ReasonNull)))

	Destroy(h)
	logs.TakeAll()

	called := false
	fn := func(in *Instance) counter.Snapshot {
		called = true
		return in.Counter().Snapshot()
	}

	assert.Equal(t, counter.Snapshot{}, Guard(op, 0, fn))
	assert.Equal(t, nulls+1, testutil.ToFloat64(metrics.DegradedCalls.WithLabelValues(op, metrics.ReasonNull)))
	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, op, entries[0].ContextMap()["op"])

	assert.Equal(t, counter.Snapshot{}, Guard(op, h, fn))
	assert.Equal(t, invalids+1, testutil.ToFloat64(metrics.DegradedCalls.WithLabelValues(op, metrics.ReasonInvalid)))
	entries = logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	assert.False(t, called)
	assert.Equal(t, calls+3, testutil.ToFloat64(metrics.Calls.WithLabelValues(op)))
}

func TestDestroyTwiceIsLogged(t *testing.T) {
	logs := observe(t)
	h := Create(counter.Args{})
	Destroy(h)
	logs.TakeAll()

	Destroy(h)
	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "destroyCounter", entries[0].ContextMap()["op"])
}

func TestReason(t *testing.T) {
	assert.Equal(t, metrics.ReasonNull, Reason(ErrNullHandle))
	assert.Equal(t, metrics.ReasonInvalid, Reason(cgo.ErrInvalidHandle))
	assert.Equal(t, metrics.ReasonBadArray, Reason(ErrBadArray))
	assert.Equal(t, metrics.ReasonBadArray, Reason(errors.Join(ErrBadArray, ptr.ErrNilPointer)))
}
