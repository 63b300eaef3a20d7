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
	"fmt"

	"go.uber.org/zap"

	"github.com/falcosecurity/counter-ffi-go/pkg/cgo"
	"github.com/falcosecurity/counter-ffi-go/pkg/log"
	"github.com/falcosecurity/counter-ffi-go/pkg/metrics"
)

var (
	// ErrNullHandle is returned when the null handle is passed in.
	ErrNullHandle = errors.New("null handle")

	// ErrBadArray is returned when an (address, length) pair passed in
	// cannot be turned into a view.
	ErrBadArray = errors.New("bad array")
)

// Lookup resolves a handle received from C into the Instance it
// references.
func Lookup(handle uintptr) (*Instance, error) {
	if handle == 0 {
		return nil, ErrNullHandle
	}
	v, err := cgo.Handle(handle).Lookup()
	if err != nil {
		return nil, err
	}
	in, ok := v.(*Instance)
	if !ok {
		return nil, fmt.Errorf("%w: %d does not reference a counter", cgo.ErrInvalidHandle, handle)
	}
	return in, nil
}

// Guard is the translation layer between the exported C functions and
// the counter logic. It resolves the handle and runs fn on the referenced
// Instance. If the handle cannot be resolved, fn is not called and the
// zero value of T is returned instead.
func Guard[T any](op string, handle uintptr, fn func(*Instance) T) T {
	metrics.Calls.WithLabelValues(op).Inc()
	in, err := Lookup(handle)
	if err != nil {
		Degrade(op, handle, err)
		var zero T
		return zero
	}
	return fn(in)
}

// Degrade records that op answered with a default value because of err.
func Degrade(op string, handle uintptr, err error) {
	reason := Reason(err)
	metrics.DegradedCalls.WithLabelValues(op, reason).Inc()

	fields := []zap.Field{
		zap.String("op", op),
		zap.Uintptr("handle", handle),
		zap.Error(err),
	}
	if reason == metrics.ReasonNull {
		log.L().Debug("null handle, returning default", fields...)
		return
	}
	log.L().Warn("rejected call, returning default", fields...)
}

// Reason classifies an error returned by Lookup or by a view constructor.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNullHandle):
		return metrics.ReasonNull
	case errors.Is(err, ErrBadArray):
		return metrics.ReasonBadArray
	default:
		return metrics.ReasonInvalid
	}
}
