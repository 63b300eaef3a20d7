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
	"go.uber.org/zap"

	"github.com/falcosecurity/counter-ffi-go/pkg/cgo"
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
	"github.com/falcosecurity/counter-ffi-go/pkg/log"
	"github.com/falcosecurity/counter-ffi-go/pkg/metrics"
)

// Create allocates a counter and returns a handle referencing it. The
// returned handle is never zero. Create panics if no handle or no C
// memory is available.
func Create(args counter.Args) uintptr {
	metrics.Calls.WithLabelValues("createCounter").Inc()
	h := cgo.NewHandle(NewInstance(args))
	log.L().Debug("counter created",
		zap.Uintptr("handle", uintptr(h)),
		zap.Uint32("init", args.Init),
		zap.Uint32("step", args.Step))
	return uintptr(h)
}

// Destroy releases the handle and the memory owned by the counter it
// references. A zero handle is ignored. A handle that is not valid
// anymore is logged and ignored.
func Destroy(handle uintptr) {
	const op = "destroyCounter"
	metrics.Calls.WithLabelValues(op).Inc()
	in, err := Lookup(handle)
	if err == nil {
		err = cgo.Handle(handle).Release()
	}
	if err != nil {
		Degrade(op, handle, err)
		return
	}
	in.Destroy()
	log.L().Debug("counter destroyed", zap.Uintptr("handle", handle))
}
