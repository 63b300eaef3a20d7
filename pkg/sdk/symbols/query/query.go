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

// This package exports the read-only counter functions:
// - counter_snapshot getCounterData(counter_handle h)
// - uint32_t getCounterValue(counter_handle h)
// - const counter_point2d* getCounterPositions(counter_handle h, uint32_t* out_len)
package query

/*
#include "../../counter_types.h"
*/
import "C"
import (
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
	"github.com/falcosecurity/counter-ffi-go/pkg/sdk"
)

//export getCounterData
func getCounterData(h C.uintptr_t) C.counter_snapshot {
	s := sdk.Guard("getCounterData", uintptr(h), func(in *sdk.Instance) counter.Snapshot {
		return in.Counter().Snapshot()
	})
	return C.counter_snapshot{
		value: C.uint32_t(s.Value),
		step:  C.uint32_t(s.Step),
	}
}

//export getCounterValue
func getCounterValue(h C.uintptr_t) C.uint32_t {
	return C.uint32_t(sdk.Guard("getCounterValue", uintptr(h), func(in *sdk.Instance) uint32 {
		return in.Counter().Value()
	}))
}

//export getCounterPositions
func getCounterPositions(h C.uintptr_t, outLen *C.uint32_t) *C.counter_point2d {
	p := sdk.Guard("getCounterPositions", uintptr(h), func(in *sdk.Instance) *sdk.Positions {
		return in.Positions()
	})
	if p == nil {
		if outLen != nil {
			*outLen = 0
		}
		return nil
	}
	if outLen != nil {
		*outLen = C.uint32_t(p.Len())
	}
	return (*C.counter_point2d)(p.ArrayPtr())
}
