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

// This package exports the counter mutation functions:
// - uint32_t incrementCounter(counter_handle h)
// - uint32_t decrementCounter(counter_handle h)
// - uint32_t incrementCounterBy(counter_handle h, uint32_t amount)
// - uint32_t decrementCounterBy(counter_handle h, uint32_t amount)
// - uint32_t incrementCounterByMany(counter_handle h, const uint32_t* amounts, uint32_t len)
// - uint32_t decrementCounterByMany(counter_handle h, const uint32_t* amounts, uint32_t len)
//
// All of them return the value of the counter after the mutation.
package mutate

/*
#include "../../counter_types.h"
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/falcosecurity/counter-ffi-go/pkg/ptr"
	"github.com/falcosecurity/counter-ffi-go/pkg/sdk"
)

//export incrementCounter
func incrementCounter(h C.uintptr_t) C.uint32_t {
	return C.uint32_t(sdk.Guard("incrementCounter", uintptr(h), func(in *sdk.Instance) uint32 {
		return in.Counter().Increment()
	}))
}

//export decrementCounter
func decrementCounter(h C.uintptr_t) C.uint32_t {
	return C.uint32_t(sdk.Guard("decrementCounter", uintptr(h), func(in *sdk.Instance) uint32 {
		return in.Counter().Decrement()
	}))
}

//export incrementCounterBy
func incrementCounterBy(h C.uintptr_t, amount C.uint32_t) C.uint32_t {
	return C.uint32_t(sdk.Guard("incrementCounterBy", uintptr(h), func(in *sdk.Instance) uint32 {
		return in.Counter().IncrementBy(uint32(amount))
	}))
}

//export decrementCounterBy
func decrementCounterBy(h C.uintptr_t, amount C.uint32_t) C.uint32_t {
	return C.uint32_t(sdk.Guard("decrementCounterBy", uintptr(h), func(in *sdk.Instance) uint32 {
		return in.Counter().DecrementBy(uint32(amount))
	}))
}

//export incrementCounterByMany
func incrementCounterByMany(h C.uintptr_t, amounts *C.uint32_t, length C.uint32_t) C.uint32_t {
	const op = "incrementCounterByMany"
	return C.uint32_t(sdk.Guard(op, uintptr(h), func(in *sdk.Instance) uint32 {
		view, err := amountsView(amounts, length)
		if err != nil {
			sdk.Degrade(op, uintptr(h), err)
			return in.Counter().Value()
		}
		return in.Counter().IncrementByMany(view)
	}))
}

//export decrementCounterByMany
func decrementCounterByMany(h C.uintptr_t, amounts *C.uint32_t, length C.uint32_t) C.uint32_t {
	const op = "decrementCounterByMany"
	return C.uint32_t(sdk.Guard(op, uintptr(h), func(in *sdk.Instance) uint32 {
		view, err := amountsView(amounts, length)
		if err != nil {
			sdk.Degrade(op, uintptr(h), err)
			return in.Counter().Value()
		}
		return in.Counter().DecrementByMany(view)
	}))
}

func amountsView(amounts *C.uint32_t, length C.uint32_t) ([]uint32, error) {
	view, err := ptr.Uint32View(unsafe.Pointer(amounts), uint32(length))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", sdk.ErrBadArray, err.Error())
	}
	return view, nil
}
