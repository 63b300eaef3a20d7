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

// This package exports the following C functions:
// - counter_handle createCounter(counter_args args)
// - void destroyCounter(counter_handle h)
//
// Every counter library must import this module, since handles can
// only be obtained through createCounter.
package lifecycle

/*
#include "../../counter_types.h"
*/
import "C"
import (
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
	"github.com/falcosecurity/counter-ffi-go/pkg/sdk"
)

//export createCounter
func createCounter(args C.counter_args) C.uintptr_t {
	return C.uintptr_t(sdk.Create(counter.Args{
		Init: uint32(args.init),
		Step: uint32(args.step),
	}))
}

//export destroyCounter
func destroyCounter(h C.uintptr_t) {
	sdk.Destroy(uintptr(h))
}
