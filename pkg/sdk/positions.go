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

/*
#include <stdlib.h>
#include "counter_types.h"
*/
import "C"
import (
	"sync/atomic"
	"unsafe"

	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
	"github.com/falcosecurity/counter-ffi-go/pkg/metrics"
)

var liveAllocations int64

// LiveAllocations returns the number of C arrays allocated with
// NewPositions and not yet freed.
func LiveAllocations() int64 {
	return atomic.LoadInt64(&liveAllocations)
}

// Positions is a C-allocated array of counter_point2d structs. The array
// can be handed to C code through ArrayPtr, and remains valid until Free
// is called.
//
// Positions are written once at creation. Writing in the memory pointed
// by ArrayPtr is unsafe and might lead to non-deterministic behavior.
type Positions struct {
	arr *C.counter_point2d
	len int
}

// NewPositions copies points into a newly allocated C array.
func NewPositions(points []counter.Point2D) *Positions {
	ret := &Positions{len: len(points)}
	if ret.len == 0 {
		return ret
	}

	ret.arr = (*C.counter_point2d)(C.malloc(C.size_t(ret.len) * C.size_t(C.sizeof_counter_point2d)))
	if ret.arr == nil {
		panic("counter-ffi-go/sdk: could not allocate positions")
	}
	arr := unsafe.Slice(ret.arr, ret.len)
	for i := range arr {
		arr[i].x = C.float(points[i].X)
		arr[i].y = C.float(points[i].Y)
	}
	atomic.AddInt64(&liveAllocations, 1)
	metrics.LiveAllocations.Inc()
	return ret
}

// Len returns the number of positions in the array.
func (p *Positions) Len() int {
	return p.len
}

// Get returns the i-th position of the array.
func (p *Positions) Get(i int) counter.Point2D {
	elem := unsafe.Slice(p.arr, p.len)[i]
	return counter.Point2D{X: float32(elem.x), Y: float32(elem.y)}
}

// ArrayPtr returns an unsafe pointer to the underlying C array, or nil
// if the array is empty or freed.
func (p *Positions) ArrayPtr() unsafe.Pointer {
	return unsafe.Pointer(p.arr)
}

// Free releases the C array. Freeing twice is a no-op.
func (p *Positions) Free() {
	if p.arr != nil {
		C.free(unsafe.Pointer(p.arr))
		p.arr = nil
		p.len = 0
		atomic.AddInt64(&liveAllocations, -1)
		metrics.LiveAllocations.Dec()
	}
}
