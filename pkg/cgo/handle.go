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

package cgo

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Handle is an opaque token that references a Go value from C code,
// modeled after cgo.Handle introduced by Go 1.17, see
// https://pkg.go.dev/runtime/cgo.
//
// Like runtime/cgo.Handle, this provides a way to pass values that
// contain Go pointers between Go and C without breaking the cgo pointer
// passing rules. The underlying type of Handle is guaranteed to fit in
// an integer type that is large enough to hold the bit pattern of any pointer.
// The zero value of a Handle is not valid and thus is safe to use as
// a sentinel in C APIs.
//
// Handles are indexes in a fixed-size slot table. The low bits of a Handle
// select the slot, and the remaining bits carry the generation of the slot
// at the time the Handle was created. Releasing a Handle bumps the
// generation of its slot, so that a released Handle is never mistaken for
// a newer Handle that reuses the same slot.
//
// The number of simultaneously valid handles is capped to MaxHandle.
//
// Handles can be created, looked up and released concurrently. The value
// referenced by a Handle is not protected in any way.
type Handle uintptr

const (
	slotBits = 16
	slotMask = 1<<slotBits - 1

	// MaxHandle is the maximum number of simultaneously valid handles
	MaxHandle = slotMask

	// max number of times we're willing to iterate over the table of
	// reusable slots to do compare-and-swap before giving up
	maxNewHandleRounds = 20

	maxGen = ^uintptr(0) >> slotBits
)

// ErrInvalidHandle is returned when a Handle is zero, has already been
// released, or was never created by NewHandle.
var ErrInvalidHandle = errors.New("invalid handle")

type slot struct {
	value unsafe.Pointer // *interface{}
	gen   uint32
}

var (
	slots    [MaxHandle + 1]slot
	nextSlot uint32
	live     int64
	noHandle unsafe.Pointer = nil
)

func init() {
	resetHandles()
}

// NewHandle returns a handle for a given value.
//
// The handle is valid until the program calls Delete or Release on it.
// The handle uses resources, and this package assumes that C code may hold
// on to the handle, so a program must explicitly release the handle when it
// is no longer needed.
//
// This function panics if there are no more handles available.
func NewHandle(v interface{}) Handle {
	start := atomic.LoadUint32(&nextSlot)
	for rounds := 0; rounds <= maxNewHandleRounds; rounds++ {
		for i := uint32(0); i < MaxHandle; i++ {
			// note: we only hand out slots 1..MaxHandle (included)
			s := (start+i)%MaxHandle + 1
			if atomic.CompareAndSwapPointer(&slots[s].value, noHandle, unsafe.Pointer(&v)) {
				atomic.StoreUint32(&nextSlot, s)
				atomic.AddInt64(&live, 1)
				return makeHandle(s, atomic.LoadUint32(&slots[s].gen))
			}
		}
	}
	panic(fmt.Sprintf("counter-ffi-go/cgo: could not obtain a new handle after round #%d", maxNewHandleRounds))
}

func makeHandle(s uint32, gen uint32) Handle {
	return Handle((uintptr(gen)&maxGen)<<slotBits | uintptr(s))
}

func (h Handle) slot() uint32 {
	return uint32(uintptr(h) & slotMask)
}

func (h Handle) gen() uintptr {
	return uintptr(h) >> slotBits
}

func (h Handle) load() (unsafe.Pointer, bool) {
	s := h.slot()
	if s == 0 {
		return nil, false
	}
	p := atomic.LoadPointer(&slots[s].value)
	if p == noHandle || uintptr(atomic.LoadUint32(&slots[s].gen))&maxGen != h.gen() {
		return nil, false
	}
	return p, true
}

// Lookup returns the associated Go value for a valid handle, or
// ErrInvalidHandle otherwise.
func (h Handle) Lookup() (interface{}, error) {
	p, ok := h.load()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return *(*interface{})(p), nil
}

// Value returns the associated Go value for a valid handle.
//
// The method panics if the handle is invalid.
func (h Handle) Value() interface{} {
	v, err := h.Lookup()
	if err != nil {
		panic(fmt.Sprintf("counter-ffi-go/cgo: misuse (value) of an invalid Handle %d", h))
	}
	return v
}

// Release invalidates a handle, returning ErrInvalidHandle if the handle
// is not valid. Releasing the same handle twice is reported as an error.
func (h Handle) Release() error {
	s := h.slot()
	if _, ok := h.load(); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	gen := atomic.LoadUint32(&slots[s].gen)
	if uintptr(gen)&maxGen != h.gen() || !atomic.CompareAndSwapUint32(&slots[s].gen, gen, gen+1) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	atomic.StorePointer(&slots[s].value, noHandle)
	atomic.AddInt64(&live, -1)
	return nil
}

// Delete invalidates a handle. This method should only be called once
// the program no longer needs to pass the handle to C and the C code
// no longer has a copy of the handle value.
//
// The method panics if the handle is invalid.
func (h Handle) Delete() {
	if err := h.Release(); err != nil {
		panic(fmt.Sprintf("counter-ffi-go/cgo: misuse (delete) of an invalid Handle %d", h))
	}
}

// Count returns the number of currently valid handles.
func Count() int {
	return int(atomic.LoadInt64(&live))
}

func resetHandles() {
	for i := 0; i <= MaxHandle; i++ {
		if atomic.SwapPointer(&slots[i].value, noHandle) != noHandle {
			atomic.AddUint32(&slots[i].gen, 1)
		}
	}
	atomic.StoreUint32(&nextSlot, 0)
	atomic.StoreInt64(&live, 0)
}
