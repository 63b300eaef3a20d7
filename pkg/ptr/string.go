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

package ptr

/*
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"
)

const cStringNullTerminator = byte(0)

// GoString converts a C string to a Go string. This is analoguous
// to C.GoString, but avoids unnecessary memory allcations and copies.
// The string length is determined by invoking strlen on the passed
// memory pointer.
// Note that the returned string is an aliased view of the underlying
// C-allocated memory. As such, writing inside the memory will cause
// the string contents to change. Accordingly, unsafe memory management,
// like unexpectedly free-ing the underlying C memory, can cause non-deterministic
// behavior on the Go routines using the returned string.
func GoString(charPtr unsafe.Pointer) string {
	if charPtr == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(charPtr, n)) != cStringNullTerminator {
		n++
	}
	return unsafe.String((*byte)(charPtr), n)
}

// StringBuffer represents a buffer for C-allocated null-terminated strings
// in a Go-friendly way. The buffer is reused across writes and reallocated
// only when growing. The returned C pointer stays valid until the next
// Write or Free.
type StringBuffer struct {
	cPtr *C.char
	cap  int
}

// Write writes a Go string inside the buffer, converting it to a
// null-terminated C string.
func (s *StringBuffer) Write(str string) {
	if s.cPtr == nil || len(str) > s.cap {
		if s.cPtr != nil {
			C.free(unsafe.Pointer(s.cPtr))
		}
		s.cap = len(str)
		s.cPtr = (*C.char)(C.malloc(C.size_t(s.cap + 1)))
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(s.cPtr)), len(str)+1)
	copy(buf, str)
	buf[len(str)] = cStringNullTerminator
}

// String returns a Go string view of the buffer. The view is aliased
// to the C memory, see GoString.
func (s *StringBuffer) String() string {
	return GoString(unsafe.Pointer(s.cPtr))
}

// CharPtr returns an unsafe pointer to the null-terminated C string,
// or nil if nothing was ever written.
func (s *StringBuffer) CharPtr() unsafe.Pointer {
	return unsafe.Pointer(s.cPtr)
}

// Free releases the C memory of the buffer. The buffer can be
// reused after being freed.
func (s *StringBuffer) Free() {
	if s.cPtr != nil {
		C.free(unsafe.Pointer(s.cPtr))
		s.cPtr = nil
		s.cap = 0
	}
}
