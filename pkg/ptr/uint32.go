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

import (
	"errors"
	"fmt"
	"unsafe"
)

const alignErrorFmt = "misaligned pointer %#x"

// ErrNilPointer is returned when a nil pointer is paired with a non-zero length.
var ErrNilPointer = errors.New("nil pointer with non-zero length")

// Uint32View builds a read-only view over length uint32 values stored
// at p, which is usually C memory received from a caller.
//
// The view aliases the memory at p, it does not copy it. The caller of the
// C function remains responsible for p really containing length values
// that outlive the use of the view; this function only rejects nil and
// misaligned pointers. Any length is accepted, and a zero length always
// yields an empty view regardless of p.
func Uint32View(p unsafe.Pointer, length uint32) ([]uint32, error) {
	if length == 0 {
		return nil, nil
	}
	if p == nil {
		return nil, ErrNilPointer
	}
	if uintptr(p)%unsafe.Alignof(uint32(0)) != 0 {
		return nil, fmt.Errorf(alignErrorFmt, uintptr(p))
	}
	return unsafe.Slice((*uint32)(p), length), nil
}
