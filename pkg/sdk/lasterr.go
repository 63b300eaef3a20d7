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
	"sync"
	"unsafe"

	"github.com/falcosecurity/counter-ffi-go/pkg/ptr"
)

var lastErr struct {
	m   sync.Mutex
	err error
	buf ptr.StringBuffer
}

// SetLastError records the last library-wide error. A nil error clears it.
func SetLastError(err error) {
	lastErr.m.Lock()
	defer lastErr.m.Unlock()
	lastErr.err = err
}

// LastError returns the last library-wide error, if any.
func LastError() error {
	lastErr.m.Lock()
	defer lastErr.m.Unlock()
	return lastErr.err
}

// LastErrorCharPtr writes the message of the last error into a
// C-allocated buffer owned by the library and returns a pointer to it.
// The message is empty if there is no error. The pointer is valid until
// the next call.
func LastErrorCharPtr() unsafe.Pointer {
	lastErr.m.Lock()
	defer lastErr.m.Unlock()
	msg := ""
	if lastErr.err != nil {
		msg = lastErr.err.Error()
	}
	lastErr.buf.Write(msg)
	return lastErr.buf.CharPtr()
}
