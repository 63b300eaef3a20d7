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

// This package exports the library-wide C functions:
// - int32_t configureCounterLibrary(const char* config)
// - const char* getCounterLastError(void)
// - const char* getCounterMetrics(void)
package configure

/*
#include "../../counter_types.h"
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/falcosecurity/counter-ffi-go/pkg/metrics"
	"github.com/falcosecurity/counter-ffi-go/pkg/ptr"
	"github.com/falcosecurity/counter-ffi-go/pkg/sdk"
)

var metricsText struct {
	m   sync.Mutex
	buf ptr.StringBuffer
}

//export configureCounterLibrary
func configureCounterLibrary(config *C.char) C.int32_t {
	metrics.Calls.WithLabelValues("configureCounterLibrary").Inc()
	return C.int32_t(sdk.ConfigureString(ptr.GoString(unsafe.Pointer(config))))
}

//export getCounterLastError
func getCounterLastError() *C.char {
	return (*C.char)(sdk.LastErrorCharPtr())
}

//export getCounterMetrics
func getCounterMetrics() *C.char {
	metrics.Calls.WithLabelValues("getCounterMetrics").Inc()
	text, err := metrics.Text()
	if err != nil {
		sdk.SetLastError(err)
	}

	metricsText.m.Lock()
	defer metricsText.m.Unlock()
	metricsText.buf.Write(text)
	return (*C.char)(metricsText.buf.CharPtr())
}
