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

// Package loader loads a counter shared library at runtime and exposes
// it to Go code.
//
// A loaded Library creates Counter values, which own one handle each and
// release it on Close. A Counter serializes the calls made on its handle,
// so it can be shared between goroutines.
package loader

// note: cgo does not support calling C function pointers, so we have to
// create wrappers around those to access them from Go code

/*
#cgo linux LDFLAGS: -ldl
#cgo CFLAGS: -I ../sdk

#include <dlfcn.h>
#include <stdlib.h>
#include "counter_types.h"

typedef struct counter_api
{
	counter_handle (*create)(counter_args);
	void (*destroy)(counter_handle);
	counter_snapshot (*get_data)(counter_handle);
	uint32_t (*get_value)(counter_handle);
	const counter_point2d* (*get_positions)(counter_handle, uint32_t*);
	uint32_t (*increment)(counter_handle);
	uint32_t (*decrement)(counter_handle);
	uint32_t (*increment_by)(counter_handle, uint32_t);
	uint32_t (*decrement_by)(counter_handle, uint32_t);
	uint32_t (*increment_by_many)(counter_handle, const uint32_t*, uint32_t);
	uint32_t (*decrement_by_many)(counter_handle, const uint32_t*, uint32_t);
	int32_t (*configure)(const char*);
	const char* (*get_last_error)(void);
	const char* (*get_metrics)(void);
} counter_api;

static void* __load(const char* path)
{
	// a Go runtime can't be unloaded, so the library stays mapped
	return dlopen(path, RTLD_NOW | RTLD_LOCAL | RTLD_NODELETE);
}

#define __load_sym(field, name) \
	*(void **)(&api->field) = dlsym(lib, name); \
	if (!api->field) return name;

// returns the name of the first missing symbol, or NULL
static const char* __load_symbols(void* lib, counter_api* api)
{
	__load_sym(create, "createCounter");
	__load_sym(destroy, "destroyCounter");
	__load_sym(get_data, "getCounterData");
	__load_sym(get_value, "getCounterValue");
	__load_sym(get_positions, "getCounterPositions");
	__load_sym(increment, "incrementCounter");
	__load_sym(decrement, "decrementCounter");
	__load_sym(increment_by, "incrementCounterBy");
	__load_sym(decrement_by, "decrementCounterBy");
	__load_sym(increment_by_many, "incrementCounterByMany");
	__load_sym(decrement_by_many, "decrementCounterByMany");
	__load_sym(configure, "configureCounterLibrary");
	__load_sym(get_last_error, "getCounterLastError");
	__load_sym(get_metrics, "getCounterMetrics");
	return NULL;
}

static counter_handle __create(counter_api* a, uint32_t init, uint32_t step)
{
	counter_args args = { init, step };
	return a->create(args);
}

static void __destroy(counter_api* a, counter_handle h)
{
	a->destroy(h);
}

static counter_snapshot __get_data(counter_api* a, counter_handle h)
{
	return a->get_data(h);
}

static uint32_t __get_value(counter_api* a, counter_handle h)
{
	return a->get_value(h);
}

static const counter_point2d* __get_positions(counter_api* a, counter_handle h, uint32_t* n)
{
	return a->get_positions(h, n);
}

static uint32_t __increment(counter_api* a, counter_handle h)
{
	return a->increment(h);
}

static uint32_t __decrement(counter_api* a, counter_handle h)
{
	return a->decrement(h);
}

static uint32_t __increment_by(counter_api* a, counter_handle h, uint32_t v)
{
	return a->increment_by(h, v);
}

static uint32_t __decrement_by(counter_api* a, counter_handle h, uint32_t v)
{
	return a->decrement_by(h, v);
}

static uint32_t __increment_by_many(counter_api* a, counter_handle h, const uint32_t* v, uint32_t n)
{
	return a->increment_by_many(h, v, n);
}

static uint32_t __decrement_by_many(counter_api* a, counter_handle h, const uint32_t* v, uint32_t n)
{
	return a->decrement_by_many(h, v, n);
}

static int32_t __configure(counter_api* a, const char* c)
{
	return a->configure(c);
}

static const char* __get_last_error(counter_api* a)
{
	return a->get_last_error();
}

static const char* __get_metrics(counter_api* a)
{
	return a->get_metrics();
}
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/falcosecurity/counter-ffi-go/pkg/config"
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
)

var (
	errClosed       = errors.New("library is closed")
	errNullHandle   = errors.New("library returned a null handle")
	errUnknownError = errors.New("unknown configuration error")
)

// Library represents a counter shared library loaded from the local
// filesystem.
type Library struct {
	m   sync.Mutex
	lib unsafe.Pointer
	api *C.counter_api
}

// Open loads the counter shared library at the given path and resolves
// all of its symbols. A non-nil error is returned if the library cannot
// be loaded or if it lacks any symbol.
func Open(path string) (*Library, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	lib := C.__load(cPath)
	if lib == nil {
		return nil, fmt.Errorf("can't load library %s: %s", path, C.GoString(C.dlerror()))
	}

	api := &C.counter_api{}
	if missing := C.__load_symbols(lib, api); missing != nil {
		C.dlclose(lib)
		return nil, fmt.Errorf("library %s does not export symbol %s", path, C.GoString(missing))
	}
	return &Library{lib: lib, api: api}, nil
}

// Close releases the library. No new counter can be created afterwards,
// but the code of the library stays loaded, so counters created before
// remain usable until closed. Closing twice is a no-op.
func (l *Library) Close() {
	l.m.Lock()
	defer l.m.Unlock()
	if l.lib != nil {
		C.dlclose(l.lib)
		l.api = nil
		l.lib = nil
	}
}

func (l *Library) loaded() (*C.counter_api, error) {
	l.m.Lock()
	defer l.m.Unlock()
	if l.lib == nil {
		return nil, errClosed
	}
	return l.api, nil
}

// NewCounter creates a new counter in the library.
func (l *Library) NewCounter(initial, step uint32) (*Counter, error) {
	api, err := l.loaded()
	if err != nil {
		return nil, err
	}
	h := C.__create(api, C.uint32_t(initial), C.uint32_t(step))
	if h == 0 {
		return nil, errNullHandle
	}
	return &Counter{api: api, handle: h}, nil
}

// Configure applies a configuration document to the library. The document
// is validated before being passed to the library.
func (l *Library) Configure(doc string) error {
	if _, err := config.Parse(doc); err != nil {
		return fmt.Errorf("invalid config: %s", err.Error())
	}
	api, err := l.loaded()
	if err != nil {
		return err
	}

	cDoc := C.CString(doc)
	defer C.free(unsafe.Pointer(cDoc))
	if C.__configure(api, cDoc) == C.COUNTER_RC_SUCCESS {
		return nil
	}
	if msg := C.GoString(C.__get_last_error(api)); len(msg) > 0 {
		return errors.New(msg)
	}
	return errUnknownError
}

// Metrics returns the metrics of the library in the Prometheus text
// format.
func (l *Library) Metrics() (string, error) {
	api, err := l.loaded()
	if err != nil {
		return "", err
	}
	return C.GoString(C.__get_metrics(api)), nil
}

// Counter is a counter living in a loaded library. It owns its handle:
// Close destroys the counter, and any later call behaves as with the null
// handle, returning zero values.
type Counter struct {
	m      sync.Mutex
	api    *C.counter_api
	handle C.counter_handle
}

// Close destroys the counter. Closing twice is a no-op.
func (c *Counter) Close() {
	c.m.Lock()
	defer c.m.Unlock()
	if c.handle != 0 {
		C.__destroy(c.api, c.handle)
		c.handle = 0
	}
}

// Closed returns true if Close was called.
func (c *Counter) Closed() bool {
	c.m.Lock()
	defer c.m.Unlock()
	return c.handle == 0
}

func (c *Counter) Value() uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	return uint32(C.__get_value(c.api, c.handle))
}

func (c *Counter) Snapshot() counter.Snapshot {
	c.m.Lock()
	defer c.m.Unlock()
	s := C.__get_data(c.api, c.handle)
	return counter.Snapshot{Value: uint32(s.value), Step: uint32(s.step)}
}

func (c *Counter) Increment() uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	return uint32(C.__increment(c.api, c.handle))
}

func (c *Counter) Decrement() uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	return uint32(C.__decrement(c.api, c.handle))
}

func (c *Counter) IncrementBy(amount uint32) uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	return uint32(C.__increment_by(c.api, c.handle, C.uint32_t(amount)))
}

func (c *Counter) DecrementBy(amount uint32) uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	return uint32(C.__decrement_by(c.api, c.handle, C.uint32_t(amount)))
}

func (c *Counter) IncrementByMany(amounts ...uint32) uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	p, n := uint32Array(amounts)
	return uint32(C.__increment_by_many(c.api, c.handle, p, n))
}

func (c *Counter) DecrementByMany(amounts ...uint32) uint32 {
	c.m.Lock()
	defer c.m.Unlock()
	p, n := uint32Array(amounts)
	return uint32(C.__decrement_by_many(c.api, c.handle, p, n))
}

// Positions returns a copy of the position history of the counter.
func (c *Counter) Positions() []counter.Point2D {
	c.m.Lock()
	defer c.m.Unlock()
	var n C.uint32_t
	arr := C.__get_positions(c.api, c.handle, &n)
	if arr == nil || n == 0 {
		return nil
	}
	res := make([]counter.Point2D, n)
	for i, p := range unsafe.Slice(arr, n) {
		res[i] = counter.Point2D{X: float32(p.x), Y: float32(p.y)}
	}
	return res
}

func uint32Array(values []uint32) (*C.uint32_t, C.uint32_t) {
	if len(values) == 0 {
		return nil, 0
	}
	return (*C.uint32_t)(unsafe.Pointer(&values[0])), C.uint32_t(len(values))
}
