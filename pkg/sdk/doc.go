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

// Package sdk is the translation layer between the C functions exported
// by the library and the counter logic.
//
// Counters are referenced from C by opaque handles (see pkg/cgo). Each
// handle references an Instance, which owns the counter and the
// C-allocated memory exposed to the caller. Exported functions resolve
// the handle with Guard: a null or unknown handle is answered with the
// zero value of the result type, and is reported through the library
// logger and metrics only.
//
// The C layouts shared by all the exported functions are defined in
// counter_types.h, and the prototypes of the public interface in
// counter.h.
package sdk
