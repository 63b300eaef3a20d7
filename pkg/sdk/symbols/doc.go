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

// Package symbols provides the implementations of all the C symbols
// declared in counter.h.
//
// The C symbol set is divided in different sub-packages, and importing one
// of them automatically includes its symbols in the shared library. The
// cmd/libcounter program imports all of them. A symbol cannot be defined
// twice, so a library that wants to provide its own version of one of the
// symbols must not import the sub-package defining it.
//
// The mapping between the exported C symbols and their sub-package is:
//  - lifecycle:   createCounter, destroyCounter
//  - query:       getCounterData, getCounterValue, getCounterPositions
//  - mutate:      incrementCounter, decrementCounter,
//                 incrementCounterBy, decrementCounterBy,
//                 incrementCounterByMany, decrementCounterByMany
//  - configure:   configureCounterLibrary, getCounterLastError,
//                 getCounterMetrics
//
// There are no horizontal dependencies between the sub-packages. Each of
// them only depends on the sdk package, and occasionally on the ptr
// package.
package symbols
