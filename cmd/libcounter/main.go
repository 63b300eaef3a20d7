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

// Command libcounter is the counter shared library. Build it with:
//
//	go build -buildmode=c-shared -o libcounter.so ./cmd/libcounter
//
// The resulting library exports the functions declared in
// pkg/sdk/counter.h.
package main

import (
	_ "github.com/falcosecurity/counter-ffi-go/pkg/sdk/symbols/configure"
	_ "github.com/falcosecurity/counter-ffi-go/pkg/sdk/symbols/lifecycle"
	_ "github.com/falcosecurity/counter-ffi-go/pkg/sdk/symbols/mutate"
	_ "github.com/falcosecurity/counter-ffi-go/pkg/sdk/symbols/query"
)

func main() {}
