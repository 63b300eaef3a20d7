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

// Package commands defines the counterctl CLI, which drives a counter
// shared library through pkg/loader.
//
// Commands
//
//   - run        Create a counter, apply a sequence of operations and
//     print the result of each of them
//   - metrics    Print the metrics of the library
//
// The root command loads the library given with --lib, and applies the
// configuration file given with --config, before any subcommand runs.
package commands
