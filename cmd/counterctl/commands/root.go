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

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/falcosecurity/counter-ffi-go/pkg/loader"
)

var (
	libPath    string
	configPath string
	lib        *loader.Library
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "counterctl",
		Short:        "Drive a counter shared library",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if libPath == "" {
				return fmt.Errorf("library path required (--lib)")
			}
			var err error
			lib, err = loader.Open(libPath)
			if err != nil {
				return err
			}
			if configPath != "" {
				doc, err := os.ReadFile(configPath)
				if err != nil {
					return err
				}
				if err := lib.Configure(string(doc)); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if lib != nil {
				lib.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&libPath, "lib", os.Getenv("COUNTER_FFI_LIBRARY"), "path of the counter shared library")
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML or JSON configuration file of the library")

	root.AddCommand(runCmd(), metricsCmd())
	return root
}
