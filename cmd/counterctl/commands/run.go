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
	"github.com/spf13/cobra"
)

// run <ops...>: create a counter and apply ops in order.
func runCmd() *cobra.Command {
	var initial, step uint32
	cmd := &cobra.Command{
		Use:   "run <op>...",
		Short: "Create a counter and apply a sequence of operations",
		Long: `Create a counter and apply a sequence of operations, printing the
result of each of them on its own line. Supported operations:
  inc, dec            increment or decrement by the step
  inc:N, dec:N        increment or decrement by N
  incm:A,B,C          increment by each of the amounts in order
  decm:A,B,C          decrement by each of the amounts in order
  value, snapshot     print the value, or the value and the step
  positions           print the position history`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := parseOps(args)
			if err != nil {
				return err
			}
			c, err := lib.NewCounter(initial, step)
			if err != nil {
				return err
			}
			defer c.Close()
			for _, o := range ops {
				o.apply(c, cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&initial, "init", 0, "initial value of the counter")
	cmd.Flags().Uint32Var(&step, "step", 1, "step of the counter")
	return cmd
}
