// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synthsat/satcell/pkg/solver/bsolver"
	"github.com/synthsat/satcell/pkg/translate"
	"github.com/synthsat/satcell/pkg/util"
)

var solveCmd = &cobra.Command{
	Use:   "solve [flags] netlist_file",
	Short: "Bit-blast a JSON netlist fixture and check whether its assertions can hold.",
	Long: `Bit-blast a JSON netlist fixture, assume its assertion-envelope literal
true, and run bsolver's reference DPLL search. Reports SAT (a witness
assignment exists under which every $assert cell holds) or UNSAT.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		stats := util.NewPerfStats()

		design, cfg := loadDesignAndConfig(cmd, args[0])

		builder := bsolver.New()
		enc := translate.NewEncoder(builder, cfg)

		timestep := int(GetUint(cmd, "timestep"))
		if !cmd.Flags().Changed("timestep") {
			timestep = -1
		}

		encodeAllCells(enc, design, timestep)

		lit := enc.Aggregate(cfg.Prefix, timestep)
		builder.Assume(lit)

		ok, model := builder.Solve()

		stats.Log("solve")

		if !ok {
			fmt.Println("UNSAT")
			return
		}

		fmt.Println("SAT")

		for _, name := range builder.Names() {
			fmt.Printf("  %s = %v\n", name, builder.NameValue(model, name))
		}
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Uint("timestep", 0, "timestep to import signals at (default: combinational, no timestep)")
	solveCmd.Flags().String("div-zero-policy", "assume-nonzero", "divide-by-zero policy: \"assume-nonzero\" or \"defined\"")
}
