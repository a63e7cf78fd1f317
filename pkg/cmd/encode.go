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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/solver/bsolver"
	"github.com/synthsat/satcell/pkg/translate"
	"github.com/synthsat/satcell/pkg/util"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] netlist_file",
	Short: "Bit-blast a JSON netlist fixture into a SAT formula.",
	Long: `Bit-blast a JSON netlist fixture into a SAT formula and report the
single literal whose truth means "every $assert cell in the fixture holds".
Does not invoke a solver; see "satcell solve" for that.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		stats := util.NewPerfStats()

		design, cfg := loadDesignAndConfig(cmd, args[0])

		var initialState []string
		cfg.InitialStateSet = func(q netlist.Vector) {
			initialState = append(initialState, q.String())
		}

		builder := bsolver.New()
		enc := translate.NewEncoder(builder, cfg)

		timestep := int(GetUint(cmd, "timestep"))
		if !cmd.Flags().Changed("timestep") {
			timestep = -1
		}

		encodeAllCells(enc, design, timestep)

		lit := enc.Aggregate(cfg.Prefix, timestep)

		if len(initialState) > 0 {
			log.Debugf("encode: initial-state set: %v", initialState)
		}

		stats.Log("encode")

		fmt.Printf("assertion literal: %d\n", lit)
	},
}

// encodeAllCells imports every cell in design, in deterministic (sorted by
// instance name) order. A cell ImportCell reports an unrecognised family for
// is logged as a warning and skipped; the first *netlist.UserError exits,
// and any other error panics.
func encodeAllCells(enc *translate.Encoder, design *netlist.Design, timestep int) {
	for _, name := range sortedKeys(design.Cells) {
		cell := design.Cells[name]

		handled, err := enc.ImportCell(cell, timestep)
		if err != nil {
			if ue, ok := err.(*netlist.UserError); ok {
				fmt.Printf("error: %s\n", ue.Error())
				os.Exit(1)
			}

			panic(err)
		}

		if !handled {
			log.Warnf("encode: cell %q: unrecognised family %q, skipped", name, cell.Type)
		}
	}
}

// loadDesignAndConfig reads and parses filename, and assembles the
// translate.Config the --model-undef and --div-zero-policy flags describe.
func loadDesignAndConfig(cmd *cobra.Command, filename string) (*netlist.Design, translate.Config) {
	design, err := netlist.ParseDesign(readFile(filename))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	cfg := translate.Config{
		ModelUndef: GetFlag(cmd, "model-undef"),
		Prefix:     "top",
	}

	if GetString(cmd, "div-zero-policy") == "defined" {
		cfg.DivZeroPolicy = translate.DivZeroDefined
	} else {
		cfg.DivZeroPolicy = translate.DivZeroAssumeNonzero
	}

	return design, cfg
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Uint("timestep", 0, "timestep to import signals at (default: combinational, no timestep)")
	encodeCmd.Flags().String("div-zero-policy", "assume-nonzero", "divide-by-zero policy: \"assume-nonzero\" or \"defined\"")
}
