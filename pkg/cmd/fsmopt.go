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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synthsat/satcell/pkg/fsm"
	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/util"
)

var fsmOptCmd = &cobra.Command{
	Use:   "fsm-opt [flags] fsm_file",
	Short: "Rewrite an $fsm transition table: drop dead columns, merge aliases, fold don't-cares.",
	Long: `Read a JSON $fsm fixture (wire declarations plus a transition table),
run the fixed sequence of table rewrites, and print the resulting table.
The fixture format reuses the "wires" section of the encode/solve fixtures
and adds "name", "ctrl_in", "ctrl_out", "num_states", "reset_state",
"state_table" and "transitions".`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		stats := util.NewPerfStats()

		data := readFile(args[0])

		design, err := netlist.ParseDesign(data)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var raw jsonFsmExtra
		if err := json.Unmarshal(data, &raw); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		cell, name := buildFsmCell(design, raw)

		fsm.NewOptimiser(name).Optimise(cell)

		stats.Log("fsm-opt")

		printFsmCell(cell)
	},
}

// jsonFsmExtra holds the $fsm-specific fields of a fixture; the wire
// declarations it shares with the encode/solve format are decoded
// separately via netlist.ParseDesign.
type jsonFsmExtra struct {
	Name       string   `json:"name"`
	CtrlIn     []string `json:"ctrl_in"`
	CtrlOut    []string `json:"ctrl_out"`
	NumStates  uint     `json:"num_states"`
	ResetState uint     `json:"reset_state"`
	StateTable []string `json:"state_table"`
	Transitions []struct {
		StateIn  uint   `json:"state_in"`
		StateOut uint   `json:"state_out"`
		CtrlIn   string `json:"ctrl_in"`
		CtrlOut  string `json:"ctrl_out"`
	} `json:"transitions"`
}

func buildFsmCell(design *netlist.Design, raw jsonFsmExtra) (*fsm.Cell, string) {
	ctrlIn, err := netlist.ParseBitTokens(design, raw.CtrlIn)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctrlOut, err := netlist.ParseBitTokens(design, raw.CtrlOut)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	data := &netlist.FsmData{
		NumInputs:  uint(len(raw.CtrlIn)),
		NumOutputs: uint(len(raw.CtrlOut)),
		NumStates:  raw.NumStates,
		ResetState: raw.ResetState,
		StateTable: raw.StateTable,
	}

	for _, t := range raw.Transitions {
		in, err := parsePattern(t.CtrlIn)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		out, err := parsePattern(t.CtrlOut)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		data.Transitions = append(data.Transitions, netlist.Transition{
			StateIn:  t.StateIn,
			StateOut: t.StateOut,
			CtrlIn:   in,
			CtrlOut:  out,
		})
	}

	return &fsm.Cell{CtrlIn: ctrlIn, CtrlOut: ctrlOut, Data: data}, raw.Name
}

// parsePattern decodes a pattern string ('0','1','x','a', most-significant
// bit first, matching netlist.Pattern.String) into a Pattern.
func parsePattern(s string) (netlist.Pattern, error) {
	p := make(netlist.Pattern, len(s))

	for i, c := range s {
		pos := len(s) - 1 - i

		switch c {
		case '0':
			p[pos] = netlist.P0
		case '1':
			p[pos] = netlist.P1
		case 'x':
			p[pos] = netlist.PX
		case 'a':
			p[pos] = netlist.PA
		default:
			return nil, fmt.Errorf("invalid pattern character %q in %q", c, s)
		}
	}

	return p, nil
}

func printFsmCell(c *fsm.Cell) {
	fmt.Printf("ctrl_in:  %s\n", c.CtrlIn)
	fmt.Printf("ctrl_out: %s\n", c.CtrlOut)
	fmt.Printf("num_inputs:  %d\n", c.Data.NumInputs)
	fmt.Printf("num_outputs: %d\n", c.Data.NumOutputs)

	for _, t := range c.Data.Transitions {
		fmt.Printf("  %d -[%s/%s]-> %d\n", t.StateIn, t.CtrlIn, t.CtrlOut, t.StateOut)
	}
}

func init() {
	rootCmd.AddCommand(fsmOptCmd)
}
