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

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/procinit"
	"github.com/synthsat/satcell/pkg/util"
)

var procInitCmd = &cobra.Command{
	Use:   "proc-init [flags] process_file",
	Short: "Fold a process's init sync rule into wire init attributes.",
	Long: `Read a JSON process fixture (wire declarations plus a root case and
sync rules), extract any init sync rule by constant-folding it against the
root case, write the result as each driven wire's "init" attribute, and
print the wires that ended up with one.`,
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

		var raw jsonProcExtra
		if err := json.Unmarshal(data, &raw); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		proc := buildProcess(design, raw)

		if err := procinit.Run(raw.Module, proc); err != nil {
			if ue, ok := err.(*netlist.UserError); ok {
				fmt.Printf("error: %s\n", ue.Error())
				os.Exit(1)
			}

			panic(err)
		}

		stats.Log("proc-init")

		for _, name := range sortedKeys(design.Wires) {
			w := design.Wires[name]
			if init, ok := w.Attributes["init"]; ok {
				fmt.Printf("%s.init = %s\n", name, init)
			}
		}
	},
}

type jsonAction struct {
	Lhs []string `json:"lhs"`
	Rhs []string `json:"rhs"`
}

type jsonSync struct {
	Type    string       `json:"type"`
	Actions []jsonAction `json:"actions"`
}

// jsonProcExtra holds the process-specific fields of a fixture; the wire
// declarations it shares with the encode/solve format are decoded
// separately via netlist.ParseDesign.
type jsonProcExtra struct {
	Module   string       `json:"module"`
	Process  string       `json:"process"`
	RootCase struct {
		Actions []jsonAction `json:"actions"`
	} `json:"root_case"`
	Syncs []jsonSync `json:"syncs"`
}

var syncTypeNames = map[string]procinit.SyncType{
	"init":    procinit.SyncInit,
	"always":  procinit.SyncAlways,
	"posedge": procinit.SyncEdgePos,
	"negedge": procinit.SyncEdgeNeg,
	"level":   procinit.SyncLevel,
}

func buildActions(design *netlist.Design, jas []jsonAction) []procinit.Action {
	actions := make([]procinit.Action, 0, len(jas))

	for _, ja := range jas {
		lhs, err := netlist.ParseBitTokens(design, ja.Lhs)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		rhs, err := netlist.ParseBitTokens(design, ja.Rhs)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		actions = append(actions, procinit.Action{Lhs: lhs, Rhs: rhs})
	}

	return actions
}

func buildProcess(design *netlist.Design, raw jsonProcExtra) *procinit.Process {
	proc := &procinit.Process{
		Name:     raw.Process,
		RootCase: procinit.CaseRule{Actions: buildActions(design, raw.RootCase.Actions)},
	}

	for _, js := range raw.Syncs {
		st, ok := syncTypeNames[js.Type]
		if !ok {
			fmt.Printf("error: unknown sync type %q\n", js.Type)
			os.Exit(1)
		}

		proc.Syncs = append(proc.Syncs, &procinit.SyncRule{
			Type:    st,
			Actions: buildActions(design, js.Actions),
		})
	}

	return proc
}

func init() {
	rootCmd.AddCommand(procInitCmd)
}
