// Copyright Battelle Memorial Institute.
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

	"github.com/pnnl/go-hybridlane/pkg/sa"
	"github.com/pnnl/go-hybridlane/pkg/wire"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] circuit_file",
	Short: "type-check a circuit and report its wire partition.",
	Long: `Run static analysis over a circuit file, reporting which wires are qubits,
	 which are qumodes, and the readout basis each measured qumode requires.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Parse circuit
		c := readCircuitFile(args[0])
		//
		res, err := sa.Analyze(c)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		width := terminalWidth()
		fmt.Printf("Qubits (%d):\n", len(res.Qubits))
		printWires(res.Qubits, width)
		fmt.Printf("Qumodes (%d):\n", len(res.Qumodes))
		printWires(res.Qumodes, width)
		//
		for i, schema := range res.Schemas {
			if schema.IsEmpty() {
				continue
			}
			//
			fmt.Printf("Measurement %d (%s):\n", i, c.Measurements[i].Type)

			for _, w := range schema.Wires() {
				fmt.Printf("  %s -> %s\n", w, schema.Basis(w))
			}
		}
	},
}

// Determine the width of the terminal, falling back to a sensible default
// when stdout is not a terminal.
func terminalWidth() int {
	if term.IsTerminal(0) {
		if width, _, err := term.GetSize(0); err == nil {
			return width
		}
	}

	return 80
}

// Print wire labels space-separated, wrapped to the terminal width.
func printWires(ws wire.Wires, width int) {
	col := 0

	for _, w := range ws {
		label := string(w)
		// Wrap before overflowing the current line
		if col > 0 && col+len(label)+1 > width-2 {
			fmt.Println()
			col = 0
		}

		fmt.Print(" ", label)
		col += 1 + len(label)
	}

	if col > 0 {
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
