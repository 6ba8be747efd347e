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

	"github.com/pnnl/go-hybridlane/pkg/device/qscout"
	"github.com/pnnl/go-hybridlane/pkg/jaqal"
	"github.com/pnnl/go-hybridlane/pkg/qasm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] circuit_file",
	Short: "compile a circuit to native trapped-ion instructions.",
	Long: `Compile a given circuit file down to the native gate set of the QSCOUT
	 trapped-ion device, then serialize the result as either a Jaqal or an
	 OpenQASM 3 program.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		opts := qscout.DefaultOptions()
		opts.Optimize = getFlag(cmd, "optimize")
		opts.MaxQubits = getUint(cmd, "max-qubits")
		opts.EnableCOMModes = getFlag(cmd, "com-modes")
		opts.UseVirtualWires = getFlag(cmd, "virtual-wires")
		opts.LayoutBudget = getUint(cmd, "layout-budget")
		format := getString(cmd, "format")
		output := getString(cmd, "output")
		precision := getInt(cmd, "precision")
		// Parse circuit
		c := readCircuitFile(args[0])
		// Lower to the native gate set
		compiled, _, err := qscout.Compile(*c, opts)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Serialize
		var text string
		//
		switch format {
		case "jaqal":
			text, err = jaqal.Emit(&compiled, jaqal.Options{Precision: precision})
		case "qasm":
			qasmOpts := qasm.DefaultOptions()
			qasmOpts.Precision = precision
			qasmOpts.Strict = getFlag(cmd, "strict")
			text, err = qasm.Emit(&compiled, qasmOpts)
		default:
			err = fmt.Errorf("unknown output format: %s", format)
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		writeOutput(text, output)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("optimize", true, "enable peephole optimization passes")
	compileCmd.Flags().Uint("max-qubits", 0, "qubit budget (0 infers from the circuit)")
	compileCmd.Flags().Bool("com-modes", false, "admit the noisy center-of-mass motional modes")
	compileCmd.Flags().Bool("virtual-wires", true, "map algorithmic wire labels onto hardware")
	compileCmd.Flags().Uint("layout-budget", 0, "bound the layout search (0 uses the default)")
	compileCmd.Flags().StringP("format", "f", "jaqal", "output format (jaqal or qasm)")
	compileCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	compileCmd.Flags().Int("precision", 0, "significant digits for gate arguments")
	compileCmd.Flags().Bool("strict", false, "emit standard-compliant OpenQASM with no qumode extension")
}
