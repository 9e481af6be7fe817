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

	"github.com/consensys/go-octagon/pkg/script"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] script_file(s)",
	Short: "Evaluate one or more octagon scripts.",
	Long: `Evaluate the commands of each script in turn, printing any
	output and reporting every expectation which does not hold.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			status = 0
			colour = useColour(cmd)
			stats  = GetFlag(cmd, "stats")
			files  = readScriptFiles(args...)
		)
		//
		for i := range files {
			interpreter := script.NewInterpreter(os.Stdout).Colour(colour)
			failures, err := executeScript(&files[i], interpreter, stats)
			//
			if err != nil {
				printSyntaxError(os.Stdout, err, colour)
				status = 2
				//
				continue
			}
			//
			for j := range failures {
				printSyntaxError(os.Stdout, &failures[j], colour)
				status = max(status, 1)
			}
		}
		//
		if status != 0 {
			os.Exit(status)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] script_file(s)",
	Short: "Check the expectations of one or more octagon scripts.",
	Long: `Evaluate each script without printing its output, reporting
	whether or not all of its expectations hold.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			status = 0
			colour = useColour(cmd)
			stats  = GetFlag(cmd, "stats")
			files  = readScriptFiles(args...)
		)
		//
		for i := range files {
			interpreter := script.NewInterpreter(os.Stdout).Quiet(true)
			failures, err := executeScript(&files[i], interpreter, stats)
			//
			switch {
			case err != nil:
				fmt.Printf("ERROR %s\n", files[i].Filename())
				printSyntaxError(os.Stdout, err, colour)
				status = 2
			case len(failures) > 0:
				fmt.Printf("FAIL  %s (%d failed)\n", files[i].Filename(), len(failures))
				//
				for j := range failures {
					printSyntaxError(os.Stdout, &failures[j], colour)
				}
				//
				status = max(status, 1)
			default:
				fmt.Printf("ok    %s\n", files[i].Filename())
			}
		}
		//
		if status != 0 {
			os.Exit(status)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}
