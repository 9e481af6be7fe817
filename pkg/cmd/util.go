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
	"io"
	"os"
	"strings"

	"github.com/consensys/go-octagon/pkg/script"
	"github.com/consensys/go-octagon/pkg/util"
	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/consensys/go-octagon/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Configure the log level from the verbose flag.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Determine whether ANSI colours should be used on standard output.
func useColour(cmd *cobra.Command) bool {
	return !GetFlag(cmd, "no-colour") && termio.IsTerminal(os.Stdout)
}

// Read a given set of script files, or exit if an error arises.
func readScriptFiles(filenames ...string) []source.File {
	files, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return files
}

// Execute a single script file on a fresh interpreter.
func executeScript(srcfile *source.File, interpreter *script.Interpreter,
	stats bool) ([]source.SyntaxError, *source.SyntaxError) {
	perf := util.NewPerfStats()
	failures, err := interpreter.Execute(srcfile)
	//
	if stats {
		perf.Log(srcfile.Filename())
	}
	//
	return failures, err
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(w io.Writer, err *source.SyntaxError, colour bool) {
	var (
		span   = err.Span()
		line   = err.FirstEnclosingLine()
		indent = max(0, span.Start()-line.Start())
		// Highlight no further than the end of the line
		length = max(1, min(span.Length(), line.Length()-indent))
		marker = strings.Repeat("^", length)
	)
	//
	if colour {
		escape := termio.NewAnsiEscape().FgColour(termio.Red).Bold()
		marker = escape.Build() + marker + termio.ResetAnsiEscape().Build()
	}
	// Print error + line number
	fmt.Fprintln(w, err.Error())
	// Print line
	fmt.Fprintln(w, line.String())
	// Print highlight
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), marker)
}
