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

// Package cmd is the driver adapter (C9): a thin cobra/logrus shell around
// pkg/analyser that turns a source path and a handful of flags into an
// emitted C file, a process exit code, and rendered diagnostics —
// grounded on the teacher's cmd/main.go + pkg/cmd/root.go + pkg/cmd/compile.go
// trio (spec §6).
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

// rootCmd is jaguarc itself: unlike the teacher, which spreads its
// operations across several subcommands, Jaguar's entire CLI surface
// (spec §6) is the single "compile a source file" operation, so it lives
// directly on the root command rather than behind a subcommand.
var rootCmd = &cobra.Command{
	Use:   "jaguarc SOURCE",
	Short: "A compiler for the Jaguar language.",
	Long:  "A single-pass compiler for the Jaguar language, emitting C for handoff to an external C toolchain.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("jaguarc ")

			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}

			fmt.Println()

			return
		}

		if len(args) != 1 {
			fmt.Println("expected exactly one SOURCE argument")
			os.Exit(100)
		}

		runCompile(cmd, args[0])
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(100)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().StringP("output", "o", "a.out", "output binary name")
	rootCmd.Flags().BoolP("release", "r", false, "reserved; no behavioural difference in the core compiler")
	rootCmd.Flags().Bool("keepc", false, "retain the build directory and generated C/H files")
}
