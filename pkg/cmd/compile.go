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
	"path/filepath"
	"strings"

	"github.com/jaguar-lang/jaguarc/pkg/analyser"
	"github.com/jaguar-lang/jaguarc/pkg/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runCompile drives the parse → analyse → flush → emit pipeline for one
// root source file (spec §6): it owns the build directory, the exit-code
// contract, and the --keepc cleanup decision, while every actual
// compiler-semantics decision lives in pkg/analyser.
func runCompile(cmd *cobra.Command, sourcePath string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	keepc := GetFlag(cmd, "keepc")
	output := GetString(cmd, "output")

	log.Debugf("reading source file %s", sourcePath)

	file, err := source.ReadFile(sourcePath)
	if err != nil {
		fmt.Printf("error reading %s: %s\n", sourcePath, err)
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(err)
		os.Exit(100)
	}

	buildDir := filepath.Join(cwd, "build")

	log.Debugf("creating build directory %s", buildDir)

	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		fmt.Println(err)
		os.Exit(100)
	}

	a, ok := analyser.CompileFile(file, buildDir)

	fatal := a.Queue().Flush(os.Stderr)
	if fatal || !ok {
		os.Exit(1)
	}

	cFile := filepath.Join(buildDir, cOutputName(sourcePath))

	log.Debugf("writing %s", cFile)

	if err := os.WriteFile(cFile, []byte(a.Generator().Output()), 0o644); err != nil {
		fmt.Println(err)
		os.Exit(100)
	}

	fmt.Printf("wrote %s\n", cFile)
	fmt.Printf("(external C compilation to %q is outside this compiler's scope)\n", output)

	if !keepc {
		log.Debugf("removing build directory %s (--keepc not set)", buildDir)

		if err := os.RemoveAll(buildDir); err != nil {
			fmt.Println(err)
			os.Exit(100)
		}
	}
}

// cOutputName derives the root file's emitted C filename from its source
// basename (spec §6: "root file emits <build>/<name>.c").
func cOutputName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)

	return strings.TrimSuffix(base, ext) + ".c"
}
