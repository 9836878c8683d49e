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

// Package module is the import/bundle engine: resolving an `bundle "path" as
// alias` statement into a frozen, alias-wrapped record of another file's
// exported functions, types, and sub-modules, grounded on the teacher's
// own "a circuit owns a flat list of named modules" shape
// (pkg/corset/ast/declaration.go's Module/Circuit) adapted from "tables in
// a constraint set" to "files pulled in by bundle".
package module

import (
	"path/filepath"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/symbols"
)

// Module is the frozen result of importing one source file: its output
// path (used for deduplication), and its exported functions, variables,
// types, methods, and nested namespaces, all wrapped through Alias.
type Module struct {
	// Alias is the name the importing file refers to this module by; the
	// same underlying file may be attached under several distinct aliases
	// (one Module record each, cloned rather than re-analysed).
	Alias string
	// OutputPath is the absolute path of the emitted header for the
	// imported file, the key deduplication is keyed on.
	OutputPath string
	// SourceFile is the absolute path of the imported .jag file, consulted
	// for BUNDLED type-equality across two aliases of the same file.
	SourceFile string

	Functions *symbols.FunctionTable
	Types     *symbols.TypeTable
	Methods   *symbols.MethodTable
	Globals   *symbols.Scope
	// Subs holds nested `bundle alias { ... }` namespaces declared inside
	// the imported file, keyed by their own alias.
	Subs map[string]*Module
}

// NewModule constructs an empty module record for a file freshly analysed
// under the given alias.
func NewModule(alias, outputPath, sourceFile string) *Module {
	return &Module{
		Alias:      alias,
		OutputPath: outputPath,
		SourceFile: sourceFile,
		Functions:  symbols.NewFunctionTable(),
		Types:      symbols.NewTypeTable(),
		Methods:    symbols.NewMethodTable(),
		Globals:    symbols.NewScope(),
		Subs:       make(map[string]*Module),
	}
}

// Clone copies m under a new alias without re-running analysis (spec
// §4.7 step 4: "clone that module record under alias rather than
// re-running"). The underlying tables are shared (they are read-only once
// a module is frozen); only the alias changes, so type-wrapping produces
// a distinct BUNDLED{alias, ...} view per clone while Equal still agrees
// they share one SourceFile.
func (m *Module) Clone(alias string) *Module {
	clone := *m
	clone.Alias = alias

	return &clone
}

// WrapType applies BUNDLED{m.Alias, m.SourceFile} to t, skipping builtins
// per spec §4.7 step 5 ("applied to every non-builtin argument/return/field
// type") — delegated to ast.NewBundled, which itself refuses to wrap a
// primitive.
func (m *Module) WrapType(t ast.Type) ast.Type {
	return ast.NewBundled(m.Alias, m.SourceFile, t)
}

// ResolvePath resolves an import's literal path relative to the directory
// of the file that contains the `bundle` statement (spec §4.7 step 1).
func ResolvePath(parentFile, importPath string) string {
	if filepath.IsAbs(importPath) {
		return importPath
	}

	return filepath.Join(filepath.Dir(parentFile), importPath)
}

// HeaderPath returns the build-directory path an imported file's header is
// written to (spec §4.7 step 3: "<builddir>/<basename>.h").
func HeaderPath(buildDir, sourceFile string) string {
	return filepath.Join(buildDir, filepath.Base(sourceFile)+".h")
}
