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
package module

import "github.com/jaguar-lang/jaguarc/pkg/symbols"

// Destination is the parent file's symbol tables that an `unpack` statement
// merges resolved names into (spec §4.7: "unpack alias { s1, s2, ... }
// resolves each symbol inside the named module... a name clash with a
// symbol already present in the parent is an error").
type Destination struct {
	Functions *symbols.FunctionTable
	Types     *symbols.TypeTable
	Globals   *symbols.Scope
	Subs      map[string]*Module
}

// UnpackResult reports what happened to one requested symbol.
type UnpackResult struct {
	Name string
	// Unresolved is true if name did not resolve inside the source module.
	Unresolved bool
	// Clash is true if name resolved but a symbol of that name already
	// exists in dst.
	Clash bool
}

// Unpack resolves each of names inside src in turn and merges it into dst,
// following the function/sub-module/variable/type search order of
// Module.Resolve. It stops at the first Unresolved or Clash result (spec
// §7: resolution errors are terminal, no partial success), returning that
// result; a nil result means every symbol unpacked cleanly.
func Unpack(dst *Destination, src *Module, names []string) *UnpackResult {
	for _, name := range names {
		sym := src.Resolve(name)
		if !sym.Found() {
			return &UnpackResult{Name: name, Unresolved: true}
		}

		switch {
		case sym.Function != nil:
			if dst.Functions.Lookup(name) != nil {
				return &UnpackResult{Name: name, Clash: true}
			}

			dst.Functions.Declare(sym.Function)
		case sym.Sub != nil:
			if _, exists := dst.Subs[name]; exists {
				return &UnpackResult{Name: name, Clash: true}
			}

			dst.Subs[name] = sym.Sub
		case sym.Variable != nil:
			if !dst.Globals.Declare(name, sym.Variable) {
				return &UnpackResult{Name: name, Clash: true}
			}
		case sym.Type != nil:
			if dst.Types.Lookup(name) != nil {
				return &UnpackResult{Name: name, Clash: true}
			}

			dst.Types.Declare(sym.Type)
		}
	}

	return nil
}
