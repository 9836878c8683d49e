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

// Table is the set of modules attached to one analysed file, keyed by the
// alias each was imported or nested under.
type Table struct {
	byAlias map[string]*Module
	// byOutputPath supports spec §4.7 step 4's deduplication: a second
	// `bundle` of the same file clones the first record instead of
	// re-resolving, re-lexing, re-parsing, and re-analysing it.
	byOutputPath map[string]*Module
}

// NewTable constructs an empty module table.
func NewTable() *Table {
	return &Table{make(map[string]*Module), make(map[string]*Module)}
}

// Attach registers m under its alias, returning false if that alias is
// already taken by a different module within this file (the caller reports
// this as a duplicate-import error).
func (t *Table) Attach(m *Module) bool {
	if _, exists := t.byAlias[m.Alias]; exists {
		return false
	}

	t.byAlias[m.Alias] = m

	if _, seen := t.byOutputPath[m.OutputPath]; !seen {
		t.byOutputPath[m.OutputPath] = m
	}

	return true
}

// Existing returns the already-attached module whose OutputPath matches
// outputPath, if any — consulted before running a fresh import so a
// second `bundle` of the same file clones rather than re-analyses it
// (spec §4.7 step 4).
func (t *Table) Existing(outputPath string) *Module {
	return t.byOutputPath[outputPath]
}

// Lookup returns the module attached under alias, or nil.
func (t *Table) Lookup(alias string) *Module {
	return t.byAlias[alias]
}

// All returns every attached module, used by pkg/analyser to copy a
// file's own imports into its module record's Subs.
func (t *Table) All() []*Module {
	mods := make([]*Module, 0, len(t.byAlias))
	for _, m := range t.byAlias {
		mods = append(mods, m)
	}

	return mods
}

// Symbol is the result of resolving one name inside an unpacked module: at
// most one of Function/Sub/Variable/Type is non-nil, matching whichever
// kind the name bound to first.
type Symbol struct {
	Function *symbols.Function
	Sub      *Module
	Variable *symbols.Variable
	Type     *symbols.StructLayout
}

// Found reports whether resolution matched anything.
func (s Symbol) Found() bool {
	return s.Function != nil || s.Sub != nil || s.Variable != nil || s.Type != nil
}

// Resolve looks up name inside m following spec §4.7's fixed search order
// for `unpack`: function, then sub-module, then variable, then type.
func (m *Module) Resolve(name string) Symbol {
	if fn := m.Functions.Lookup(name); fn != nil {
		return Symbol{Function: fn}
	}

	if sub, ok := m.Subs[name]; ok {
		return Symbol{Sub: sub}
	}

	if v := m.Globals.Lookup(name); v != nil {
		return Symbol{Variable: v}
	}

	if ty := m.Types.Lookup(name); ty != nil {
		return Symbol{Type: ty}
	}

	return Symbol{}
}
