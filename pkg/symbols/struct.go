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
package symbols

import "github.com/jaguar-lang/jaguarc/pkg/ast"

// StructLayout records one user struct's fields and the source file it
// was declared in (spec §3's "StructLayout" entity). Per SPEC_FULL.md's
// supplemented-feature note, methods are deliberately *not* stored here:
// spec §9 calls out the teacher's "a struct contains functions whose
// bodies refer back to the struct" as a cyclic-feeling design, and the
// redesign is a separate per-type MethodTable (method.go) keyed by
// (type name, method name) instead.
type StructLayout struct {
	Name   string
	Fields map[string]ast.Type
	// Order preserves field declaration order for designated-initialiser
	// emission and "excess fields" checking (spec §4.8).
	Order []string
	// File is the originating source file, consulted by spec §3's BUNDLED
	// equality rule ("two BUNDLED types are equal only if their underlying
	// struct layouts come from the same source file") and by the
	// invariant tested in spec §8 ("two module records whose field/method
	// lookups resolve to the same StructLayout.file").
	File string
}

// NewStructLayout constructs an empty layout for a struct declared in file.
func NewStructLayout(name, file string) *StructLayout {
	return &StructLayout{name, make(map[string]ast.Type), nil, file}
}

// DeclareField adds a field, returning false if name is already a field
// of this struct (a duplicate-field declaration, which the caller reports
// as an error).
func (s *StructLayout) DeclareField(name string, t ast.Type) bool {
	if _, exists := s.Fields[name]; exists {
		return false
	}

	s.Fields[name] = t
	s.Order = append(s.Order, name)

	return true
}

// FieldType returns the declared type of field name and whether it exists.
func (s *StructLayout) FieldType(name string) (ast.Type, bool) {
	t, ok := s.Fields[name]
	return t, ok
}

// TypeTable maps struct names to their layout, one per analysed file
// (spec §4.5/§4.6: "the type table").
type TypeTable struct {
	byName map[string]*StructLayout
}

// NewTypeTable constructs an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{make(map[string]*StructLayout)}
}

// Declare registers layout, returning false if its name is already taken.
func (t *TypeTable) Declare(layout *StructLayout) bool {
	if _, exists := t.byName[layout.Name]; exists {
		return false
	}

	t.byName[layout.Name] = layout

	return true
}

// Lookup returns the layout for name, or nil.
func (t *TypeTable) Lookup(name string) *StructLayout {
	return t.byName[name]
}

// All returns every declared layout, in no particular order.
func (t *TypeTable) All() []*StructLayout {
	layouts := make([]*StructLayout, 0, len(t.byName))
	for _, l := range t.byName {
		layouts = append(layouts, l)
	}

	return layouts
}
