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

// methodKey identifies one method by the struct it is attached to and its
// own name.
type methodKey struct {
	typeName string
	method   string
}

// MethodTable is the per-type method table of spec §4.5, kept as a
// side-table keyed by (type, method-name) rather than embedded inside
// StructLayout — see struct.go's doc comment and SPEC_FULL.md's
// supplemented-feature entry for the rationale (spec §9's third design
// note).
type MethodTable struct {
	byKey map[methodKey]*Function
	// order preserves per-type method declaration order, as returned by
	// Methods.
	order map[string][]string
}

// NewMethodTable constructs an empty method table.
func NewMethodTable() *MethodTable {
	return &MethodTable{make(map[methodKey]*Function), make(map[string][]string)}
}

// Declare attaches fn as a method of typeName, returning false if that
// type already has a method of the same name (spec §4.5: "Redefinition is
// an error").
func (t *MethodTable) Declare(typeName string, fn *Function) bool {
	key := methodKey{typeName, fn.Name}
	if _, exists := t.byKey[key]; exists {
		return false
	}

	t.byKey[key] = fn
	t.order[typeName] = append(t.order[typeName], fn.Name)

	return true
}

// Lookup returns the method named name on typeName, or nil.
func (t *MethodTable) Lookup(typeName, name string) *Function {
	return t.byKey[methodKey{typeName, name}]
}

// Methods returns every method declared on typeName, in declaration order.
func (t *MethodTable) Methods(typeName string) []*Function {
	names := t.order[typeName]
	fns := make([]*Function, len(names))

	for i, name := range names {
		fns[i] = t.byKey[methodKey{typeName, name}]
	}

	return fns
}

// NormalizeSelf rewrites a method's first parameter when it is named
// "self" with no declared type (ast.Type nil), giving it type
// ptr<Custom(typeName)> — spec §4.5: "A method whose first parameter is
// named self without a declared type is rewritten so its type becomes the
// declaring struct". Called by pkg/parser immediately after parsing a
// struct's method bodies, before the method is registered here.
func NormalizeSelf(typeName string, args []ast.Param) []ast.Param {
	if len(args) == 0 || args[0].Name != "self" || args[0].Type != nil {
		return args
	}

	out := make([]ast.Param, len(args))
	copy(out, args)
	out[0].Type = &ast.PtrType{Elem: &ast.CustomType{Name: typeName}}

	return out
}
