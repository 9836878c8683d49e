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

// Function is the analysis-time record for a declared function or method
// (spec §3's "Function" entity). GenName is the mangled C identifier
// assigned once, at declaration time, so every call site (including
// forward/recursive references) emits the same name.
type Function struct {
	Name       string
	Args       []ast.Param
	Ret        ast.Type
	Returns    bool
	Body       []ast.Stmt
	IsVariadic bool
	GenName    string
	// Context is the binding scope holding this function's parameters,
	// recorded once its body has been analysed (spec §3: "The context
	// carries the argument bindings"). No later pass reads it; calls,
	// including recursive ones, are checked against Args.
	Context *Scope
}

// Arity returns the number of declared parameters (not counting a
// variadic tail).
func (f *Function) Arity() int {
	return len(f.Args)
}

// AcceptsArgc reports whether n arguments satisfy this function's arity,
// honouring variadic functions (spec §4.6: "argument arity must match
// unless the callee is variadic").
func (f *Function) AcceptsArgc(n int) bool {
	if f.IsVariadic {
		return n >= len(f.Args)
	}

	return n == len(f.Args)
}

// FunctionTable is the flat, per-file list of declared functions (spec
// §4.5: "Functions live in a flat per-file list").
type FunctionTable struct {
	order  []string
	byName map[string]*Function
}

// NewFunctionTable constructs an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{nil, make(map[string]*Function)}
}

// Declare registers fn, returning false if its name is already taken
// (spec §4.5: duplicate declarations are an error the caller reports).
func (t *FunctionTable) Declare(fn *Function) bool {
	if _, exists := t.byName[fn.Name]; exists {
		return false
	}

	t.byName[fn.Name] = fn
	t.order = append(t.order, fn.Name)

	return true
}

// Lookup returns the function named name, or nil.
func (t *FunctionTable) Lookup(name string) *Function {
	return t.byName[name]
}

// All returns every declared function, in declaration order.
func (t *FunctionTable) All() []*Function {
	fns := make([]*Function, len(t.order))
	for i, name := range t.order {
		fns[i] = t.byName[name]
	}

	return fns
}
