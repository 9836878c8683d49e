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

// Scope is one lexical region of variable bindings — a block, a function
// body, or a loop — chained to its enclosing scope. This is spec §4.5's
// "Context": `change_scope` pushes a child, `exit_scope` pops, and
// `lookup` walks from innermost outward.
//
// Unlike the teacher's occasional whole-table clone on scope change
// (spec §9's first design note), Scope is a save/restore discipline: the
// analyser holds a pointer to the "current" scope and always restores it
// on every exit path (including an error-triggered abort), so pushing and
// popping never copies a binding table. This mirrors go-corset's
// `ModuleScope` parent-pointer chain (pkg/corset/scope.go) adapted from
// "a tree of named modules" to "a stack of anonymous blocks".
type Scope struct {
	parent *Scope
	// vars is this scope's variable arena, in declaration order. A
	// Variable's References field (see variable.go) is an index into
	// this slice, never a pointer into another scope's arena.
	vars []*Variable
	// names maps a variable's name to its index in vars, for O(1)
	// shadow-aware lookup within this single scope.
	names map[string]int
	// loop marks a scope entered for a `for`/`while` body, so that
	// break/continue validity (spec §4.4's "only inside a loop body") can
	// be decided by walking outward from the current scope.
	loop bool
}

// NewScope constructs a root scope with no parent (one per analysed file
// and per inline bundle namespace; function bodies are pushed from it).
func NewScope() *Scope {
	return &Scope{nil, nil, make(map[string]int), false}
}

// Push returns a new child scope of s. The caller is responsible for
// restoring the "current scope" pointer to s once done — see Analyser's
// usage in pkg/analyser, which restores it explicitly after the body.
func (s *Scope) Push() *Scope {
	return &Scope{s, nil, make(map[string]int), false}
}

// PushLoop is Push, additionally marking the new scope as a loop body so
// InLoop reports true for it and its descendants.
func (s *Scope) PushLoop() *Scope {
	child := s.Push()
	child.loop = true

	return child
}

// Parent returns the enclosing scope, or nil if s is a root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// InLoop reports whether s or any enclosing scope up to (and including)
// the root is a loop body. Crossing a function boundary is not modelled
// here: a function body's scope is pushed from the file's root scope,
// which is never a loop scope, so the walk finds no loop beyond the
// function's edge.
func (s *Scope) InLoop() bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.loop {
			return true
		}
	}

	return false
}

// Declare binds name to v in this scope, returning false if name is
// already bound in this exact scope (shadowing an outer scope's binding
// is permitted; redeclaring within the same scope is not).
func (s *Scope) Declare(name string, v *Variable) bool {
	if _, exists := s.names[name]; exists {
		return false
	}

	s.names[name] = len(s.vars)
	s.vars = append(s.vars, v)

	return true
}

// Lookup walks from this scope outward, returning the nearest binding of
// name, or nil if unbound (spec §4.5: "lookup(name) walks from innermost
// outward").
func (s *Scope) Lookup(name string) *Variable {
	for cur := s; cur != nil; cur = cur.parent {
		if idx, ok := cur.names[name]; ok {
			return cur.vars[idx]
		}
	}

	return nil
}

// Index returns the arena index of name within the scope that declared
// it, the form a Variable.References back-link takes. Ok is false if name
// was not declared in exactly this scope (the caller should search
// enclosing scopes via Parent).
func (s *Scope) Index(name string) (int, bool) {
	idx, ok := s.names[name]
	return idx, ok
}

// At returns the variable at arena index idx within this exact scope,
// used to resolve a Variable.References back-link.
func (s *Scope) At(idx int) *Variable {
	return s.vars[idx]
}
