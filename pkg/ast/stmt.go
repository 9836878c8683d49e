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
package ast

// Stmt is the closed set of statement forms, spec §4.3.
type Stmt interface {
	Node
	isStmt()
}

// Program is the root node: a sequence of top-level statements from one
// source file (spec §4.3).
type Program struct {
	node
	Decls []Stmt
}

func (*Program) isStmt() {}

// Let declares a variable, optionally MUT-qualified via its Type (spec
// §4.3, §4.6).
type Let struct {
	node
	Name  string
	Type  Type
	Value Expr
}

func (*Let) isStmt() {}

// Return is `ret expr;`; Value is nil for a bare `ret;`.
type Return struct {
	node
	Value Expr
}

func (*Return) isStmt() {}

// Break is `break;`, valid only inside a loop body (spec §4.4).
type Break struct {
	node
}

func (*Break) isStmt() {}

// Continue is `continue;`, valid only inside a loop body (spec §4.4).
type Continue struct {
	node
}

func (*Continue) isStmt() {}

// Elif is one `else if cond { body }` arm of an If chain.
type Elif struct {
	Cond Expr
	Body []Stmt
}

// If is `if cond { body } (else if ...)* (else { body })?` (spec §4.3).
type If struct {
	node
	Cond Expr
	Body []Stmt
	Elif []Elif
	Else []Stmt
}

func (*If) isStmt() {}

// For is a C-style `for (init; cond; inc) { body }` loop (spec §4.4).
// Init/Inc may each be nil (an empty clause).
type For struct {
	node
	Init Stmt
	Cond Expr
	Inc  Stmt
	Body []Stmt
}

func (*For) isStmt() {}

// While is `while cond { body }` (spec §4.4).
type While struct {
	node
	Cond Expr
	Body []Stmt
}

func (*While) isStmt() {}

// Param is one function/method parameter.
type Param struct {
	Name string
	Type Type
}

// Fn is a function or method declaration (spec §4.3, §4.5). Returns is
// true for functions with a declared non-void return; Returns mirrors
// the spec's "returns?" bookkeeping field used for control-flow checks.
type Fn struct {
	node
	Name    string
	Args    []Param
	Ret     Type
	Returns bool
	Body    []Stmt
}

func (*Fn) isStmt() {}

// Extern declares a foreign function with no body (spec §4.3, §6
// scenario 6).
type Extern struct {
	node
	Name     string
	Args     []Param
	Ret      Type
	Variadic bool
}

func (*Extern) isStmt() {}

// FieldDecl is one `name: type` field inside a struct body.
type FieldDecl struct {
	node
	Name string
	Type Type
}

func (*FieldDecl) isStmt() {}

// Struct declares a user type with its fields, methods, and an optional
// `statics` namespace (spec §4.3, §4.4, §4.5).
type Struct struct {
	node
	Name    string
	Fields  []*FieldDecl
	Methods []*Fn
	Statics []Stmt
}

func (*Struct) isStmt() {}

// Plugin is a method body attached to a struct after the fact, via
// `pack Target with name(args) { body }` rather than inside the struct's
// own body. The parser records Target but leaves folding it into that
// struct's method table to the analyser.
type Plugin struct {
	node
	Name   string
	Target string
	Args   []Param
	Ret    Type
	Body   []Stmt
}

func (*Plugin) isStmt() {}

// Bundle is `bundle "path" as alias;`, a source-file import (spec §4.3, §4.7).
type Bundle struct {
	node
	Path  string
	Alias string
}

func (*Bundle) isStmt() {}

// Namespace is `bundle alias { body }`, an inline module (spec §4.3).
type Namespace struct {
	node
	Alias string
	Body  []Stmt
}

func (*Namespace) isStmt() {}

// Unpack is `unpack alias { a, b, c };`, selective re-export (spec §4.3, §4.7).
type Unpack struct {
	node
	Alias   string
	Symbols []string
}

func (*Unpack) isStmt() {}

// ReAssign is `lhs = rhs;` (spec §4.3, §4.4).
type ReAssign struct {
	node
	LHS Expr
	RHS Expr
}

func (*ReAssign) isStmt() {}

// ExprStmt wraps a bare expression used as a statement — the common case
// being a Call at statement position (spec §4.4: "`(` after an
// identifier at statement top is a Call statement").
type ExprStmt struct {
	node
	Expr Expr
}

func (*ExprStmt) isStmt() {}
