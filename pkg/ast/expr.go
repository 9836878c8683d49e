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

// Expr is the closed set of expression forms, spec §4.3. As with Type,
// one concrete struct per variant; every node additionally satisfies
// Node so it can be registered in a source.Map.
type Expr interface {
	Node
	isExpr()
}

// Node is implemented by every AST node (statement or expression). A
// Node's identity (pointer equality) is what source.Map keys on, so
// every constructor below returns a fresh pointer — nodes are never
// interned or deduplicated.
type Node interface {
	isNode()
}

type node struct{}

func (*node) isNode() {}

// LitInt is an integer literal (spec §4.3, §4.6). Width/overflow checking
// happens in the analyser once the target type is known; the parser only
// records the literal digits.
type LitInt struct {
	node
	Value uint64
}

func (*LitInt) isExpr() {}

// LitStr is a string literal. Typed STR, never a pointer by itself (spec
// §4.6 — it may be *cast* to ptr<char>).
type LitStr struct {
	node
	Value string
}

func (*LitStr) isExpr() {}

// LitChar is a single-character literal.
type LitChar struct {
	node
	Value byte
}

func (*LitChar) isExpr() {}

// Nullptr is the `nullptr` literal (typeless; matches PTR(T) for any T).
type Nullptr struct {
	node
}

func (*Nullptr) isExpr() {}

// Ident is a bare name reference, optionally immediately dereferenced by
// a leading `*` recorded at parse time for lvalue chains (spec §4.3).
type Ident struct {
	node
	Name  string
	Deref bool
}

func (*Ident) isExpr() {}

// Ref is `&expr` — take the address of an lvalue (spec §4.6).
type Ref struct {
	node
	Expr Expr
}

func (*Ref) isExpr() {}

// Deref is `*expr` — dereference a pointer or reference (spec §4.6).
type Deref struct {
	node
	Expr Expr
}

func (*Deref) isExpr() {}

// BinOp enumerates the binary operators of spec §4.3.
type BinOp string

// The binary operators recognised by the parser (spec §4.3).
const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpEq  BinOp = "=="
	OpNe  BinOp = "!="
	OpLt  BinOp = "<"
	OpLe  BinOp = "<="
	OpGt  BinOp = ">"
	OpGe  BinOp = ">="
	OpAnd BinOp = "&&"
	OpOr  BinOp = "||"
)

// IsArithmetic reports whether op is one of + - * / (integer-only, spec §4.3).
func (op BinOp) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

// IsEquality reports whether op is == or != (polymorphic, spec §4.3/§4.6).
func (op BinOp) IsEquality() bool {
	return op == OpEq || op == OpNe
}

// Binary is a binary operator expression.
type Binary struct {
	node
	LHS Expr
	Op  BinOp
	RHS Expr
}

func (*Binary) isExpr() {}

// Call is a function/method invocation. Callee is either an Ident (a
// plain call), a MemberAccess (a method call, spec §4.6), or a
// BundleAccess (a qualified call, spec §4.7).
type Call struct {
	node
	Callee Expr
	Args   []Expr
}

func (*Call) isExpr() {}

// MemberAccess is `base.field`, which the parser leaves ambiguous between
// a field read and a method-call callee until the analyser resolves
// `base`'s struct layout (spec §4.6).
type MemberAccess struct {
	node
	Base  Expr
	Field string
}

func (*MemberAccess) isExpr() {}

// BundleAccess is `base::field`, a qualified reference into an imported
// module or a nested inline namespace (spec §4.4, §4.7).
type BundleAccess struct {
	node
	Base  Expr
	Field string
}

func (*BundleAccess) isExpr() {}

// ListInit is a fixed-size array literal, `[e0, e1, ...]`.
type ListInit struct {
	node
	Items []Expr
}

func (*ListInit) isExpr() {}

// ListAccess is `base[index]`; chains of `[idx][idx]` stack (spec §4.4).
type ListAccess struct {
	node
	Base  Expr
	Index Expr
}

func (*ListAccess) isExpr() {}

// FieldPair is one `field: value` pair inside a StructInit.
type FieldPair struct {
	node
	Field string
	Value Expr
}

func (*FieldPair) isExpr() {}

// StructInit is a designated-initialiser expression, `Type{f: v, ...}`
// (spec §4.8: lowers to a C compound literal).
type StructInit struct {
	node
	Type   string
	Fields []*FieldPair
}

func (*StructInit) isExpr() {}

// Cast is `expr as T` (spec §4.4, §4.6).
type Cast struct {
	node
	Expr Expr
	Type Type
}

func (*Cast) isExpr() {}
