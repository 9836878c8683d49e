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

// Package ast defines the spanned abstract syntax tree produced by
// pkg/parser and the closed type algebra checked by pkg/analyser (spec
// §3, §4.3).
package ast

import "fmt"

// Type is the closed algebra of spec §3: one concrete struct per
// variant, following the teacher's own `ast.Type` interface-per-variant
// shape (pkg/corset/ast/type.go's AnyType/IntType/ArrayType family)
// rather than a single tagged struct, so that Go's type switch in
// pkg/analyser reads the same way the teacher's own type-directed code
// does.
type Type interface {
	// String renders the type the way it appears in diagnostics and in
	// emitted C comments.
	String() string
	isType()
}

// Primitive enumerates the built-in scalar kinds of spec §3.
type Primitive uint8

// The primitive kinds, spec §3. BOOL and BUF are deliberately absent:
// spec §4.2 reserves "bool" and "buf" as keywords, but §3's type algebra
// never defines them as primitives, so the type recogniser (pkg/parser)
// rejects them — see DESIGN.md Open Question 3.
const (
	INT Primitive = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	CHAR
	STR
	VOID
)

var primitiveNames = map[Primitive]string{
	INT: "int", I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	CHAR: "char", STR: "str", VOID: "void",
}

// PrimitiveFromKeyword maps a type-keyword spelling to its Primitive, and
// reports whether the keyword names one at all (e.g. "bool"/"buf" do not).
func PrimitiveFromKeyword(keyword string) (Primitive, bool) {
	for p, name := range primitiveNames {
		if name == keyword {
			return p, true
		}
	}

	return 0, false
}

// Width returns the bit width of an integer primitive, used to range
// check literal constants (spec §4.6). Zero means "not an integer width
// to check against" (CHAR/STR/VOID).
func (p Primitive) Width() uint {
	switch p {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, INT:
		return 32
	case I64, U64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether this primitive is a signed integer kind.
func (p Primitive) Signed() bool {
	switch p {
	case INT, I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether this primitive participates in arithmetic.
func (p Primitive) IsInteger() bool {
	switch p {
	case CHAR, STR, VOID:
		return false
	default:
		return true
	}
}

// PrimitiveType is a built-in scalar type.
type PrimitiveType struct {
	Kind Primitive
}

func (*PrimitiveType) isType() {}

// String renders the primitive's source-level keyword.
func (t *PrimitiveType) String() string {
	return primitiveNames[t.Kind]
}

// NewPrimitive constructs a primitive type, a convenience used pervasively
// by the analyser when synthesising types for literals.
func NewPrimitive(kind Primitive) *PrimitiveType {
	return &PrimitiveType{kind}
}

// CustomType names a user-declared struct (spec §3).
type CustomType struct {
	Name string
}

func (*CustomType) isType() {}

func (t *CustomType) String() string {
	return t.Name
}

// PtrType is a pointer to another type.
type PtrType struct {
	Elem Type
}

func (*PtrType) isType() {}

func (t *PtrType) String() string {
	return fmt.Sprintf("ptr<%s>", t.Elem.String())
}

// ListType is a fixed-capacity array of N elements of Elem.
type ListType struct {
	Elem Type
	N    uint
}

func (*ListType) isType() {}

func (t *ListType) String() string {
	return fmt.Sprintf("list<%s, %d>", t.Elem.String(), t.N)
}

// MutType marks a binding (variable or field) as accepting assignment.
// Per spec §3's invariant, MUT wraps at most once and only at the
// outermost position — NewMut enforces this by collapsing a repeated
// wrap instead of nesting it.
type MutType struct {
	Elem Type
}

func (*MutType) isType() {}

func (t *MutType) String() string {
	return fmt.Sprintf("mut %s", t.Elem.String())
}

// NewMut wraps t in MUT, collapsing an existing outer MUT rather than
// nesting (spec §3 invariant: "two MUTs collapse").
func NewMut(t Type) Type {
	if m, ok := t.(*MutType); ok {
		return m
	}

	return &MutType{t}
}

// IsMut reports whether t is (exactly) a MUT-wrapped type.
func IsMut(t Type) bool {
	_, ok := t.(*MutType)
	return ok
}

// StripMut removes an outermost MUT wrapper, if present. Per spec §3,
// this is "the canonical way to compare two types for structural
// equality" — every equality/assignment check in pkg/analyser goes
// through this first.
func StripMut(t Type) Type {
	if m, ok := t.(*MutType); ok {
		return m.Elem
	}

	return t
}

// BundledType is T as seen through an imported module (spec §3, §4.7).
// Two BUNDLED types are equal when their underlying struct layout's
// originating file agrees, regardless of which alias either side was
// reached through — see Equal below.
type BundledType struct {
	Module string
	Elem   Type
	// File identifies the struct layout's originating source file, used
	// to distinguish two modules that both re-export a type under the
	// same spelling but from different files (spec §3 invariant).
	File string
}

func (*BundledType) isType() {}

func (t *BundledType) String() string {
	return fmt.Sprintf("%s::%s", t.Module, t.Elem.String())
}

// NewBundled wraps t for access through module alias, refusing to wrap a
// builtin primitive per spec §3's invariant ("BUNDLED never wraps a
// primitive").
func NewBundled(alias string, file string, t Type) Type {
	if IsBuiltin(t) {
		return t
	}

	return &BundledType{alias, t, file}
}

// AnyType is the inference-only sentinel of spec §3; it is never emitted.
type AnyType struct{}

func (*AnyType) isType() {}

func (*AnyType) String() string {
	return "any"
}

// ANY is the single shared instance of the inference sentinel.
var ANY Type = &AnyType{}

// IsBuiltin reports whether t, after stripping any BUNDLED wrapper, is one
// of the built-in primitive kinds (spec §3: "is_builtin strips BUNDLED
// before checking").
func IsBuiltin(t Type) bool {
	if b, ok := t.(*BundledType); ok {
		t = b.Elem
	}

	_, ok := t.(*PrimitiveType)

	return ok
}

// Equal determines structural type equality after stripping MUT, which is
// the canonical comparison rule named by spec §3 and used by every
// equality/assignment/cast check in pkg/analyser.
func Equal(a, b Type) bool {
	a, b = StripMut(a), StripMut(b)

	if isAny(a) || isAny(b) {
		return true
	}

	switch at := a.(type) {
	case *PrimitiveType:
		bt, ok := b.(*PrimitiveType)
		return ok && at.Kind == bt.Kind
	case *CustomType:
		bt, ok := b.(*CustomType)
		return ok && at.Name == bt.Name
	case *PtrType:
		bt, ok := b.(*PtrType)
		return ok && Equal(at.Elem, bt.Elem)
	case *ListType:
		bt, ok := b.(*ListType)
		return ok && at.N == bt.N && Equal(at.Elem, bt.Elem)
	case *BundledType:
		bt, ok := b.(*BundledType)
		return ok && at.File == bt.File && Equal(at.Elem, bt.Elem)
	default:
		return false
	}
}

func isAny(t Type) bool {
	_, ok := t.(*AnyType)
	return ok
}
