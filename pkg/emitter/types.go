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
package emitter

import (
	"fmt"
	"strings"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
)

// primitiveTypedefs maps each built-in scalar to the fixed C typedef the
// runtime header defines for it (spec §4.8).
var primitiveTypedefs = map[ast.Primitive]string{
	ast.INT:  "jaguar_i32",
	ast.I8:   "jaguar_i8",
	ast.I16:  "jaguar_i16",
	ast.I32:  "jaguar_i32",
	ast.I64:  "jaguar_i64",
	ast.U8:   "jaguar_u8",
	ast.U16:  "jaguar_u16",
	ast.U32:  "jaguar_u32",
	ast.U64:  "jaguar_u64",
	ast.CHAR: "char",
	ast.STR:  "jaguar_str",
	ast.VOID: "void",
}

// CType renders t as the C type it lowers to. MUT/BUNDLED wrappers carry
// no C-level representation of their own (mutability and module identity
// are compile-time-only concerns), so both are stripped before rendering.
func (g *Generator) CType(t ast.Type) string {
	switch v := t.(type) {
	case *ast.MutType:
		return g.CType(v.Elem)
	case *ast.BundledType:
		return g.CType(v.Elem)
	case *ast.PrimitiveType:
		return primitiveTypedefs[v.Kind]
	case *ast.CustomType:
		return v.Name
	case *ast.PtrType:
		return g.CType(v.Elem) + "*"
	case *ast.ListType:
		return g.ListMacroName(v)
	default:
		return "void"
	}
}

// ListMacroName returns the type name a LIST(T,N) lowers to, emitting its
// backing `jaguar_list(T, N)` macro instantiation into HEADER the first
// time this (element, size) pair is seen (spec §4.8).
func (g *Generator) ListMacroName(t *ast.ListType) string {
	elemName := g.CType(t.Elem)
	key := fmt.Sprintf("%s_%d", elemName, t.N)

	if !g.listMacros[key] {
		g.listMacros[key] = true

		restore := g.Section(Header)
		g.Line("jaguar_list(%s, %d)", elemName, t.N)

		restore()
	}

	return fmt.Sprintf("jaguar_list_%s_%d", elemName, t.N)
}

// Mangle produces the C identifier for a name declared at scope within
// basename, per spec §4.8: "_Jaguar_<basename>_<scope>_<name>". "main" is
// exempt (the driver's C entry point keeps its literal spelling).
func Mangle(basename, scope, name string) string {
	if name == "main" {
		return "main"
	}

	return fmt.Sprintf("_Jaguar_%s_%s_%s", sanitize(basename), sanitize(scope), name)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '/' || r == '-' {
			return '_'
		}

		return r
	}, s)
}
