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
	"strings"
	"testing"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
)

func TestSectionOrderInOutput(t *testing.T) {
	g := New()

	restore := g.Section(Header)
	g.Line("struct Point;")
	restore()

	g.Line("int x;")

	restoreFn := g.Section(Func)
	g.Line("int main() { return 0; }")
	restoreFn()

	out := g.Output()
	if strings.Index(out, "struct Point;") > strings.Index(out, "int main()") {
		t.Fatalf("expected header before func, got %q", out)
	}

	if strings.Index(out, "int x;") > strings.Index(out, "int main()") {
		t.Fatalf("expected text before func, got %q", out)
	}
}

func TestSectionRestoresOnDefer(t *testing.T) {
	g := New()

	func() {
		defer g.Section(Func)()
		g.Line("void helper() {}")
	}()

	g.Line("int y;")

	if g.Current() != Text {
		t.Fatalf("expected section restored to Text, got %v", g.Current())
	}
}

func TestCTypeMapping(t *testing.T) {
	g := New()

	if got := g.CType(ast.NewPrimitive(ast.I32)); got != "jaguar_i32" {
		t.Fatalf("got %q", got)
	}

	if got := g.CType(ast.NewMut(ast.NewPrimitive(ast.U8))); got != "jaguar_u8" {
		t.Fatalf("got %q", got)
	}

	ptr := &ast.PtrType{Elem: &ast.CustomType{Name: "Point"}}
	if got := g.CType(ptr); got != "Point*" {
		t.Fatalf("got %q", got)
	}
}

func TestListMacroEmittedOnce(t *testing.T) {
	g := New()
	lt := &ast.ListType{Elem: ast.NewPrimitive(ast.INT), N: 4}

	name1 := g.ListMacroName(lt)
	name2 := g.ListMacroName(lt)

	if name1 != name2 {
		t.Fatalf("expected stable macro name, got %q and %q", name1, name2)
	}

	count := strings.Count(g.HeaderOutput(), "jaguar_list(")
	if count != 1 {
		t.Fatalf("expected exactly one macro emission, got %d", count)
	}
}

func TestMangleExemptsMain(t *testing.T) {
	if got := Mangle("prog.jag", "global", "main"); got != "main" {
		t.Fatalf("got %q", got)
	}

	if got := Mangle("prog.jag", "global", "helper"); got != "_Jaguar_prog_jag_global_helper" {
		t.Fatalf("got %q", got)
	}
}

func TestMethodCallSelfAddressing(t *testing.T) {
	if got := MethodCall("Point", "len", "p", false, nil); got != "Point_len(&p)" {
		t.Fatalf("got %q", got)
	}

	if got := MethodCall("Point", "len", "p", true, []string{"1"}); got != "Point_len(p, 1)" {
		t.Fatalf("got %q", got)
	}
}

func TestStructInitDesignated(t *testing.T) {
	got := StructInit("Point", []string{"x", "y"}, []string{"1", "2"})
	if got != "(Point){ .x = 1, .y = 2 }" {
		t.Fatalf("got %q", got)
	}
}
