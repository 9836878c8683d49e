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
package parser

import (
	"testing"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/source"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()

	file := source.NewFile("t.jag", []byte(src))
	queue := source.NewQueue(file)

	prog, _, ok := Parse(file, queue)
	if !ok {
		t.Fatalf("parse failed: %+v", queue.Items())
	}

	return prog
}

func parseFails(t *testing.T, src string) {
	t.Helper()

	file := source.NewFile("t.jag", []byte(src))
	queue := source.NewQueue(file)

	if _, _, ok := Parse(file, queue); ok {
		t.Fatalf("expected parse failure for %q", src)
	}
}

func TestParseLetWithMutType(t *testing.T) {
	prog := parse(t, "let x: mut int = 1;")

	let := prog.Decls[0].(*ast.Let)
	if let.Name != "x" {
		t.Fatalf("got name %q", let.Name)
	}

	mt, ok := let.Type.(*ast.MutType)
	if !ok {
		t.Fatalf("expected MutType, got %T", let.Type)
	}

	if _, ok := mt.Elem.(*ast.PrimitiveType); !ok {
		t.Fatalf("expected mut-wrapped primitive, got %T", mt.Elem)
	}
}

func TestParseFunctionAndCall(t *testing.T) {
	prog := parse(t, `
		fn add(a: int, b: int): int {
			ret a + b;
		}
		add(1, 2);
	`)

	fn := prog.Decls[0].(*ast.Fn)
	if fn.Name != "add" || len(fn.Args) != 2 || !fn.Returns {
		t.Fatalf("got fn %+v", fn)
	}

	ret := fn.Body[0].(*ast.Return)
	bin := ret.Value.(*ast.Binary)

	if bin.Op != ast.OpAdd {
		t.Fatalf("expected +, got %s", bin.Op)
	}

	call := prog.Decls[1].(*ast.ExprStmt).Expr.(*ast.Call)
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 call args, got %d", len(call.Args))
	}
}

func TestParseIfConditionNotSwallowedAsStructInit(t *testing.T) {
	prog := parse(t, `
		fn f() {
			if p {
				ret;
			}
		}
	`)

	fn := prog.Decls[0].(*ast.Fn)
	ifStmt := fn.Body[0].(*ast.If)

	if _, ok := ifStmt.Cond.(*ast.Ident); !ok {
		t.Fatalf("expected bare Ident condition, got %T", ifStmt.Cond)
	}

	if len(ifStmt.Body) != 1 {
		t.Fatalf("expected one statement in if body, got %d", len(ifStmt.Body))
	}
}

func TestParseStructInitInLet(t *testing.T) {
	prog := parse(t, `let p: Point = Point { x: 1, y: 2 };`)

	let := prog.Decls[0].(*ast.Let)
	init := let.Value.(*ast.StructInit)

	if init.Type != "Point" || len(init.Fields) != 2 {
		t.Fatalf("got %+v", init)
	}
}

func TestParseMethodSelfRewritten(t *testing.T) {
	prog := parse(t, `
		struct Point {
			x: int;
			fn len(self): int {
				ret self.x;
			}
		}
	`)

	st := prog.Decls[0].(*ast.Struct)
	method := st.Methods[0]

	ptr, ok := method.Args[0].Type.(*ast.PtrType)
	if !ok {
		t.Fatalf("expected self rewritten to ptr<T>, got %T", method.Args[0].Type)
	}

	custom, ok := ptr.Elem.(*ast.CustomType)
	if !ok || custom.Name != "Point" {
		t.Fatalf("expected ptr<Point>, got %+v", ptr.Elem)
	}
}

func TestParsePostfixChainMemberAndBundleAndIndex(t *testing.T) {
	prog := parse(t, `a.b::c[0](1);`)

	call := prog.Decls[0].(*ast.ExprStmt).Expr.(*ast.Call)
	access := call.Callee.(*ast.ListAccess)
	bundle := access.Base.(*ast.BundleAccess)
	member := bundle.Base.(*ast.MemberAccess)
	ident := member.Base.(*ast.Ident)

	if ident.Name != "a" || member.Field != "b" || bundle.Field != "c" {
		t.Fatalf("unexpected chain: %+v / %+v / %+v", member, bundle, ident)
	}
}

func TestParseDerefIdentLvalue(t *testing.T) {
	prog := parse(t, `*p = 1;`)

	reassign := prog.Decls[0].(*ast.ReAssign)
	ident := reassign.LHS.(*ast.Ident)

	if !ident.Deref || ident.Name != "p" {
		t.Fatalf("expected deref'd ident lvalue, got %+v", ident)
	}
}

func TestParseCastAndRef(t *testing.T) {
	prog := parse(t, `let x: int = (&y) as int;`)

	let := prog.Decls[0].(*ast.Let)
	cast := let.Value.(*ast.Cast)

	if _, ok := cast.Expr.(*ast.Ref); !ok {
		t.Fatalf("expected Ref inside cast, got %T", cast.Expr)
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parse(t, `
		fn f() {
			for (let i: int = 0; i < 10; i = i + 1) {
				continue;
			}
		}
	`)

	fn := prog.Decls[0].(*ast.Fn)
	forStmt := fn.Body[0].(*ast.For)

	if _, ok := forStmt.Init.(*ast.Let); !ok {
		t.Fatalf("expected Let init, got %T", forStmt.Init)
	}

	if _, ok := forStmt.Inc.(*ast.ReAssign); !ok {
		t.Fatalf("expected ReAssign inc, got %T", forStmt.Inc)
	}
}

func TestParseBundleImportAndUnpack(t *testing.T) {
	prog := parse(t, `
		bundle "util.jag" as util;
		unpack util { helper, Point };
	`)

	bundle := prog.Decls[0].(*ast.Bundle)
	if bundle.Path != "util.jag" || bundle.Alias != "util" {
		t.Fatalf("got %+v", bundle)
	}

	unpack := prog.Decls[1].(*ast.Unpack)
	if unpack.Alias != "util" || len(unpack.Symbols) != 2 {
		t.Fatalf("got %+v", unpack)
	}
}

func TestParsePackPluginRewritesSelf(t *testing.T) {
	prog := parse(t, `
		pack Point with len(self): int {
			ret self.x;
		}
	`)

	plugin := prog.Decls[0].(*ast.Plugin)
	if plugin.Target != "Point" || plugin.Name != "len" {
		t.Fatalf("got %+v", plugin)
	}

	ptr, ok := plugin.Args[0].Type.(*ast.PtrType)
	if !ok {
		t.Fatalf("expected self rewritten to ptr<T>, got %T", plugin.Args[0].Type)
	}

	if custom, ok := ptr.Elem.(*ast.CustomType); !ok || custom.Name != "Point" {
		t.Fatalf("expected ptr<Point>, got %+v", ptr.Elem)
	}
}

func TestParseListTypeAndAccess(t *testing.T) {
	prog := parse(t, `let xs: list<int, 4> = [1, 2, 3, 4]; xs[0];`)

	let := prog.Decls[0].(*ast.Let)
	lt := let.Type.(*ast.ListType)

	if lt.N != 4 {
		t.Fatalf("expected N=4, got %d", lt.N)
	}

	access := prog.Decls[1].(*ast.ExprStmt).Expr.(*ast.ListAccess)
	if _, ok := access.Base.(*ast.Ident); !ok {
		t.Fatalf("expected Ident base, got %T", access.Base)
	}
}

func TestParseVariadicExtern(t *testing.T) {
	prog := parse(t, `extern printf(fmt: str, ...): int;`)

	ext := prog.Decls[0].(*ast.Extern)
	if ext.Name != "printf" || !ext.Variadic || len(ext.Args) != 1 {
		t.Fatalf("got %+v", ext)
	}

	if _, ok := ext.Ret.(*ast.PrimitiveType); !ok {
		t.Fatalf("expected a primitive return type, got %T", ext.Ret)
	}
}

func TestParseUnterminatedBlockIsFatal(t *testing.T) {
	parseFails(t, `fn f() { ret 1;`)
}

func TestParseMissingSemicolonIsFatal(t *testing.T) {
	parseFails(t, `let x: int = 1`)
}

func TestParseSpansAreRegistered(t *testing.T) {
	file := source.NewFile("t.jag", []byte("let x: int = 1;"))
	queue := source.NewQueue(file)

	prog, srcmap, ok := Parse(file, queue)
	if !ok {
		t.Fatalf("parse failed: %+v", queue.Items())
	}

	span := srcmap.Get(prog.Decls[0])
	if file.Text(span) != "let x: int = 1;" {
		t.Fatalf("got span text %q", file.Text(span))
	}
}
