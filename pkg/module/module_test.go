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
package module

import (
	"testing"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
)

func TestResolvePathRelative(t *testing.T) {
	got := ResolvePath("/src/main.jag", "util.jag")
	if got != "/src/util.jag" {
		t.Fatalf("got %q", got)
	}
}

func TestResolvePathAbsolute(t *testing.T) {
	got := ResolvePath("/src/main.jag", "/other/util.jag")
	if got != "/other/util.jag" {
		t.Fatalf("got %q", got)
	}
}

func TestHeaderPath(t *testing.T) {
	got := HeaderPath("/cwd/build", "/src/util.jag")
	if got != "/cwd/build/util.jag.h" {
		t.Fatalf("got %q", got)
	}
}

func TestCloneSharesSourceFile(t *testing.T) {
	m := NewModule("a", "/build/util.h", "/src/util.jag")
	clone := m.Clone("b")

	if clone.SourceFile != m.SourceFile {
		t.Fatalf("clone lost source file")
	}

	if clone.Alias != "b" || m.Alias != "a" {
		t.Fatalf("alias not independent after clone")
	}
}

func TestWrapTypeSkipsBuiltin(t *testing.T) {
	m := NewModule("a", "/build/util.h", "/src/util.jag")

	prim := ast.NewPrimitive(ast.INT)
	if wrapped := m.WrapType(prim); wrapped != ast.Type(prim) {
		t.Fatalf("builtin should not be wrapped")
	}

	custom := &ast.CustomType{Name: "Point"}
	wrapped := m.WrapType(custom)
	bundled, ok := wrapped.(*ast.BundledType)

	if !ok || bundled.Module != "a" || bundled.File != "/src/util.jag" {
		t.Fatalf("expected BUNDLED wrap, got %#v", wrapped)
	}
}

func TestTableDeduplicatesByOutputPath(t *testing.T) {
	table := NewTable()
	first := NewModule("a", "/build/util.h", "/src/util.jag")

	if !table.Attach(first) {
		t.Fatalf("first attach should succeed")
	}

	if existing := table.Existing("/build/util.h"); existing != first {
		t.Fatalf("expected to find first module by output path")
	}

	clone := first.Clone("b")
	if !table.Attach(clone) {
		t.Fatalf("second alias of same file should attach")
	}

	if table.Lookup("a") == table.Lookup("b") {
		t.Fatalf("aliases should be distinct records")
	}

	if table.Lookup("a").SourceFile != table.Lookup("b").SourceFile {
		t.Fatalf("clones must agree on source file")
	}
}

func TestTableAttachRejectsDuplicateAlias(t *testing.T) {
	table := NewTable()
	a := NewModule("a", "/build/one.h", "/src/one.jag")
	b := NewModule("a", "/build/two.h", "/src/two.jag")

	table.Attach(a)

	if table.Attach(b) {
		t.Fatalf("expected duplicate alias to be rejected")
	}
}
