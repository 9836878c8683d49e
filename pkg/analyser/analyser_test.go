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
package analyser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/source"
)

// compile runs the full lex/parse/analyse pipeline over src, rooted at a
// temp-dir source file so that bundle imports (which resolve relative to
// the importing file's directory, spec §4.7) work the same way the CLI
// driver's own CompileFile call does.
func compile(t *testing.T, dir, src string) (*Analyser, bool) {
	t.Helper()

	path := filepath.Join(dir, "main.jag")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	file, err := source.ReadFile(path)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}

	return CompileFile(file, filepath.Join(dir, "build"))
}

func diagText(a *Analyser) string {
	var sb strings.Builder
	a.Queue().Flush(&sb)

	return sb.String()
}

// Scenario 1 (spec §8): hello world via an extern declaration.
func TestHelloWorldEmitsMainReturningZero(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		extern puts(s: str): int;
		fn main() {
			puts("hi");
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}

	out := a.Generator().Output()

	if !strings.Contains(out, `puts("hi");`) {
		t.Fatalf("expected call-site puts(\"hi\"); in output:\n%s", out)
	}

	if !strings.Contains(out, "jaguar_i32 main(void) {") {
		t.Fatalf("expected main() to return jaguar_i32, got:\n%s", out)
	}
}

// Scenario 2 (spec §8): const enforcement.
func TestConstReassignIsFatal(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		fn main() {
			let x: int = 1;
			x = 2;
		}
	`)
	if ok {
		t.Fatalf("expected analysis failure")
	}

	items := a.Queue().Items()

	errs := 0
	for _, d := range items {
		if d.Level == source.LevelError {
			errs++
		}
	}

	if errs != 1 {
		t.Fatalf("expected exactly one error, got %d: %+v", errs, items)
	}

	if !strings.Contains(diagText(a), "Cannot mutate a const value 'x'") {
		t.Fatalf("expected exact wording, got:\n%s", diagText(a))
	}
}

func TestMutReassignCompiles(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		fn main() {
			let x: mut int = 1;
			x = 2;
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}
}

// Scenario 3 (spec §8): pointer arrow vs dot.
func TestMemberAccessArrowVsDot(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		struct P { x: int; }
		fn main() {
			let p: P = P{x:1};
			let q: ptr<P> = &p;
			q.x;
			p.x;
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}

	out := a.Generator().Output()

	if !strings.Contains(out, "q->x;") {
		t.Fatalf("expected q->x in output:\n%s", out)
	}

	if !strings.Contains(out, "p.x;") {
		t.Fatalf("expected p.x in output:\n%s", out)
	}
}

// spec §4.6: cast admits pointer<->STR and integer<->pointer, not only
// pointer<->pointer and integer<->integer.
func TestCastAdmitsPointerStrAndIntegerPointerPairs(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		fn main() {
			let p: ptr<char> = 0 as ptr<char>;
			let s: str = p as str;
			let back: ptr<char> = s as ptr<char>;
			let n: int = p as int;
			let q: ptr<char> = n as ptr<char>;
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}
}

// Scenario 6 (spec §8): variadic extern.
func TestVariadicExternAcceptsAnyArgc(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		extern printf(fmt: str, ...): int;
		fn main() {
			printf("%d %d", 1, 2);
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}

	out := a.Generator().Output()
	if !strings.Contains(out, "extern jaguar_i32 printf(jaguar_str fmt, ...);") {
		t.Fatalf("expected variadic prototype, got:\n%s", out)
	}
}

// spec §4.6/§7: passing a non-MUT expression into a MUT parameter is an
// error, even though a MUT and non-MUT int are otherwise coerceAdmissible.
func TestConstArgIntoMutParamIsFatal(t *testing.T) {
	_, ok := compile(t, t.TempDir(), `
		fn bump(x: mut int) {
			x = x + 1;
		}
		fn main() {
			let n: int = 1;
			bump(n);
		}
	`)
	if ok {
		t.Fatalf("expected passing a const value into a mut parameter to be fatal")
	}
}

func TestMutArgIntoMutParamCompiles(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		fn bump(x: mut int) {
			x = x + 1;
		}
		fn main() {
			let n: mut int = 1;
			bump(n);
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}
}

// Scenario 4 (spec §8): bundle import, deduplicated across two aliases.
func TestBundleImportSharesStructLayoutAcrossAliases(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.jag"), []byte(`
		struct T { v: int; }
	`), 0o644); err != nil {
		t.Fatalf("writing bundle source: %v", err)
	}

	a, ok := compile(t, dir, `
		bundle "a.jag" as A;
		bundle "a.jag" as B;
		fn main() {
			let t: A::T = A::T{v:1};
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}

	modA := a.modules.Lookup("A")
	modB := a.modules.Lookup("B")

	if modA == nil || modB == nil {
		t.Fatalf("expected both aliases attached")
	}

	if modA.SourceFile != modB.SourceFile {
		t.Fatalf("expected both aliases to share one originating file, got %q vs %q", modA.SourceFile, modB.SourceFile)
	}

	layoutA := modA.Types.Lookup("T")
	layoutB := modB.Types.Lookup("T")

	if layoutA == nil || layoutB == nil || layoutA.File != layoutB.File {
		t.Fatalf("expected both aliases' T to resolve to the same originating file")
	}

	aT := modA.WrapType(&ast.CustomType{Name: "T"})
	bT := modB.WrapType(&ast.CustomType{Name: "T"})

	if !ast.Equal(aT, bT) {
		t.Fatalf("expected A::T and B::T to be ast.Equal (same file, different alias), got %s vs %s", aT.String(), bT.String())
	}

	headerPath := filepath.Join(dir, "build", "a.jag.h")
	if _, err := os.Stat(headerPath); err != nil {
		t.Fatalf("expected one emitted header at %s: %v", headerPath, err)
	}
}

func TestBundleVanillaTypeIncompatibleWithBundledType(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.jag"), []byte(`
		struct T { v: int; }
	`), 0o644); err != nil {
		t.Fatalf("writing bundle source: %v", err)
	}

	_, ok := compile(t, dir, `
		bundle "a.jag" as A;
		struct T { v: int; }
		fn main() {
			let x: T = T{v:1};
			let y: A::T = x;
		}
	`)
	if ok {
		t.Fatalf("expected a vanilla T and a bundled A::T to be incompatible")
	}
}

// Scenario 5 (spec §8): unpack conflict.
func TestUnpackConflictIsFatal(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.jag"), []byte(`
		fn foo(): int { ret 1; }
	`), 0o644); err != nil {
		t.Fatalf("writing bundle source: %v", err)
	}

	a, ok := compile(t, dir, `
		bundle "a.jag" as A;
		fn foo(): int { ret 2; }
		unpack A { foo };
	`)
	if ok {
		t.Fatalf("expected unpack conflict to be fatal")
	}

	if !strings.Contains(diagText(a), "foo") {
		t.Fatalf("expected diagnostic naming 'foo', got:\n%s", diagText(a))
	}
}

func TestUnpackUnresolvedSymbolIsFatal(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.jag"), []byte(`
		fn foo(): int { ret 1; }
	`), 0o644); err != nil {
		t.Fatalf("writing bundle source: %v", err)
	}

	_, ok := compile(t, dir, `
		bundle "a.jag" as A;
		unpack A { bar };
	`)
	if ok {
		t.Fatalf("expected unresolved unpack symbol to be fatal")
	}
}

func TestMethodDispatchChoosesAddressOfOrPassThrough(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		struct P {
			x: int;
			fn get(self): int {
				ret self.x;
			}
		}
		fn main() {
			let p: P = P{x:1};
			let q: ptr<P> = &p;
			p.get();
			q.get();
		}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}

	out := a.Generator().Output()

	if !strings.Contains(out, "P_get(&p)") {
		t.Fatalf("expected value base to pass &p, got:\n%s", out)
	}

	if !strings.Contains(out, "P_get(q)") {
		t.Fatalf("expected pointer base to pass q directly, got:\n%s", out)
	}
}

func TestIntegerLiteralTruncationWarnsNotErrors(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		fn main() {
			let x: u8 = 300;
		}
	`)
	if !ok {
		t.Fatalf("truncation must warn, not fail analysis:\n%s", diagText(a))
	}

	found := false

	for _, d := range a.Queue().Items() {
		if d.Level == source.LevelWarning && strings.Contains(d.Message, "truncated") {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected a truncation warning, got:\n%s", diagText(a))
	}
}

func TestBreakOutsideLoopIsFatal(t *testing.T) {
	_, ok := compile(t, t.TempDir(), `
		fn main() {
			break;
		}
	`)
	if ok {
		t.Fatalf("expected break outside a loop to be fatal")
	}
}

func TestReturnOutsideFunctionIsFatal(t *testing.T) {
	_, ok := compile(t, t.TempDir(), `
		ret 1;
		fn main() {}
	`)
	if ok {
		t.Fatalf("expected 'ret' outside a function to be fatal")
	}
}

// spec §4.8: a global `let` whose initialiser is a literal zero (or
// nullptr) declares into BSS with no initialiser, rather than DATA with
// an explicit `= 0`.
func TestGlobalZeroLetEmitsToBss(t *testing.T) {
	a, ok := compile(t, t.TempDir(), `
		let z: int = 0;
		let n: int = 5;
		fn main() {}
	`)
	if !ok {
		t.Fatalf("unexpected analysis errors:\n%s", diagText(a))
	}

	out := a.Generator().Output()

	if !strings.Contains(out, "jaguar_i32 _Jaguar_main_jag_global_z;") {
		t.Fatalf("expected zero-valued global in bss with no initialiser, got:\n%s", out)
	}

	if !strings.Contains(out, "jaguar_i32 _Jaguar_main_jag_global_n = 5;") {
		t.Fatalf("expected non-zero global in data with initialiser, got:\n%s", out)
	}
}

func TestStructInitExcessFieldIsFatal(t *testing.T) {
	_, ok := compile(t, t.TempDir(), `
		struct P { x: int; }
		fn main() {
			let p: P = P{x:1, y:2};
		}
	`)
	if ok {
		t.Fatalf("expected excess struct-init field to be fatal")
	}
}
