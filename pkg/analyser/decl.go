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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/emitter"
	"github.com/jaguar-lang/jaguarc/pkg/module"
	"github.com/jaguar-lang/jaguarc/pkg/parser"
	"github.com/jaguar-lang/jaguarc/pkg/source"
	"github.com/jaguar-lang/jaguarc/pkg/symbols"
)

// buildFunction resolves a function-like declaration's parameter/return
// types and assembles the symbols.Function record the tables and the
// emitter both consume.
func (a *Analyser) buildFunction(
	name string, params []ast.Param, ret ast.Type, returns, variadic bool, body []ast.Stmt, genName string, node ast.Node,
) *symbols.Function {
	args := make([]ast.Param, len(params))
	for i, p := range params {
		args[i] = ast.Param{Name: p.Name, Type: a.resolveType(p.Type, node)}
	}

	return &symbols.Function{
		Name: name, Args: args, Ret: a.resolveType(ret, node), Returns: returns,
		Body: body, IsVariadic: variadic, GenName: genName,
	}
}

// compileFunction emits fn's prototype into Header and its body into Func,
// analysing fn.Body with a fresh scope (chained to a.globals, per the
// design note in analyser.go's Scope discussion) holding its parameters.
func (a *Analyser) compileFunction(fn *symbols.Function, node ast.Node) {
	parts := make([]string, 0, len(fn.Args))
	for _, p := range fn.Args {
		parts = append(parts, fmt.Sprintf("%s %s", a.gen.CType(p.Type), p.Name))
	}

	if fn.IsVariadic {
		parts = append(parts, "...")
	}

	paramList := "void"
	if len(parts) > 0 {
		paramList = strings.Join(parts, ", ")
	}

	sig := fmt.Sprintf("%s %s(%s)", a.gen.CType(fn.Ret), fn.GenName, paramList)

	restoreH := a.gen.Section(emitter.Header)
	a.gen.Line("%s;", sig)
	restoreH()

	restoreF := a.gen.Section(emitter.Func)
	a.gen.Line("%s {", sig)

	funcScope := a.globals.Push()
	savedScope, savedRet, savedInFn := a.scope, a.returnType, a.inFunction
	a.scope, a.returnType, a.inFunction = funcScope, fn.Ret, true

	for _, p := range fn.Args {
		v := &symbols.Variable{Name: p.Name, Type: p.Type, Span: a.span(node)}
		funcScope.Declare(p.Name, v)
	}

	for _, s := range fn.Body {
		a.analyseStmt(s)
	}

	a.gen.Line("}")

	a.scope, a.returnType, a.inFunction = savedScope, savedRet, savedInFn
	fn.Context = funcScope

	restoreF()
}

func (a *Analyser) analyseFn(fn *ast.Fn) {
	if a.functions.Lookup(fn.Name) != nil {
		a.errorf(fn, "function '%s' is already declared", fn.Name)
		return
	}

	genName := emitter.Mangle(a.basename, "global", fn.Name)

	retType, returns, body := fn.Ret, fn.Returns, fn.Body
	if fn.Name == "main" {
		// spec §4.8: "main is exempt [from mangling] and forces return type
		// INT"; an implicit `return 0` is appended when the body does not
		// already end in one.
		retType, returns = &ast.PrimitiveType{Kind: ast.INT}, true

		if !endsInReturn(body) {
			body = append(append([]ast.Stmt{}, body...), &ast.Return{Value: &ast.LitInt{Value: 0}})
		}
	}

	symFn := a.buildFunction(fn.Name, fn.Args, retType, returns, false, body, genName, fn)

	a.functions.Declare(symFn)
	a.compileFunction(symFn, fn)

	if symFn.Returns && !endsInReturn(body) {
		a.errorf(fn, "function '%s' must return a value of type %s on every path", fn.Name, symFn.Ret.String())
	}
}

// analyseExtern registers a foreign function declaration, emitting a bare
// C prototype (no Jaguar-generated body) into Header (spec §4.3, §6
// scenario 6).
func (a *Analyser) analyseExtern(ext *ast.Extern) {
	if a.functions.Lookup(ext.Name) != nil {
		a.errorf(ext, "function '%s' is already declared", ext.Name)
		return
	}

	args := make([]ast.Param, len(ext.Args))
	for i, p := range ext.Args {
		args[i] = ast.Param{Name: p.Name, Type: a.resolveType(p.Type, ext)}
	}

	ret := a.resolveType(ext.Ret, ext)

	symFn := &symbols.Function{
		Name: ext.Name, Args: args, Ret: ret, Returns: ext.Ret != nil,
		IsVariadic: ext.Variadic, GenName: ext.Name,
	}
	a.functions.Declare(symFn)

	parts := make([]string, 0, len(args)+1)
	for _, p := range args {
		parts = append(parts, fmt.Sprintf("%s %s", a.gen.CType(p.Type), p.Name))
	}

	if ext.Variadic {
		parts = append(parts, "...")
	}

	paramList := "void"
	if len(parts) > 0 {
		paramList = strings.Join(parts, ", ")
	}

	restore := a.gen.Section(emitter.Header)
	a.gen.Line("extern %s %s(%s);", a.gen.CType(ret), ext.Name, paramList)
	restore()
}

// analyseStruct registers a user type, emits its C typedef, and analyses
// its embedded methods and statics block (spec §4.3, §4.4, §4.5).
func (a *Analyser) analyseStruct(st *ast.Struct) {
	if a.types.Lookup(st.Name) != nil {
		a.errorf(st, "type '%s' is already declared", st.Name)
		return
	}

	layout := symbols.NewStructLayout(st.Name, a.file.Filename())

	for _, f := range st.Fields {
		ft := a.resolveType(f.Type, f)
		if !layout.DeclareField(f.Name, ft) {
			a.errorf(f, "duplicate field '%s' in struct '%s'", f.Name, st.Name)
		}
	}

	a.types.Declare(layout)

	restore := a.gen.Section(emitter.Header)
	a.gen.Line("typedef struct {")

	for _, name := range layout.Order {
		ft, _ := layout.FieldType(name)
		a.gen.Line("    %s %s;", a.gen.CType(ft), name)
	}

	a.gen.Line("} %s;", st.Name)
	restore()

	for _, m := range st.Methods {
		a.analyseMethod(st.Name, m)
	}

	if len(st.Statics) > 0 {
		saved := a.scopeName
		a.scopeName = st.Name

		for _, s := range st.Statics {
			a.analyseStmt(s)
		}

		a.scopeName = saved
	}
}

func (a *Analyser) analyseMethod(typeName string, fn *ast.Fn) {
	if a.methods.Lookup(typeName, fn.Name) != nil {
		a.errorf(fn, "type '%s' already has a method '%s'", typeName, fn.Name)
		return
	}

	genName := fmt.Sprintf("%s_%s", typeName, fn.Name)
	symFn := a.buildFunction(fn.Name, fn.Args, fn.Ret, fn.Returns, false, fn.Body, genName, fn)

	a.methods.Declare(typeName, symFn)
	a.compileFunction(symFn, fn)

	if fn.Returns && !endsInReturn(fn.Body) {
		a.errorf(fn, "method '%s' on type %s must return a value of type %s on every path", fn.Name, typeName, symFn.Ret.String())
	}
}

// analysePlugin folds a `pack Target with name(...) { ... }` declaration
// into Target's method table (spec §4.3's Plugin node).
func (a *Analyser) analysePlugin(pl *ast.Plugin) {
	if a.types.Lookup(pl.Target) == nil {
		a.errorf(pl, "unknown struct '%s' in pack declaration", pl.Target)
		return
	}

	if a.methods.Lookup(pl.Target, pl.Name) != nil {
		a.errorf(pl, "type '%s' already has a method '%s'", pl.Target, pl.Name)
		return
	}

	genName := fmt.Sprintf("%s_%s", pl.Target, pl.Name)
	returns := pl.Ret != nil
	symFn := a.buildFunction(pl.Name, pl.Args, pl.Ret, returns, false, pl.Body, genName, pl)

	a.methods.Declare(pl.Target, symFn)
	a.compileFunction(symFn, pl)

	if returns && !endsInReturn(pl.Body) {
		a.errorf(pl, "method '%s' on type %s must return a value of type %s on every path", pl.Name, pl.Target, symFn.Ret.String())
	}
}

// analyseBundle resolves a `bundle "path" as alias;` import: deduplicating
// against an already-imported file by output path, otherwise spawning a
// fresh Analyser over the imported file and writing its header artifact
// (spec §4.7).
func (a *Analyser) analyseBundle(b *ast.Bundle) {
	sourcePath := module.ResolvePath(a.file.Filename(), b.Path)
	outputPath := module.HeaderPath(a.buildDir, sourcePath)

	if existing := a.modules.Existing(outputPath); existing != nil {
		if !a.modules.Attach(existing.Clone(b.Alias)) {
			a.errorf(b, "bundle alias '%s' already in use", b.Alias)
		}

		a.includeHeader(outputPath)

		return
	}

	subFile, err := source.ReadFile(sourcePath)
	if err != nil {
		a.errorf(b, "cannot read bundle '%s': %v", b.Path, err)
		return
	}

	subQueue := source.NewQueue(subFile)

	prog, srcmap, ok := parser.Parse(subFile, subQueue)
	if !ok {
		a.errorf(b, "bundle '%s' failed to parse", b.Path)
		return
	}

	sub := New(subFile, subQueue, srcmap, a.buildDir)
	if !sub.Analyse(prog) {
		a.errorf(b, "bundle '%s' contains errors", b.Path)
		return
	}

	mod := module.NewModule(b.Alias, outputPath, sourcePath)
	mod.Functions = sub.functions
	mod.Types = sub.types
	mod.Methods = sub.methods
	mod.Globals = sub.globals

	for _, nested := range sub.modules.All() {
		mod.Subs[nested.Alias] = nested
	}

	if !a.modules.Attach(mod) {
		a.errorf(b, "bundle alias '%s' already in use", b.Alias)
		return
	}

	if err := os.MkdirAll(a.buildDir, 0o755); err != nil {
		a.errorf(b, "cannot create build directory: %v", err)
		return
	}

	if err := os.WriteFile(outputPath, []byte(sub.gen.HeaderOutput()), 0o644); err != nil {
		a.errorf(b, "cannot write header for bundle '%s': %v", b.Path, err)
		return
	}

	a.includeHeader(outputPath)
}

// includeHeader emits a `#include` line for an imported file's header, at
// most once per output path.
func (a *Analyser) includeHeader(outputPath string) {
	if a.includedHeaders[outputPath] {
		return
	}

	a.includedHeaders[outputPath] = true

	restore := a.gen.Section(emitter.Header)
	a.gen.Line("#include %q", filepath.Base(outputPath))
	restore()
}

// analyseNamespace analyses `bundle alias { ... }`, an inline module whose
// declarations are isolated from the parent file's own tables but live in
// the same source file (spec §4.3, §4.4).
func (a *Analyser) analyseNamespace(ns *ast.Namespace) {
	savedFunctions, savedTypes, savedMethods, savedModules, savedGlobals, savedScope :=
		a.functions, a.types, a.methods, a.modules, a.globals, a.scope

	childFunctions := symbols.NewFunctionTable()
	childTypes := symbols.NewTypeTable()
	childMethods := symbols.NewMethodTable()
	childModules := module.NewTable()
	childGlobals := symbols.NewScope()

	a.functions, a.types, a.methods, a.modules, a.globals, a.scope =
		childFunctions, childTypes, childMethods, childModules, childGlobals, childGlobals

	for _, s := range ns.Body {
		a.analyseStmt(s)
	}

	a.functions, a.types, a.methods, a.modules, a.globals, a.scope =
		savedFunctions, savedTypes, savedMethods, savedModules, savedGlobals, savedScope

	mod := module.NewModule(ns.Alias, "", a.file.Filename())
	mod.Functions = childFunctions
	mod.Types = childTypes
	mod.Methods = childMethods
	mod.Globals = childGlobals

	for _, nested := range childModules.All() {
		mod.Subs[nested.Alias] = nested
	}

	if !a.modules.Attach(mod) {
		a.errorf(ns, "bundle alias '%s' already in use", ns.Alias)
	}
}

// analyseUnpack merges selected symbols out of an already-attached module
// into this file's own tables (spec §4.3, §4.7).
func (a *Analyser) analyseUnpack(u *ast.Unpack) {
	mod := a.modules.Lookup(u.Alias)
	if mod == nil {
		a.errorf(u, "unknown bundle '%s'", u.Alias)
		return
	}

	subs := make(map[string]*module.Module)
	dst := &module.Destination{Functions: a.functions, Types: a.types, Globals: a.globals, Subs: subs}

	if res := module.Unpack(dst, mod, u.Symbols); res != nil {
		if res.Unresolved {
			a.errorf(u, "bundle '%s' has no member '%s'", u.Alias, res.Name)
		} else {
			a.errorf(u, "'%s' is already declared", res.Name)
		}

		return
	}

	for name, sub := range subs {
		a.modules.Attach(sub.Clone(name))
	}
}
