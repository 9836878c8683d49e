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

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/emitter"
	"github.com/jaguar-lang/jaguarc/pkg/symbols"
	"github.com/jaguar-lang/jaguarc/pkg/util"
)

// analyseStmt dispatches on s's concrete type. It handles both top-level
// declarations (Program.Decls) and ordinary statements (block bodies) —
// the same closed Stmt set appears in both positions, spec §4.3.
func (a *Analyser) analyseStmt(s ast.Stmt) {
	if a.aborted {
		return
	}

	switch v := s.(type) {
	case *ast.Fn:
		a.analyseFn(v)
	case *ast.Extern:
		a.analyseExtern(v)
	case *ast.Struct:
		a.analyseStruct(v)
	case *ast.Plugin:
		a.analysePlugin(v)
	case *ast.Bundle:
		a.analyseBundle(v)
	case *ast.Namespace:
		a.analyseNamespace(v)
	case *ast.Unpack:
		a.analyseUnpack(v)
	case *ast.Let:
		a.analyseLet(v)
	case *ast.Return:
		a.analyseReturn(v)
	case *ast.Break:
		a.analyseBreak(v)
	case *ast.Continue:
		a.analyseContinue(v)
	case *ast.If:
		a.analyseIf(v)
	case *ast.While:
		a.analyseWhile(v)
	case *ast.For:
		a.analyseFor(v)
	case *ast.ReAssign:
		a.analyseReAssign(v)
	case *ast.ExprStmt:
		a.analyseExprStmt(v)
	default:
		a.errorf(s, "unsupported statement")
	}
}

// analyseLet declares a new binding, inferring its type from the
// initialiser when no annotation is given, and emits either a local C
// declaration or a mangled global/static one depending on which scope it
// lands in (spec §4.3, §4.6, §4.8).
func (a *Analyser) analyseLet(let *ast.Let) {
	val := a.analyseExpr(let.Value)

	var finalType ast.Type

	if let.Type != nil {
		finalType = a.resolveType(let.Type, let)

		if !ast.Equal(finalType, val.Type) && !a.coerceAdmissible(val.Type, finalType) {
			a.errorf(let, "cannot assign value of type %s to '%s' of type %s", val.Type.String(), let.Name, finalType.String())
		}
	} else {
		finalType = val.Type
	}

	a.truncateLiteral(let, let.Value, finalType)

	text := a.coerce(val, finalType)

	v := &symbols.Variable{Name: let.Name, Type: finalType, References: util.None[int](), Span: a.span(let)}
	if !a.scope.Declare(let.Name, v) {
		a.errorf(let, "'%s' is already declared in this scope", let.Name)
		return
	}

	name := let.Name
	isGlobal := a.scope == a.globals

	if isGlobal {
		name = emitter.Mangle(a.basename, a.scopeName, let.Name)
		a.varNames[v] = name

		if isZeroValue(let.Value) {
			restore := a.gen.Section(emitter.Bss)
			a.gen.Line("%s %s;", a.gen.CType(finalType), name)
			restore()

			return
		}

		restore := a.gen.Section(emitter.Data)
		a.gen.Line("%s %s = %s;", a.gen.CType(finalType), name, text)
		restore()

		return
	}

	a.gen.Line("%s %s = %s;", a.gen.CType(finalType), name, text)
}

// isZeroValue reports whether e is a literal a C compiler would
// zero-initialise anyway, letting a global `let` declare into BSS rather
// than DATA (spec §4.8's five-section split mirrors a C compiler's own
// bss/data distinction for globals).
func isZeroValue(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.LitInt:
		return v.Value == 0
	case *ast.Nullptr:
		return true
	default:
		return false
	}
}

func (a *Analyser) analyseReturn(ret *ast.Return) {
	if !a.inFunction {
		a.errorf(ret, "'ret' outside a function")
		return
	}

	if ret.Value == nil {
		if !isVoidType(a.returnType) {
			a.errorf(ret, "missing return value, expected %s", a.returnType.String())
		}

		a.gen.Line("return;")

		return
	}

	val := a.analyseExpr(ret.Value)

	if !ast.Equal(val.Type, a.returnType) && !a.coerceAdmissible(val.Type, a.returnType) {
		a.errorf(ret, "cannot return value of type %s, expected %s", val.Type.String(), a.returnType.String())
	}

	a.truncateLiteral(ret, ret.Value, a.returnType)

	a.gen.Line("return %s;", a.coerce(val, a.returnType))
}

func (a *Analyser) analyseBreak(b *ast.Break) {
	if !a.scope.InLoop() {
		a.errorf(b, "'break' outside a loop")
		return
	}

	a.gen.Line("break;")
}

func (a *Analyser) analyseContinue(c *ast.Continue) {
	if !a.scope.InLoop() {
		a.errorf(c, "'continue' outside a loop")
		return
	}

	a.gen.Line("continue;")
}

func (a *Analyser) analyseIf(ifs *ast.If) {
	cond := a.analyseExpr(ifs.Cond)

	a.gen.Line("if (%s) {", cond.Text)
	a.analyseBlockIn(ifs.Body, a.scope.Push())
	a.gen.Line("}")

	for _, elif := range ifs.Elif {
		econd := a.analyseExpr(elif.Cond)

		a.gen.Line("else if (%s) {", econd.Text)
		a.analyseBlockIn(elif.Body, a.scope.Push())
		a.gen.Line("}")
	}

	if ifs.Else != nil {
		a.gen.Line("else {")
		a.analyseBlockIn(ifs.Else, a.scope.Push())
		a.gen.Line("}")
	}
}

func (a *Analyser) analyseWhile(w *ast.While) {
	cond := a.analyseExpr(w.Cond)

	a.gen.Line("while (%s) {", cond.Text)
	a.analyseBlockIn(w.Body, a.scope.PushLoop())
	a.gen.Line("}")
}

// analyseFor renders a C-style for-loop header inline, introducing the
// init clause's binding (if any) into a scope shared with the condition,
// increment, and body (spec §4.4).
func (a *Analyser) analyseFor(f *ast.For) {
	saved := a.scope
	loopScope := saved.PushLoop()
	a.scope = loopScope

	initText := ""
	if f.Init != nil {
		initText = a.renderForClause(f.Init)
	}

	condText := ""
	if f.Cond != nil {
		condText = a.analyseExpr(f.Cond).Text
	}

	incText := ""
	if f.Inc != nil {
		incText = a.renderForClause(f.Inc)
	}

	a.gen.Line("for (%s; %s; %s) {", initText, condText, incText)
	a.analyseBlockIn(f.Body, loopScope.Push())
	a.gen.Line("}")

	a.scope = saved
}

// renderForClause renders the init/inc clause of a for-loop as a bare C
// fragment (no trailing semicolon, no emitted Line) since For's header is
// built as one Line by analyseFor.
func (a *Analyser) renderForClause(s ast.Stmt) string {
	switch v := s.(type) {
	case *ast.Let:
		val := a.analyseExpr(v.Value)

		ftype := val.Type
		if v.Type != nil {
			ftype = a.resolveType(v.Type, v)
		}

		vr := &symbols.Variable{Name: v.Name, Type: ftype, References: util.None[int](), Span: a.span(v)}
		if !a.scope.Declare(v.Name, vr) {
			a.errorf(v, "'%s' is already declared in this scope", v.Name)
		}

		return fmt.Sprintf("%s %s = %s", a.gen.CType(ftype), v.Name, a.coerce(val, ftype))
	case *ast.ReAssign:
		return a.reassignText(v)
	case *ast.ExprStmt:
		return a.analyseExpr(v.Expr).Text
	default:
		a.errorf(s, "unsupported for-loop clause")
		return ""
	}
}

func (a *Analyser) analyseReAssign(ra *ast.ReAssign) {
	a.gen.Line("%s;", a.reassignText(ra))
}

// reassignText computes "lhs = rhs" (no trailing semicolon or newline) so
// it can be reused verbatim inside a for-loop's increment clause.
func (a *Analyser) reassignText(ra *ast.ReAssign) string {
	lv := a.analyseExpr(ra.LHS)
	rv := a.analyseExpr(ra.RHS)

	if !ast.IsMut(lv.Type) {
		a.errorfHelp(ra, fmt.Sprintf("declare '%s' as mut to allow reassignment", lvalueName(ra.LHS)),
			"Cannot mutate a const value '%s'", lvalueName(ra.LHS))
	}

	if !ast.Equal(lv.Type, rv.Type) && !a.coerceAdmissible(rv.Type, lv.Type) {
		a.errorf(ra, "cannot assign value of type %s to '%s' of type %s", rv.Type.String(), lvalueName(ra.LHS), lv.Type.String())
	}

	a.truncateLiteral(ra, ra.RHS, lv.Type)

	return fmt.Sprintf("%s = %s", lv.Text, a.coerce(rv, lv.Type))
}

func (a *Analyser) analyseExprStmt(es *ast.ExprStmt) {
	e := a.analyseExpr(es.Expr)
	a.gen.Line("%s;", e.Text)
}

// analyseBlockIn analyses stmts with scope as the current scope, restoring
// the prior scope on return.
func (a *Analyser) analyseBlockIn(stmts []ast.Stmt, scope *symbols.Scope) {
	saved := a.scope
	a.scope = scope

	for _, s := range stmts {
		a.analyseStmt(s)
	}

	a.scope = saved
}

// lvalueName extracts a human-readable name for an lvalue expression, used
// in mutation-error messages (spec §4.6: the exact wording "Cannot mutate
// a const value '<name>'").
func lvalueName(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.MemberAccess:
		return v.Field
	case *ast.BundleAccess:
		return v.Field
	case *ast.ListAccess:
		return lvalueName(v.Base)
	case *ast.Deref:
		return lvalueName(v.Expr)
	default:
		return "value"
	}
}

// endsInReturn reports whether every control-flow path through stmts ends
// in a `ret` statement, a conservative, purely-syntactic check (spec §4.6:
// "a function declared with a return type must return a value on every
// path"). Loops are never assumed to execute, so a function ending in a
// `while`/`for` is not considered to always return.
func endsInReturn(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}

	switch last := stmts[len(stmts)-1].(type) {
	case *ast.Return:
		return true
	case *ast.If:
		if last.Else == nil {
			return false
		}

		if !endsInReturn(last.Body) {
			return false
		}

		for _, elif := range last.Elif {
			if !endsInReturn(elif.Body) {
				return false
			}
		}

		return endsInReturn(last.Else)
	default:
		return false
	}
}
