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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/emitter"
	"github.com/jaguar-lang/jaguarc/pkg/module"
	"github.com/jaguar-lang/jaguarc/pkg/util"
)

// typedExpr is the result of analysing one expression: its resolved type
// and the C text it lowers to (spec §4.6's combined resolve+lower result,
// consumed directly by the statement level instead of threading through a
// separate IR — see analyser.go's package doc).
type typedExpr struct {
	Type ast.Type
	Text string
}

func errExpr() typedExpr {
	return typedExpr{Type: ast.ANY, Text: "/* unresolved */"}
}

func (a *Analyser) analyseExpr(e ast.Expr) typedExpr {
	switch v := e.(type) {
	case *ast.LitInt:
		return typedExpr{ast.NewPrimitive(ast.INT), strconv.FormatUint(v.Value, 10)}
	case *ast.LitStr:
		return typedExpr{ast.NewPrimitive(ast.STR), strconv.Quote(v.Value)}
	case *ast.LitChar:
		return typedExpr{ast.NewPrimitive(ast.CHAR), fmt.Sprintf("'%s'", escapeChar(v.Value))}
	case *ast.Nullptr:
		return typedExpr{ast.ANY, "NULL"}
	case *ast.Ident:
		return a.analyseIdent(v, e)
	case *ast.Ref:
		return a.analyseRef(v)
	case *ast.Deref:
		return a.analyseDeref(v)
	case *ast.Binary:
		return a.analyseBinary(v)
	case *ast.Call:
		return a.analyseCall(v)
	case *ast.MemberAccess:
		return a.analyseMemberAccess(v)
	case *ast.BundleAccess:
		return a.analyseBundleAccess(v)
	case *ast.ListInit:
		return a.analyseListInit(v)
	case *ast.ListAccess:
		return a.analyseListAccess(v)
	case *ast.StructInit:
		return a.analyseStructInit(v)
	case *ast.Cast:
		return a.analyseCast(v)
	default:
		a.errorf(e, "unsupported expression")
		return errExpr()
	}
}

func escapeChar(b byte) string {
	switch b {
	case '\'':
		return "\\'"
	case '\\':
		return "\\\\"
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	default:
		return string(rune(b))
	}
}

func (a *Analyser) analyseIdent(id *ast.Ident, node ast.Node) typedExpr {
	v := a.scope.Lookup(id.Name)
	if v == nil {
		a.errorf(node, "unknown identifier '%s'", id.Name)
		return errExpr()
	}

	name := a.varName(v)

	if id.Deref {
		ptr, ok := ast.StripMut(v.Type).(*ast.PtrType)
		if !ok {
			a.errorf(node, "cannot dereference '%s', which is not a pointer", id.Name)
			return typedExpr{ast.ANY, "*" + name}
		}

		return typedExpr{ptr.Elem, "*" + name}
	}

	return typedExpr{v.Type, name}
}

func (a *Analyser) analyseRef(r *ast.Ref) typedExpr {
	inner := a.analyseExpr(r.Expr)

	if ident, ok := r.Expr.(*ast.Ident); ok && !ident.Deref {
		if v := a.scope.Lookup(ident.Name); v != nil {
			v.MarkRef()
		}
	}

	return typedExpr{&ast.PtrType{Elem: inner.Type}, "&" + inner.Text}
}

func (a *Analyser) analyseDeref(d *ast.Deref) typedExpr {
	inner := a.analyseExpr(d.Expr)

	ptr, ok := ast.StripMut(inner.Type).(*ast.PtrType)
	if !ok {
		a.errorf(d, "cannot dereference a non-pointer expression")
		return errExpr()
	}

	return typedExpr{ptr.Elem, "(*" + inner.Text + ")"}
}

func (a *Analyser) analyseBinary(b *ast.Binary) typedExpr {
	lhs := a.analyseExpr(b.LHS)
	rhs := a.analyseExpr(b.RHS)

	var resultType ast.Type

	switch {
	case b.Op.IsArithmetic():
		if !isIntegerType(lhs.Type) || !isIntegerType(rhs.Type) {
			a.errorf(b, "arithmetic operator '%s' requires integer operands", string(b.Op))
		}

		resultType = lhs.Type
	case b.Op.IsEquality():
		if !ast.Equal(lhs.Type, rhs.Type) {
			a.errorf(b, "cannot compare values of type %s and %s", lhs.Type.String(), rhs.Type.String())
		}

		resultType = ast.NewPrimitive(ast.INT)
	case b.Op == ast.OpLt || b.Op == ast.OpLe || b.Op == ast.OpGt || b.Op == ast.OpGe:
		if !isIntegerType(lhs.Type) || !isIntegerType(rhs.Type) {
			a.errorf(b, "comparison operator '%s' requires integer operands", string(b.Op))
		}

		resultType = ast.NewPrimitive(ast.INT)
	case b.Op == ast.OpAnd || b.Op == ast.OpOr:
		resultType = ast.NewPrimitive(ast.INT)
	default:
		resultType = ast.ANY
	}

	return typedExpr{resultType, fmt.Sprintf("(%s %s %s)", lhs.Text, string(b.Op), rhs.Text)}
}

func (a *Analyser) analyseCall(c *ast.Call) typedExpr {
	switch callee := c.Callee.(type) {
	case *ast.Ident:
		return a.analysePlainCall(c, callee)
	case *ast.MemberAccess:
		return a.analyseMethodCall(c, callee)
	case *ast.BundleAccess:
		return a.analyseBundleCall(c, callee)
	default:
		a.errorf(c, "callee is not callable")
		return errExpr()
	}
}

func (a *Analyser) analysePlainCall(c *ast.Call, callee *ast.Ident) typedExpr {
	fn := a.functions.Lookup(callee.Name)
	if fn == nil {
		a.errorf(c, "unknown function '%s'", callee.Name)
		return errExpr()
	}

	if !fn.AcceptsArgc(len(c.Args)) {
		a.errorf(c, "function '%s' expects %d argument(s), got %d", callee.Name, len(fn.Args), len(c.Args))
	}

	argTexts := make([]string, 0, len(c.Args))

	for i, argExpr := range c.Args {
		av := a.analyseExpr(argExpr)

		if i < len(fn.Args) {
			target := fn.Args[i].Type

			if !ast.Equal(av.Type, target) && !a.coerceAdmissible(av.Type, target) {
				a.errorf(c, "argument %d to '%s' has type %s, expected %s", i+1, callee.Name, av.Type.String(), target.String())
			}

			a.checkMutParam(c, av.Type, target, fmt.Sprintf("argument %d of '%s'", i+1, callee.Name))

			a.truncateLiteral(c, argExpr, target)

			argTexts = append(argTexts, a.coerce(av, target))
		} else {
			argTexts = append(argTexts, av.Text)
		}
	}

	return typedExpr{fn.Ret, fmt.Sprintf("%s(%s)", fn.GenName, strings.Join(argTexts, ", "))}
}

func (a *Analyser) analyseMethodCall(c *ast.Call, ma *ast.MemberAccess) typedExpr {
	base := a.analyseExpr(ma.Base)

	layout, basePointer, methods := a.structLayoutOf(base.Type)
	if layout == nil {
		a.errorf(c, "type %s has no method '%s'", base.Type.String(), ma.Field)
		return errExpr()
	}

	fn := methods.Lookup(layout.Name, ma.Field)
	if fn == nil {
		a.errorf(c, "unknown method '%s' on type %s", ma.Field, layout.Name)
		return errExpr()
	}

	expected := len(fn.Args) - 1
	if expected != len(c.Args) {
		a.errorf(c, "method '%s' on type %s expects %d argument(s), got %d", ma.Field, layout.Name, expected, len(c.Args))
	}

	argTexts := make([]string, 0, len(c.Args))

	for i, argExpr := range c.Args {
		av := a.analyseExpr(argExpr)

		if i+1 < len(fn.Args) {
			target := fn.Args[i+1].Type

			if !ast.Equal(av.Type, target) && !a.coerceAdmissible(av.Type, target) {
				a.errorf(c, "argument %d to '%s' has type %s, expected %s", i+1, ma.Field, av.Type.String(), target.String())
			}

			a.checkMutParam(c, av.Type, target, fmt.Sprintf("argument %d of '%s'", i+1, ma.Field))

			argTexts = append(argTexts, a.coerce(av, target))
		} else {
			argTexts = append(argTexts, av.Text)
		}
	}

	return typedExpr{fn.Ret, emitter.MethodCall(layout.Name, ma.Field, base.Text, basePointer, argTexts)}
}

// moduleChainPath flattens a BundleAccess/Ident chain into the qualifier
// path util.Path models, e.g. `mod::sub::fn` becomes the relative path
// ["mod", "sub", "fn"].
func moduleChainPath(e ast.Expr) (util.Path, bool) {
	switch v := e.(type) {
	case *ast.Ident:
		return util.NewRelativePath(v.Name), true
	case *ast.BundleAccess:
		base, ok := moduleChainPath(v.Base)
		if !ok {
			return util.Path{}, false
		}

		return base.Extend(v.Field), true
	default:
		return util.Path{}, false
	}
}

// resolveModuleChain follows a chain of BundleAccess nodes back to the
// Module it names, supporting nested namespaces (`mod::sub::fn()`, spec
// §4.4, §4.7). The chain is walked one qualifier at a time via Path's
// Head/Dehead (the same "peel off the outermost segment" algebra the
// qualified-name "mod::sub::x" case in its doc comment describes).
func (a *Analyser) resolveModuleChain(e ast.Expr) (*module.Module, bool) {
	path, ok := moduleChainPath(e)
	if !ok {
		return nil, false
	}

	mod := a.modules.Lookup(path.Head())
	if mod == nil {
		return nil, false
	}

	for rest := path.Dehead(); rest.Depth() > 0; rest = rest.Dehead() {
		sub, ok := mod.Subs[rest.Head()]
		if !ok {
			return nil, false
		}

		mod = sub
	}

	return mod, true
}

func (a *Analyser) analyseBundleCall(c *ast.Call, ba *ast.BundleAccess) typedExpr {
	mod, ok := a.resolveModuleChain(ba.Base)
	if !ok {
		a.errorf(c, "unknown bundle reference")
		return errExpr()
	}

	fn := mod.Functions.Lookup(ba.Field)
	if fn == nil {
		a.errorf(c, "bundle '%s' has no function '%s'", mod.Alias, ba.Field)
		return errExpr()
	}

	if !fn.AcceptsArgc(len(c.Args)) {
		a.errorf(c, "function '%s::%s' expects %d argument(s), got %d", mod.Alias, ba.Field, len(fn.Args), len(c.Args))
	}

	argTexts := make([]string, 0, len(c.Args))

	for i, argExpr := range c.Args {
		av := a.analyseExpr(argExpr)

		if i < len(fn.Args) {
			target := mod.WrapType(fn.Args[i].Type)

			if !ast.Equal(av.Type, target) && !a.coerceAdmissible(av.Type, target) {
				a.errorf(c, "argument %d to '%s::%s' has type %s, expected %s", i+1, mod.Alias, ba.Field, av.Type.String(), target.String())
			}

			a.checkMutParam(c, av.Type, target, fmt.Sprintf("argument %d of '%s::%s'", i+1, mod.Alias, ba.Field))

			argTexts = append(argTexts, a.coerce(av, target))
		} else {
			argTexts = append(argTexts, av.Text)
		}
	}

	return typedExpr{mod.WrapType(fn.Ret), fmt.Sprintf("%s(%s)", fn.GenName, strings.Join(argTexts, ", "))}
}

func (a *Analyser) analyseMemberAccess(ma *ast.MemberAccess) typedExpr {
	base := a.analyseExpr(ma.Base)

	layout, basePointer, _ := a.structLayoutOf(base.Type)
	if layout == nil {
		a.errorf(ma, "type %s has no field '%s'", base.Type.String(), ma.Field)
		return errExpr()
	}

	ftype, ok := layout.FieldType(ma.Field)
	if !ok {
		a.errorf(ma, "unknown field '%s' on type %s", ma.Field, layout.Name)
		return errExpr()
	}

	if a.baseIsConst(base.Type) {
		ftype = ast.StripMut(ftype)
	}

	return typedExpr{ftype, fmt.Sprintf("%s%s%s", base.Text, emitter.MemberAccessOp(basePointer), ma.Field)}
}

// analyseBundleAccess handles a bundle reference used as a value (a
// bundled global variable), rather than as a call callee or a qualified
// struct-initialiser type (both handled elsewhere).
func (a *Analyser) analyseBundleAccess(ba *ast.BundleAccess) typedExpr {
	mod, ok := a.resolveModuleChain(ba.Base)
	if !ok {
		a.errorf(ba, "unknown bundle reference")
		return errExpr()
	}

	if v := mod.Globals.Lookup(ba.Field); v != nil {
		name := emitter.Mangle(filepath.Base(mod.SourceFile), "global", ba.Field)
		return typedExpr{mod.WrapType(v.Type), name}
	}

	if _, ok := mod.Subs[ba.Field]; ok {
		a.errorf(ba, "'%s' is a bundle namespace, not a value", ba.Field)
		return errExpr()
	}

	a.errorf(ba, "bundle '%s' has no member '%s'", mod.Alias, ba.Field)

	return errExpr()
}

func (a *Analyser) analyseListInit(li *ast.ListInit) typedExpr {
	if len(li.Items) == 0 {
		a.errorf(li, "empty list literal has no inferrable element type")
		return errExpr()
	}

	first := a.analyseExpr(li.Items[0])
	elemType := first.Type

	texts := make([]string, 0, len(li.Items))
	texts = append(texts, a.coerce(first, elemType))

	for _, item := range li.Items[1:] {
		v := a.analyseExpr(item)

		if !ast.Equal(v.Type, elemType) && !a.coerceAdmissible(v.Type, elemType) {
			a.errorf(li, "list element has type %s, expected %s", v.Type.String(), elemType.String())
		}

		texts = append(texts, a.coerce(v, elemType))
	}

	listType := &ast.ListType{Elem: elemType, N: uint(len(li.Items))}
	ctype := a.gen.CType(listType)

	return typedExpr{listType, fmt.Sprintf("(%s){ .data = { %s } }", ctype, strings.Join(texts, ", "))}
}

func (a *Analyser) analyseListAccess(la *ast.ListAccess) typedExpr {
	base := a.analyseExpr(la.Base)

	lt, ok := ast.StripMut(base.Type).(*ast.ListType)
	if !ok {
		a.errorf(la, "cannot index a value of type %s", base.Type.String())
		return errExpr()
	}

	idx := a.analyseExpr(la.Index)
	if !isIntegerType(idx.Type) {
		a.errorf(la, "list index must be an integer")
	}

	return typedExpr{lt.Elem, fmt.Sprintf("%s.data[%s]", base.Text, idx.Text)}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

func (a *Analyser) analyseStructInit(si *ast.StructInit) typedExpr {
	alias, rest, qualified := splitQualified(si.Type)

	var layout = a.types.Lookup(rest)

	wrap := func(t ast.Type) ast.Type { return t }

	if qualified {
		mod := a.modules.Lookup(alias)
		if mod == nil {
			a.errorf(si, "unknown bundle '%s'", alias)
			return errExpr()
		}

		layout = mod.Types.Lookup(rest)
		wrap = mod.WrapType
	}

	if layout == nil {
		a.errorf(si, "unknown type '%s'", si.Type)
		return errExpr()
	}

	values := make(map[string]typedExpr, len(si.Fields))
	provided := make([]string, 0, len(si.Fields))

	for _, fp := range si.Fields {
		values[fp.Field] = a.analyseExpr(fp.Value)
		provided = append(provided, fp.Field)
	}

	fieldNames := make([]string, 0, len(layout.Order))
	fieldTexts := make([]string, 0, len(layout.Order))

	for _, name := range layout.Order {
		ft, _ := layout.FieldType(name)

		v, ok := values[name]
		if !ok {
			a.errorf(si, "missing field '%s' in initialiser for type %s", name, layout.Name)
			continue
		}

		if !ast.Equal(ft, v.Type) && !a.coerceAdmissible(v.Type, ft) {
			a.errorf(si, "field '%s' has type %s, expected %s", name, v.Type.String(), ft.String())
		}

		fieldNames = append(fieldNames, name)
		fieldTexts = append(fieldTexts, a.coerce(v, ft))
	}

	for _, name := range provided {
		if !containsName(layout.Order, name) {
			a.errorf(si, "type %s has no field '%s'", layout.Name, name)
		}
	}

	ctype := a.gen.CType(&ast.CustomType{Name: layout.Name})
	resultType := wrap(&ast.CustomType{Name: layout.Name})

	return typedExpr{resultType, emitter.StructInit(ctype, fieldNames, fieldTexts)}
}

func (a *Analyser) analyseCast(c *ast.Cast) typedExpr {
	inner := a.analyseExpr(c.Expr)
	target := a.resolveType(c.Type, c)

	if !a.castAdmissible(inner.Type, target) {
		a.errorf(c, "cannot cast value of type %s to %s", inner.Type.String(), target.String())
	}

	return typedExpr{target, fmt.Sprintf("((%s)(%s))", a.gen.CType(target), inner.Text)}
}

func (a *Analyser) castAdmissible(from, to ast.Type) bool {
	from, to = ast.StripMut(from), ast.StripMut(to)

	if isIntegerType(from) && isIntegerType(to) {
		return true
	}

	if isPrimitiveKind(from, ast.CHAR) && isIntegerType(to) {
		return true
	}

	if isIntegerType(from) && isPrimitiveKind(to, ast.CHAR) {
		return true
	}

	_, fromPtr := from.(*ast.PtrType)
	_, toPtr := to.(*ast.PtrType)

	if fromPtr && toPtr {
		return true
	}

	if fromPtr && isPrimitiveKind(to, ast.STR) {
		return true
	}

	if isPrimitiveKind(from, ast.STR) && toPtr {
		return true
	}

	if fromPtr && isIntegerType(to) {
		return true
	}

	if isIntegerType(from) && toPtr {
		return true
	}

	return ast.Equal(from, to)
}

// coerceAdmissible is the looser rule applied at assignment/argument/field
// boundaries (spec §4.6): two integer kinds of differing width are
// implicitly convertible, an out-of-range literal constant being flagged
// separately by truncateLiteral.
func (a *Analyser) coerceAdmissible(from, to ast.Type) bool {
	from, to = ast.StripMut(from), ast.StripMut(to)
	return isIntegerType(from) && isIntegerType(to)
}

// checkMutParam enforces spec §4.6/§7's "passing a non-MUT expression into a
// MUT parameter is an error": unlike coerceAdmissible and ast.Equal, which
// both StripMut before comparing, a MUT-typed parameter requires a MUT-typed
// argument specifically.
func (a *Analyser) checkMutParam(node ast.Node, argType, target ast.Type, desc string) {
	if ast.IsMut(target) && !ast.IsMut(argType) {
		a.errorfHelp(node, "pass a value declared with mut instead",
			"cannot pass a const value to %s, which expects a mut parameter", desc)
	}
}

// coerce renders v's text, inserting an explicit C cast if target differs
// from v's own type but the conversion is admissible.
func (a *Analyser) coerce(v typedExpr, target ast.Type) string {
	if ast.Equal(v.Type, target) {
		return v.Text
	}

	if a.coerceAdmissible(v.Type, target) {
		return fmt.Sprintf("((%s)(%s))", a.gen.CType(target), v.Text)
	}

	return v.Text
}

// truncateLiteral warns when an integer literal used at a narrower-typed
// site cannot fit without losing bits (spec §4.6: truncation is a warning,
// not an error).
func (a *Analyser) truncateLiteral(node ast.Node, e ast.Expr, target ast.Type) {
	lit, ok := e.(*ast.LitInt)
	if !ok {
		return
	}

	prim, ok := ast.StripMut(target).(*ast.PrimitiveType)
	if !ok {
		return
	}

	width := prim.Kind.Width()
	if width == 0 || width >= 64 {
		return
	}

	max := uint64(1)<<width - 1
	if lit.Value > max {
		a.warnf(node, "integer literal %d truncated to fit %s", lit.Value, target.String())
	}
}
