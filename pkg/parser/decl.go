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
	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/lexer"
	"github.com/jaguar-lang/jaguarc/pkg/symbols"
)

// parseProgram parses a whole file as a flat sequence of top-level
// statements (spec §4.3: "Program(seq)").
func (p *Parser) parseProgram() *ast.Program {
	start := p.mark()

	var decls []ast.Stmt

	for p.peek().Kind != lexer.EOF {
		decls = append(decls, p.parseStmt())
	}

	return p.record(&ast.Program{Decls: decls}, start).(*ast.Program)
}

// parseParams parses a parenthesised, comma-separated parameter list,
// `name: type`. A leading `self` with no `: type` at all is left with a
// nil Type, which symbols.NormalizeSelf rewrites to a pointer to the
// enclosing struct once parseStruct knows the struct's name (spec §4.5).
// A parameter's type may carry a leading `mut` the same way a `let`'s does
// (spec §4.6), so this goes through parseLetType rather than parseType.
func (p *Parser) parseParams() []ast.Param {
	p.expect(lexer.Separator, "(", "parameter list")

	var params []ast.Param

	for !p.at(lexer.Separator, ")") {
		name := p.expectKind(lexer.Ident, "parameter").Text

		var t ast.Type

		if name == "self" && !p.at(lexer.Separator, ":") {
			params = append(params, ast.Param{Name: name, Type: nil})
		} else {
			p.expect(lexer.Separator, ":", "parameter")

			t = p.parseLetType()
			params = append(params, ast.Param{Name: name, Type: t})
		}

		if !p.match(lexer.Separator, ",") {
			break
		}
	}

	p.expect(lexer.Separator, ")", "parameter list")

	return params
}

func (p *Parser) parseFn() ast.Stmt {
	start := p.mark()
	p.advance() // "fn"

	name := p.expectKind(lexer.Ident, "function declaration").Text
	args := p.parseParams()

	var ret ast.Type

	returns := false

	if p.match(lexer.Separator, ":") {
		ret = p.parseType()
		prim, isPrim := ret.(*ast.PrimitiveType)
		returns = !(isPrim && prim.Kind == ast.VOID)
	}

	body := p.parseBlock()

	return p.record(&ast.Fn{Name: name, Args: args, Ret: ret, Returns: returns, Body: body}, start).(*ast.Fn)
}

func (p *Parser) parseExtern() ast.Stmt {
	start := p.mark()
	p.advance() // "extern"

	name := p.expectKind(lexer.Ident, "extern declaration").Text

	p.expect(lexer.Separator, "(", "extern parameter list")

	var args []ast.Param

	variadic := false

	for !p.at(lexer.Separator, ")") {
		if p.at(lexer.Vardaic, "...") {
			p.advance()

			variadic = true

			break
		}

		argName := p.expectKind(lexer.Ident, "extern parameter").Text

		p.expect(lexer.Separator, ":", "extern parameter")

		argType := p.parseType()
		args = append(args, ast.Param{Name: argName, Type: argType})

		if !p.match(lexer.Separator, ",") {
			break
		}
	}

	p.expect(lexer.Separator, ")", "extern parameter list")

	var ret ast.Type

	if p.match(lexer.Separator, ":") {
		ret = p.parseType()
	}

	p.expect(lexer.Separator, ";", "extern declaration")

	return p.record(&ast.Extern{Name: name, Args: args, Ret: ret, Variadic: variadic}, start).(*ast.Extern)
}

// parseStruct parses `struct Name { field*  fn* statics? }` (spec §4.4).
// An embedded `fn` whose first parameter is named "self" is a method, of
// which §4.5's self-rewrite applies once the struct's name is known.
func (p *Parser) parseStruct() ast.Stmt {
	start := p.mark()
	p.advance() // "struct"

	name := p.expectKind(lexer.Ident, "struct declaration").Text

	p.expect(lexer.Separator, "{", "struct body")

	var fields []*ast.FieldDecl

	var methods []*ast.Fn

	var statics []ast.Stmt

	for !p.at(lexer.Separator, "}") {
		switch {
		case p.at(lexer.Keyword, "fn"):
			fn := p.parseFn().(*ast.Fn)
			fn.Args = symbols.NormalizeSelf(name, fn.Args)
			methods = append(methods, fn)
		case p.at(lexer.Ident, "statics"):
			p.advance()
			statics = p.parseBlock()
		default:
			fields = append(fields, p.parseFieldDecl())
		}
	}

	p.expect(lexer.Separator, "}", "struct body")

	return p.record(&ast.Struct{Name: name, Fields: fields, Methods: methods, Statics: statics}, start).(*ast.Struct)
}

func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	start := p.mark()
	name := p.expectKind(lexer.Ident, "struct field").Text

	p.expect(lexer.Separator, ":", "struct field")

	t := p.parseType()

	p.expect(lexer.Separator, ";", "struct field")

	return p.record(&ast.FieldDecl{Name: name, Type: t}, start).(*ast.FieldDecl)
}

// parsePack parses `pack Target with name(args)[: ret] { body }`, attaching
// a method to a struct declared elsewhere (spec §4.3's Plugin node, §4.4's
// reserved "pack"/"with"). Unlike a struct-body `fn`, Plugin is left for
// the analyser to fold into Target's MethodTable — the parser only
// records which struct it targets.
func (p *Parser) parsePack() ast.Stmt {
	start := p.mark()
	p.advance() // "pack"

	target := p.expectKind(lexer.Ident, "pack declaration").Text

	p.expect(lexer.Keyword, "with", "pack declaration")

	name := p.expectKind(lexer.Ident, "pack declaration").Text
	args := p.parseParams()
	args = symbols.NormalizeSelf(target, args)

	var ret ast.Type

	if p.match(lexer.Separator, ":") {
		ret = p.parseType()
	}

	body := p.parseBlock()

	return p.record(&ast.Plugin{Name: name, Target: target, Args: args, Ret: ret, Body: body}, start).(*ast.Plugin)
}

// parseBundleOrNamespace distinguishes `bundle "path" as alias;` (import)
// from `bundle alias { body }` (inline namespace), per spec §4.4.
func (p *Parser) parseBundleOrNamespace() ast.Stmt {
	start := p.mark()
	p.advance() // "bundle"

	if p.peek().Kind == lexer.StrLit {
		path := p.advance().Text

		p.expect(lexer.Keyword, "as", "bundle import")

		alias := p.expectKind(lexer.Ident, "bundle import").Text

		p.expect(lexer.Separator, ";", "bundle import")

		return p.record(&ast.Bundle{Path: path, Alias: alias}, start).(*ast.Bundle)
	}

	alias := p.expectKind(lexer.Ident, "bundle namespace").Text
	body := p.parseBlock()

	return p.record(&ast.Namespace{Alias: alias, Body: body}, start).(*ast.Namespace)
}

// parseUnpack parses `unpack alias { a, b, c };` (spec §4.4, §4.7).
func (p *Parser) parseUnpack() ast.Stmt {
	start := p.mark()
	p.advance() // "unpack"

	alias := p.expectKind(lexer.Ident, "unpack statement").Text

	p.expect(lexer.Separator, "{", "unpack statement")

	var symbols []string

	for !p.at(lexer.Separator, "}") {
		symbols = append(symbols, p.expectKind(lexer.Ident, "unpack statement").Text)

		if !p.match(lexer.Separator, ",") {
			break
		}
	}

	p.expect(lexer.Separator, "}", "unpack statement")
	p.expect(lexer.Separator, ";", "unpack statement")

	return p.record(&ast.Unpack{Alias: alias, Symbols: symbols}, start).(*ast.Unpack)
}
