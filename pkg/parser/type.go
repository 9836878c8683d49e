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
	"strconv"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/lexer"
)

// parseType recognises one of: a primitive keyword, a bare Ident (custom
// struct), Ident::Type (bundled), ptr<T>, or list<T, N> (spec §4.4). "bool"
// and "buf" lex as keywords but name no primitive (DESIGN.md Open
// Question 3), so using either as a type is a fatal error here.
func (p *Parser) parseType() ast.Type {
	tok := p.peek()

	switch {
	case tok.Is(lexer.Keyword, "ptr"):
		return p.parsePtrType()
	case tok.Is(lexer.Keyword, "list"):
		return p.parseListType()
	case tok.Kind == lexer.Keyword:
		return p.parsePrimitiveType()
	case tok.Kind == lexer.Ident:
		return p.parseNamedType()
	}

	p.fatalf("expected a type, found %q", tok.Text)

	return nil
}

func (p *Parser) parsePrimitiveType() ast.Type {
	tok := p.advance()

	prim, ok := ast.PrimitiveFromKeyword(tok.Text)
	if !ok {
		p.fatalf("%q is not a type", tok.Text)
	}

	return ast.NewPrimitive(prim)
}

func (p *Parser) parseNamedType() ast.Type {
	name := p.expectKind(lexer.Ident, "type name").Text

	if p.match(lexer.DColon, "::") {
		inner := p.parseType()
		return &ast.BundledType{Module: name, Elem: inner}
	}

	return &ast.CustomType{Name: name}
}

func (p *Parser) parsePtrType() ast.Type {
	p.advance() // "ptr"
	p.expect(lexer.Operator, "<", "ptr<T>")

	elem := p.parseType()

	p.expect(lexer.Operator, ">", "ptr<T>")

	return &ast.PtrType{Elem: elem}
}

func (p *Parser) parseListType() ast.Type {
	p.advance() // "list"
	p.expect(lexer.Operator, "<", "list<T, N>")

	elem := p.parseType()

	p.expect(lexer.Separator, ",", "list<T, N>")

	n := p.expectKind(lexer.Number, "list<T, N>").Text

	value, err := strconv.ParseUint(n, 10, 64)
	if err != nil {
		p.fatalf("invalid list size %q", n)
	}

	p.expect(lexer.Operator, ">", "list<T, N>")

	return &ast.ListType{Elem: elem, N: uint(value)}
}
