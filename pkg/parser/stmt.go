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
)

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(lexer.Separator, "{", "block")

	var stmts []ast.Stmt

	for !p.at(lexer.Separator, "}") {
		stmts = append(stmts, p.parseStmt())
	}

	p.expect(lexer.Separator, "}", "block")

	return stmts
}

// parseStmt dispatches on the leading token to one of the statement forms
// of spec §4.3/§4.4.
func (p *Parser) parseStmt() ast.Stmt {
	tok := p.peek()

	switch {
	case tok.Is(lexer.Keyword, "let"):
		return p.parseLet()
	case tok.Is(lexer.Keyword, "ret"):
		return p.parseReturn()
	case tok.Is(lexer.Keyword, "break"):
		return p.parseBreak()
	case tok.Is(lexer.Keyword, "continue"):
		return p.parseContinue()
	case tok.Is(lexer.Keyword, "if"):
		return p.parseIf()
	case tok.Is(lexer.Keyword, "while"):
		return p.parseWhile()
	case tok.Is(lexer.Keyword, "for"):
		return p.parseFor()
	case tok.Is(lexer.Keyword, "fn"):
		return p.parseFn()
	case tok.Is(lexer.Keyword, "struct"):
		return p.parseStruct()
	case tok.Is(lexer.Keyword, "extern"):
		return p.parseExtern()
	case tok.Is(lexer.Keyword, "bundle"):
		return p.parseBundleOrNamespace()
	case tok.Is(lexer.Keyword, "unpack"):
		return p.parseUnpack()
	case tok.Is(lexer.Keyword, "pack"):
		return p.parsePack()
	}

	return p.parseExprOrReAssign()
}

func (p *Parser) parseLet() ast.Stmt {
	start := p.mark()
	p.advance() // "let"

	name := p.expectKind(lexer.Ident, "let declaration").Text

	var declType ast.Type

	if p.match(lexer.Separator, ":") {
		declType = p.parseLetType()
	}

	p.expect(lexer.Operator, "=", "let declaration")

	value := p.parseExpr()

	p.expect(lexer.Separator, ";", "let declaration")

	return p.record(&ast.Let{Name: name, Type: declType, Value: value}, start).(*ast.Let)
}

// parseLetType recognises an optional leading "mut" before the ordinary
// type grammar, wrapping the result in MUT (spec §3, §4.6: a `let`'s
// mutability is carried on its declared type).
func (p *Parser) parseLetType() ast.Type {
	if p.at(lexer.Ident, "mut") {
		p.advance()
		return ast.NewMut(p.parseType())
	}

	return p.parseType()
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.mark()
	p.advance() // "ret"

	var value ast.Expr

	if !p.at(lexer.Separator, ";") {
		value = p.parseExpr()
	}

	p.expect(lexer.Separator, ";", "return statement")

	return p.record(&ast.Return{Value: value}, start).(*ast.Return)
}

func (p *Parser) parseBreak() ast.Stmt {
	start := p.mark()
	p.advance()
	p.expect(lexer.Separator, ";", "break statement")

	return p.record(&ast.Break{}, start).(*ast.Break)
}

func (p *Parser) parseContinue() ast.Stmt {
	start := p.mark()
	p.advance()
	p.expect(lexer.Separator, ";", "continue statement")

	return p.record(&ast.Continue{}, start).(*ast.Continue)
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.mark()
	p.advance() // "if"

	cond := p.parseCondition()
	body := p.parseBlock()

	var elifs []ast.Elif

	var elseBody []ast.Stmt

	for p.at(lexer.Keyword, "else") {
		p.advance()

		if p.match(lexer.Keyword, "if") {
			elifCond := p.parseCondition()
			elifBody := p.parseBlock()
			elifs = append(elifs, ast.Elif{Cond: elifCond, Body: elifBody})

			continue
		}

		elseBody = p.parseBlock()

		break
	}

	return p.record(&ast.If{Cond: cond, Body: body, Elif: elifs, Else: elseBody}, start).(*ast.If)
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.mark()
	p.advance() // "while"

	cond := p.parseCondition()
	body := p.parseBlock()

	return p.record(&ast.While{Cond: cond, Body: body}, start).(*ast.While)
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.mark()
	p.advance() // "for"
	p.expect(lexer.Separator, "(", "for loop")

	var init ast.Stmt

	if !p.at(lexer.Separator, ";") {
		init = p.parseStmt()
	} else {
		p.advance()
	}

	var cond ast.Expr

	if !p.at(lexer.Separator, ";") {
		cond = p.parseExpr()
	}

	p.expect(lexer.Separator, ";", "for loop")

	var inc ast.Stmt

	if !p.at(lexer.Separator, ")") {
		inc = p.parseSimpleStmtNoSemi()
	}

	p.expect(lexer.Separator, ")", "for loop")

	body := p.parseBlock()

	return p.record(&ast.For{Init: init, Cond: cond, Inc: inc, Body: body}, start).(*ast.For)
}

// parseSimpleStmtNoSemi parses the `inc` clause of a for-loop, which has no
// trailing `;` of its own (the loop's parens close it instead).
func (p *Parser) parseSimpleStmtNoSemi() ast.Stmt {
	start := p.mark()
	expr := p.parseExpr()

	if p.match(lexer.Operator, "=") {
		rhs := p.parseExpr()
		return p.record(&ast.ReAssign{LHS: expr, RHS: rhs}, start).(*ast.ReAssign)
	}

	return p.record(&ast.ExprStmt{Expr: expr}, start).(*ast.ExprStmt)
}

// parseExprOrReAssign implements spec §4.4's "`=` after an identifier or
// lvalue chain is ReAssign", covering the common case of a bare
// expression statement (typically a Call) otherwise.
func (p *Parser) parseExprOrReAssign() ast.Stmt {
	start := p.mark()
	expr := p.parseExpr()

	var stmt ast.Stmt

	if p.match(lexer.Operator, "=") {
		rhs := p.parseExpr()
		stmt = &ast.ReAssign{LHS: expr, RHS: rhs}
	} else {
		stmt = &ast.ExprStmt{Expr: expr}
	}

	p.expect(lexer.Separator, ";", "statement")

	return p.record(stmt, start).(ast.Stmt)
}
