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

// parseExpr enters the precedence chain at its loosest level, spec §4.4:
// "logic-or, logic-and, equality, comparison, additive, multiplicative,
// unary, postfix-chain, primary".
func (p *Parser) parseExpr() ast.Expr {
	return p.parseLogicOr()
}

func (p *Parser) parseLogicOr() ast.Expr {
	return p.parseBinaryLevel(p.parseLogicAnd, ast.OpOr)
}

func (p *Parser) parseLogicAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseEquality, ast.OpAnd)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinaryLevel(p.parseComparison, ast.OpEq, ast.OpNe)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.parseBinaryLevel(p.parseAdditive, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryLevel(p.parseMultiplicative, ast.OpAdd, ast.OpSub)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLevel(p.parseUnary, ast.OpMul, ast.OpDiv)
}

// parseBinaryLevel implements one left-associative precedence level: parse
// one operand with next, then fold in every following "op operand" pair
// whose operator's text matches one of ops.
func (p *Parser) parseBinaryLevel(next func() ast.Expr, ops ...ast.BinOp) ast.Expr {
	start := p.mark()
	lhs := next()

	for {
		op, ok := p.matchOperator(ops)
		if !ok {
			return lhs
		}

		rhs := next()
		lhs = p.record(&ast.Binary{LHS: lhs, Op: op, RHS: rhs}, start).(*ast.Binary)
	}
}

func (p *Parser) matchOperator(ops []ast.BinOp) (ast.BinOp, bool) {
	tok := p.peek()
	if tok.Kind != lexer.Operator {
		return "", false
	}

	for _, op := range ops {
		if tok.Text == string(op) {
			p.advance()
			return op, true
		}
	}

	return "", false
}

// parseUnary handles `&expr` and `*expr` (spec §4.4, §4.6). `*ident` is
// recorded as Ident{Deref: true} rather than wrapping a Deref node, so a
// following postfix `.field`/`[i]` chains off the already-dereferenced
// value — see DESIGN.md's parser entry.
func (p *Parser) parseUnary() ast.Expr {
	start := p.mark()

	if p.match(lexer.Operator, "&") {
		operand := p.parseUnary()
		return p.record(&ast.Ref{Expr: operand}, start).(*ast.Ref)
	}

	if p.match(lexer.Operator, "*") {
		if p.peek().Kind == lexer.Ident {
			name := p.advance().Text
			ident := p.record(&ast.Ident{Name: name, Deref: true}, start).(*ast.Ident)

			return p.parsePostfixChain(ident, start)
		}

		operand := p.parseUnary()

		return p.record(&ast.Deref{Expr: operand}, start).(*ast.Deref)
	}

	return p.parsePostfixChain(p.parsePrimary(), start)
}

// parsePostfixChain folds `.field`, `::field`, `(args)`, `[index]`, and
// `as T` onto base, left-associatively, per spec §4.4's postfix-chain.
func (p *Parser) parsePostfixChain(base ast.Expr, start int) ast.Expr {
	for {
		switch {
		case p.match(lexer.Dot, "."):
			name := p.expectKind(lexer.Ident, "member access").Text
			base = p.record(&ast.MemberAccess{Base: base, Field: name}, start).(*ast.MemberAccess)
		case p.match(lexer.DColon, "::"):
			name := p.expectKind(lexer.Ident, "bundle access").Text

			if alias, ok := base.(*ast.Ident); ok && !p.noCompositeLit && p.at(lexer.Separator, "{") {
				base = p.parseStructInit(alias.Name+"::"+name, start)
				continue
			}

			base = p.record(&ast.BundleAccess{Base: base, Field: name}, start).(*ast.BundleAccess)
		case p.at(lexer.Separator, "("):
			base = p.parseCallArgs(base, start)
		case p.match(lexer.Separator, "["):
			index := p.parseExpr()
			p.expect(lexer.Separator, "]", "list access")
			base = p.record(&ast.ListAccess{Base: base, Index: index}, start).(*ast.ListAccess)
		case p.at(lexer.Keyword, "as"):
			p.advance()

			t := p.parseType()
			base = p.record(&ast.Cast{Expr: base, Type: t}, start).(*ast.Cast)
		default:
			return base
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Expr, start int) ast.Expr {
	p.expect(lexer.Separator, "(", "call")

	var args []ast.Expr

	for !p.at(lexer.Separator, ")") {
		args = append(args, p.parseExpr())

		if !p.match(lexer.Separator, ",") {
			break
		}
	}

	p.expect(lexer.Separator, ")", "call")

	return p.record(&ast.Call{Callee: callee, Args: args}, start).(*ast.Call)
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.mark()
	tok := p.peek()

	switch {
	case tok.Kind == lexer.Number:
		p.advance()

		value, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			p.fatalf("invalid integer literal %q", tok.Text)
		}

		return p.record(&ast.LitInt{Value: value}, start).(*ast.LitInt)
	case tok.Kind == lexer.StrLit:
		p.advance()
		return p.record(&ast.LitStr{Value: tok.Text}, start).(*ast.LitStr)
	case tok.Kind == lexer.Char:
		p.advance()

		var ch byte
		if len(tok.Text) > 0 {
			ch = tok.Text[0]
		}

		return p.record(&ast.LitChar{Value: ch}, start).(*ast.LitChar)
	case tok.Is(lexer.Ident, "nullptr"):
		p.advance()
		return p.record(&ast.Nullptr{}, start).(*ast.Nullptr)
	case tok.Kind == lexer.Ident:
		p.advance()

		if !p.noCompositeLit && p.at(lexer.Separator, "{") {
			return p.parseStructInit(tok.Text, start)
		}

		return p.record(&ast.Ident{Name: tok.Text}, start).(*ast.Ident)
	case p.match(lexer.Separator, "("):
		inner := p.parseExpr()
		p.expect(lexer.Separator, ")", "grouped expression")

		return inner
	case p.at(lexer.Separator, "["):
		return p.parseListInit(start)
	case tok.Kind == lexer.Keyword:
		// A type keyword never starts a primary expression; only a bare
		// Ident can be followed by `{` to form a struct initialiser, above.
		p.fatalf("unexpected keyword %q in expression", tok.Text)
	}

	p.fatalf("unexpected token %q in expression", tok.Text)

	return nil
}

func (p *Parser) parseListInit(start int) ast.Expr {
	p.expect(lexer.Separator, "[", "list literal")

	var items []ast.Expr

	for !p.at(lexer.Separator, "]") {
		items = append(items, p.parseExpr())

		if !p.match(lexer.Separator, ",") {
			break
		}
	}

	p.expect(lexer.Separator, "]", "list literal")

	return p.record(&ast.ListInit{Items: items}, start).(*ast.ListInit)
}

// parseStructInit parses `Type{ f: v, ... }`, called by the expression
// parser when an identifier is followed by `{` and struct literals are not
// suppressed by noCompositeLit.
func (p *Parser) parseStructInit(typeName string, start int) ast.Expr {
	p.expect(lexer.Separator, "{", "struct initialiser")

	var fields []*ast.FieldPair

	for !p.at(lexer.Separator, "}") {
		fieldStart := p.mark()
		name := p.expectKind(lexer.Ident, "struct field").Text

		p.expect(lexer.Separator, ":", "struct field")

		value := p.parseExpr()
		pair := p.record(&ast.FieldPair{Field: name, Value: value}, fieldStart).(*ast.FieldPair)
		fields = append(fields, pair)

		if !p.match(lexer.Separator, ",") {
			break
		}
	}

	p.expect(lexer.Separator, "}", "struct initialiser")

	return p.record(&ast.StructInit{Type: typeName, Fields: fields}, start).(*ast.StructInit)
}
