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

// Package parser is a recursive-descent parser turning a token stream into
// a spanned ast.Program (spec §4.4). Every production registers the span
// of the node it builds into a source.Map, the same "parse, then record"
// discipline the lexer/ast packages are built around.
package parser

import (
	"fmt"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/lexer"
	"github.com/jaguar-lang/jaguarc/pkg/source"
)

// Parser holds the full token list for one file (materialised up front via
// Lexer.Collect, comments dropped) plus a cursor, matching the lexer's own
// single-file, single-pass scope.
type Parser struct {
	toks   []lexer.Token
	pos    int
	file   *source.File
	queue  *source.Queue
	srcmap *source.Map[ast.Node]
	// noCompositeLit suppresses `Ident { ... }` struct-initialiser parsing
	// while true, set around if/else-if/while condition expressions so their
	// trailing body block is never swallowed as a struct literal — the
	// same ambiguity Go itself resolves by disallowing unparenthesised
	// composite literals in a control-flow condition.
	noCompositeLit bool
}

// abort unwinds the recursive descent to Parse's recover on the first
// syntax error, matching spec §4.4: "errors are fatal and terminate the
// process immediately (no recovery)".
type abort struct{}

// Parse tokenises and parses file in one call, returning the root Program,
// the span map built while parsing, and false if a fatal syntax error was
// reported into queue (the error itself is already enqueued, not returned
// again).
func Parse(file *source.File, queue *source.Queue) (prog *ast.Program, srcmap *source.Map[ast.Node], ok bool) {
	lx := lexer.New(file, queue)
	toks := lx.Collect()

	if lx.Fatal() {
		return nil, nil, false
	}

	p := &Parser{toks, 0, file, queue, source.NewMap[ast.Node](file), false}

	ok = true

	defer func() {
		if r := recover(); r != nil {
			if _, isAbort := r.(abort); !isAbort {
				panic(r)
			}

			prog, ok = nil, false
		}
	}()

	prog = p.parseProgram()

	return prog, p.srcmap, ok
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return tok
}

func (p *Parser) at(kind lexer.Kind, text string) bool {
	return p.peek().Is(kind, text)
}

func (p *Parser) match(kind lexer.Kind, text string) bool {
	if p.at(kind, text) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) expect(kind lexer.Kind, text, context string) lexer.Token {
	if !p.at(kind, text) {
		p.fatalf("expected %q in %s, found %q", text, context, p.peek().Text)
	}

	return p.advance()
}

func (p *Parser) expectKind(kind lexer.Kind, context string) lexer.Token {
	if p.peek().Kind != kind {
		p.fatalf("expected %s in %s, found %q", kind, context, p.peek().Text)
	}

	return p.advance()
}

func (p *Parser) fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.queue.Error(p.peek().Span, msg)

	panic(abort{})
}

// mark returns the byte offset a node being parsed starts at.
func (p *Parser) mark() int {
	return p.peek().Span.Start()
}

// end returns the byte offset just consumed, used to close off a node's
// span once its last token has been read.
func (p *Parser) end() int {
	if p.pos == 0 {
		return 0
	}

	return p.toks[p.pos-1].Span.End()
}

// record registers n's span as [start, p.end()) and returns n, so callers
// can write `return p.record(&ast.X{...}, start).(*ast.X)`.
func (p *Parser) record(n ast.Node, start int) ast.Node {
	p.srcmap.Put(n, source.NewSpan(start, p.end()))
	return n
}

// parseCondition parses a condition expression with struct-initialiser
// parsing suppressed, so `if p { ... }` reads `p` as a bare Ident and `{`
// as the body's opening brace rather than attempting `p{...}`.
func (p *Parser) parseCondition() ast.Expr {
	prev := p.noCompositeLit
	p.noCompositeLit = true

	defer func() { p.noCompositeLit = prev }()

	return p.parseExpr()
}
