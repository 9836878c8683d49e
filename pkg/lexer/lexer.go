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
package lexer

import (
	"fmt"
	"strconv"

	"github.com/jaguar-lang/jaguarc/pkg/source"
)

// multiCharOperators lists operators whose longer form must be preferred
// over a shorter prefix (spec §4.2: "== != <= >= are preferred over single
// char < > = !").
var multiCharOperators = []string{"==", "!=", "<=", ">=", "&&", "||"}

var singleCharOperators = "+-*/<>=!&|"

const separators = "(){}[],;:"

// Lexer tokenises one source file, buffering a single look-ahead token so
// HasNext can be called repeatedly without consuming input — the same
// shape as the teacher's own `lex.Lexer[T]` (pkg/util/source/lex/lexer.go),
// specialised away from its generic scanner-combinator design to a direct
// switch-based scanner because Jaguar's token grammar is a small, fixed,
// greedy-match table rather than a composable rule set.
type Lexer struct {
	file    *source.File
	text    []byte
	index   int
	line    int
	queue   *source.Queue
	buffer  *Token
	fatal   bool
	keepCom bool
}

// New constructs a lexer over a source file, reporting fatal lexical
// errors (spec §4.2, §7) into queue.
func New(file *source.File, queue *source.Queue) *Lexer {
	return &Lexer{file, file.Contents(), 0, 1, queue, nil, false, false}
}

// WithComments enables retaining Comment tokens in the stream, used by the
// lexer round-trip property test (spec §8) rather than by the parser.
func (l *Lexer) WithComments() *Lexer {
	l.keepCom = true
	return l
}

// Fatal reports whether an unrecoverable lexical error was encountered.
func (l *Lexer) Fatal() bool {
	return l.fatal
}

// Line returns the current 1-based line number, used to expand JLINE.
func (l *Lexer) Line() int {
	return l.line
}

// HasNext reports whether another token remains.
func (l *Lexer) HasNext() bool {
	l.fill()
	return l.buffer != nil
}

// Next returns the next token and advances past it.
func (l *Lexer) Next() Token {
	l.fill()

	tok := *l.buffer
	l.buffer = nil

	return tok
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	l.fill()
	return *l.buffer
}

// Collect tokenises the whole remaining input, skipping comments unless
// WithComments was called, and stopping at (and including) the first EOF
// token or the first fatal error.
func (l *Lexer) Collect() []Token {
	var toks []Token

	for l.HasNext() {
		tok := l.Next()
		toks = append(toks, tok)

		if tok.Kind == EOF || l.fatal {
			break
		}
	}

	return toks
}

func (l *Lexer) fill() {
	if l.buffer != nil {
		return
	}

	for {
		l.skipWhitespace()

		if l.index >= len(l.text) {
			tok := Token{EOF, "", source.NewSpan(l.index, l.index)}
			l.buffer = &tok

			return
		}

		if tok, ok := l.scanComment(); ok {
			if l.keepCom {
				l.buffer = &tok
				return
			}
			// Skipped comments are recoverable but invisible to the parser.
			continue
		}

		break
	}

	tok := l.scanToken()
	l.buffer = &tok
}

func (l *Lexer) skipWhitespace() {
	for l.index < len(l.text) {
		switch l.text[l.index] {
		case '\n':
			l.line++
			l.index++
		case ' ', '\t', '\r':
			l.index++
		default:
			return
		}
	}
}

func (l *Lexer) scanComment() (Token, bool) {
	start := l.index

	if l.match("//") {
		for l.index < len(l.text) && l.text[l.index] != '\n' {
			l.index++
		}

		return Token{Comment, string(l.text[start:l.index]), source.NewSpan(start, l.index)}, true
	}

	if l.match("/*") {
		for l.index < len(l.text) && !l.match("*/") {
			if l.text[l.index] == '\n' {
				l.line++
			}

			l.index++
		}

		if l.index >= len(l.text) {
			l.reportFatal(source.NewSpan(start, l.index), "unterminated block comment")
			return Token{Comment, string(l.text[start:l.index]), source.NewSpan(start, l.index)}, true
		}

		l.index += 2

		return Token{Comment, string(l.text[start:l.index]), source.NewSpan(start, l.index)}, true
	}

	return Token{}, false
}

func (l *Lexer) match(lit string) bool {
	end := l.index + len(lit)
	if end > len(l.text) {
		return false
	}

	return string(l.text[l.index:end]) == lit
}

func (l *Lexer) scanToken() Token {
	start := l.index
	c := l.text[l.index]

	switch {
	case isDigit(c):
		return l.scanNumber(start)
	case isIdentStart(c):
		return l.scanIdentOrKeyword(start)
	case c == '"':
		return l.scanString(start)
	case c == '\'':
		return l.scanChar(start)
	case c == '.':
		return l.scanDotFamily(start)
	case c == ':':
		return l.scanColonFamily(start)
	}

	if tok, ok := l.scanMultiCharOperator(start); ok {
		return tok
	}

	if containsByte(singleCharOperators, c) {
		l.index++
		return Token{Operator, string(c), source.NewSpan(start, l.index)}
	}

	if containsByte(separators, c) {
		l.index++
		return Token{Separator, string(c), source.NewSpan(start, l.index)}
	}

	l.index++
	l.reportFatal(source.NewSpan(start, l.index), fmt.Sprintf("unrecognised character %q", c))

	return Token{Operator, string(c), source.NewSpan(start, l.index)}
}

func (l *Lexer) scanNumber(start int) Token {
	for l.index < len(l.text) && isDigit(l.text[l.index]) {
		l.index++
	}

	return Token{Number, string(l.text[start:l.index]), source.NewSpan(start, l.index)}
}

func (l *Lexer) scanIdentOrKeyword(start int) Token {
	for l.index < len(l.text) && isIdentPart(l.text[l.index]) {
		l.index++
	}

	text := string(l.text[start:l.index])
	span := source.NewSpan(start, l.index)

	// JLINE expands to the current 1-based line as a Number token (§4.2).
	if text == "JLINE" {
		return Token{Number, strconv.Itoa(l.line), span}
	}

	if IsKeyword(text) {
		return Token{Keyword, text, span}
	}

	return Token{Ident, text, span}
}

func (l *Lexer) scanString(start int) Token {
	l.index++ // opening quote

	for l.index < len(l.text) && l.text[l.index] != '"' {
		if l.text[l.index] == '\\' && l.index+1 < len(l.text) {
			l.index++
		}

		if l.text[l.index] == '\n' {
			l.line++
		}

		l.index++
	}

	if l.index >= len(l.text) {
		l.reportFatal(source.NewSpan(start, l.index), "unterminated string literal")
		return Token{StrLit, string(l.text[start+1 : l.index]), source.NewSpan(start, l.index)}
	}

	text := string(l.text[start+1 : l.index])
	l.index++ // closing quote

	return Token{StrLit, text, source.NewSpan(start, l.index)}
}

func (l *Lexer) scanChar(start int) Token {
	l.index++ // opening quote

	if l.index >= len(l.text) {
		l.reportFatal(source.NewSpan(start, l.index), "unterminated char literal")
		return Token{Char, "", source.NewSpan(start, l.index)}
	}

	var ch byte

	if l.text[l.index] == '\\' && l.index+1 < len(l.text) {
		ch = l.text[l.index+1]
		l.index += 2
	} else {
		ch = l.text[l.index]
		l.index++
	}

	if l.index >= len(l.text) || l.text[l.index] != '\'' {
		l.reportFatal(source.NewSpan(start, l.index), "unterminated char literal")
		return Token{Char, string(ch), source.NewSpan(start, l.index)}
	}

	l.index++ // closing quote

	return Token{Char, string(ch), source.NewSpan(start, l.index)}
}

func (l *Lexer) scanDotFamily(start int) Token {
	if l.match("...") {
		l.index += 3
		return Token{Vardaic, "...", source.NewSpan(start, l.index)}
	}

	l.index++

	return Token{Dot, ".", source.NewSpan(start, l.index)}
}

func (l *Lexer) scanColonFamily(start int) Token {
	if l.match("::") {
		l.index += 2
		return Token{DColon, "::", source.NewSpan(start, l.index)}
	}

	l.index++

	return Token{Separator, ":", source.NewSpan(start, l.index)}
}

func (l *Lexer) scanMultiCharOperator(start int) (Token, bool) {
	for _, op := range multiCharOperators {
		if l.match(op) {
			l.index += len(op)
			return Token{Operator, op, source.NewSpan(start, l.index)}, true
		}
	}

	return Token{}, false
}

func (l *Lexer) reportFatal(span source.Span, msg string) {
	l.fatal = true
	l.queue.Error(span, msg)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func containsByte(set string, c byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			return true
		}
	}

	return false
}
