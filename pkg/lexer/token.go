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

// Package lexer turns Jaguar source text into a stream of spanned tokens
// (spec §4.2).
package lexer

import "github.com/jaguar-lang/jaguarc/pkg/source"

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	// Ident is any identifier not matching a reserved word.
	Ident Kind = iota
	// Number is a digit sequence with no sign.
	Number
	// StrLit is text between double quotes.
	StrLit
	// Char is exactly one character between single quotes.
	Char
	// Operator is one of the arithmetic/boolean/assignment symbols.
	Operator
	// Separator is one of ( ) { } [ ] , ; :
	Separator
	// Keyword is a reserved word.
	Keyword
	// Dot is a single ".".
	Dot
	// DColon is "::".
	DColon
	// Vardaic is "...".
	Vardaic
	// Comment is a skipped // or /* */ run, retained only when lexing
	// with comments enabled (round-trip testing, spec §8).
	Comment
	// EOF marks the end of the token stream.
	EOF
)

// String names a Kind for diagnostics and tests.
func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case StrLit:
		return "StrLit"
	case Char:
		return "Char"
	case Operator:
		return "Operator"
	case Separator:
		return "Separator"
	case Keyword:
		return "Keyword"
	case Dot:
		return "Dot"
	case DColon:
		return "DColon"
	case Vardaic:
		return "Vardaic"
	case Comment:
		return "Comment"
	case EOF:
		return "EOF"
	default:
		return "?"
	}
}

// Token is one lexical unit together with the span of source text it was
// recognised from and, where relevant, its decoded textual form (e.g. a
// string literal's contents with the surrounding quotes stripped).
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

// Is reports whether this token is a keyword/operator/separator matching
// text exactly — the common case used throughout the parser.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// reservedWords is the fixed keyword set from spec §4.2. "JLINE" is
// handled separately by the lexer (it is not a keyword: it expands into a
// Number token carrying the current line).
var reservedWords = map[string]bool{
	"let": true, "fn": true, "if": true, "else": true, "while": true,
	"for": true, "ret": true, "break": true, "continue": true, "as": true,
	"struct": true, "bundle": true, "pack": true, "unpack": true,
	"with": true, "until": true, "extern": true,
	"int": true, "str": true, "bool": true, "buf": true, "char": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"list": true, "void": true, "ptr": true,
}

// IsKeyword reports whether text is one of the reserved words in §4.2.
func IsKeyword(text string) bool {
	return reservedWords[text]
}
