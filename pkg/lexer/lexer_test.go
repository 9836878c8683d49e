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
	"testing"

	"github.com/jaguar-lang/jaguarc/pkg/source"
)

func tokenize(t *testing.T, text string) []Token {
	t.Helper()

	file := source.NewFile("t.jag", []byte(text))
	queue := source.NewQueue(file)
	lex := New(file, queue)
	toks := lex.Collect()

	if queue.HasErrors() {
		t.Fatalf("unexpected lexer errors for %q", text)
	}

	return toks
}

func TestMultiCharOperatorsPreferred(t *testing.T) {
	cases := map[string]string{
		"==": "==", "!=": "!=", "<=": "<=", ">=": ">=",
		"<": "<", ">": ">", "=": "=", "!": "!",
	}

	for input, want := range cases {
		toks := tokenize(t, input)

		if toks[0].Kind != Operator || toks[0].Text != want {
			t.Errorf("input %q: got %v %q, want Operator %q", input, toks[0].Kind, toks[0].Text, want)
		}
	}
}

func TestDColonPreferredOverColon(t *testing.T) {
	toks := tokenize(t, "a::b")

	if toks[1].Kind != DColon {
		t.Fatalf("expected DColon, got %v", toks[1].Kind)
	}
}

func TestVardaicPreferredOverDot(t *testing.T) {
	toks := tokenize(t, "...")
	if toks[0].Kind != Vardaic {
		t.Fatalf("expected Vardaic, got %v", toks[0].Kind)
	}

	toks = tokenize(t, ".")
	if toks[0].Kind != Dot {
		t.Fatalf("expected Dot, got %v", toks[0].Kind)
	}
}

func TestJLineExpandsToCurrentLine(t *testing.T) {
	toks := tokenize(t, "let x: int = 1;\nlet y: int = JLINE;")

	var jline Token

	for _, tok := range toks {
		if tok.Kind == Number && tok.Span.Start() > 20 {
			jline = tok
		}
	}

	if jline.Text != "2" {
		t.Errorf("expected JLINE to expand to \"2\", got %q", jline.Text)
	}
}

func TestKeywordsRecognised(t *testing.T) {
	toks := tokenize(t, "let fn struct bundle unpack ptr list")

	for _, tok := range toks {
		if tok.Kind == EOF {
			continue
		}

		if tok.Kind != Keyword {
			t.Errorf("expected %q to lex as Keyword, got %v", tok.Text, tok.Kind)
		}
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	file := source.NewFile("t.jag", []byte(`"abc`))
	queue := source.NewQueue(file)
	lex := New(file, queue)
	lex.Collect()

	if !lex.Fatal() || !queue.HasErrors() {
		t.Errorf("expected unterminated string literal to be a fatal lexer error")
	}
}

func TestUnrecognisedCharacterIsFatal(t *testing.T) {
	file := source.NewFile("t.jag", []byte("let x = 1 $ 2;"))
	queue := source.NewQueue(file)
	lex := New(file, queue)
	lex.Collect()

	if !lex.Fatal() {
		t.Errorf("expected '$' to be a fatal lexer error")
	}
}

func TestTokenSpansAreSubstringsOfSource(t *testing.T) {
	text := "let x: ptr<int> = &y;"
	toks := tokenize(t, text)

	for _, tok := range toks {
		if tok.Kind == EOF {
			continue
		}

		substr := text[tok.Span.Start():tok.Span.End()]
		// Round-trip property (spec §8): every token's span substring is a
		// prefix of (here, exactly equal to) its textual form.
		if tok.Kind != StrLit && tok.Kind != Char && substr != tok.Text {
			t.Errorf("token %v text %q does not match span substring %q", tok.Kind, tok.Text, substr)
		}
	}
}
