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
package source

import "testing"

func TestSpanLength(t *testing.T) {
	s := NewSpan(3, 10)
	if s.Length() != 7 {
		t.Errorf("expected length 7, got %d", s.Length())
	}
}

func TestSpanInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on start > end")
		}
	}()

	NewSpan(5, 2)
}

func TestSpanUnion(t *testing.T) {
	a := NewSpan(2, 5)
	b := NewSpan(4, 9)

	u := a.Union(b)
	if u.Start() != 2 || u.End() != 9 {
		t.Errorf("expected 2..9, got %s", u)
	}
}

func TestEnclosingLine(t *testing.T) {
	file := NewFile("t.jag", []byte("let x: int = 1;\nlet y: int = 2;\n"))
	line := file.EnclosingLine(NewSpan(20, 21))

	if line.Number() != 2 {
		t.Errorf("expected line 2, got %d", line.Number())
	}

	if line.String() != "let y: int = 2;" {
		t.Errorf("unexpected line text %q", line.String())
	}
}
