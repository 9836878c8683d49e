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

import (
	"bytes"
	"strings"
	"testing"
)

func TestQueueWarningNeverFatal(t *testing.T) {
	file := NewFile("t.jag", []byte("let x: int = 1;"))
	q := NewQueue(file)
	q.Warning(NewSpan(4, 5), "literal truncated")

	var buf bytes.Buffer
	if fatal := q.Flush(&buf); fatal {
		t.Errorf("warnings must not be fatal")
	}

	if !strings.Contains(buf.String(), "[Tool Warning]: literal truncated") {
		t.Errorf("missing rendered warning: %s", buf.String())
	}
}

func TestQueueErrorIsFatal(t *testing.T) {
	file := NewFile("t.jag", []byte("let x: int = 1;\nx = 2;"))
	q := NewQueue(file)
	q.Error(NewSpan(16, 17), "Cannot mutate a const value 'x'")

	var buf bytes.Buffer
	if fatal := q.Flush(&buf); !fatal {
		t.Errorf("an error-level diagnostic must be reported fatal")
	}

	out := buf.String()
	if !strings.Contains(out, "Cannot mutate a const value 'x'") {
		t.Errorf("missing message: %s", out)
	}

	if !strings.Contains(out, "t.jag:2:1") {
		t.Errorf("missing file:line:col: %s", out)
	}
}

func TestDiagnosticHelpRendered(t *testing.T) {
	file := NewFile("t.jag", []byte("foo();"))
	q := NewQueue(file)
	q.ErrorWithHelp(NewSpan(0, 3), "undeclared symbol 'foo'", "did you forget to import it?")

	var buf bytes.Buffer
	q.Flush(&buf)

	if !strings.Contains(buf.String(), "help: did you forget to import it?") {
		t.Errorf("missing help text: %s", buf.String())
	}
}
