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
	"fmt"
	"io"
)

// Level classifies a Diagnostic (spec §4.1).
type Level uint8

const (
	// LevelInfo is purely informational and never affects the exit code.
	LevelInfo Level = iota
	// LevelWarning never aborts compilation (e.g. integer truncation).
	LevelWarning
	// LevelError is process-fatal once flushed (spec §7).
	LevelError
)

// String renders a level the way it appears in the "[Tool X]:" prefix.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	default:
		return "Info"
	}
}

// Diagnostic is one queued message (spec §4.1): a message, an optional
// help string, the span it concerns, and a severity level.
type Diagnostic struct {
	Level   Level
	Message string
	Help    string
	Span    Span
}

// HasHelp reports whether this diagnostic carries supplementary help text.
func (d Diagnostic) HasHelp() bool {
	return d.Help != ""
}

// Render writes this diagnostic against file in the contractual format:
// a "[Tool Level]:" header, the file path and 1-based line, the offending
// line of source, a caret range under the span, and optional help text.
func (d Diagnostic) Render(w io.Writer, file *File) {
	line := file.EnclosingLine(d.Span)
	offset := d.Span.Start() - line.Start()
	length := d.Span.Length()

	if max := line.Length() - offset; length > max {
		length = max
	}

	if length < 1 {
		length = 1
	}

	fmt.Fprintf(w, "[Tool %s]: %s\n", d.Level, d.Message)
	fmt.Fprintf(w, "  --> %s:%d:%d\n", file.Filename(), line.Number(), offset+1)
	fmt.Fprintf(w, "%s\n", line.String())

	for i := 0; i < offset; i++ {
		fmt.Fprint(w, " ")
	}

	for i := 0; i < length; i++ {
		fmt.Fprint(w, "^")
	}

	fmt.Fprintln(w)

	if d.HasHelp() {
		fmt.Fprintf(w, "help: %s\n", d.Help)
	}
}

// Queue accumulates diagnostics produced while analysing a single source
// file, in the order they were reported. A queue never aborts on its own;
// HasErrors and Flush inspect severity, and Flush signals a fatal
// condition back to its caller, the CLI driver (spec §7: "the first flush
// that finds an error ends the process").
type Queue struct {
	items []Diagnostic
	file  *File
}

// NewQueue constructs an empty diagnostic queue over a given file.
func NewQueue(file *File) *Queue {
	return &Queue{nil, file}
}

// Error enqueues an error-level diagnostic.
func (q *Queue) Error(span Span, message string) {
	q.items = append(q.items, Diagnostic{LevelError, message, "", span})
}

// ErrorWithHelp enqueues an error-level diagnostic with help text.
func (q *Queue) ErrorWithHelp(span Span, message, help string) {
	q.items = append(q.items, Diagnostic{LevelError, message, help, span})
}

// Warning enqueues a warning-level diagnostic (never fatal).
func (q *Queue) Warning(span Span, message string) {
	q.items = append(q.items, Diagnostic{LevelWarning, message, "", span})
}

// HasErrors reports whether any queued diagnostic is error-level.
func (q *Queue) HasErrors() bool {
	for _, d := range q.items {
		if d.Level == LevelError {
			return true
		}
	}

	return false
}

// Items returns the queued diagnostics in report order.
func (q *Queue) Items() []Diagnostic {
	return q.items
}

// Flush renders every queued diagnostic to w and reports whether any of
// them was error-level. It does not itself terminate the process — the
// driver (cmd/jaguarc) is the one place that turns a true return into
// os.Exit(1), matching spec §7's "errors are terminal" wording while
// keeping pkg/source free of any process-control side effects.
func (q *Queue) Flush(w io.Writer) (fatal bool) {
	for _, d := range q.items {
		d.Render(w, q.file)
		fmt.Fprintln(w)
	}

	return q.HasErrors()
}
