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

// Package source carries byte-spans over original Jaguar source text and
// the diagnostic queue used to report lexical, syntactic and semantic
// errors against them.
package source

import "fmt"

// Span represents a contiguous slice of an originating source file, as a
// pair of byte offsets rather than a copied substring. Retaining the
// physical indices (instead of, say, a string slice) lets later passes
// recover enclosing lines, column numbers, and substrings on demand.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, checking that it is well-formed.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the first byte offset covered by this span.
func (s Span) Start() int {
	return s.start
}

// End returns one past the last byte offset covered by this span.
func (s Span) End() int {
	return s.end
}

// Length returns the number of bytes covered by this span.
func (s Span) Length() int {
	return s.end - s.start
}

// Union returns the smallest span enclosing both operands (e.g. a Call
// expression's callee span and its closing paren's span). The parser does
// not use it; it records each node's span from its start and end tokens.
func (s Span) Union(other Span) Span {
	start, end := s.start, s.end
	if other.start < start {
		start = other.start
	}

	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}

// String renders a span as "start..end", useful in test failure messages.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.start, s.end)
}
