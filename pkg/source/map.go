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

import "fmt"

// Map associates AST nodes (or tokens) with the span of source text they
// were parsed from. Every node is registered exactly once, at the point
// the parser constructs it, so a missing or duplicate entry is an
// internal invariant violation rather than a recoverable condition —
// hence the panics below, matching the teacher's own `sexp.SourceMap`.
type Map[T comparable] struct {
	spans map[T]Span
	file  *File
}

// NewMap constructs an empty source map over a given file.
func NewMap[T comparable](file *File) *Map[T] {
	return &Map[T]{make(map[T]Span), file}
}

// File returns the source file this map's spans are indices into.
func (m *Map[T]) File() *File {
	return m.file
}

// Put registers the span of a newly constructed node. Panics if item has
// already been registered.
func (m *Map[T]) Put(item T, span Span) {
	if _, ok := m.spans[item]; ok {
		panic(fmt.Sprintf("source map: duplicate entry %v", item))
	}

	m.spans[item] = span
}

// Get returns the span associated with item. Panics if item was never
// registered.
func (m *Map[T]) Get(item T) Span {
	span, ok := m.spans[item]
	if !ok {
		panic(fmt.Sprintf("source map: missing entry %v", item))
	}

	return span
}
