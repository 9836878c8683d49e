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

// Package util holds small, dependency-free helpers shared by the rest of
// the compiler.
package util

import (
	"fmt"
	"strings"
)

// Path identifies a qualified name threaded through nested module/bundle
// scopes, e.g. the segments ["A","T"] for the qualified type "A::T". A
// path is either absolute (rooted at the top-level module table) or
// relative (to be resolved against some enclosing scope, such as the
// "mod" qualifier of "mod::sub::x" before that module has been
// substituted in).
type Path struct {
	absolute bool
	segments []string
}

// NewAbsolutePath constructs a path rooted at the top of the module tree.
func NewAbsolutePath(segments ...string) Path {
	return Path{true, segments}
}

// NewRelativePath constructs a path still awaiting a root.
func NewRelativePath(segments ...string) Path {
	return Path{false, segments}
}

// IsAbsolute reports whether this path is rooted at the module tree.
func (p Path) IsAbsolute() bool {
	return p.absolute
}

// Depth returns the number of qualifiers in this path.
func (p Path) Depth() uint {
	return uint(len(p.segments))
}

// Head returns the outermost (leftmost) qualifier.
func (p Path) Head() string {
	return p.segments[0]
}

// Tail returns the innermost (rightmost) qualifier — the unqualified name.
func (p Path) Tail() string {
	return p.segments[len(p.segments)-1]
}

// Dehead strips the outermost qualifier, e.g. "mod::sub::x" becomes the
// relative path "sub::x". Used when resolving nested bundle access one
// qualifier at a time (spec §4.6, qualified access).
func (p Path) Dehead() Path {
	return Path{false, p.segments[1:]}
}

// Extend appends a new innermost qualifier.
func (p Path) Extend(tail string) Path {
	next := make([]string, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = tail

	return Path{p.absolute, next}
}

// Equals compares two paths structurally, including their absoluteness.
func (p Path) Equals(other Path) bool {
	if p.absolute != other.absolute || len(p.segments) != len(other.segments) {
		return false
	}

	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}

	return true
}

// String renders the path using the source language's "::" qualifier.
func (p Path) String() string {
	prefix := ""
	if !p.absolute {
		prefix = "."
	}

	return prefix + strings.Join(p.segments, "::")
}

// GoString supports %#v debug printing of paths in test failures.
func (p Path) GoString() string {
	return fmt.Sprintf("Path(%s)", p.String())
}
