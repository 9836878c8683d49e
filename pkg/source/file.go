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

import "os"

// File holds the bytes of one Jaguar source file along with its name for
// diagnostic reporting and import resolution (spec §6, §4.7).
type File struct {
	filename string
	contents []byte
}

// NewFile constructs a source file directly from its bytes, primarily for
// tests and in-memory compilation.
func NewFile(filename string, contents []byte) *File {
	return &File{filename, contents}
}

// ReadFile loads a source file from disk.
func ReadFile(filename string) (*File, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return NewFile(filename, bs), nil
}

// Filename returns the path this source file was read from.
func (f *File) Filename() string {
	return f.filename
}

// Contents returns the raw bytes of this source file.
func (f *File) Contents() []byte {
	return f.contents
}

// Text returns the substring of this file's contents covered by span.
func (f *File) Text(span Span) string {
	return string(f.contents[span.Start():span.End()])
}

// Line describes one physical line of a source file, for diagnostic
// rendering (spec §4.1).
type Line struct {
	text   []byte
	span   Span
	number int
}

// String returns the textual contents of this line (no trailing newline).
func (l Line) String() string {
	return string(l.text[l.span.start:l.span.end])
}

// Number returns the 1-based line number.
func (l Line) Number() int {
	return l.number
}

// Start returns the byte offset, within the source file, of this line's
// first character.
func (l Line) Start() int {
	return l.span.start
}

// Length returns the number of bytes in this line.
func (l Line) Length() int {
	return l.span.Length()
}

// EnclosingLine finds the physical line containing the start of span. If
// span begins beyond the end of the file, the final line is returned.
func (f *File) EnclosingLine(span Span) Line {
	index := span.Start()
	num := 1
	start := 0

	for i := 0; i < len(f.contents); i++ {
		if i == index {
			return Line{f.contents, Span{start, endOfLine(index, f.contents)}, num}
		} else if f.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}

	return Line{f.contents, Span{start, len(f.contents)}, num}
}

func endOfLine(index int, text []byte) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}
