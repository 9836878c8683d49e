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

// Package symbols holds the tables consulted during name/type resolution:
// the variable scope stack, the function table, the per-type method
// table, the type table, and (via pkg/module) the module table (spec §4.5).
package symbols

import (
	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/source"
	"github.com/jaguar-lang/jaguarc/pkg/util"
)

// Variable is one `let`-bound name together with its declared type and
// reference-discipline bookkeeping (spec §3's "Variable" entity).
//
// References is an optional index into the owning Scope's variable arena
// for a borrowed-from variable — an arena index rather than a shared graph
// cell, per the design note in spec §9 ("never as shared graph cells").
// The analyser always leaves it empty and no pass reads it; taking `&x`
// only sets IsRef on x (see MarkRef), and no lifetime warnings are issued.
type Variable struct {
	Name       string
	Type       ast.Type
	IsRef      bool
	References util.Option[int]
	Span       source.Span
}

// MarkRef records that this variable has had its address taken (`&x`),
// which the analyser uses to mark the pointee is now referenced from
// elsewhere (spec §4.6: "taking a reference marks the pointee is_ref=true").
func (v *Variable) MarkRef() {
	v.IsRef = true
}
