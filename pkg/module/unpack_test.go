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
package module

import (
	"testing"

	"github.com/jaguar-lang/jaguarc/pkg/ast"
	"github.com/jaguar-lang/jaguarc/pkg/symbols"
)

func newDestination() *Destination {
	return &Destination{
		Functions: symbols.NewFunctionTable(),
		Types:     symbols.NewTypeTable(),
		Globals:   symbols.NewScope(),
		Subs:      make(map[string]*Module),
	}
}

func TestUnpackResolvesFunctionBeforeType(t *testing.T) {
	src := NewModule("m", "/build/m.h", "/src/m.jag")
	src.Functions.Declare(&symbols.Function{Name: "helper", Ret: ast.NewPrimitive(ast.VOID)})
	src.Types.Declare(symbols.NewStructLayout("helper", "/src/m.jag"))

	dst := newDestination()

	if res := Unpack(dst, src, []string{"helper"}); res != nil {
		t.Fatalf("unexpected unpack failure: %+v", res)
	}

	if dst.Functions.Lookup("helper") == nil {
		t.Fatalf("expected function to win over type of same name")
	}
}

func TestUnpackUnresolvedName(t *testing.T) {
	src := NewModule("m", "/build/m.h", "/src/m.jag")
	dst := newDestination()

	res := Unpack(dst, src, []string{"missing"})
	if res == nil || !res.Unresolved {
		t.Fatalf("expected unresolved result, got %+v", res)
	}
}

func TestUnpackClashWithParentSymbol(t *testing.T) {
	src := NewModule("m", "/build/m.h", "/src/m.jag")
	src.Functions.Declare(&symbols.Function{Name: "helper", Ret: ast.NewPrimitive(ast.VOID)})

	dst := newDestination()
	dst.Functions.Declare(&symbols.Function{Name: "helper", Ret: ast.NewPrimitive(ast.VOID)})

	res := Unpack(dst, src, []string{"helper"})
	if res == nil || !res.Clash {
		t.Fatalf("expected clash result, got %+v", res)
	}
}

func TestUnpackFallsThroughToSubModule(t *testing.T) {
	src := NewModule("m", "/build/m.h", "/src/m.jag")
	src.Subs["inner"] = NewModule("inner", "/build/inner.h", "/src/inner.jag")

	dst := newDestination()

	if res := Unpack(dst, src, []string{"inner"}); res != nil {
		t.Fatalf("unexpected unpack failure: %+v", res)
	}

	if dst.Subs["inner"] == nil {
		t.Fatalf("expected sub-module to be merged")
	}
}
