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
package emitter

import (
	"fmt"
	"strings"
)

// MethodCall renders a lowered method call `TypeName_methodName(self, args…)`
// (spec §4.8), choosing `&base` or `base` for self depending on whether the
// base expression is already pointer-typed.
func MethodCall(typeName, methodName, baseText string, basePointer bool, argTexts []string) string {
	self := baseText
	if !basePointer {
		self = "&" + baseText
	}

	all := append([]string{self}, argTexts...)

	return fmt.Sprintf("%s_%s(%s)", typeName, methodName, strings.Join(all, ", "))
}

// StructInit renders a designated initialiser `(Type){ .f = v, ... }`
// (spec §4.8). Fields are emitted in the order given, which the caller
// (pkg/analyser) has already validated against the struct's layout.
func StructInit(cType string, fieldNames, fieldTexts []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "(%s){ ", cType)

	for i, name := range fieldNames {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, ".%s = %s", name, fieldTexts[i])
	}

	b.WriteString(" }")

	return b.String()
}

// MemberAccessOp returns "->" or "." for a member access against a base
// whose static type is basePointer (spec §4.6/§4.8).
func MemberAccessOp(basePointer bool) string {
	if basePointer {
		return "->"
	}

	return "."
}
