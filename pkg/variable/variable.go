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
package variable

import (
	"fmt"
	"strings"

	"github.com/consensys/go-crab/pkg/util/collection/set"
)

// Type classifies the values a variable may hold.
type Type uint8

const (
	// Int represents a mathematical integer variable.
	Int Type = iota
	// Real represents a rational variable.
	Real
	// Bool represents a boolean variable.
	Bool
	// Array represents an array variable, whose elements are numeric.
	Array
	// Pointer represents a pointer variable.
	Pointer
)

var typeNames = [...]string{"int", "real", "bool", "array", "ptr"}

func (p Type) String() string {
	if int(p) < len(typeNames) {
		return typeNames[p]
	}
	//
	return fmt.Sprintf("type(%d)", p)
}

// ParseType parses a type from its textual representation.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), true
		}
	}
	// Aliases
	switch strings.ToLower(name) {
	case "pointer":
		return Pointer, true
	case "integer":
		return Int, true
	}
	//
	return Int, false
}

// IsNumeric determines whether variables of this type can appear in linear
// expressions.
func (p Type) IsNumeric() bool {
	return p == Int || p == Real || p == Bool
}

// Variable identifies a program variable.  Variables are identified by name
// alone, and are ordered lexicographically by that name.
type Variable struct {
	name string
	kind Type
}

// New constructs a variable with the given name and type.  Prefer obtaining
// variables from a Factory, which ensures all variables with the same name
// have the same type.
func New(name string, kind Type) Variable {
	return Variable{name, kind}
}

// Name returns the name of this variable.
func (p Variable) Name() string {
	return p.name
}

// Type returns the type of this variable.
func (p Variable) Type() Type {
	return p.kind
}

// Cmp implementation for the set.Comparable interface.
func (p Variable) Cmp(o Variable) int {
	return strings.Compare(p.name, o.name)
}

func (p Variable) String() string {
	return p.name
}

// Set is a sorted set of variables.
type Set = set.AnySortedSet[Variable]

// NewSet constructs a set from zero or more variables.
func NewSet(vars ...Variable) *Set {
	return set.NewAnySortedSet(vars...)
}

// SetString renders a set of variables as "{x,y,z}".
func SetString(vars *Set) string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, v := range vars.ToArray() {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(v.name)
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
