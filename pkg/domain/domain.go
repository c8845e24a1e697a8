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
package domain

import (
	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// Numerical captures the operations which every abstract domain over numeric
// variables must provide.  Values are mutable: operations update the receiver
// in place.  The type parameter D is the concrete domain type itself (usually
// a pointer), which allows Clone, Bottom and Top to return values of that type.
type Numerical[N number.Number[N], D any] interface {
	// Assign x := e.
	Assign(x variable.Variable, e linear.Expression[N])
	// Apply z := x op y.
	Apply(op cfg.BinaryOperator, z variable.Variable, x variable.Variable, y variable.Variable)
	// ApplyConst z := x op k.
	ApplyConst(op cfg.BinaryOperator, z variable.Variable, x variable.Variable, k N)
	// AddConstraint meets this value with a given constraint.
	AddConstraint(c linear.Constraint[N])
	// Forget removes all information about a given variable.
	Forget(x variable.Variable)
	// Bottom returns the least element of this domain.
	Bottom() D
	// Top returns the greatest element of this domain.
	Top() D
	// IsBottom checks whether this value is unsatisfiable.
	IsBottom() bool
	// IsTop checks whether this value carries no information.
	IsTop() bool
	// Clone returns an independent copy of this value.
	Clone() D
	// String renders this value.
	String() string
}

// Arrays is implemented by domains which can reason about array contents.
type Arrays[N number.Number[N]] interface {
	// ArrayInit marks all elements of a given array as initialised.
	ArrayInit(a variable.Variable)
	// ArrayStore a[i] := v.  When singleton holds, the array is known to have
	// exactly one element.
	ArrayStore(a variable.Variable, i variable.Variable, v linear.Expression[N], singleton bool)
	// ArrayLoad x := a[i].
	ArrayLoad(x variable.Variable, a variable.Variable, i variable.Variable)
}

// Pointers is implemented by domains which can reason about pointers.
type Pointers[N number.Number[N]] interface {
	// PtrStore *(p) := x.
	PtrStore(p variable.Variable, x variable.Variable)
	// PtrLoad x := *(p).
	PtrLoad(x variable.Variable, p variable.Variable)
	// PtrAssign x := &(p) + offset.
	PtrAssign(x variable.Variable, p variable.Variable, offset linear.Expression[N])
	// PtrObject x := &(object).
	PtrObject(x variable.Variable, object uint)
	// PtrFunction x := &(fn).
	PtrFunction(x variable.Variable, fn string)
}
