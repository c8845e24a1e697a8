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
package linear

import (
	"iter"
	"slices"
	"strings"

	"github.com/consensys/go-crab/pkg/util/collection/set"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// System is a conjunction of zero or more linear constraints.  Duplicates are
// permitted, and the order of constraints carries no meaning.
type System[N number.Number[N]] struct {
	constraints []Constraint[N]
}

// NewSystem constructs a system from zero or more constraints.
func NewSystem[N number.Number[N]](constraints ...Constraint[N]) *System[N] {
	return &System[N]{slices.Clone(constraints)}
}

// Add a constraint to this system.
func (p *System[N]) Add(c Constraint[N]) {
	p.constraints = append(p.constraints, c)
}

// AddAll adds all constraints of a given system to this system.
func (p *System[N]) AddAll(o *System[N]) {
	p.constraints = append(p.constraints, o.constraints...)
}

// Union returns a fresh system containing the constraints of both this system
// and the other.  Neither system is modified.
func (p *System[N]) Union(o *System[N]) *System[N] {
	constraints := make([]Constraint[N], 0, len(p.constraints)+len(o.constraints))
	constraints = append(constraints, p.constraints...)
	//
	return &System[N]{append(constraints, o.constraints...)}
}

// Len returns the number of constraints in this system.
func (p *System[N]) Len() uint {
	return uint(len(p.constraints))
}

// All returns an iterator over the constraints of this system.
func (p *System[N]) All() iter.Seq[Constraint[N]] {
	return slices.Values(p.constraints)
}

// Constraints returns a copy of the constraints in this system.
func (p *System[N]) Constraints() []Constraint[N] {
	return slices.Clone(p.constraints)
}

// Variables returns the set of variables used in any constraint of this
// system.
func (p *System[N]) Variables() *variable.Set {
	return set.UnionAnySortedSets(p.constraints, func(c Constraint[N]) *variable.Set {
		return c.Variables()
	})
}

// IsFalse checks whether this system contains a contradiction, in which case
// it is trivially unsatisfiable.
func (p *System[N]) IsFalse() bool {
	return slices.ContainsFunc(p.constraints, Constraint[N].IsContradiction)
}

func (p *System[N]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, c := range p.constraints {
		if i != 0 {
			builder.WriteString("; ")
		}
		//
		builder.WriteString(c.String())
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
