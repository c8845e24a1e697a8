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
package trace

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// Domain is an abstract domain which records every operation applied to it,
// rather than computing anything.  It supports numerical, array and pointer
// operations, making it useful for checking which operations a client
// performs.  Meeting with a contradiction, or asking for bottom, gives the
// bottom value, after which nothing further is recorded.
type Domain[N number.Number[N]] struct {
	calls  []string
	bottom bool
}

// New constructs an empty (i.e. top) trace.
func New[N number.Number[N]]() *Domain[N] {
	return &Domain[N]{}
}

// Calls returns the operations recorded so far, in order.
func (p *Domain[N]) Calls() []string {
	return p.calls
}

// Assign implementation for the domain.Numerical interface.
func (p *Domain[N]) Assign(x variable.Variable, e linear.Expression[N]) {
	p.record("%s := %s", x, e)
}

// Apply implementation for the domain.Numerical interface.
func (p *Domain[N]) Apply(op cfg.BinaryOperator, z variable.Variable, x variable.Variable, y variable.Variable) {
	p.record("%s := %s %s %s", z, x, op.Symbol(), y)
}

// ApplyConst implementation for the domain.Numerical interface.
func (p *Domain[N]) ApplyConst(op cfg.BinaryOperator, z variable.Variable, x variable.Variable, k N) {
	p.record("%s := %s %s %s", z, x, op.Symbol(), k)
}

// AddConstraint implementation for the domain.Numerical interface.
func (p *Domain[N]) AddConstraint(c linear.Constraint[N]) {
	p.record("assume(%s)", c)
	//
	if c.IsContradiction() {
		p.bottom = true
	}
}

// Forget implementation for the domain.Numerical interface.
func (p *Domain[N]) Forget(x variable.Variable) {
	p.record("forget(%s)", x)
}

// ArrayInit implementation for the domain.Arrays interface.
func (p *Domain[N]) ArrayInit(a variable.Variable) {
	p.record("array_init(%s)", a)
}

// ArrayStore implementation for the domain.Arrays interface.
func (p *Domain[N]) ArrayStore(a variable.Variable, i variable.Variable, v linear.Expression[N], singleton bool) {
	if singleton {
		p.record("%s[%s] := %s (singleton)", a, i, v)
	} else {
		p.record("%s[%s] := %s", a, i, v)
	}
}

// ArrayLoad implementation for the domain.Arrays interface.
func (p *Domain[N]) ArrayLoad(x variable.Variable, a variable.Variable, i variable.Variable) {
	p.record("%s := %s[%s]", x, a, i)
}

// PtrStore implementation for the domain.Pointers interface.
func (p *Domain[N]) PtrStore(ptr variable.Variable, x variable.Variable) {
	p.record("*(%s) := %s", ptr, x)
}

// PtrLoad implementation for the domain.Pointers interface.
func (p *Domain[N]) PtrLoad(x variable.Variable, ptr variable.Variable) {
	p.record("%s := *(%s)", x, ptr)
}

// PtrAssign implementation for the domain.Pointers interface.
func (p *Domain[N]) PtrAssign(x variable.Variable, ptr variable.Variable, offset linear.Expression[N]) {
	p.record("%s := &(%s) + %s", x, ptr, offset)
}

// PtrObject implementation for the domain.Pointers interface.
func (p *Domain[N]) PtrObject(x variable.Variable, object uint) {
	p.record("%s := &(%d)", x, object)
}

// PtrFunction implementation for the domain.Pointers interface.
func (p *Domain[N]) PtrFunction(x variable.Variable, fn string) {
	p.record("%s := &(%s)", x, fn)
}

// Bottom implementation for the domain.Numerical interface.
func (p *Domain[N]) Bottom() *Domain[N] {
	return &Domain[N]{bottom: true}
}

// Top implementation for the domain.Numerical interface.
func (p *Domain[N]) Top() *Domain[N] {
	return New[N]()
}

// IsBottom implementation for the domain.Numerical interface.
func (p *Domain[N]) IsBottom() bool {
	return p.bottom
}

// IsTop implementation for the domain.Numerical interface.
func (p *Domain[N]) IsTop() bool {
	return !p.bottom && len(p.calls) == 0
}

// Clone implementation for the domain.Numerical interface.
func (p *Domain[N]) Clone() *Domain[N] {
	return &Domain[N]{slices.Clone(p.calls), p.bottom}
}

func (p *Domain[N]) String() string {
	if p.bottom {
		return "_|_"
	}
	//
	return fmt.Sprintf("[%s]", strings.Join(p.calls, "; "))
}

func (p *Domain[N]) record(format string, args ...any) {
	if !p.bottom {
		p.calls = append(p.calls, fmt.Sprintf(format, args...))
	}
}
