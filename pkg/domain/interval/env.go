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
package interval

import (
	"strings"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util/collection/sparse"
	"github.com/consensys/go-crab/pkg/util/math"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
	log "github.com/sirupsen/logrus"
)

// MaxRounds bounds the number of tightening rounds performed when adding a
// constraint.  Propagation normally stabilises well before this, but need not
// terminate in general (e.g. "x < y" and "y < x" over unbounded intervals).
const MaxRounds = 10

// Env is a non-relational abstract value mapping each variable to an interval
// of integers.  Variables not held in the environment are unbounded.  Since
// the underlying map is persistent, cloning is constant time.
type Env struct {
	vals   sparse.Map[variable.Variable, math.Interval]
	bottom bool
}

// NewTop constructs an environment in which every variable is unbounded.
func NewTop() *Env {
	return &Env{}
}

// NewBottom constructs the unsatisfiable environment.
func NewBottom() *Env {
	return &Env{bottom: true}
}

// Bottom implementation for the domain.Numerical interface.
func (p *Env) Bottom() *Env {
	return NewBottom()
}

// Top implementation for the domain.Numerical interface.
func (p *Env) Top() *Env {
	return NewTop()
}

// IsBottom implementation for the domain.Numerical interface.
func (p *Env) IsBottom() bool {
	return p.bottom
}

// IsTop implementation for the domain.Numerical interface.
func (p *Env) IsTop() bool {
	return !p.bottom && p.vals.IsEmpty()
}

// Clone implementation for the domain.Numerical interface.
func (p *Env) Clone() *Env {
	return &Env{p.vals, p.bottom}
}

// Interval returns the interval of a given variable, or false if this
// environment is bottom.
func (p *Env) Interval(x variable.Variable) (math.Interval, bool) {
	if p.bottom {
		return math.Interval{}, false
	}
	//
	return p.get(x), true
}

// Eval evaluates a linear expression in this environment.  This returns false
// if this environment is bottom.
func (p *Env) Eval(e linear.Expression[number.Z]) (math.Interval, bool) {
	if p.bottom {
		return math.Interval{}, false
	}
	//
	return p.eval(e, nil), true
}

// Assign implementation for the domain.Numerical interface.
func (p *Env) Assign(x variable.Variable, e linear.Expression[number.Z]) {
	if !p.bottom {
		p.set(x, p.eval(e, nil))
	}
}

// Apply implementation for the domain.Numerical interface.
func (p *Env) Apply(op cfg.BinaryOperator, z variable.Variable, x variable.Variable, y variable.Variable) {
	if !p.bottom {
		p.apply(op, z, p.get(x), p.get(y))
	}
}

// ApplyConst implementation for the domain.Numerical interface.
func (p *Env) ApplyConst(op cfg.BinaryOperator, z variable.Variable, x variable.Variable, k number.Z) {
	if !p.bottom {
		p.apply(op, z, p.get(x), math.Singleton(k))
	}
}

// Forget implementation for the domain.Numerical interface.
func (p *Env) Forget(x variable.Variable) {
	if !p.bottom {
		p.vals = p.vals.Delete(x)
	}
}

// AddConstraint implementation for the domain.Numerical interface.  Each
// variable of the constraint is tightened against the bounds of the others,
// repeating until nothing changes or MaxRounds is reached.
func (p *Env) AddConstraint(c linear.Constraint[number.Z]) {
	switch {
	case p.bottom || c.IsTautology():
		return
	case c.IsContradiction():
		p.setBottom()
		return
	}
	//
	for round := 0; round < MaxRounds; round++ {
		changed := false
		//
		for x, a := range c.All() {
			ok, updated := p.refine(c, x, a)
			//
			if !ok {
				p.setBottom()
				return
			}
			//
			changed = changed || updated
		}
		//
		if !changed {
			return
		}
	}
	//
	log.Debugf("interval propagation of %s stopped after %d rounds", c, MaxRounds)
}

// Constraints returns the bounds of this environment as a system of linear
// constraints.
func (p *Env) Constraints() *linear.System[number.Z] {
	var system = linear.NewSystem[number.Z]()
	//
	if p.bottom {
		system.Add(linear.False[number.Z]())
		return system
	}
	//
	for x, i := range p.vals.All() {
		var v = linear.Var[number.Z](x)
		//
		if k, ok := i.Constant(); ok {
			system.Add(linear.Equal(v, linear.Const(k)))
			continue
		}
		//
		if lo := i.MinValue(); lo.IsFinite() {
			system.Add(linear.GreaterEq(v, linear.Const(lo.IntVal())))
		}
		//
		if hi := i.MaxValue(); hi.IsFinite() {
			system.Add(linear.LessEq(v, linear.Const(hi.IntVal())))
		}
	}
	//
	return system
}

func (p *Env) String() string {
	var builder strings.Builder
	//
	if p.bottom {
		return "_|_"
	}
	//
	builder.WriteString("{")
	//
	for x, i := range p.vals.All() {
		if builder.Len() > 1 {
			builder.WriteString("; ")
		}
		//
		builder.WriteString(x.Name())
		builder.WriteString(" -> ")
		builder.WriteString(i.String())
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

// ============================================================================
// Helpers
// ============================================================================

func (p *Env) apply(op cfg.BinaryOperator, z variable.Variable, x math.Interval, y math.Interval) {
	if r, ok := evalBinary(op, x, y); ok {
		p.set(z, r)
	} else {
		log.Debugf("interval result of %s unbounded for %s", op.Name(), z)
		p.vals = p.vals.Delete(z)
	}
}

// Refine the interval of x, which has coefficient a in the constraint c.  The
// first result is false if the refined interval is empty, whilst the second
// indicates whether the interval changed.
func (p *Env) refine(c linear.Constraint[number.Z], x variable.Variable, a number.Z) (bool, bool) {
	var (
		current = p.get(x)
		// Bounds on a*x, given as -(e - a*x)
		rhs = p.eval(c.Expression(), &x).Neg()
		lo  = rhs.MinValue()
		hi  = rhs.MaxValue()
		bnd math.Interval
		ok  bool
	)
	//
	switch c.Kind() {
	case linear.Inequality:
		bnd, ok = divBounds(math.NegInfinity, hi, a)
	case linear.Equality:
		bnd, ok = divBounds(lo, hi, a)
	case linear.Disequation:
		return p.exclude(x, current, rhs, a)
	}
	//
	if !ok {
		return false, false
	} else if bnd.IsTop() {
		return true, false
	}
	//
	refined, ok := current.Meet(bnd)
	//
	if !ok {
		return false, false
	} else if refined.Equal(current) {
		return true, false
	}
	//
	p.set(x, refined)
	//
	return true, true
}

// Handle "a*x != k" where the remainder of the constraint is known to be the
// constant k.  This trims a matching endpoint of x, which is empty when x was
// exactly that value.
func (p *Env) exclude(x variable.Variable, current math.Interval, rhs math.Interval, a number.Z) (bool, bool) {
	k, ok := rhs.Constant()
	//
	if !ok || !k.Rem(a).IsZero() {
		return true, false
	}
	//
	var (
		v   = math.Finite(k.Div(a))
		one = math.Finite64(1)
		lo  = current.MinValue()
		hi  = current.MaxValue()
	)
	//
	switch {
	case lo.Cmp(v) == 0 && hi.Cmp(v) == 0:
		return false, false
	case lo.Cmp(v) == 0:
		p.set(x, math.NewInterval(lo.Add(one), hi))
	case hi.Cmp(v) == 0:
		p.set(x, math.NewInterval(lo, hi.Sub(one)))
	default:
		return true, false
	}
	//
	return true, true
}

// Determine the integers x such that lo <= a*x <= hi, where a is non-zero.
// This returns false when there are none (e.g. 1 <= 2*x <= 1).
func divBounds(lo math.InfInt, hi math.InfInt, a number.Z) (math.Interval, bool) {
	if a.Sign() < 0 {
		lo, hi = hi, lo
	}
	//
	min, max := lo.CeilDiv(a), hi.FloorDiv(a)
	//
	if min.Cmp(max) > 0 {
		return math.Interval{}, false
	}
	//
	return math.NewInterval(min, max), true
}

func (p *Env) get(x variable.Variable) math.Interval {
	if i, ok := p.vals.Get(x); ok {
		return i
	}
	//
	return math.INFINITY
}

func (p *Env) set(x variable.Variable, i math.Interval) {
	if i.IsTop() {
		p.vals = p.vals.Delete(x)
	} else {
		p.vals = p.vals.Set(x, i)
	}
}

func (p *Env) setBottom() {
	p.vals = sparse.Map[variable.Variable, math.Interval]{}
	p.bottom = true
}

// Evaluate an expression, optionally excluding the term of a given variable.
func (p *Env) eval(e linear.Expression[number.Z], skip *variable.Variable) math.Interval {
	var result = math.Singleton(e.Constant())
	//
	for x, c := range e.All() {
		if skip == nil || x.Cmp(*skip) != 0 {
			result = result.Add(p.get(x).Scale(c))
		}
	}
	//
	return result
}
