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
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// ErrNonIntegralNegation is returned when a rewrite which is only sound over
// the integers (e.g. "x < y" iff "x - y + 1 <= 0") is requested for a
// non-integral number type.
var ErrNonIntegralNegation = errors.New("strict inequality requires an integral number type")

// Kind identifies the relation between the expression of a constraint and zero.
type Kind uint8

const (
	// Equality represents a constraint "e = 0".
	Equality Kind = iota
	// Disequation represents a constraint "e != 0".
	Disequation
	// Inequality represents a constraint "e <= 0".
	Inequality
)

func (p Kind) String() string {
	switch p {
	case Equality:
		return "="
	case Disequation:
		return "!="
	case Inequality:
		return "<="
	}
	//
	panic(util.InvariantViolation(fmt.Sprintf("unknown constraint kind (%d)", p)))
}

// Constraint represents a linear constraint of the form "e = 0", "e != 0" or
// "e <= 0".  Constraints are immutable.
type Constraint[N number.Number[N]] struct {
	expr Expression[N]
	kind Kind
}

// NewConstraint constructs a constraint "e kind 0".
func NewConstraint[N number.Number[N]](e Expression[N], kind Kind) Constraint[N] {
	return Constraint[N]{e, kind}
}

// True returns the canonical tautology "1 >= 0" (i.e. "-1 <= 0").
func True[N number.Number[N]]() Constraint[N] {
	return Constraint[N]{Const(number.MinusOne[N]()), Inequality}
}

// False returns the canonical contradiction "0 >= 1" (i.e. "1 <= 0").
func False[N number.Number[N]]() Constraint[N] {
	return Constraint[N]{Const(number.One[N]()), Inequality}
}

// LessEq constructs the constraint "lhs <= rhs".
func LessEq[N number.Number[N]](lhs Expression[N], rhs Expression[N]) Constraint[N] {
	return Constraint[N]{lhs.Sub(rhs), Inequality}
}

// GreaterEq constructs the constraint "lhs >= rhs".
func GreaterEq[N number.Number[N]](lhs Expression[N], rhs Expression[N]) Constraint[N] {
	return Constraint[N]{rhs.Sub(lhs), Inequality}
}

// Equal constructs the constraint "lhs = rhs".
func Equal[N number.Number[N]](lhs Expression[N], rhs Expression[N]) Constraint[N] {
	return Constraint[N]{lhs.Sub(rhs), Equality}
}

// NotEqual constructs the constraint "lhs != rhs".
func NotEqual[N number.Number[N]](lhs Expression[N], rhs Expression[N]) Constraint[N] {
	return Constraint[N]{lhs.Sub(rhs), Disequation}
}

// LessThan constructs the constraint "lhs < rhs", which is encoded as "lhs -
// rhs + 1 <= 0".  This is only valid over the integers.
func LessThan[N number.Number[N]](lhs Expression[N], rhs Expression[N]) (Constraint[N], error) {
	var n N
	//
	if !n.Integral() {
		return Constraint[N]{}, ErrNonIntegralNegation
	}
	//
	return Constraint[N]{lhs.Sub(rhs).Plus(number.One[N]()), Inequality}, nil
}

// GreaterThan constructs the constraint "lhs > rhs", which is encoded as "rhs -
// lhs + 1 <= 0".  This is only valid over the integers.
func GreaterThan[N number.Number[N]](lhs Expression[N], rhs Expression[N]) (Constraint[N], error) {
	return LessThan(rhs, lhs)
}

// Kind returns the kind of this constraint.
func (p Constraint[N]) Kind() Kind {
	return p.kind
}

// Expression returns the expression e of this constraint "e kind 0".
func (p Constraint[N]) Expression() Expression[N] {
	return p.expr
}

// IsConstant checks whether this constraint has no variables.
func (p Constraint[N]) IsConstant() bool {
	return p.expr.IsConstant()
}

// Size returns the number of variables in this constraint.
func (p Constraint[N]) Size() uint {
	return p.expr.Size()
}

// Constant returns the right-hand side of this constraint when written as
// "vars kind c", that is the negated constant of its expression.
func (p Constraint[N]) Constant() N {
	return p.expr.Constant().Neg()
}

// Coefficient returns the coefficient of a given variable in this constraint.
func (p Constraint[N]) Coefficient(x variable.Variable) N {
	return p.expr.Coefficient(x)
}

// Variables returns the set of variables used in this constraint.
func (p Constraint[N]) Variables() *variable.Set {
	return p.expr.Variables()
}

// All iterates the variables of this constraint along with their
// coefficients.
func (p Constraint[N]) All() iter.Seq2[variable.Variable, N] {
	return p.expr.All()
}

// IsTautology checks whether this constraint holds regardless of the values
// of its variables.  Only constraints without variables are ever classified as
// tautologies.
func (p Constraint[N]) IsTautology() bool {
	if !p.expr.IsConstant() {
		return false
	}
	//
	c := p.expr.Constant()
	//
	switch p.kind {
	case Equality:
		return c.IsZero()
	case Disequation:
		return !c.IsZero()
	case Inequality:
		return c.Sign() <= 0
	}
	//
	panic(util.InvariantViolation(fmt.Sprintf("unknown constraint kind (%d)", p.kind)))
}

// IsContradiction checks whether this constraint fails regardless of the
// values of its variables.  Only constraints without variables are ever
// classified as contradictions.
func (p Constraint[N]) IsContradiction() bool {
	if !p.expr.IsConstant() {
		return false
	}
	//
	c := p.expr.Constant()
	//
	switch p.kind {
	case Equality:
		return !c.IsZero()
	case Disequation:
		return c.IsZero()
	case Inequality:
		return c.Sign() > 0
	}
	//
	panic(util.InvariantViolation(fmt.Sprintf("unknown constraint kind (%d)", p.kind)))
}

// Negate returns the logical negation of this constraint.  Tautologies and
// contradictions negate to the canonical contradiction and tautology
// respectively.  Negating an inequality "e <= 0" gives "-e + 1 <= 0", which is
// only sound over the integers; for other number types ErrNonIntegralNegation
// is returned.
func (p Constraint[N]) Negate() (Constraint[N], error) {
	switch {
	case p.IsTautology():
		return False[N](), nil
	case p.IsContradiction():
		return True[N](), nil
	}
	//
	switch p.kind {
	case Equality:
		return Constraint[N]{p.expr, Disequation}, nil
	case Disequation:
		return Constraint[N]{p.expr, Equality}, nil
	case Inequality:
		if !p.expr.constant.Integral() {
			return Constraint[N]{}, ErrNonIntegralNegation
		}
		// not(e <= 0) iff e > 0 iff e >= 1 iff -(e-1) <= 0
		return Constraint[N]{p.expr.Minus(number.One[N]()).Neg(), Inequality}, nil
	}
	//
	panic(util.InvariantViolation(fmt.Sprintf("unknown constraint kind (%d)", p.kind)))
}

// Equal checks whether two constraints are structurally identical.
func (p Constraint[N]) Equal(o Constraint[N]) bool {
	return p.kind == o.kind && p.expr.Equal(o.expr)
}

func (p Constraint[N]) String() string {
	var builder strings.Builder
	//
	switch {
	case p.IsContradiction():
		return "false"
	case p.IsTautology():
		return "true"
	}
	//
	Expression[N]{coeffs: p.expr.coeffs}.write(&builder)
	builder.WriteString(" ")
	builder.WriteString(p.kind.String())
	builder.WriteString(" ")
	builder.WriteString(p.Constant().String())
	//
	return builder.String()
}
