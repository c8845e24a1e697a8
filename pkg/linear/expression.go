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
	"strings"

	"github.com/consensys/go-crab/pkg/util/collection/sparse"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// Expression represents a linear expression of the form "c0 + c1*x1 + ... +
// cn*xn", where each ci is a number and each xi a variable.  Expressions are
// values: every operation returns a fresh expression and never modifies its
// receiver.  Coefficients are held in a persistent map which is shared between
// expressions whenever an operation leaves it unchanged, such as when adding a
// constant.  No zero coefficient is ever stored.  The zero value is the empty
// expression (i.e. the constant 0).
type Expression[N number.Number[N]] struct {
	coeffs   sparse.Map[variable.Variable, N]
	constant N
}

// Const constructs an expression consisting of a single constant.
func Const[N number.Number[N]](n N) Expression[N] {
	return Expression[N]{constant: n}
}

// Var constructs an expression consisting of a single variable with
// coefficient one.
func Var[N number.Number[N]](x variable.Variable) Expression[N] {
	return Term(number.One[N](), x)
}

// Term constructs an expression "n*x".  When n is zero, this is the empty
// expression.
func Term[N number.Number[N]](n N, x variable.Variable) Expression[N] {
	var coeffs sparse.Map[variable.Variable, N]
	//
	if n.IsZero() {
		return Expression[N]{}
	}
	//
	return Expression[N]{coeffs: coeffs.Set(x, n)}
}

// Sum adds together zero or more expressions.
func Sum[N number.Number[N]](exprs ...Expression[N]) Expression[N] {
	var sum Expression[N]
	//
	for _, e := range exprs {
		sum = sum.Add(e)
	}
	//
	return sum
}

// Add returns the sum of this expression and another.  Coefficients are merged
// in a single ordered pass, with those which cancel out being dropped.
func (p Expression[N]) Add(o Expression[N]) Expression[N] {
	coeffs := p.coeffs.Merge(o.coeffs, keep[N], keep[N], func(l N, r N) (N, bool) {
		n := l.Add(r)
		return n, !n.IsZero()
	})
	//
	return Expression[N]{coeffs, p.constant.Add(o.constant)}
}

// Sub returns the difference of this expression and another.
func (p Expression[N]) Sub(o Expression[N]) Expression[N] {
	coeffs := p.coeffs.Merge(o.coeffs, keep[N], negate[N], func(l N, r N) (N, bool) {
		n := l.Sub(r)
		return n, !n.IsZero()
	})
	//
	return Expression[N]{coeffs, p.constant.Sub(o.constant)}
}

// Scale returns this expression multiplied by a given constant.  Scaling by
// zero gives the empty expression.
func (p Expression[N]) Scale(n N) Expression[N] {
	if n.IsZero() {
		return Expression[N]{}
	} else if number.IsOne(n) {
		return p
	}
	//
	coeffs := p.coeffs.MapValues(func(_ variable.Variable, c N) (N, bool) {
		return c.Mul(n), true
	})
	//
	return Expression[N]{coeffs, p.constant.Mul(n)}
}

// Neg returns the negation of this expression.
func (p Expression[N]) Neg() Expression[N] {
	return p.Scale(number.MinusOne[N]())
}

// Plus returns this expression with a given constant added.  The coefficients
// of the result are shared with this expression.
func (p Expression[N]) Plus(n N) Expression[N] {
	return Expression[N]{p.coeffs, p.constant.Add(n)}
}

// Minus returns this expression with a given constant subtracted.
func (p Expression[N]) Minus(n N) Expression[N] {
	return p.Plus(n.Neg())
}

// AddTerm returns this expression with "n*x" added.
func (p Expression[N]) AddTerm(n N, x variable.Variable) Expression[N] {
	if n.IsZero() {
		return p
	}
	//
	builder := p.coeffs.Edit()
	builder.Update(x, func(c N, _ bool) (N, bool) {
		c = c.Add(n)
		return c, !c.IsZero()
	})
	//
	return Expression[N]{builder.Freeze(), p.constant}
}

// AddVar returns this expression with the variable x added.
func (p Expression[N]) AddVar(x variable.Variable) Expression[N] {
	return p.AddTerm(number.One[N](), x)
}

// SubVar returns this expression with the variable x subtracted.
func (p Expression[N]) SubVar(x variable.Variable) Expression[N] {
	return p.AddTerm(number.MinusOne[N](), x)
}

// Coefficient returns the coefficient of a given variable, which is zero when
// the variable does not occur in this expression.
func (p Expression[N]) Coefficient(x variable.Variable) N {
	if c, ok := p.coeffs.Get(x); ok {
		return c
	}
	//
	return number.Zero[N]()
}

// Constant returns the constant term of this expression.
func (p Expression[N]) Constant() N {
	return p.constant
}

// IsConstant checks whether this expression has no variables.
func (p Expression[N]) IsConstant() bool {
	return p.coeffs.IsEmpty()
}

// Size returns the number of variables in this expression.
func (p Expression[N]) Size() uint {
	return p.coeffs.Len()
}

// Variable returns the variable x if this expression is exactly "x" (i.e. has
// a single variable with coefficient one and a zero constant).
func (p Expression[N]) Variable() (variable.Variable, bool) {
	if p.coeffs.Len() != 1 || !p.constant.IsZero() {
		return variable.Variable{}, false
	}
	//
	entry := p.coeffs.Nth(0)
	//
	return entry.Key, number.IsOne(entry.Value)
}

// Variables returns the set of variables used in this expression.
func (p Expression[N]) Variables() *variable.Set {
	return p.coeffs.Keys()
}

// All iterates the variables of this expression along with their
// coefficients, in variable order.
func (p Expression[N]) All() iter.Seq2[variable.Variable, N] {
	return p.coeffs.All()
}

// Equal checks whether two expressions are structurally identical.
func (p Expression[N]) Equal(o Expression[N]) bool {
	if p.constant.Cmp(o.constant) != 0 || p.coeffs.Len() != o.coeffs.Len() {
		return false
	}
	//
	for i := range p.coeffs.Len() {
		l, r := p.coeffs.Nth(i), o.coeffs.Nth(i)
		//
		if l.Key.Cmp(r.Key) != 0 || l.Value.Cmp(r.Value) != 0 {
			return false
		}
	}
	//
	return true
}

func (p Expression[N]) String() string {
	var builder strings.Builder
	//
	p.write(&builder)
	//
	return builder.String()
}

func (p Expression[N]) write(builder *strings.Builder) {
	var (
		first = true
		size  = p.coeffs.Len()
	)
	//
	for x, c := range p.coeffs.All() {
		if c.Sign() > 0 && !first {
			builder.WriteString("+")
		}
		//
		if c.Cmp(number.MinusOne[N]()) == 0 {
			builder.WriteString("-")
		} else if !number.IsOne(c) {
			builder.WriteString(c.String())
		}
		//
		builder.WriteString(x.Name())
		//
		first = false
	}
	//
	if p.constant.Sign() > 0 && size > 0 {
		builder.WriteString("+")
	}
	//
	if !p.constant.IsZero() || size == 0 {
		builder.WriteString(p.constant.String())
	}
}

func keep[N any](n N) (N, bool) {
	return n, true
}

func negate[N number.Number[N]](n N) (N, bool) {
	return n.Neg(), true
}
