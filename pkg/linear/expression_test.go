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
	"testing"

	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
	"github.com/stretchr/testify/assert"
)

type Expr = Expression[number.Z]

var (
	vars = variable.NewFactory()
	x    = vars.Int("x")
	y    = vars.Int("y")
	z    = vars.Int("z")
)

func z64(n int64) number.Z {
	return number.NewZ(n)
}

func Test_Expr_01(t *testing.T) {
	var e Expr
	// Zero value is the empty expression
	checkExpr(t, e, "0")
	assert.True(t, e.IsConstant())
	assert.Equal(t, uint(0), e.Size())
	assert.True(t, e.Constant().IsZero())
}

func Test_Expr_02(t *testing.T) {
	checkExpr(t, Const(z64(5)), "5")
	checkExpr(t, Const(z64(-5)), "-5")
	checkExpr(t, Var[number.Z](x), "x")
	checkExpr(t, Term(z64(2), x), "2x")
	checkExpr(t, Term(z64(-1), x), "-x")
	checkExpr(t, Term(z64(0), x), "0")
}

func Test_Expr_03(t *testing.T) {
	e := Var[number.Z](x).AddTerm(z64(2), y).Minus(z64(3))
	checkExpr(t, e, "x+2y-3")
	checkExpr(t, e.Neg(), "-x-2y+3")
	checkExpr(t, e.Scale(z64(3)), "3x+6y-9")
	checkExpr(t, Var[number.Z](y).SubVar(x).Plus(z64(1)), "-x+y+1")
	checkExpr(t, Term(z64(-3), z).AddTerm(z64(-2), x), "-2x-3z")
}

func Test_Expr_04(t *testing.T) {
	e := Var[number.Z](x).AddVar(y).Plus(z64(7))
	// e + 0 == e, sharing coefficients
	for _, r := range []Expr{e.Add(Expr{}), e.Sub(Expr{}), e.Plus(z64(0)), e.Add(Const(z64(0)))} {
		assert.True(t, r.Equal(e))
		assert.True(t, r.coeffs.Shares(e.coeffs))
	}
	// Adding a pure constant shares coefficients
	r := e.Add(Const(z64(3)))
	assert.True(t, r.coeffs.Shares(e.coeffs))
	checkExpr(t, r, "x+y+10")
}

func Test_Expr_05(t *testing.T) {
	e := Var[number.Z](x).AddVar(y).Plus(z64(7))
	// Scaling by zero gives the empty expression
	for _, r := range []Expr{e.Scale(z64(0)), Expr{}.Scale(z64(0)), Const(z64(3)).Scale(z64(0))} {
		assert.True(t, r.Equal(Expr{}))
		assert.True(t, r.IsConstant())
		assert.True(t, r.Constant().IsZero())
	}
}

func Test_Expr_06(t *testing.T) {
	e := Var[number.Z](x).AddVar(y)
	// Cancellation drops zero coefficients
	r := e.Sub(Var[number.Z](y))
	checkExpr(t, r, "x")
	assert.Equal(t, uint(1), r.Size())
	assert.Equal(t, "{x}", variable.SetString(r.Variables()))
	//
	r = e.SubVar(x).SubVar(y)
	checkExpr(t, r, "0")
	assert.True(t, r.IsConstant())
	//
	r = e.Add(e.Neg())
	assert.True(t, r.Equal(Expr{}))
}

func Test_Expr_07(t *testing.T) {
	e := Var[number.Z](x).AddTerm(z64(4), z)
	// Coefficient is total
	assert.Equal(t, 0, e.Coefficient(x).Cmp(z64(1)))
	assert.Equal(t, 0, e.Coefficient(z).Cmp(z64(4)))
	assert.True(t, e.Coefficient(y).IsZero())
	// Indexing after adding a variable
	r := e.AddVar(y)
	assert.True(t, number.IsOne(r.Coefficient(y)))
	assert.True(t, e.Coefficient(y).IsZero())
}

func Test_Expr_08(t *testing.T) {
	checkVariable(t, Var[number.Z](x), true)
	checkVariable(t, Term(z64(2), x), false)
	checkVariable(t, Var[number.Z](x).Plus(z64(1)), false)
	checkVariable(t, Var[number.Z](x).AddVar(y), false)
	checkVariable(t, Expr{}, false)
	checkVariable(t, Const(z64(1)), false)
	checkVariable(t, Var[number.Z](x).AddVar(y).SubVar(y), true)
}

func Test_Expr_09(t *testing.T) {
	// Copy-on-write independence
	e1 := Var[number.Z](x).AddVar(y)
	e2 := e1.AddVar(x)
	e3 := e1.SubVar(y)
	e4 := e1.AddVar(z)
	//
	checkExpr(t, e1, "x+y")
	checkExpr(t, e2, "2x+y")
	checkExpr(t, e3, "x")
	checkExpr(t, e4, "x+y+z")
	assert.False(t, e1.coeffs.Shares(e2.coeffs))
}

func Test_Expr_10(t *testing.T) {
	e := Sum(Var[number.Z](z), Term(z64(2), x), Const(z64(1)), Var[number.Z](y).Neg())
	checkExpr(t, e, "2x-y+z+1")
	// Variables iterate in order
	var names []string
	for v, c := range e.All() {
		names = append(names, c.String()+v.Name())
	}
	//
	assert.Equal(t, []string{"2x", "-1y", "1z"}, names)
	assert.Equal(t, "{x,y,z}", variable.SetString(e.Variables()))
}

func Test_Expr_11(t *testing.T) {
	// Rational coefficients
	e := Term(number.NewQ(1, 2), x).Plus(number.NewQ(-3, 4))
	checkExpr(t, e, "1/2x-3/4")
	checkExpr(t, e.Scale(number.NewQ(4, 1)), "2x-3")
}

func Test_Expr_12(t *testing.T) {
	a := Var[number.Z](x).AddVar(y)
	b := Var[number.Z](y).AddVar(x)
	//
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(a.Plus(z64(1))))
	assert.False(t, a.Equal(a.AddVar(z)))
	assert.False(t, a.Equal(a.AddVar(y)))
}

// ============================================================================
// Helpers
// ============================================================================

func checkExpr[N number.Number[N]](t *testing.T, e Expression[N], expected string) {
	t.Helper()
	//
	if e.String() != expected {
		t.Errorf("expected %s, got %s", expected, e.String())
	}
}

func checkVariable(t *testing.T, e Expr, expected bool) {
	t.Helper()
	//
	v, ok := e.Variable()
	//
	if ok != expected {
		t.Errorf("expression %s gave %t", e.String(), ok)
	} else if ok && v.Cmp(x) != 0 {
		t.Errorf("expression %s gave variable %s", e.String(), v.Name())
	}
}
