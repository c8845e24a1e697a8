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
package math

import (
	"testing"

	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/stretchr/testify/assert"
)

func Test_InfInt_01(t *testing.T) {
	assert.Equal(t, -1, NegInfinity.Cmp(Finite64(0)))
	assert.Equal(t, 1, PosInfinity.Cmp(Finite64(0)))
	assert.Equal(t, 0, PosInfinity.Cmp(PosInfinity))
	assert.Equal(t, -1, Finite64(2).Cmp(Finite64(3)))
}

func Test_InfInt_02(t *testing.T) {
	assert.Equal(t, "+oo", NegInfinity.Mul(Finite64(-2)).String())
	assert.Equal(t, "-oo", PosInfinity.Mul(Finite64(-2)).String())
	assert.Equal(t, "0", PosInfinity.Mul(Finite64(0)).String())
	assert.Equal(t, "-oo", NegInfinity.Add(Finite64(5)).String())
}

func Test_InfInt_03(t *testing.T) {
	checkDiv(t, 7, 2, "3", "4", "3")
	checkDiv(t, -7, 2, "-4", "-3", "-3")
	checkDiv(t, 7, -2, "-4", "-3", "-3")
	checkDiv(t, -7, -2, "3", "4", "3")
	checkDiv(t, 6, 3, "2", "2", "2")
}

func Test_InfInt_04(t *testing.T) {
	assert.Panics(t, func() { PosInfinity.Add(NegInfinity) })
	assert.Panics(t, func() { PosInfinity.IntVal() })
}

func Test_Interval_01(t *testing.T) {
	assert.Equal(t, "[-oo, +oo]", INFINITY.String())
	assert.Equal(t, "[1, 2]", NewInterval64(1, 2).String())
	assert.True(t, INFINITY.IsTop())
	assert.False(t, NewInterval(NegInfinity, Finite64(3)).IsTop())
	assert.Panics(t, func() { NewInterval64(2, 1) })
}

func Test_Interval_02(t *testing.T) {
	a, b := NewInterval64(1, 3), NewInterval64(-2, 5)
	//
	assert.Equal(t, "[-1, 8]", a.Add(b).String())
	assert.Equal(t, "[-4, 5]", a.Sub(b).String())
	assert.Equal(t, "[-6, 15]", a.Mul(b).String())
	assert.Equal(t, "[-3, -1]", a.Neg().String())
}

func Test_Interval_03(t *testing.T) {
	a := NewInterval(NegInfinity, Finite64(-1))
	//
	assert.Equal(t, "[2, +oo]", a.Scale(number.NewZ(-2)).String())
	assert.Equal(t, "[-oo, 0]", a.Div(number.NewZ(2)).String())
	assert.Equal(t, "[0, +oo]", a.Div(number.NewZ(-3)).String())
	assert.Equal(t, "[0, 0]", a.Scale(number.NewZ(0)).String())
}

func Test_Interval_04(t *testing.T) {
	a, b := NewInterval64(1, 3), NewInterval64(5, 7)
	//
	_, ok := a.Meet(b)
	assert.False(t, ok)
	//
	c, ok := a.Meet(NewInterval(Finite64(2), PosInfinity))
	assert.True(t, ok)
	assert.Equal(t, "[2, 3]", c.String())
	assert.True(t, c.Equal(NewInterval64(2, 3)))
}

func Test_Interval_05(t *testing.T) {
	k, ok := NewInterval64(4, 4).Constant()
	assert.True(t, ok)
	assert.Equal(t, "4", k.String())
	//
	_, ok = NewInterval64(4, 5).Constant()
	assert.False(t, ok)
}

func checkDiv(t *testing.T, n int64, k int64, floor string, ceil string, trunc string) {
	v, d := Finite64(n), number.NewZ(k)
	//
	assert.Equal(t, floor, v.FloorDiv(d).String(), "floor(%d/%d)", n, k)
	assert.Equal(t, ceil, v.CeilDiv(d).String(), "ceil(%d/%d)", n, k)
	assert.Equal(t, trunc, v.TruncDiv(d).String(), "trunc(%d/%d)", n, k)
}
