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
	"testing"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/domain"
	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
	"github.com/stretchr/testify/assert"
)

var (
	_ domain.Numerical[number.Z, *Domain[number.Z]] = (*Domain[number.Z])(nil)
	_ domain.Numerical[number.Q, *Domain[number.Q]] = (*Domain[number.Q])(nil)
	_ domain.Arrays[number.Z]                      = (*Domain[number.Z])(nil)
	_ domain.Pointers[number.Z]                    = (*Domain[number.Z])(nil)
)

var (
	vars = variable.NewFactory()
	x    = vars.Int("x")
	y    = vars.Int("y")
)

func Test_Trace_01(t *testing.T) {
	d := New[number.Z]()
	assert.True(t, d.IsTop())
	assert.Equal(t, "[]", d.String())
	//
	d.Assign(x, linear.Const(number.NewZ(1)))
	d.Apply(cfg.Add, y, x, x)
	d.ApplyConst(cfg.Mul, y, x, number.NewZ(3))
	d.Forget(x)
	//
	assert.Equal(t, []string{"x := 1", "y := x + x", "y := x * 3", "forget(x)"}, d.Calls())
	assert.False(t, d.IsTop())
}

func Test_Trace_02(t *testing.T) {
	d := New[number.Z]()
	d.AddConstraint(linear.LessEq(linear.Var[number.Z](x), linear.Const(number.NewZ(2))))
	d.AddConstraint(linear.False[number.Z]())
	d.Forget(x)
	//
	assert.True(t, d.IsBottom())
	assert.Equal(t, "_|_", d.String())
	assert.Equal(t, []string{"assume(x <= 2)", "assume(false)"}, d.Calls())
}

func Test_Trace_03(t *testing.T) {
	d := New[number.Q]()
	c := d.Clone()
	c.Assign(x, linear.Const(number.NewQ(1, 2)))
	//
	assert.Equal(t, "[]", d.String())
	assert.Equal(t, "[x := 1/2]", c.String())
	assert.True(t, d.Bottom().IsBottom())
	assert.True(t, d.Bottom().Top().IsTop())
}
