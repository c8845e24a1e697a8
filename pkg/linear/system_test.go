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

func Test_System_01(t *testing.T) {
	var s System[number.Z]
	//
	assert.Equal(t, uint(0), s.Len())
	assert.False(t, s.IsFalse())
	assert.Equal(t, "{}", s.String())
	assert.Equal(t, "{}", variable.SetString(s.Variables()))
}

func Test_System_02(t *testing.T) {
	s := NewSystem(
		LessEq(Var[number.Z](x), Const(z64(10))),
		Equal(Var[number.Z](z), Var[number.Z](y).Plus(z64(1))),
	)
	//
	assert.Equal(t, uint(2), s.Len())
	assert.Equal(t, "{x <= 10; -y+z = 1}", s.String())
	assert.Equal(t, "{x,y,z}", variable.SetString(s.Variables()))
}

func Test_System_03(t *testing.T) {
	c := LessEq(Var[number.Z](x), Const(z64(10)))
	s1 := NewSystem(c)
	s2 := NewSystem(c, NotEqual(Var[number.Z](y), Const(z64(0))))
	// Union keeps duplicates and leaves operands alone
	u := s1.Union(s2)
	assert.Equal(t, uint(3), u.Len())
	assert.Equal(t, uint(1), s1.Len())
	assert.Equal(t, uint(2), s2.Len())
	//
	s1.AddAll(s2)
	assert.Equal(t, uint(3), s1.Len())
	assert.Equal(t, "{x,y}", variable.SetString(s1.Variables()))
}

func Test_System_04(t *testing.T) {
	s := NewSystem(LessEq(Var[number.Z](x), Const(z64(10))))
	assert.False(t, s.IsFalse())
	//
	s.Add(LessEq(Const(z64(3)), Const(z64(2))))
	assert.True(t, s.IsFalse())
	//
	var n uint
	for range s.All() {
		n++
	}
	//
	assert.Equal(t, uint(2), n)
	assert.Len(t, s.Constraints(), 2)
}
