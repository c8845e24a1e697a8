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
package number

import (
	"testing"
)

func Test_Number_01(t *testing.T) {
	var z Z
	// Zero value is zero
	if !z.IsZero() || z.String() != "0" {
		t.Errorf("zero value of Z is %s", z.String())
	}
	//
	var q Q
	if !q.IsZero() || q.String() != "0" {
		t.Errorf("zero value of Q is %s", q.String())
	}
}

func Test_Number_02(t *testing.T) {
	checkArith[Z](t, 7, 3)
	checkArith[Z](t, -7, 3)
	checkArith[Z](t, 0, -5)
	checkArith[Q](t, 7, 3)
	checkArith[Q](t, -1, 1)
}

func Test_Number_03(t *testing.T) {
	// Truncated division
	checkDiv(t, 7, 2, 3)
	checkDiv(t, -7, 2, -3)
	checkDiv(t, 7, -2, -3)
	checkDiv(t, -7, -2, 3)
}

func Test_Number_04(t *testing.T) {
	a := NewQ(1, 3)
	b := NewQ(2, 3)
	//
	if s := a.Add(b).String(); s != "1" {
		t.Errorf("1/3 + 2/3 = %s", s)
	} else if s := a.Div(b).String(); s != "1/2" {
		t.Errorf("1/3 / 2/3 = %s", s)
	}
}

func Test_Number_05(t *testing.T) {
	checkParse[Z](t, "42", "42", true)
	checkParse[Z](t, "-17", "-17", true)
	checkParse[Z](t, "0x10", "16", true)
	checkParse[Z](t, "x", "", false)
	checkParse[Z](t, "1/2", "", false)
	checkParse[Q](t, "1/2", "1/2", true)
	checkParse[Q](t, "0.25", "1/4", true)
	checkParse[Q](t, "y", "", false)
}

func Test_Number_08(t *testing.T) {
	checkParse[Z](t, "010", "10", true)
	checkParse[Z](t, "-010", "-10", true)
	checkParse[Z](t, "-0x10", "-16", true)
	checkParse[Z](t, "0b11", "", false)
	checkParse[Z](t, "0o7", "", false)
	checkParse[Z](t, "1_000", "", false)
	checkParse[Z](t, "--1", "", false)
	checkParse[Z](t, "-", "", false)
	checkParse[Q](t, "010", "10", true)
	checkParse[Q](t, "010/4", "5/2", true)
	checkParse[Q](t, "-3/6", "-1/2", true)
	checkParse[Q](t, "1.50", "3/2", true)
	checkParse[Q](t, "0x10", "", false)
	checkParse[Q](t, "0b1/3", "", false)
	checkParse[Q](t, "1_000", "", false)
	checkParse[Q](t, "1/0", "", false)
	checkParse[Q](t, "1/-2", "", false)
}

func Test_Number_06(t *testing.T) {
	// Operations never modify their operands
	a := NewZ(5)
	b := NewZ(6)
	_ = a.Add(b)
	_ = a.Mul(b)
	_ = a.Neg()
	//
	if a.String() != "5" || b.String() != "6" {
		t.Errorf("operands modified: %s, %s", a.String(), b.String())
	}
}

func Test_Number_07(t *testing.T) {
	if !(Z{}).Integral() {
		t.Errorf("integers should be integral")
	} else if (Q{}).Integral() {
		t.Errorf("rationals should not be integral")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func checkArith[N Number[N]](t *testing.T, a int64, b int64) {
	var (
		x = Of[N](a)
		y = Of[N](b)
	)
	//
	if r := x.Add(y); r.Cmp(Of[N](a+b)) != 0 {
		t.Errorf("%d + %d = %s", a, b, r.String())
	}
	//
	if r := x.Sub(y); r.Cmp(Of[N](a-b)) != 0 {
		t.Errorf("%d - %d = %s", a, b, r.String())
	}
	//
	if r := x.Mul(y); r.Cmp(Of[N](a*b)) != 0 {
		t.Errorf("%d * %d = %s", a, b, r.String())
	}
	//
	if r := x.Neg(); r.Cmp(Of[N](-a)) != 0 {
		t.Errorf("-%d = %s", a, r.String())
	}
	//
	if x.Sub(x).Sign() != 0 || !x.Sub(x).IsZero() {
		t.Errorf("%d - %d is not zero", a, a)
	}
}

func checkDiv(t *testing.T, a int64, b int64, expected int64) {
	if r := NewZ(a).Div(NewZ(b)); r.Cmp(NewZ(expected)) != 0 {
		t.Errorf("%d / %d = %s (expected %d)", a, b, r.String(), expected)
	}
}

func checkParse[N Number[N]](t *testing.T, text string, expected string, valid bool) {
	var n N
	//
	val, ok := n.Parse(text)
	//
	if ok != valid {
		t.Errorf("parsing \"%s\" gave %t", text, ok)
	} else if ok && val.String() != expected {
		t.Errorf("parsing \"%s\" gave %s (expected %s)", text, val.String(), expected)
	}
}
