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
	"math/big"
	"strings"
)

// Q represents an arbitrary precision rational number.  As for Z, a nil value
// represents zero and the underlying value is never modified.
type Q struct {
	val *big.Rat
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Number[Q] = Q{}

// NewQ constructs the rational number a/b.  This panics if b is zero.
func NewQ(a int64, b int64) Q {
	return Q{big.NewRat(a, b)}
}

// Add implementation for the Number interface.
func (p Q) Add(o Q) Q {
	var res big.Rat
	//
	return Q{res.Add(p.rat(), o.rat())}
}

// Sub implementation for the Number interface.
func (p Q) Sub(o Q) Q {
	var res big.Rat
	//
	return Q{res.Sub(p.rat(), o.rat())}
}

// Mul implementation for the Number interface.
func (p Q) Mul(o Q) Q {
	var res big.Rat
	//
	return Q{res.Mul(p.rat(), o.rat())}
}

// Div implementation for the Number interface.
func (p Q) Div(o Q) Q {
	var res big.Rat
	//
	if o.IsZero() {
		panic("rational division by zero")
	}
	//
	return Q{res.Quo(p.rat(), o.rat())}
}

// Neg implementation for the Number interface.
func (p Q) Neg() Q {
	var res big.Rat
	//
	return Q{res.Neg(p.rat())}
}

// Cmp implementation for the Number interface.
func (p Q) Cmp(o Q) int {
	return p.rat().Cmp(o.rat())
}

// Sign implementation for the Number interface.
func (p Q) Sign() int {
	if p.val == nil {
		return 0
	}
	//
	return p.val.Sign()
}

// IsZero implementation for the Number interface.
func (p Q) IsZero() bool {
	return p.Sign() == 0
}

// FromInt64 implementation for the Number interface.
func (p Q) FromInt64(val int64) Q {
	return NewQ(val, 1)
}

// Parse implementation for the Number interface.  Fractions ("1/3") and
// decimals ("0.25") are both accepted, always in base ten.
func (p Q) Parse(text string) (Q, bool) {
	var val big.Rat
	//
	if num, den, ok := strings.Cut(text, "/"); ok {
		var n, d big.Int
		//
		if !decimalDigits(num, true) || !decimalDigits(den, false) {
			return Q{}, false
		} else if _, ok := n.SetString(num, 10); !ok {
			return Q{}, false
		} else if _, ok := d.SetString(den, 10); !ok || d.Sign() == 0 {
			return Q{}, false
		}
		//
		val.SetFrac(&n, &d)
	} else if !decimalDigits(text, true) && !isDecimal(text) {
		return Q{}, false
	} else if _, ok := val.SetString(text); !ok {
		return Q{}, false
	}
	//
	return Q{&val}, true
}

// decimalDigits checks text is a non-empty run of decimal digits, optionally
// preceded by a minus sign.
func decimalDigits(text string, signed bool) bool {
	if signed {
		text = strings.TrimPrefix(text, "-")
	}
	//
	if text == "" {
		return false
	}
	//
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	//
	return true
}

// isDecimal checks text has the form "[-]d*.d*" with at least one digit.
func isDecimal(text string) bool {
	whole, frac, ok := strings.Cut(strings.TrimPrefix(text, "-"), ".")
	//
	if !ok || whole+frac == "" {
		return false
	}
	//
	return (whole == "" || decimalDigits(whole, false)) && (frac == "" || decimalDigits(frac, false))
}

// Integral implementation for the Number interface.
func (p Q) Integral() bool {
	return false
}

func (p Q) String() string {
	return p.rat().RatString()
}

var ratZero big.Rat

func (p Q) rat() *big.Rat {
	if p.val == nil {
		return &ratZero
	}
	//
	return p.val
}
