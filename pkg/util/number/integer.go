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

// Z represents an arbitrary precision integer.  A nil value represents zero,
// hence the zero value of Z is the integer zero.  The underlying big integer is
// never modified once constructed.
type Z struct {
	val *big.Int
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Number[Z] = Z{}

// NewZ constructs an integer from a machine integer.
func NewZ(val int64) Z {
	return Z{big.NewInt(val)}
}

// NewZFromBig constructs an integer from a big integer.  Observe the big
// integer is cloned.
func NewZFromBig(val *big.Int) Z {
	var nval big.Int
	//
	return Z{nval.Set(val)}
}

// BigInt returns a copy of the underlying big integer.
func (p Z) BigInt() *big.Int {
	var val big.Int
	//
	if p.val != nil {
		val.Set(p.val)
	}
	//
	return &val
}

// Int64 returns this integer as a machine integer, along with an indication of
// whether it fits.
func (p Z) Int64() (int64, bool) {
	if p.val == nil {
		return 0, true
	}
	//
	return p.val.Int64(), p.val.IsInt64()
}

// Add implementation for the Number interface.
func (p Z) Add(o Z) Z {
	var res big.Int
	//
	return Z{res.Add(p.big(), o.big())}
}

// Sub implementation for the Number interface.
func (p Z) Sub(o Z) Z {
	var res big.Int
	//
	return Z{res.Sub(p.big(), o.big())}
}

// Mul implementation for the Number interface.
func (p Z) Mul(o Z) Z {
	var res big.Int
	//
	return Z{res.Mul(p.big(), o.big())}
}

// Div implementation for the Number interface.  This uses truncated division
// (i.e. rounding towards zero) as found in most programming languages.
func (p Z) Div(o Z) Z {
	var res big.Int
	//
	if o.IsZero() {
		panic("integer division by zero")
	}
	//
	return Z{res.Quo(p.big(), o.big())}
}

// Rem returns the remainder of truncated division.
func (p Z) Rem(o Z) Z {
	var res big.Int
	//
	if o.IsZero() {
		panic("integer division by zero")
	}
	//
	return Z{res.Rem(p.big(), o.big())}
}

// Neg implementation for the Number interface.
func (p Z) Neg() Z {
	var res big.Int
	//
	return Z{res.Neg(p.big())}
}

// Cmp implementation for the Number interface.
func (p Z) Cmp(o Z) int {
	return p.big().Cmp(o.big())
}

// Sign implementation for the Number interface.
func (p Z) Sign() int {
	if p.val == nil {
		return 0
	}
	//
	return p.val.Sign()
}

// IsZero implementation for the Number interface.
func (p Z) IsZero() bool {
	return p.Sign() == 0
}

// FromInt64 implementation for the Number interface.
func (p Z) FromInt64(val int64) Z {
	return NewZ(val)
}

// Parse implementation for the Number interface.  Both decimal and hexadecimal
// (i.e. "0x" prefixed) notations are accepted.  Other literal prefixes and
// digit separators are not, so "010" is ten.
func (p Z) Parse(text string) (Z, bool) {
	var (
		val  big.Int
		base = 10
		neg  = strings.HasPrefix(text, "-")
	)
	//
	if neg {
		text = text[1:]
	}
	//
	if strings.HasPrefix(text, "0x") {
		text = text[2:]
		base = 16
	}
	// SetString would otherwise accept a second sign or underscores
	if text == "" || text[0] == '-' || text[0] == '+' || strings.ContainsRune(text, '_') {
		return Z{}, false
	} else if _, ok := val.SetString(text, base); !ok {
		return Z{}, false
	}
	//
	if neg {
		val.Neg(&val)
	}
	//
	return Z{&val}, true
}

// Integral implementation for the Number interface.
func (p Z) Integral() bool {
	return true
}

func (p Z) String() string {
	return p.big().String()
}

var bigZero big.Int

func (p Z) big() *big.Int {
	if p.val == nil {
		return &bigZero
	}
	//
	return p.val
}
