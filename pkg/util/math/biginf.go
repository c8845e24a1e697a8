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
	"fmt"

	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
)

const notAnInfinity = 0
const negativeInfinity = 1
const positiveInfinity = 2

// PosInfinity represents positive infinity
var PosInfinity = InfInt{number.Z{}, positiveInfinity}

// NegInfinity represents negative infinity
var NegInfinity = InfInt{number.Z{}, negativeInfinity}

// InfInt represents an unbound (i.e. big) integer value which can,
// additionally, be either negative infinity or positive infinity.  These are
// used as the bounds of intervals.
type InfInt struct {
	// value of this integer, which is meaningless for an infinity.
	val number.Z
	// sign indicates whether we are not an infinity, or are negative infinity
	// or positive infinity.
	sign uint8
}

// Finite constructs a finite value.
func Finite(val number.Z) InfInt {
	return InfInt{val, notAnInfinity}
}

// Finite64 constructs a finite value from a machine integer.
func Finite64(val int64) InfInt {
	return InfInt{number.NewZ(val), notAnInfinity}
}

// Add two (potentially infinite) integers together.  Adding infinities of
// opposite sign is undefined, and panics.
func (p InfInt) Add(other InfInt) InfInt {
	switch {
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		return InfInt{p.val.Add(other.val), notAnInfinity}
	case p.sign == notAnInfinity:
		return other
	case other.sign == notAnInfinity || p.sign == other.sign:
		return p
	default:
		panic(util.InvariantViolation("adding infinities of opposite sign"))
	}
}

// Sub subtracts a (potentially infinite) value from this (potentially infinite)
// value.
func (p InfInt) Sub(other InfInt) InfInt {
	return p.Add(other.Negate())
}

// Cmp performs a comparison of two (potentially infinite) integer values.
func (p InfInt) Cmp(o InfInt) int {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		return p.val.Cmp(o.val)
	case p.sign == o.sign:
		return 0
	case p.sign == negativeInfinity || o.sign == positiveInfinity:
		return -1
	default:
		return 1
	}
}

// IntVal converts a potentially infinite integer into a finite value.  This
// will panic if this value is an infinity.
func (p InfInt) IntVal() number.Z {
	if p.sign != notAnInfinity {
		panic(util.InvariantViolation("cannot cast infinity into an integer"))
	}
	//
	return p.val
}

// IsFinite returns true if this represents a finite integer value.
func (p InfInt) IsFinite() bool {
	return p.sign == notAnInfinity
}

// Sign returns -1, 0 or 1 depending on whether this value is negative, zero
// or positive.
func (p InfInt) Sign() int {
	switch p.sign {
	case negativeInfinity:
		return -1
	case positiveInfinity:
		return 1
	default:
		return p.val.Sign()
	}
}

// Min determines the least of two values.
func (p InfInt) Min(o InfInt) InfInt {
	if p.Cmp(o) <= 0 {
		return p
	}
	//
	return o
}

// Max determines the greatest of two values.
func (p InfInt) Max(o InfInt) InfInt {
	if p.Cmp(o) >= 0 {
		return p
	}
	//
	return o
}

// Mul multiplies a (potentially infinite) value against this (potentially
// infinite) value.  Multiplying an infinity by zero gives zero, as is usual
// for interval bounds.
func (p InfInt) Mul(o InfInt) InfInt {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		return InfInt{p.val.Mul(o.val), notAnInfinity}
	case p.Sign() == 0 || o.Sign() == 0:
		return Finite64(0)
	case p.Sign() == o.Sign():
		return PosInfinity
	default:
		return NegInfinity
	}
}

// Negate this (potentially infinite) integer.
func (p InfInt) Negate() InfInt {
	switch p.sign {
	case positiveInfinity:
		return NegInfinity
	case negativeInfinity:
		return PosInfinity
	default:
		return InfInt{p.val.Neg(), notAnInfinity}
	}
}

// FloorDiv divides this value by a non-zero constant, rounding towards negative
// infinity.
func (p InfInt) FloorDiv(k number.Z) InfInt {
	if p.sign != notAnInfinity {
		return p.Mul(Finite(k))
	}
	//
	q, r := p.val.Div(k), p.val.Rem(k)
	//
	if !r.IsZero() && r.Sign() != k.Sign() {
		q = q.Sub(number.NewZ(1))
	}
	//
	return Finite(q)
}

// CeilDiv divides this value by a non-zero constant, rounding towards positive
// infinity.
func (p InfInt) CeilDiv(k number.Z) InfInt {
	if p.sign != notAnInfinity {
		return p.Mul(Finite(k))
	}
	//
	q, r := p.val.Div(k), p.val.Rem(k)
	//
	if !r.IsZero() && r.Sign() == k.Sign() {
		q = q.Add(number.NewZ(1))
	}
	//
	return Finite(q)
}

// TruncDiv divides this value by a non-zero constant, rounding towards zero.
func (p InfInt) TruncDiv(k number.Z) InfInt {
	if p.sign != notAnInfinity {
		return p.Mul(Finite(k))
	}
	//
	return Finite(p.val.Div(k))
}

func (p InfInt) String() string {
	switch p.sign {
	case negativeInfinity:
		return "-oo"
	case positiveInfinity:
		return "+oo"
	default:
		return p.val.String()
	}
}

// GoString is used when printing values with %#v.
func (p InfInt) GoString() string {
	return fmt.Sprintf("InfInt(%s)", p.String())
}
