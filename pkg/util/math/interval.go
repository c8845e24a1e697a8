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

// INFINITY represents the interval which contains every integer.
var INFINITY = Interval{NegInfinity, PosInfinity}

// Interval represents a non-empty interval of integers [min, max], where
// either bound may be infinite.  The empty interval is not representable and
// operations which could produce it (e.g. Meet) report this separately.
type Interval struct {
	min InfInt
	max InfInt
}

// NewInterval constructs an interval from its bounds.  This panics if the
// bounds describe an empty interval.
func NewInterval(min InfInt, max InfInt) Interval {
	if min.Cmp(max) > 0 || min.Cmp(PosInfinity) == 0 || max.Cmp(NegInfinity) == 0 {
		panic(util.InvariantViolation(fmt.Sprintf("invalid interval [%s, %s]", min, max)))
	}
	//
	return Interval{min, max}
}

// NewInterval64 constructs a finite interval from machine integer bounds.
func NewInterval64(min int64, max int64) Interval {
	return NewInterval(Finite64(min), Finite64(max))
}

// Singleton constructs an interval containing exactly one value.
func Singleton(val number.Z) Interval {
	return Interval{Finite(val), Finite(val)}
}

// MinValue returns the least value in this interval.
func (p Interval) MinValue() InfInt {
	return p.min
}

// MaxValue returns the greatest value in this interval.
func (p Interval) MaxValue() InfInt {
	return p.max
}

// IsFinite determines whether both bounds of this interval are finite.
func (p Interval) IsFinite() bool {
	return p.min.IsFinite() && p.max.IsFinite()
}

// IsTop determines whether this interval contains every integer.
func (p Interval) IsTop() bool {
	return !p.min.IsFinite() && !p.max.IsFinite()
}

// Constant returns the only value of this interval, if it is a singleton.
func (p Interval) Constant() (number.Z, bool) {
	if p.min.IsFinite() && p.min.Cmp(p.max) == 0 {
		return p.min.IntVal(), true
	}
	//
	return number.Z{}, false
}

// Equal checks whether two intervals have the same bounds.
func (p Interval) Equal(other Interval) bool {
	return p.min.Cmp(other.min) == 0 && p.max.Cmp(other.max) == 0
}

// Add two intervals together.
func (p Interval) Add(other Interval) Interval {
	return Interval{p.min.Add(other.min), p.max.Add(other.max)}
}

// Sub subtracts another interval from this interval.
func (p Interval) Sub(other Interval) Interval {
	return Interval{p.min.Sub(other.max), p.max.Sub(other.min)}
}

// Neg negates this interval.
func (p Interval) Neg() Interval {
	return Interval{p.max.Negate(), p.min.Negate()}
}

// Mul multiplies this interval by another.
func (p Interval) Mul(other Interval) Interval {
	x1 := p.min.Mul(other.min)
	x2 := p.min.Mul(other.max)
	x3 := p.max.Mul(other.min)
	x4 := p.max.Mul(other.max)
	//
	return Interval{x1.Min(x2).Min(x3).Min(x4), x1.Max(x2).Max(x3).Max(x4)}
}

// Scale multiplies this interval by a constant.
func (p Interval) Scale(k number.Z) Interval {
	return p.Mul(Singleton(k))
}

// Div divides this interval by a non-zero constant, rounding towards zero.
func (p Interval) Div(k number.Z) Interval {
	if k.IsZero() {
		panic(util.InvariantViolation("interval division by zero"))
	}
	//
	lo, hi := p.min.TruncDiv(k), p.max.TruncDiv(k)
	//
	if k.Sign() < 0 {
		return Interval{hi, lo}
	}
	//
	return Interval{lo, hi}
}

// Meet returns the intersection of this interval and another, or false when
// they are disjoint.
func (p Interval) Meet(other Interval) (Interval, bool) {
	lo, hi := p.min.Max(other.min), p.max.Min(other.max)
	//
	if lo.Cmp(hi) > 0 {
		return Interval{}, false
	}
	//
	return Interval{lo, hi}, true
}

func (p Interval) String() string {
	return fmt.Sprintf("[%s, %s]", p.min.String(), p.max.String())
}
