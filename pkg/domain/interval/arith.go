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
package interval

import (
	"math/big"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/util/math"
	"github.com/consensys/go-crab/pkg/util/number"
)

// Shift amounts beyond this are treated as unknown.
const maxShift = 1024

var zero = math.Finite64(0)

// Evaluate a binary operator over intervals.  This returns false when nothing
// useful can be said about the result, in which case the result should be
// treated as unbounded.
func evalBinary(op cfg.BinaryOperator, x math.Interval, y math.Interval) (math.Interval, bool) {
	switch op {
	case cfg.Add:
		return x.Add(y), true
	case cfg.Sub:
		return x.Sub(y), true
	case cfg.Mul:
		return x.Mul(y), true
	case cfg.SDiv:
		if k, ok := nonZeroConstant(y); ok {
			return x.Div(k), true
		}
	case cfg.UDiv:
		if k, ok := nonZeroConstant(y); ok && k.Sign() > 0 && nonNegative(x) {
			return x.Div(k), true
		}
	case cfg.SRem:
		if k, ok := nonZeroConstant(y); ok {
			return remainder(x, k), true
		}
	case cfg.URem:
		if k, ok := nonZeroConstant(y); ok && k.Sign() > 0 && nonNegative(x) {
			return remainder(x, k), true
		}
	case cfg.And:
		if nonNegative(x) && nonNegative(y) {
			return math.NewInterval(zero, x.MaxValue().Min(y.MaxValue())), true
		}
	case cfg.Shl:
		if k, ok := shiftAmount(y); ok {
			return x.Scale(pow2(k)), true
		}
	case cfg.AShr:
		if k, ok := shiftAmount(y); ok {
			d := pow2(k)
			return math.NewInterval(x.MinValue().FloorDiv(d), x.MaxValue().FloorDiv(d)), true
		}
	case cfg.LShr:
		if k, ok := shiftAmount(y); ok && nonNegative(x) {
			return x.Div(pow2(k)), true
		}
	}
	//
	return math.INFINITY, false
}

// Remainder of truncated division by a constant k has magnitude below |k| and
// takes the sign of the dividend.
func remainder(x math.Interval, k number.Z) math.Interval {
	if k.Sign() < 0 {
		k = k.Neg()
	}
	//
	bound := math.Finite(k.Sub(number.NewZ(1)))
	//
	switch {
	case nonNegative(x):
		return math.NewInterval(zero, bound)
	case x.MaxValue().Sign() <= 0:
		return math.NewInterval(bound.Negate(), zero)
	default:
		return math.NewInterval(bound.Negate(), bound)
	}
}

func nonNegative(x math.Interval) bool {
	return x.MinValue().Sign() >= 0
}

func nonZeroConstant(x math.Interval) (number.Z, bool) {
	k, ok := x.Constant()
	//
	return k, ok && !k.IsZero()
}

func shiftAmount(x math.Interval) (uint, bool) {
	k, ok := x.Constant()
	if !ok {
		return 0, false
	}
	//
	n, ok := k.Int64()
	//
	return uint(n), ok && n >= 0 && n <= maxShift
}

func pow2(k uint) number.Z {
	var val big.Int
	//
	return number.NewZFromBig(val.Lsh(big.NewInt(1), k))
}
