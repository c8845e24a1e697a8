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

// Number captures the arithmetic required of the coefficients and constants
// used in linear expressions.  Implementations are immutable values, such that
// every operation returns a fresh value and never modifies its receiver.  The
// zero value of any implementation must represent the number zero.
type Number[N any] interface {
	// Add returns the sum of this number and another.
	Add(N) N
	// Sub returns the difference of this number and another.
	Sub(N) N
	// Mul returns the product of this number and another.
	Mul(N) N
	// Div returns the quotient of this number and another.  Integral number
	// types truncate towards zero.  Division by zero panics.
	Div(N) N
	// Neg returns the negation of this number.
	Neg() N
	// Cmp returns -1, 0 or 1 depending on whether this number is less than,
	// equal to, or greater than the other.
	Cmp(N) int
	// Sign returns -1, 0 or 1 depending on the sign of this number.
	Sign() int
	// IsZero checks whether this number is zero.
	IsZero() bool
	// FromInt64 constructs a number of this type from a machine integer.  The
	// receiver is ignored, which allows generic code to construct constants
	// from the zero value.
	FromInt64(int64) N
	// Parse a number of this type from its textual representation.
	Parse(string) (N, bool)
	// Integral indicates whether this number type ranges over the integers
	// only.  Certain rewrites (e.g. "x > 0" iff "x >= 1") are only sound in
	// this case.
	Integral() bool
	// String returns a textual representation of this number.
	String() string
}

// Zero returns the number zero of a given type.
func Zero[N Number[N]]() N {
	var n N
	return n.FromInt64(0)
}

// One returns the number one of a given type.
func One[N Number[N]]() N {
	var n N
	return n.FromInt64(1)
}

// MinusOne returns the number minus one of a given type.
func MinusOne[N Number[N]]() N {
	var n N
	return n.FromInt64(-1)
}

// Of constructs a number of a given type from a machine integer.
func Of[N Number[N]](val int64) N {
	var n N
	return n.FromInt64(val)
}

// IsOne checks whether a given number is one.
func IsOne[N Number[N]](n N) bool {
	return n.Cmp(One[N]()) == 0
}
