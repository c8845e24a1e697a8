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
package cfg

import (
	"fmt"

	"github.com/consensys/go-crab/pkg/util"
)

// BinaryOperator identifies the arithmetic or bitwise operation performed by a
// binary operation statement.
type BinaryOperator uint8

const (
	// Add represents integer addition.
	Add BinaryOperator = iota
	// Sub represents integer subtraction.
	Sub
	// Mul represents integer multiplication.
	Mul
	// SDiv represents signed integer division.
	SDiv
	// UDiv represents unsigned integer division.
	UDiv
	// SRem represents signed remainder.
	SRem
	// URem represents unsigned remainder.
	URem
	// And represents bitwise conjunction.
	And
	// Or represents bitwise disjunction.
	Or
	// Xor represents bitwise exclusive or.
	Xor
	// Shl represents a left shift.
	Shl
	// LShr represents a logical right shift.
	LShr
	// AShr represents an arithmetic right shift.
	AShr
)

type operatorInfo struct {
	name   string
	symbol string
}

var operators = [...]operatorInfo{
	{"add", "+"}, {"sub", "-"}, {"mul", "*"}, {"sdiv", "/"}, {"udiv", "/_u"}, {"srem", "%"},
	{"urem", "%_u"}, {"and", "&"}, {"or", "|"}, {"xor", "^"}, {"shl", "<<"}, {"lshr", ">>_l"},
	{"ashr", ">>_a"},
}

// ParseBinaryOperator determines the operator with the given name (e.g.
// "add").
func ParseBinaryOperator(name string) (BinaryOperator, bool) {
	for i, op := range operators {
		if op.name == name {
			return BinaryOperator(i), true
		}
	}
	//
	return Add, false
}

// Name returns the name of this operator, as used in program files.
func (p BinaryOperator) Name() string {
	return p.info().name
}

// Symbol returns the infix symbol used when printing this operator.
func (p BinaryOperator) Symbol() string {
	return p.info().symbol
}

// IsCommutative determines whether the operands of this operator can be
// swapped without affecting the result.
func (p BinaryOperator) IsCommutative() bool {
	switch p {
	case Add, Mul, And, Or, Xor:
		return true
	default:
		return false
	}
}

func (p BinaryOperator) String() string {
	return p.Name()
}

func (p BinaryOperator) info() operatorInfo {
	if int(p) >= len(operators) {
		panic(util.InvariantViolation(fmt.Sprintf("unknown binary operator (%d)", p)))
	}
	//
	return operators[p]
}
