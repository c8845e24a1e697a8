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
	"slices"
	"strings"

	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// BasicBlock is a labelled sequence of statements with no internal control
// flow.  Control leaves a block for any one of its successors.
type BasicBlock[N number.Number[N]] struct {
	label      string
	statements []Statement[N]
	succs      []string
	preds      []string
}

// NewBasicBlock constructs an empty block with a given label.
func NewBasicBlock[N number.Number[N]](label string) *BasicBlock[N] {
	return &BasicBlock[N]{label, nil, nil, nil}
}

// Label returns the label of this block.
func (p *BasicBlock[N]) Label() string {
	return p.label
}

// Len returns the number of statements in this block.
func (p *BasicBlock[N]) Len() uint {
	return uint(len(p.statements))
}

// Statements returns the statements of this block, in order.
func (p *BasicBlock[N]) Statements() []Statement[N] {
	return p.statements
}

// Successors returns the labels of the blocks which control may flow to from
// this block.
func (p *BasicBlock[N]) Successors() []string {
	return p.succs
}

// Predecessors returns the labels of the blocks from which control may flow to
// this block.
func (p *BasicBlock[N]) Predecessors() []string {
	return p.preds
}

// Insert appends a given statement to this block.
func (p *BasicBlock[N]) Insert(stmt Statement[N]) {
	p.statements = append(p.statements, stmt)
}

// BinOp appends a statement "z = x op y".
func (p *BasicBlock[N]) BinOp(op BinaryOperator, z variable.Variable, x linear.Expression[N],
	y linear.Expression[N]) {
	p.Insert(&BinaryOp[N]{op, z, x, y})
}

// Add appends a statement "z = x + y".
func (p *BasicBlock[N]) Add(z variable.Variable, x linear.Expression[N], y linear.Expression[N]) {
	p.BinOp(Add, z, x, y)
}

// Sub appends a statement "z = x - y".
func (p *BasicBlock[N]) Sub(z variable.Variable, x linear.Expression[N], y linear.Expression[N]) {
	p.BinOp(Sub, z, x, y)
}

// Mul appends a statement "z = x * y".
func (p *BasicBlock[N]) Mul(z variable.Variable, x linear.Expression[N], y linear.Expression[N]) {
	p.BinOp(Mul, z, x, y)
}

// Assign appends a statement "x = e".
func (p *BasicBlock[N]) Assign(x variable.Variable, e linear.Expression[N]) {
	p.Insert(&Assign[N]{x, e})
}

// Assume appends a statement "assume(c)".
func (p *BasicBlock[N]) Assume(c linear.Constraint[N]) {
	p.Insert(&Assume[N]{c})
}

// Havoc appends a statement "havoc(x)".
func (p *BasicBlock[N]) Havoc(x variable.Variable) {
	p.Insert(&Havoc[N]{x})
}

// Unreachable appends an unreachable statement.
func (p *BasicBlock[N]) Unreachable() {
	p.Insert(&Unreachable[N]{})
}

// ArrayInit appends an array initialisation.
func (p *BasicBlock[N]) ArrayInit(a variable.Variable) {
	p.Insert(&ArrayInit[N]{a})
}

// ArrayStore appends a statement "a[i] = v".
func (p *BasicBlock[N]) ArrayStore(a variable.Variable, i linear.Expression[N], v linear.Expression[N],
	singleton bool) {
	p.Insert(&ArrayStore[N]{a, i, v, singleton})
}

// ArrayLoad appends a statement "x = a[i]".
func (p *BasicBlock[N]) ArrayLoad(x variable.Variable, a variable.Variable, i linear.Expression[N]) {
	p.Insert(&ArrayLoad[N]{x, a, i})
}

// PtrStore appends a statement "*p = x".
func (p *BasicBlock[N]) PtrStore(ptr variable.Variable, x variable.Variable) {
	p.Insert(&PtrStore[N]{ptr, x})
}

// PtrLoad appends a statement "x = *p".
func (p *BasicBlock[N]) PtrLoad(x variable.Variable, ptr variable.Variable) {
	p.Insert(&PtrLoad[N]{x, ptr})
}

// PtrAssign appends a statement "p = q + offset".
func (p *BasicBlock[N]) PtrAssign(lhs variable.Variable, ptr variable.Variable, offset linear.Expression[N]) {
	p.Insert(&PtrAssign[N]{lhs, ptr, offset})
}

// PtrObject appends a statement "p = &obj".
func (p *BasicBlock[N]) PtrObject(lhs variable.Variable, object uint) {
	p.Insert(&PtrObject[N]{lhs, object})
}

// PtrFunction appends a statement "p = &f".
func (p *BasicBlock[N]) PtrFunction(lhs variable.Variable, fn string) {
	p.Insert(&PtrFunction[N]{lhs, fn})
}

// Call appends a call statement, whose result (if any) is assigned to lhs.
func (p *BasicBlock[N]) Call(lhs util.Option[variable.Variable], fn string, args ...variable.Variable) {
	p.Insert(&CallSite[N]{lhs, fn, args})
}

// Return appends a return statement.
func (p *BasicBlock[N]) Return(x variable.Variable) {
	p.Insert(&Return[N]{x})
}

func (p *BasicBlock[N]) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.label)
	builder.WriteString(":\n")
	//
	for _, stmt := range p.statements {
		builder.WriteString("  ")
		builder.WriteString(stmt.String())
		builder.WriteString(";\n")
	}
	//
	if len(p.succs) > 0 {
		builder.WriteString("  goto ")
		builder.WriteString(strings.Join(p.succs, ","))
		builder.WriteString(";\n")
	}
	//
	return builder.String()
}

func (p *BasicBlock[N]) addSuccessor(label string) {
	if !slices.Contains(p.succs, label) {
		p.succs = append(p.succs, label)
	}
}

func (p *BasicBlock[N]) addPredecessor(label string) {
	if !slices.Contains(p.preds, label) {
		p.preds = append(p.preds, label)
	}
}
