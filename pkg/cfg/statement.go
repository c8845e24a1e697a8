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
	"strings"

	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/variable"
)

// Kind identifies the variant of a statement.
type Kind uint8

const (
	// BinaryOpKind identifies a BinaryOp statement.
	BinaryOpKind Kind = iota
	// AssignKind identifies an Assign statement.
	AssignKind
	// AssumeKind identifies an Assume statement.
	AssumeKind
	// HavocKind identifies a Havoc statement.
	HavocKind
	// UnreachableKind identifies an Unreachable statement.
	UnreachableKind
	// ArrayInitKind identifies an ArrayInit statement.
	ArrayInitKind
	// ArrayStoreKind identifies an ArrayStore statement.
	ArrayStoreKind
	// ArrayLoadKind identifies an ArrayLoad statement.
	ArrayLoadKind
	// PtrStoreKind identifies a PtrStore statement.
	PtrStoreKind
	// PtrLoadKind identifies a PtrLoad statement.
	PtrLoadKind
	// PtrAssignKind identifies a PtrAssign statement.
	PtrAssignKind
	// PtrObjectKind identifies a PtrObject statement.
	PtrObjectKind
	// PtrFunctionKind identifies a PtrFunction statement.
	PtrFunctionKind
	// CallSiteKind identifies a CallSite statement.
	CallSiteKind
	// ReturnKind identifies a Return statement.
	ReturnKind
)

// NumKinds is the number of distinct statement kinds.
const NumKinds = uint(ReturnKind) + 1

var kindNames = [...]string{
	"binop", "assign", "assume", "havoc", "unreachable", "array-init", "array-store", "array-load",
	"ptr-store", "ptr-load", "ptr-assign", "ptr-object", "ptr-function", "call", "return",
}

func (p Kind) String() string {
	if uint(p) >= NumKinds {
		panic(util.InvariantViolation(fmt.Sprintf("unknown statement kind (%d)", p)))
	}
	//
	return kindNames[p]
}

// Statement represents a single statement within a basic block.  The set of
// statements is closed: every implementation is defined in this package.
type Statement[N number.Number[N]] interface {
	// Kind returns the variant of this statement.
	Kind() Kind
	// Defs returns the set of variables written by this statement.
	Defs() *variable.Set
	// Uses returns the set of variables read by this statement.
	Uses() *variable.Set
	// String returns a textual representation of this statement.
	String() string
	// Marker preventing implementations outside this package.
	isStatement()
}

// BinaryOp represents a statement "z = x op y".  Front ends are expected to
// generate operands which are either variables or constants.
type BinaryOp[N number.Number[N]] struct {
	Op    BinaryOperator
	Lhs   variable.Variable
	Left  linear.Expression[N]
	Right linear.Expression[N]
}

// Assign represents a statement "x = e".
type Assign[N number.Number[N]] struct {
	Lhs variable.Variable
	Rhs linear.Expression[N]
}

// Assume represents a statement which filters out executions on which a given
// constraint does not hold.
type Assume[N number.Number[N]] struct {
	Constraint linear.Constraint[N]
}

// Havoc represents a statement which assigns an arbitrary value to a variable.
type Havoc[N number.Number[N]] struct {
	Var variable.Variable
}

// Unreachable represents a statement which is never executed.
type Unreachable[N number.Number[N]] struct{}

// ArrayInit represents the initialisation of an array.
type ArrayInit[N number.Number[N]] struct {
	Array variable.Variable
}

// ArrayStore represents a statement "a[i] = v".  A singleton store is one
// where the array is known to have exactly one element.
type ArrayStore[N number.Number[N]] struct {
	Array     variable.Variable
	Index     linear.Expression[N]
	Value     linear.Expression[N]
	Singleton bool
}

// ArrayLoad represents a statement "x = a[i]".
type ArrayLoad[N number.Number[N]] struct {
	Lhs   variable.Variable
	Array variable.Variable
	Index linear.Expression[N]
}

// PtrStore represents a statement "*p = x".
type PtrStore[N number.Number[N]] struct {
	Ptr   variable.Variable
	Value variable.Variable
}

// PtrLoad represents a statement "x = *p".
type PtrLoad[N number.Number[N]] struct {
	Lhs variable.Variable
	Ptr variable.Variable
}

// PtrAssign represents a statement "p = q + offset".
type PtrAssign[N number.Number[N]] struct {
	Lhs    variable.Variable
	Ptr    variable.Variable
	Offset linear.Expression[N]
}

// PtrObject represents a statement "p = &obj", where objects are identified
// by number.
type PtrObject[N number.Number[N]] struct {
	Lhs    variable.Variable
	Object uint
}

// PtrFunction represents a statement "p = &f" for some function f.
type PtrFunction[N number.Number[N]] struct {
	Lhs      variable.Variable
	Function string
}

// CallSite represents a call "r = f(x1,...,xn)", where the result is
// optional.
type CallSite[N number.Number[N]] struct {
	Lhs      util.Option[variable.Variable]
	Function string
	Args     []variable.Variable
}

// Return represents a statement returning a given variable.
type Return[N number.Number[N]] struct {
	Var variable.Variable
}

// ============================================================================
// Kind
// ============================================================================

// Kind implementation for Statement interface.
func (p *BinaryOp[N]) Kind() Kind { return BinaryOpKind }

// Kind implementation for Statement interface.
func (p *Assign[N]) Kind() Kind { return AssignKind }

// Kind implementation for Statement interface.
func (p *Assume[N]) Kind() Kind { return AssumeKind }

// Kind implementation for Statement interface.
func (p *Havoc[N]) Kind() Kind { return HavocKind }

// Kind implementation for Statement interface.
func (p *Unreachable[N]) Kind() Kind { return UnreachableKind }

// Kind implementation for Statement interface.
func (p *ArrayInit[N]) Kind() Kind { return ArrayInitKind }

// Kind implementation for Statement interface.
func (p *ArrayStore[N]) Kind() Kind { return ArrayStoreKind }

// Kind implementation for Statement interface.
func (p *ArrayLoad[N]) Kind() Kind { return ArrayLoadKind }

// Kind implementation for Statement interface.
func (p *PtrStore[N]) Kind() Kind { return PtrStoreKind }

// Kind implementation for Statement interface.
func (p *PtrLoad[N]) Kind() Kind { return PtrLoadKind }

// Kind implementation for Statement interface.
func (p *PtrAssign[N]) Kind() Kind { return PtrAssignKind }

// Kind implementation for Statement interface.
func (p *PtrObject[N]) Kind() Kind { return PtrObjectKind }

// Kind implementation for Statement interface.
func (p *PtrFunction[N]) Kind() Kind { return PtrFunctionKind }

// Kind implementation for Statement interface.
func (p *CallSite[N]) Kind() Kind { return CallSiteKind }

// Kind implementation for Statement interface.
func (p *Return[N]) Kind() Kind { return ReturnKind }

// ============================================================================
// Defs
// ============================================================================

// Defs implementation for Statement interface.
func (p *BinaryOp[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *Assign[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *Assume[N]) Defs() *variable.Set { return variable.NewSet() }

// Defs implementation for Statement interface.
func (p *Havoc[N]) Defs() *variable.Set { return variable.NewSet(p.Var) }

// Defs implementation for Statement interface.
func (p *Unreachable[N]) Defs() *variable.Set { return variable.NewSet() }

// Defs implementation for Statement interface.
func (p *ArrayInit[N]) Defs() *variable.Set { return variable.NewSet(p.Array) }

// Defs implementation for Statement interface.
func (p *ArrayStore[N]) Defs() *variable.Set { return variable.NewSet(p.Array) }

// Defs implementation for Statement interface.
func (p *ArrayLoad[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *PtrStore[N]) Defs() *variable.Set { return variable.NewSet() }

// Defs implementation for Statement interface.
func (p *PtrLoad[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *PtrAssign[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *PtrObject[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *PtrFunction[N]) Defs() *variable.Set { return variable.NewSet(p.Lhs) }

// Defs implementation for Statement interface.
func (p *CallSite[N]) Defs() *variable.Set {
	if lhs, ok := p.Lhs.Get(); ok {
		return variable.NewSet(lhs)
	}
	//
	return variable.NewSet()
}

// Defs implementation for Statement interface.
func (p *Return[N]) Defs() *variable.Set { return variable.NewSet() }

// ============================================================================
// Uses
// ============================================================================

// Uses implementation for Statement interface.
func (p *BinaryOp[N]) Uses() *variable.Set {
	return p.Left.Variables().Union(p.Right.Variables())
}

// Uses implementation for Statement interface.
func (p *Assign[N]) Uses() *variable.Set { return p.Rhs.Variables() }

// Uses implementation for Statement interface.
func (p *Assume[N]) Uses() *variable.Set { return p.Constraint.Variables() }

// Uses implementation for Statement interface.
func (p *Havoc[N]) Uses() *variable.Set { return variable.NewSet() }

// Uses implementation for Statement interface.
func (p *Unreachable[N]) Uses() *variable.Set { return variable.NewSet() }

// Uses implementation for Statement interface.
func (p *ArrayInit[N]) Uses() *variable.Set { return variable.NewSet() }

// Uses implementation for Statement interface.
func (p *ArrayStore[N]) Uses() *variable.Set {
	uses := p.Index.Variables().Union(p.Value.Variables())
	uses.Insert(p.Array)
	//
	return uses
}

// Uses implementation for Statement interface.
func (p *ArrayLoad[N]) Uses() *variable.Set {
	uses := p.Index.Variables()
	uses.Insert(p.Array)
	//
	return uses
}

// Uses implementation for Statement interface.
func (p *PtrStore[N]) Uses() *variable.Set { return variable.NewSet(p.Ptr, p.Value) }

// Uses implementation for Statement interface.
func (p *PtrLoad[N]) Uses() *variable.Set { return variable.NewSet(p.Ptr) }

// Uses implementation for Statement interface.
func (p *PtrAssign[N]) Uses() *variable.Set {
	uses := p.Offset.Variables()
	uses.Insert(p.Ptr)
	//
	return uses
}

// Uses implementation for Statement interface.
func (p *PtrObject[N]) Uses() *variable.Set { return variable.NewSet() }

// Uses implementation for Statement interface.
func (p *PtrFunction[N]) Uses() *variable.Set { return variable.NewSet() }

// Uses implementation for Statement interface.
func (p *CallSite[N]) Uses() *variable.Set { return variable.NewSet(p.Args...) }

// Uses implementation for Statement interface.
func (p *Return[N]) Uses() *variable.Set { return variable.NewSet(p.Var) }

// ============================================================================
// String
// ============================================================================

func (p *BinaryOp[N]) String() string {
	return fmt.Sprintf("%s = %s%s%s", p.Lhs, p.Left.String(), p.Op.Symbol(), p.Right.String())
}

func (p *Assign[N]) String() string {
	return fmt.Sprintf("%s = %s", p.Lhs, p.Rhs.String())
}

func (p *Assume[N]) String() string {
	return fmt.Sprintf("assume(%s)", p.Constraint.String())
}

func (p *Havoc[N]) String() string {
	return fmt.Sprintf("havoc(%s)", p.Var)
}

func (p *Unreachable[N]) String() string {
	return "unreachable"
}

func (p *ArrayInit[N]) String() string {
	return fmt.Sprintf("array_init(%s)", p.Array)
}

func (p *ArrayStore[N]) String() string {
	if p.Singleton {
		return fmt.Sprintf("array_store(%s,%s,%s,singleton)", p.Array, p.Index.String(), p.Value.String())
	}
	//
	return fmt.Sprintf("array_store(%s,%s,%s)", p.Array, p.Index.String(), p.Value.String())
}

func (p *ArrayLoad[N]) String() string {
	return fmt.Sprintf("%s = array_load(%s,%s)", p.Lhs, p.Array, p.Index.String())
}

func (p *PtrStore[N]) String() string {
	return fmt.Sprintf("*(%s) = %s", p.Ptr, p.Value)
}

func (p *PtrLoad[N]) String() string {
	return fmt.Sprintf("%s = *(%s)", p.Lhs, p.Ptr)
}

func (p *PtrAssign[N]) String() string {
	return fmt.Sprintf("%s = &(%s) + %s", p.Lhs, p.Ptr, p.Offset.String())
}

func (p *PtrObject[N]) String() string {
	return fmt.Sprintf("%s = &(%d)", p.Lhs, p.Object)
}

func (p *PtrFunction[N]) String() string {
	return fmt.Sprintf("%s = &(%s)", p.Lhs, p.Function)
}

func (p *CallSite[N]) String() string {
	var (
		builder strings.Builder
		args    = make([]string, len(p.Args))
	)
	//
	for i, arg := range p.Args {
		args[i] = arg.Name()
	}
	//
	if lhs, ok := p.Lhs.Get(); ok {
		builder.WriteString(fmt.Sprintf("%s = ", lhs))
	}
	//
	builder.WriteString(fmt.Sprintf("call %s(%s)", p.Function, strings.Join(args, ",")))
	//
	return builder.String()
}

func (p *Return[N]) String() string {
	return fmt.Sprintf("return %s", p.Var)
}

// ============================================================================
// Marker
// ============================================================================

func (p *BinaryOp[N]) isStatement()    {}
func (p *Assign[N]) isStatement()      {}
func (p *Assume[N]) isStatement()      {}
func (p *Havoc[N]) isStatement()       {}
func (p *Unreachable[N]) isStatement() {}
func (p *ArrayInit[N]) isStatement()   {}
func (p *ArrayStore[N]) isStatement()  {}
func (p *ArrayLoad[N]) isStatement()   {}
func (p *PtrStore[N]) isStatement()    {}
func (p *PtrLoad[N]) isStatement()     {}
func (p *PtrAssign[N]) isStatement()   {}
func (p *PtrObject[N]) isStatement()   {}
func (p *PtrFunction[N]) isStatement() {}
func (p *CallSite[N]) isStatement()    {}
func (p *Return[N]) isStatement()      {}
