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
package analysis

import (
	"fmt"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/domain"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	log "github.com/sirupsen/logrus"
)

// Transformer executes statements over an abstract value of some domain D,
// updating that value in place.  A transformer is not safe for concurrent use.
type Transformer[N number.Number[N], D domain.Numerical[N, D]] struct {
	value D
	stats Stats
}

// New constructs a transformer starting from (a copy of) a given abstract
// value.
func New[N number.Number[N], D domain.Numerical[N, D]](init D) *Transformer[N, D] {
	return &Transformer[N, D]{init.Clone(), Stats{}}
}

// Value returns the current abstract value.
func (p *Transformer[N, D]) Value() D {
	return p.value
}

// Stats returns the statistics gathered so far.
func (p *Transformer[N, D]) Stats() *Stats {
	return &p.stats
}

// ExecBlock executes every statement of a basic block in order, returning the
// resulting abstract value.
func (p *Transformer[N, D]) ExecBlock(block *cfg.BasicBlock[N]) D {
	for _, stmt := range block.Statements() {
		p.Exec(stmt)
	}
	//
	return p.value
}

// Exec executes a single statement.  Once the abstract value is bottom, no
// further statements are applied to it.
func (p *Transformer[N, D]) Exec(stmt cfg.Statement[N]) Outcome {
	var outcome Outcome
	//
	if p.value.IsBottom() {
		outcome = Dead
	} else {
		outcome = p.exec(stmt)
	}
	//
	p.stats.Record(stmt.Kind(), outcome)
	//
	log.WithFields(log.Fields{"kind": stmt.Kind(), "outcome": outcome}).Debugf("%s", stmt)
	//
	return outcome
}

func (p *Transformer[N, D]) exec(stmt cfg.Statement[N]) Outcome {
	switch s := stmt.(type) {
	case *cfg.BinaryOp[N]:
		return p.execBinaryOp(s)
	case *cfg.Assign[N]:
		p.value.Assign(s.Lhs, s.Rhs)
	case *cfg.Assume[N]:
		p.value.AddConstraint(s.Constraint)
	case *cfg.Havoc[N]:
		p.value.Forget(s.Var)
	case *cfg.Unreachable[N]:
		p.value = p.value.Bottom()
	case *cfg.ArrayInit[N], *cfg.ArrayStore[N], *cfg.ArrayLoad[N]:
		return p.execArray(s)
	case *cfg.PtrStore[N], *cfg.PtrLoad[N], *cfg.PtrAssign[N], *cfg.PtrObject[N], *cfg.PtrFunction[N]:
		return p.execPointer(s)
	case *cfg.CallSite[N], *cfg.Return[N]:
		return NoRule
	default:
		panic(util.InvariantViolation(fmt.Sprintf("unknown statement \"%s\"", stmt)))
	}
	//
	return Applied
}

// Execute "z = l op r".  Domains only support the shapes "z = x op y" and "z =
// x op k", hence other shapes are rewritten into something the domain
// understands, or the result is forgotten.
func (p *Transformer[N, D]) execBinaryOp(s *cfg.BinaryOp[N]) Outcome {
	var (
		l, r   = s.Left, s.Right
		lv, lx = l.Variable()
		rv, rx = r.Variable()
	)
	//
	switch {
	case lx && rx:
		p.value.Apply(s.Op, s.Lhs, lv, rv)
		return Applied
	case lx && r.IsConstant():
		p.value.ApplyConst(s.Op, s.Lhs, lv, r.Constant())
		return Applied
	case rx && l.IsConstant() && s.Op.IsCommutative():
		p.value.ApplyConst(s.Op, s.Lhs, rv, l.Constant())
	case s.Op == cfg.Add:
		p.value.Assign(s.Lhs, l.Add(r))
	case s.Op == cfg.Sub:
		p.value.Assign(s.Lhs, l.Sub(r))
	case s.Op == cfg.Mul && r.IsConstant():
		p.value.Assign(s.Lhs, l.Scale(r.Constant()))
	case s.Op == cfg.Mul && l.IsConstant():
		p.value.Assign(s.Lhs, r.Scale(l.Constant()))
	default:
		p.value.Forget(s.Lhs)
	}
	//
	log.Warnf("generalised binary operation \"%s\"", s)
	//
	return Generalised
}

func (p *Transformer[N, D]) execArray(stmt cfg.Statement[N]) Outcome {
	arrays, ok := any(p.value).(domain.Arrays[N])
	//
	switch s := stmt.(type) {
	case *cfg.ArrayInit[N]:
		if !ok {
			return NoRule
		}
		//
		arrays.ArrayInit(s.Array)
	case *cfg.ArrayStore[N]:
		if !ok {
			return NoRule
		}
		//
		index, isVar := s.Index.Variable()
		if !isVar {
			log.Warnf("skipped array store with non-variable index \"%s\"", s)
			return Skipped
		}
		//
		arrays.ArrayStore(s.Array, index, s.Value, s.Singleton)
	case *cfg.ArrayLoad[N]:
		index, isVar := s.Index.Variable()
		//
		if !ok || !isVar {
			if ok {
				log.Warnf("skipped array load with non-variable index \"%s\"", s)
			}
			// The destination is overwritten with an unknown value.
			p.value.Forget(s.Lhs)
			//
			return Skipped
		}
		//
		arrays.ArrayLoad(s.Lhs, s.Array, index)
	}
	//
	return Applied
}

func (p *Transformer[N, D]) execPointer(stmt cfg.Statement[N]) Outcome {
	pointers, ok := any(p.value).(domain.Pointers[N])
	//
	switch s := stmt.(type) {
	case *cfg.PtrStore[N]:
		if !ok {
			return NoRule
		}
		//
		pointers.PtrStore(s.Ptr, s.Value)
	case *cfg.PtrLoad[N]:
		if !ok {
			p.value.Forget(s.Lhs)
			return Skipped
		}
		//
		pointers.PtrLoad(s.Lhs, s.Ptr)
	case *cfg.PtrAssign[N]:
		if !ok {
			p.value.Forget(s.Lhs)
			return Skipped
		}
		//
		pointers.PtrAssign(s.Lhs, s.Ptr, s.Offset)
	case *cfg.PtrObject[N]:
		if !ok {
			return NoRule
		}
		//
		pointers.PtrObject(s.Lhs, s.Object)
	case *cfg.PtrFunction[N]:
		if !ok {
			return NoRule
		}
		//
		pointers.PtrFunction(s.Lhs, s.Function)
	}
	//
	return Applied
}

