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
	"strings"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/util"
)

// Outcome describes the effect which executing a statement had on the
// abstract value.
type Outcome uint8

const (
	// Applied indicates the statement was executed precisely.
	Applied Outcome = iota
	// Generalised indicates the statement had an unsupported shape, and was
	// executed by a sound approximation.
	Generalised
	// Skipped indicates the statement could not be executed, and no
	// information was gained from it.
	Skipped
	// NoRule indicates the statement has no numerical meaning for the domain
	// in question, and was ignored.
	NoRule
	// Dead indicates the abstract value was already bottom.
	Dead
)

const numOutcomes = uint(Dead) + 1

var outcomeNames = [...]string{"applied", "generalised", "skipped", "no-rule", "dead"}

func (p Outcome) String() string {
	if uint(p) >= numOutcomes {
		panic(util.InvariantViolation(fmt.Sprintf("unknown outcome (%d)", p)))
	}
	//
	return outcomeNames[p]
}

// Stats counts the statements executed by a transformer, both by kind and by
// outcome.
type Stats struct {
	kinds    [cfg.NumKinds]uint
	outcomes [numOutcomes]uint
}

// Record the execution of a statement of a given kind with a given outcome.
func (p *Stats) Record(kind cfg.Kind, outcome Outcome) {
	p.kinds[kind]++
	p.outcomes[outcome]++
}

// Kind returns the number of statements executed of a given kind.
func (p *Stats) Kind(kind cfg.Kind) uint {
	return p.kinds[kind]
}

// Outcome returns the number of statements executed with a given outcome.
func (p *Stats) Outcome(outcome Outcome) uint {
	return p.outcomes[outcome]
}

// Total returns the number of statements executed.
func (p *Stats) Total() uint {
	var total uint
	//
	for _, n := range p.outcomes {
		total += n
	}
	//
	return total
}

// Merge adds the counts from another set of statistics into this one.
func (p *Stats) Merge(o *Stats) {
	for i, n := range o.kinds {
		p.kinds[i] += n
	}
	//
	for i, n := range o.outcomes {
		p.outcomes[i] += n
	}
}

// String renders the non-zero counts, one per line.
func (p *Stats) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("statements: %d\n", p.Total()))
	//
	for i, n := range p.kinds {
		if n != 0 {
			builder.WriteString(fmt.Sprintf("  %s: %d\n", cfg.Kind(i), n))
		}
	}
	//
	builder.WriteString("outcomes:\n")
	//
	for i, n := range p.outcomes {
		if n != 0 {
			builder.WriteString(fmt.Sprintf("  %s: %d\n", Outcome(i), n))
		}
	}
	//
	return builder.String()
}
