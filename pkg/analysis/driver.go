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
	"slices"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Invariant associates the abstract value holding after a block with that
// block's label.
type Invariant[D any] struct {
	Label string
	Value D
}

// Path determines the sequence of blocks to execute.  When labels are given,
// each must name a block and each consecutive pair must be joined by an edge.
// Otherwise, the path starts at the entry block and follows the first
// successor of each block until reaching a block without successors or a
// block already visited.  In both cases, a non-zero maxSteps limits the length
// of the path.
func Path[N number.Number[N]](g *cfg.CFG[N], labels []string, maxSteps uint) ([]*cfg.BasicBlock[N], error) {
	var path []*cfg.BasicBlock[N]
	//
	if len(labels) == 0 {
		return defaultPath(g, maxSteps), nil
	}
	//
	for i, label := range labels {
		if maxSteps != 0 && uint(i) >= maxSteps {
			break
		}
		//
		block, ok := g.Get(label)
		if !ok {
			return nil, errors.Errorf("unknown block %s", label)
		} else if i > 0 && !slices.Contains(path[i-1].Successors(), label) {
			return nil, errors.Errorf("no edge from %s to %s", path[i-1].Label(), label)
		}
		//
		path = append(path, block)
	}
	//
	return path, nil
}

func defaultPath[N number.Number[N]](g *cfg.CFG[N], maxSteps uint) []*cfg.BasicBlock[N] {
	var (
		path    []*cfg.BasicBlock[N]
		visited = make(map[string]bool)
		block   = g.Entry()
	)
	//
	for maxSteps == 0 || uint(len(path)) < maxSteps {
		path = append(path, block)
		visited[block.Label()] = true
		//
		succs := block.Successors()
		if len(succs) == 0 || visited[succs[0]] {
			break
		}
		//
		block, _ = g.Get(succs[0])
	}
	//
	return path
}

// ExecPath executes a sequence of blocks in order, returning the abstract
// value holding after each.  Values are cloned, hence remain valid as
// execution continues.
func (p *Transformer[N, D]) ExecPath(path []*cfg.BasicBlock[N]) []Invariant[D] {
	var invariants = make([]Invariant[D], len(path))
	//
	for i, block := range path {
		value := p.ExecBlock(block)
		invariants[i] = Invariant[D]{block.Label(), value.Clone()}
		//
		log.Debugf("%s=%s", block.Label(), value)
	}
	//
	return invariants
}
