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
	"iter"
	"strings"

	"github.com/consensys/go-crab/pkg/util/number"
)

// CFG is a control-flow graph of basic blocks, identified by label.  Blocks
// are kept in the order in which they were created.
type CFG[N number.Number[N]] struct {
	entry  string
	blocks map[string]*BasicBlock[N]
	order  []string
}

// NewCFG constructs a graph whose entry block has the given label.  The entry
// block is created immediately.
func NewCFG[N number.Number[N]](entry string) *CFG[N] {
	cfg := &CFG[N]{entry, make(map[string]*BasicBlock[N]), nil}
	cfg.Insert(entry)
	//
	return cfg
}

// Entry returns the entry block of this graph.
func (p *CFG[N]) Entry() *BasicBlock[N] {
	return p.blocks[p.entry]
}

// SetEntry changes the entry of this graph to an existing block.
func (p *CFG[N]) SetEntry(label string) error {
	if _, ok := p.blocks[label]; !ok {
		return fmt.Errorf("unknown block %s", label)
	}
	//
	p.entry = label
	//
	return nil
}

// Insert returns the block with the given label, creating it if necessary.
func (p *CFG[N]) Insert(label string) *BasicBlock[N] {
	if block, ok := p.blocks[label]; ok {
		return block
	}
	//
	block := NewBasicBlock[N](label)
	p.blocks[label] = block
	p.order = append(p.order, label)
	//
	return block
}

// Get returns the block with the given label, if it exists.
func (p *CFG[N]) Get(label string) (*BasicBlock[N], bool) {
	block, ok := p.blocks[label]
	return block, ok
}

// Len returns the number of blocks in this graph.
func (p *CFG[N]) Len() uint {
	return uint(len(p.order))
}

// AddEdge adds an edge between two existing blocks.
func (p *CFG[N]) AddEdge(from string, to string) error {
	src, ok1 := p.blocks[from]
	dst, ok2 := p.blocks[to]
	//
	if !ok1 {
		return fmt.Errorf("unknown block %s", from)
	} else if !ok2 {
		return fmt.Errorf("unknown block %s", to)
	}
	//
	src.addSuccessor(to)
	dst.addPredecessor(from)
	//
	return nil
}

// Blocks returns an iterator over the blocks of this graph in creation order.
func (p *CFG[N]) Blocks() iter.Seq[*BasicBlock[N]] {
	return func(yield func(*BasicBlock[N]) bool) {
		for _, label := range p.order {
			if !yield(p.blocks[label]) {
				return
			}
		}
	}
}

func (p *CFG[N]) String() string {
	var builder strings.Builder
	//
	for i, label := range p.order {
		if i != 0 {
			builder.WriteString("\n")
		}
		//
		builder.WriteString(p.blocks[label].String())
	}
	//
	return builder.String()
}
