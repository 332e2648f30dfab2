// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reach checks spec.md's "unreachable blocks remain present but isolated" invariant on a
// pruned CFG: after edge deletion, a block that lost all its surviving predecessors is still a
// node of the graph, just no longer reachable from the entry block.
package reach

import (
	"github.com/nullctx/nullctx/analysis/nullcfg"
	"github.com/yourbasic/graph"
	"golang.org/x/exp/slices"
)

// blockIterator adapts a nullcfg.Graph into github.com/yourbasic/graph's Iterator interface: the
// same "wrap the domain graph to satisfy an ecosystem graph library" idiom the teacher's own
// callgraph-to-graph.Iterator adapter used, applied here to a CFG instead of a call graph.
type blockIterator struct {
	g     nullcfg.Graph
	order int
}

func newBlockIterator(g nullcfg.Graph) blockIterator {
	max := 0
	for _, b := range g.Blocks() {
		if b.Index()+1 > max {
			max = b.Index() + 1
		}
	}
	return blockIterator{g: g, order: max}
}

// Order implements graph.Iterator.
func (it blockIterator) Order() int { return it.order }

// Visit implements graph.Iterator. Only normal successors are visited: reachability here answers
// "can control flow, following surviving normal edges, still reach this block", which is what
// downstream consumers care about when they treat absence of predecessors as unreachable.
func (it blockIterator) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	b := it.g.Block(v)
	if b == nil {
		return false
	}
	succs := append([]int{}, b.Normal()...)
	slices.Sort(succs)
	for _, w := range succs {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// Isolated returns the indices of every block in the pruned graph g that is not reachable, via
// surviving normal edges, from its entry block. These are the blocks spec.md's invariant says
// must remain present in the node set but are dead code after pruning.
func Isolated(g nullcfg.Graph) []int {
	blocks := g.Blocks()
	if len(blocks) == 0 {
		return nil
	}

	it := newBlockIterator(g)
	reachable := make([]bool, it.order)
	_, dist := graph.ShortestPaths(it, 0)
	for i := 0; i < it.order; i++ {
		if dist[i] >= 0 {
			reachable[i] = true
		}
	}

	var isolated []int
	for _, b := range blocks {
		if !reachable[b.Index()] {
			isolated = append(isolated, b.Index())
		}
	}
	slices.Sort(isolated)
	return isolated
}
