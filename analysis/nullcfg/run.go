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

package nullcfg

import (
	"context"

	"golang.org/x/tools/go/ssa"
)

// Analysis ties the A1-A4 components together: run the A3 solver, then the A4 pruning visitor,
// and answer the accessors spec.md §6 names.
type Analysis struct {
	graph   Graph
	params  ParameterState
	ignored IgnoredExceptions
	summary MethodSummary

	ran    bool
	in     map[int]*BlockState
	result *Result
}

// New builds an Analysis over g. ps may be nil (every parameter seeded at MaybeNull); summary
// may be nil (every call conservatively assumed to possibly throw).
func New(g Graph, ps ParameterState, ignored IgnoredExceptions, summary MethodSummary) *Analysis {
	if summary == nil {
		summary = AlwaysMayThrow{}
	}
	return &Analysis{graph: g, params: ps, ignored: ignored, summary: summary}
}

// Run executes the solver and the pruning visitor. It returns ErrCancelled if ctx is done before
// the solver reaches a fixed point; in that case the pruned CFG remains unset and later accessor
// calls return ErrNotRun.
func (a *Analysis) Run(ctx context.Context) error {
	in, err := Solve(ctx, a.graph, a.params)
	if err != nil {
		return err
	}
	a.in = in
	result, err := prune(a.graph, in, a.ignored, a.summary)
	if err != nil {
		return err
	}
	a.result = result
	a.ran = true
	return nil
}

// GetPrunedCfg returns the pruned CFG: the same node set as the input graph, with the edges the
// A4 visitor found dead filtered out. Returns ErrNotRun if Run has not completed successfully.
func (a *Analysis) GetPrunedCfg() (Graph, error) {
	if !a.ran {
		return nil, ErrNotRun
	}
	return &PrunedGraph{orig: a.graph, result: a.result}, nil
}

// GetNumberOfDeletedEdges returns the total number of edges removed, zero if no pruning occurred
// or the IR was empty. Returns ErrNotRun if Run has not completed successfully.
func (a *Analysis) GetNumberOfDeletedEdges() (int, error) {
	if !a.ran {
		return 0, ErrNotRun
	}
	return a.result.NumberOfDeletedEdges(), nil
}

// GetState returns block's IN state. For an empty IR, or a block Solve never reached, this
// returns a fresh initial state, per spec.md's "for empty IR, returns a fresh state derived from
// the initial parameter state" contract.
func (a *Analysis) GetState(blockIndex int) *BlockState {
	if s, ok := a.in[blockIndex]; ok {
		return s
	}
	s := NewBlockState()
	if fn := a.graph.Func(); fn != nil {
		for _, p := range fn.Params {
			s.Override(p, a.params.Seed(p))
		}
	}
	return s
}

// PrunedGraph is the Graph spec.md's getPrunedCfg() returns: the same blocks as the graph it
// wraps, with deleted edge kinds filtered to nil. It does not mutate the graph it wraps.
type PrunedGraph struct {
	orig   Graph
	result *Result
}

// Func implements Graph.
func (p *PrunedGraph) Func() *ssa.Function { return p.orig.Func() }

// Block implements Graph.
func (p *PrunedGraph) Block(index int) Block {
	b := p.orig.Block(index)
	if b == nil {
		return nil
	}
	return p.filter(b)
}

// Blocks implements Graph. The returned slice has exactly the same node set as the wrapped
// graph's (spec.md §8 property 2, preservation of block set); only edges may be missing.
func (p *PrunedGraph) Blocks() []Block {
	orig := p.orig.Blocks()
	out := make([]Block, len(orig))
	for i, b := range orig {
		out[i] = p.filter(b)
	}
	return out
}

func (p *PrunedGraph) filter(b Block) Block {
	normal := b.Normal()
	if p.result.IsDeleted(b.Index(), Normal) {
		normal = nil
	}
	panicSuccs := b.PanicSuccs()
	if p.result.IsDeleted(b.Index(), Panic) {
		panicSuccs = nil
	}
	return &ssaBlock{idx: b.Index(), instrs: b.Instrs(), normal: normal, panicSuccs: panicSuccs}
}
