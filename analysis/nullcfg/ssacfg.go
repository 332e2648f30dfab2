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

import "golang.org/x/tools/go/ssa"

// PanicExit is the sentinel block index a panic successor targets when a PEI's panic unwinds out
// of the function entirely, rather than to a recover-guarded block. go/ssa gives every function a
// single implicit abnormal exit; this port does not attempt to model recover() blocks
// individually, since distinguishing them is a CFG-construction concern spec.md places out of
// scope for the core.
const PanicExit = -1

type ssaBlock struct {
	idx        int
	instrs     []ssa.Instruction
	normal     []int
	panicSuccs []int
}

func (b *ssaBlock) Index() int                { return b.idx }
func (b *ssaBlock) Instrs() []ssa.Instruction { return b.instrs }
func (b *ssaBlock) Normal() []int             { return b.normal }
func (b *ssaBlock) PanicSuccs() []int         { return b.panicSuccs }

type ssaGraph struct {
	fn     *ssa.Function
	blocks []Block
}

func (g *ssaGraph) Func() *ssa.Function { return g.fn }

func (g *ssaGraph) Block(index int) Block {
	if index < 0 || index >= len(g.blocks) {
		return nil
	}
	return g.blocks[index]
}

func (g *ssaGraph) Blocks() []Block { return g.blocks }

// BuildGraph adapts a real *ssa.Function into the Graph this package consumes, attaching a
// synthetic panic edge to PanicExit at every block whose relevant PEI (per §4.A4) could panic.
// Building this adapter is itself out of scope for the core per spec.md §1 ("CFG data structures
// themselves"); it exists so the package has something runnable against real Go source.
func BuildGraph(fn *ssa.Function) Graph {
	blocks := make([]Block, len(fn.Blocks))
	for _, bb := range fn.Blocks {
		normal := make([]int, len(bb.Succs))
		for i, s := range bb.Succs {
			normal[i] = s.Index
		}

		var panicSuccs []int
		if relevantPEI(bb.Instrs) != nil {
			panicSuccs = []int{PanicExit}
		}

		blocks[bb.Index] = &ssaBlock{
			idx:        bb.Index,
			instrs:     bb.Instrs,
			normal:     normal,
			panicSuccs: panicSuccs,
		}
	}
	return &ssaGraph{fn: fn, blocks: blocks}
}
