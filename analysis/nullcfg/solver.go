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
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// guardRefinement is the π-node refinement carried along one outgoing edge of a block ending in
// an *ssa.If comparing a value to nil.
type guardRefinement struct {
	value ssa.Value
	state State
}

// ifGuard inspects block's terminating *ssa.If, if any, and returns the refinement to apply on
// each of its two successor positions (0 = then edge, 1 = else edge). ok is false when the
// block's terminator is not a nil comparison, in which case no edge carries extra information
// beyond the block's exit state.
func ifGuard(instrs []ssa.Instruction) (thenRefine, elseRefine guardRefinement, ok bool) {
	if len(instrs) == 0 {
		return guardRefinement{}, guardRefinement{}, false
	}
	ifInstr, isIf := instrs[len(instrs)-1].(*ssa.If)
	if !isIf {
		return guardRefinement{}, guardRefinement{}, false
	}
	cmp, isBinOp := ifInstr.Cond.(*ssa.BinOp)
	if !isBinOp || (cmp.Op != token.EQL && cmp.Op != token.NEQ) {
		return guardRefinement{}, guardRefinement{}, false
	}

	var v ssa.Value
	if isNilConst(cmp.Y) {
		v = cmp.X
	} else if isNilConst(cmp.X) {
		v = cmp.Y
	} else {
		return guardRefinement{}, guardRefinement{}, false
	}

	// cond true (then-edge, position 0) means "v == nil" when Op is EQL, "v != nil" when NEQ.
	thenState, elseState := AlwaysNull, NeverNull
	if cmp.Op == token.NEQ {
		thenState, elseState = NeverNull, AlwaysNull
	}
	return guardRefinement{v, thenState}, guardRefinement{v, elseState}, true
}

func isNilConst(v ssa.Value) bool {
	c, ok := v.(*ssa.Const)
	return ok && c.IsNil()
}

// Solve runs the A3 forward worklist fixed-point solver over g, seeding parameters from ps (nil
// seeds every parameter at MaybeNull). It returns the IN state computed for every block. Solve
// consults ctx between worklist rounds and returns ErrCancelled, leaving the returned map
// incomplete, if ctx is done.
//
// If g's function has no blocks (an empty/external IR), the solver is not invoked: an empty map
// is returned and callers should treat every block's state as fresh/initial, per spec.md's
// "if the IR is empty ... getState(b) returns a fresh initial state" contract.
func Solve(ctx context.Context, g Graph, ps ParameterState) (map[int]*BlockState, error) {
	blocks := g.Blocks()
	if len(blocks) == 0 {
		return map[int]*BlockState{}, nil
	}

	in := make(map[int]*BlockState, len(blocks))
	for _, b := range blocks {
		in[b.Index()] = NewBlockState()
	}

	entry := blocks[0]
	for _, p := range g.Func().Params {
		in[entry.Index()].Override(p, ps.Seed(p))
	}

	// exitOf caches each block's most recently computed exit state, used as the phi fallback for
	// predecessors not yet processed in this iteration.
	exitOf := make(map[int]*BlockState, len(blocks))

	worklist := []int{entry.Index()}
	queued := map[int]bool{entry.Index(): true}

	for len(worklist) > 0 {
		select {
		case <-ctx.Done():
			return in, ErrCancelled
		default:
		}

		idx := worklist[0]
		worklist = worklist[1:]
		queued[idx] = false

		b := g.Block(idx)
		if b == nil {
			continue
		}

		state := in[idx].Clone()
		visitor := newTransferVisitor(state)
		visitor.phiLookup = func(pred *ssa.BasicBlock, v ssa.Value) State {
			if predExit, ok := exitOf[pred.Index]; ok {
				return predExit.Get(v)
			}
			return in[pred.Index].Get(v)
		}
		for _, instr := range b.Instrs() {
			InstrSwitch(visitor, instr)
		}
		exitOf[idx] = state

		thenR, elseR, guarded := ifGuard(b.Instrs())
		for pos, succIdx := range b.Normal() {
			edgeState := state.Clone()
			if guarded {
				if pos == 0 {
					edgeState.Override(thenR.value, thenR.state)
				} else if pos == 1 {
					edgeState.Override(elseR.value, elseR.state)
				}
			}

			if in[succIdx].Join(edgeState) || !everVisited(exitOf, succIdx) {
				if !queued[succIdx] {
					worklist = append(worklist, succIdx)
					queued[succIdx] = true
				}
			}
		}
	}

	return in, nil
}

func everVisited(exitOf map[int]*BlockState, idx int) bool {
	_, ok := exitOf[idx]
	return ok
}
