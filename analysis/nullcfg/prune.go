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
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// peiKind classifies how a potentially-excepting instruction's prunability should be decided.
type peiKind int

const (
	peiNone peiKind = iota
	// peiStaticInvoke is a call with no object receiver to test for nilness (a direct call to a
	// known static function/method value).
	peiStaticInvoke
	// peiReceiverAccess has a reference operand whose null-state drives pruning: a dynamic
	// invoke through an interface or func value, a field/index address computation, a raw
	// pointer dereference, a store through a pointer, or a map write.
	peiReceiverAccess
)

// npeExceptionName is the single declared-exception name this port recognizes: Go has no
// checked-exception hierarchy, so every potentially-excepting instruction this package handles
// is treated as declaring exactly this one condition, the analogue of NullPointerException.
const npeExceptionName = "runtime.Error"

// classifyPEI reports the PEI kind of instr and, for peiReceiverAccess, the operand whose state
// decides prunability.
func classifyPEI(instr ssa.Instruction) (kind peiKind, receiver ssa.Value) {
	switch i := instr.(type) {
	case *ssa.Call:
		if i.Call.IsInvoke() {
			return peiReceiverAccess, i.Call.Value
		}
		if i.Call.StaticCallee() != nil {
			return peiStaticInvoke, nil
		}
		// A call through a func-typed value (closure or func variable): that value itself may
		// be nil, which panics on call.
		return peiReceiverAccess, i.Call.Value
	case *ssa.FieldAddr:
		return peiReceiverAccess, i.X
	case *ssa.IndexAddr:
		return peiReceiverAccess, i.X
	case *ssa.UnOp:
		if i.Op == token.MUL {
			return peiReceiverAccess, i.X
		}
	case *ssa.Store:
		return peiReceiverAccess, i.Addr
	case *ssa.MapUpdate:
		return peiReceiverAccess, i.Map
	}
	return peiNone, nil
}

// relevantPEI returns the block's relevant PEI per spec.md §4.A4: "the single instruction that
// can cause exceptional exit (typically the last PEI in the block)".
func relevantPEI(instrs []ssa.Instruction) ssa.Instruction {
	var last ssa.Instruction
	for _, in := range instrs {
		if kind, _ := classifyPEI(in); kind != peiNone {
			last = in
		}
	}
	return last
}

// Result is the outcome of one A4 edge-pruning pass.
type Result struct {
	// deleted records, per block index, which edge kinds were deleted from that block.
	deleted map[int]map[EdgeKind]bool

	// DeletedByBlock supplements spec.md's single aggregate count with a per-block breakdown
	// (SPEC_FULL §5), mirroring IntraprocNullPointerAnalysis.java's per-block deleted-edge side
	// channel used by its callers for logging.
	DeletedByBlock map[int]int
}

// IsDeleted reports whether edges of kind k from block index b were deleted by this pass.
func (r *Result) IsDeleted(b int, k EdgeKind) bool {
	return r.deleted[b] != nil && r.deleted[b][k]
}

// NumberOfDeletedEdges returns the total edge count removed, zero if no pruning occurred.
func (r *Result) NumberOfDeletedEdges() int {
	total := 0
	for _, n := range r.DeletedByBlock {
		total += n
	}
	return total
}

func newResult() *Result {
	return &Result{deleted: map[int]map[EdgeKind]bool{}, DeletedByBlock: map[int]int{}}
}

func (r *Result) delete(b Block, k EdgeKind) {
	if r.deleted[b.Index()] == nil {
		r.deleted[b.Index()] = map[EdgeKind]bool{}
	}
	if r.deleted[b.Index()][k] {
		return // idempotent: a second deletion of the same edge set is a no-op.
	}
	r.deleted[b.Index()][k] = true
	n := len(b.Normal())
	if k == Panic {
		n = len(b.PanicSuccs())
	}
	r.DeletedByBlock[b.Index()] += n
}

// prune runs the A4 edge-pruning visitor over g using the IN states computed by the solver. It
// is a single pass over blocks in arbitrary order; deletions are collected into a negative graph
// and applied as a filter, never mutating g. Each block is dispatched through visitBlock, the
// per-node visitor step, mirroring the original's driver invoking its NegativeCFGBuilderVisitor
// once per CFG node.
func prune(g Graph, in map[int]*BlockState, ignored IgnoredExceptions, summary MethodSummary) (*Result, error) {
	result := newResult()
	for _, b := range g.Blocks() {
		if err := visitBlock(g, b, in, ignored, summary, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// visitBlock is the A4 pruning visitor's per-block step, ported from
// NegativeCFGBuilderVisitor.work(bb) in IntraprocNullPointerAnalysis.java: a nil block, or one
// that is not a node of g, is an argument error; a relevant PEI that classifyPEI fails to
// recognize as a PEI is an internal assertion (the analogue of the original's
// `assert instr.isPEI()`), since relevantPEI is only meant to select instructions classifyPEI
// already recognizes.
func visitBlock(g Graph, b Block, in map[int]*BlockState, ignored IgnoredExceptions, summary MethodSummary, result *Result) error {
	if b == nil {
		return &ArgumentError{Msg: "nil block"}
	}
	if g.Block(b.Index()) == nil {
		return &ArgumentError{Msg: "block not part of this graph"}
	}

	instr := relevantPEI(b.Instrs())
	if instr == nil {
		return nil
	}
	kind, receiver := classifyPEI(instr)
	if kind == peiNone {
		return &InternalAssertionError{Msg: "relevantPEI selected a non-PEI instruction"}
	}
	state := in[b.Index()]

	switch kind {
	case peiStaticInvoke:
		call := instr.(*ssa.Call)
		remaining := remainingExceptions(call, summary, ignored)
		if len(remaining) == 0 {
			result.delete(b, Panic)
		}

	case peiReceiverAccess:
		var remaining []string
		if call, ok := instr.(*ssa.Call); ok {
			remaining = remainingExceptions(call, summary, ignored)
			if !exactlyNPE(remaining) {
				return nil // may throw something else; conservatively delete nothing.
			}
			if summary != nil && summary.MayThrow(call) {
				return nil // the invoke subtlety: callee may dereference nil internally.
			}
		} else {
			remaining = remainingNonCallExceptions(ignored)
			if !exactlyNPE(remaining) {
				// Either NPE is ignored (remaining is empty) or something else remains:
				// the exactly-NPE rule from the call branch above applies here too, so
				// delete nothing.
				return nil
			}
		}

		switch state.Get(receiver) {
		case NeverNull:
			result.delete(b, Panic)
		case AlwaysNull:
			result.delete(b, Normal)
		}
	}
	return nil
}

func remainingNonCallExceptions(ignored IgnoredExceptions) []string {
	if ignored.Contains(npeExceptionName) {
		return nil
	}
	return []string{npeExceptionName}
}

func remainingExceptions(call *ssa.Call, summary MethodSummary, ignored IgnoredExceptions) []string {
	declared := []string{npeExceptionName}
	if summary != nil {
		declared = append(declared, summary.DeclaredExceptions(call)...)
	}
	var remaining []string
	for _, e := range declared {
		if !ignored.Contains(e) {
			remaining = append(remaining, e)
		}
	}
	return remaining
}

func exactlyNPE(remaining []string) bool {
	return len(remaining) == 1 && remaining[0] == npeExceptionName
}
