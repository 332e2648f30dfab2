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

// InstrOp must implement one method per go/ssa instruction kind. transferVisitor is the only
// implementation in this package; the interface exists so the instruction dispatch itself
// (InstrSwitch) stays a pure routing table, independent of what a visitor does with each kind.
type InstrOp interface {
	DoDebugRef(*ssa.DebugRef)
	DoUnOp(*ssa.UnOp)
	DoBinOp(*ssa.BinOp)
	DoCall(*ssa.Call)
	DoChangeInterface(*ssa.ChangeInterface)
	DoChangeType(*ssa.ChangeType)
	DoConvert(*ssa.Convert)
	DoSliceToArrayPointer(*ssa.SliceToArrayPointer)
	DoMakeInterface(*ssa.MakeInterface)
	DoExtract(*ssa.Extract)
	DoSlice(*ssa.Slice)
	DoReturn(*ssa.Return)
	DoRunDefers(*ssa.RunDefers)
	DoPanic(*ssa.Panic)
	DoSend(*ssa.Send)
	DoStore(*ssa.Store)
	DoIf(*ssa.If)
	DoJump(*ssa.Jump)
	DoDefer(*ssa.Defer)
	DoGo(*ssa.Go)
	DoMakeChan(*ssa.MakeChan)
	DoAlloc(*ssa.Alloc)
	DoMakeSlice(*ssa.MakeSlice)
	DoMakeMap(*ssa.MakeMap)
	DoRange(*ssa.Range)
	DoNext(*ssa.Next)
	DoFieldAddr(*ssa.FieldAddr)
	DoField(*ssa.Field)
	DoIndexAddr(*ssa.IndexAddr)
	DoIndex(*ssa.Index)
	DoLookup(*ssa.Lookup)
	DoMapUpdate(*ssa.MapUpdate)
	DoTypeAssert(*ssa.TypeAssert)
	DoMakeClosure(*ssa.MakeClosure)
	DoPhi(*ssa.Phi)
	DoSelect(*ssa.Select)
}

// InstrSwitch dispatches instr to the matching method of visitor. Modeled directly on the
// teacher's instruction-visitor dispatch: a single exhaustive switch, no virtual-method
// machinery.
//
//gocyclo:ignore
func InstrSwitch(visitor InstrOp, instr ssa.Instruction) {
	switch instr := instr.(type) {
	case *ssa.DebugRef:
		visitor.DoDebugRef(instr)
	case *ssa.UnOp:
		visitor.DoUnOp(instr)
	case *ssa.BinOp:
		visitor.DoBinOp(instr)
	case *ssa.Call:
		visitor.DoCall(instr)
	case *ssa.ChangeInterface:
		visitor.DoChangeInterface(instr)
	case *ssa.ChangeType:
		visitor.DoChangeType(instr)
	case *ssa.Convert:
		visitor.DoConvert(instr)
	case *ssa.SliceToArrayPointer:
		visitor.DoSliceToArrayPointer(instr)
	case *ssa.MakeInterface:
		visitor.DoMakeInterface(instr)
	case *ssa.Extract:
		visitor.DoExtract(instr)
	case *ssa.Slice:
		visitor.DoSlice(instr)
	case *ssa.Return:
		visitor.DoReturn(instr)
	case *ssa.RunDefers:
		visitor.DoRunDefers(instr)
	case *ssa.Panic:
		visitor.DoPanic(instr)
	case *ssa.Send:
		visitor.DoSend(instr)
	case *ssa.Store:
		visitor.DoStore(instr)
	case *ssa.If:
		visitor.DoIf(instr)
	case *ssa.Jump:
		visitor.DoJump(instr)
	case *ssa.Defer:
		visitor.DoDefer(instr)
	case *ssa.Go:
		visitor.DoGo(instr)
	case *ssa.MakeChan:
		visitor.DoMakeChan(instr)
	case *ssa.Alloc:
		visitor.DoAlloc(instr)
	case *ssa.MakeSlice:
		visitor.DoMakeSlice(instr)
	case *ssa.MakeMap:
		visitor.DoMakeMap(instr)
	case *ssa.Range:
		visitor.DoRange(instr)
	case *ssa.Next:
		visitor.DoNext(instr)
	case *ssa.FieldAddr:
		visitor.DoFieldAddr(instr)
	case *ssa.Field:
		visitor.DoField(instr)
	case *ssa.IndexAddr:
		visitor.DoIndexAddr(instr)
	case *ssa.Index:
		visitor.DoIndex(instr)
	case *ssa.Lookup:
		visitor.DoLookup(instr)
	case *ssa.MapUpdate:
		visitor.DoMapUpdate(instr)
	case *ssa.TypeAssert:
		visitor.DoTypeAssert(instr)
	case *ssa.MakeClosure:
		visitor.DoMakeClosure(instr)
	case *ssa.Phi:
		visitor.DoPhi(instr)
	case *ssa.Select:
		visitor.DoSelect(instr)
	}
}

// transferVisitor applies the A2 per-instruction transfer function to a single block-local
// state. Only instructions that can carry or observe null-state get non-trivial handling; every
// other instruction that defines a value defines it at MaybeNull (⊤), the conservative default
// spec.md requires for anything not explicitly refined.
type transferVisitor struct {
	state *BlockState
	// phiLookup resolves a phi operand's state from the predecessor's most recently computed
	// block-exit state (before any guard refinement of the edge), falling back to the
	// predecessor's IN state if it has not been processed yet. It is always set by the solver
	// before a phi is visited.
	phiLookup func(pred *ssa.BasicBlock, v ssa.Value) State
}

func newTransferVisitor(s *BlockState) *transferVisitor { return &transferVisitor{state: s} }

func (t *transferVisitor) top(v ssa.Value) { t.state.Set(v, MaybeNull) }

func (t *transferVisitor) DoDebugRef(*ssa.DebugRef) {}

func (t *transferVisitor) DoUnOp(i *ssa.UnOp) {
	if i.Op == token.MUL {
		// Pointer dereference: the operand's state drove pruning (§4.A4); the loaded value is
		// unconstrained.
		t.top(i)
		return
	}
	t.top(i)
}

func (t *transferVisitor) DoBinOp(i *ssa.BinOp) { t.top(i) }

func (t *transferVisitor) DoCall(i *ssa.Call) {
	// Receiver/callee is used; its state drives pruning (§4.A4). Defined value is ⊤ unless a
	// method summary says otherwise - out of scope for the transfer function itself (§4.A2).
	t.top(i)
}

func (t *transferVisitor) DoChangeInterface(i *ssa.ChangeInterface) { t.state.Assign(i, i.X) }
func (t *transferVisitor) DoChangeType(i *ssa.ChangeType)           { t.state.Assign(i, i.X) }
func (t *transferVisitor) DoConvert(i *ssa.Convert)                 { t.top(i) }
func (t *transferVisitor) DoSliceToArrayPointer(i *ssa.SliceToArrayPointer) { t.top(i) }
func (t *transferVisitor) DoMakeInterface(i *ssa.MakeInterface)     { t.state.Assign(i, i.X) }
func (t *transferVisitor) DoExtract(i *ssa.Extract)                 { t.top(i) }
func (t *transferVisitor) DoSlice(i *ssa.Slice)                     { t.top(i) }
func (t *transferVisitor) DoReturn(*ssa.Return)                     {}
func (t *transferVisitor) DoRunDefers(*ssa.RunDefers)               {}
func (t *transferVisitor) DoPanic(*ssa.Panic)                       {}
func (t *transferVisitor) DoSend(*ssa.Send)                         {}

func (t *transferVisitor) DoStore(*ssa.Store) {
	// The address operand's state drives pruning; Store defines no value.
}

func (t *transferVisitor) DoIf(*ssa.If) {
	// Edge-sensitive refinement (π-nodes) is applied by the solver, which has access to both
	// outgoing edges; the transfer function itself makes no unconditional change here.
}

func (t *transferVisitor) DoJump(*ssa.Jump) {}
func (t *transferVisitor) DoDefer(*ssa.Defer) {}
func (t *transferVisitor) DoGo(*ssa.Go)       {}

func (t *transferVisitor) DoMakeChan(i *ssa.MakeChan) { t.state.Set(i, NeverNull) }
func (t *transferVisitor) DoAlloc(i *ssa.Alloc)       { t.state.Set(i, NeverNull) }
func (t *transferVisitor) DoMakeSlice(i *ssa.MakeSlice) { t.state.Set(i, NeverNull) }
func (t *transferVisitor) DoMakeMap(i *ssa.MakeMap)     { t.state.Set(i, NeverNull) }
func (t *transferVisitor) DoMakeClosure(i *ssa.MakeClosure) { t.state.Set(i, NeverNull) }

func (t *transferVisitor) DoRange(i *ssa.Range) { t.top(i) }
func (t *transferVisitor) DoNext(i *ssa.Next)   { t.top(i) }

func (t *transferVisitor) DoFieldAddr(i *ssa.FieldAddr) {
	// Dereferences i.X; i.X's state drives pruning. The defined address is otherwise
	// unconstrained (array-length special case does not apply: FieldAddr always yields a
	// pointer).
	t.top(i)
}

func (t *transferVisitor) DoField(i *ssa.Field) { t.top(i) }

func (t *transferVisitor) DoIndexAddr(i *ssa.IndexAddr) {
	// Dereferences i.X (pointer-to-array or slice header); state drives pruning.
	t.top(i)
}

func (t *transferVisitor) DoIndex(i *ssa.Index)         { t.top(i) }
func (t *transferVisitor) DoLookup(i *ssa.Lookup)       { t.top(i) }
func (t *transferVisitor) DoMapUpdate(*ssa.MapUpdate)   {}
func (t *transferVisitor) DoTypeAssert(i *ssa.TypeAssert) { t.top(i) }
func (t *transferVisitor) DoSelect(i *ssa.Select)       { t.top(i) }

// DoPhi computes the join of the phi's incoming values, one per predecessor, each looked up
// through phiLookup (or, when phiLookup is nil, in the block's own state). Every predecessor
// contributes; a predecessor the solver has not reached yet contributes Unknown, the identity of
// Join.
func (t *transferVisitor) DoPhi(i *ssa.Phi) {
	joined := Unknown
	preds := i.Block().Preds
	for idx, v := range i.Edges {
		if idx >= len(preds) {
			continue
		}
		var s State
		if t.phiLookup != nil {
			s = t.phiLookup(preds[idx], v)
		} else {
			s = t.state.Get(v)
		}
		joined = Join(joined, s)
	}
	t.state.Set(i, joined)
}
