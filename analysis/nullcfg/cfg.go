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

// EdgeKind distinguishes a normal control transfer from one that only happens when a panic
// unwinds a block, the distinction go/ssa's own *ssa.BasicBlock.Succs does not make (Go has no
// checked-exception bytecode CFG the way the JVM that this analysis was ported from does).
type EdgeKind uint8

const (
	// Normal is an ordinary fall-through/branch/jump successor edge.
	Normal EdgeKind = iota
	// Panic is an edge only taken when the block's relevant PEI panics.
	Panic
)

// Graph is the control-flow graph this package consumes. It is supplied by the caller and is
// never mutated; SSA IR construction and CFG data structures themselves are out of scope for this
// package; Graph is the seam across which a caller plugs in its own representation.
type Graph interface {
	// Func returns the function whose instructions this graph's blocks carry.
	Func() *ssa.Function
	// Block returns the block with the given index, or nil if none exists.
	Block(index int) Block
	// Blocks returns all blocks in the graph, in no particular order.
	Blocks() []Block
}

// Block is one control-flow graph node: an *ssa.BasicBlock plus the normal/panic successor split
// Graph provides.
type Block interface {
	// Index returns the block's index, stable across a Graph and its PrunedGraph.
	Index() int
	// Instrs returns the block's instructions in execution order.
	Instrs() []ssa.Instruction
	// Normal returns the indices of this block's normal successors.
	Normal() []int
	// PanicSuccs returns the indices of this block's panic (exceptional) successors.
	PanicSuccs() []int
}

// MethodSummary is the external method-state oracle: given a call instruction, it answers
// whether the callee may itself panic, and what checked-exception-like conditions (beyond the
// implicit nil-pointer panic) it declares. Absent information must be treated as "may throw".
type MethodSummary interface {
	// MayThrow reports whether call's callee may panic for a reason unrelated to a nil receiver.
	// If the oracle has no information about the callee, it must return true (the conservative
	// answer) - this is the "invoke subtlety" spec.md calls out: a non-nil receiver does not
	// imply the call cannot panic, because the callee may dereference nil internally.
	MayThrow(call *ssa.Call) bool

	// DeclaredExceptions lists any checked-exception-like conditions call's callee declares
	// beyond the implicit nil-pointer panic. Go has no checked exceptions, so real callers
	// typically return nil; the hook exists so the S3 "ignored exceptions" scenario from
	// spec.md §8 is expressible without inventing a Go-native source of that information.
	DeclaredExceptions(call *ssa.Call) []string
}

// AlwaysMayThrow is a MethodSummary that always answers true and declares no extra exceptions,
// the sound default when no method summaries are available.
type AlwaysMayThrow struct{}

// MayThrow implements MethodSummary.
func (AlwaysMayThrow) MayThrow(*ssa.Call) bool { return true }

// DeclaredExceptions implements MethodSummary.
func (AlwaysMayThrow) DeclaredExceptions(*ssa.Call) []string { return nil }

// IgnoredExceptions is the set of runtime panic type names to subtract from an instruction's
// declared exception set before deciding prunability (spec's ignoreExceptions collaborator).
// Go does not declare per-instruction checked exception sets the way the JVM bytecode this
// analysis was ported from does; every potentially-excepting instruction this package recognizes
// is treated as declaring exactly {runtime.Error} (a nil-pointer dereference panics with a
// *runtime.TypeAssertionError or runtime.Error-implementing value), so IgnoredExceptions answers
// a single yes/no question: is that panic kind itself ignored.
type IgnoredExceptions map[string]bool

// NewIgnoredExceptions builds an IgnoredExceptions set from a list of type names.
func NewIgnoredExceptions(names []string) IgnoredExceptions {
	s := make(IgnoredExceptions, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Contains reports whether name is in the ignored set.
func (s IgnoredExceptions) Contains(name string) bool {
	return s[name]
}
