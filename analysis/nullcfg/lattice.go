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

// Package nullcfg implements an intraprocedural null-dereference dataflow analysis over real
// golang.org/x/tools/go/ssa functions, and uses its results to prune CFG edges that correspond to
// impossible control transfers caused solely by a nil-pointer panic.
package nullcfg

import "fmt"

// State is an element of the four-point null-state lattice assigned to every SSA value in a
// block-local state. The partial order is:
//
//	Unknown ⊑ {NeverNull, AlwaysNull} ⊑ MaybeNull
//
// Join is least upper bound; the lattice has height 3, so any monotone worklist solver over it
// terminates.
type State uint8

const (
	// Unknown is bottom: the value has not been observed reachable yet.
	Unknown State = iota
	// NeverNull means every concrete execution reaching this program point has a non-nil value.
	NeverNull
	// AlwaysNull means every concrete execution reaching this program point has a nil value.
	AlwaysNull
	// MaybeNull is top: both a nil and a non-nil value are possible.
	MaybeNull
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case NeverNull:
		return "never-null"
	case AlwaysNull:
		return "always-null"
	case MaybeNull:
		return "maybe-null"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// IsNeverNull reports whether s is exactly NeverNull.
func (s State) IsNeverNull() bool { return s == NeverNull }

// IsAlwaysNull reports whether s is exactly AlwaysNull.
func (s State) IsAlwaysNull() bool { return s == AlwaysNull }

// IsBottom reports whether s is the bottom element.
func (s State) IsBottom() bool { return s == Unknown }

// IsTop reports whether s is the top element.
func (s State) IsTop() bool { return s == MaybeNull }

// Join computes the least upper bound of a and b.
//
//	⊥ ⊔ x = x
//	NeverNull ⊔ AlwaysNull = MaybeNull (the only non-trivial case)
//	x ⊔ ⊤ = ⊤
func Join(a, b State) State {
	if a == b {
		return a
	}
	if a == Unknown {
		return b
	}
	if b == Unknown {
		return a
	}
	if a == MaybeNull || b == MaybeNull {
		return MaybeNull
	}
	// a and b differ and neither is Unknown nor MaybeNull, so one is NeverNull and the
	// other AlwaysNull.
	return MaybeNull
}

// Meet computes the greatest lower bound of a and b. It is the dual of Join and is used only for
// branch-sensitive refinement at guarded (π-node) edges.
func Meet(a, b State) State {
	if a == b {
		return a
	}
	if a == MaybeNull {
		return b
	}
	if b == MaybeNull {
		return a
	}
	// a and b differ and neither is MaybeNull: at least one is Unknown, or they are the two
	// incompatible non-top, non-bottom elements. Either way the strongest sound answer is
	// Unknown - a guard cannot simultaneously refine a value to two incompatible states without
	// the refined edge being dead code, which the solver never asks Meet to decide.
	return Unknown
}
