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

// BlockState is a total map from SSA values live at a program point to their null-state. Values
// not present default to Unknown (the lattice bottom), matching spec's "initially every value is
// ⊥" rule.
type BlockState struct {
	m map[ssa.Value]State
}

// NewBlockState returns an empty block state, every value implicitly Unknown.
func NewBlockState() *BlockState {
	return &BlockState{m: map[ssa.Value]State{}}
}

// Get returns the state of v, defaulting to Unknown. Constants are never stored in the map:
// their state follows directly from the constant's value, per spec's rule that a null-literal
// constant is pinned to AlwaysNull and every other constant (strings, numbers, ...) to NeverNull.
func (b *BlockState) Get(v ssa.Value) State {
	if c, ok := v.(*ssa.Const); ok {
		if c.IsNil() {
			return AlwaysNull
		}
		return NeverNull
	}
	if b == nil {
		return Unknown
	}
	return b.m[v]
}

// Set assigns v's state, monotonically: the new state is joined with whatever was already
// recorded so that a state can never move back towards ⊥ within one solve, per spec's
// monotonicity invariant.
func (b *BlockState) Set(v ssa.Value, s State) {
	b.m[v] = Join(b.m[v], s)
}

// Override unconditionally assigns v's state, bypassing the monotonic join Set performs. It is
// used only to build a throw-away, edge-specific clone of a block's exit state for a guarded
// (π-node) successor edge; the clone is fed into the successor's IN state via Join, which is
// where the solver's monotonicity guarantee actually lives.
func (b *BlockState) Override(v ssa.Value, s State) {
	b.m[v] = s
}

// Assign copies src's state onto dst (used by transfer functions whose defined value simply
// inherits the state of an operand, e.g. a type-preserving conversion).
func (b *BlockState) Assign(dst, src ssa.Value) {
	b.Set(dst, b.Get(src))
}

// Clone returns an independent copy of b.
func (b *BlockState) Clone() *BlockState {
	out := NewBlockState()
	for k, v := range b.m {
		out.m[k] = v
	}
	return out
}

// Join mutates b in place to be the pointwise join of b and other, and reports whether b changed
// (used by the solver to detect fixed point).
func (b *BlockState) Join(other *BlockState) (changed bool) {
	for v, s := range other.m {
		before := b.m[v]
		after := Join(before, s)
		if after != before {
			b.m[v] = after
			changed = true
		}
	}
	return changed
}

// Equal reports whether b and other assign the same state to every value either of them
// mentions.
func (b *BlockState) Equal(other *BlockState) bool {
	if len(b.m) != len(other.m) {
		return false
	}
	for v, s := range b.m {
		if other.m[v] != s {
			return false
		}
	}
	return true
}

// ParameterState is an optional per-parameter initial lattice assignment supplied by the caller.
// A parameter absent from the map is seeded at MaybeNull (⊤), per spec's "absent ⇒ ⊤" rule.
type ParameterState map[*ssa.Parameter]State

// Seed returns the initial state for parameter p under ps. A nil ParameterState seeds every
// parameter at MaybeNull.
func (ps ParameterState) Seed(p *ssa.Parameter) State {
	if ps == nil {
		return MaybeNull
	}
	if s, ok := ps[p]; ok {
		return s
	}
	return MaybeNull
}
