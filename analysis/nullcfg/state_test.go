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
	"testing"

	"golang.org/x/tools/go/ssa"
)

func TestBlockStateDefaultsToUnknown(t *testing.T) {
	b := NewBlockState()
	var v ssa.Value
	if got := b.Get(v); got != Unknown {
		t.Fatalf("Get on an unset value = %v, want Unknown", got)
	}
}

func TestBlockStateSetIsMonotonicJoin(t *testing.T) {
	b := NewBlockState()
	var v ssa.Value
	b.Set(v, NeverNull)
	b.Set(v, AlwaysNull)
	if got := b.Get(v); got != MaybeNull {
		t.Fatalf("after Set(NeverNull) then Set(AlwaysNull), got %v, want MaybeNull", got)
	}
}

func TestBlockStateOverrideBypassesJoin(t *testing.T) {
	b := NewBlockState()
	var v ssa.Value
	b.Set(v, MaybeNull)
	b.Override(v, NeverNull)
	if got := b.Get(v); got != NeverNull {
		t.Fatalf("Override did not bypass the monotonic join, got %v, want NeverNull", got)
	}
}

func TestBlockStateCloneIsIndependent(t *testing.T) {
	var v ssa.Value
	b := NewBlockState()
	b.Set(v, NeverNull)
	clone := b.Clone()
	clone.Override(v, MaybeNull)
	if got := b.Get(v); got != NeverNull {
		t.Fatalf("mutating a clone affected the original: got %v, want NeverNull", got)
	}
}

func TestBlockStateJoinReportsChange(t *testing.T) {
	var v ssa.Value
	a := NewBlockState()
	a.Set(v, NeverNull)
	b := NewBlockState()
	b.Set(v, AlwaysNull)

	if changed := a.Join(b); !changed {
		t.Fatal("expected Join to report a change when merging incompatible states")
	}
	if got := a.Get(v); got != MaybeNull {
		t.Fatalf("after Join, got %v, want MaybeNull", got)
	}
	if changed := a.Join(b); changed {
		t.Fatal("expected a repeated Join with the same input to report no change (fixed point)")
	}
}

func TestBlockStateEqual(t *testing.T) {
	var v ssa.Value
	a := NewBlockState()
	a.Set(v, NeverNull)
	b := NewBlockState()
	b.Set(v, NeverNull)
	if !a.Equal(b) {
		t.Fatal("expected two block states assigning the same states to be Equal")
	}
	b.Set(v, MaybeNull)
	if a.Equal(b) {
		t.Fatal("expected block states with diverging assignments to be unequal")
	}
}

func TestParameterStateSeedDefaultsToMaybeNull(t *testing.T) {
	var ps ParameterState
	if got := ps.Seed(nil); got != MaybeNull {
		t.Fatalf("nil ParameterState.Seed = %v, want MaybeNull", got)
	}
}
