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

import "testing"

var allStates = []State{Unknown, NeverNull, AlwaysNull, MaybeNull}

func TestJoinIdentityAndAbsorbing(t *testing.T) {
	for _, s := range allStates {
		if got := Join(Unknown, s); got != s {
			t.Errorf("Join(Unknown, %v) = %v, want %v", s, got, s)
		}
		if got := Join(s, Unknown); got != s {
			t.Errorf("Join(%v, Unknown) = %v, want %v", s, got, s)
		}
		if got := Join(MaybeNull, s); got != MaybeNull {
			t.Errorf("Join(MaybeNull, %v) = %v, want MaybeNull", s, got)
		}
	}
}

func TestJoinCommutative(t *testing.T) {
	for _, a := range allStates {
		for _, b := range allStates {
			if Join(a, b) != Join(b, a) {
				t.Errorf("Join not commutative for (%v, %v)", a, b)
			}
		}
	}
}

func TestJoinOfIncompatibleNonTopNonBottomIsMaybeNull(t *testing.T) {
	if got := Join(NeverNull, AlwaysNull); got != MaybeNull {
		t.Errorf("Join(NeverNull, AlwaysNull) = %v, want MaybeNull", got)
	}
}

func TestMeetIsDualOfJoin(t *testing.T) {
	for _, s := range allStates {
		if got := Meet(MaybeNull, s); got != s {
			t.Errorf("Meet(MaybeNull, %v) = %v, want %v", s, got, s)
		}
	}
	if got := Meet(NeverNull, AlwaysNull); got != Unknown {
		t.Errorf("Meet(NeverNull, AlwaysNull) = %v, want Unknown", got)
	}
}

func TestStatePredicates(t *testing.T) {
	if !Unknown.IsBottom() {
		t.Error("Unknown should be bottom")
	}
	if !MaybeNull.IsTop() {
		t.Error("MaybeNull should be top")
	}
	if !NeverNull.IsNeverNull() || NeverNull.IsAlwaysNull() {
		t.Error("NeverNull predicates wrong")
	}
	if !AlwaysNull.IsAlwaysNull() || AlwaysNull.IsNeverNull() {
		t.Error("AlwaysNull predicates wrong")
	}
}

func TestStateString(t *testing.T) {
	for _, s := range allStates {
		if s.String() == "" {
			t.Errorf("State(%d).String() is empty", uint8(s))
		}
	}
}
