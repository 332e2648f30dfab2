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

package propctx

// Tracer implements B2: given a caller's IR/DefUse and a call site, determine which of the
// caller's own positional parameters flow, transitively through local gets and reflective gets,
// into the call's Nth argument slot.
type Tracer struct {
	n int
}

// NewTracer builds a Tracer for distinguishing argument index n (zero-based).
func NewTracer(n int) *Tracer {
	return &Tracer{n: n}
}

// DependentParams returns the indices of caller's positional parameters that feed call's
// distinguishing argument, per the explicit-worklist backward def-use walk spec.md §9 calls for
// in place of a recursive walk (no stack-depth concerns on deeply chained gets).
func (t *Tracer) DependentParams(caller IR, du DefUse, call CallSite) []int {
	if caller.NumParams() <= t.n {
		return nil
	}
	target := caller.ParamValue(t.n)

	var dependent []int
	for i := 0; i < call.NumArgs(); i++ {
		seed, ok := call.ArgValue(i)
		if !ok {
			continue
		}
		if t.reaches(du, seed, target) {
			dependent = append(dependent, i)
		}
	}
	return dependent
}

// reaches saturates the set of values reachable backward from seed by following the def chain
// (plain gets surface one operand through DefUse.Def; reflective gets surface both the object and
// the key operand, either of which can carry the distinguishing parameter), and reports whether
// target is ever added. The worklist terminates because SSA def chains are acyclic: every
// insertion attempt that would revisit an already-present value is a no-op, so the values set
// grows monotonically and is bounded by the number of SSA values in the method.
func (t *Tracer) reaches(du DefUse, seed, target Value) bool {
	if seed == target {
		return true
	}

	values := map[Value]bool{seed: true}
	worklist := []Value{seed}

	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		refs, ok := du.Def(v)
		if !ok {
			continue
		}
		for _, ref := range refs {
			if t.add(values, &worklist, ref, target) {
				return true
			}
		}
	}
	return false
}

func (t *Tracer) add(values map[Value]bool, worklist *[]Value, v, target Value) bool {
	if v == target {
		return true
	}
	if values[v] {
		return false
	}
	values[v] = true
	*worklist = append(*worklist, v)
	return false
}
