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

package propctx_test

import (
	"testing"

	"github.com/nullctx/nullctx/analysis/propctx"
	"github.com/nullctx/nullctx/analysis/propctx/fixture"
)

type stubBase string

func (s stubBase) String() string { return string(s) }

type stubDelegate struct{}

func (stubDelegate) GetCalleeTarget(propctx.Context, propctx.CallSite, propctx.MethodRef, []propctx.InstanceKey) propctx.BaseContext {
	return stubBase("base")
}

func (stubDelegate) RelevantParameters(propctx.Context, propctx.CallSite) map[int]bool {
	return map[int]bool{}
}

// S6 — propctx.Context cloning: call site f(obj, "name") with classify(f)=ALWAYS yields a propctx.PropNameContext
// carrying the abstract value for "name".
func TestSelectorPropNameContext(t *testing.T) {
	callee := fixture.MethodSpec{
		Name:   "f",
		Params: []int{1, 2},
		Uses: map[int][]fixture.UseSpec{
			2: {{Kind: "property", Key: 2, Ref: 1}},
		},
	}
	calleeIR := fixture.NewIR(callee)

	sel := propctx.NewSelector(1, stubDelegate{}, fixture.Hierarchy{}, func(propctx.MethodRef) propctx.IR { return calleeIR })

	site := fixture.NewCall("f", 10, 11)
	name := fixture.Key("name")
	ctx := sel.GetCalleeTarget(nil, nil, nil, site, fixture.Ref("f"), []propctx.InstanceKey{nil, name})

	if !ctx.IsPropName() {
		t.Fatalf("expected a property-name context")
	}
	key, ok := ctx.InstanceKey()
	if !ok || key != propctx.InstanceKey(name) {
		t.Fatalf("propctx.InstanceKey() = %v, %v; want %v, true", key, ok, name)
	}
}

// S6 second half: call site f(obj, undefinedValue) yields a propctx.PropNameContext carrying the
// undefined singleton when the distinguishing argument's abstract value is absent.
func TestSelectorUndefinedSubstitution(t *testing.T) {
	callee := fixture.MethodSpec{
		Name:   "f",
		Params: []int{1, 2},
		Uses: map[int][]fixture.UseSpec{
			2: {{Kind: "property", Key: 2, Ref: 1}},
		},
	}
	calleeIR := fixture.NewIR(callee)

	sel := propctx.NewSelector(1, stubDelegate{}, fixture.Hierarchy{}, func(propctx.MethodRef) propctx.IR { return calleeIR })

	site := fixture.NewCall("f", 10, 11)
	ctx := sel.GetCalleeTarget(nil, nil, nil, site, fixture.Ref("f"), []propctx.InstanceKey{nil, nil})

	key, ok := ctx.InstanceKey()
	want := (fixture.Hierarchy{}).Undefined()
	if !ok || key != want {
		t.Fatalf("propctx.InstanceKey() = %v, %v; want the undefined singleton", key, ok)
	}
}

// A callee classified NEVER gets no property-name refinement: the base context is returned
// unchanged.
func TestSelectorNeverClassifiedReturnsBase(t *testing.T) {
	callee := fixture.MethodSpec{
		Name:   "h",
		Params: []int{1, 2},
		Uses: map[int][]fixture.UseSpec{
			2: {{Kind: "other"}},
		},
	}
	calleeIR := fixture.NewIR(callee)

	sel := propctx.NewSelector(1, stubDelegate{}, fixture.Hierarchy{}, func(propctx.MethodRef) propctx.IR { return calleeIR })

	site := fixture.NewCall("h", 10, 11)
	ctx := sel.GetCalleeTarget(nil, nil, nil, site, fixture.Ref("h"), []propctx.InstanceKey{nil, fixture.Key("k")})

	if ctx.IsPropName() {
		t.Fatalf("expected a plain base context for a NEVER-classified callee")
	}
}

// Marker propagation: when the caller is itself in a PropName context and a dependent parameter
// exists, GetCalleeTarget returns a propctx.MarkerForInContext (identity present, filter suppressed).
func TestSelectorMarkerPropagation(t *testing.T) {
	caller := fixture.MethodSpec{
		Name:   "caller",
		Params: []int{1, 2},
		Defs: []fixture.DefSpec{
			{Value: 3, Ref: 2},
		},
	}
	callerIR := fixture.NewIR(caller)

	intermediary := fixture.MethodSpec{
		Name:   "passthrough",
		Params: []int{1, 2},
		Uses: map[int][]fixture.UseSpec{
			2: {{Kind: "other"}},
		},
	}
	intermediaryIR := fixture.NewIR(intermediary)

	sel := propctx.NewSelector(1, stubDelegate{}, fixture.Hierarchy{}, func(propctx.MethodRef) propctx.IR { return intermediaryIR })

	callerCtx := propctx.PropNameContext(stubBase("base"), fixture.Key("name"))
	site := fixture.NewCall("passthrough", 3)

	ctx := sel.GetCalleeTarget(callerCtx, callerIR, callerIR, site, fixture.Ref("passthrough"), nil)

	if !ctx.IsPropName() {
		t.Fatalf("expected marker propagation to yield a property-name context")
	}
	if _, ok := ctx.InstanceKey(); ok {
		t.Fatalf("propctx.MarkerForInContext must not expose propctx.InstanceKey")
	}
}
