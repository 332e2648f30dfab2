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

// Context is the opaque key the call-graph builder uses to distinguish analyses of one method
// under different callers or argument values (spec.md GLOSSARY). BaseContext is the delegate
// selector's own context, threaded through unchanged by variants that don't care about property
// names.
type Context interface {
	// Base returns the delegate selector's context this Context was built on top of.
	Base() BaseContext
	// IsPropName reports whether this context carries the property-name marker. It is true for
	// both PropNameContext and MarkerForInContext; InstanceKey tells the two apart, since only a
	// direct property-name clone exposes a single, filterable instance key.
	IsPropName() bool
	// InstanceKey returns the instance key this context carries, and whether one is present.
	// Present for PropNameContext only; a MarkerForInContext intentionally reports ok=false here
	// even though it stores an instance key internally (it does not expose a single-instance
	// filter — spec.md §4, "Context").
	InstanceKey() (InstanceKey, bool)
}

// BaseContext is the delegate (non-property-name) selector's context, opaque to this package.
type BaseContext interface {
	// String returns a stable, human-readable identity for the base context.
	String() string
}

// propNameContext is the model for both context flavors spec.md §9 describes: one variant type
// with a boolean discriminator ("suppressFilter") rather than two unrelated types, since they
// share identity and differ only in whether InstanceKey is exposed to the single-instance filter.
type propNameContext struct {
	base           BaseContext
	key            InstanceKey
	suppressFilter bool
}

// PropNameContext builds a direct property-name clone context: baseCtx refined by key, the
// concrete instance key flowing into the distinguishing argument. The two distinguished marker
// keys spec.md §4 names (PROPNAME_KEY present, PROPNAME_PARM_INDEX carrying N) are represented
// structurally here rather than as literal map entries: IsPropName()==true plays the role of
// PROPNAME_KEY, and the distinguishing index N is carried by the Selector that produced this
// context, not by the context value itself.
func PropNameContext(base BaseContext, key InstanceKey) Context {
	return &propNameContext{base: base, key: key}
}

// MarkerForInContext builds a context that propagates the property-name marker through an
// intermediary callee without constraining that callee's parameter set: same identity as
// PropNameContext, but InstanceKey deliberately reports not-present.
func MarkerForInContext(base BaseContext, key InstanceKey) Context {
	return &propNameContext{base: base, key: key, suppressFilter: true}
}

func (c *propNameContext) Base() BaseContext { return c.base }
func (c *propNameContext) IsPropName() bool  { return true }

func (c *propNameContext) InstanceKey() (InstanceKey, bool) {
	if c.suppressFilter {
		return nil, false
	}
	return c.key, true
}

// markerInstanceKey recovers the instance key a MarkerForInContext carries internally, used only
// by Selector when propagating a marker through a further intermediary callee. Unlike
// Context.InstanceKey, this does check the context's declared kind before extracting the key
// (spec.md §9 open question: the source does an unchecked downcast here; this implementation
// checks IsPropName first so a non-property-name BaseContext passed by mistake cannot be silently
// reinterpreted).
func markerInstanceKey(c Context) (InstanceKey, bool) {
	pc, ok := c.(*propNameContext)
	if !ok || !pc.IsPropName() {
		return nil, false
	}
	return pc.key, true
}

// Delegate is the base call-graph context selector this package wraps: spec.md's delegateBase.
type Delegate interface {
	// GetCalleeTarget resolves the base selector's context for one call, ignoring property-name
	// sensitivity entirely.
	GetCalleeTarget(caller Context, site CallSite, callee MethodRef, receiverAbstractValues []InstanceKey) BaseContext
	// RelevantParameters returns the base selector's set of argument indices whose value may
	// change the chosen context for site.
	RelevantParameters(caller Context, site CallSite) map[int]bool
}

// Selector implements B3: the property-name context constructor that wraps a Delegate base
// selector, consulting the B1 Classifier and B2 Tracer.
type Selector struct {
	n          int
	delegate   Delegate
	classifier *Classifier
	tracer     *Tracer
	hierarchy  ClassHierarchy
	// calleeIR resolves a MethodRef to the IR the classifier needs to inspect. A call-graph
	// builder ordinarily already has this mapping (it is what builds IR per method in the first
	// place); propctx does not construct IR itself.
	calleeIR func(MethodRef) IR
}

// NewSelector builds a Selector for distinguishing argument index n, wrapping delegate.
// calleeIR resolves a callee MethodRef to its IR for classification purposes.
func NewSelector(n int, delegate Delegate, hierarchy ClassHierarchy, calleeIR func(MethodRef) IR) *Selector {
	return &Selector{
		n:          n,
		delegate:   delegate,
		classifier: NewClassifier(n),
		tracer:     NewTracer(n),
		hierarchy:  hierarchy,
		calleeIR:   calleeIR,
	}
}

// GetCalleeTarget implements the B3 algorithm (spec.md §4.B3).
func (s *Selector) GetCalleeTarget(
	caller Context,
	callerIR IR,
	callerDefUse DefUse,
	site CallSite,
	callee MethodRef,
	receiverAbstractValues []InstanceKey,
) Context {
	base := s.delegate.GetCalleeTarget(caller, site, callee, receiverAbstractValues)

	switch {
	case len(receiverAbstractValues) > s.n:
		// Step 2: a direct call whose receiver abstract values cover the distinguishing index.
		// A NEVER classification falls straight through to step 4 (base context): it does not
		// fall into step 3's marker propagation, which only applies to the *else* branch.
		if calleeIR := s.calleeIR(callee); calleeIR != nil {
			if f := s.classifier.Classify(calleeIR); f == Always || f == Sometimes {
				key := receiverAbstractValues[s.n]
				if key == nil {
					key = s.hierarchy.Undefined()
				}
				return PropNameContext(base, key)
			}
		}

	case caller != nil && caller.IsPropName():
		// Step 3: the caller itself carries the marker; propagate it further only if one of the
		// call's own arguments is fed by the caller's distinguishing parameter.
		if callerKey, ok := markerInstanceKey(caller); ok && callerIR != nil && callerDefUse != nil {
			if dependent := s.tracer.DependentParams(callerIR, callerDefUse, site); len(dependent) > 0 {
				return MarkerForInContext(base, callerKey)
			}
		}
	}

	// Step 4.
	return asContext(base)
}

// RelevantParameters implements getRelevantParameters (spec.md §4.B3): if the call has more than
// N argument uses, the distinguishing index N is added to the base selector's relevant set.
func (s *Selector) RelevantParameters(caller Context, site CallSite) map[int]bool {
	rel := s.delegate.RelevantParameters(caller, site)
	out := make(map[int]bool, len(rel)+1)
	for k := range rel {
		out[k] = true
	}
	if site.NumArgs() > s.n {
		out[s.n] = true
	}
	return out
}

// asContext wraps a BaseContext that is not itself property-name-sensitive so it satisfies
// Context, for the common case where no property-name refinement applies.
func asContext(base BaseContext) Context {
	if c, ok := base.(Context); ok {
		return c
	}
	return baseOnlyContext{base}
}

// baseOnlyContext is a Context carrying no property-name information at all.
type baseOnlyContext struct{ base BaseContext }

func (b baseOnlyContext) Base() BaseContext                { return b.base }
func (b baseOnlyContext) IsPropName() bool                 { return false }
func (b baseOnlyContext) InstanceKey() (InstanceKey, bool) { return nil, false }
