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

// Package fixture is a tiny reference implementation of analysis/propctx's external
// collaborators (IR, DefUse, MethodRef, CallSite, InstanceKey, ClassHierarchy), backed by a
// YAML description of a method body. It exists so propctx's algorithms can be exercised and
// tested without depending on a real dynamic-language front end.
package fixture

import (
	"fmt"
	"os"

	"github.com/nullctx/nullctx/analysis/propctx"

	"gopkg.in/yaml.v3"
)

// UseSpec is one recorded use of a value, as written in a fixture YAML file.
type UseSpec struct {
	Kind string `yaml:"kind"` // "property", "isdefined", or "other"
	Key  int    `yaml:"key,omitempty"`
	Ref  int    `yaml:"ref,omitempty"`
}

// DefSpec records that a value is defined by a get. Ref is the single source operand for a plain
// get; ObjectRef additionally records the object operand for a reflective get (obj[key]), whose
// key operand is Ref.
type DefSpec struct {
	Value     int  `yaml:"value"`
	Ref       int  `yaml:"ref"`
	ObjectRef *int `yaml:"objectRef,omitempty"`
}

// MethodSpec is one method's fixture description.
type MethodSpec struct {
	Name     string             `yaml:"name"`
	Params   []int              `yaml:"params"`
	Uses     map[int][]UseSpec  `yaml:"uses"`
	Defs     []DefSpec          `yaml:"defs"`
}

// Program is a fixture file's top-level shape: a small set of methods, enough to exercise the B1
// classifier and B2 tracer against.
type Program struct {
	Methods []MethodSpec `yaml:"methods"`
}

// Load reads and parses a fixture YAML file.
func Load(filename string) (*Program, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", filename, err)
	}
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("fixture: parsing %s: %w", filename, err)
	}
	return &p, nil
}

// Ref is the fixture's MethodRef: a method identified by name.
type Ref string

func (r Ref) String() string { return string(r) }

// Key is the fixture's InstanceKey: an opaque string, e.g. a literal property name or "undefined".
type Key string

func (k Key) String() string { return string(k) }

// Hierarchy is the fixture's ClassHierarchy.
type Hierarchy struct{}

// Undefined implements propctx.ClassHierarchy.
func (Hierarchy) Undefined() propctx.InstanceKey { return Key("undefined") }

// IR adapts one MethodSpec to propctx.IR and propctx.DefUse.
type IR struct {
	spec MethodSpec
	defs map[propctx.Value][]propctx.Value
}

// NewIR builds an IR/DefUse view over spec.
func NewIR(spec MethodSpec) *IR {
	defs := make(map[propctx.Value][]propctx.Value, len(spec.Defs))
	for _, d := range spec.Defs {
		refs := []propctx.Value{propctx.Value(d.Ref)}
		if d.ObjectRef != nil {
			refs = append(refs, propctx.Value(*d.ObjectRef))
		}
		defs[propctx.Value(d.Value)] = refs
	}
	return &IR{spec: spec, defs: defs}
}

// Method implements propctx.IR.
func (ir *IR) Method() propctx.MethodRef { return Ref(ir.spec.Name) }

// NumParams implements propctx.IR.
func (ir *IR) NumParams() int { return len(ir.spec.Params) }

// ParamValue implements propctx.IR.
func (ir *IR) ParamValue(i int) propctx.Value { return propctx.Value(ir.spec.Params[i]) }

// UsesOf implements propctx.IR.
func (ir *IR) UsesOf(v propctx.Value) []propctx.Use {
	specs := ir.spec.Uses[int(v)]
	out := make([]propctx.Use, len(specs))
	for i, s := range specs {
		out[i] = propctx.Use{
			Kind:       parseKind(s.Kind),
			KeyOperand: propctx.Value(s.Key),
			RefOperand: propctx.Value(s.Ref),
		}
	}
	return out
}

// Def implements propctx.DefUse.
func (ir *IR) Def(v propctx.Value) ([]propctx.Value, bool) {
	refs, ok := ir.defs[v]
	return refs, ok
}

func parseKind(s string) propctx.UseKind {
	switch s {
	case "property":
		return propctx.PropertyAccessUse
	case "isdefined":
		return propctx.IsDefinedUse
	default:
		return propctx.OtherUse
	}
}

// Call is the fixture's CallSite: a fixed list of argument values passed to a named callee.
type Call struct {
	CalleeRef propctx.MethodRef
	Args      []propctx.Value
}

// NewCall builds a Call to callee with the given positional argument values.
func NewCall(callee string, args ...int) *Call {
	vs := make([]propctx.Value, len(args))
	for i, a := range args {
		vs[i] = propctx.Value(a)
	}
	return &Call{CalleeRef: Ref(callee), Args: vs}
}

// Callee implements propctx.CallSite.
func (c *Call) Callee() propctx.MethodRef { return c.CalleeRef }

// NumArgs implements propctx.CallSite.
func (c *Call) NumArgs() int { return len(c.Args) }

// ArgValue implements propctx.CallSite.
func (c *Call) ArgValue(i int) (propctx.Value, bool) {
	if i < 0 || i >= len(c.Args) {
		return 0, false
	}
	return c.Args[i], true
}

// Program.MethodByName finds a method spec by name, returning an IR view of it.
func (p *Program) MethodByName(name string) *IR {
	for _, m := range p.Methods {
		if m.Name == name {
			return NewIR(m)
		}
	}
	return nil
}
