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

package main

// derefGuarded dereferences p only after a nil check, so the guarded block's IN state should
// refine p to never-null, letting the panic edge on the dereference be pruned.
func derefGuarded(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}

// derefAlwaysNil dereferences a local that is provably nil, so the fall-through (normal) edge out
// of the dereferencing block is the one that becomes dead, not the panic edge.
func derefAlwaysNil() int {
	var p *int
	v := *p
	if v > 0 {
		return 1
	}
	return 0
}

func callee() {}

// staticCall calls a known static function with no receiver to test for nilness.
func staticCall() {
	callee()
}

// callThroughFuncValue calls a func-typed parameter after checking it for nil, exercising the
// dynamic-dispatch (peiReceiverAccess) PEI classification for a non-invoke call.
func callThroughFuncValue(f func()) {
	if f != nil {
		f()
	}
}

func main() {}
