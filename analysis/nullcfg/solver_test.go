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
	"context"
	"testing"
)

// TestSolveEmptyGraphReturnsEmptyMap covers spec.md's "if the IR is empty, getState(b) returns a
// fresh initial state" contract: over a graph with no blocks, Solve does no solving and returns an
// empty map.
func TestSolveEmptyGraphReturnsEmptyMap(t *testing.T) {
	in, err := Solve(context.Background(), &ssaGraph{}, nil)
	if err != nil {
		t.Fatalf("Solve over an empty graph returned an error: %v", err)
	}
	if len(in) != 0 {
		t.Fatalf("expected an empty IN map for an empty graph, got %d entries", len(in))
	}
}

// TestSolveGuardedEdgeRefinesReceiverToNeverNull exercises the π-node refinement directly: after
// Solve, the then-edge of a `p != nil` guard should carry p as NeverNull into its target block.
func TestSolveGuardedEdgeRefinesReceiverToNeverNull(t *testing.T) {
	fn := testFunction(t, "derefGuarded")
	graph := BuildGraph(fn)
	in, err := Solve(context.Background(), graph, nil)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	entry := graph.Block(0)
	thenIdx := entry.Normal()[0]
	thenState := in[thenIdx]

	p := fn.Params[0]
	if got := thenState.Get(p); got != NeverNull {
		t.Fatalf("guarded then-block's IN state for p = %v, want NeverNull", got)
	}
}

func TestSolveRespectsCancelledContext(t *testing.T) {
	fn := testFunction(t, "derefGuarded")
	graph := BuildGraph(fn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, graph, nil)
	if err != ErrCancelled {
		t.Fatalf("Solve with an already-cancelled context = %v, want ErrCancelled", err)
	}
}
