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

package annotate_test

import (
	"context"
	"path"
	"runtime"
	"testing"

	"github.com/nullctx/nullctx/analysis/nullcfg"
	"github.com/nullctx/nullctx/analysis/nullcfg/annotate"
	"github.com/nullctx/nullctx/analysis/nullcfg/reach"
	"github.com/nullctx/nullctx/internal/analysisutil"

	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// TestAnnotateDeadBlocks loads the sample fixture once through decorator.Load, builds SSA from
// that same *packages.Package (so the ssa.Function's instruction positions and the dst decorator's
// AST positions come from one shared token.FileSet), runs the real pruning pipeline, and confirms
// the blocks reach.Isolated finds get an annotation.
func TestAnnotateDeadBlocks(t *testing.T) {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "testdata/src/annotate")

	config := &packages.Config{Mode: analysisutil.PkgLoadMode, Tests: false}
	dpkgs, err := decorator.Load(config, dir)
	if err != nil {
		t.Fatalf("could not load package: %v", err)
	}
	if len(dpkgs) != 1 {
		t.Fatalf("expected exactly one loaded package, got %d", len(dpkgs))
	}
	dpkg := dpkgs[0]

	program, ssaPkgs := ssautil.AllPackages([]*packages.Package{dpkg.Package}, ssa.InstantiateGenerics)
	program.Build()
	if len(ssaPkgs) != 1 || ssaPkgs[0] == nil {
		t.Fatalf("could not build SSA for the sample package")
	}

	fn := ssaPkgs[0].Func("Sample")
	if fn == nil {
		t.Fatalf("function Sample not found in built SSA")
	}

	graph := nullcfg.BuildGraph(fn)
	an := nullcfg.New(graph, nil, nil, nil)
	if err := an.Run(context.Background()); err != nil {
		t.Fatalf("analysis run failed: %v", err)
	}
	pruned, err := an.GetPrunedCfg()
	if err != nil {
		t.Fatalf("could not get pruned cfg: %v", err)
	}

	isolated := reach.Isolated(pruned)
	if len(isolated) == 0 {
		t.Fatalf("expected Sample's always-nil deref to isolate at least one block")
	}

	ranges := annotate.RangesFor(fn, isolated)
	if len(ranges) == 0 {
		t.Fatalf("expected at least one dead range for isolated blocks %v", isolated)
	}

	count := annotate.AnnotateDeadBlocks(dpkg, "Sample", ranges)
	if count == 0 {
		t.Fatalf("expected at least one statement to be annotated")
	}

	// A second pass over the same ranges must not double-annotate (prependComment dedups).
	if again := annotate.AnnotateDeadBlocks(dpkg, "Sample", ranges); again != 0 {
		t.Fatalf("expected a repeated annotation pass to add nothing new, got %d", again)
	}
}
