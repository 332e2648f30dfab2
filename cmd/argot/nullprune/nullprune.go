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

// Package nullprune implements the front-end to the null-pointer CFG pruning analysis.
package nullprune

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nullctx/nullctx/analysis/nullcfg"
	"github.com/nullctx/nullctx/analysis/nullcfg/reach"
	"github.com/nullctx/nullctx/cmd/argot/tools"
	"github.com/nullctx/nullctx/internal/analysisutil"
	"github.com/nullctx/nullctx/internal/formatutil"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

const usage = `Prune statically-dead edges from a function's control-flow graph using a
four-point null-state lattice.

Usage:
  argot nullprune -func=name [options] <Go file path(s)>

Examples:
  argot nullprune -func=main.f hello.go
  argot nullprune -func=main.f -json -dot=cfg.svg hello.go
`

// Flags represents the parsed nullprune sub-command flags.
type Flags struct {
	tools.CommonFlags
	funcName string
	outJSON  bool
	dotOut   string
}

// NewFlags returns the parsed nullprune flags from args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("nullprune")
	funcName := flags.FlagSet.String("func", "", "qualified name of the function to analyze, e.g. main.f")
	outJSON := flags.FlagSet.Bool("json", false, "output the report as JSON")
	dotOut := flags.FlagSet.String("dot", "", "render the pruned CFG to this image file (extension selects the format, e.g. .svg, .png)")
	tools.SetUsage(flags.FlagSet, usage)
	if err := flags.FlagSet.Parse(args); err != nil {
		return Flags{}, fmt.Errorf("failed to parse command nullprune with args %v: %v", args, err)
	}
	return Flags{
		CommonFlags: tools.CommonFlags{FlagSet: flags.FlagSet, ConfigPath: *flags.ConfigPath, Verbose: *flags.Verbose},
		funcName:    *funcName,
		outJSON:     *outJSON,
		dotOut:      *dotOut,
	}, nil
}

// Report is the JSON/text-printable summary of one analysis run.
type Report struct {
	Function           string `json:"function"`
	DeletedEdges       int    `json:"deletedEdges"`
	IsolatedBlockCount int    `json:"isolatedBlockCount"`
	IsolatedBlocks     []int  `json:"isolatedBlocks"`
}

// Run runs the nullprune analysis with flags.
func Run(flags Flags) error {
	cfg, err := tools.LoadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, formatutil.Faint("Reading sources")+"\n")
	program, _, err := analysisutil.LoadProgram(nil, "", ssa.InstantiateGenerics, flags.FlagSet.Args())
	if err != nil {
		return fmt.Errorf("could not load program: %v", err)
	}

	fn := findFunction(program, flags.funcName)
	if fn == nil {
		return fmt.Errorf("function %q not found in the loaded program", flags.funcName)
	}

	fmt.Fprintf(os.Stderr, formatutil.Faint("Analyzing "+flags.funcName)+"\n")
	graph := nullcfg.BuildGraph(fn)
	ignored := nullcfg.NewIgnoredExceptions(cfg.IgnoredExceptions)
	analysis := nullcfg.New(graph, nil, ignored, nil)
	if err := analysis.Run(context.Background()); err != nil {
		return fmt.Errorf("nullprune analysis failed: %v", err)
	}

	pruned, err := analysis.GetPrunedCfg()
	if err != nil {
		return err
	}
	deleted, err := analysis.GetNumberOfDeletedEdges()
	if err != nil {
		return err
	}
	isolated := reach.Isolated(pruned)

	report := Report{
		Function:           flags.funcName,
		DeletedEdges:       deleted,
		IsolatedBlockCount: len(isolated),
		IsolatedBlocks:     isolated,
	}
	if err := printReport(report, flags.outJSON); err != nil {
		return err
	}

	if flags.dotOut != "" {
		fmt.Fprintf(os.Stderr, formatutil.Faint("Writing pruned CFG to "+flags.dotOut)+"\n")
		if err := RenderToFile(pruned, flags.dotOut); err != nil {
			return fmt.Errorf("could not render pruned CFG: %v", err)
		}
	}

	return nil
}

func findFunction(program *ssa.Program, name string) *ssa.Function {
	for fn := range ssautil.AllFunctions(program) {
		if fn.String() == name || fn.Name() == name || qualifiedName(fn) == name {
			return fn
		}
	}
	return nil
}

func qualifiedName(fn *ssa.Function) string {
	if fn.Pkg == nil {
		return fn.Name()
	}
	return fn.Pkg.Pkg.Path() + "." + fn.Name()
}

func printReport(r Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Printf("%s: %d edges pruned\n", r.Function, r.DeletedEdges)
	if r.IsolatedBlockCount == 0 {
		fmt.Println("no blocks became isolated")
		return nil
	}
	fmt.Printf("%d block(s) isolated (present, unreachable): %v\n", r.IsolatedBlockCount, r.IsolatedBlocks)
	return nil
}
