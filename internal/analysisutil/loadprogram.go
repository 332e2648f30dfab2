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

// Package analysisutil loads and builds the SSA representation of a Go program for the cmd/argot
// CLI tools to analyze.
package analysisutil

import (
	"fmt"
	"go/token"
	"os"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// PkgLoadMode is the default packages.Load mode for the CLI tools: enough information to build
// SSA and resolve positions back to source.
const PkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedExportFile |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedModule

// LoadProgram loads and builds the SSA representation of the Go packages named by args, on an
// optional cross-compilation platform. A nil cfg gets PkgLoadMode with a fresh token.FileSet.
func LoadProgram(cfg *packages.Config, platform string, buildmode ssa.BuilderMode, args []string) (*ssa.Program, []*packages.Package, error) {
	if cfg == nil {
		cfg = &packages.Config{Mode: PkgLoadMode, Tests: false, Fset: token.NewFileSet()}
	}
	if platform != "" {
		cfg.Env = append(os.Environ(), fmt.Sprintf("GOOS=%s", platform))
	}

	initial, err := packages.Load(cfg, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(initial) == 0 {
		return nil, nil, fmt.Errorf("no packages")
	}
	if packages.PrintErrors(initial) > 0 {
		return nil, nil, fmt.Errorf("could not load program: errors found while loading packages")
	}

	program, ssaPkgs := ssautil.AllPackages(initial, buildmode)
	for i, p := range ssaPkgs {
		if p == nil {
			return nil, nil, fmt.Errorf("cannot build SSA for package %s", initial[i])
		}
	}
	program.Build()

	return program, initial, nil
}
