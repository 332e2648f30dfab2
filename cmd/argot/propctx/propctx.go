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

// Package propctx implements a small one-shot driver for the property-name context selector: it
// loads a YAML method fixture (see analysis/propctx/fixture) and prints the B1 classification of
// every method it describes, since there is no real dynamic-object-property Go front end to run
// the selector against in this repo.
package propctx

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nullctx/nullctx/analysis/propctx"
	"github.com/nullctx/nullctx/analysis/propctx/fixture"
	"github.com/nullctx/nullctx/cmd/argot/tools"
	"github.com/nullctx/nullctx/internal/formatutil"
)

const usage = `Classify property-name usage of methods described in a YAML fixture file.

Usage:
  argot propctx -index=N fixture.yaml

Examples:
  argot propctx -index=1 methods.yaml
`

// Flags represents the parsed propctx sub-command flags.
type Flags struct {
	tools.CommonFlags
	index   int
	outJSON bool
}

// NewFlags returns the parsed propctx flags from args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("propctx")
	index := flags.FlagSet.Int("index", 0, "zero-based distinguishing argument index N")
	outJSON := flags.FlagSet.Bool("json", false, "output results as JSON")
	tools.SetUsage(flags.FlagSet, usage)
	if err := flags.FlagSet.Parse(args); err != nil {
		return Flags{}, fmt.Errorf("failed to parse command propctx with args %v: %v", args, err)
	}
	return Flags{
		CommonFlags: tools.CommonFlags{FlagSet: flags.FlagSet, ConfigPath: *flags.ConfigPath, Verbose: *flags.Verbose},
		index:       *index,
		outJSON:     *outJSON,
	}, nil
}

// Result is one method's classification, printed or JSON-encoded.
type Result struct {
	Method string `json:"method"`
	Class  string `json:"classification"`
}

// Run runs the propctx classifier over the fixture file named by flags.
func Run(flags Flags) error {
	args := flags.FlagSet.Args()
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one fixture file argument, got %d", len(args))
	}

	fmt.Fprintf(os.Stderr, formatutil.Faint("Reading fixture")+"\n")
	prog, err := fixture.Load(args[0])
	if err != nil {
		return err
	}

	classifier := propctx.NewClassifier(flags.index)
	var results []Result
	for _, m := range prog.Methods {
		ir := fixture.NewIR(m)
		results = append(results, Result{Method: m.Name, Class: classifier.Classify(ir).String()})
	}

	if flags.outJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Printf("%s: %s\n", r.Method, r.Class)
	}
	return nil
}
