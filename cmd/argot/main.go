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

import (
	"fmt"
	"os"

	"github.com/nullctx/nullctx/cmd/argot/nullprune"
	"github.com/nullctx/nullctx/cmd/argot/propctx"
	"github.com/nullctx/nullctx/cmd/argot/tools"
)

const usage = `Argot: null-pointer CFG pruning and property-name context tooling.
Usage:
  argot [tool] [options] <args>
Tools:
  - nullprune: prunes statically-dead CFG edges of a function using a null-state lattice
  - propctx: classifies property-name usage of methods described in a YAML fixture
Examples:
  Prune a function's CFG: argot nullprune -func=main.f hello.go
  Classify a fixture:      argot propctx -index=1 methods.yaml`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "nullprune":
		flags, err := nullprune.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := nullprune.Run(flags); err != nil {
			errExit(err)
		}
	case "propctx":
		flags, err := propctx.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := propctx.Run(flags); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if hint := tools.HintForErrorMessage(err.Error()); hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(2)
}
