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

package nullprune

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nullctx/nullctx/analysis/nullcfg"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// formatFor maps a file extension to a graphviz output format; defaults to SVG for an unrecognized
// or missing extension.
func formatFor(path string) graphviz.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return graphviz.PNG
	case ".jpg", ".jpeg":
		return graphviz.JPG
	case ".dot", ".gv":
		return graphviz.XDOT
	default:
		return graphviz.SVG
	}
}

// RenderToFile renders pruned's surviving normal and panic edges to path, one node per block,
// dashed edges for panic successors (the node set is rendered in full per spec.md's "same node
// set, possibly fewer edges" guarantee, so an isolated block still appears, just with no incoming
// edges).
func RenderToFile(pruned nullcfg.Graph, path string) error {
	gv := graphviz.New()
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("could not create graph: %w", err)
	}
	defer graph.Close()

	nodes := make(map[int]*cgraph.Node, len(pruned.Blocks()))
	for _, b := range pruned.Blocks() {
		n, err := graph.CreateNode(strconv.Itoa(b.Index()))
		if err != nil {
			return fmt.Errorf("could not create node for block %d: %w", b.Index(), err)
		}
		n.SetLabel(fmt.Sprintf("block %d", b.Index()))
		nodes[b.Index()] = n
	}

	for _, b := range pruned.Blocks() {
		for _, succ := range b.Normal() {
			target, ok := nodes[succ]
			if !ok {
				continue
			}
			edgeName := fmt.Sprintf("%d->%d/normal", b.Index(), succ)
			if _, err := graph.CreateEdge(edgeName, nodes[b.Index()], target); err != nil {
				return fmt.Errorf("could not create edge %s: %w", edgeName, err)
			}
		}
		for _, succ := range b.PanicSuccs() {
			if succ == nullcfg.PanicExit {
				continue
			}
			target, ok := nodes[succ]
			if !ok {
				continue
			}
			edgeName := fmt.Sprintf("%d->%d/panic", b.Index(), succ)
			e, err := graph.CreateEdge(edgeName, nodes[b.Index()], target)
			if err != nil {
				return fmt.Errorf("could not create edge %s: %w", edgeName, err)
			}
			e.SetStyle(cgraph.DashedEdgeStyle)
		}
	}

	return gv.RenderFilename(graph, formatFor(path), path)
}
