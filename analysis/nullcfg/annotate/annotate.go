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

// Package annotate decorates source statements that fall in a block the null-pointer pruning
// analysis found isolated (spec.md §8 property 2's "pruned.nodes == cfg.nodes": the block survives
// in the node set, it just lost every surviving predecessor). It does not rewrite control flow; it
// only attaches a comment so a reviewer can see which statements pruning determined are dead.
//
// This mirrors the dst decorator/cursor idiom analysis/refactor's InsertNilChecks uses to insert
// source, inverted here to annotate rather than insert: walk the function's statements, and where a
// statement's source position falls inside a dead block's instruction range, prepend a comment
// decoration instead of a new statement.
package annotate

import (
	"fmt"
	"go/token"

	"golang.org/x/tools/go/ssa"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/dstutil"
	"golang.org/x/exp/slices"
)

// commentPrefix starts the decoration text prepended to every statement whose position falls
// inside a dead block's range; the block index and a closing parenthesis complete it.
const commentPrefix = "// unreachable after null-pointer pruning (block "

// DeadRange is the source extent of one isolated (pruned-unreachable) basic block.
type DeadRange struct {
	Block int
	Start token.Pos
	End   token.Pos
}

// RangesFor computes a DeadRange per block index in isolated, from fn's real instruction
// positions. Blocks with no instructions carrying a position are skipped: there is no source
// extent to anchor a comment to.
func RangesFor(fn *ssa.Function, isolated []int) []DeadRange {
	var ranges []DeadRange
	for _, idx := range isolated {
		if idx < 0 || idx >= len(fn.Blocks) {
			continue
		}
		bb := fn.Blocks[idx]
		var start, end token.Pos
		for _, instr := range bb.Instrs {
			p := instr.Pos()
			if p == token.NoPos {
				continue
			}
			if start == token.NoPos {
				start = p
			}
			end = p
		}
		if start == token.NoPos {
			continue
		}
		ranges = append(ranges, DeadRange{Block: idx, Start: start, End: end})
	}
	slices.SortFunc(ranges, func(a, b DeadRange) bool { return a.Start < b.Start })
	return ranges
}

// AnnotateDeadBlocks walks fn's declaration in pkg and prepends a comment decoration to every
// statement whose source position falls within one of ranges. It returns the number of statements
// newly annotated by this call; zero means none of the ranges matched a statement that did not
// already carry its comment (e.g. a repeated pass, or ranges is empty).
func AnnotateDeadBlocks(pkg *decorator.Package, funcName string, ranges []DeadRange) int {
	if len(ranges) == 0 {
		return 0
	}

	count := 0
	for _, dstFile := range pkg.Syntax {
		for _, decl := range dstFile.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok || funcDecl.Name == nil || funcDecl.Name.Name != funcName {
				continue
			}
			dstutil.Apply(funcDecl, nil, func(c *dstutil.Cursor) bool {
				stmt, ok := c.Node().(dst.Stmt)
				if !ok {
					return true
				}
				astNode, ok := pkg.Decorator.Ast.Nodes[stmt]
				if !ok {
					return true
				}
				pos := astNode.Pos()
				for _, r := range ranges {
					if pos >= r.Start && pos <= r.End {
						if prependComment(stmt, r.Block) {
							count++
						}
						break
					}
				}
				return true
			})
		}
	}
	return count
}

// prependComment adds block's comment to stmt and reports whether it did; a statement that
// already carries that exact comment is left unchanged.
func prependComment(stmt dst.Stmt, block int) bool {
	decs := stmt.Decorations()
	text := fmt.Sprintf("%s%d)", commentPrefix, block)
	for _, existing := range decs.Start.All() {
		if existing == text {
			return false
		}
	}
	decs.Start.Prepend(text)
	return true
}
