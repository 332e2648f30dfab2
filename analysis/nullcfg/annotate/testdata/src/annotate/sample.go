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

// Package sample holds a small annotate-package test fixture: Sample always dereferences a nil
// local, so both of its branches become unreachable once null-pointer pruning deletes the entry
// block's normal edges.
package sample

// Sample dereferences a provably-nil local before branching, so pruning deletes both of the
// branches below.
func Sample() int {
	var p *int
	v := *p
	if v > 0 {
		return v
	}
	return 0
}
