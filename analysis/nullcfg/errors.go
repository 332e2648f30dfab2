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

import "errors"

// ErrCancelled is returned by Run when the caller's context is cancelled between worklist
// rounds. The pruned CFG is left unset.
var ErrCancelled = errors.New("nullcfg: analysis cancelled")

// ErrNotRun is returned by accessors invoked before Run has completed successfully.
var ErrNotRun = errors.New("nullcfg: Run has not completed successfully")

// ArgumentError is returned when a visitor is asked to operate on a block argument it cannot
// accept, e.g. a nil block or one absent from the graph.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return "nullcfg: invalid argument: " + e.Msg }

// InternalAssertionError indicates the analysis reached a state the IR should make impossible,
// e.g. the edge-pruning visitor was asked to classify a non-PEI instruction as a block's relevant
// PEI. It signals an inconsistency in the supplied IR or Graph, not a recoverable condition.
type InternalAssertionError struct {
	Msg string
}

func (e *InternalAssertionError) Error() string { return "nullcfg: internal assertion failed: " + e.Msg }
