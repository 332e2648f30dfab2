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

package config

const (
	// DefaultMaxMarkerContextDepth is the default for Options.MaxMarkerContextDepth, which
	// propctx's Selector does not read.
	DefaultMaxMarkerContextDepth = 5

	// DefaultPropertyArgIndex is the argument position propctx treats as the dynamic property-name
	// argument when no override is configured (WALA's front end always distinguishes argument 1,
	// the property key passed to a property-read/write call).
	DefaultPropertyArgIndex = 1

	// DefaultLogLevel is used when a config file omits log-level.
	DefaultLogLevel = int(InfoLevel)
)

// DefaultIgnoredExceptions is the default ignore-list handed to nullcfg's pruning visitor,
// mirroring the "ignore exceptions" set IntraprocNullPointerAnalysis.java accepts from its caller.
// "runtime.Error" is the name nullcfg gives the nil-dereference panic itself, so with this default
// no receiver access is pruned and every static call's panic edge is.
var DefaultIgnoredExceptions = []string{
	"runtime.Error",
}
