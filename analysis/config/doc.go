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

/*
Package config provides a simple way to manage configuration files for the nullcfg and propctx
analyses.

Use [Load] to load a configuration from a specific filename, or [NewDefault] to get the defaults
both analyses run with when no config file is given.

A config file should be in yaml format. For example, a valid config file is as follows:

	log-level: 4
	ignored-exceptions:
	  - runtime.Error
	property-arg-index: 1
	max-marker-context-depth: 5
*/
package config
