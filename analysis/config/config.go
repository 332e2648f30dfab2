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

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config carries the options shared by the nullcfg and propctx analyses. If some field is not
// defined in the config file, it will be empty/zero in the struct.
type Config struct {
	Options

	sourceFile string
}

// Options are the yaml-settable fields of Config.
type Options struct {
	// LogLevel controls the verbosity of both analyses and of the CLI.
	LogLevel int `yaml:"log-level"`

	// IgnoredExceptions lists panic/exception type names that nullcfg's pruning visitor subtracts
	// from each instruction's exception set before deciding prunability (spec.md §6's
	// ignoreExceptions collaborator). nullcfg models a nil dereference as "runtime.Error", so
	// listing that name stops receiver accesses from being pruned and lets static calls' panic
	// edges be pruned.
	IgnoredExceptions []string `yaml:"ignored-exceptions"`

	// PropertyArgIndex is the argument position propctx treats as the dynamic property-name
	// argument (spec.md §4.B1's distinguished index N).
	PropertyArgIndex int `yaml:"property-arg-index"`

	// MaxMarkerContextDepth is a marker-context depth setting that is loaded and defaulted here;
	// propctx's Selector does not read it and propagates marker contexts without a depth bound.
	MaxMarkerContextDepth int `yaml:"max-marker-context-depth"`
}

// NewDefault returns a config with the defaults both analyses run with when no config file is
// supplied.
func NewDefault() *Config {
	return &Config{
		Options: Options{
			LogLevel:              DefaultLogLevel,
			IgnoredExceptions:     append([]string{}, DefaultIgnoredExceptions...),
			PropertyArgIndex:      DefaultPropertyArgIndex,
			MaxMarkerContextDepth: DefaultMaxMarkerContextDepth,
		},
	}
}

// Load reads a configuration from a yaml file, filling in defaults for anything left unset.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}

	cfg.sourceFile = filename

	if cfg.LogLevel == 0 {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.PropertyArgIndex == 0 {
		cfg.PropertyArgIndex = DefaultPropertyArgIndex
	}
	if cfg.MaxMarkerContextDepth <= 0 {
		cfg.MaxMarkerContextDepth = DefaultMaxMarkerContextDepth
	}
	if len(cfg.IgnoredExceptions) == 0 {
		cfg.IgnoredExceptions = append([]string{}, DefaultIgnoredExceptions...)
	}

	return cfg, nil
}

// Verbose returns true if the configuration verbosity setting is larger than Info (i.e. Debug or
// Trace).
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}

// IsIgnoredException returns true if typeName is in the configured ignore-list.
func (c Config) IsIgnoredException(typeName string) bool {
	for _, e := range c.IgnoredExceptions {
		if e == typeName {
			return true
		}
	}
	return false
}
