// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/dolthub/malloy-core/sql"
)

// Config holds non-functional compiler knobs. None of them change
// translation semantics — they only control observability around it.
type Config struct {
	// StrictAggregateSources, when true, additionally logs a warning-level
	// entry when an aggregate's source resolves to a struct. The condition
	// itself is always a diagnosable error (spec's Open Question (a));
	// this flag only controls the extra logging.
	StrictAggregateSources bool `yaml:"strictAggregateSources"`

	// DefaultTimeframeForCast documents, for config dumps, the timeframe a
	// timestamp->date cast stamps on its result. ExprCast always uses "day"
	// regardless of this value — it exists for observability, not to
	// change behavior.
	DefaultTimeframeForCast sql.Timeframe `yaml:"defaultTimeframeForCast"`
}

// DefaultConfig returns the zero-knob configuration: non-strict, with
// DefaultTimeframeForCast set to the fixed "day" the cast rule actually
// uses.
func DefaultConfig() *Config {
	return &Config{DefaultTimeframeForCast: sql.Day}
}

// LoadConfig parses a YAML configuration document.
func LoadConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("compiler: parse config: %w", err)
	}
	return cfg, nil
}
