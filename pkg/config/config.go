// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/formatrc/pkg/ignore"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is loaded when no config path is given explicitly.
const DefaultFile = ".formatrc.yaml"

// Command placeholders expanded right before a tool runs.
const (
	PatternPlaceholder = "{pattern}"
	FilesPlaceholder   = "{files}"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🏷️ Kind tells single-command categories apart from multi-step ones
type Kind int

const (
	KindSingle Kind = iota
	KindMultiStep
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMultiStep:
		return "multi-step"
	default:
		return "unknown"
	}
}

// 🪜 Step is one sub-command of a multi-step category
type Step struct {
	Name    string   `json:"name" yaml:"name"`
	Command []string `json:"command" yaml:"command"`
}

// 📂 Category binds a file pattern to the tool that formats it
type Category struct {
	Pattern string   `json:"pattern" yaml:"pattern"`                     // Glob selecting the category's files
	Label   string   `json:"label" yaml:"label"`                         // Human-readable name
	Tag     string   `json:"tag,omitempty" yaml:"tag,omitempty"`         // Display color
	Command []string `json:"command,omitempty" yaml:"command,omitempty"` // Single tool invocation
	Steps   []Step   `json:"steps,omitempty" yaml:"steps,omitempty"`     // Sub-commands, run in order
	Last    bool     `json:"last,omitempty" yaml:"last,omitempty"`       // Always processed after the others
}

// Kind returns KindMultiStep when the category has steps.
func (c Category) Kind() Kind {
	if len(c.Steps) > 0 {
		return KindMultiStep
	}
	return KindSingle
}

// 📚 Config is the static category list plus the ignore-file lookup
type Config struct {
	IgnoreFile string     `json:"ignore_file,omitempty" yaml:"ignore_file,omitempty"`
	Timeout    string     `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Categories []Category `json:"categories" yaml:"categories"`

	location string
	timeout  time.Duration
}

// Location returns the file the config was loaded from, empty for defaults.
func (cfg *Config) Location() string {
	return cfg.location
}

// CommandTimeout bounds each external command. Zero means no limit.
func (cfg *Config) CommandTimeout() time.Duration {
	return cfg.timeout
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, returning the built-in categories when path is
// the implicit default file and it does not exist.
func LoadOrDefault(ctx context.Context, path string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using built-in categories")
			return Default(), nil
		}
	}
	return Load(ctx, path)
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Categories) == 0 {
		return errors.Errorf("at least one category is required")
	}

	for i, c := range cfg.Categories {
		name := fmt.Sprintf("categories[%d]", i)
		if c.Label == "" {
			return errors.Errorf("%s: label is required", name)
		}
		name = fmt.Sprintf("category %q", c.Label)
		if c.Pattern == "" {
			return errors.Errorf("%s: pattern is required", name)
		}
		if !doublestar.ValidatePattern(c.Pattern) {
			return errors.Errorf("%s: invalid pattern %q", name, c.Pattern)
		}
		if len(c.Command) > 0 && len(c.Steps) > 0 {
			return errors.Errorf("%s: command and steps are mutually exclusive", name)
		}
		if len(c.Command) == 0 && len(c.Steps) == 0 {
			return errors.Errorf("%s: command or steps is required", name)
		}
		for j, s := range c.Steps {
			if s.Name == "" {
				return errors.Errorf("%s: steps[%d]: name is required", name, j)
			}
			if len(s.Command) == 0 {
				return errors.Errorf("%s: step %q: command is required", name, s.Name)
			}
		}
	}

	if cfg.IgnoreFile == "" {
		cfg.IgnoreFile = ignore.DefaultFileName
	}

	cfg.timeout = 0
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return errors.Errorf("parsing timeout: %w", err)
		}
		if d < 0 {
			return errors.Errorf("timeout must not be negative")
		}
		cfg.timeout = d
	}

	return nil
}

// 📝 String returns a short description of the config
func (cfg *Config) String() string {
	source := cfg.location
	if source == "" {
		source = "built-in"
	}
	return fmt.Sprintf("%d categories (%s), ignore file %s", len(cfg.Categories), source, cfg.IgnoreFile)
}
