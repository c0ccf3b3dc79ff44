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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
//
//	ignore_file = ".prettierignore"
//
//	category "Go" {
//	  pattern = "**/*.go"
//	  last    = true
//	  step "gofmt" {
//	    command = ["gofmt", "-w", "{files}"]
//	  }
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "formatrc.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclStep struct {
		Name    string   `hcl:"name,label"`
		Command []string `hcl:"command"`
	}
	type hclCategory struct {
		Label   string    `hcl:"label,label"`
		Pattern string    `hcl:"pattern"`
		Tag     string    `hcl:"tag,optional"`
		Command []string  `hcl:"command,optional"`
		Last    bool      `hcl:"last,optional"`
		Steps   []hclStep `hcl:"step,block"`
	}
	type hclConfig struct {
		IgnoreFile string        `hcl:"ignore_file,optional"`
		Timeout    string        `hcl:"timeout,optional"`
		Categories []hclCategory `hcl:"category,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		IgnoreFile: hclCfg.IgnoreFile,
		Timeout:    hclCfg.Timeout,
	}
	for _, c := range hclCfg.Categories {
		cat := Category{
			Pattern: c.Pattern,
			Label:   c.Label,
			Tag:     c.Tag,
			Command: c.Command,
			Last:    c.Last,
		}
		for _, s := range c.Steps {
			cat.Steps = append(cat.Steps, Step{Name: s.Name, Command: s.Command})
		}
		cfg.Categories = append(cfg.Categories, cat)
	}

	return cfg, nil
}
