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

import "github.com/walteh/formatrc/pkg/ignore"

func prettier() []string {
	return []string{"prettier", "--write", PatternPlaceholder, "--ignore-unknown", "--log-level", "warn"}
}

// DefaultCategories returns the built-in category list. Go files are
// formatted last, with gofmt followed by goimports.
func DefaultCategories() []Category {
	return []Category{
		{Pattern: "**/*.json", Label: "JSON", Tag: "yellow", Command: prettier()},
		{Pattern: "**/*.{yml,yaml}", Label: "YAML", Tag: "blue", Command: prettier()},
		{Pattern: "**/*.html", Label: "HTML", Tag: "hiRed", Command: prettier()},
		{Pattern: "**/*.{jsx,tsx}", Label: "JSX/TSX", Tag: "cyan", Command: prettier()},
		{Pattern: "**/*.{js,ts}", Label: "JavaScript/TypeScript", Tag: "green", Command: prettier()},
		{Pattern: "**/*.{css,scss,sass,less}", Label: "CSS/Sass", Tag: "magenta", Command: prettier()},
		{Pattern: "**/*.{md,mdx}", Label: "Markdown", Tag: "white", Command: prettier()},
		{Pattern: "**/*.xml", Label: "XML", Tag: "hiBlack", Command: prettier()},
		{Pattern: "**/*.vue", Label: "Vue", Tag: "green", Command: prettier()},
		{Pattern: "**/*.svelte", Label: "Svelte", Tag: "red", Command: prettier()},
		{
			Pattern: "**/*.go",
			Label:   "Go",
			Tag:     "hiCyan",
			Last:    true,
			Steps: []Step{
				{Name: "gofmt", Command: []string{"gofmt", "-w", FilesPlaceholder}},
				{Name: "goimports", Command: []string{"goimports", "-w", FilesPlaceholder}},
			},
		},
	}
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		IgnoreFile: ignore.DefaultFileName,
		Categories: DefaultCategories(),
	}
}
