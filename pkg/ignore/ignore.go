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

// Package ignore resolves the glob patterns excluded from every file count.
package ignore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// DefaultFileName is the project ignore file looked up in the working directory.
const DefaultFileName = ".prettierignore"

// 🚫 DefaultPatterns are used when the project has no usable ignore file
var DefaultPatterns = []string{
	"node_modules/**",
	"vendor/**",
	".git/**",
	"dist/**",
	"build/**",
	"coverage/**",
	".next/**",
	".nuxt/**",
	"out/**",
}

// 🔍 Resolver loads ignore patterns once and hands out the same set until cleared
type Resolver struct {
	dir      string
	fileName string

	mu     sync.Mutex
	cached []string
}

// 🏭 NewResolver creates a resolver for the ignore file inside dir.
// An empty fileName falls back to DefaultFileName.
func NewResolver(dir, fileName string) *Resolver {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Resolver{
		dir:      filepath.Clean(dir),
		fileName: fileName,
	}
}

// Path returns the location of the project ignore file.
func (r *Resolver) Path() string {
	return filepath.Join(r.dir, r.fileName)
}

// FileName returns the base name of the project ignore file.
func (r *Resolver) FileName() string {
	return r.fileName
}

// HasIgnoreFile reports whether the project ignore file exists. It never
// consults the cache.
func (r *Resolver) HasIgnoreFile() bool {
	_, err := os.Stat(r.Path())
	return err == nil
}

// 📋 Resolve returns the ignore set, reading the ignore file on first use
func (r *Resolver) Resolve(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return r.cached
	}

	r.cached = r.load(ctx)
	return r.cached
}

// Clear drops the memoized set so the next Resolve reads the file again.
func (r *Resolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
}

func (r *Resolver) load(ctx context.Context) []string {
	logger := zerolog.Ctx(ctx)
	path := r.Path()

	if _, err := os.Stat(path); err != nil {
		logger.Debug().Str("path", path).Msg("no ignore file, using default patterns")
		return DefaultPatterns
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not read ignore file, using default patterns")
		return DefaultPatterns
	}

	patterns := Parse(string(content))
	if len(patterns) == 0 {
		logger.Debug().Str("path", path).Msg("ignore file has no usable entries, using default patterns")
		return DefaultPatterns
	}

	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			logger.Warn().Str("pattern", p).Msg("ignore pattern is not a valid glob and will never match")
		}
	}

	logger.Debug().Str("path", path).Int("patterns", len(patterns)).Msg("loaded ignore patterns")
	return patterns
}

// Parse turns ignore file content into glob patterns. Blank lines and
// '#' comments are dropped.
func Parse(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, Normalize(line))
	}
	return patterns
}

// Normalize rewrites a bare name so it covers its whole subtree
// ("build" becomes "build/**"). Entries with a wildcard or a trailing
// separator pass through unchanged.
func Normalize(entry string) string {
	if !strings.Contains(entry, "*") && !strings.HasSuffix(entry, "/") {
		return entry + "/**"
	}
	return entry
}

// Matches reports whether path is excluded by any of the patterns.
// Invalid patterns never match. A trailing separator matches everything
// below that directory.
func Matches(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/") {
			pattern += "**"
		}
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
