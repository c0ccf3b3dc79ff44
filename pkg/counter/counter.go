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

// Package counter counts the files a glob pattern matches once the ignore
// set has been subtracted.
package counter

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/formatrc/pkg/ignore"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentCounts bounds DetailedCounts fan-out
const maxConcurrentCounts = 4

// 📊 PatternSpec names a pattern for a detailed breakdown
type PatternSpec struct {
	Pattern string
	Label   string
}

// 📊 PatternCount is one row of a detailed breakdown
type PatternCount struct {
	Pattern string
	Label   string
	Count   int
}

// Count returns how many files under fsys match pattern and none of the
// ignores. A bad pattern or an I/O failure yields zero.
func Count(ctx context.Context, fsys fs.FS, pattern string, ignores []string) int {
	return len(List(ctx, fsys, pattern, ignores))
}

// List returns the slash-separated paths matched by pattern, minus ignores.
// Failures are logged at debug level and produce an empty list.
func List(ctx context.Context, fsys fs.FS, pattern string, ignores []string) []string {
	logger := zerolog.Ctx(ctx)

	if !doublestar.ValidatePattern(pattern) {
		logger.Debug().Str("pattern", pattern).Msg("invalid glob pattern, treating as no matches")
		return nil
	}

	var files []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if ignore.Matches(ignores, path) {
			return nil
		}
		files = append(files, path)
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		logger.Debug().Err(err).Str("pattern", pattern).Msg("glob failed, treating as no matches")
		return nil
	}

	return files
}

// 🔢 Counter counts files below a root directory using a shared ignore resolver
type Counter struct {
	root     string
	fsys     fs.FS
	resolver *ignore.Resolver
}

// 🏭 New creates a counter rooted at dir
func New(dir string, resolver *ignore.Resolver) *Counter {
	return NewWithFS(dir, os.DirFS(dir), resolver)
}

// NewWithFS creates a counter over an arbitrary filesystem. dir is only
// used to build paths handed to external tools.
func NewWithFS(dir string, fsys fs.FS, resolver *ignore.Resolver) *Counter {
	return &Counter{
		root:     filepath.Clean(dir),
		fsys:     fsys,
		resolver: resolver,
	}
}

// Root returns the directory the counter walks.
func (c *Counter) Root() string {
	return c.root
}

// Count counts files matching pattern.
func (c *Counter) Count(ctx context.Context, pattern string) int {
	return Count(ctx, c.fsys, pattern, c.resolver.Resolve(ctx))
}

// Files lists files matching pattern, relative to Root.
func (c *Counter) Files(ctx context.Context, pattern string) []string {
	files := List(ctx, c.fsys, pattern, c.resolver.Resolve(ctx))
	for i, f := range files {
		files[i] = filepath.FromSlash(f)
	}
	return files
}

// CountMultiple sums independent counts. A file matched by two patterns is
// counted twice.
func (c *Counter) CountMultiple(ctx context.Context, patterns []string) int {
	total := 0
	for _, pattern := range patterns {
		total += c.Count(ctx, pattern)
	}
	return total
}

// 🔍 DetailedCounts counts each pattern, preserving input order
func (c *Counter) DetailedCounts(ctx context.Context, specs []PatternSpec) []PatternCount {
	// warm the cache before fanning out
	ignores := c.resolver.Resolve(ctx)

	results := make([]PatternCount, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCounts)

	for i, spec := range specs {
		g.Go(func() error {
			results[i] = PatternCount{
				Pattern: spec.Pattern,
				Label:   spec.Label,
				Count:   Count(gctx, c.fsys, spec.Pattern, ignores),
			}
			return nil
		})
	}

	// counting never fails, so Wait only synchronizes
	_ = g.Wait()
	return results
}

// IgnorePatterns returns the resolved ignore set.
func (c *Counter) IgnorePatterns(ctx context.Context) []string {
	return c.resolver.Resolve(ctx)
}

// UsingIgnoreFile reports whether the project ignore file exists.
func (c *Counter) UsingIgnoreFile() bool {
	return c.resolver.HasIgnoreFile()
}
