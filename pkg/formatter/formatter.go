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

// Package formatter runs the external tool behind a category and reports
// what happened.
package formatter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/formatrc/pkg/config"
)

// 📊 Outcome is the result of formatting one category
type Outcome struct {
	Succeeded      bool
	FilesProcessed int
	Elapsed        time.Duration
	Errors         []string
}

// ElapsedMs returns Elapsed in fractional milliseconds.
func (o Outcome) ElapsedMs() float64 {
	return float64(o.Elapsed) / float64(time.Millisecond)
}

// 🔢 Counter is what the formatter needs from the file counter
type Counter interface {
	Count(ctx context.Context, pattern string) int
	Files(ctx context.Context, pattern string) []string
	Root() string
}

// 🎯 Invoker formats a single category
type Invoker interface {
	Invoke(ctx context.Context, category config.Category) Outcome
}

// 🔧 Formatter implements Invoker on top of a Counter and a Runner
type Formatter struct {
	counter Counter
	runner  Runner
	now     func() time.Time
}

var _ Invoker = (*Formatter)(nil)

// 🏭 New creates a formatter
func New(counter Counter, runner Runner) *Formatter {
	return &Formatter{
		counter: counter,
		runner:  runner,
		now:     time.Now,
	}
}

// 🏃 Invoke counts the category's files and, when there are any, runs its tool
func (f *Formatter) Invoke(ctx context.Context, category config.Category) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("category", category.Label).Str("kind", category.Kind().String()).Logger()
	start := f.now()

	count := f.counter.Count(ctx, category.Pattern)
	if count == 0 {
		logger.Debug().Msg("no files, skipping tool")
		return Outcome{
			Succeeded: true,
			Elapsed:   f.now().Sub(start),
		}
	}

	args := &expander{ctx: ctx, counter: f.counter, pattern: category.Pattern}

	var errs []string
	switch category.Kind() {
	case config.KindMultiStep:
		errs = f.runSteps(logger.WithContext(ctx), category, args)
	default:
		errs = f.runSingle(logger.WithContext(ctx), category, args)
	}

	outcome := Outcome{
		Succeeded:      len(errs) == 0,
		FilesProcessed: count,
		Elapsed:        f.now().Sub(start),
		Errors:         errs,
	}

	logger.Debug().
		Bool("succeeded", outcome.Succeeded).
		Int("files", outcome.FilesProcessed).
		Dur("elapsed", outcome.Elapsed).
		Msg("category finished")

	return outcome
}

func (f *Formatter) runSingle(ctx context.Context, category config.Category, args *expander) []string {
	if err := f.runner.Run(ctx, f.counter.Root(), args.expand(category.Command)); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// runSteps attempts every step even after a failure. Steps whose binary
// is missing are skipped without being reported.
func (f *Formatter) runSteps(ctx context.Context, category config.Category, args *expander) []string {
	logger := zerolog.Ctx(ctx)

	var errs []string
	for _, step := range category.Steps {
		if !f.runner.Available(step.Command[0]) {
			logger.Debug().Str("step", step.Name).Str("bin", step.Command[0]).Msg("step unavailable, skipping")
			continue
		}
		if err := f.runner.Run(ctx, f.counter.Root(), args.expand(step.Command)); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", step.Name, err.Error()))
		}
	}
	return errs
}

// expander fills in command placeholders, listing files at most once.
type expander struct {
	ctx     context.Context
	counter Counter
	pattern string
	files   []string
	listed  bool
}

func (e *expander) expand(argv []string) []string {
	out := make([]string, 0, len(argv))
	for _, arg := range argv {
		if arg == config.FilesPlaceholder {
			if !e.listed {
				e.files = e.counter.Files(e.ctx, e.pattern)
				e.listed = true
			}
			out = append(out, e.files...)
			continue
		}
		out = append(out, strings.ReplaceAll(arg, config.PatternPlaceholder, e.pattern))
	}
	return out
}
