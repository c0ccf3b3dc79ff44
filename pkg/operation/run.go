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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/formatrc/pkg/config"
	"github.com/walteh/formatrc/pkg/formatter"
	"github.com/walteh/formatrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🚀 Run formats every category once, in order, then prints the detailed
// log and the summary. A failing category never stops the run; a failing
// progress sink or a panic aborts it.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	logger := o.logger(ctx)

	o.state = StateIdle
	o.stats = Stats{}
	o.buffer.Reset()

	report := &Report{}
	steps := len(o.order)

	err := runPhases(ctx,
		phase{name: "initializing", fn: func(ctx context.Context) error {
			o.setState(ctx, StateInitializing)
			report.IgnorePatterns = o.initialize(ctx, logger)
			return nil
		}},
		phase{name: "counting", fn: func(ctx context.Context) error {
			o.setState(ctx, StateCounting)
			report.DiscoveredFiles = o.count(ctx, logger)
			return nil
		}},
		phase{name: "processing", fn: func(ctx context.Context) error {
			o.setState(ctx, StateProcessing)
			if err := o.opts.Progress.Start(ctx, steps); err != nil {
				return errors.Errorf("starting progress: %w", err)
			}
			return o.process(ctx)
		}},
		phase{name: "finalizing", fn: func(ctx context.Context) error {
			o.setState(ctx, StateFinalizing)
			if err := o.opts.Progress.Advance(ctx, steps, "Finalizing..."); err != nil {
				return errors.Errorf("completing progress: %w", err)
			}
			if err := o.opts.Progress.Stop(ctx); err != nil {
				return errors.Errorf("stopping progress: %w", err)
			}
			return nil
		}},
	)
	if err != nil {
		return o.abort(ctx, logger, report, err)
	}

	o.setState(ctx, StateReporting)
	logger.Flush("📋 Detailed Log", o.buffer)
	o.summarize(logger, report.IgnorePatterns)

	report.State = o.state
	report.Stats = o.stats
	if o.stats.ErrorCount > 0 {
		report.ExitCode = 1
	}
	return report, nil
}

func (o *Orchestrator) initialize(ctx context.Context, logger *log.Logger) []string {
	logger.Header(o.opts.Title)
	logger.Info("Starting formatting process...")

	name := o.opts.Resolver.FileName()
	if o.opts.Resolver.HasIgnoreFile() {
		logger.Infof("📋 Using ignore patterns from %s", name)
	} else {
		logger.Infof("📋 Using default ignore patterns (no %s found)", name)
	}
	logger.LogNewline()

	return o.opts.Resolver.Resolve(ctx)
}

// count sums files across categories for display. The number of progress
// steps does not depend on it.
func (o *Orchestrator) count(ctx context.Context, logger *log.Logger) int {
	if o.opts.Spinner != nil {
		o.opts.Spinner.Start(ctx, "Analyzing project files...")
	}

	total := 0
	for _, category := range o.order {
		total += o.opts.Counter.Count(ctx, category.Pattern)
	}

	info := "using default patterns"
	if o.opts.Resolver.HasIgnoreFile() {
		info = "respecting " + o.opts.Resolver.FileName()
	}
	msg := fmt.Sprintf("Found %d files to process (%s)", total, info)

	if o.opts.Spinner != nil {
		o.opts.Spinner.Success(ctx, msg)
	} else {
		logger.Success(msg)
	}
	return total
}

func (o *Orchestrator) process(ctx context.Context) error {
	for i, category := range o.order {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("interrupted before %s: %w", category.Label, err)
		}
		if err := o.opts.Progress.Advance(ctx, i+1, fmt.Sprintf("Processing %s...", category.Label)); err != nil {
			return errors.Errorf("advancing progress for %s: %w", category.Label, err)
		}
		o.fold(ctx, category, o.opts.Invoker.Invoke(ctx, category))
	}
	return nil
}

// fold adds one outcome to the statistics and the detailed log.
func (o *Orchestrator) fold(ctx context.Context, category config.Category, outcome formatter.Outcome) {
	o.stats.TotalFiles += outcome.FilesProcessed
	o.stats.TotalDuration += outcome.Elapsed

	zerolog.Ctx(ctx).Debug().
		Str("category", category.Label).
		Bool("succeeded", outcome.Succeeded).
		Int("files", outcome.FilesProcessed).
		Dur("elapsed", outcome.Elapsed).
		Msg("category finished")

	switch {
	case outcome.FilesProcessed == 0:
		o.stats.SkippedCount++
		o.buffer.Skipf("No %s files found", category.Label)
	case outcome.Succeeded:
		o.stats.SuccessCount++
		o.buffer.Successf("%s: %d file(s) formatted (%.0fms)", category.Label, outcome.FilesProcessed, outcome.ElapsedMs())
	default:
		o.stats.ErrorCount++
		o.buffer.Warningf("%s: %d file(s) - some issues encountered", category.Label, outcome.FilesProcessed)
		for _, msg := range outcome.Errors {
			o.buffer.Errorf("Error for %s: %s", category.Label, msg)
		}
	}
}

func (o *Orchestrator) abort(ctx context.Context, logger *log.Logger, report *Report, cause error) (*Report, error) {
	o.setState(ctx, StateAborted)

	if err := o.opts.Progress.Stop(ctx); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("stopping progress after failure")
	}

	logger.Errorf("Formatting failed: %s", cause)
	logger.Flush("📋 Partial Log Before Error:", o.buffer)

	report.State = StateAborted
	report.Stats = o.stats
	report.ExitCode = 1
	return report, errors.Errorf("formatting run: %w", cause)
}
