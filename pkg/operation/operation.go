// Package operation drives a formatting run from ignore resolution to the
// final summary.
package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/formatrc/pkg/config"
	"github.com/walteh/formatrc/pkg/formatter"
	"github.com/walteh/formatrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// DefaultTitle is the banner printed at the start of a run.
const DefaultTitle = "🎨 formatrc"

// ErrFormattingIssues is reported when a run finished but at least one
// category failed.
var ErrFormattingIssues = errors.New("formatting completed with issues")

// 🎯 Operator runs formatting sessions
type Operator interface {
	// Run formats every category once and prints the summary
	Run(ctx context.Context) (*Report, error)
	// State is where the last run got to
	State() State
}

// 📊 Progress is a sink that shows how many steps are done
type Progress interface {
	Start(ctx context.Context, total int) error
	Advance(ctx context.Context, step int, label string) error
	Stop(ctx context.Context) error
}

// 🌀 Spinner shows activity while the project is analyzed
type Spinner interface {
	Start(ctx context.Context, text string)
	Success(ctx context.Context, text string)
}

// 🙈 Resolver provides the ignore set for a run
type Resolver interface {
	Resolve(ctx context.Context) []string
	HasIgnoreFile() bool
	FileName() string
}

// 🔢 Counter counts files for a pattern
type Counter interface {
	Count(ctx context.Context, pattern string) int
}

// 🔧 Options contains configuration for the orchestrator
type Options struct {
	// Categories in declaration order
	Categories []config.Category
	// Resolver provides ignore patterns
	Resolver Resolver
	// Counter sizes the run
	Counter Counter
	// Invoker formats one category
	Invoker formatter.Invoker
	// Progress receives step updates
	Progress Progress
	// Spinner is shown while counting; optional
	Spinner Spinner
	// Logger prints console output; defaults to the one on the context
	Logger *log.Logger
	// Title overrides DefaultTitle
	Title string
}

// 🏭 New creates a new orchestrator with the given options
func New(opts Options) (*Orchestrator, error) {
	if len(opts.Categories) == 0 {
		return nil, errors.Errorf("categories are required")
	}
	if opts.Resolver == nil {
		return nil, errors.Errorf("resolver is required")
	}
	if opts.Counter == nil {
		return nil, errors.Errorf("counter is required")
	}
	if opts.Invoker == nil {
		return nil, errors.Errorf("invoker is required")
	}
	if opts.Progress == nil {
		return nil, errors.Errorf("progress is required")
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	return &Orchestrator{
		opts:   opts,
		order:  Order(opts.Categories),
		buffer: log.NewBuffer(),
		state:  StateIdle,
	}, nil
}

// 🎮 Orchestrator implements Operator. A single Orchestrator must not run
// concurrently with itself.
type Orchestrator struct {
	opts   Options
	order  []config.Category
	buffer *log.Buffer

	state State
	stats Stats
}

var _ Operator = (*Orchestrator)(nil)

// State returns the state reached by the current or last run.
func (o *Orchestrator) State() State {
	return o.state
}

// Stats returns a copy of the statistics gathered so far.
func (o *Orchestrator) Stats() Stats {
	return o.stats
}

// Buffer exposes the pending detail lines.
func (o *Orchestrator) Buffer() *log.Buffer {
	return o.buffer
}

func (o *Orchestrator) setState(ctx context.Context, s State) {
	zerolog.Ctx(ctx).Debug().Str("from", o.state.String()).Str("to", s.String()).Msg("state transition")
	o.state = s
}

func (o *Orchestrator) logger(ctx context.Context) *log.Logger {
	if o.opts.Logger != nil {
		return o.opts.Logger
	}
	return log.FromContext(ctx)
}

// 📋 Order returns categories in processing order: declaration order, with
// every category marked Last moved to the end. The input is not modified.
func Order(categories []config.Category) []config.Category {
	out := make([]config.Category, 0, len(categories))
	var last []config.Category
	for _, c := range categories {
		if c.Last {
			last = append(last, c)
			continue
		}
		out = append(out, c)
	}
	return append(out, last...)
}
