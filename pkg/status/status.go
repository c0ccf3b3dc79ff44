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

package status

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNotStarted is returned when a sink is advanced before Start.
var ErrNotStarted = errors.New("progress not started")

// 📊 Sink receives progress updates for a run
type Sink interface {
	Start(ctx context.Context, total int) error
	Advance(ctx context.Context, step int, label string) error
	Stop(ctx context.Context) error
}

var (
	_ Sink = (*Bar)(nil)
	_ Sink = (*Lines)(nil)
)

// Bar renders progress as a single pterm bar that clears itself when done
type Bar struct {
	writer    io.Writer
	formatter ProgressFormatter

	mu      sync.Mutex
	printer *pterm.ProgressbarPrinter
}

// 🏭 NewBar creates a progress bar writing to w
func NewBar(w io.Writer) *Bar {
	return &Bar{
		writer:    w,
		formatter: NewDefaultProgressFormatter(),
	}
}

// Start shows the bar with total steps.
func (b *Bar) Start(ctx context.Context, total int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	printer, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Initializing...").
		WithBarCharacter("█").
		WithLastCharacter("█").
		WithBarFiller("░").
		WithShowElapsedTime(false).
		WithRemoveWhenDone(true).
		WithWriter(b.writer).
		Start()
	if err != nil {
		return errors.Errorf("starting progress bar: %w", err)
	}
	b.printer = printer

	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(b.formatter.FormatProgress(0, total, "Initializing..."))
	return nil
}

// Advance moves the bar to step and shows label as its title. The bar
// never moves backwards.
func (b *Bar) Advance(ctx context.Context, step int, label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.printer == nil {
		return ErrNotStarted
	}

	b.printer.UpdateTitle(label)
	if delta := step - b.printer.Current; delta > 0 {
		b.printer.Add(delta)
	}

	zerolog.Ctx(ctx).Debug().
		Int("step", step).
		Int("total", b.printer.Total).
		Msg(b.formatter.FormatProgress(step, b.printer.Total, label))
	return nil
}

// Current returns the step the bar is at.
func (b *Bar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.printer == nil {
		return 0
	}
	return b.printer.Current
}

// Stop removes the bar. Stopping a bar that was never started is a no-op.
func (b *Bar) Stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.printer == nil {
		return nil
	}
	if _, err := b.printer.Stop(); err != nil {
		return errors.Errorf("stopping progress bar: %w", err)
	}
	b.printer = nil
	return nil
}

// 🌀 Spinner shows an indeterminate pterm spinner during slow analysis
type Spinner struct {
	writer  io.Writer
	printer *pterm.SpinnerPrinter
}

// 🏭 NewSpinner creates a spinner writing to w
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{writer: w}
}

// Start shows the spinner with text. A spinner that fails to start
// degrades to printing the final message only.
func (s *Spinner) Start(ctx context.Context, text string) {
	printer, err := pterm.DefaultSpinner.WithWriter(s.writer).WithRemoveWhenDone(false).Start(text)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("starting spinner")
		return
	}
	s.printer = printer
}

// Success replaces the spinner with a success line.
func (s *Spinner) Success(ctx context.Context, text string) {
	if s.printer == nil {
		fmt.Fprintln(s.writer, pterm.Success.Sprint(text))
		return
	}
	s.printer.Success(text)
	s.printer = nil
}
