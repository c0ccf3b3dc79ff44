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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/formatrc/pkg/config"
	"github.com/walteh/formatrc/pkg/counter"
	"github.com/walteh/formatrc/pkg/formatter"
	"github.com/walteh/formatrc/pkg/ignore"
	"github.com/walteh/formatrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockInvoker is a mock implementation of the formatter.Invoker interface
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, category config.Category) formatter.Outcome {
	result := m.Called(ctx, category)
	return result.Get(0).(formatter.Outcome)
}

type progressCall struct {
	kind  string
	step  int
	label string
}

// recordingProgress records every call and can fail one Advance.
type recordingProgress struct {
	calls  []progressCall
	failAt int
	err    error
}

func (p *recordingProgress) Start(ctx context.Context, total int) error {
	p.calls = append(p.calls, progressCall{kind: "start", step: total})
	return nil
}

func (p *recordingProgress) Advance(ctx context.Context, step int, label string) error {
	p.calls = append(p.calls, progressCall{kind: "advance", step: step, label: label})
	if p.err != nil && step == p.failAt {
		return p.err
	}
	return nil
}

func (p *recordingProgress) Stop(ctx context.Context) error {
	p.calls = append(p.calls, progressCall{kind: "stop"})
	return nil
}

func (p *recordingProgress) advances() []int {
	var steps []int
	for _, c := range p.calls {
		if c.kind == "advance" {
			steps = append(steps, c.step)
		}
	}
	return steps
}

type recordingSpinner struct {
	started string
	done    string
}

func (s *recordingSpinner) Start(ctx context.Context, text string)   { s.started = text }
func (s *recordingSpinner) Success(ctx context.Context, text string) { s.done = text }

type staticResolver struct {
	patterns []string
	present  bool
}

func (r *staticResolver) Resolve(ctx context.Context) []string { return r.patterns }
func (r *staticResolver) HasIgnoreFile() bool                  { return r.present }
func (r *staticResolver) FileName() string                     { return ignore.DefaultFileName }

type mapCounter map[string]int

func (c mapCounter) Count(ctx context.Context, pattern string) int { return c[pattern] }

// panickingInvoker blows up on the named category.
type panickingInvoker struct {
	label string
}

func (p *panickingInvoker) Invoke(ctx context.Context, category config.Category) formatter.Outcome {
	if category.Label == p.label {
		panic("kaboom")
	}
	return formatter.Outcome{Succeeded: true}
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func testCategories() []config.Category {
	return []config.Category{
		{Pattern: "**/*.go", Label: "Go", Last: true, Steps: []config.Step{{Name: "gofmt", Command: []string{"gofmt", "-w", "{files}"}}}},
		{Pattern: "**/*.json", Label: "JSON", Command: []string{"prettier", "--write", "{pattern}"}},
		{Pattern: "**/*.{yml,yaml}", Label: "YAML", Command: []string{"prettier", "--write", "{pattern}"}},
	}
}

type harness struct {
	ctx      context.Context
	out      *bytes.Buffer
	progress *recordingProgress
	spinner  *recordingSpinner
	opts     Options
}

func newHarness(t *testing.T, invoker formatter.Invoker, counts mapCounter) *harness {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	zlog := zerolog.New(zerolog.TestWriter{T: t})
	out := &bytes.Buffer{}
	h := &harness{
		ctx:      zlog.WithContext(context.Background()),
		out:      out,
		progress: &recordingProgress{},
		spinner:  &recordingSpinner{},
	}
	h.opts = Options{
		Categories: testCategories(),
		Resolver:   &staticResolver{patterns: ignore.DefaultPatterns, present: false},
		Counter:    counts,
		Invoker:    invoker,
		Progress:   h.progress,
		Spinner:    h.spinner,
		Logger:     log.New(out, zlog).WithClock(fixedClock),
	}
	return h
}

func (h *harness) run(t *testing.T) (*Report, error) {
	t.Helper()
	o, err := New(h.opts)
	require.NoError(t, err, "creating orchestrator")
	return o.Run(h.ctx)
}

func TestNew(t *testing.T) {
	valid := func() Options {
		return Options{
			Categories: testCategories(),
			Resolver:   &staticResolver{},
			Counter:    mapCounter{},
			Invoker:    &MockInvoker{},
			Progress:   &recordingProgress{},
		}
	}

	tests := []struct {
		name        string
		mutate      func(o *Options)
		errContains string
	}{
		{name: "valid", mutate: func(o *Options) {}},
		{name: "no_categories", mutate: func(o *Options) { o.Categories = nil }, errContains: "categories are required"},
		{name: "no_resolver", mutate: func(o *Options) { o.Resolver = nil }, errContains: "resolver is required"},
		{name: "no_counter", mutate: func(o *Options) { o.Counter = nil }, errContains: "counter is required"},
		{name: "no_invoker", mutate: func(o *Options) { o.Invoker = nil }, errContains: "invoker is required"},
		{name: "no_progress", mutate: func(o *Options) { o.Progress = nil }, errContains: "progress is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid()
			tt.mutate(&opts)
			o, err := New(opts)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StateIdle, o.State())
			assert.Equal(t, DefaultTitle, o.opts.Title)
		})
	}
}

func TestOrder(t *testing.T) {
	cats := testCategories()
	ordered := Order(cats)

	labels := make([]string, len(ordered))
	for i, c := range ordered {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{"JSON", "YAML", "Go"}, labels)
	assert.Equal(t, "Go", cats[0].Label, "input must not be reordered")
}

func TestRunEmptyProject(t *testing.T) {
	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(formatter.Outcome{Succeeded: true})

	h := newHarness(t, invoker, mapCounter{})
	report, err := h.run(t)
	require.NoError(t, err)

	assert.Equal(t, StateReporting, report.State)
	assert.Equal(t, Stats{SkippedCount: 3}, report.Stats)
	assert.Equal(t, 0, report.ExitCode)
	assert.NoError(t, report.Err())
	assert.Equal(t, 0, report.DiscoveredFiles)
	invoker.AssertNumberOfCalls(t, "Invoke", 3)

	out := h.out.String()
	assert.Contains(t, out, "🎨 formatrc")
	assert.Contains(t, out, "📋 Using default ignore patterns (no .prettierignore found)")
	assert.Contains(t, out, "⏭️  No JSON files found")
	assert.Contains(t, out, "⏭️  No Go files found")
	assert.Contains(t, out, "Skipped file types (no files found): 3")
	assert.Contains(t, out, "Ignored 9 pattern(s) during processing")
	assert.Contains(t, out, "No files found to format in this directory")
	assert.Contains(t, out, "[09:26:53]")
	assert.Contains(t, out, "Formatting session completed at 09:26:53")
	assert.NotContains(t, out, "Operations with issues")
	assert.NotContains(t, out, "💡 Tip")

	assert.Equal(t, "Analyzing project files...", h.spinner.started)
	assert.Equal(t, "Found 0 files to process (using default patterns)", h.spinner.done)
}

func TestRunOneCategoryFails(t *testing.T) {
	cats := testCategories()
	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, cats[1]).Return(formatter.Outcome{Succeeded: true, FilesProcessed: 2, Elapsed: 12 * time.Millisecond})
	invoker.On("Invoke", mock.Anything, cats[2]).Return(formatter.Outcome{
		Succeeded:      false,
		FilesProcessed: 1,
		Elapsed:        30 * time.Millisecond,
		Errors:         []string{"running prettier: exit status 2"},
	})
	invoker.On("Invoke", mock.Anything, cats[0]).Return(formatter.Outcome{Succeeded: true, FilesProcessed: 3, Elapsed: 8 * time.Millisecond})

	h := newHarness(t, invoker, mapCounter{"**/*.json": 2, "**/*.{yml,yaml}": 1, "**/*.go": 3})
	report, err := h.run(t)
	require.NoError(t, err, "category failures do not fail the run itself")

	assert.Equal(t, Stats{
		TotalFiles:    6,
		TotalDuration: 50 * time.Millisecond,
		SuccessCount:  2,
		ErrorCount:    1,
	}, report.Stats)
	assert.Equal(t, 1, report.ExitCode)
	assert.Equal(t, 6, report.DiscoveredFiles)
	assert.True(t, errors.Is(report.Err(), ErrFormattingIssues))
	invoker.AssertExpectations(t)

	out := h.out.String()
	assert.Contains(t, out, "📋 Detailed Log")
	assert.Contains(t, out, "✅ JSON: 2 file(s) formatted (12ms)")
	assert.Contains(t, out, "⚠️  YAML: 1 file(s) - some issues encountered")
	assert.Contains(t, out, "❌   Error for YAML: running prettier: exit status 2")
	assert.Contains(t, out, "✅ Go: 3 file(s) formatted (8ms)")
	assert.Contains(t, out, "Total files processed: 6")
	assert.Contains(t, out, "Total duration: 50ms")
	assert.Contains(t, out, "Operations with issues: 1")
	assert.Contains(t, out, "Formatting completed with some issues. Please review the logs. 🧐")
	assert.NotContains(t, out, "Skipped file types")
}

func TestRunAllSucceed(t *testing.T) {
	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(formatter.Outcome{Succeeded: true, FilesProcessed: 1, Elapsed: 2 * time.Second})

	h := newHarness(t, invoker, mapCounter{"**/*.json": 1, "**/*.{yml,yaml}": 1, "**/*.go": 1})
	h.opts.Resolver = &staticResolver{patterns: []string{"build/**"}, present: true}

	report, err := h.run(t)
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, 3, report.Stats.SuccessCount)
	assert.Equal(t, []string{"build/**"}, report.IgnorePatterns)

	out := h.out.String()
	assert.Contains(t, out, "📋 Using ignore patterns from .prettierignore")
	assert.Contains(t, out, "All formatting completed! Your code is now beautifully formatted ✨")
	assert.Contains(t, out, "💡 Tip: For faster formatting, consider optimizing your .prettierignore patterns")
	assert.Contains(t, out, "Ignored 1 pattern(s) during processing")
	assert.Equal(t, "Found 3 files to process (respecting .prettierignore)", h.spinner.done)
}

func TestRunProgressOrder(t *testing.T) {
	var invoked []string
	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			invoked = append(invoked, args.Get(1).(config.Category).Label)
		}).
		Return(formatter.Outcome{Succeeded: true})

	h := newHarness(t, invoker, mapCounter{})
	_, err := h.run(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"JSON", "YAML", "Go"}, invoked)
	assert.Equal(t, []progressCall{
		{kind: "start", step: 3},
		{kind: "advance", step: 1, label: "Processing JSON..."},
		{kind: "advance", step: 2, label: "Processing YAML..."},
		{kind: "advance", step: 3, label: "Processing Go..."},
		{kind: "advance", step: 3, label: "Finalizing..."},
		{kind: "stop"},
	}, h.progress.calls)
	assert.Equal(t, []int{1, 2, 3, 3}, h.progress.advances())
}

func TestRunWithoutSpinner(t *testing.T) {
	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(formatter.Outcome{Succeeded: true})

	h := newHarness(t, invoker, mapCounter{})
	h.opts.Spinner = nil
	_, err := h.run(t)
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Found 0 files to process (using default patterns)")
}

func TestRunAbortsWhenProgressFails(t *testing.T) {
	boom := errors.New("terminal went away")

	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(formatter.Outcome{Succeeded: true, FilesProcessed: 4, Elapsed: time.Millisecond})

	h := newHarness(t, invoker, mapCounter{"**/*.json": 4})
	h.progress.failAt = 2
	h.progress.err = boom

	o, err := New(h.opts)
	require.NoError(t, err)
	report, err := o.Run(h.ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom), "cause should be preserved")
	assert.Equal(t, StateAborted, o.State())
	assert.Equal(t, StateAborted, report.State)
	assert.Equal(t, 1, report.ExitCode)
	assert.NoError(t, report.Err(), "aborts are reported through the run error")
	assert.Equal(t, 1, report.Stats.SuccessCount, "partial statistics are kept")
	invoker.AssertNumberOfCalls(t, "Invoke", 1)
	assert.True(t, o.Buffer().Drained(), "partial log should be flushed")

	last := h.progress.calls[len(h.progress.calls)-1]
	assert.Equal(t, "stop", last.kind, "progress should be stopped on abort")

	out := h.out.String()
	assert.Contains(t, out, "Formatting failed: processing: advancing progress for YAML: terminal went away")
	assert.Contains(t, out, "📋 Partial Log Before Error:")
	assert.Contains(t, out, "✅ JSON: 4 file(s) formatted (1ms)")
	assert.NotContains(t, out, "📊 Formatting Summary")
	assert.NotContains(t, out, "📋 Detailed Log")
}

func TestRunRecoversPanics(t *testing.T) {
	h := newHarness(t, &panickingInvoker{label: "YAML"}, mapCounter{})

	report, err := h.run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: kaboom")
	assert.Equal(t, StateAborted, report.State)
	assert.Equal(t, 1, report.ExitCode)
	assert.Contains(t, h.out.String(), "Formatting failed: processing: panic: kaboom")
	assert.Contains(t, h.out.String(), "⏭️  No JSON files found")
}

func TestRunCancelled(t *testing.T) {
	invoker := &MockInvoker{}
	h := newHarness(t, invoker, mapCounter{})

	ctx, cancel := context.WithCancel(h.ctx)
	cancel()
	h.ctx = ctx

	report, err := h.run(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, StateAborted, report.State)
	invoker.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestRunResetsBetweenRuns(t *testing.T) {
	invoker := &MockInvoker{}
	invoker.On("Invoke", mock.Anything, mock.Anything).Return(formatter.Outcome{Succeeded: true, FilesProcessed: 1})

	h := newHarness(t, invoker, mapCounter{"**/*.json": 1, "**/*.{yml,yaml}": 1, "**/*.go": 1})
	o, err := New(h.opts)
	require.NoError(t, err)

	first, err := o.Run(h.ctx)
	require.NoError(t, err)
	second, err := o.Run(h.ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, 3, second.Stats.TotalFiles)
}

// fakeRunner records commands instead of running them.
type fakeRunner struct {
	argv [][]string
}

func (r *fakeRunner) Run(ctx context.Context, dir string, argv []string) error {
	r.argv = append(r.argv, argv)
	return nil
}

func (r *fakeRunner) Available(name string) bool { return true }

func TestRunRespectsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ignore.DefaultFileName), []byte("# generated\nbuild\n"), 0644))

	fsys := fstest.MapFS{
		"package.json":      {Data: []byte("{}")},
		"src/app.json":      {Data: []byte("{}")},
		"build/output.json": {Data: []byte("{}")},
		"build/main.go":     {Data: []byte("package main")},
	}

	resolver := ignore.NewResolver(dir, ignore.DefaultFileName)
	files := counter.NewWithFS(dir, fsys, resolver)
	runner := &fakeRunner{}

	h := newHarness(t, nil, nil)
	h.opts.Resolver = resolver
	h.opts.Counter = files
	h.opts.Invoker = formatter.New(files, runner)
	h.opts.Categories = []config.Category{
		{Pattern: "**/*.json", Label: "JSON", Command: []string{"fmt-json", "{files}"}},
		{Pattern: "**/*.go", Label: "Go", Command: []string{"fmt-go", "{files}"}},
	}

	report, err := h.run(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"build/**"}, report.IgnorePatterns)
	assert.Equal(t, 2, report.DiscoveredFiles)
	assert.Equal(t, 2, report.Stats.TotalFiles)
	assert.Equal(t, 1, report.Stats.SuccessCount)
	assert.Equal(t, 1, report.Stats.SkippedCount)

	require.Len(t, runner.argv, 1, "only the JSON category has files")
	assert.Equal(t, "fmt-json", runner.argv[0][0])
	assert.ElementsMatch(t, []string{"package.json", filepath.Join("src", "app.json")}, runner.argv[0][1:])
	assert.Equal(t, "Found 2 files to process (respecting .prettierignore)", h.spinner.done)
}
