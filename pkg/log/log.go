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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	ruleWidth       = 50         // width of section rules
	timestampLayout = "15:04:05" // 24h clock prefix
)

// 🎯 Logger prints timestamped, colored lines for humans and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	now     func() time.Time
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for timestamps.
func (l *Logger) WithClock(now func() time.Time) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding one
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Timestamp returns the current clock time as shown in log prefixes.
func (l *Logger) Timestamp() string {
	return l.now().Format(timestampLayout)
}

func (l *Logger) line(glyph, msg string) {
	fmt.Fprintf(l.console, "%s %s %s\n", color.New(color.Faint).Sprintf("[%s]", l.Timestamp()), glyph, msg)
}

// mirror copies a console line into the diagnostic log at debug level.
func (l *Logger) mirror(verb, msg string) {
	l.zlog.Debug().Str("verb", verb).Msg(msg)
}

// 📝 Header prints the banner and a rule below it
func (l *Logger) Header(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.Bold, color.FgCyan).Sprint(title))
	fmt.Fprintln(l.console, color.CyanString(strings.Repeat("=", ruleWidth)))
	l.mirror("header", title)
}

// 📝 Section prints a sub heading with a dashed rule
func (l *Logger) Section(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.Bold, color.FgCyan).Sprint(title))
	fmt.Fprintln(l.console, color.CyanString(strings.Repeat("-", ruleWidth)))
}

// 📝 Println prints a raw line without timestamp
func (l *Logger) Println(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line(color.BlueString("ℹ"), " "+msg)
	l.mirror("info", msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line(color.GreenString("✅"), msg)
	l.mirror("success", msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line(color.YellowString("⚠️"), " "+msg)
	l.mirror("warning", msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line(color.RedString("❌"), msg)
	l.mirror("error", msg)
}

// 📝 Skip logs a skipped item
func (l *Logger) Skip(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line(color.HiBlackString("⏭️"), " "+msg)
	l.mirror("skip", msg)
}

// 📝 Process logs an item being worked on
func (l *Logger) Process(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.line(color.MagentaString("🔄"), msg)
	l.mirror("process", msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// Flush prints the buffered lines under a section heading. Nothing is
// printed when the buffer is empty or was already drained.
func (l *Logger) Flush(title string, buf *Buffer) int {
	lines := buf.Drain()
	if len(lines) == 0 {
		return 0
	}
	l.Section(title)
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(l.console, line)
	}
	return len(lines)
}
