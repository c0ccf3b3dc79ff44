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
	"fmt"
	"sync"

	"github.com/fatih/color"
)

// 📦 Buffer holds display lines while a progress bar owns the terminal.
// Lines come out in insertion order, and only once.
type Buffer struct {
	mu      sync.Mutex
	lines   []string
	drained bool
}

// 🏭 NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Add appends a line.
func (b *Buffer) Add(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

// Addf appends a formatted line.
func (b *Buffer) Addf(format string, args ...interface{}) {
	b.Add(fmt.Sprintf(format, args...))
}

// Skipf appends a "skipped" line.
func (b *Buffer) Skipf(format string, args ...interface{}) {
	b.Add(fmt.Sprintf("%s  %s", color.HiBlackString("⏭️"), fmt.Sprintf(format, args...)))
}

// Successf appends a success line.
func (b *Buffer) Successf(format string, args ...interface{}) {
	b.Add(fmt.Sprintf("%s %s", color.GreenString("✅"), fmt.Sprintf(format, args...)))
}

// Warningf appends a warning line.
func (b *Buffer) Warningf(format string, args ...interface{}) {
	b.Add(fmt.Sprintf("%s  %s", color.YellowString("⚠️"), fmt.Sprintf(format, args...)))
}

// Errorf appends an indented error line.
func (b *Buffer) Errorf(format string, args ...interface{}) {
	b.Add(fmt.Sprintf("%s   %s", color.RedString("❌"), fmt.Sprintf(format, args...)))
}

// Len returns the number of pending lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Lines returns a copy of the pending lines without draining them.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Drain hands out the lines and marks the buffer drained. Later calls
// return nil until Reset.
func (b *Buffer) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drained {
		return nil
	}
	b.drained = true
	out := b.lines
	b.lines = nil
	return out
}

// Drained reports whether Drain has been called since the last Reset.
func (b *Buffer) Drained() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drained
}

// Reset empties the buffer for a new run.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.drained = false
}
