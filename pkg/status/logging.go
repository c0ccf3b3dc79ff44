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

	"github.com/fatih/color"
)

// 📜 Lines prints one plain line per progress update, for logs and CI
// where a redrawn bar would be noise
type Lines struct {
	writer    io.Writer
	formatter ProgressFormatter

	mu      sync.Mutex
	started bool
	total   int
	current int
}

// 🏭 NewLines creates a line-based progress sink writing to w
func NewLines(w io.Writer) *Lines {
	return &Lines{
		writer:    w,
		formatter: NewDefaultProgressFormatter(),
	}
}

// Start records the total.
func (l *Lines) Start(ctx context.Context, total int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = true
	l.total = total
	l.current = 0
	return nil
}

// Advance prints the new position.
func (l *Lines) Advance(ctx context.Context, step int, label string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return ErrNotStarted
	}
	if step > l.current {
		l.current = step
	}
	fmt.Fprintln(l.writer, color.CyanString(l.formatter.FormatProgress(l.current, l.total, label)))
	return nil
}

// Stop ends the sink.
func (l *Lines) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = false
	return nil
}
