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

package formatter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// waitDelay caps how long a killed command may hold its output pipes open
const waitDelay = 2 * time.Second

// 🏃 Runner spawns external commands
type Runner interface {
	// Run executes argv in dir and returns an error carrying the
	// captured error output when the command fails.
	Run(ctx context.Context, dir string, argv []string) error
	// Available reports whether the named executable can be found.
	Available(name string) bool
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration
}

// 🏭 NewExecRunner creates a runner with an optional per-command timeout
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = waitDelay

	zerolog.Ctx(ctx).Debug().Strs("argv", argv).Str("dir", dir).Msg("running command")

	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(output.String())
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Errorf("running %s: timed out after %s", argv[0], r.Timeout)
		}
		if out != "" {
			return errors.Errorf("running %s: %w: %s", argv[0], err, out)
		}
		return errors.Errorf("running %s: %w", argv[0], err)
	}

	return nil
}

// Available implements Runner.
func (r *ExecRunner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
