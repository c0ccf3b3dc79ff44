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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 phase is one guarded part of a run
type phase struct {
	name string
	fn   func(ctx context.Context) error
}

// 🏗️ runPhases executes phases in order and stops at the first failure.
// A panic inside a phase is returned as an error.
func runPhases(ctx context.Context, phases ...phase) error {
	for _, p := range phases {
		if err := runPhase(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func runPhase(ctx context.Context, p phase) (err error) {
	logger := zerolog.Ctx(ctx).With().Str("phase", p.name).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("phase panicked")
			err = errors.Errorf("%s: panic: %v", p.name, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return errors.Errorf("%s cancelled: %w", p.name, err)
	}

	logger.Debug().Msg("running phase")
	if err := p.fn(ctx); err != nil {
		return errors.Errorf("%s: %w", p.name, err)
	}
	return nil
}
