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
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := testContext(t)
	out := &bytes.Buffer{}
	lines := NewLines(out)

	require.ErrorIs(t, lines.Advance(ctx, 1, "x"), ErrNotStarted)

	require.NoError(t, lines.Start(ctx, 2))
	require.NoError(t, lines.Advance(ctx, 1, "Processing JSON..."))
	require.NoError(t, lines.Advance(ctx, 2, "Processing Go..."))
	require.NoError(t, lines.Advance(ctx, 2, "Finalizing..."))
	require.NoError(t, lines.Stop(ctx))

	assert.Equal(t, []string{
		"⏳ Progress: 1/2 (50%) | Processing JSON...",
		"✅ Progress: 2/2 (100%) | Processing Go...",
		"✅ Progress: 2/2 (100%) | Finalizing...",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}
