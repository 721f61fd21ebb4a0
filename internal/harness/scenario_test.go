package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScenario = `
name: minimal
description: "smallest valid scenario"
now: "2025-06-01 10:00"
flow:
  - action: delete
    id: evt-1
assertions:
  - type: count
    count: 0
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Flow, 1)
	assert.Equal(t, ActionDelete, s.Flow[0].Action)
	assert.Nil(t, s.Flow[0].Expect)

	now, err := s.Clock()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC), now)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_AllFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			assert.NoError(t, err)
		})
	}
}

func TestClock_Timezone(t *testing.T) {
	s := &Scenario{Now: "2025-06-01 23:30", Timezone: "Asia/Tokyo"}
	now, err := s.Clock()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", now.Location().String())
	assert.Equal(t, 23, now.Hour())
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown top-level field",
			yaml:    minimalScenario + "assertion: []\n",
			wantErr: "field assertion not found",
		},
		{
			name: "missing name",
			yaml: `
description: d
now: "2025-06-01 10:00"
flow: [{action: delete, id: x}]
assertions: [{type: count}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			yaml: `
name: n
now: "2025-06-01 10:00"
flow: [{action: delete, id: x}]
assertions: [{type: count}]
`,
			wantErr: "description is required",
		},
		{
			name: "bad now",
			yaml: `
name: n
description: d
now: "June 1st"
flow: [{action: delete, id: x}]
assertions: [{type: count}]
`,
			wantErr: "now must be",
		},
		{
			name: "bad timezone",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
timezone: Atlantis/Capital
flow: [{action: delete, id: x}]
assertions: [{type: count}]
`,
			wantErr: "timezone",
		},
		{
			name: "empty flow",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: []
assertions: [{type: count}]
`,
			wantErr: "flow list is required",
		},
		{
			name: "empty assertions",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: delete, id: x}]
assertions: []
`,
			wantErr: "assertions list is required",
		},
		{
			name: "bad seed category",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
seed: [{title: t, date: "2025-01-01", time: "09:00", location: l, category: Work}]
flow: [{action: delete, id: x}]
assertions: [{type: count}]
`,
			wantErr: "seed[0]",
		},
		{
			name: "blank seed location",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
seed: [{title: t, date: "2025-01-01", time: "09:00", location: " ", category: work}]
flow: [{action: delete, id: x}]
assertions: [{type: count}]
`,
			wantErr: "location is required",
		},
		{
			name: "unknown action",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: archive, id: x}]
assertions: [{type: count}]
`,
			wantErr: `unknown action "archive"`,
		},
		{
			name: "edit without id",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: edit, fields: {title: t}}]
assertions: [{type: count}]
`,
			wantErr: "id is required for edit",
		},
		{
			name: "unknown field",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: add, fields: {colour: red}}]
assertions: [{type: count}]
`,
			wantErr: `unknown field "colour"`,
		},
		{
			name: "unknown outcome",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: delete, id: x, expect: {outcome: maybe}}]
assertions: [{type: count}]
`,
			wantErr: `unknown outcome "maybe"`,
		},
		{
			name: "bad view filter",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: delete, id: x}]
assertions: [{type: view, when: tomorrow}]
`,
			wantErr: "invalid time filter",
		},
		{
			name: "event without expect",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: delete, id: x}]
assertions: [{type: event, id: x}]
`,
			wantErr: "expect is required for event",
		},
		{
			name: "unknown assertion type",
			yaml: `
name: n
description: d
now: "2025-06-01 10:00"
flow: [{action: delete, id: x}]
assertions: [{type: trace_order}]
`,
			wantErr: `unknown assertion type "trace_order"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
