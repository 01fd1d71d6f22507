package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for bindArguments:
// - Native JSON arrays and booleans bind directly
// - JSON-encoded strings are coerced to arrays and booleans
// - A bare string becomes a one-element path list
// - Absent optional booleans stay nil

type mockArgumentGetter struct {
	args map[string]any
}

func (m *mockArgumentGetter) GetArguments() map[string]any {
	return m.args
}

func TestBindArguments(t *testing.T) {
	t.Parallel()

	yes := true
	no := false

	tests := []struct {
		name          string
		args          map[string]any
		wantPaths     []string
		wantCollected *bool
	}{
		{
			name:          "native types",
			args:          map[string]any{"paths": []any{"src", "app.tsx"}, "collect_errors": true},
			wantPaths:     []string{"src", "app.tsx"},
			wantCollected: &yes,
		},
		{
			name:          "json encoded strings",
			args:          map[string]any{"paths": `["src", "lib"]`, "collect_errors": "false"},
			wantPaths:     []string{"src", "lib"},
			wantCollected: &no,
		},
		{
			name:      "bare string path",
			args:      map[string]any{"paths": "src/app.tsx"},
			wantPaths: []string{"src/app.tsx"},
		},
		{
			name: "nothing provided",
			args: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req DetectRequest
			err := bindArguments(&mockArgumentGetter{args: tt.args}, &req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPaths, req.Paths)
			if tt.wantCollected == nil {
				assert.Nil(t, req.CollectErrors)
			} else {
				require.NotNil(t, req.CollectErrors)
				assert.Equal(t, *tt.wantCollected, *req.CollectErrors)
			}
		})
	}
}
