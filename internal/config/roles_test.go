package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoleSet_HasSevenRolesWithHedgingOnFG(t *testing.T) {
	rs := DefaultRoleSet()
	require.Len(t, rs, 7)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		_, ok := rs[name]
		assert.True(t, ok, "missing role %s", name)
	}
	assert.True(t, rs["F"].HedgeShocks)
	assert.True(t, rs["G"].HedgeShocks)
	assert.False(t, rs["A"].HedgeShocks)
}

func TestLoadRoleSet_EmptyPathFallsBackToDefault(t *testing.T) {
	rs, err := LoadRoleSet("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRoleSet(), rs)
}

func TestLoadRoleSet_ParsesYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	content := `
A:
  min_draws: 0
  max_draws: 2
  max_favorites: 12
  min_underdogs: 0
  entropy_band: [0.4, 0.6]
  hedge_shocks: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rs, err := LoadRoleSet(path)
	require.NoError(t, err)
	require.Contains(t, rs, "A")
	assert.Equal(t, 2, rs["A"].MaxDraws)
	assert.Equal(t, [2]float64{0.4, 0.6}, rs["A"].EntropyBand)
}

func TestLoadRoleSet_MissingFileErrors(t *testing.T) {
	_, err := LoadRoleSet(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
