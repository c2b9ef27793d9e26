package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	database, err := OpenWithMigrations(path, nil)
	require.NoError(t, err)
	defer database.Close()

	s, err := Stats(path)
	require.NoError(t, err)
	assert.Greater(t, s.SizeBytes, int64(0))
	assert.Greater(t, s.VolumeFreeBytes, uint64(0))
	assert.GreaterOrEqual(t, s.VolumeUsedPct, 0.0)

	_, err = Stats(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}
