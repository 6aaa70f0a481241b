package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	ResetPaths()
	t.Cleanup(ResetPaths)

	dataDir := DataDir()
	assert.Equal(t, filepath.Join(os.TempDir(), "rpn"), dataDir)
	assert.Equal(t, filepath.Join(dataDir, "history.db"), HistoryFile())
	assert.Equal(t, filepath.Join(dataDir, "rpn.log"), LogFile())

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
