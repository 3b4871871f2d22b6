package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	db, err := Open(dataDir)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Join(dataDir, "tandem.db"))
	require.NoError(t, err)
}
