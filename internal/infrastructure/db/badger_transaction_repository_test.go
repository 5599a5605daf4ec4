package db

import (
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/require"
)

func newTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil

	badgerDB, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = badgerDB.Close() })
	return badgerDB
}

func TestBadgerTransactionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded store test in short mode")
	}

	repo := NewBadgerTransactionRepository(newTestBadgerDB(t))
	runRepositoryTests(t, repo)
}
