package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCatalogExport compares export performance between WAL and
// rollback journal modes for a catalog the size of the policy suite.
func BenchmarkCatalogExport(b *testing.B) {
	const documents = 300

	catalog := polcat.NewCatalog()
	for i := 0; i < documents; i++ {
		catalog.Merge(&polcat.Document{
			ID:   fmt.Sprintf("%05d", i),
			Name: fmt.Sprintf("Directive on Instrument %d", i),
			Type: "directive",
		})
	}

	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkCatalogExport(b, catalog, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkCatalogExport(b, catalog, true)
	})
}

func benchmarkCatalogExport(b *testing.B, catalog *polcat.Catalog, useWAL bool) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")
	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if !useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	store := sqlite.NewCatalogStore(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := store.Export(ctx, catalog); err != nil {
			b.Fatal(err)
		}
	}
}
