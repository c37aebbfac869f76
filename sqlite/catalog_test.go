package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *polcat.Catalog {
	catalog := polcat.NewCatalog()
	catalog.Merge(
		&polcat.Document{ID: "32593", Name: "Directive on Open Government", Type: "directive", URL: "https://www.tbs-sct.gc.ca/pol/doc-eng.aspx?id=32593"},
		&polcat.Document{ID: "16578", Name: "Policy on Government Security", Type: "policy"},
		&polcat.Document{ID: "25049", Name: "Values and Ethics Code", Type: polcat.TypeUnknown},
	)
	return catalog
}

func TestCatalogStore_Export(t *testing.T) {
	t.Parallel()

	t.Run("stores documents ordered by ID", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, store.Export(ctx, testCatalog()))

		docs, err := store.FindDocuments(ctx, polcat.DocumentFilter{})
		require.NoError(t, err)
		assert.Equal(t, testCatalog().Documents(), docs)
	})

	t.Run("replaces previous contents", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, store.Export(ctx, testCatalog()))

		next := polcat.NewCatalog()
		next.Merge(&polcat.Document{ID: "12453", Name: "Policy on Results", Type: "policy"})
		require.NoError(t, store.Export(ctx, next))

		docs, err := store.FindDocuments(ctx, polcat.DocumentFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "12453", docs[0].ID)
	})

	t.Run("filters by type", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, store.Export(ctx, testCatalog()))

		typ := polcat.TypeUnknown
		docs, err := store.FindDocuments(ctx, polcat.DocumentFilter{Type: &typ})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Values and Ethics Code", docs[0].Name)
	})

	t.Run("records export", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, store.Export(ctx, testCatalog()))

		record, err := store.LastExport(ctx)

		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, 3, record.Documents)
		assert.Len(t, record.ContentHash, 16)
		assert.False(t, record.ExportedAt.IsZero())
	})

	t.Run("identical catalogs have identical content hash", func(t *testing.T) {
		t.Parallel()

		first := sqlite.NewCatalogStore(setupTestDB(t))
		second := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, first.Export(ctx, testCatalog()))
		require.NoError(t, second.Export(ctx, testCatalog()))

		a, err := first.LastExport(ctx)
		require.NoError(t, err)
		b, err := second.LastExport(ctx)
		require.NoError(t, err)
		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("failure is EIO", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())

		err := sqlite.NewCatalogStore(db).Export(context.Background(), testCatalog())

		assert.Equal(t, polcat.EIO, polcat.ErrorCode(err))
	})
}

func TestCatalogStore_LastExport(t *testing.T) {
	t.Parallel()

	_, err := sqlite.NewCatalogStore(setupTestDB(t)).LastExport(context.Background())

	assert.Equal(t, polcat.ENOTFOUND, polcat.ErrorCode(err))
}

func TestCatalogStore_Stage(t *testing.T) {
	t.Parallel()

	t.Run("commit publishes the catalog", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()

		staged, err := store.Stage(ctx, testCatalog())
		require.NoError(t, err)
		require.NoError(t, staged.Commit())

		docs, err := store.FindDocuments(ctx, polcat.DocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("abort keeps the previous catalog and export record", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		ctx := context.Background()

		previous := polcat.NewCatalog()
		previous.Merge(&polcat.Document{ID: "12453", Name: "Policy on Results", Type: "policy"})
		require.NoError(t, store.Export(ctx, previous))
		before, err := store.LastExport(ctx)
		require.NoError(t, err)

		staged, err := store.Stage(ctx, testCatalog())
		require.NoError(t, err)
		require.NoError(t, staged.Abort())

		docs, err := store.FindDocuments(ctx, polcat.DocumentFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "12453", docs[0].ID)
		after, err := store.LastExport(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.ID, after.ID)
	})
}
