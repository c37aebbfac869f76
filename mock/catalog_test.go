package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogExporter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where CatalogExporter is expected
	var _ polcat.CatalogExporter = &mock.CatalogExporter{}
}

func TestCatalogExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ExportFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *polcat.Catalog
		e := &mock.CatalogExporter{
			ExportFn: func(_ context.Context, catalog *polcat.Catalog) error {
				calledWith = catalog
				return nil
			},
		}

		catalog := polcat.NewCatalog()
		catalog.Merge(&polcat.Document{ID: "16578", Name: "Policy on Government Security", Type: "policy"})

		err := e.Export(context.Background(), catalog)

		require.NoError(t, err)
		assert.Same(t, catalog, calledWith)
	})
}
