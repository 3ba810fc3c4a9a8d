package store

import (
	"context"
	"path/filepath"
	"testing"

	"exhibition-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both backends must behave identically from the caller's perspective, so
// every behavior test runs against each of them.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemory(),
		"file":   NewFile(filepath.Join(t.TempDir(), "db.json")),
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProductCRUD(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := st.AddProduct(ctx, models.Product{
				ID:           "p1",
				Name:         "Vase",
				Category:     "Ceramics",
				BuyingPrice:  120.5,
				Quantity:     10,
				Unit:         "pcs",
				Availability: models.AvailabilityInStock,
			})
			require.NoError(t, err)
			assert.Equal(t, "p1", created.ID)

			got, err := st.GetProductByID(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Vase", got.Name)

			all, err := st.GetProducts(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			updated, err := st.UpdateProduct(ctx, "p1", &models.ProductPatch{Quantity: intPtr(3)})
			require.NoError(t, err)
			assert.Equal(t, 3, updated.Quantity)
			// Untouched fields survive the merge.
			assert.Equal(t, "Vase", updated.Name)
			assert.Equal(t, 120.5, updated.BuyingPrice)

			require.NoError(t, st.DeleteProduct(ctx, "p1"))
			_, err = st.GetProductByID(ctx, "p1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestNotFoundSignals(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.GetProductByID(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = st.UpdateProduct(ctx, "missing", &models.ProductPatch{Name: strPtr("x")})
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, st.DeleteProduct(ctx, "missing"), ErrNotFound)

			_, err = st.GetExhibitionByID(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = st.UpdateExhibitionProduct(ctx, "missing", &models.ExhibitionProductPatch{Status: strPtr(models.StatusApproved)})
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = st.GetProductListByID(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDeleteLeavesOtherRecords(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.AddProduct(ctx, models.Product{ID: "p1", Name: "Vase"})
			require.NoError(t, err)
			_, err = st.AddProduct(ctx, models.Product{ID: "p2", Name: "Bowl"})
			require.NoError(t, err)

			// Deleting an unknown id must not touch the collection.
			assert.ErrorIs(t, st.DeleteProduct(ctx, "p3"), ErrNotFound)
			all, err := st.GetProducts(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			require.NoError(t, st.DeleteProduct(ctx, "p1"))
			all, err = st.GetProducts(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "p2", all[0].ID)
		})
	}
}

func TestItemsScopedToOwningList(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.AddProductListItem(ctx, models.ProductListItem{ID: "i1", ProductListID: "l1", Quantity: 2})
			require.NoError(t, err)
			_, err = st.AddProductListItem(ctx, models.ProductListItem{ID: "i2", ProductListID: "l1", Quantity: 3})
			require.NoError(t, err)
			_, err = st.AddProductListItem(ctx, models.ProductListItem{ID: "i3", ProductListID: "l2", Quantity: 7})
			require.NoError(t, err)

			items, err := st.GetItemsByProductList(ctx, "l1")
			require.NoError(t, err)
			assert.Len(t, items, 2)

			require.NoError(t, st.DeleteItemsByProductList(ctx, "l1"))

			items, err = st.GetItemsByProductList(ctx, "l1")
			require.NoError(t, err)
			assert.Empty(t, items)

			items, err = st.GetItemsByProductList(ctx, "l2")
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "i3", items[0].ID)

			// Unknown parent: no-op, never an error.
			require.NoError(t, st.DeleteItemsByProductList(ctx, "l9"))
		})
	}
}

func TestExhibitionCollections(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.AddExhibition(ctx, models.Exhibition{ID: "e1", ExhibitionID: "EX-0001", Name: "Spring"})
			require.NoError(t, err)

			updated, err := st.UpdateExhibition(ctx, "e1", &models.ExhibitionPatch{Description: strPtr("annual")})
			require.NoError(t, err)
			assert.Equal(t, "annual", updated.Description)
			assert.Equal(t, "Spring", updated.Name)

			_, err = st.AddExhibitionProduct(ctx, models.ExhibitionProduct{ID: "ep1", ExhibitionID: "EX-0001", Status: models.StatusPending})
			require.NoError(t, err)
			_, err = st.AddExhibitionProduct(ctx, models.ExhibitionProduct{ID: "ep2", ExhibitionID: "EX-0002", Status: models.StatusPending})
			require.NoError(t, err)

			rows, err := st.GetExhibitionProductsByExhibition(ctx, "EX-0001")
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "ep1", rows[0].ID)

			_, err = st.AddProductList(ctx, models.ProductList{ID: "l1", ExhibitionID: "EX-0001", Status: models.StatusPending})
			require.NoError(t, err)
			_, err = st.AddProductList(ctx, models.ProductList{ID: "l2", ExhibitionID: "EX-0002", Status: models.StatusPending})
			require.NoError(t, err)

			lists, err := st.GetProductListsByExhibition(ctx, "EX-0002")
			require.NoError(t, err)
			require.Len(t, lists, 1)
			assert.Equal(t, "l2", lists[0].ID)
		})
	}
}

func TestFileMissingSnapshotReadsEmpty(t *testing.T) {
	st := NewFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	ctx := context.Background()

	products, err := st.GetProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	exhibitions, err := st.GetExhibitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, exhibitions)

	orders, err := st.GetOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileRoundTripIsLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	st := NewFile(path)
	product := models.Product{
		ID:             "p1",
		Name:           "Vase",
		Category:       "Ceramics",
		BuyingPrice:    120.5,
		Quantity:       10,
		Unit:           "pcs",
		ThresholdValue: 4,
		ExpiryDate:     "2027-01-01",
		Availability:   models.AvailabilityLowStock,
		Image:          "/uploads/vase.png",
	}
	order := models.Order{ID: "1234", Exhibition: "Spring", OrderValue: 500, Quantity: 5, Unit: "pcs", Status: "Received"}
	exhibition := models.Exhibition{ID: "e1", ExhibitionID: "EX-0001", Name: "Spring", StartDate: "2026-03-01"}
	ep := models.ExhibitionProduct{ID: "ep1", ExhibitionID: "EX-0001", ProductID: "p1", Quantity: 2, Price: 10, Status: models.StatusPending, SupplierID: "s1"}
	list := models.ProductList{ID: "l1", ExhibitionID: "EX-0001", SupplierID: "s1", Status: models.StatusApproved, CreatedAt: "2026-02-01T00:00:00Z", TotalQuantity: 5}
	item := models.ProductListItem{ID: "i1", ProductListID: "l1", ProductID: "p1", Quantity: 5, Price: 100}

	_, err := st.AddProduct(ctx, product)
	require.NoError(t, err)
	_, err = st.AddOrder(ctx, order)
	require.NoError(t, err)
	_, err = st.AddExhibition(ctx, exhibition)
	require.NoError(t, err)
	_, err = st.AddExhibitionProduct(ctx, ep)
	require.NoError(t, err)
	_, err = st.AddProductList(ctx, list)
	require.NoError(t, err)
	_, err = st.AddProductListItem(ctx, item)
	require.NoError(t, err)

	// A fresh handle on the same file sees exactly what was written.
	reopened := NewFile(path)

	gotProducts, err := reopened.GetProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{product}, gotProducts)

	gotOrders, err := reopened.GetOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Order{order}, gotOrders)

	gotExhibitions, err := reopened.GetExhibitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Exhibition{exhibition}, gotExhibitions)

	gotEPs, err := reopened.GetExhibitionProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ExhibitionProduct{ep}, gotEPs)

	gotLists, err := reopened.GetProductLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ProductList{list}, gotLists)

	gotItems, err := reopened.GetItemsByProductList(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, []models.ProductListItem{item}, gotItems)
}

func TestNewBackendSelection(t *testing.T) {
	st, err := New(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	st, err = New(BackendFile, filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, st)

	_, err = New("bolt", "")
	assert.Error(t, err)
}
