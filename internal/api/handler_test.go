package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"exhibition-service/internal/broker"
	"exhibition-service/internal/models"
	"exhibition-service/internal/service"
	"exhibition-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	publisher := broker.NewEventPublisher(nil)
	handler := NewHandler(
		service.NewCatalogService(st),
		service.NewExhibitionService(st, publisher),
		service.NewProductListService(st, publisher),
		service.NewOrderService(st),
		"",
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestCreateProductMultipart(t *testing.T) {
	router, st := newTestServer(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("name", "Vase"))
	require.NoError(t, form.WriteField("category", "Ceramics"))
	require.NoError(t, form.WriteField("buyingPrice", "120.5"))
	require.NoError(t, form.WriteField("quantity", "10"))
	require.NoError(t, form.WriteField("unit", "pcs"))
	require.NoError(t, form.WriteField("thresholdValue", "4"))
	require.NoError(t, form.WriteField("expiryDate", "2027-01-01"))
	require.NoError(t, form.WriteField("availability", models.AvailabilityInStock))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	decodeJSON(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Vase", created.Name)
	assert.Equal(t, 120.5, created.BuyingPrice)
	assert.Equal(t, "/placeholder.png", created.Image)

	stored, err := st.GetProductByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vase", stored.Name)
}

func TestUpdateProductPartialMerge(t *testing.T) {
	router, st := newTestServer(t)
	ctx := context.Background()

	_, err := st.AddProduct(ctx, models.Product{ID: "p1", Name: "Vase", Quantity: 10, Unit: "pcs"})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPut, "/products/p1", `{"quantity": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := st.GetProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)
	assert.Equal(t, "Vase", stored.Name)
	assert.Equal(t, "pcs", stored.Unit)
}

func TestUpdateProductNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/products/missing", `{"quantity": 2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	router, st := newTestServer(t)
	ctx := context.Background()

	_, err := st.AddProduct(ctx, models.Product{ID: "p1", Name: "Vase"})
	require.NoError(t, err)

	// Unknown id: 404, collection untouched.
	w := doJSON(t, router, http.MethodDelete, "/products/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	products, err := st.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	w = doJSON(t, router, http.MethodDelete, "/products/p1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Product deleted", resp["message"])

	products, err = st.GetProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCreateExhibition(t *testing.T) {
	router, st := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/exhibitions",
		`{"name": "Spring Fair", "products": [{"productId": "p1", "quantity": 2, "price": 10}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Exhibition
	decodeJSON(t, w, &created)
	assert.Regexp(t, `^EX-\d{4}$`, created.ExhibitionID)

	rows, err := st.GetExhibitionProductsByExhibition(context.Background(), created.ExhibitionID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusPending, rows[0].Status)
}

func TestDecideApproval(t *testing.T) {
	router, st := newTestServer(t)
	ctx := context.Background()

	_, err := st.AddExhibitionProduct(ctx, models.ExhibitionProduct{
		ID: "ep1", ExhibitionID: "EX-0001", ProductID: "p1", Status: models.StatusPending,
	})
	require.NoError(t, err)

	// Disallowed status: 400 and no mutation.
	w := doJSON(t, router, http.MethodPost, "/exhibitions/approve", `{"id": "ep1", "status": "archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	rows, err := st.GetExhibitionProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, rows[0].Status)

	// Unknown id: 404.
	w = doJSON(t, router, http.MethodPost, "/exhibitions/approve", `{"id": "ghost", "status": "approved"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/exhibitions/approve", `{"id": "ep1", "status": "approved"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.ExhibitionProduct
	decodeJSON(t, w, &updated)
	assert.Equal(t, models.StatusApproved, updated.Status)
}

func TestPendingApprovalsEndpoint(t *testing.T) {
	router, st := newTestServer(t)
	ctx := context.Background()

	_, err := st.AddExhibition(ctx, models.Exhibition{ID: "e1", ExhibitionID: "EX-0001", Name: "Spring"})
	require.NoError(t, err)
	_, err = st.AddExhibitionProduct(ctx, models.ExhibitionProduct{
		ID: "ep1", ExhibitionID: "EX-0001", ProductID: "ghost", Status: models.StatusPending,
	})
	require.NoError(t, err)
	_, err = st.AddExhibitionProduct(ctx, models.ExhibitionProduct{
		ID: "ep2", ExhibitionID: "EX-0001", ProductID: "ghost", Status: models.StatusRejected,
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/exhibitions/approve", "")
	require.Equal(t, http.StatusOK, w.Code)

	var pending []map[string]interface{}
	decodeJSON(t, w, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "ep1", pending[0]["id"])
	assert.Equal(t, "Spring", pending[0]["exhibitionName"])
	// Dangling product reference leaves the enriched keys out entirely.
	_, hasName := pending[0]["productName"]
	assert.False(t, hasName)
}

func TestProductListLifecycle(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/product-lists",
		`{"exhibitionId": "EX-0001", "supplierId": "s1", "items": [
			{"productId": "p1", "quantity": 2, "price": 100},
			{"productId": "p2", "quantity": 3, "price": 50}
		]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ProductList
	decodeJSON(t, w, &created)
	assert.Equal(t, 5, created.TotalQuantity)

	w = doJSON(t, router, http.MethodGet, "/product-lists/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		models.ProductList
		Items []models.ProductListItem `json:"items"`
	}
	decodeJSON(t, w, &detail)
	sum := 0
	for _, item := range detail.Items {
		sum += item.Quantity
	}
	assert.Equal(t, detail.TotalQuantity, sum)

	// Full replacement recomputes the cached total from the new items only.
	w = doJSON(t, router, http.MethodPut, "/product-lists/"+created.ID,
		`{"items": [{"productId": "p9", "quantity": 4, "price": 1}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/product-lists/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &detail)
	assert.Equal(t, 4, detail.TotalQuantity)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "p9", detail.Items[0].ProductID)
}

func TestCreateProductListValidation(t *testing.T) {
	router, _ := newTestServer(t)

	// Missing supplierId.
	w := doJSON(t, router, http.MethodPost, "/product-lists",
		`{"exhibitionId": "EX-0001", "items": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing items.
	w = doJSON(t, router, http.MethodPost, "/product-lists",
		`{"exhibitionId": "EX-0001", "supplierId": "s1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Items not an array.
	w = doJSON(t, router, http.MethodPost, "/product-lists",
		`{"exhibitionId": "EX-0001", "supplierId": "s1", "items": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductListFilterQuery(t *testing.T) {
	router, _ := newTestServer(t)

	for _, body := range []string{
		`{"exhibitionId": "EX-0001", "supplierId": "s1", "items": []}`,
		`{"exhibitionId": "EX-0002", "supplierId": "s2", "items": []}`,
	} {
		w := doJSON(t, router, http.MethodPost, "/product-lists", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/product-lists?exhibitionId=EX-0002", "")
	require.Equal(t, http.StatusOK, w.Code)

	var lists []models.ProductList
	decodeJSON(t, w, &lists)
	require.Len(t, lists, 1)
	assert.Equal(t, "EX-0002", lists[0].ExhibitionID)
}

func TestOrdersAggregation(t *testing.T) {
	router, st := newTestServer(t)
	ctx := context.Background()

	_, err := st.AddExhibition(ctx, models.Exhibition{ID: "e1", ExhibitionID: "EX-0001", Name: "Spring"})
	require.NoError(t, err)
	_, err = st.AddExhibition(ctx, models.Exhibition{ID: "e2", ExhibitionID: "EX-0002", Name: "Autumn"})
	require.NoError(t, err)

	_, err = st.AddProductList(ctx, models.ProductList{
		ID: "l1", ExhibitionID: "EX-0001", SupplierID: "s1",
		Status: models.StatusApproved, TotalQuantity: 5,
	})
	require.NoError(t, err)
	_, err = st.AddProductListItem(ctx, models.ProductListItem{
		ID: "i1", ProductListID: "l1", ProductID: "p1", Quantity: 5, Price: 100,
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view []struct {
		ExhibitionID  string                   `json:"exhibitionId"`
		Orders        []map[string]interface{} `json:"orders"`
		TotalValue    float64                  `json:"totalValue"`
		TotalQuantity int                      `json:"totalQuantity"`
		Status        string                   `json:"status"`
	}
	decodeJSON(t, w, &view)
	require.Len(t, view, 2)

	byCode := map[string]int{}
	for i, entry := range view {
		byCode[entry.ExhibitionID] = i
	}

	active := view[byCode["EX-0001"]]
	assert.Equal(t, "Active", active.Status)
	assert.Equal(t, 5, active.TotalQuantity)
	assert.Equal(t, 500.0, active.TotalValue)
	require.Len(t, active.Orders, 1)
	assert.Equal(t, "s1", active.Orders[0]["supplierId"])

	pending := view[byCode["EX-0002"]]
	assert.Equal(t, "Pending", pending.Status)
	assert.Equal(t, 0, pending.TotalQuantity)
	assert.Empty(t, pending.Orders)
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, st := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/orders",
		`{"exhibition": "Spring", "orderValue": 500, "quantity": 5, "unit": "pcs", "status": "Received"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Order
	decodeJSON(t, w, &created)
	assert.NotEmpty(t, created.ID)

	orders, err := st.GetOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Spring", orders[0].Exhibition)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		w := doJSON(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
