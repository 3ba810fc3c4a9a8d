package store

import (
	"context"
	"sync"

	"exhibition-service/internal/models"
)

// Memory is the volatile backend: mutations apply directly to
// process-lifetime collections and all state is lost on restart. The mutex
// only keeps individual operations race-free; there is still no isolation
// between requests (last write wins).
type Memory struct {
	mu sync.Mutex
	db *models.Database
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{db: models.NewDatabase()}
}

// GetProducts returns all products.
func (m *Memory) GetProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyProducts(m.db.Products), nil
}

// GetProductByID returns a product or ErrNotFound.
func (m *Memory) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := findProduct(m.db, id)
	if p == nil {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

// AddProduct appends a product without any uniqueness check.
func (m *Memory) AddProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *addProduct(m.db, product)
	return &out, nil
}

// UpdateProduct merges the patch into an existing product.
func (m *Memory) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := findProduct(m.db, id)
	if p == nil {
		return nil, ErrNotFound
	}
	patch.Apply(p)
	out := *p
	return &out, nil
}

// DeleteProduct removes a product or returns ErrNotFound.
func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !deleteProduct(m.db, id) {
		return ErrNotFound
	}
	return nil
}

// GetOrders returns all orders.
func (m *Memory) GetOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyOrders(m.db.Orders), nil
}

// AddOrder appends an order.
func (m *Memory) AddOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *addOrder(m.db, order)
	return &out, nil
}

// GetExhibitions returns all exhibitions.
func (m *Memory) GetExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyExhibitions(m.db.Exhibitions), nil
}

// GetExhibitionByID returns an exhibition by its internal id.
func (m *Memory) GetExhibitionByID(ctx context.Context, id string) (*models.Exhibition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := findExhibition(m.db, id)
	if e == nil {
		return nil, ErrNotFound
	}
	out := *e
	return &out, nil
}

// AddExhibition appends an exhibition.
func (m *Memory) AddExhibition(ctx context.Context, exhibition models.Exhibition) (*models.Exhibition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *addExhibition(m.db, exhibition)
	return &out, nil
}

// UpdateExhibition merges the patch into an existing exhibition.
func (m *Memory) UpdateExhibition(ctx context.Context, id string, patch *models.ExhibitionPatch) (*models.Exhibition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := findExhibition(m.db, id)
	if e == nil {
		return nil, ErrNotFound
	}
	patch.Apply(e)
	out := *e
	return &out, nil
}

// GetExhibitionProducts returns all exhibition products.
func (m *Memory) GetExhibitionProducts(ctx context.Context) ([]models.ExhibitionProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyExhibitionProducts(m.db.ExhibitionProducts), nil
}

// GetExhibitionProductsByExhibition returns the rows referencing an
// exhibition's EX-#### id.
func (m *Memory) GetExhibitionProductsByExhibition(ctx context.Context, exhibitionID string) ([]models.ExhibitionProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return exhibitionProductsByExhibition(m.db, exhibitionID), nil
}

// AddExhibitionProduct appends an exhibition product.
func (m *Memory) AddExhibitionProduct(ctx context.Context, ep models.ExhibitionProduct) (*models.ExhibitionProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *addExhibitionProduct(m.db, ep)
	return &out, nil
}

// UpdateExhibitionProduct merges the patch into an existing row.
func (m *Memory) UpdateExhibitionProduct(ctx context.Context, id string, patch *models.ExhibitionProductPatch) (*models.ExhibitionProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ep := findExhibitionProduct(m.db, id)
	if ep == nil {
		return nil, ErrNotFound
	}
	patch.Apply(ep)
	out := *ep
	return &out, nil
}

// GetProductLists returns all product lists.
func (m *Memory) GetProductLists(ctx context.Context) ([]models.ProductList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyProductLists(m.db.ProductLists), nil
}

// GetProductListsByExhibition returns the lists referencing an exhibition's
// EX-#### id.
func (m *Memory) GetProductListsByExhibition(ctx context.Context, exhibitionID string) ([]models.ProductList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return productListsByExhibition(m.db, exhibitionID), nil
}

// GetProductListByID returns a product list or ErrNotFound.
func (m *Memory) GetProductListByID(ctx context.Context, id string) (*models.ProductList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pl := findProductList(m.db, id)
	if pl == nil {
		return nil, ErrNotFound
	}
	out := *pl
	return &out, nil
}

// AddProductList appends a product list.
func (m *Memory) AddProductList(ctx context.Context, list models.ProductList) (*models.ProductList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *addProductList(m.db, list)
	return &out, nil
}

// UpdateProductList merges the patch into an existing list.
func (m *Memory) UpdateProductList(ctx context.Context, id string, patch *models.ProductListPatch) (*models.ProductList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pl := findProductList(m.db, id)
	if pl == nil {
		return nil, ErrNotFound
	}
	patch.Apply(pl)
	out := *pl
	return &out, nil
}

// GetItemsByProductList returns the items owned by a list.
func (m *Memory) GetItemsByProductList(ctx context.Context, productListID string) ([]models.ProductListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return itemsByProductList(m.db, productListID), nil
}

// AddProductListItem appends an item.
func (m *Memory) AddProductListItem(ctx context.Context, item models.ProductListItem) (*models.ProductListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *addProductListItem(m.db, item)
	return &out, nil
}

// DeleteItemsByProductList removes every item owned by a list. Deleting
// for an unknown list id is a no-op, not an error.
func (m *Memory) DeleteItemsByProductList(ctx context.Context, productListID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleteItemsByProductList(m.db, productListID)
	return nil
}
