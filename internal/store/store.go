package store

import (
	"context"
	"errors"
	"fmt"

	"exhibition-service/internal/models"
)

// ErrNotFound is returned when a referenced id does not resolve in a
// collection. Callers translate it to their own not-found signalling.
var ErrNotFound = errors.New("record not found")

// Store is the per-collection record store contract. Two interchangeable
// backends exist: a volatile in-memory store and a durable whole-file JSON
// snapshot store. Both behave identically from the caller's perspective.
//
// None of the collections enforce referential integrity; ids are references
// by convention only.
type Store interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	AddProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	GetOrders(ctx context.Context) ([]models.Order, error)
	AddOrder(ctx context.Context, order models.Order) (*models.Order, error)

	GetExhibitions(ctx context.Context) ([]models.Exhibition, error)
	GetExhibitionByID(ctx context.Context, id string) (*models.Exhibition, error)
	AddExhibition(ctx context.Context, exhibition models.Exhibition) (*models.Exhibition, error)
	UpdateExhibition(ctx context.Context, id string, patch *models.ExhibitionPatch) (*models.Exhibition, error)

	GetExhibitionProducts(ctx context.Context) ([]models.ExhibitionProduct, error)
	GetExhibitionProductsByExhibition(ctx context.Context, exhibitionID string) ([]models.ExhibitionProduct, error)
	AddExhibitionProduct(ctx context.Context, ep models.ExhibitionProduct) (*models.ExhibitionProduct, error)
	UpdateExhibitionProduct(ctx context.Context, id string, patch *models.ExhibitionProductPatch) (*models.ExhibitionProduct, error)

	GetProductLists(ctx context.Context) ([]models.ProductList, error)
	GetProductListsByExhibition(ctx context.Context, exhibitionID string) ([]models.ProductList, error)
	GetProductListByID(ctx context.Context, id string) (*models.ProductList, error)
	AddProductList(ctx context.Context, list models.ProductList) (*models.ProductList, error)
	UpdateProductList(ctx context.Context, id string, patch *models.ProductListPatch) (*models.ProductList, error)

	GetItemsByProductList(ctx context.Context, productListID string) ([]models.ProductListItem, error)
	AddProductListItem(ctx context.Context, item models.ProductListItem) (*models.ProductListItem, error)
	DeleteItemsByProductList(ctx context.Context, productListID string) error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
)

// New creates a store for the configured backend.
func New(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", backend)
	}
}
