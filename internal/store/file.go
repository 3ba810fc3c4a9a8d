package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"exhibition-service/internal/models"
)

// File is the durable backend. Every operation re-parses the whole JSON
// snapshot and every mutation re-serializes it. There is no file locking:
// two writers racing on the same snapshot each read-modify-write the file
// and the second save clobbers the first (documented last-write-wins
// hazard, kept intentionally).
type File struct {
	path string
}

// NewFile creates a file store at path. The file is created lazily on the
// first write; a missing file reads as an empty database.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) load() (*models.Database, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewDatabase(), nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", f.path, err)
	}
	db := models.NewDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", f.path, err)
	}
	return db, nil
}

func (f *File) save(db *models.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", f.path, err)
	}
	return nil
}

// GetProducts returns all products.
func (f *File) GetProducts(ctx context.Context) ([]models.Product, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return db.Products, nil
}

// GetProductByID returns a product or ErrNotFound.
func (f *File) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	p := findProduct(db, id)
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// AddProduct appends a product without any uniqueness check.
func (f *File) AddProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	out := addProduct(db, product)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProduct merges the patch into an existing product.
func (f *File) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	p := findProduct(db, id)
	if p == nil {
		return nil, ErrNotFound
	}
	patch.Apply(p)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product or returns ErrNotFound.
func (f *File) DeleteProduct(ctx context.Context, id string) error {
	db, err := f.load()
	if err != nil {
		return err
	}
	if !deleteProduct(db, id) {
		return ErrNotFound
	}
	return f.save(db)
}

// GetOrders returns all orders.
func (f *File) GetOrders(ctx context.Context) ([]models.Order, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return db.Orders, nil
}

// AddOrder appends an order.
func (f *File) AddOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	out := addOrder(db, order)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExhibitions returns all exhibitions.
func (f *File) GetExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return db.Exhibitions, nil
}

// GetExhibitionByID returns an exhibition by its internal id.
func (f *File) GetExhibitionByID(ctx context.Context, id string) (*models.Exhibition, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	e := findExhibition(db, id)
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// AddExhibition appends an exhibition.
func (f *File) AddExhibition(ctx context.Context, exhibition models.Exhibition) (*models.Exhibition, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	out := addExhibition(db, exhibition)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateExhibition merges the patch into an existing exhibition.
func (f *File) UpdateExhibition(ctx context.Context, id string, patch *models.ExhibitionPatch) (*models.Exhibition, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	e := findExhibition(db, id)
	if e == nil {
		return nil, ErrNotFound
	}
	patch.Apply(e)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return e, nil
}

// GetExhibitionProducts returns all exhibition products.
func (f *File) GetExhibitionProducts(ctx context.Context) ([]models.ExhibitionProduct, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return db.ExhibitionProducts, nil
}

// GetExhibitionProductsByExhibition returns the rows referencing an
// exhibition's EX-#### id.
func (f *File) GetExhibitionProductsByExhibition(ctx context.Context, exhibitionID string) ([]models.ExhibitionProduct, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return exhibitionProductsByExhibition(db, exhibitionID), nil
}

// AddExhibitionProduct appends an exhibition product.
func (f *File) AddExhibitionProduct(ctx context.Context, ep models.ExhibitionProduct) (*models.ExhibitionProduct, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	out := addExhibitionProduct(db, ep)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateExhibitionProduct merges the patch into an existing row.
func (f *File) UpdateExhibitionProduct(ctx context.Context, id string, patch *models.ExhibitionProductPatch) (*models.ExhibitionProduct, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	ep := findExhibitionProduct(db, id)
	if ep == nil {
		return nil, ErrNotFound
	}
	patch.Apply(ep)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return ep, nil
}

// GetProductLists returns all product lists.
func (f *File) GetProductLists(ctx context.Context) ([]models.ProductList, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return db.ProductLists, nil
}

// GetProductListsByExhibition returns the lists referencing an exhibition's
// EX-#### id.
func (f *File) GetProductListsByExhibition(ctx context.Context, exhibitionID string) ([]models.ProductList, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return productListsByExhibition(db, exhibitionID), nil
}

// GetProductListByID returns a product list or ErrNotFound.
func (f *File) GetProductListByID(ctx context.Context, id string) (*models.ProductList, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	pl := findProductList(db, id)
	if pl == nil {
		return nil, ErrNotFound
	}
	return pl, nil
}

// AddProductList appends a product list.
func (f *File) AddProductList(ctx context.Context, list models.ProductList) (*models.ProductList, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	out := addProductList(db, list)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProductList merges the patch into an existing list.
func (f *File) UpdateProductList(ctx context.Context, id string, patch *models.ProductListPatch) (*models.ProductList, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	pl := findProductList(db, id)
	if pl == nil {
		return nil, ErrNotFound
	}
	patch.Apply(pl)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return pl, nil
}

// GetItemsByProductList returns the items owned by a list.
func (f *File) GetItemsByProductList(ctx context.Context, productListID string) ([]models.ProductListItem, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	return itemsByProductList(db, productListID), nil
}

// AddProductListItem appends an item.
func (f *File) AddProductListItem(ctx context.Context, item models.ProductListItem) (*models.ProductListItem, error) {
	db, err := f.load()
	if err != nil {
		return nil, err
	}
	out := addProductListItem(db, item)
	if err := f.save(db); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteItemsByProductList removes every item owned by a list.
func (f *File) DeleteItemsByProductList(ctx context.Context, productListID string) error {
	db, err := f.load()
	if err != nil {
		return err
	}
	deleteItemsByProductList(db, productListID)
	return f.save(db)
}
