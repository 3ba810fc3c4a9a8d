package service

import (
	"context"
	"fmt"

	"exhibition-service/internal/models"
	"exhibition-service/internal/store"
	"exhibition-service/internal/util"

	"go.uber.org/zap"
)

// placeholderImage is used when a product is created without an uploaded
// image file.
const placeholderImage = "/placeholder.png"

// CatalogService handles product catalog operations
type CatalogService struct {
	store  store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// CreateProductRequest carries the multipart form fields of a product
// create. ID is optional; a random numeric token is generated when absent.
// Availability is taken as-is from the caller and never derived from
// Quantity vs ThresholdValue.
type CreateProductRequest struct {
	ID             string
	Name           string
	Category       string
	BuyingPrice    float64
	Quantity       int
	Unit           string
	ThresholdValue int
	ExpiryDate     string
	Availability   string
	Image          string
}

// ListProducts returns the whole catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	return s.store.GetProducts(ctx)
}

// GetProduct returns a single catalog entry.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	return s.store.GetProductByID(ctx, id)
}

// CreateProduct adds a catalog entry.
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	product := models.Product{
		ID:             req.ID,
		Name:           req.Name,
		Category:       req.Category,
		BuyingPrice:    req.BuyingPrice,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ThresholdValue: req.ThresholdValue,
		ExpiryDate:     req.ExpiryDate,
		Availability:   req.Availability,
		Image:          req.Image,
	}
	if product.ID == "" {
		product.ID = util.NewNumericID(1000000)
	}
	if product.Image == "" {
		product.Image = placeholderImage
	}

	created, err := s.store.AddProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.String("product_id", created.ID),
		zap.String("name", created.Name))
	return created, nil
}

// UpdateProduct merges a partial update into an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	return s.store.UpdateProduct(ctx, id, patch)
}

// DeleteProduct removes a catalog entry.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}
