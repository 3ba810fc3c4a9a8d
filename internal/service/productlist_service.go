package service

import (
	"context"
	"fmt"
	"time"

	"exhibition-service/internal/broker"
	"exhibition-service/internal/models"
	"exhibition-service/internal/store"
	"exhibition-service/internal/util"

	"go.uber.org/zap"
)

// ProductListService handles supplier product list submissions and the
// approval workflow over them.
type ProductListService struct {
	store     store.Store
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewProductListService creates a new product list service
func NewProductListService(st store.Store, publisher *broker.EventPublisher) *ProductListService {
	return &ProductListService{
		store:     st,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// ListItemRequest is one submitted line item. Price defaults to zero and is
// snapshotted onto the stored item; later catalog price changes never touch
// it.
type ListItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateProductListRequest represents a supplier's list submission
type CreateProductListRequest struct {
	ExhibitionID string            `json:"exhibitionId"`
	SupplierID   string            `json:"supplierId"`
	Items        []ListItemRequest `json:"items"`
}

// UpdateProductListRequest updates a list's status and/or fully replaces
// its items. Nil fields are left untouched.
type UpdateProductListRequest struct {
	Status *string           `json:"status"`
	Items  []ListItemRequest `json:"items"`
}

// EnrichedListItem is a stored item with catalog display fields attached.
// ProductSKU mirrors the catalog id of the referenced product.
type EnrichedListItem struct {
	models.ProductListItem
	ProductName  *string `json:"productName,omitempty"`
	ProductSKU   *string `json:"productSKU,omitempty"`
	ProductUnit  *string `json:"productUnit,omitempty"`
	ProductImage *string `json:"productImage,omitempty"`
}

// ProductListDetail is a list with its enriched items.
type ProductListDetail struct {
	models.ProductList
	Items []EnrichedListItem `json:"items"`
}

// List returns product lists, optionally filtered by exhibition id.
func (s *ProductListService) List(ctx context.Context, exhibitionID string) ([]models.ProductList, error) {
	ctx, span := util.StartSpan(ctx, "ProductListService.List")
	defer span.End()

	if exhibitionID != "" {
		return s.store.GetProductListsByExhibition(ctx, exhibitionID)
	}
	return s.store.GetProductLists(ctx)
}

// Create validates and stores a new pending list with its items.
// TotalQuantity is the sum of the submitted item quantities.
func (s *ProductListService) Create(ctx context.Context, req *CreateProductListRequest) (*models.ProductList, error) {
	ctx, span := util.StartSpan(ctx, "ProductListService.Create")
	defer span.End()

	if req.ExhibitionID == "" || req.SupplierID == "" || req.Items == nil {
		return nil, fmt.Errorf("%w: exhibitionId, supplierId and items are required", ErrInvalidInput)
	}

	list := models.ProductList{
		ID:            util.NewRecordID(),
		ExhibitionID:  req.ExhibitionID,
		SupplierID:    req.SupplierID,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		TotalQuantity: sumQuantities(req.Items),
	}

	created, err := s.store.AddProductList(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to create product list: %w", err)
	}
	if err := s.insertItems(ctx, created.ID, req.Items); err != nil {
		return nil, err
	}

	util.ProductListsSubmittedTotal.Inc()
	s.logger.Info("Product list submitted",
		zap.String("id", created.ID),
		zap.String("exhibition_id", created.ExhibitionID),
		zap.String("supplier_id", created.SupplierID),
		zap.Int("total_quantity", created.TotalQuantity))
	s.publisher.PublishProductListSubmitted(ctx, created)
	return created, nil
}

// Get returns a list with its items enriched from the catalog.
func (s *ProductListService) Get(ctx context.Context, id string) (*ProductListDetail, error) {
	ctx, span := util.StartSpan(ctx, "ProductListService.Get")
	defer span.End()

	list, err := s.store.GetProductListByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.GetItemsByProductList(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexProducts(products)
	detail := &ProductListDetail{
		ProductList: *list,
		Items:       make([]EnrichedListItem, 0, len(items)),
	}
	for _, item := range items {
		entry := EnrichedListItem{ProductListItem: item}
		if p, ok := idx[item.ProductID]; ok {
			entry.ProductName = &p.Name
			entry.ProductSKU = &p.ID
			entry.ProductUnit = &p.Unit
			if p.Image != "" {
				entry.ProductImage = &p.Image
			}
		}
		detail.Items = append(detail.Items, entry)
	}
	return detail, nil
}

// Update applies an optional status decision and an optional full item
// replacement. Replacement is delete-then-reinsert across two store
// operations; a reader in between can observe an empty item set.
func (s *ProductListService) Update(ctx context.Context, id string, req *UpdateProductListRequest) error {
	ctx, span := util.StartSpan(ctx, "ProductListService.Update")
	defer span.End()

	list, err := s.store.GetProductListByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Status != nil {
		status := *req.Status
		if status != models.StatusApproved && status != models.StatusRejected {
			util.ApprovalRejectedInputTotal.Inc()
			return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		if _, err := s.store.UpdateProductList(ctx, list.ID, &models.ProductListPatch{Status: &status}); err != nil {
			return err
		}

		util.ApprovalDecisionsTotal.WithLabelValues(models.ApprovalSubjectProductList, status).Inc()
		s.logger.Info("Product list decided",
			zap.String("id", list.ID),
			zap.String("decision", status))
		s.publisher.PublishApprovalDecided(ctx, models.ApprovalSubjectProductList,
			list.ID, list.ExhibitionID, list.SupplierID, status)
	}

	if req.Items != nil {
		total := sumQuantities(req.Items)
		if _, err := s.store.UpdateProductList(ctx, list.ID, &models.ProductListPatch{TotalQuantity: &total}); err != nil {
			return err
		}
		if err := s.store.DeleteItemsByProductList(ctx, list.ID); err != nil {
			return err
		}
		if err := s.insertItems(ctx, list.ID, req.Items); err != nil {
			return err
		}

		s.logger.Info("Product list items replaced",
			zap.String("id", list.ID),
			zap.Int("items", len(req.Items)),
			zap.Int("total_quantity", total))
	}

	return nil
}

func (s *ProductListService) insertItems(ctx context.Context, listID string, items []ListItemRequest) error {
	for _, item := range items {
		row := models.ProductListItem{
			ID:            util.NewRecordID(),
			ProductListID: listID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Price:         item.Price,
		}
		if _, err := s.store.AddProductListItem(ctx, row); err != nil {
			return fmt.Errorf("failed to add product list item: %w", err)
		}
	}
	return nil
}

func sumQuantities(items []ListItemRequest) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
