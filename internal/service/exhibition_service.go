package service

import (
	"context"
	"fmt"

	"exhibition-service/internal/broker"
	"exhibition-service/internal/models"
	"exhibition-service/internal/store"
	"exhibition-service/internal/util"

	"go.uber.org/zap"
)

// defaultSupplierID stands in until supplier authentication exists.
const defaultSupplierID = "current-user"

// ExhibitionService handles exhibitions, their proposed products and the
// approval workflow over them.
type ExhibitionService struct {
	store     store.Store
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewExhibitionService creates a new exhibition service
func NewExhibitionService(st store.Store, publisher *broker.EventPublisher) *ExhibitionService {
	return &ExhibitionService{
		store:     st,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateExhibitionRequest represents a request to create an exhibition
type CreateExhibitionRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	StartDate   string                   `json:"startDate"`
	EndDate     string                   `json:"endDate"`
	Products    []ProposedProductRequest `json:"products"`
}

// ProposedProductRequest is one supplier-proposed line item
type ProposedProductRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// EnrichedExhibitionProduct is an exhibition product with catalog display
// fields attached.
type EnrichedExhibitionProduct struct {
	models.ExhibitionProduct
	ProductFields
}

// PendingApproval is a pending exhibition product enriched for the
// approval screen.
type PendingApproval struct {
	models.ExhibitionProduct
	ExhibitionName *string `json:"exhibitionName,omitempty"`
	ProductName    *string `json:"productName,omitempty"`
	ProductImage   *string `json:"productImage,omitempty"`
}

// ListExhibitions returns all exhibitions.
func (s *ExhibitionService) ListExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	ctx, span := util.StartSpan(ctx, "ExhibitionService.ListExhibitions")
	defer span.End()

	return s.store.GetExhibitions(ctx)
}

// CreateExhibition creates an exhibition with a generated EX-#### id and
// registers any initially proposed products as pending rows.
func (s *ExhibitionService) CreateExhibition(ctx context.Context, req *CreateExhibitionRequest) (*models.Exhibition, error) {
	ctx, span := util.StartSpan(ctx, "ExhibitionService.CreateExhibition")
	defer span.End()

	exhibition := models.Exhibition{
		ID:           util.NewRecordID(),
		ExhibitionID: util.NewExhibitionCode(),
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	created, err := s.store.AddExhibition(ctx, exhibition)
	if err != nil {
		return nil, fmt.Errorf("failed to create exhibition: %w", err)
	}

	// Proposed products reference the human-facing EX-#### id.
	if err := s.addProposedProducts(ctx, created.ExhibitionID, req.Products); err != nil {
		return nil, err
	}

	util.ExhibitionsCreatedTotal.Inc()
	s.logger.Info("Exhibition created",
		zap.String("id", created.ID),
		zap.String("exhibition_id", created.ExhibitionID),
		zap.Int("initial_products", len(req.Products)))
	return created, nil
}

// AddProducts registers pending exhibition products for an exhibition.
func (s *ExhibitionService) AddProducts(ctx context.Context, exhibitionID string, products []ProposedProductRequest) error {
	ctx, span := util.StartSpan(ctx, "ExhibitionService.AddProducts")
	defer span.End()

	return s.addProposedProducts(ctx, exhibitionID, products)
}

func (s *ExhibitionService) addProposedProducts(ctx context.Context, exhibitionID string, products []ProposedProductRequest) error {
	for _, p := range products {
		row := models.ExhibitionProduct{
			ID:           util.NewRecordID(),
			ExhibitionID: exhibitionID,
			ProductID:    p.ProductID,
			Quantity:     p.Quantity,
			Price:        p.Price,
			Status:       models.StatusPending,
			SupplierID:   defaultSupplierID,
		}
		if _, err := s.store.AddExhibitionProduct(ctx, row); err != nil {
			return fmt.Errorf("failed to add exhibition product: %w", err)
		}
	}
	return nil
}

// ExhibitionProducts returns the rows proposed for an exhibition, enriched
// with catalog display fields.
func (s *ExhibitionService) ExhibitionProducts(ctx context.Context, exhibitionID string) ([]EnrichedExhibitionProduct, error) {
	ctx, span := util.StartSpan(ctx, "ExhibitionService.ExhibitionProducts")
	defer span.End()

	rows, err := s.store.GetExhibitionProductsByExhibition(ctx, exhibitionID)
	if err != nil {
		return nil, err
	}
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexProducts(products)
	enriched := make([]EnrichedExhibitionProduct, 0, len(rows))
	for _, row := range rows {
		enriched = append(enriched, EnrichedExhibitionProduct{
			ExhibitionProduct: row,
			ProductFields:     lookupProductFields(idx, row.ProductID),
		})
	}
	return enriched, nil
}

// PendingApprovals returns every pending exhibition product enriched with
// exhibition name and catalog display fields.
func (s *ExhibitionService) PendingApprovals(ctx context.Context) ([]PendingApproval, error) {
	ctx, span := util.StartSpan(ctx, "ExhibitionService.PendingApprovals")
	defer span.End()

	rows, err := s.store.GetExhibitionProducts(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	exhibitions, err := s.store.GetExhibitions(ctx)
	if err != nil {
		return nil, err
	}

	productIdx := indexProducts(products)
	exhibitionIdx := indexExhibitionsByCode(exhibitions)

	pending := []PendingApproval{}
	for _, row := range rows {
		if row.Status != models.StatusPending {
			continue
		}
		entry := PendingApproval{ExhibitionProduct: row}
		fields := lookupProductFields(productIdx, row.ProductID)
		entry.ProductName = fields.ProductName
		entry.ProductImage = fields.ProductImage
		if ex, ok := exhibitionIdx[row.ExhibitionID]; ok {
			name := ex.Name
			entry.ExhibitionName = &name
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

// Decide applies an approval decision to a pending exhibition product.
// Only "approved" and "rejected" are accepted; both are terminal.
func (s *ExhibitionService) Decide(ctx context.Context, id, status string) (*models.ExhibitionProduct, error) {
	ctx, span := util.StartSpan(ctx, "ExhibitionService.Decide")
	defer span.End()

	if status != models.StatusApproved && status != models.StatusRejected {
		util.ApprovalRejectedInputTotal.Inc()
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	updated, err := s.store.UpdateExhibitionProduct(ctx, id, &models.ExhibitionProductPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	util.ApprovalDecisionsTotal.WithLabelValues(models.ApprovalSubjectExhibitionProduct, status).Inc()
	s.logger.Info("Exhibition product decided",
		zap.String("id", id),
		zap.String("decision", status))
	s.publisher.PublishApprovalDecided(ctx, models.ApprovalSubjectExhibitionProduct,
		updated.ID, updated.ExhibitionID, updated.SupplierID, status)
	return updated, nil
}
