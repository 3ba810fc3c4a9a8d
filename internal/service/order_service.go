package service

import (
	"context"
	"fmt"

	"exhibition-service/internal/models"
	"exhibition-service/internal/store"
	"exhibition-service/internal/util"

	"go.uber.org/zap"
)

// Exhibition-level order statuses derived by aggregation.
const (
	ExhibitionOrderActive  = "Active"
	ExhibitionOrderPending = "Pending"
)

// OrderService computes the read-side exhibition order projection and
// records standalone order entries.
type OrderService struct {
	store  store.Store
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(st store.Store) *OrderService {
	return &OrderService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// AggregatedItem is a product list item carried into an exhibition's order
// view, enriched from the catalog and tagged with the owning list's
// supplier.
type AggregatedItem struct {
	models.ProductListItem
	ProductFields
	SupplierID string `json:"supplierId"`
}

// ExhibitionOrders is one exhibition with the rollup of its approved
// lists. The aggregated items keep the "orders" key for the UI.
type ExhibitionOrders struct {
	models.Exhibition
	Orders        []AggregatedItem `json:"orders"`
	TotalValue    float64          `json:"totalValue"`
	TotalQuantity int              `json:"totalQuantity"`
	Status        string           `json:"status"`
}

// ExhibitionOrdersView recomputes the projection from scratch: for every
// exhibition, the items of all its approved lists are concatenated,
// quantities summed via the lists' cached totals and value summed as
// price x quantity per item. An exhibition with no approved lists yields
// empty items, zero totals and status Pending.
func (s *OrderService) ExhibitionOrdersView(ctx context.Context) ([]ExhibitionOrders, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ExhibitionOrdersView")
	defer span.End()

	exhibitions, err := s.store.GetExhibitions(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := s.store.GetProductLists(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	approvedByExhibition := map[string][]models.ProductList{}
	for _, list := range lists {
		if list.Status == models.StatusApproved {
			approvedByExhibition[list.ExhibitionID] = append(approvedByExhibition[list.ExhibitionID], list)
		}
	}

	productIdx := indexProducts(products)
	view := make([]ExhibitionOrders, 0, len(exhibitions))
	for _, exhibition := range exhibitions {
		entry := ExhibitionOrders{
			Exhibition: exhibition,
			Orders:     []AggregatedItem{},
			Status:     ExhibitionOrderPending,
		}

		approved := approvedByExhibition[exhibition.ExhibitionID]
		if len(approved) > 0 {
			entry.Status = ExhibitionOrderActive
		}

		for _, list := range approved {
			entry.TotalQuantity += list.TotalQuantity

			items, err := s.store.GetItemsByProductList(ctx, list.ID)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				entry.TotalValue += item.Price * float64(item.Quantity)
				entry.Orders = append(entry.Orders, AggregatedItem{
					ProductListItem: item,
					ProductFields:   lookupProductFields(productIdx, item.ProductID),
					SupplierID:      list.SupplierID,
				})
			}
		}

		view = append(view, entry)
	}
	return view, nil
}

// CreateOrderRequest carries the caller-supplied order fields.
type CreateOrderRequest struct {
	Exhibition       string  `json:"exhibition"`
	OrderValue       float64 `json:"orderValue"`
	Quantity         int     `json:"quantity"`
	Unit             string  `json:"unit"`
	ExpectedDelivery string  `json:"expectedDelivery"`
	Status           string  `json:"status"`
}

// CreateOrder stores an order record with a generated numeric-string id.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	order := models.Order{
		ID:               util.NewNumericID(10000),
		Exhibition:       req.Exhibition,
		OrderValue:       req.OrderValue,
		Quantity:         req.Quantity,
		Unit:             req.Unit,
		ExpectedDelivery: req.ExpectedDelivery,
		Status:           req.Status,
	}

	created, err := s.store.AddOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created", zap.String("order_id", created.ID))
	return created, nil
}

// ListOrders returns the stored order records.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.store.GetOrders(ctx)
}
