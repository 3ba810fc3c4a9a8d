package models

// Product availability labels. The store never derives availability from
// quantity vs thresholdValue; callers set it explicitly.
const (
	AvailabilityInStock    = "In-stock"
	AvailabilityOutOfStock = "Out-of-stock"
	AvailabilityLowStock   = "Low-stock"
)

// Approval workflow statuses shared by ExhibitionProduct and ProductList.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Product is a catalog entry.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	BuyingPrice    float64 `json:"buyingPrice"`
	Quantity       int     `json:"quantity"`
	Unit           string  `json:"unit"`
	ThresholdValue int     `json:"thresholdValue"`
	ExpiryDate     string  `json:"expiryDate"`
	Availability   string  `json:"availability"`
	Image          string  `json:"image,omitempty"`
}

// ProductPatch carries a partial product update. Nil fields are left as-is.
type ProductPatch struct {
	Name           *string  `json:"name"`
	Category       *string  `json:"category"`
	BuyingPrice    *float64 `json:"buyingPrice"`
	Quantity       *int     `json:"quantity"`
	Unit           *string  `json:"unit"`
	ThresholdValue *int     `json:"thresholdValue"`
	ExpiryDate     *string  `json:"expiryDate"`
	Availability   *string  `json:"availability"`
	Image          *string  `json:"image"`
}

// Apply merges the patch into p.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.BuyingPrice != nil {
		p.BuyingPrice = *patch.BuyingPrice
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.ThresholdValue != nil {
		p.ThresholdValue = *patch.ThresholdValue
	}
	if patch.ExpiryDate != nil {
		p.ExpiryDate = *patch.ExpiryDate
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
}

// Exhibition is a scheduled event suppliers submit offerings for. The
// internal id identifies the record; ExhibitionID is the human-facing
// EX-#### token that ExhibitionProduct and ProductList rows reference.
type Exhibition struct {
	ID           string `json:"id"`
	ExhibitionID string `json:"exhibitionId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// ExhibitionPatch carries a partial exhibition update.
type ExhibitionPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// Apply merges the patch into e.
func (patch *ExhibitionPatch) Apply(e *Exhibition) {
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = *patch.EndDate
	}
}

// ExhibitionProduct is a single supplier-proposed line item for an
// exhibition, awaiting approval.
type ExhibitionProduct struct {
	ID           string  `json:"id"`
	ExhibitionID string  `json:"exhibitionId"`
	ProductID    string  `json:"productId"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price,omitempty"`
	Status       string  `json:"status"`
	SupplierID   string  `json:"supplierId"`
}

// ExhibitionProductPatch carries a partial exhibition product update.
type ExhibitionProductPatch struct {
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Status   *string  `json:"status"`
}

// Apply merges the patch into ep.
func (patch *ExhibitionProductPatch) Apply(ep *ExhibitionProduct) {
	if patch.Quantity != nil {
		ep.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		ep.Price = *patch.Price
	}
	if patch.Status != nil {
		ep.Status = *patch.Status
	}
}

// ProductList is a supplier's bundled submission for one exhibition,
// approved or rejected as a unit. TotalQuantity is a cached sum of the
// list's current items, recomputed on every full item replacement.
type ProductList struct {
	ID            string `json:"id"`
	ExhibitionID  string `json:"exhibitionId"`
	SupplierID    string `json:"supplierId"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	TotalQuantity int    `json:"totalQuantity"`
}

// ProductListPatch carries a partial product list update.
type ProductListPatch struct {
	Status        *string `json:"status"`
	TotalQuantity *int    `json:"totalQuantity"`
}

// Apply merges the patch into pl.
func (patch *ProductListPatch) Apply(pl *ProductList) {
	if patch.Status != nil {
		pl.Status = *patch.Status
	}
	if patch.TotalQuantity != nil {
		pl.TotalQuantity = *patch.TotalQuantity
	}
}

// ProductListItem belongs to exactly one ProductList. Price is snapshotted
// when the item is written and never refreshed from the catalog.
type ProductListItem struct {
	ID            string  `json:"id"`
	ProductListID string  `json:"productListId"`
	ProductID     string  `json:"productId"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

// Order is a lightweight delivery record; it is not part of the
// aggregation pipeline.
type Order struct {
	ID               string  `json:"id"`
	Exhibition       string  `json:"exhibition"`
	OrderValue       float64 `json:"orderValue"`
	Quantity         int     `json:"quantity"`
	Unit             string  `json:"unit"`
	ExpectedDelivery string  `json:"expectedDelivery"`
	Status           string  `json:"status"`
}

// Database is the whole-store snapshot the file backend serializes. The
// memory backend uses the same shape so both backends behave identically.
type Database struct {
	Products           []Product           `json:"products"`
	Orders             []Order             `json:"orders"`
	Exhibitions        []Exhibition        `json:"exhibitions"`
	ExhibitionProducts []ExhibitionProduct `json:"exhibitionProducts"`
	ProductLists       []ProductList       `json:"productLists"`
	ProductListItems   []ProductListItem   `json:"productListItems"`
}

// NewDatabase returns an empty snapshot with all collections allocated.
func NewDatabase() *Database {
	return &Database{
		Products:           []Product{},
		Orders:             []Order{},
		Exhibitions:        []Exhibition{},
		ExhibitionProducts: []ExhibitionProduct{},
		ProductLists:       []ProductList{},
		ProductListItems:   []ProductListItem{},
	}
}
