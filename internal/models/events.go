package models

import "time"

// Event types
const (
	EventTypeProductListSubmitted = "PRODUCT_LIST_SUBMITTED"
	EventTypeApprovalDecided      = "APPROVAL_DECIDED"
)

// Subjects an approval decision can apply to.
const (
	ApprovalSubjectExhibitionProduct = "exhibition_product"
	ApprovalSubjectProductList       = "product_list"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductListSubmittedEvent published when a supplier submits a list
type ProductListSubmittedEvent struct {
	BaseEvent
	ProductListID string `json:"product_list_id"`
	ExhibitionID  string `json:"exhibition_id"`
	SupplierID    string `json:"supplier_id"`
	TotalQuantity int    `json:"total_quantity"`
}

// ApprovalDecidedEvent published when a pending record is approved or rejected
type ApprovalDecidedEvent struct {
	BaseEvent
	Subject      string `json:"subject"`
	SubjectID    string `json:"subject_id"`
	ExhibitionID string `json:"exhibition_id"`
	SupplierID   string `json:"supplier_id"`
	Decision     string `json:"decision"`
}
