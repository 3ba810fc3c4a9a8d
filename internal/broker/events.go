package broker

import (
	"context"
	"fmt"
	"time"

	"exhibition-service/internal/models"
	"exhibition-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher publishes workflow domain events. A publisher with a nil
// producer is a no-op, so the service runs unchanged with no Kafka
// configured. Publish failures are logged, never surfaced to the caller:
// the store write is the source of truth and has already happened.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		logger:   util.GetLogger(),
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}

// PublishProductListSubmitted publishes a ProductListSubmitted event
func (ep *EventPublisher) PublishProductListSubmitted(ctx context.Context, list *models.ProductList) {
	if ep == nil || ep.producer == nil {
		return
	}

	event := &models.ProductListSubmittedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeProductListSubmitted),
		ProductListID: list.ID,
		ExhibitionID:  list.ExhibitionID,
		SupplierID:    list.SupplierID,
		TotalQuantity: list.TotalQuantity,
	}

	key := fmt.Sprintf("list-%s", list.ID)
	if err := ep.producer.PublishEvent(ctx, key, event); err != nil {
		ep.logger.Warn("Failed to publish ProductListSubmitted event",
			zap.String("product_list_id", list.ID),
			zap.Error(err))
	}
}

// PublishApprovalDecided publishes an ApprovalDecided event
func (ep *EventPublisher) PublishApprovalDecided(ctx context.Context, subject, subjectID, exhibitionID, supplierID, decision string) {
	if ep == nil || ep.producer == nil {
		return
	}

	event := &models.ApprovalDecidedEvent{
		BaseEvent:    newBaseEvent(models.EventTypeApprovalDecided),
		Subject:      subject,
		SubjectID:    subjectID,
		ExhibitionID: exhibitionID,
		SupplierID:   supplierID,
		Decision:     decision,
	}

	key := fmt.Sprintf("%s-%s", subject, subjectID)
	if err := ep.producer.PublishEvent(ctx, key, event); err != nil {
		ep.logger.Warn("Failed to publish ApprovalDecided event",
			zap.String("subject", subject),
			zap.String("subject_id", subjectID),
			zap.Error(err))
	}
}
