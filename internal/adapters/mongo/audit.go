package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marquee-live/storefront/internal/domain"
	"github.com/marquee-live/storefront/internal/observability"
)

// AuditLogger records back-office mutations and confirmed orders. Audit
// entries are advisory; a failed insert is logged and swallowed so it never
// blocks the write it describes.
type AuditLogger struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewAuditLogger(db *mongo.Database, logger observability.Logger) *AuditLogger {
	return &AuditLogger{
		coll:   db.Collection("audit_logs"),
		logger: logger,
	}
}

type AuditLog struct {
	ID        uuid.UUID `bson:"_id"`
	Action    string    `bson:"action"`
	ActorID   uuid.UUID `bson:"actor_id"`
	Timestamp time.Time `bson:"timestamp"`
	Data      bson.M    `bson:"data"`
}

func (a *AuditLogger) LogEvent(ctx context.Context, action string, actorID uuid.UUID, data map[string]interface{}) error {
	log := AuditLog{
		ID:        uuid.New(),
		Action:    action,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Data:      bson.M(data),
	}
	_, err := a.coll.InsertOne(ctx, log)
	if err != nil {
		a.logger.Error("failed to insert audit log", err)
		return err
	}
	return nil
}

func (a *AuditLogger) LogOrder(ctx context.Context, order domain.Order) error {
	data := map[string]interface{}{
		"order_id": order.ID,
		"kind":     order.Kind,
		"status":   order.Status,
		"total":    order.TotalAmount,
		"discount": order.Discount,
		"coupon":   order.CouponCode,
	}
	return a.LogEvent(ctx, "order.created", order.CustomerID, data)
}

func (a *AuditLogger) LogAdminAction(ctx context.Context, action, table string, recordID uuid.UUID) error {
	data := map[string]interface{}{
		"table":     table,
		"record_id": recordID,
	}
	return a.LogEvent(ctx, action, uuid.Nil, data)
}
