package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marquee-live/storefront/internal/domain"
)

// SubmitOrder commits a checkout atomically: customer upsert, order plus
// items, inventory decrements and the order.confirmed outbox record all land
// in one SERIALIZABLE transaction, so a failure anywhere leaves no partial
// order behind.
func (r *Repository) SubmitOrder(ctx context.Context, customer domain.Customer, order *domain.Order, decrements []domain.StockDecrement, event domain.OrderConfirmed) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		customerID, err := r.UpsertCustomer(ctx, tx, customer)
		if err != nil {
			return err
		}
		order.CustomerID = customerID

		if err := r.CreateOrder(ctx, tx, *order); err != nil {
			return err
		}

		for _, dec := range decrements {
			if dec.Variant {
				err = r.DecrementVariantStock(ctx, tx, dec.ID, dec.Quantity)
			} else {
				err = r.DecrementTierStock(ctx, tx, dec.ID, dec.Quantity)
			}
			if err != nil {
				return err
			}
		}

		event.OrderID = order.ID
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return r.InsertOutbox(ctx, tx, OutboxRecord{
			ID:            uuid.New(),
			AggregateType: "order",
			AggregateID:   order.ID,
			EventType:     "order.confirmed",
			Payload:       payload,
			DedupeKey:     uuid.New().String(),
		})
	})
}
