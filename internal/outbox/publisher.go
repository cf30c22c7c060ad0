package outbox

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marquee-live/storefront/internal/adapters/postgres"
	"github.com/marquee-live/storefront/internal/adapters/rabbit"
	"github.com/marquee-live/storefront/internal/observability"
)

// Publisher drains the outbox table into the events exchange. Records stay
// NEW until the broker accepts them, so a crash between commit and publish
// only delays the confirmation email, never loses it.
type Publisher struct {
	repo      *postgres.Repository
	rabbitPub *rabbit.Publisher
	logger    observability.Logger
}

func NewPublisher(repo *postgres.Repository, rabbitPub *rabbit.Publisher, logger observability.Logger) *Publisher {
	return &Publisher{repo: repo, rabbitPub: rabbitPub, logger: logger}
}

func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			records, err := p.repo.GetUnpublishedOutbox(ctx, 10)
			if err != nil {
				p.logger.Error("failed to fetch outbox records: ", err)
				continue
			}
			for _, rec := range records {
				msg := amqp.Publishing{
					MessageId:   rec.DedupeKey,
					ContentType: "application/json",
					Body:        rec.Payload,
				}
				if err := p.rabbitPub.Publish(ctx, rec.EventType, msg); err != nil {
					p.logger.WithField("outbox_id", rec.ID.String()).Error("publish failed: ", err)
					continue
				}
				observability.OutboxLag.Set(time.Since(rec.CreatedAt).Seconds())
				if err := p.repo.MarkPublished(ctx, rec.ID, time.Now(), rec.DedupeKey); err != nil {
					p.logger.WithField("outbox_id", rec.ID.String()).Error("mark published failed: ", err)
				}
			}
		}
	}
}
