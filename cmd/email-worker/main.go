package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marquee-live/storefront/internal/adapters/rabbit"
	"github.com/marquee-live/storefront/internal/config"
	"github.com/marquee-live/storefront/internal/domain"
	"github.com/marquee-live/storefront/internal/email"
	"github.com/marquee-live/storefront/internal/observability"
	"github.com/marquee-live/storefront/internal/pricing"
)

const confirmationQueue = "storefront.confirmation-emails"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()

	consumer, err := rabbit.NewConsumer(conn, confirmationQueue, "order.confirmed")
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}

	var dispatcher email.Dispatcher
	if cfg.EmailMode == "smtp" {
		dispatcher = email.NewSMTPDispatcher(email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.FromEmail,
		}, logger)
	} else {
		dispatcher = email.NewSimulatedDispatcher(logger)
	}

	worker := NewEmailWorker(consumer, dispatcher, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := worker.Run(ctx); err != nil {
			log.Fatalf("email worker stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutdown email worker")
}

type EmailWorker struct {
	consumer   *rabbit.Consumer
	dispatcher email.Dispatcher
	logger     observability.Logger
}

func NewEmailWorker(consumer *rabbit.Consumer, dispatcher email.Dispatcher, logger observability.Logger) *EmailWorker {
	return &EmailWorker{consumer: consumer, dispatcher: dispatcher, logger: logger}
}

func (w *EmailWorker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Consume(ctx)
	if err != nil {
		return err
	}
	w.logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *EmailWorker) handle(ctx context.Context, d amqp.Delivery) {
	var event domain.OrderConfirmed
	if err := json.Unmarshal(d.Body, &event); err != nil {
		// A malformed event will never parse; requeueing it would loop forever.
		w.logger.Error("failed to decode confirmation event", err)
		d.Nack(false, false)
		return
	}

	if err := w.sendWithRetry(ctx, event); err != nil {
		w.logger.WithField("order_id", event.OrderID.String()).Error("failed to send confirmation after retries", err)
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

func (w *EmailWorker) sendWithRetry(ctx context.Context, event domain.OrderConfirmed) error {
	maxRetries := 3
	payload := buildPayload(event)

	for i := 0; i < maxRetries; i++ {
		_, err := w.dispatcher.Send(payload)
		if err == nil {
			return nil
		}
		backoff := time.Duration(1<<i) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d retries", maxRetries)
}

// buildPayload re-derives the amounts from the raw pricing inputs carried by
// the event, so the mail always agrees with the confirmation the customer saw
// at checkout.
func buildPayload(event domain.OrderConfirmed) email.Payload {
	totals := pricing.ComputeConfirmationTotals(event.Items, event.Discount, event.TaxRate, event.ShippingFee)

	var summary strings.Builder
	for _, item := range event.Items {
		fmt.Fprintf(&summary, "%d x %s (%s)\n", item.Quantity, item.Description, pricing.FormatPrice(item.UnitPrice))
	}

	delivery := ""
	switch event.Delivery {
	case domain.DeliveryShip:
		delivery = "Your order ships to: " + event.Address
	case domain.DeliveryPickup:
		delivery = "Your order will be ready for pickup at the venue."
	}

	return email.Payload{
		OrderID:      event.OrderID.String(),
		Recipient:    event.RecipientEmail,
		Subtotal:     pricing.FormatPrice(totals.Subtotal),
		Discount:     pricing.FormatPrice(totals.Discount),
		Tax:          pricing.FormatPrice(totals.Tax),
		Shipping:     pricing.FormatPrice(totals.Shipping),
		Total:        pricing.FormatPrice(totals.Total),
		ItemSummary:  strings.TrimRight(summary.String(), "\n"),
		DeliveryInfo: delivery,
	}
}
