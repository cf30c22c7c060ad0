// Package email dispatches order-confirmation mail. The payload is flat on
// purpose: every amount arrives as an already-formatted decimal string so the
// mailer never does arithmetic of its own.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/marquee-live/storefront/internal/observability"
)

type Status string

const (
	StatusSent      Status = "sent"
	StatusSimulated Status = "simulated"
	StatusError     Status = "error"
)

// Payload carries everything the confirmation template needs.
type Payload struct {
	OrderID      string
	Recipient    string
	Subtotal     string
	Discount     string
	Tax          string
	Shipping     string
	Total        string
	ItemSummary  string
	DeliveryInfo string
}

type Dispatcher interface {
	Send(p Payload) (Status, error)
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

type smtpDispatcher struct {
	cfg    SMTPConfig
	logger observability.Logger
}

func NewSMTPDispatcher(cfg SMTPConfig, logger observability.Logger) Dispatcher {
	return &smtpDispatcher{cfg: cfg, logger: logger}
}

func (d *smtpDispatcher) Send(p Payload) (Status, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", d.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", p.Recipient)
	fmt.Fprintf(&b, "Subject: Order Confirmation %s\r\n\r\n", p.OrderID)
	fmt.Fprintf(&b, "Thanks for your order!\n\n")
	fmt.Fprintf(&b, "Order: %s\n%s\n\n", p.OrderID, p.ItemSummary)
	fmt.Fprintf(&b, "Subtotal: %s\n", p.Subtotal)
	if p.Discount != "" && p.Discount != "$0.00" {
		fmt.Fprintf(&b, "Discount: -%s\n", p.Discount)
	}
	fmt.Fprintf(&b, "Tax & service: %s\n", p.Tax)
	if p.Shipping != "" && p.Shipping != "$0.00" {
		fmt.Fprintf(&b, "Shipping: %s\n", p.Shipping)
	}
	fmt.Fprintf(&b, "Total: %s\n\n%s\n", p.Total, p.DeliveryInfo)

	auth := smtp.PlainAuth("", d.cfg.User, d.cfg.Pass, d.cfg.Host)
	addr := d.cfg.Host + ":" + d.cfg.Port
	if err := smtp.SendMail(addr, auth, d.cfg.From, []string{p.Recipient}, []byte(b.String())); err != nil {
		observability.EmailsDispatched.WithLabelValues(string(StatusError)).Inc()
		return StatusError, err
	}

	observability.EmailsDispatched.WithLabelValues(string(StatusSent)).Inc()
	return StatusSent, nil
}

// simulatedDispatcher logs instead of sending. Default in development and
// tests.
type simulatedDispatcher struct {
	logger observability.Logger
}

func NewSimulatedDispatcher(logger observability.Logger) Dispatcher {
	return &simulatedDispatcher{logger: logger}
}

func (d *simulatedDispatcher) Send(p Payload) (Status, error) {
	d.logger.WithField("order_id", p.OrderID).
		WithField("recipient", p.Recipient).
		WithField("total", p.Total).
		Info("simulated confirmation email")
	observability.EmailsDispatched.WithLabelValues(string(StatusSimulated)).Inc()
	return StatusSimulated, nil
}
