// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/openshelf/storefront-backend/internal/config"
	"github.com/openshelf/storefront-backend/internal/models"
)

var ErrPaymentNotConfigured = errors.New("payment provider is not configured")

// PaymentService fronts Stripe for order payments. One payment intent per
// pending order; the webhook settles the order when the intent succeeds.
type PaymentService struct {
	cfg          *config.Config
	orderService *OrderService
}

type PaymentIntentResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	ClientSecret   string    `json:"client_secret"`
	PublishableKey string    `json:"publishable_key"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
}

func NewPaymentService(cfg *config.Config, orderService *OrderService) *PaymentService {
	if cfg.Payment.StripeSecretKey != "" {
		stripe.Key = cfg.Payment.StripeSecretKey
	}
	return &PaymentService{cfg: cfg, orderService: orderService}
}

func (s *PaymentService) Enabled() bool {
	return s.cfg.Payment.StripeSecretKey != ""
}

// CreateIntent opens a Stripe payment intent for a pending order, carrying
// the order id in metadata so the webhook can settle it.
func (s *PaymentService) CreateIntent(orderID, userID uuid.UUID, isAdmin bool) (*PaymentIntentResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentNotConfigured
	}

	order, err := s.orderService.GetByID(orderID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	amount := int64(math.Round(order.TotalAmount * 100))
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(s.cfg.Payment.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("order_number", order.OrderNumber)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		OrderID:        order.ID,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.cfg.Payment.StripePublishableKey,
		Amount:         amount,
		Currency:       s.cfg.Payment.Currency,
	}, nil
}

// Confirm is the client-driven settlement path: the storefront reports the
// intent id after Stripe.js confirmation, and the intent's actual status is
// re-checked against Stripe before the order is marked paid.
func (s *PaymentService) Confirm(orderID, userID uuid.UUID, isAdmin bool, intentID string) (*models.Order, error) {
	if !s.Enabled() {
		return nil, ErrPaymentNotConfigured
	}

	order, err := s.orderService.GetByID(orderID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	intent, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if intent.Metadata["order_id"] != order.ID.String() {
		return nil, errors.New("payment intent does not belong to this order")
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment intent is %s, not succeeded", intent.Status)
	}

	return s.orderService.MarkPaid(order.ID, intent.ID)
}

// Refund refunds a paid order through Stripe and restores its stock.
func (s *PaymentService) Refund(orderID uuid.UUID) (*models.Order, error) {
	if !s.Enabled() {
		return nil, ErrPaymentNotConfigured
	}

	order, err := s.orderService.GetByID(orderID, uuid.Nil, true)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, errors.New("only paid orders can be refunded")
	}

	if _, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(order.PaymentReference),
	}); err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return s.orderService.Refund(order.ID)
}

// HandleWebhook verifies a Stripe event signature and settles the matching
// order on payment_intent.succeeded. Unknown event types are acknowledged
// and ignored.
func (s *PaymentService) HandleWebhook(payload []byte, signature string) error {
	if !s.Enabled() {
		return ErrPaymentNotConfigured
	}

	event, err := webhook.ConstructEvent(payload, signature, s.cfg.Payment.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "payment_intent.succeeded" {
		logrus.WithField("event_type", event.Type).Debug("Ignoring Stripe event")
		return nil
	}

	intentID, _ := event.Data.Object["id"].(string)
	metadata, _ := event.Data.Object["metadata"].(map[string]interface{})
	orderIDStr, _ := metadata["order_id"].(string)

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return fmt.Errorf("event %s carries no valid order id: %w", event.ID, err)
	}

	if _, err := s.orderService.MarkPaid(orderID, intentID); err != nil {
		if errors.Is(err, ErrOrderNotPending) {
			// Stripe retries webhooks; a settled order is not an error
			logrus.WithField("order_id", orderID).Info("Webhook for already settled order")
			return nil
		}
		return err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":       orderID,
		"payment_intent": intentID,
	}).Info("Order paid")
	return nil
}
