package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/Edu92337/quizmaster-backend/internal/config"
)

// Gateway операции, которые сервис инициирует у платежного провайдера.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, userUID string) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID, userUID string) (string, error)
}

// StripeGateway реализация Gateway поверх API Stripe.
type StripeGateway struct {
	api *client.API
	cfg config.Stripe
}

// NewStripeGateway создает клиента Stripe. backends nil означает стандартные адреса API.
func NewStripeGateway(cfg config.Stripe, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{
		api: client.New(cfg.SecretKey, backends),
		cfg: cfg,
	}
}

// CreateCustomer создает клиента и возвращает его идентификатор.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email, userUID string) (string, error) {
	const op = "billing.CreateCustomer"

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata("user_uid", userUID)

	cust, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession создает сессию оформления ежемесячной подписки и возвращает ее URL.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, customerID, userUID string) (string, error) {
	const op = "billing.CreateCheckoutSession"

	frontendURL := strings.TrimRight(g.cfg.FrontendURL, "/")
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		ClientReferenceID:  stripe.String(userUID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(g.cfg.ProductName),
					},
					UnitAmount: stripe.Int64(g.cfg.UnitAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(g.cfg.Interval),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(frontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(frontendURL + "/cancel"),
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.URL, nil
}
