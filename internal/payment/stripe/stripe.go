// Package stripe hands completed checkout sessions over to Stripe
// Checkout. Without a secret key the processor runs in demo mode and
// redirects straight to the configured success page.
package stripe

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

const paymentCurrency = "eur"

type Config struct {
	SecretKey string `mapstructure:"secret_key"`
	// PriceIDs maps plan names to Stripe price ids. Plans without a
	// price id fall back to inline price data from the plan catalog.
	PriceIDs   map[string]string `mapstructure:"price_ids"`
	SuccessURL string            `mapstructure:"success_url"`
	CancelURL  string            `mapstructure:"cancel_url"`
}

type Processor struct {
	c    *Config
	demo bool
}

func New(c *Config) (dependency.PaymentProcessor, error) {
	if c.SuccessURL == "" || c.CancelURL == "" {
		return nil, fmt.Errorf("success and cancel urls must be set")
	}

	demo := c.SecretKey == ""
	if !demo {
		stripe.Key = c.SecretKey
	}

	return &Processor{
		c:    c,
		demo: demo,
	}, nil
}

func (p *Processor) IsDemo() bool {
	return p.demo
}

// CreateCheckoutSession creates a Stripe Checkout session for the plan
// and returns the hosted payment page url. The checkout session id
// travels as the client reference so the return page can resolve it.
func (p *Processor) CreateCheckoutSession(ctx context.Context, cs *entity.CheckoutSession) (string, error) {
	if p.demo {
		return demoRedirectURL(p.c.SuccessURL, cs.SessionID), nil
	}

	plan, ok := entity.PlanCatalog[cs.SelectedPlan]
	if !ok {
		return "", fmt.Errorf("unknown plan %q", cs.SelectedPlan)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(checkoutMode(plan.Name)),
		SuccessURL:        stripe.String(p.c.SuccessURL),
		CancelURL:         stripe.String(p.c.CancelURL),
		CustomerEmail:     stripe.String(cs.Email.String),
		ClientReferenceID: stripe.String(cs.SessionID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			p.lineItem(plan),
		},
		Metadata: map[string]string{
			"checkout_session_id": cs.SessionID,
			"selected_plan":       plan.Name.String(),
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe checkout session: %w", err)
	}
	return s.URL, nil
}

func (p *Processor) lineItem(plan entity.Plan) *stripe.CheckoutSessionLineItemParams {
	item := &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(1),
	}

	if priceID, ok := p.c.PriceIDs[plan.Name.String()]; ok && priceID != "" {
		item.Price = stripe.String(priceID)
		return item
	}

	amountCents := plan.MonthlyPrice.Mul(decimal.NewFromInt(100)).IntPart()
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(paymentCurrency),
		UnitAmount: stripe.Int64(amountCents),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(fmt.Sprintf("Horoskooppi %s plan", plan.Name)),
		},
	}
	if plan.Name != entity.PlanLifetime {
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String("month"),
		}
	}
	item.PriceData = priceData
	return item
}

// checkoutMode returns the Stripe mode for the plan. The lifetime plan
// is a one time payment, everything else is a subscription.
func checkoutMode(plan entity.PlanName) string {
	if plan == entity.PlanLifetime {
		return string(stripe.CheckoutSessionModePayment)
	}
	return string(stripe.CheckoutSessionModeSubscription)
}

func demoRedirectURL(successURL, sessionID string) string {
	v := url.Values{}
	v.Set("session_id", sessionID)
	v.Set("demo", "true")
	sep := "?"
	if u, err := url.Parse(successURL); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return successURL + sep + v.Encode()
}
