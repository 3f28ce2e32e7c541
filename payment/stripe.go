package payment

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
	"summercamp-backend/log"
)

const Currency = "usd"

// MaxPrice is the largest charge Stripe accepts for usd, 99999999 cents.
const MaxPrice = 999999.99

// ValidPrice reports whether price can be charged. Prices above MaxPrice
// would be refused by Stripe and far larger ones overflow MinorUnits.
func ValidPrice(price float64) bool {
	return price > 0 && price <= MaxPrice
}

// MinorUnits converts a dollar price to cents. Callers check ValidPrice first.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

type Stripe struct {
	api *client.API
}

// NewStripe builds a card-payment client. backendURL overrides the Stripe API
// endpoint and is empty outside tests.
func NewStripe(secretKey, backendURL string) *Stripe {
	var backends *stripe.Backends
	if backendURL != "" {
		backends = &stripe.Backends{
			API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
				URL:               stripe.String(backendURL),
				MaxNetworkRetries: stripe.Int64(0),
				LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
			}),
		}
	}

	api := &client.API{}
	api.Init(secretKey, backends)

	return &Stripe{api: api}
}

// CreateIntent asks Stripe for a card-only payment intent and returns its client secret.
func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		log.Logger.Error("stripe failure", zap.Error(err), zap.Int64("amount", amount))
		return "", err
	}

	return pi.ClientSecret, nil
}
