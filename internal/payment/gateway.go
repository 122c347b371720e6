package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/atikur-24/daily-fit-server/internal/config"
)

// ErrGateway wraps every failure talking to the payment provider
var ErrGateway = errors.New("payment gateway error")

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Gateway creates payment intents with an external provider
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string) (*PaymentIntent, error)
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeGateway talks to the Stripe REST API. No retries: a failed intent is reported to the client.
type StripeGateway struct {
	client *resty.Client
}

func NewStripeGateway(cfg config.PaymentConfig) *StripeGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(timeout).
		SetBasicAuth(cfg.SecretKey, "").
		SetHeader("Accept", "application/json")

	return &StripeGateway{client: client}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string) (*PaymentIntent, error) {
	var intent PaymentIntent
	var apiErr stripeError

	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"amount":                 strconv.FormatInt(amountMinor, 10),
			"currency":               currency,
			"payment_method_types[]": "card",
		}).
		SetResult(&intent).
		SetError(&apiErr).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("%w: %s", ErrGateway, msg)
	}

	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: response carried no client secret", ErrGateway)
	}

	return &intent, nil
}
