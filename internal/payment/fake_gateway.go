package payment

import (
	"context"
	"fmt"
	"sync"
)

// FakeGateway records requested amounts and returns a deterministic intent
type FakeGateway struct {
	mu       sync.Mutex
	Requests []int64
	Err      error
}

func (f *FakeGateway) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string) (*PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Requests = append(f.Requests, amountMinor)
	id := fmt.Sprintf("pi_fake_%d", len(f.Requests))
	return &PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       amountMinor,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}
