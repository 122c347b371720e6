package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/atikur-24/daily-fit-server/internal/events"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/payment"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

const paymentHistoryLimit = 500

type checkoutService struct {
	repo      repositories.Repository
	gateway   payment.Gateway
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	currency  string
	now       func() time.Time
}

func NewCheckoutService(repo repositories.Repository, gateway payment.Gateway, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, currency string) CheckoutService {
	if currency == "" {
		currency = "usd"
	}
	return &checkoutService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		currency:  currency,
		now:       time.Now,
	}
}

// CreatePaymentIntent trusts the client-supplied price; it does not check it against any cart
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	amount, verrs := s.validator.GetBusinessValidator().ValidateMinorUnits(req.Price)
	if len(verrs) > 0 {
		return nil, verrs
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		s.logger.Error("Payment intent failed", "amount", amount, "error", err)
		return nil, err
	}

	s.logger.Info("Payment intent created", "intent_id", intent.ID, "amount", amount)
	return &models.PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// RecordPayment does not clear the cart, touch class capacity or confirm the intent with the gateway
func (s *checkoutService) RecordPayment(ctx context.Context, requesterEmail string, payload []byte) (*models.WriteResult, error) {
	fields, err := decodePaymentPayload(payload)
	if err != nil {
		return nil, err
	}

	record, err := buildPaymentRecord(fields, payload, requesterEmail, s.now)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.Payment().Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded", "payment_id", record.ID, "email", record.Email, "amount", record.Amount.String())
	publish(ctx, s.publisher, s.logger, events.EventPaymentRecorded, map[string]interface{}{
		"payment_id":     record.ID,
		"email":          record.Email,
		"amount":         record.Amount.String(),
		"transaction_id": record.TransactionID,
		"class_refs":     []string(record.ClassRefs),
	})

	return result, nil
}

func (s *checkoutService) ListPayments(ctx context.Context, requesterEmail, email string) ([]*models.PaymentRecord, error) {
	if email == "" {
		email = requesterEmail
	}
	if email != requesterEmail {
		return nil, NewPermissionError(requesterEmail, "payments", "read", "history belongs to another user")
	}
	return s.repo.Payment().List(ctx, repositories.PaymentFilters{Email: &email, Limit: paymentHistoryLimit})
}

func decodePaymentPayload(payload []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	invalid := ValidationErrors{{Field: "payment", Message: "must be a JSON object", Rule: "json"}}

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, invalid
	}
	// exactly one value; anything after it is malformed input
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalid
	}
	return fields, nil
}

func buildPaymentRecord(fields map[string]interface{}, payload []byte, requesterEmail string, now func() time.Time) (*models.PaymentRecord, error) {
	email := firstString(fields, "email", "studentEmail")
	if email == "" {
		email = requesterEmail
	}
	if email != requesterEmail {
		return nil, NewPermissionError(requesterEmail, "payment", "record", "payment belongs to another user")
	}

	amount, err := firstDecimal(fields, "amount", "price")
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, ValidationErrors{{Field: "amount", Message: "must not be negative", Value: amount.String(), Rule: "non_negative_price"}}
	}

	date := now().UTC()
	if raw := firstString(fields, "date"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			date = parsed.UTC()
		}
	}

	return &models.PaymentRecord{
		Email:         email,
		Amount:        amount,
		ClassRefs:     datatypes.JSONSlice[string](classRefs(fields)),
		TransactionID: firstString(fields, "transactionId", "transaction_id"),
		Date:          date,
		Payload:       datatypes.JSON(payload),
	}, nil
}

func firstString(fields map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := fields[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func firstDecimal(fields map[string]interface{}, keys ...string) (decimal.Decimal, error) {
	for _, k := range keys {
		var raw string
		switch v := fields[k].(type) {
		case json.Number:
			raw = v.String()
		case string:
			raw = v
		default:
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, ValidationErrors{{Field: k, Message: "must be a number", Value: raw, Rule: "numeric"}}
		}
		return d, nil
	}
	return decimal.Zero, nil
}

// classRefs accepts a single classRef or any of the list fields clients send
func classRefs(fields map[string]interface{}) []string {
	refs := []string{}
	if ref := firstString(fields, "classRef", "classId"); ref != "" {
		refs = append(refs, ref)
	}
	for _, k := range []string{"classRefs", "classItems", "classIds"} {
		list, ok := fields[k].([]interface{})
		if !ok {
			continue
		}
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				refs = append(refs, s)
			}
		}
	}
	return refs
}
