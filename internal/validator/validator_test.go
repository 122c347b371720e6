package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := New()

	t.Run("Should accept valid class submission", func(t *testing.T) {
		req := CreateClassRequest{Name: "Morning Yoga", AvailableSeats: 20, Price: decimal.RequireFromString("49.99")}
		assert.NoError(t, v.Validate(req))
	})

	t.Run("Should report json field names", func(t *testing.T) {
		req := CreateClassRequest{AvailableSeats: -1, Price: decimal.RequireFromString("-1")}
		err := v.Validate(req)
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok)
		fields := map[string]string{}
		for _, e := range verrs {
			fields[e.Field] = e.Rule
		}
		assert.Equal(t, "required", fields["name"])
		assert.Equal(t, "min", fields["availableSeats"])
		assert.Equal(t, "non_negative_price", fields["price"])
	})

	t.Run("Should reject non-positive intent price", func(t *testing.T) {
		for _, p := range []string{"0", "-3.50"} {
			err := v.Validate(PaymentIntentRequest{Price: decimal.RequireFromString(p)})
			assert.Error(t, err, p)
		}
		assert.NoError(t, v.Validate(PaymentIntentRequest{Price: decimal.RequireFromString("0.50")}))
	})

	t.Run("Should require email on registration", func(t *testing.T) {
		err := v.Validate(RegisterUserRequest{Name: "Ana"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"49.99", 4999},
		{"10", 1000},
		{"0.019", 1},
		{"12.345", 1234},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinorUnits(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestValidateMinorUnits(t *testing.T) {
	bv := New().GetBusinessValidator()

	amount, errs := bv.ValidateMinorUnits(decimal.RequireFromString("49.99"))
	assert.Empty(t, errs)
	assert.Equal(t, int64(4999), amount)

	_, errs = bv.ValidateMinorUnits(decimal.RequireFromString("0.004"))
	assert.Len(t, errs, 1)
}
