package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/atikur-24/daily-fit-server/internal/models"
)

// BusinessValidator holds domain rules that are not plain field tags
type BusinessValidator struct {
	validate *validator.Validate
}

func newBusinessValidator(validate *validator.Validate) *BusinessValidator {
	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})

	// Decimal fields arrive here as float64 through the custom type func
	bv.validate.RegisterValidation("positive_price", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() > 0
	})

	bv.validate.RegisterValidation("non_negative_price", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() >= 0
	})
}

// ValidateMinorUnits checks that a price converts to a positive whole number of cents
func (bv *BusinessValidator) ValidateMinorUnits(price decimal.Decimal) (int64, ValidationErrors) {
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return 0, ValidationErrors{{
			Field:   "price",
			Message: "must convert to a positive amount in minor units",
			Value:   price.String(),
			Rule:    "positive_price",
		}}
	}
	return amount, nil
}

// ToMinorUnits multiplies by 100 and truncates toward zero
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).IntPart()
}
