package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-record lookups
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
