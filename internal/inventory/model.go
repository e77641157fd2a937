package inventory

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrStoreUnavailable = errors.New("store unavailable")
)

const DefaultUser = "admin"

// Column limits. Quantities and reorder levels are INTEGER, prices NUMERIC(12,2).
const (
	MinQuantity = math.MinInt32
	MaxQuantity = math.MaxInt32
	PriceScale  = 2

	// maxExponent bounds |exponent| of accepted decimals so rescaling stays cheap.
	maxExponent = 18
)

var priceLimit = decimal.New(1, 10)

// BoundedExponent reports whether d can be rescaled or truncated without
// materialising a huge integer.
func BoundedExponent(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -maxExponent && exp <= maxExponent
}

// PriceFits reports whether d is stored in a price column without rounding
// or overflow.
func PriceFits(d decimal.Decimal) bool {
	if !BoundedExponent(d) {
		return false
	}
	return d.Equal(d.Truncate(PriceScale)) && d.Abs().LessThan(priceLimit)
}

type Product struct {
	ID           int64           `json:"id" db:"id" example:"1"`
	Name         string          `json:"name" db:"name" example:"Wireless Headphones"`
	Category     string          `json:"category" db:"category" example:"Electronics"`
	Price        decimal.Decimal `json:"price" db:"price" swaggertype:"number" example:"89.99"`
	Stock        int             `json:"stock" db:"stock" example:"45"`
	ReorderLevel int             `json:"reorder_level" db:"reorder_level" example:"10"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

type ProductInput struct {
	Name         string
	Category     string
	Price        decimal.Decimal
	Stock        int
	ReorderLevel int
}

// ProductPatch holds the attributes to change; nil fields are left as they are.
type ProductPatch struct {
	Name         *string
	Category     *string
	Price        *decimal.Decimal
	Stock        *int
	ReorderLevel *int
}

// ValidationError reports which input field failed. It unwraps to
// ErrMissingField or ErrInvalidFormat.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return "Missing required field: " + e.Field
	}
	return fmt.Sprintf("Invalid format for field: %s", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func MissingField(field string) error {
	return &ValidationError{Field: field, Err: ErrMissingField}
}

func InvalidFormat(field string) error {
	return &ValidationError{Field: field, Err: ErrInvalidFormat}
}

type Stats struct {
	TotalProducts int64 `json:"total_products" db:"total_products"`
	TotalUpdates  int64 `json:"total_updates" db:"total_updates"`
}
