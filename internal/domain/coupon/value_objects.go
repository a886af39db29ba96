package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode  = errors.New("invalid coupon code format")
	ErrInvalidCouponType  = errors.New("invalid coupon type")
	ErrInvalidCouponValue = errors.New("coupon value must be positive")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Code is a store-scoped promotional code, normalized to upper case.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

// NormalizeCode uppercases without format validation, for lookups against
// stored codes.
func NormalizeCode(code string) string {
	return strings.TrimSpace(strings.ToUpper(code))
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	TypePercent Type = "percent"
	TypeFixed   Type = "fixed"
	TypeBOGO    Type = "bogo"
	TypeTiered  Type = "tiered"
)

func (t Type) IsValid() bool {
	switch t {
	case TypePercent, TypeFixed, TypeBOGO, TypeTiered:
		return true
	}
	return false
}

// Conditions are the optional usage gates attached to a coupon. Zero/nil
// means unbounded.
type Conditions struct {
	MinOrder          *float64
	ProductSKUs       []string
	UsageLimitPerUser *int
	MaxRedemptions    *int
}
