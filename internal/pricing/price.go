// Package pricing holds the order-pricing core: tier selection, price
// normalization and order-total arithmetic. Everything here is pure and
// synchronous; persistence, email and presentation are collaborators of
// the callers, not of this package.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParsePrice canonicalizes a price of unknown representation into a float.
// Numeric values pass through; strings are stripped of everything but
// digits, periods and minus signs before parsing ("$59" -> 59,
// "1,200.50" -> 1200.5).
//
// Anything that does not yield a finite number becomes 0. That is a
// deliberate silent-fallback policy: downstream arithmetic must never leak
// NaN into a displayed amount. Use ParsePriceStrict where a bad price
// should be a validation error instead.
func ParsePrice(v any) float64 {
	p, err := ParsePriceStrict(v)
	if err != nil {
		return 0
	}
	return p
}

// ParsePriceStrict parses like ParsePrice but reports failures instead of
// swallowing them.
func ParsePriceStrict(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, n)
		p, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "unparseable price %q", n)
		}
		return finite(p)
	case nil:
		return 0, errors.New("nil price")
	default:
		return 0, errors.Newf("unsupported price type %T", v)
	}
}

func finite(p float64) (float64, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, errors.Newf("non-finite price %v", p)
	}
	return p, nil
}

// orZero coerces NaN operands to 0 so a single bad input cannot poison a
// whole total.
func orZero(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return p
}
