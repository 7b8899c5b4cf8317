package player

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CreditScale is the number of Credits units in one credit.
const CreditScale = 100

var ErrInvalidCredits = errors.New("invalid credit amount")

// Credits is a credit amount in hundredths of a credit. Sums are exact.
type Credits int64

// ParseCredits parses decimal text such as "8.5", "10" or "7.25" without float conversion.
func ParseCredits(raw string) (Credits, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidCredits)
	}

	negative := false
	switch value[0] {
	case '-':
		negative = true
		value = value[1:]
	case '+':
		value = value[1:]
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCredits, raw)
	}
	if hasFrac {
		frac = strings.TrimRight(frac, "0")
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than 2 decimal places", ErrInvalidCredits, raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCredits, raw)
	}

	wholeUnits, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCredits, raw)
	}
	fracUnits, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCredits, raw)
	}
	if wholeUnits > math.MaxInt64/CreditScale-1 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidCredits, raw)
	}

	units := wholeUnits*CreditScale + fracUnits
	if negative {
		units = -units
	}
	return Credits(units), nil
}

// Float64 is for presentation only; never sum the result.
func (c Credits) Float64() float64 {
	return float64(c) / CreditScale
}

func (c Credits) String() string {
	units := int64(c)
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	whole := units / CreditScale
	frac := units % CreditScale
	if frac == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	text := fmt.Sprintf("%s%d.%02d", sign, whole, frac)
	return strings.TrimRight(text, "0")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SumCredits adds credit amounts exactly.
func SumCredits(values ...Credits) Credits {
	var total Credits
	for _, v := range values {
		total += v
	}
	return total
}
