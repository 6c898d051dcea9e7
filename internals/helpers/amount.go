package helper

import (
	"math"
	"strconv"
	"strings"
)

// NotApplicable is the ledger marker for "no amount recorded".
const NotApplicable = "NA"

// Amount is a due field read from the ledger: either unset (empty, "NA",
// no leading number) or a decimal value. Trailing text after the number is
// ignored, so "500/-" reads as 500.
type Amount struct {
	value float64
	set   bool
}

func (a Amount) IsSet() bool { return a.set }

// Value returns the amount, zero when unset.
func (a Amount) Value() float64 {
	if !a.set {
		return 0
	}
	return a.value
}

// AmountOf parses a ledger amount string.
func AmountOf(raw string) Amount {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, NotApplicable) {
		return Amount{}
	}
	num := leadingNumber(s)
	if num == "" {
		return Amount{}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return Amount{value: f, set: true}
}

// leadingNumber returns the longest decimal prefix of s ("500/-" gives
// "500", "1250.00 Rs" gives "1250.00"), or "" when s does not start with one.
func leadingNumber(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > exp {
			end = j
		}
	}
	return s[:end]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseAmount returns the numeric value of a ledger amount, treating
// nil, empty, "NA" and garbage as 0.
func ParseAmount(raw *string) float64 {
	if raw == nil {
		return 0
	}
	return AmountOf(*raw).Value()
}

// FormatAmount renders an amount without trailing zeros ("500", "1250.5").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
