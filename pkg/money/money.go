package money

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds a value to 2 decimal places, half up. All billing math in this
// system rounds quantities and rates before multiplying and rounds the product
// again; QuickBooks recomputes line amounts from QNTY and PRICE, so the ordering
// is part of the interchange contract.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format renders a value with exactly two decimal digits, the only numeric
// format the interchange file accepts.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseCurrency parses a currency-like value tolerating a leading dollar sign,
// thousands separators and surrounding whitespace. It returns nil when the value
// is empty, unparseable, or parses to exactly zero.
//
// KNOWN AMBIGUITY: a confirmed $0.00 rate is indistinguishable from "field not
// set", so a legitimately free rate can never be billed. The upstream system has
// always behaved this way and the accounting workflow depends on zero meaning
// "fall through to the next pricing source". Do not change without sign-off.
func ParseCurrency(raw string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\t':
			return -1
		}
		return r
	}, raw)

	if cleaned == "" {
		return nil
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

// ParseCurrencyValue is ParseCurrency for callers that want a plain float64,
// with absent mapping to 0.
func ParseCurrencyValue(raw string) float64 {
	if v := ParseCurrency(raw); v != nil {
		return *v
	}
	return 0
}
