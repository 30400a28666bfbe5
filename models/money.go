package models

import (
	"fmt"
	"strings"
)

// Money is an amount in the currency's minor units (cents for USD).
// Amounts are kept integral end to end; the wire format never sees a float.
type Money struct {
	Amount   int64
	Currency string
}

// currencyExponents lists currencies whose minor unit is not 1/100.
// Everything absent defaults to two fractional digits.
var currencyExponents = map[string]int{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0,
	"KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0,
	"VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// CurrencyCode returns the uppercased ISO 4217 code.
func (m Money) CurrencyCode() string {
	return strings.ToUpper(m.Currency)
}

// Format renders the amount the way the processor expects it: a decimal
// string with exactly the currency's number of fractional digits, e.g.
// 1000 USD cents -> "10.00", 1000 JPY -> "1000", 1500 KWD mils -> "1.500".
func (m Money) Format() string {
	exp := 2
	if e, ok := currencyExponents[m.CurrencyCode()]; ok {
		exp = e
	}
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if exp == 0 {
		return fmt.Sprintf("%s%d", sign, amount)
	}
	div := int64(1)
	for i := 0; i < exp; i++ {
		div *= 10
	}
	return fmt.Sprintf("%s%d.%0*d", sign, amount/div, exp, amount%div)
}
