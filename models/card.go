package models

import (
	"fmt"
	"strings"
)

// CreditCard is the card value object supplied by the caller.
// Number may contain spaces or dashes; it is normalized before use.
type CreditCard struct {
	FirstName         string
	LastName          string
	Number            string
	Month             int
	Year              int
	VerificationValue string
	Brand             string
}

// brandCodes maps a card brand to the processor's fixed card type code.
var brandCodes = map[string]string{
	"visa":             "001",
	"master":           "002",
	"american_express": "003",
	"discover":         "004",
}

// BrandCode returns the processor code for the card brand.
// An unrecognized brand is a configuration-level error; no request may be
// built from such a card.
func (c CreditCard) BrandCode() (string, error) {
	code, ok := brandCodes[strings.ToLower(c.Brand)]
	if !ok {
		return "", fmt.Errorf("unrecognized card brand: %q", c.Brand)
	}
	return code, nil
}

// ExpirationMonth returns the month zero-padded to two digits.
func (c CreditCard) ExpirationMonth() string {
	return fmt.Sprintf("%02d", c.Month)
}

// ExpirationYear returns the year padded to four digits.
func (c CreditCard) ExpirationYear() string {
	return fmt.Sprintf("%04d", c.Year)
}

// NormalizedNumber strips spaces, tabs and dashes from the card number.
func (c CreditCard) NormalizedNumber() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(c.Number))
}

// ValidNumber reports whether the normalized number is 13..19 digits with a
// valid Luhn check digit.
func (c CreditCard) ValidNumber() bool {
	pan := c.NormalizedNumber()
	if l := len(pan); l < 13 || l > 19 {
		return false
	}
	if !isDigits(pan) {
		return false
	}
	return luhnCheckDigit(pan[:len(pan)-1]) == pan[len(pan)-1]
}

// MaskedNumber returns the number safe for logging: first six and last four
// digits kept, the rest replaced with '*'.
func (c CreditCard) MaskedNumber() string {
	pan := c.NormalizedNumber()
	n := len(pan)
	if n == 0 {
		return ""
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	if n < 10 {
		return strings.Repeat("*", n-4) + pan[n-4:]
	}
	return pan[:6] + strings.Repeat("*", n-10) + pan[n-4:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func luhnCheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return byte('0' + (10-sum%10)%10)
}
