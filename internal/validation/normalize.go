package validation

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`[^0-9]`)

// Digits strips everything but 0-9.
func Digits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// CleanSpaces collapses runs of whitespace and trims.
func CleanSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSSN renders nine digits as XXX-XX-XXXX. Input that does not
// hold nine digits is returned unchanged for the ssn rule to reject.
func NormalizeSSN(s string) string {
	d := Digits(s)
	if len(d) != 9 {
		return s
	}
	return d[:3] + "-" + d[3:5] + "-" + d[5:]
}

// NormalizeFEIN renders nine digits as XX-XXXXXXX.
func NormalizeFEIN(s string) string {
	d := Digits(s)
	if len(d) != 9 {
		return s
	}
	return d[:2] + "-" + d[2:]
}

// NormalizeUSPhone renders a 10 digit number, optionally prefixed by 1,
// as (XXX) XXX-XXXX.
func NormalizeUSPhone(s string) string {
	d := Digits(s)
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return s
	}
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}

// NormalizeE164 renders 10 to 15 digits as +<digits>, assuming a US
// number when exactly ten digits are given.
func NormalizeE164(s string) string {
	d := Digits(s)
	switch {
	case len(d) == 10:
		return "+1" + d
	case len(d) >= 11 && len(d) <= 15:
		return "+" + d
	default:
		return s
	}
}

// NormalizeZip keeps 5 digits or renders 9 as XXXXX-XXXX.
func NormalizeZip(s string) string {
	d := Digits(s)
	switch len(d) {
	case 5:
		return d
	case 9:
		return d[:5] + "-" + d[5:]
	default:
		return s
	}
}

func NormalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
