// Package ecocash is a client for the EcoCash instant C2B payment API.
package ecocash

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidMSISDN is returned when a phone number cannot be normalised to 263XXXXXXXXX.
var ErrInvalidMSISDN = errors.New("invalid EcoCash MSISDN")

var (
	msisdnPattern = regexp.MustCompile(`^263[0-9]{9}$`)
	phoneNoise    = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")
)

// FormatMSISDN normalises a Zimbabwean mobile number to the 263 international
// form: "+263..." loses the plus, a leading 0 becomes 263, and a bare nine
// digit subscriber number gains the prefix. Anything else is returned with
// separators removed but otherwise unchanged.
func FormatMSISDN(phone string) string {
	phone = phoneNoise.Replace(phone)
	switch {
	case strings.HasPrefix(phone, "+263"):
		return phone[1:]
	case strings.HasPrefix(phone, "263"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return "263" + phone[1:]
	case len(phone) == 9:
		return "263" + phone
	}
	return phone
}

// IsValidMSISDN reports whether phone normalises to 263 followed by nine digits.
func IsValidMSISDN(phone string) bool {
	return msisdnPattern.MatchString(FormatMSISDN(phone))
}
