// Package reminder composes debtor payment reminders as WhatsApp deep links.
package reminder

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
	"github.com/mulasense/finance-core/pkg/decimal"
)

const (
	whatsAppBase    = "https://wa.me/"
	fallbackPayment = "the provided number"
)

// ComposeMessage renders the reminder text for a debtor. userPhone is the
// EcoCash number the debtor should pay to; when empty a neutral phrase is used.
func ComposeMessage(d domain.Debtor, userPhone string) string {
	payTo := userPhone
	if payTo == "" {
		payTo = fallbackPayment
	}
	return fmt.Sprintf(
		"Hello %s, this is a friendly reminder from Mula Sense regarding your outstanding balance of $%s. The due date is %s. Please kindly make the payment via EcoCash to %s. Thank you!",
		d.Name,
		decimal.NewMoneyExact(d.AmountRemaining()).String(),
		dateutil.FormatShortDate(d.DueDate),
		payTo,
	)
}

// GenerateWhatsAppLink builds a wa.me link carrying the reminder text. The
// debtor's phone number is reduced to its digits; without one the link opens
// WhatsApp's contact chooser.
func GenerateWhatsAppLink(d domain.Debtor, userPhone string) string {
	text := EncodeURIComponent(ComposeMessage(d, userPhone))
	if digits := DigitsOnly(d.PhoneNumber); digits != "" {
		return whatsAppBase + digits + "?text=" + text
	}
	return whatsAppBase + "?text=" + text
}

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// uriUnreserved undoes the escapes url.QueryEscape applies to characters that
// browsers leave literal in a URI component.
var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20 and !'()* stay literal.
func EncodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}

// Build composes the full reminder for d as of now.
func Build(d domain.Debtor, userPhone string, now time.Time) domain.Reminder {
	return domain.Reminder{
		DebtorID:        d.ID,
		DebtorName:      d.Name,
		AmountRemaining: d.AmountRemaining(),
		DueDate:         d.DueDate,
		Overdue:         dateutil.DaysUntil(now, d.DueDate) < 0,
		Message:         ComposeMessage(d, userPhone),
		Link:            GenerateWhatsAppLink(d, userPhone),
	}
}
