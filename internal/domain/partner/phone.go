package partner

import "strings"

// MinComparablePhoneDigits is the minimum number of digits a phone number
// must have before it can be compared against registered clients. Shorter
// values are too ambiguous to match safely.
const MinComparablePhoneDigits = 8

// NormalizePhone strips every non-digit character from a phone number.
// "(27) 99999-1234" and "27 999991234" normalize to the same value.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
