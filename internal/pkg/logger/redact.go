package logger

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,2}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]\d{4}\b`)
)

// RedactEmail keeps the first two characters of the local part and the
// domain: "john.doe@example.com" becomes "jo***@example.com". Local parts
// of two characters or less are masked entirely.
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(local) <= 2 {
		return "***@" + domain
	}
	return local[:2] + "***@" + domain
}

// RedactPhone keeps only the last two digits.
func RedactPhone(phone string) string {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 2 {
		return "***"
	}
	tail := make([]byte, 0, 2)
	for i := len(phone) - 1; i >= 0 && len(tail) < 2; i-- {
		if phone[i] >= '0' && phone[i] <= '9' {
			tail = append([]byte{phone[i]}, tail...)
		}
	}
	return "***" + string(tail)
}

// Campaign names and audience descriptions are free text, so every value
// is scanned rather than only keys named like contact fields.
func redactPIIValue(key, val string) string {
	if strings.Contains(strings.ToLower(key), "email") {
		return RedactEmail(val)
	}
	val = emailPattern.ReplaceAllStringFunc(val, RedactEmail)
	return phonePattern.ReplaceAllStringFunc(val, RedactPhone)
}
