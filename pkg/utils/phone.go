package utils

import "strings"

// FormatWhatsappNumber normalizes a traveler's number into the gateway's
// expected "whatsapp:+<digits>" form. Already-prefixed numbers pass through.
func FormatWhatsappNumber(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	if !strings.HasPrefix(number, "+") {
		number = "+" + number
	}
	return "whatsapp:" + number
}
