package notify

import (
	"strings"
	"unicode"
)

// GreetingName builds the salutation for applicant emails. Name fields are
// optional at intake, so when both are blank the greeting falls back to a
// name derived from the email's local part ("thabo.nkosi@x" -> "Thabo Nkosi").
func GreetingName(firstName, lastName, email string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}

	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Applicant"
	}

	for i, p := range parts {
		parts[i] = titleCase(p)
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
