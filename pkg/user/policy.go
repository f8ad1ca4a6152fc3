package user

import "strings"

// DefaultDisallowedDomains lists free-mail providers rejected at registration.
var DefaultDisallowedDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"rediff.com",
	"apple.com",
}

// Policy holds the registration rules that are business decisions rather than code.
type Policy struct {
	DisallowedDomains []string
}

// DefaultPolicy returns a Policy rejecting DefaultDisallowedDomains.
func DefaultPolicy() Policy {
	domains := make([]string, len(DefaultDisallowedDomains))
	copy(domains, DefaultDisallowedDomains)
	return Policy{DisallowedDomains: domains}
}

// IsDisallowed reports whether email ends with "@" followed by one of the
// disallowed domains. Domains compare case-insensitively.
func (p Policy) IsDisallowed(email string) bool {
	lower := strings.ToLower(email)
	for _, d := range p.DisallowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if strings.HasSuffix(lower, "@"+d) {
			return true
		}
	}
	return false
}
