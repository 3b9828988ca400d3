package catalog

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// OrgDomain is the registrable domain of network-issued accounts.
const OrgDomain = "aidmqan.com"

// EmailDomain returns the registrable domain (eTLD+1) of an address, so
// "s.johnson@lab.aidmqan.com" and "m.chen@aidmqan.com" both give "aidmqan.com".
func EmailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", false
	}
	host := strings.ToLower(strings.TrimSuffix(email[at+1:], "."))
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return domain, true
}

// IsExternal reports whether an account sits outside the network domain.
// Addresses without a parsable domain count as external.
func IsExternal(email string) bool {
	d, ok := EmailDomain(email)
	return !ok || d != OrgDomain
}
