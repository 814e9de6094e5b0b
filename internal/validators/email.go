package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmailDomainValid vérifie la forme de l'adresse puis que le domaine est
// joignable (MX, sinon A/AAAA). Un domaine injoignable bloque l'inscription.
func IsEmailDomainValid(email string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
