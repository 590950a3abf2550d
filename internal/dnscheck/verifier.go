// Package dnscheck implements the DNS ownership-proof protocol for custom
// domains. A tenant proves control of a hostname by publishing a TXT record
// containing a platform-issued secret token; a CNAME pointing at the
// platform's routing target is checked as well, but only as a diagnostic for
// the setup UI.
//
// All lookups are read-only and idempotent. DNS failures (NXDOMAIN, timeout,
// missing records) are never surfaced as errors: they simply yield a negative
// check, because "the record is not there" and "the record could not be seen"
// are indistinguishable to the ownership state machine and both mean the
// proof does not currently hold.
package dnscheck

import (
	"context"
	"net"
	"strings"
	"time"
)

// DefaultTimeout bounds a single verification pass (both lookups share it).
// Expiry is treated as a failed lookup, not an error.
const DefaultTimeout = 5 * time.Second

// Resolver is the subset of net.Resolver used by the checker. It exists so
// tests can substitute a fake without touching real DNS.
type Resolver interface {
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// Result is the outcome of one verification pass over live DNS.
//
// TXTValid alone gates the verified status: the TXT value is an out-of-band
// secret that is a far stronger proof of control than the CNAME, which a
// tenant may set early or point elsewhere during a staged migration.
// CNAMEValid is reported for troubleshooting only.
type Result struct {
	// CNAMEValid is true when the hostname's CNAME chain resolves to the
	// platform routing target (or a subdomain of it).
	CNAMEValid bool
	// TXTValid is true when the ownership TXT record carries the exact token.
	TXTValid bool
	// ExpectedCNAME is the routing target the tenant should point at.
	ExpectedCNAME string
	// TXTRecordName is the fully qualified name where the token is expected.
	TXTRecordName string
}

// Checker verifies domain ownership against live DNS.
type Checker struct {
	resolver Resolver
	// cnameTarget is the platform's fixed routing hostname, e.g. "cname.formloom.app".
	cnameTarget string
	// txtPrefix is the ownership-proof label, e.g. "_formloom".
	txtPrefix string
	timeout   time.Duration
}

// New returns a Checker backed by the system resolver. A non-positive
// timeout falls back to DefaultTimeout.
func New(cnameTarget, txtPrefix string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		resolver:    net.DefaultResolver,
		cnameTarget: strings.TrimSuffix(strings.ToLower(cnameTarget), "."),
		txtPrefix:   strings.ToLower(txtPrefix),
		timeout:     timeout,
	}
}

// NewWithResolver is like New but uses the provided resolver. Tests use this
// to inject fakes.
func NewWithResolver(r Resolver, cnameTarget, txtPrefix string, timeout time.Duration) *Checker {
	c := New(cnameTarget, txtPrefix, timeout)
	c.resolver = r
	return c
}

// TXTRecordName returns the conventional name of the ownership TXT record
// for a hostname, e.g. "_formloom.forms.acme.com".
func (c *Checker) TXTRecordName(hostname string) string {
	return c.txtPrefix + "." + strings.TrimSuffix(strings.ToLower(hostname), ".")
}

// ExpectedCNAME returns the routing target tenants should CNAME to.
func (c *Checker) ExpectedCNAME() string { return c.cnameTarget }

// Verify runs one pass of the ownership check for hostname against token.
// It never returns an error: lookup failures of any kind degrade to a
// negative result for the affected check.
func (c *Checker) Verify(ctx context.Context, hostname, token string) Result {
	hostname = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(hostname)), ".")

	res := Result{
		ExpectedCNAME: c.cnameTarget,
		TXTRecordName: c.TXTRecordName(hostname),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res.CNAMEValid = c.checkCNAME(ctx, hostname)
	res.TXTValid = c.checkTXT(ctx, res.TXTRecordName, token)
	return res
}

// checkCNAME resolves the CNAME chain for hostname and reports whether the
// canonical target is the routing target or a subdomain of it.
func (c *Checker) checkCNAME(ctx context.Context, hostname string) bool {
	target, err := c.resolver.LookupCNAME(ctx, hostname)
	if err != nil {
		return false
	}
	target = strings.TrimSuffix(strings.ToLower(target), ".")
	return target == c.cnameTarget || strings.HasSuffix(target, "."+c.cnameTarget)
}

// checkTXT reports whether any TXT value at recordName exactly equals token.
// Values are trimmed before comparison; some DNS providers pad quoted values
// with whitespace.
func (c *Checker) checkTXT(ctx context.Context, recordName, token string) bool {
	if token == "" {
		return false
	}
	records, err := c.resolver.LookupTXT(ctx, recordName)
	if err != nil {
		return false
	}
	for _, rec := range records {
		if strings.TrimSpace(rec) == token {
			return true
		}
	}
	return false
}
