// Package services – DomainService
//
// This file implements the DomainService, which orchestrates the custom
// domain lifecycle: claiming a hostname, running the DNS ownership check,
// aggregating edge-platform state into a client-facing status, and deleting
// a claim with best-effort edge cleanup.
//
// Two sources of truth meet here and are deliberately kept apart: the
// database owns the tenant-facing ownership status, while the edge platform
// owns routing and TLS state. They are merged only at presentation time and
// are allowed to disagree. The edge integration is optional: when it is
// unconfigured or unreachable the service degrades the response instead of
// failing the request.
//
// Service-level errors (ErrAccessDenied, ErrDomainNotFound, ...) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/idna"
	"gorm.io/gorm"

	"github.com/formloom/go-forms-backend/internal/dnscheck"
	"github.com/formloom/go-forms-backend/internal/domain"
	"github.com/formloom/go-forms-backend/internal/edge"
	"github.com/formloom/go-forms-backend/internal/repo"
)

// tracer instruments the externally-bound parts of the workflow (DNS and
// edge calls) so slow lookups are visible in traces.
var tracer = otel.Tracer("github.com/formloom/go-forms-backend/internal/services")

// DomainRepo defines the repository contract required by DomainService.
// All domain lookups are scoped by (id, workspaceID); there is no by-id-only
// accessor, by design.
type DomainRepo interface {
	CreateDomain(ctx context.Context, db *gorm.DB, workspaceID, hostname, token string) (*domain.WorkspaceDomain, error)
	GetDomain(ctx context.Context, db *gorm.DB, id, workspaceID string) (*domain.WorkspaceDomain, error)
	CountDomains(ctx context.Context, db *gorm.DB, workspaceID string) (int64, error)
	ListDomainsPage(ctx context.Context, db *gorm.DB, workspaceID string, offset, limit int) ([]domain.WorkspaceDomain, error)
	UpdateDomainVerification(ctx context.Context, db *gorm.DB, id, workspaceID, status string, verifiedAt *time.Time, checkedAt time.Time) error
	DeleteDomain(ctx context.Context, db *gorm.DB, id, workspaceID string) error
}

// MembershipRepo resolves a user's role inside a workspace.
type MembershipRepo interface {
	GetRole(ctx context.Context, db *gorm.DB, workspaceID, userID string) (string, error)
}

// Verifier runs one DNS ownership-proof pass. It never fails: lookup
// problems surface as negative results.
type Verifier interface {
	Verify(ctx context.Context, hostname, token string) dnscheck.Result
	ExpectedCNAME() string
	TXTRecordName(hostname string) string
}

// DomainService implements the custom-domain use cases. All methods take the
// acting user id and enforce workspace membership before touching any data.
type DomainService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the workspace-domain repository.
	Repo DomainRepo
	// Members resolves workspace roles for the access guard.
	Members MembershipRepo
	// Checker performs DNS ownership checks.
	Checker Verifier
	// Edge is the edge-hosting platform adapter. May be unconfigured.
	Edge edge.Gateway
}

// VerifyOutcome is the result of one verification use-case invocation.
type VerifyOutcome struct {
	Status     string
	VerifiedAt *time.Time
	DNS        dnscheck.Result
}

// StatusView is the aggregated, client-facing status of a domain. It merges
// the database ownership state (DomainStatus) with the edge platform's
// routing/TLS view. The edge fields are pointers so they can be omitted
// entirely when the integration is unconfigured.
type StatusView struct {
	DomainStatus     string `json:"domainStatus"`
	VercelConfigured bool   `json:"vercelConfigured"`
	Configured       *bool  `json:"configured,omitempty"`
	Verified         *bool  `json:"verified,omitempty"`
	Misconfigured    *bool  `json:"misconfigured,omitempty"`
	SSLReady         bool   `json:"sslReady"`
	Error            string `json:"error,omitempty"`
}

// SetupInstructions tells the tenant which DNS records to publish.
type SetupInstructions struct {
	CNAMETarget   string `json:"cname_target"`
	TXTRecordName string `json:"txt_record_name"`
	TXTValue      string `json:"txt_value"`
}

// requireRole ensures userID is a member of workspaceID, optionally holding
// one of the listed roles. Non-members and insufficient roles both yield
// ErrAccessDenied.
func (s *DomainService) requireRole(ctx context.Context, workspaceID, userID string, roles ...string) error {
	role, err := s.Members.GetRole(ctx, s.DB, workspaceID, userID)
	if err != nil {
		return err
	}
	if role == "" {
		return ErrAccessDenied
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if role == r {
			return nil
		}
	}
	return ErrAccessDenied
}

// Create claims a hostname for a workspace. It normalizes the hostname,
// generates the verification token, and persists the record in pending
// state. When the edge gateway is configured the hostname is also registered
// there, best-effort: a registration failure is logged and does not fail the
// claim, since verification and routing can catch up later.
//
// Requires the owner or admin role: claiming a hostname changes routing
// configuration for the workspace's published forms.
func (s *DomainService) Create(ctx context.Context, userID, workspaceID, hostname string) (*domain.WorkspaceDomain, *SetupInstructions, error) {
	if err := s.requireRole(ctx, workspaceID, userID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, nil, err
	}

	hostname, err := normalizeHostname(hostname)
	if err != nil {
		return nil, nil, ErrInvalidDomain
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, nil, err
	}

	d, err := s.Repo.CreateDomain(ctx, s.DB, workspaceID, hostname, token)
	if err != nil {
		if isDuplicate(err) {
			return nil, nil, ErrDomainExists
		}
		return nil, nil, err
	}

	if s.Edge != nil && s.Edge.Configured() {
		if err := s.Edge.AddDomain(ctx, hostname); err != nil {
			edgeFailures.WithLabelValues("add").Inc()
			log.Warn().Err(err).Str("domain", hostname).Msg("edge domain registration failed; will rely on later reconciliation")
		}
	}

	return d, &SetupInstructions{
		CNAMETarget:   s.Checker.ExpectedCNAME(),
		TXTRecordName: s.Checker.TXTRecordName(hostname),
		TXTValue:      token,
	}, nil
}

// ListPage returns a page of the workspace's domains and the total count.
// Any workspace member may list.
func (s *DomainService) ListPage(ctx context.Context, userID, workspaceID string, page, pageSize int) ([]domain.WorkspaceDomain, int64, error) {
	if err := s.requireRole(ctx, workspaceID, userID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountDomains(ctx, s.DB, workspaceID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.WorkspaceDomain{}, 0, nil
	}
	items, err := s.Repo.ListDomainsPage(ctx, s.DB, workspaceID, offset, pageSize)
	return items, total, err
}

// Verify runs one DNS ownership check for the domain and persists the
// outcome. Only the TXT check gates the verified status; the CNAME result is
// diagnostic. The write is unconditional so last_verified_at always reflects
// the most recent attempt, and a previously verified domain whose TXT record
// disappeared reverts to failed: ownership must be continuously provable.
//
// Any workspace member may verify — the operation is read-only with respect
// to DNS and cannot destroy anything.
func (s *DomainService) Verify(ctx context.Context, userID, workspaceID, domainID string) (*VerifyOutcome, error) {
	if err := s.requireRole(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	d, err := s.Repo.GetDomain(ctx, s.DB, domainID, workspaceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "domain.verify")
	span.SetAttributes(attribute.String("domain", d.Domain))
	res := s.Checker.Verify(ctx, d.Domain, d.VerificationToken)
	span.SetAttributes(
		attribute.Bool("dns.txt_valid", res.TXTValid),
		attribute.Bool("dns.cname_valid", res.CNAMEValid),
	)
	span.End()

	now := time.Now().UTC()
	status := domain.DomainStatusFailed
	var verifiedAt *time.Time
	if res.TXTValid {
		status = domain.DomainStatusVerified
		verifiedAt = &now
	}
	verifyAttempts.WithLabelValues(status).Inc()

	if err := s.Repo.UpdateDomainVerification(ctx, s.DB, d.ID, workspaceID, status, verifiedAt, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Deleted between load and write; concurrent delete wins.
			return nil, ErrDomainNotFound
		}
		return nil, err
	}

	return &VerifyOutcome{Status: status, VerifiedAt: verifiedAt, DNS: res}, nil
}

// Status merges the database ownership state with the edge platform's view
// into one payload. When the edge gateway is unconfigured or unreachable the
// response carries a heuristic sslReady derived from the ownership status,
// so the UI is never left without a signal. Any workspace member may read.
func (s *DomainService) Status(ctx context.Context, userID, workspaceID, domainID string) (*StatusView, error) {
	if err := s.requireRole(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	d, err := s.Repo.GetDomain(ctx, s.DB, domainID, workspaceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, err
	}

	view := &StatusView{
		DomainStatus: d.Status,
		SSLReady:     d.IsVerified(),
	}
	if s.Edge == nil || !s.Edge.Configured() {
		return view, nil
	}
	view.VercelConfigured = true

	ctx, span := tracer.Start(ctx, "domain.edge_status")
	st, err := s.Edge.Status(ctx, d.Domain)
	span.End()
	if err != nil {
		// Degraded richness, not a failure: keep the heuristic sslReady.
		log.Warn().Err(err).Str("domain", d.Domain).Msg("edge status unavailable")
		view.Error = "edge platform status unavailable"
		return view, nil
	}

	configured := !st.Misconfigured
	view.Configured = &configured
	view.Verified = &st.Verified
	view.Misconfigured = &st.Misconfigured
	view.SSLReady = st.SSLReady
	view.Error = st.Error
	return view, nil
}

// Delete removes the domain claim. The database delete is the operation of
// record and succeeds or fails on its own; edge deregistration afterwards is
// best-effort, and a failure there is logged and counted but never rolls the
// tenant-facing deletion back. A stale entry may persist on the edge
// platform until reconciled out of band.
//
// Requires the owner or admin role: deletion affects routing for end users
// of the tenant's published forms.
func (s *DomainService) Delete(ctx context.Context, userID, workspaceID, domainID string) error {
	if err := s.requireRole(ctx, workspaceID, userID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return err
	}

	// Hostname is needed for edge cleanup after the row is gone.
	d, err := s.Repo.GetDomain(ctx, s.DB, domainID, workspaceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDomainNotFound
		}
		return err
	}

	if err := s.Repo.DeleteDomain(ctx, s.DB, domainID, workspaceID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDomainNotFound
		}
		return err
	}

	if s.Edge != nil && s.Edge.Configured() {
		if err := s.Edge.RemoveDomain(ctx, d.Domain); err != nil {
			edgeFailures.WithLabelValues("remove").Inc()
			log.Error().Err(err).Str("domain", d.Domain).Msg("edge domain removal failed; entry left for manual reconciliation")
		}
	}
	return nil
}

// normalizeHostname lowercases, trims, and IDNA-encodes a hostname, and
// rejects values that cannot be a routable DNS name for a site (no dots, a
// bare TLD, embedded scheme or path).
func normalizeHostname(hostname string) (string, error) {
	hostname = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(hostname)), ".")
	if hostname == "" || len(hostname) > 253 || strings.ContainsAny(hostname, "/: ") {
		return "", ErrInvalidDomain
	}
	ascii, err := idna.Lookup.ToASCII(hostname)
	if err != nil {
		return "", ErrInvalidDomain
	}
	if !strings.Contains(ascii, ".") {
		return "", ErrInvalidDomain
	}
	return ascii, nil
}

// newVerificationToken returns 32 bytes of cryptographic randomness, hex
// encoded. Generated once per domain and never rotated.
func newVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
