// Package edge wraps the external edge-hosting platform (Vercel) that
// terminates TLS and routes traffic for custom hostnames. The platform is an
// optimization layer, not the source of truth: the adapter exposes an
// explicit capability check so callers can branch on availability instead of
// handling failures, and registration/removal are designed to be called
// best-effort.
package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DomainStatus is the edge platform's own view of a hostname: whether its
// DNS checks pass and whether a TLS certificate has been issued. It is
// reported to clients side by side with the database ownership status; the
// two are allowed to disagree.
type DomainStatus struct {
	// Verified reports the platform's own domain verification.
	Verified bool `json:"verified"`
	// Misconfigured is true when the platform's DNS checks fail.
	Misconfigured bool `json:"misconfigured"`
	// SSLReady is true once traffic can be served over TLS.
	SSLReady bool `json:"sslReady"`
	// Error carries the platform's verification failure reason, if any.
	Error string `json:"error,omitempty"`
}

// Gateway is the capability interface over the edge platform's domain API.
//
// Configured reports whether credentials are present; when false, the other
// methods must not be called — callers treat the absence of the integration
// as a degraded-but-successful path, never as an error.
type Gateway interface {
	Configured() bool
	AddDomain(ctx context.Context, hostname string) error
	RemoveDomain(ctx context.Context, hostname string) error
	Status(ctx context.Context, hostname string) (DomainStatus, error)
}

const (
	vercelAPIBase  = "https://api.vercel.com"
	requestTimeout = 10 * time.Second
)

// VercelGateway implements Gateway against the Vercel REST API.
type VercelGateway struct {
	token     string
	projectID string
	teamID    string
	baseURL   string
	client    *http.Client
}

// NewVercelGateway builds a gateway from credentials. Empty token or project
// ID yields an unconfigured gateway, which is a valid state: the feature
// degrades rather than failing.
func NewVercelGateway(token, projectID, teamID string) *VercelGateway {
	return &VercelGateway{
		token:     token,
		projectID: projectID,
		teamID:    teamID,
		baseURL:   vercelAPIBase,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// WithBaseURL overrides the API base URL. Tests point this at a local
// httptest server.
func (g *VercelGateway) WithBaseURL(base string) *VercelGateway {
	g.baseURL = base
	return g
}

// Configured reports whether the gateway has credentials to act with.
func (g *VercelGateway) Configured() bool {
	return g != nil && g.token != "" && g.projectID != ""
}

// AddDomain registers hostname with the project so the platform starts
// routing and provisioning TLS for it. Registering an already-known hostname
// is not an error (the platform answers 409 and the outcome is identical).
func (g *VercelGateway) AddDomain(ctx context.Context, hostname string) error {
	body, _ := json.Marshal(map[string]string{"name": hostname})
	path := fmt.Sprintf("/v10/projects/%s/domains", url.PathEscape(g.projectID))
	resp, err := g.do(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusConflict {
		return apiError("add domain", resp)
	}
	return nil
}

// RemoveDomain deregisters hostname from the project. A hostname unknown to
// the platform is treated as already removed.
func (g *VercelGateway) RemoveDomain(ctx context.Context, hostname string) error {
	path := fmt.Sprintf("/v9/projects/%s/domains/%s", url.PathEscape(g.projectID), url.PathEscape(hostname))
	resp, err := g.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return apiError("remove domain", resp)
	}
	return nil
}

// vercelDomain is the subset of the project-domain payload we read.
type vercelDomain struct {
	Verified bool `json:"verified"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"verification_error,omitempty"`
}

// vercelConfig is the subset of the domain-config payload we read.
type vercelConfig struct {
	Misconfigured bool `json:"misconfigured"`
}

// Status queries the platform for hostname's routing and TLS state. It
// performs two reads: the project-domain record (verification) and the
// domain config (DNS misconfiguration). A certificate is issued once the
// domain is verified and correctly pointed, so SSLReady is derived from the
// pair.
func (g *VercelGateway) Status(ctx context.Context, hostname string) (DomainStatus, error) {
	var st DomainStatus

	path := fmt.Sprintf("/v9/projects/%s/domains/%s", url.PathEscape(g.projectID), url.PathEscape(hostname))
	resp, err := g.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return st, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Not registered with the platform at all: report an honest zero
		// state instead of failing the status request.
		st.Misconfigured = true
		st.Error = "domain is not registered with the edge platform"
		return st, nil
	}
	if resp.StatusCode >= 300 {
		return st, apiError("domain status", resp)
	}

	var d vercelDomain
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return st, fmt.Errorf("decode domain status: %w", err)
	}
	st.Verified = d.Verified
	if d.Error != nil {
		st.Error = d.Error.Message
	}

	cfgPath := fmt.Sprintf("/v6/domains/%s/config", url.PathEscape(hostname))
	cfgResp, err := g.do(ctx, http.MethodGet, cfgPath, nil)
	if err != nil {
		return st, err
	}
	defer cfgResp.Body.Close()

	if cfgResp.StatusCode >= 300 {
		return st, apiError("domain config", cfgResp)
	}
	var cfg vercelConfig
	if err := json.NewDecoder(cfgResp.Body).Decode(&cfg); err != nil {
		return st, fmt.Errorf("decode domain config: %w", err)
	}
	st.Misconfigured = cfg.Misconfigured
	st.SSLReady = st.Verified && !st.Misconfigured
	return st, nil
}

// do issues an authenticated request against the platform API. The team
// scope is appended when present.
func (g *VercelGateway) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	u := g.baseURL + path
	if g.teamID != "" {
		u += "?teamId=" + url.QueryEscape(g.teamID)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.client.Do(req)
}

// apiError drains a short error body for context and wraps the status code.
func apiError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("vercel %s: status %d: %s", op, resp.StatusCode, bytes.TrimSpace(b))
}
