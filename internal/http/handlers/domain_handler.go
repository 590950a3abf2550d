// Custom domain HTTP handlers.
//
// This file exposes the REST endpoints for workspace custom domains:
//   - POST   /workspaces/{workspaceId}/domains                     (claim)
//   - GET    /workspaces/{workspaceId}/domains                     (list, paginated)
//   - POST   /workspaces/{workspaceId}/domains/{domainId}/verify   (DNS ownership check)
//   - GET    /workspaces/{workspaceId}/domains/{domainId}/status   (aggregated status)
//   - DELETE /workspaces/{workspaceId}/domains/{domainId}          (delete + edge cleanup)
//
// Handlers are transport-thin: they resolve the acting user, delegate to the
// domain service, and translate service errors into HTTP results. All
// authorization decisions (membership, roles, tenant scoping) live in the
// service layer.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formloom/go-forms-backend/internal/domain"
	"github.com/formloom/go-forms-backend/internal/http/middleware"
	"github.com/formloom/go-forms-backend/internal/services"
	"github.com/formloom/go-forms-backend/internal/utils"
)

// DomainService defines the domain lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type DomainService interface {
	// Create claims a hostname for a workspace and returns setup instructions.
	Create(ctx context.Context, userID, workspaceID, hostname string) (*domain.WorkspaceDomain, *services.SetupInstructions, error)
	// ListPage returns a page of the workspace's domains and the total count.
	ListPage(ctx context.Context, userID, workspaceID string, page, pageSize int) ([]domain.WorkspaceDomain, int64, error)
	// Verify runs one DNS ownership check and persists the outcome.
	Verify(ctx context.Context, userID, workspaceID, domainID string) (*services.VerifyOutcome, error)
	// Status merges database and edge-platform state for a domain.
	Status(ctx context.Context, userID, workspaceID, domainID string) (*services.StatusView, error)
	// Delete removes the claim and best-effort deregisters it from the edge.
	Delete(ctx context.Context, userID, workspaceID, domainID string) error
}

// Handlers groups the HTTP endpoints for workspace custom domains.
type Handlers struct {
	domains DomainService
}

// New constructs a Handlers instance bound to the given service.
func New(domains DomainService) *Handlers {
	return &Handlers{domains: domains}
}

// requireUser resolves the authenticated user from the request context.
// When no identity is present it writes a 401 and returns false.
func requireUser(c *gin.Context) (string, bool) {
	uid := middleware.CurrentUser(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return "", false
	}
	return uid, true
}

//
// DTOs
//

// CreateDomainRequest is the JSON payload for claiming a hostname.
type CreateDomainRequest struct {
	// Domain is the hostname to attach, e.g. "forms.acme.com".
	Domain string `json:"domain" binding:"required,min=3,max=253" example:"forms.acme.com"`
}

// CreateDomainResponse returns the claimed record plus the DNS records the
// tenant must publish.
type CreateDomainResponse struct {
	Domain *domain.WorkspaceDomain     `json:"domain"`
	Setup  *services.SetupInstructions `json:"setup"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListDomainsResponse is the paginated list envelope.
type ListDomainsResponse struct {
	Items      []domain.WorkspaceDomain `json:"items"`
	Pagination Pagination               `json:"pagination"`
}

// RecordCheck describes the outcome of a single DNS record check.
type RecordCheck struct {
	Valid bool `json:"valid"`
	// Expected is the value the record should resolve to (CNAME only).
	Expected string `json:"expected,omitempty"`
	// RecordName is the DNS name that was checked (TXT only).
	RecordName string `json:"recordName,omitempty"`
}

// VerifyResponse reports the persisted outcome of a verification attempt
// together with per-record diagnostics for the setup UI.
type VerifyResponse struct {
	Status     string     `json:"status" example:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	Details    struct {
		CNAME RecordCheck `json:"cname"`
		TXT   RecordCheck `json:"txt"`
	} `json:"details"`
}

// DeleteDomainResponse acknowledges a completed deletion.
type DeleteDomainResponse struct {
	Success bool `json:"success" example:"true"`
}

//
// Endpoints
//

// CreateDomain godoc
// @ID          createDomain
// @Summary     Claim a custom domain
// @Description Attaches a hostname to the workspace and returns the DNS records to publish. Requires the owner or admin role.
// @Tags        Domains
// @Accept      json
// @Produce     json
// @Param       workspaceId path   string true  "Workspace ID (UUID)" format(uuid)
// @Param       body        body   handlers.CreateDomainRequest true "Hostname to claim"
// @Success     201 {object} handlers.CreateDomainResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid hostname"
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure     403 {object} handlers.ErrorResponse "Insufficient role"
// @Failure     409 {object} handlers.ErrorResponse "Hostname already claimed"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /workspaces/{workspaceId}/domains [post]
func (h *Handlers) CreateDomain(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "domain is required")
		return
	}

	d, setup, err := h.domains.Create(c.Request.Context(), uid, c.Param("workspaceId"), req.Domain)
	if err != nil {
		failDomainErr(c, err)
		return
	}
	ok(c, http.StatusCreated, CreateDomainResponse{Domain: d, Setup: setup})
}

// ListDomains godoc
// @ID          listDomains
// @Summary     List workspace domains
// @Description Returns the workspace's claimed domains, paginated, most recent first.
// @Tags        Domains
// @Produce     json
// @Param       workspaceId path  string true  "Workspace ID (UUID)" format(uuid)
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Page size (default 20, max 100)"
// @Success     200 {object} handlers.ListDomainsResponse
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure     403 {object} handlers.ErrorResponse "Not a workspace member"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /workspaces/{workspaceId}/domains [get]
func (h *Handlers) ListDomains(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	page := utils.AtoiDefault(c.Query("page"), 1)
	pageSize := utils.ClampPageSize(utils.AtoiDefault(c.Query("page_size"), 20), 100)

	items, total, err := h.domains.ListPage(c.Request.Context(), uid, c.Param("workspaceId"), page, pageSize)
	if err != nil {
		failDomainErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListDomainsResponse{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: utils.TotalPages(total, pageSize),
		},
	})
}

// VerifyDomain godoc
// @ID          verifyDomain
// @Summary     Verify domain ownership
// @Description Re-checks the domain's DNS records and persists the resulting status. Only the TXT check gates ownership; the CNAME result is diagnostic.
// @Tags        Domains
// @Produce     json
// @Param       workspaceId path string true "Workspace ID (UUID)" format(uuid)
// @Param       domainId    path string true "Domain ID (UUID)"    format(uuid)
// @Success     200 {object} handlers.VerifyResponse
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure     403 {object} handlers.ErrorResponse "Not a workspace member"
// @Failure     404 {object} handlers.ErrorResponse "Domain not found in this workspace"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /workspaces/{workspaceId}/domains/{domainId}/verify [post]
func (h *Handlers) VerifyDomain(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	out, err := h.domains.Verify(c.Request.Context(), uid, c.Param("workspaceId"), c.Param("domainId"))
	if err != nil {
		failDomainErr(c, err)
		return
	}

	var resp VerifyResponse
	resp.Status = out.Status
	resp.VerifiedAt = out.VerifiedAt
	resp.Details.CNAME = RecordCheck{Valid: out.DNS.CNAMEValid, Expected: out.DNS.ExpectedCNAME}
	resp.Details.TXT = RecordCheck{Valid: out.DNS.TXTValid, RecordName: out.DNS.TXTRecordName}
	ok(c, http.StatusOK, resp)
}

// DomainStatus godoc
// @ID          domainStatus
// @Summary     Aggregated domain status
// @Description Merges the stored ownership status with the edge platform's routing/TLS view. The two can disagree; both are reported.
// @Tags        Domains
// @Produce     json
// @Param       workspaceId path string true "Workspace ID (UUID)" format(uuid)
// @Param       domainId    path string true "Domain ID (UUID)"    format(uuid)
// @Success     200 {object} services.StatusView
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure     403 {object} handlers.ErrorResponse "Not a workspace member"
// @Failure     404 {object} handlers.ErrorResponse "Domain not found in this workspace"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /workspaces/{workspaceId}/domains/{domainId}/status [get]
func (h *Handlers) DomainStatus(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	view, err := h.domains.Status(c.Request.Context(), uid, c.Param("workspaceId"), c.Param("domainId"))
	if err != nil {
		failDomainErr(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

// DeleteDomain godoc
// @ID          deleteDomain
// @Summary     Delete a custom domain
// @Description Removes the domain claim and best-effort deregisters it from the edge platform. Requires the owner or admin role.
// @Tags        Domains
// @Produce     json
// @Param       workspaceId path string true "Workspace ID (UUID)" format(uuid)
// @Param       domainId    path string true "Domain ID (UUID)"    format(uuid)
// @Success     200 {object} handlers.DeleteDomainResponse
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure     403 {object} handlers.ErrorResponse "Insufficient role"
// @Failure     404 {object} handlers.ErrorResponse "Domain not found in this workspace"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /workspaces/{workspaceId}/domains/{domainId} [delete]
func (h *Handlers) DeleteDomain(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.domains.Delete(c.Request.Context(), uid, c.Param("workspaceId"), c.Param("domainId")); err != nil {
		failDomainErr(c, err)
		return
	}
	ok(c, http.StatusOK, DeleteDomainResponse{Success: true})
}

// failDomainErr maps service-level sentinel errors onto HTTP results.
func failDomainErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "access denied")
	case errors.Is(err, services.ErrDomainNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "domain not found")
	case errors.Is(err, services.ErrDomainExists):
		fail(c, http.StatusConflict, ErrCodeConflict, "domain already claimed")
	case errors.Is(err, services.ErrInvalidDomain):
		fail(c, http.StatusBadRequest, ErrCodeInvalidDomain, "invalid domain name")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
