package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formloom/go-forms-backend/internal/dnscheck"
	"github.com/formloom/go-forms-backend/internal/domain"
	"github.com/formloom/go-forms-backend/internal/http/middleware"
	"github.com/formloom/go-forms-backend/internal/services"
)

// stubService returns scripted results and records the arguments it was
// called with.
type stubService struct {
	createDomain *domain.WorkspaceDomain
	createSetup  *services.SetupInstructions
	createErr    error

	listItems []domain.WorkspaceDomain
	listTotal int64
	listErr   error

	verifyOut *services.VerifyOutcome
	verifyErr error

	statusView *services.StatusView
	statusErr  error

	deleteErr error

	gotUser, gotWorkspace, gotDomain string
}

func (s *stubService) Create(_ context.Context, userID, workspaceID, hostname string) (*domain.WorkspaceDomain, *services.SetupInstructions, error) {
	s.gotUser, s.gotWorkspace, s.gotDomain = userID, workspaceID, hostname
	return s.createDomain, s.createSetup, s.createErr
}

func (s *stubService) ListPage(_ context.Context, userID, workspaceID string, _, _ int) ([]domain.WorkspaceDomain, int64, error) {
	s.gotUser, s.gotWorkspace = userID, workspaceID
	return s.listItems, s.listTotal, s.listErr
}

func (s *stubService) Verify(_ context.Context, userID, workspaceID, domainID string) (*services.VerifyOutcome, error) {
	s.gotUser, s.gotWorkspace, s.gotDomain = userID, workspaceID, domainID
	return s.verifyOut, s.verifyErr
}

func (s *stubService) Status(_ context.Context, userID, workspaceID, domainID string) (*services.StatusView, error) {
	s.gotUser, s.gotWorkspace, s.gotDomain = userID, workspaceID, domainID
	return s.statusView, s.statusErr
}

func (s *stubService) Delete(_ context.Context, userID, workspaceID, domainID string) error {
	s.gotUser, s.gotWorkspace, s.gotDomain = userID, workspaceID, domainID
	return s.deleteErr
}

func newTestRouter(svc DomainService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	h := New(svc)
	ws := r.Group("/api/v1/workspaces/:workspaceId")
	ws.POST("/domains", h.CreateDomain)
	ws.GET("/domains", h.ListDomains)
	ws.POST("/domains/:domainId/verify", h.VerifyDomain)
	ws.GET("/domains/:domainId/status", h.DomainStatus)
	ws.DELETE("/domains/:domainId", h.DeleteDomain)
	return r
}

func doReq(t *testing.T, r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, w.Body.String())
	}
	return e
}

func TestRequireUser_AnonymousGets401(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	for _, rt := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/workspaces/ws1/domains"},
		{http.MethodGet, "/api/v1/workspaces/ws1/domains"},
		{http.MethodPost, "/api/v1/workspaces/ws1/domains/d1/verify"},
		{http.MethodGet, "/api/v1/workspaces/ws1/domains/d1/status"},
		{http.MethodDelete, "/api/v1/workspaces/ws1/domains/d1"},
	} {
		w := doReq(t, r, rt.method, rt.path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", rt.method, rt.path, w.Code)
		}
		if e := decodeErr(t, w); e.Code != ErrCodeUnauthorized {
			t.Fatalf("%s %s: code = %q", rt.method, rt.path, e.Code)
		}
	}
	if svc.gotUser != "" {
		t.Fatalf("service must not be reached without identity")
	}
}

func TestCreateDomain_Success(t *testing.T) {
	svc := &stubService{
		createDomain: &domain.WorkspaceDomain{ID: "d1", WorkspaceID: "ws1", Domain: "forms.acme.com", Status: domain.DomainStatusPending},
		createSetup: &services.SetupInstructions{
			CNAMETarget:   "cname.formloom.app",
			TXTRecordName: "_formloom.forms.acme.com",
			TXTValue:      "tok",
		},
	}
	r := newTestRouter(svc)

	w := doReq(t, r, http.MethodPost, "/api/v1/workspaces/ws1/domains", "u1", `{"domain":"forms.acme.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp CreateDomainResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Domain.Domain != "forms.acme.com" || resp.Setup.TXTValue != "tok" {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if svc.gotUser != "u1" || svc.gotWorkspace != "ws1" {
		t.Fatalf("wrong arguments: %q %q", svc.gotUser, svc.gotWorkspace)
	}
}

func TestCreateDomain_MissingBody(t *testing.T) {
	r := newTestRouter(&stubService{})
	w := doReq(t, r, http.MethodPost, "/api/v1/workspaces/ws1/domains", "u1", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"forbidden", services.ErrAccessDenied, http.StatusForbidden, ErrCodeForbidden},
		{"not found", services.ErrDomainNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"conflict", services.ErrDomainExists, http.StatusConflict, ErrCodeConflict},
		{"invalid", services.ErrInvalidDomain, http.StatusBadRequest, ErrCodeInvalidDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{createErr: tt.err}
			r := newTestRouter(svc)
			w := doReq(t, r, http.MethodPost, "/api/v1/workspaces/ws1/domains", "u1", `{"domain":"forms.acme.com"}`)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if e := decodeErr(t, w); e.Code != tt.wantBody {
				t.Fatalf("code = %q, want %q", e.Code, tt.wantBody)
			}
		})
	}
}

func TestVerifyDomain_ResponseShape(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubService{
		verifyOut: &services.VerifyOutcome{
			Status:     domain.DomainStatusVerified,
			VerifiedAt: &now,
			DNS: dnscheck.Result{
				CNAMEValid:    false,
				TXTValid:      true,
				ExpectedCNAME: "cname.formloom.app",
				TXTRecordName: "_formloom.forms.acme.com",
			},
		},
	}
	r := newTestRouter(svc)

	w := doReq(t, r, http.MethodPost, "/api/v1/workspaces/ws1/domains/d1/verify", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp VerifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "verified" || resp.VerifiedAt == nil {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if !resp.Details.TXT.Valid || resp.Details.TXT.RecordName != "_formloom.forms.acme.com" {
		t.Fatalf("TXT details lost: %s", w.Body.String())
	}
	if resp.Details.CNAME.Valid || resp.Details.CNAME.Expected != "cname.formloom.app" {
		t.Fatalf("CNAME details lost: %s", w.Body.String())
	}
	if svc.gotDomain != "d1" {
		t.Fatalf("domain id not forwarded: %q", svc.gotDomain)
	}
}

func TestDomainStatus_PassThrough(t *testing.T) {
	configured := true
	svc := &stubService{
		statusView: &services.StatusView{
			DomainStatus:     domain.DomainStatusVerified,
			VercelConfigured: true,
			Configured:       &configured,
			SSLReady:         true,
		},
	}
	r := newTestRouter(svc)

	w := doReq(t, r, http.MethodGet, "/api/v1/workspaces/ws1/domains/d1/status", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["domainStatus"] != "verified" || got["vercelConfigured"] != true || got["sslReady"] != true {
		t.Fatalf("unexpected keys or values: %s", w.Body.String())
	}
	if _, present := got["error"]; present {
		t.Fatalf("empty error must be omitted: %s", w.Body.String())
	}
}

func TestDomainStatus_UnconfiguredOmitsEdgeFields(t *testing.T) {
	svc := &stubService{
		statusView: &services.StatusView{DomainStatus: domain.DomainStatusPending},
	}
	r := newTestRouter(svc)

	w := doReq(t, r, http.MethodGet, "/api/v1/workspaces/ws1/domains/d1/status", "u1", "")
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{"configured", "verified", "misconfigured"} {
		if _, present := got[k]; present {
			t.Fatalf("%q must be omitted when the edge is unconfigured: %s", k, w.Body.String())
		}
	}
	if got["vercelConfigured"] != false {
		t.Fatalf("vercelConfigured must always be present: %s", w.Body.String())
	}
}

func TestDeleteDomain_Success(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	w := doReq(t, r, http.MethodDelete, "/api/v1/workspaces/ws1/domains/d1", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp DeleteDomainResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Success {
		t.Fatalf("unexpected payload: %s (%v)", w.Body.String(), err)
	}
	if svc.gotUser != "u1" || svc.gotWorkspace != "ws1" || svc.gotDomain != "d1" {
		t.Fatalf("wrong arguments: %q %q %q", svc.gotUser, svc.gotWorkspace, svc.gotDomain)
	}
}

func TestListDomains_PaginationEnvelope(t *testing.T) {
	svc := &stubService{
		listItems: []domain.WorkspaceDomain{{ID: "d1", WorkspaceID: "ws1", Domain: "a.acme.com"}},
		listTotal: 41,
	}
	r := newTestRouter(svc)

	w := doReq(t, r, http.MethodGet, "/api/v1/workspaces/ws1/domains?page=2&page_size=20", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ListDomainsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination.Page != 2 || resp.Pagination.Total != 41 || resp.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("items lost: %s", w.Body.String())
	}
}
