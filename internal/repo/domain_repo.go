// Package repo implements the data persistence layer for workspace and
// custom-domain entities, backed by GORM. This file provides repository
// functions for the WorkspaceDomain model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Tenant isolation: every lookup and mutation of a specific domain is scoped
// by (id, workspace_id). There is intentionally no helper that fetches a
// domain by id alone, so a caller cannot reach a record owned by another
// workspace.
//
// Error semantics:
//   - When a domain is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/formloom/go-forms-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateDomain inserts a new WorkspaceDomain row for workspaceID with the
// given hostname and verification token. Status starts as pending, the ID is
// a randomly generated UUID, and CreatedAt is set to UTC.
//
// On success, it returns the persisted record. A duplicate hostname trips
// the unique index and surfaces as a DB error for the service to classify.
func CreateDomain(ctx context.Context, db *gorm.DB, workspaceID, hostname, token string) (*domain.WorkspaceDomain, error) {
	d := &domain.WorkspaceDomain{
		ID:                uuid.NewString(),
		WorkspaceID:       workspaceID,
		Domain:            hostname,
		VerificationToken: token,
		Status:            domain.DomainStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// GetDomain fetches a single domain by its ID and owning workspace. If the
// record does not exist in that workspace, it returns ErrNotFound — the same
// answer as for a record that does not exist at all, so existence never
// leaks across tenants.
func GetDomain(ctx context.Context, db *gorm.DB, id, workspaceID string) (*domain.WorkspaceDomain, error) {
	var d domain.WorkspaceDomain
	err := db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CountDomains returns the total number of domains claimed by workspaceID.
func CountDomains(ctx context.Context, db *gorm.DB, workspaceID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.WorkspaceDomain{}).
		Where("workspace_id = ?", workspaceID).
		Count(&total).Error
	return total, err
}

// ListDomainsPage returns a paginated slice of domains for workspaceID,
// ordered by creation time descending. Use CountDomains to obtain the total
// for pagination metadata.
func ListDomainsPage(ctx context.Context, db *gorm.DB, workspaceID string, offset, limit int) ([]domain.WorkspaceDomain, error) {
	var out []domain.WorkspaceDomain
	err := db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateDomainVerification persists the outcome of a verification attempt.
// It always advances last_verified_at, writes the new status, and sets or
// clears verified_at depending on the outcome. The write is unconditional:
// even an unchanged status advances last_verified_at so the column remains
// an honest "most recent check" signal.
//
// Returns ErrNotFound when no row matches (id, workspace_id).
func UpdateDomainVerification(ctx context.Context, db *gorm.DB, id, workspaceID, status string, verifiedAt *time.Time, checkedAt time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.WorkspaceDomain{}).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Updates(map[string]any{
			"status":           status,
			"verified_at":      verifiedAt,
			"last_verified_at": checkedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteDomain removes a domain row scoped by (id, workspaceID). The delete
// is hard (Unscoped) because the hostname must become claimable again
// immediately; a soft-deleted row would still hold the unique index.
//
// Returns ErrNotFound when no row matches.
func DeleteDomain(ctx context.Context, db *gorm.DB, id, workspaceID string) error {
	res := db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&domain.WorkspaceDomain{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
