// Package domain defines the persistence models for workspaces, memberships,
// and custom domains. These types are mapped with GORM and form the core data
// layer of the custom-domain subsystem.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Domain verification states. A domain is never stuck in a terminal state:
// every verification attempt re-evaluates current DNS truth and may move the
// record in either direction.
const (
	DomainStatusPending  = "pending"
	DomainStatusVerified = "verified"
	DomainStatusFailed   = "failed"
)

// Workspace roles, ordered by privilege. Deletion and creation of domains
// require RoleOwner or RoleAdmin; verification and status reads are open to
// any member.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Workspace is the tenant boundary under which domains, forms, and
// memberships are scoped.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: human-readable workspace name.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type Workspace struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Workspace.
func (Workspace) TableName() string { return "workspaces" }

// Membership links a user to a workspace with a role. A user holds at most
// one membership per workspace (enforced by unique index).
type Membership struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	WorkspaceID string         `json:"workspace_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_member_ws_user"`
	UserID      string         `json:"user_id"      gorm:"type:varchar(64);not null;index;uniqueIndex:ux_member_ws_user"`
	Role        string         `json:"role"         gorm:"type:varchar(16);not null;check:role IN ('owner','admin','member')"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`

	// Workspace is the parent tenant. Memberships are cascade-deleted if the
	// workspace is removed.
	Workspace Workspace `json:"-" gorm:"foreignKey:WorkspaceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Membership.
func (Membership) TableName() string { return "memberships" }

// WorkspaceDomain represents a custom hostname claimed by a workspace,
// together with its ownership-verification state.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), immutable.
//   - WorkspaceID: owning workspace; every read and write is scoped by this
//     field, never by ID alone.
//   - Domain: the hostname, lowercase, globally unique, immutable after
//     creation.
//   - VerificationToken: opaque random secret generated once at creation.
//     The tenant publishes it in a DNS TXT record to prove control. Never
//     serialized into API responses directly (handlers expose the expected
//     record explicitly).
//   - Status: pending | verified | failed.
//   - VerifiedAt: set exactly when Status transitions to verified, cleared
//     otherwise. Ownership must be continuously provable, so a later failed
//     check clears this again.
//   - LastVerifiedAt: timestamp of the most recent verification attempt,
//     successful or not.
type WorkspaceDomain struct {
	ID                string         `json:"id"                 gorm:"type:char(36);primaryKey"`
	WorkspaceID       string         `json:"workspace_id"       gorm:"type:char(36);not null;index:idx_ws_domains"`
	Domain            string         `json:"domain"             gorm:"type:varchar(255);not null;uniqueIndex:ux_domain_name"`
	VerificationToken string         `json:"-"                  gorm:"type:varchar(64);not null"`
	Status            string         `json:"status"             gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','verified','failed')"`
	VerifiedAt        *time.Time     `json:"verified_at,omitempty"`
	LastVerifiedAt    *time.Time     `json:"last_verified_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-"                  gorm:"index"`

	// Workspace is the owning tenant. Domains are cascade-deleted if the
	// workspace is removed.
	Workspace Workspace `json:"-" gorm:"foreignKey:WorkspaceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WorkspaceDomain.
func (WorkspaceDomain) TableName() string { return "workspace_domains" }

// IsVerified reports whether the most recent verification attempt succeeded.
func (d *WorkspaceDomain) IsVerified() bool { return d.Status == DomainStatusVerified }
