package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/formloom/go-forms-backend/internal/domain"
)

func seedMember(t *testing.T, db *gorm.DB, workspaceID, userID, role string) {
	t.Helper()
	m := &domain.Membership{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func TestGetRole(t *testing.T) {
	db := newTestDB(t)
	seedWorkspace(t, db, "ws1")
	seedWorkspace(t, db, "ws2")
	seedMember(t, db, "ws1", "u-owner", domain.RoleOwner)
	seedMember(t, db, "ws1", "u-member", domain.RoleMember)

	tests := []struct {
		name        string
		workspaceID string
		userID      string
		want        string
	}{
		{"owner", "ws1", "u-owner", domain.RoleOwner},
		{"member", "ws1", "u-member", domain.RoleMember},
		{"non-member is empty, not an error", "ws1", "u-stranger", ""},
		{"member of another workspace", "ws2", "u-owner", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := GetRole(context.Background(), db, tt.workspaceID, tt.userID)
			if err != nil {
				t.Fatalf("GetRole: %v", err)
			}
			if role != tt.want {
				t.Fatalf("role = %q, want %q", role, tt.want)
			}
		})
	}
}
