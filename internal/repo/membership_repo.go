// Membership repository. The custom-domain service only ever needs to answer
// one question about memberships: which role, if any, does a user hold in a
// workspace. Membership lifecycle (invites, role changes) is owned by the
// workspace management service and is out of scope here.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/formloom/go-forms-backend/internal/domain"
)

// GetRole returns the role userID holds in workspaceID, or ("", nil) when
// the user is not a member. Only genuine DB failures are returned as errors;
// "not a member" is a normal answer, not an error condition.
func GetRole(ctx context.Context, db *gorm.DB, workspaceID, userID string) (string, error) {
	var m domain.Membership
	err := db.WithContext(ctx).
		Select("role").
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Role, nil
}
