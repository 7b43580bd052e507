package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"gorm.io/gorm"
)

// Permission names used by the back office routes.
const (
	PermissionPricingWrite = "inventory-price:write"
)

// RoleAdmin short-circuits permission checks.
const RoleAdmin = "admin"

type userLoader interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Checker answers whether a user may perform a back office operation.
type Checker struct {
	users userLoader
}

// NewChecker constructs a permission checker.
func NewChecker(users userLoader) (*Checker, error) {
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	return &Checker{users: users}, nil
}

// Require returns nil when the user holds the permission, a Forbidden
// error when they do not, and an Unauthorized error for unknown or
// deactivated users.
func (c *Checker) Require(ctx context.Context, userID int64, permission string) error {
	user, err := c.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is deactivated")
	}
	if user.Role == RoleAdmin {
		return nil
	}
	for _, granted := range user.Permissions {
		if granted == permission {
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeForbidden, "missing permission %s", permission)
}
