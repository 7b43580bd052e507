package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is a back-office operator. Permissions are flat strings such as
// "inventory-price:write", granted through the user's role.
type User struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Email       string         `gorm:"column:email;not null;uniqueIndex"`
	FullName    string         `gorm:"column:full_name;not null"`
	Role        string         `gorm:"column:role;not null"`
	Permissions pq.StringArray `gorm:"column:permissions;type:text[];default:ARRAY[]::text[]"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string { return "users" }
