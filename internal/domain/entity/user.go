package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a platform account: a super-admin, a shopkeeper, or a staff member
// working in a shopkeeper's tenant. Shop* fields hold the shopkeeper's
// business profile.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName       string         `gorm:"size:255;not null" json:"first_name"`
	LastName        string         `gorm:"size:255;not null" json:"last_name"`
	Username        string         `gorm:"size:255;unique" json:"username"`
	Email           string         `gorm:"size:255;unique;not null" json:"email"`
	Password        string         `gorm:"size:255" json:"-"`
	Provider        string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID      *string        `gorm:"size:255" json:"-"`
	Photo           *string        `gorm:"size:255" json:"photo,omitempty"`
	ShopName        *string        `gorm:"size:255" json:"shop_name,omitempty"`
	ShopAddress     *string        `gorm:"type:text" json:"shop_address,omitempty"`
	ShopPhone       *string        `gorm:"size:50" json:"shop_phone,omitempty"`
	ShopEmail       *string        `gorm:"size:255" json:"shop_email,omitempty"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Roles       []Role       `gorm:"many2many:model_has_roles;foreignKey:ID;joinForeignKey:model_id;References:ID;joinReferences:role_id" json:"roles,omitempty"`
	Customers   []Customer   `gorm:"foreignKey:UserID" json:"-"`
	Wholesalers []Wholesaler `gorm:"foreignKey:UserID" json:"-"`
	Bills       []Bill       `gorm:"foreignKey:UserID" json:"-"`
	Payments    []Payment    `gorm:"foreignKey:UserID" json:"-"`
	Invoices    []Invoice    `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string { return "users" }

// HasRole reports whether any of the user's roles matches by name.
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// HasPermission reports whether any of the user's roles grants the permission.
func (u *User) HasPermission(permissionName string) bool {
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if permission.Name == permissionName {
				return true
			}
		}
	}
	return false
}

// GetPermissions flattens the user's roles into a deduplicated permission list.
func (u *User) GetPermissions() []string {
	seen := make(map[string]bool)
	var result []string
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if !seen[permission.Name] {
				seen[permission.Name] = true
				result = append(result, permission.Name)
			}
		}
	}
	return result
}
