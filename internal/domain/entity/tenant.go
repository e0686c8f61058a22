package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is one shop. Every financial record carries a TenantID and the
// repositories refuse to query without one.
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  TenantSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner   User               `gorm:"foreignKey:OwnerID" json:"-"`
	Members []TenantMembership `gorm:"foreignKey:TenantID" json:"-"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Tenant) TableName() string { return "tenants" }

// TenantMembership links a user to a shop with a membership role (owner,
// admin, member).
type TenantMembership struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"tenant_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	// Trimmed user profile for membership listings, filled by
	// PopulateUserDetails.
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

func (TenantMembership) TableName() string { return "tenant_memberships" }

// MemberUser is the subset of User exposed in membership responses.
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// PopulateUserDetails projects the preloaded User into MemberUser.
func (tm *TenantMembership) PopulateUserDetails() {
	if tm.User.ID == uuid.Nil {
		return
	}
	tm.MemberUser = &MemberUser{
		ID:        tm.User.ID,
		FirstName: tm.User.FirstName,
		LastName:  tm.User.LastName,
		Email:     tm.User.Email,
	}
}
