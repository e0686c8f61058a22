package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wholesaler represents a supplier the shop buys stock from on credit
type Wholesaler struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	ShopName       *string        `gorm:"size:255;column:shopname" json:"shopname,omitempty"`
	Email          *string        `gorm:"size:255" json:"email,omitempty"`
	Phone          *string        `gorm:"size:50" json:"phone,omitempty"`
	Address        *string        `gorm:"type:text" json:"address,omitempty"`
	OpeningBalance int64          `gorm:"default:0" json:"-"` // Signed, stored in cents; positive = shop owes the wholesaler
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (w Wholesaler) MarshalJSON() ([]byte, error) {
	type Alias Wholesaler
	return json.Marshal(&struct {
		Alias
		OpeningBalance float64 `json:"opening_balance"`
	}{
		Alias:          Alias(w),
		OpeningBalance: float64(w.OpeningBalance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new wholesaler
func (w *Wholesaler) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Wholesaler model
func (Wholesaler) TableName() string {
	return "wholesalers"
}
