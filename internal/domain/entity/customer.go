package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a shop customer. Due customers carry a standing ledger
// (opening balance, bills, payments); walk-in customers are tracked only
// through their bill records.
type Customer struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Type           enum.CustomerType `gorm:"size:50;default:'walkin'" json:"type"`
	Email          *string           `gorm:"size:255" json:"email,omitempty"`
	Phone          *string           `gorm:"size:50" json:"phone,omitempty"`
	Address        *string           `gorm:"type:text" json:"address,omitempty"`
	Photo          *string           `gorm:"size:255" json:"photo,omitempty"`
	OpeningBalance int64             `gorm:"default:0" json:"-"` // Signed, stored in cents; positive = customer owes the shop
	IsActive       bool              `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		OpeningBalance float64 `json:"opening_balance"`
	}{
		Alias:          Alias(c),
		OpeningBalance: float64(c.OpeningBalance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasLedger reports whether balance figures are meaningful for this customer.
// Walk-in customers have no standing ledger.
func (c *Customer) HasLedger() bool {
	return c.Type == enum.CustomerTypeDue
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
