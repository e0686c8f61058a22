package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill represents a single sale or purchase transaction against one ledger
// entity. Bills are immutable once created: there are no update or delete
// endpoints, and later settlements are recorded as Payment rows instead of
// edits to the bill.
type Bill struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	EntityID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"entity_id"`
	EntityType    enum.EntityType    `gorm:"size:50;not null" json:"entity_type"`
	BillType      enum.BillType      `gorm:"size:50;not null" json:"bill_type"`
	BillNo        string             `gorm:"size:100;unique;not null" json:"bill_no"`
	TotalAmount   int64              `gorm:"not null" json:"-"` // Stored in cents
	PaidAmount    int64              `gorm:"default:0" json:"-"` // Settlement recorded at creation time, in cents
	DueAmount     int64              `gorm:"default:0" json:"-"` // total - paid at creation, stored redundantly, in cents
	PaymentMethod enum.PaymentMethod `gorm:"size:50" json:"payment_method"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		PaidAmount  float64 `json:"paid_amount"`
		DueAmount   float64 `json:"due_amount"`
	}{
		Alias:       Alias(b),
		TotalAmount: float64(b.TotalAmount) / 100,
		PaidAmount:  float64(b.PaidAmount) / 100,
		DueAmount:   float64(b.DueAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}
