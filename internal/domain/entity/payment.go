package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment represents a settlement transaction against one ledger entity.
// Payments are append-only: there are no edit or delete endpoints.
//
// Every settlement in the system is a Payment row. When a bill is created
// with an up-front settlement, a Payment carrying that bill's ID is written
// in the same transaction, so summing Payment rows never undercounts. BillID
// is informational only; balance reconciliation never depends on it.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	EntityID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"entity_id"`
	EntityType    enum.EntityType    `gorm:"size:50;not null" json:"entity_type"`
	BillID        *uuid.UUID         `gorm:"type:uuid;index" json:"bill_id,omitempty"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents
	PaymentMethod enum.PaymentMethod `gorm:"size:50" json:"payment_method"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Bill   *Bill  `gorm:"foreignKey:BillID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
