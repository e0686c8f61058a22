package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is the printable document issued for a bill. The bill stays the
// financial record; voiding an invoice does not touch the ledger.
type Invoice struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	BillID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"bill_id"`
	InvoiceNo string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	Status    enum.InvoiceStatus `gorm:"default:0" json:"status"`
	IssuedAt  *time.Time         `json:"issued_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Bill   Bill   `gorm:"foreignKey:BillID" json:"bill,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
