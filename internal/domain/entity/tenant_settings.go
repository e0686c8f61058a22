package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// TenantSettings is the per-shop configuration blob stored as jsonb on the
// tenant row.
type TenantSettings struct {
	// Branding
	LogoURL      string `json:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`

	// Localization
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Locale     string `json:"locale,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Document numbering
	BillPrefix    string `json:"bill_prefix,omitempty"`
	InvoicePrefix string `json:"invoice_prefix,omitempty"`

	// Notifications
	EmailNotifications bool   `json:"email_notifications,omitempty"`
	SMSNotifications   bool   `json:"sms_notifications,omitempty"`
	WebhookURL         string `json:"webhook_url,omitempty"`

	Features TenantFeatures `json:"features,omitempty"`
}

// TenantFeatures flags optional modules per shop.
type TenantFeatures struct {
	EnableInvoicing bool `json:"invoicing"`
	EnableReports   bool `json:"reports"`
	EnableMultiUser bool `json:"multi_user"`
	EnableAPIAccess bool `json:"api_access"`
}

// DefaultTenantSettings are the settings new shops start with.
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:           "KES",
		Timezone:           "Africa/Nairobi",
		Locale:             "en-KE",
		DateFormat:         "DD/MM/YYYY",
		BillPrefix:         "BILL-",
		InvoicePrefix:      "INV-",
		EmailNotifications: true,
		Features: TenantFeatures{
			EnableInvoicing: true,
			EnableReports:   true,
			EnableMultiUser: true,
		},
	}
}

// Scan implements sql.Scanner so GORM can read the jsonb column.
func (ts *TenantSettings) Scan(value interface{}) error {
	if value == nil {
		*ts = TenantSettings{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan TenantSettings: unsupported type")
	}
	return json.Unmarshal(raw, ts)
}

// Value implements driver.Valuer for writing the jsonb column.
func (ts TenantSettings) Value() (driver.Value, error) {
	return json.Marshal(ts)
}
