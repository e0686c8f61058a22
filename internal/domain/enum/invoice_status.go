package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusDraft  InvoiceStatus = 0
	InvoiceStatusIssued InvoiceStatus = 1
	InvoiceStatusVoid   InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Draft", "Issued", "Void"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

// ParseInvoiceStatus converts a string to an InvoiceStatus
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch strings.ToLower(s) {
	case "draft":
		return InvoiceStatusDraft, nil
	case "issued":
		return InvoiceStatusIssued, nil
	case "void":
		return InvoiceStatusVoid, nil
	default:
		return InvoiceStatusDraft, fmt.Errorf("invalid invoice status: %s", s)
	}
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = InvoiceStatusDraft
	case "Issued":
		*s = InvoiceStatusIssued
	case "Void":
		*s = InvoiceStatusVoid
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
