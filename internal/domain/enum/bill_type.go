package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BillType distinguishes a sale to a customer from a purchase off a wholesaler
type BillType string

const (
	BillTypeSale     BillType = "sale"
	BillTypePurchase BillType = "purchase"
)

func (t BillType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known bill type
func (t BillType) IsValid() bool {
	return t == BillTypeSale || t == BillTypePurchase
}

// ParseBillType converts a string into a BillType, rejecting unknown values
func ParseBillType(s string) (BillType, error) {
	t := BillType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid bill type: %q", s)
	}
	return t, nil
}

func (t BillType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *BillType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = BillType(str)
	return nil
}

func (t BillType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *BillType) Scan(value interface{}) error {
	if value == nil {
		*t = BillTypeSale
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = BillType(v)
	case []byte:
		*t = BillType(string(v))
	}
	return nil
}
