package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EntityType identifies which ledger party a bill or payment belongs to
type EntityType string

const (
	EntityTypeCustomer   EntityType = "customer"
	EntityTypeWholesaler EntityType = "wholesaler"
)

func (t EntityType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known entity type
func (t EntityType) IsValid() bool {
	return t == EntityTypeCustomer || t == EntityTypeWholesaler
}

// ParseEntityType converts a string into an EntityType, rejecting unknown values
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid entity type: %q", s)
	}
	return t, nil
}

func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *EntityType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = EntityType(str)
	return nil
}

func (t EntityType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *EntityType) Scan(value interface{}) error {
	if value == nil {
		*t = EntityTypeCustomer
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = EntityType(v)
	case []byte:
		*t = EntityType(string(v))
	}
	return nil
}
