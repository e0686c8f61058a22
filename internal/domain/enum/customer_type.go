package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CustomerType separates due (credit) customers from walk-in customers.
// Walk-in customers are tracked only through their bills and carry no
// standing ledger.
type CustomerType string

const (
	CustomerTypeDue    CustomerType = "due"
	CustomerTypeWalkIn CustomerType = "walkin"
)

func (t CustomerType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known customer type
func (t CustomerType) IsValid() bool {
	return t == CustomerTypeDue || t == CustomerTypeWalkIn
}

func (t CustomerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = CustomerType(str)
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CustomerType) Scan(value interface{}) error {
	if value == nil {
		*t = CustomerTypeWalkIn
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CustomerType(v)
	case []byte:
		*t = CustomerType(string(v))
	}
	return nil
}
