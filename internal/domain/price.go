package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type Price struct {
	Amount float64   `json:"amount" validate:"gt=0,lte=1000000"`
	Unit   PriceUnit `json:"type" validate:"required,oneof=per_hour per_event per_person"`
}

// DefaultPrice is used when a confirmed event has no listing price to copy.
func DefaultPrice() Price {
	return Price{Amount: 0, Unit: PerEvent}
}

func (p Price) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Price) Scan(src any) error {
	return scanJSON(src, p)
}

type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r PriceRange) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *PriceRange) Scan(src any) error {
	return scanJSON(src, r)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported json column type")
	}
}
