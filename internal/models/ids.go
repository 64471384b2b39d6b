package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The API and older persisted payloads carry ids as either JSON numbers
// or strings. All id types normalize to a canonical string at the
// decoding boundary so the rest of the module compares them with plain
// equality.
type (
	ProductID  string
	CategoryID string
	OrderID    string
	UserID     string
)

func (id ProductID) String() string  { return string(id) }
func (id CategoryID) String() string { return string(id) }
func (id OrderID) String() string    { return string(id) }
func (id UserID) String() string     { return string(id) }

func (id *ProductID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexibleID(data)
	if err != nil {
		return err
	}

	*id = ProductID(s)

	return nil
}

func (id *CategoryID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexibleID(data)
	if err != nil {
		return err
	}

	*id = CategoryID(s)

	return nil
}

func (id *OrderID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexibleID(data)
	if err != nil {
		return err
	}

	*id = OrderID(s)

	return nil
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexibleID(data)
	if err != nil {
		return err
	}

	*id = UserID(s)

	return nil
}

func decodeFlexibleID(data []byte) (string, error) {
	trimmed := strings.TrimSpace(string(data))

	if trimmed == "null" {
		return "", nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}

		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}

	return n.String(), nil
}

// NormalizeProductID coerces any id representation the UI layer may hand
// over (int, int64, float64, string, ProductID) into the canonical form.
func NormalizeProductID(id any) ProductID {
	switch v := id.(type) {
	case ProductID:
		return v
	case string:
		return ProductID(v)
	case int:
		return ProductID(strconv.Itoa(v))
	case int64:
		return ProductID(strconv.FormatInt(v, 10))
	case float64:
		return ProductID(strconv.FormatFloat(v, 'f', -1, 64))
	case json.Number:
		return ProductID(v.String())
	default:
		return ""
	}
}
