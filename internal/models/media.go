package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Media points at an asset on the external media host
type Media struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// MediaList stores a set of media attachments as a JSON column
type MediaList []Media

func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *MediaList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}
