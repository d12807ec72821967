package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ForumSetting struct {
	SettingKey   string       `gorm:"column:setting_key;primaryKey" json:"setting_key"`
	SettingValue SettingValue `gorm:"column:setting_value" json:"setting_value"`
	SettingType  *string      `gorm:"column:setting_type" json:"setting_type"`
	Category     *string      `gorm:"column:category" json:"category"`
	Description  *string      `gorm:"column:description" json:"description"`
	IsPublic     *bool        `gorm:"column:is_public" json:"is_public"`
}

func (ForumSetting) TableName() string {
	return "forum_settings"
}

// SettingValue keeps a raw setting value as the backend sent it: a string,
// a bool, a number, or nil.
type SettingValue struct {
	V any
}

func (s *SettingValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		s.V = nil
	case []byte:
		// json/jsonb columns arrive encoded; plain text columns do not
		if err := json.Unmarshal(v, &s.V); err != nil {
			s.V = string(v)
		}
	case int64:
		// numbers decode as float64 from JSON; keep both paths alike
		s.V = float64(v)
	case string, bool, float64:
		s.V = v
	default:
		return fmt.Errorf("unsupported setting value type %T", src)
	}
	return nil
}

func (s SettingValue) Value() (driver.Value, error) {
	if s.V == nil {
		return nil, nil
	}
	return fmt.Sprint(s.V), nil
}

func (s *SettingValue) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &s.V)
}

func (s SettingValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}
