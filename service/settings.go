package service

import (
	"Arena/models"
	"Arena/types"
)

const (
	settingTypeBoolean     = "boolean"
	categoryRequestEnabled = "category_request_enabled"
)

// normalizeSettings keys settings by name. Boolean settings get a real bool,
// other missing values become "". category_request_enabled defaults to on.
func normalizeSettings(rows []models.ForumSetting) types.ForumSettingsMap {
	out := make(types.ForumSettingsMap, len(rows)+1)
	for _, row := range rows {
		value := row.SettingValue.V
		if row.SettingType != nil && *row.SettingType == settingTypeBoolean {
			value = coerceBool(value)
		} else if value == nil {
			value = ""
		}
		out[row.SettingKey] = types.ForumSetting{
			Value:       value,
			Type:        row.SettingType,
			Category:    row.Category,
			Description: row.Description,
			IsPublic:    row.IsPublic,
		}
	}
	if _, ok := out[categoryRequestEnabled]; !ok {
		typ, category, public := settingTypeBoolean, "features", true
		out[categoryRequestEnabled] = types.ForumSetting{
			Value:    true,
			Type:     &typ,
			Category: &category,
			IsPublic: &public,
		}
	}
	return out
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}
