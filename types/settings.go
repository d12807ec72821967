package types

// ForumSetting value is a bool for boolean settings and a string otherwise.
type ForumSetting struct {
	Value       any     `json:"value"`
	Type        *string `json:"type"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

type ForumSettingsMap map[string]ForumSetting

// Bool reports a boolean setting, false when missing or not a bool.
func (m ForumSettingsMap) Bool(key string) bool {
	b, _ := m[key].Value.(bool)
	return b
}
