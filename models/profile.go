package models

type Profile struct {
	ID        string  `gorm:"column:id;primaryKey" json:"id"`
	Username  *string `gorm:"column:username" json:"username"`
	AvatarURL *string `gorm:"column:avatar_url" json:"avatar_url"`
}

func (Profile) TableName() string {
	return "profiles"
}

// TemporaryUser is the session identity behind anonymous posts.
type TemporaryUser struct {
	ID          string  `gorm:"column:id;primaryKey" json:"id"`
	DisplayName *string `gorm:"column:display_name" json:"display_name"`
}

func (TemporaryUser) TableName() string {
	return "temporary_users"
}
