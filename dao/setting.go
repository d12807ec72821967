package dao

import (
	"Arena/models"
	"context"

	"gorm.io/gorm"
)

type ForumSettingDAO struct {
	Repo[models.ForumSetting]
}

func NewForumSettingDAO(db *gorm.DB) *ForumSettingDAO {
	return &ForumSettingDAO{Repo: NewRepo[models.ForumSetting](db)}
}

func (d *ForumSettingDAO) All(ctx context.Context) ([]models.ForumSetting, error) {
	settings := make([]models.ForumSetting, 0)
	err := d.Db.WithContext(ctx).Order("setting_key ASC").Find(&settings).Error
	return settings, err
}
