package dao

import (
	"Arena/models"

	"gorm.io/gorm"
)

type ProfileDAO struct {
	Repo[models.Profile]
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{Repo: NewRepo[models.Profile](db)}
}

type TemporaryUserDAO struct {
	Repo[models.TemporaryUser]
}

func NewTemporaryUserDAO(db *gorm.DB) *TemporaryUserDAO {
	return &TemporaryUserDAO{Repo: NewRepo[models.TemporaryUser](db)}
}
