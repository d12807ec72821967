package dao

import (
	"Arena/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

const approved = "approved"

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{Repo: NewRepo[models.Post](db)}
}

func (d *PostDAO) approvedIn(ctx context.Context, topicID string) *gorm.DB {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("topic_id = ? AND moderation_status = ?", topicID, approved)
}

// Latest 话题最新一条已审核回复
func (d *PostDAO) Latest(ctx context.Context, topicID string) (*models.Post, error) {
	var post models.Post
	err := d.approvedIn(ctx, topicID).Order("created_at DESC").Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (d *PostDAO) Approved(ctx context.Context, topicID string, limit, offset int) ([]models.Post, error) {
	posts := make([]models.Post, 0, limit)
	err := d.approvedIn(ctx, topicID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (d *PostDAO) CountApproved(ctx context.Context, topicID string) (int, error) {
	var count int64
	err := d.approvedIn(ctx, topicID).Count(&count).Error
	return int(count), err
}
