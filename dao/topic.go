package dao

import (
	"Arena/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicDAO struct {
	Repo[models.Topic]
}

func NewTopicDAO(db *gorm.DB) *TopicDAO {
	return &TopicDAO{Repo: NewRepo[models.Topic](db)}
}

// FindBySlug 分类下按 slug 查找话题
func (d *TopicDAO) FindBySlug(ctx context.Context, categoryID, slug string) (*models.Topic, error) {
	return d.FindByWhere(ctx, "category_id = ? AND slug = ?", categoryID, slug)
}

// List reads visible topics sorted by a whitelisted column.
func (d *TopicDAO) List(ctx context.Context, q models.TopicQuery) ([]models.Topic, error) {
	topics := make([]models.Topic, 0, q.Limit)
	err := d.Db.WithContext(ctx).
		Where("is_hidden = ?", false).
		Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: !q.Ascending}).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&topics).Error
	return topics, err
}

func (d *TopicDAO) CountVisible(ctx context.Context) (int, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("is_hidden = ?", false).
		Count(&count).Error
	return int(count), err
}

func (d *TopicDAO) Enriched(ctx context.Context, categoryID *string, limit, offset int) ([]models.EnrichedTopicRow, error) {
	rows := make([]models.EnrichedTopicRow, 0, limit)
	err := d.Db.WithContext(ctx).
		Raw("SELECT * FROM get_enriched_topics(p_category_id => ?, p_limit => ?, p_offset => ?)", categoryID, limit, offset).
		Scan(&rows).Error
	return rows, err
}

func (d *TopicDAO) EnrichedCount(ctx context.Context, categoryID *string) (int, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Raw("SELECT get_enriched_topics_count(p_category_id => ?)", categoryID).
		Scan(&count).Error
	return int(count), err
}

func (d *TopicDAO) Hot(ctx context.Context, limit, offset int) ([]models.HotTopicRow, error) {
	rows := make([]models.HotTopicRow, 0, limit)
	err := d.Db.WithContext(ctx).
		Raw("SELECT * FROM get_hot_topics(limit_count => ?, offset_count => ?)", limit, offset).
		Scan(&rows).Error
	return rows, err
}

func (d *TopicDAO) HotCount(ctx context.Context) (int, error) {
	var count int64
	err := d.Db.WithContext(ctx).Raw("SELECT get_hot_topics_count()").Scan(&count).Error
	return int(count), err
}

func (d *TopicDAO) IncrementViewCount(ctx context.Context, topicID string) error {
	return d.Db.WithContext(ctx).Exec("SELECT increment_view_count(topic_id => ?)", topicID).Error
}
