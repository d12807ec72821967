package dao

import (
	"Arena/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoryDAO struct {
	Repo[models.Category]
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{Repo: NewRepo[models.Category](db)}
}

func (d *CategoryDAO) FindByLevel(ctx context.Context, level int) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := d.Db.WithContext(ctx).
		Where("level = ?", level).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// FindBySlug prefers the shallowest match when parentID is nil.
func (d *CategoryDAO) FindBySlug(ctx context.Context, slug string, parentID *string) (*models.Category, error) {
	var category models.Category
	tx := d.Db.WithContext(ctx).Where("slug = ?", slug)
	if parentID != nil {
		tx = tx.Where("parent_category_id = ?", *parentID)
	}
	err := tx.Order("level ASC").Take(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *CategoryDAO) FindChildren(ctx context.Context, parentID string) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := d.Db.WithContext(ctx).
		Where("parent_category_id = ?", parentID).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (d *CategoryDAO) ByActivity(ctx context.Context, parentID *string, level *int) ([]models.CategoryActivityRow, error) {
	rows := make([]models.CategoryActivityRow, 0)
	err := d.Db.WithContext(ctx).
		Raw("SELECT * FROM get_categories_by_activity(p_parent_category_id => ?, p_category_level => ?)", parentID, level).
		Scan(&rows).Error
	return rows, err
}

// Stats returns nil when the aggregate produced no row.
func (d *CategoryDAO) Stats(ctx context.Context, categoryID string) (*models.CategoryStats, error) {
	var stats models.CategoryStats
	tx := d.Db.WithContext(ctx).
		Raw("SELECT * FROM get_category_stats(p_category_id => ?)", categoryID).
		Scan(&stats)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &stats, nil
}
