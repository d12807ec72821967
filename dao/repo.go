package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repo carries the table-agnostic reads every DAO shares.
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// FindByWhere returns the first matching row, or nil when none matches.
func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	err := r.Db.WithContext(ctx).Where(where, args...).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindById(ctx context.Context, id string) (*T, error) {
	return r.FindByWhere(ctx, "id = ?", id)
}

func (r *Repo[T]) FindByIds(ctx context.Context, ids []string) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.Db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}
