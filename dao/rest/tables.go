package rest

import (
	"Arena/models"
	"context"
	"strconv"

	"github.com/supabase-community/postgrest-go"
)

const approved = "approved"

var (
	asc  = &postgrest.OrderOpts{Ascending: true}
	desc = &postgrest.OrderOpts{Ascending: false}
)

func first[T any](rows []T) *T {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

func (s *Store) CategoriesByLevel(ctx context.Context, level int) ([]models.Category, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	rows := make([]models.Category, 0)
	_, err := s.client.From("categories").
		Select("*", "", false).
		Eq("level", strconv.Itoa(level)).
		Order("sort_order", asc).
		Order("name", asc).
		ExecuteTo(&rows)
	return rows, wrap(err)
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string, parentID *string) (*models.Category, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	var rows []models.Category
	q := s.client.From("categories").Select("*", "", false).Eq("slug", slug)
	if parentID != nil {
		q = q.Eq("parent_category_id", *parentID)
	}
	_, err := q.Order("level", asc).Limit(1, "").ExecuteTo(&rows)
	if err = wrap(err); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return first(rows), nil
}

func (s *Store) CategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return byID[models.Category](ctx, s, "categories", id)
}

func (s *Store) CategoriesByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	return byIDs[models.Category](ctx, s, "categories", ids)
}

func (s *Store) Subcategories(ctx context.Context, parentID string) ([]models.Category, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	rows := make([]models.Category, 0)
	_, err := s.client.From("categories").
		Select("*", "", false).
		Eq("parent_category_id", parentID).
		Order("sort_order", asc).
		Order("name", asc).
		ExecuteTo(&rows)
	return rows, wrap(err)
}

func (s *Store) TopicByID(ctx context.Context, id string) (*models.Topic, error) {
	return byID[models.Topic](ctx, s, "topics", id)
}

func (s *Store) TopicBySlug(ctx context.Context, categoryID, slug string) (*models.Topic, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	var rows []models.Topic
	_, err := s.client.From("topics").
		Select("*", "", false).
		Eq("category_id", categoryID).
		Eq("slug", slug).
		Limit(1, "").
		ExecuteTo(&rows)
	if err = wrap(err); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return first(rows), nil
}

func (s *Store) ListTopics(ctx context.Context, q models.TopicQuery) ([]models.Topic, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	order := desc
	if q.Ascending {
		order = asc
	}
	rows := make([]models.Topic, 0, q.Limit)
	_, err := s.client.From("topics").
		Select("*", "", false).
		Eq("is_hidden", "false").
		Order(q.OrderBy, order).
		Range(q.Offset, q.Offset+q.Limit-1, "").
		ExecuteTo(&rows)
	return rows, wrap(err)
}

func (s *Store) CountTopics(ctx context.Context) (int, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	_, count, err := s.client.From("topics").
		Select("id", "exact", true).
		Eq("is_hidden", "false").
		Execute()
	return int(count), wrap(err)
}

func (s *Store) LatestApprovedPost(ctx context.Context, topicID string) (*models.Post, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	var rows []models.Post
	_, err := s.client.From("posts").
		Select("*", "", false).
		Eq("topic_id", topicID).
		Eq("moderation_status", approved).
		Order("created_at", desc).
		Limit(1, "").
		ExecuteTo(&rows)
	if err = wrap(err); err != nil {
		return nil, err
	}
	return first(rows), nil
}

func (s *Store) ApprovedPosts(ctx context.Context, topicID string, limit, offset int) ([]models.Post, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	rows := make([]models.Post, 0, limit)
	_, err := s.client.From("posts").
		Select("*", "", false).
		Eq("topic_id", topicID).
		Eq("moderation_status", approved).
		Order("created_at", asc).
		Range(offset, offset+limit-1, "").
		ExecuteTo(&rows)
	return rows, wrap(err)
}

func (s *Store) CountApprovedPosts(ctx context.Context, topicID string) (int, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	_, count, err := s.client.From("posts").
		Select("id", "exact", true).
		Eq("topic_id", topicID).
		Eq("moderation_status", approved).
		Execute()
	return int(count), wrap(err)
}

func (s *Store) PostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	return byIDs[models.Post](ctx, s, "posts", ids)
}

func (s *Store) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return byID[models.Profile](ctx, s, "profiles", id)
}

func (s *Store) ProfilesByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	return byIDs[models.Profile](ctx, s, "profiles", ids)
}

func (s *Store) TemporaryUsersByIDs(ctx context.Context, ids []string) ([]models.TemporaryUser, error) {
	return byIDs[models.TemporaryUser](ctx, s, "temporary_users", ids)
}

func byID[T any](ctx context.Context, s *Store, table, id string) (*T, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	var rows []T
	_, err := s.client.From(table).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows)
	if err = wrap(err); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return first(rows), nil
}

func byIDs[T any](ctx context.Context, s *Store, table string, ids []string) ([]T, error) {
	rows := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return rows, nil
	}
	if err := alive(ctx); err != nil {
		return nil, err
	}
	_, err := s.client.From(table).Select("*", "", false).In("id", ids).ExecuteTo(&rows)
	return rows, wrap(err)
}
