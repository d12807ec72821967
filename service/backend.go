package service

import (
	"Arena/models"
	"context"
)

// Backend is the hosted database as the page assemblers see it. Single-row
// reads return (nil, nil) when no row matches; any other failure is an
// error.
type Backend interface {
	// get_enriched_topics(p_category_id, p_limit, p_offset)
	EnrichedTopics(ctx context.Context, categoryID *string, limit, offset int) ([]models.EnrichedTopicRow, error)
	// get_enriched_topics_count(p_category_id)
	EnrichedTopicsCount(ctx context.Context, categoryID *string) (int, error)
	// get_hot_topics(limit_count, offset_count)
	HotTopics(ctx context.Context, limit, offset int) ([]models.HotTopicRow, error)
	// get_hot_topics_count()
	HotTopicsCount(ctx context.Context) (int, error)
	// get_categories_by_activity(p_parent_category_id, p_category_level)
	CategoriesByActivity(ctx context.Context, parentID *string, level *int) ([]models.CategoryActivityRow, error)
	// get_category_stats(p_category_id)
	CategoryStats(ctx context.Context, categoryID string) (*models.CategoryStats, error)
	// increment_view_count(topic_id)
	IncrementViewCount(ctx context.Context, topicID string) error

	CategoriesByLevel(ctx context.Context, level int) ([]models.Category, error)
	// CategoryBySlug matches any level when parentID is nil, preferring the
	// shallowest category.
	CategoryBySlug(ctx context.Context, slug string, parentID *string) (*models.Category, error)
	CategoryByID(ctx context.Context, id string) (*models.Category, error)
	CategoriesByIDs(ctx context.Context, ids []string) ([]models.Category, error)
	Subcategories(ctx context.Context, parentID string) ([]models.Category, error)

	TopicByID(ctx context.Context, id string) (*models.Topic, error)
	TopicBySlug(ctx context.Context, categoryID, slug string) (*models.Topic, error)
	ListTopics(ctx context.Context, q models.TopicQuery) ([]models.Topic, error)
	CountTopics(ctx context.Context) (int, error)

	LatestApprovedPost(ctx context.Context, topicID string) (*models.Post, error)
	ApprovedPosts(ctx context.Context, topicID string, limit, offset int) ([]models.Post, error)
	CountApprovedPosts(ctx context.Context, topicID string) (int, error)
	PostsByIDs(ctx context.Context, ids []string) ([]models.Post, error)

	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
	ProfilesByIDs(ctx context.Context, ids []string) ([]models.Profile, error)
	TemporaryUsersByIDs(ctx context.Context, ids []string) ([]models.TemporaryUser, error)

	ForumSettings(ctx context.Context) ([]models.ForumSetting, error)
}
