package dao

import (
	"Arena/models"
	"Arena/service"
	"context"

	"gorm.io/gorm"
)

var _ service.Backend = (*Store)(nil)

// Store serves the page assemblers straight from Postgres. RPCs are the
// same database functions the REST backend calls.
type Store struct {
	Topics         *TopicDAO
	Categories     *CategoryDAO
	Posts          *PostDAO
	Profiles       *ProfileDAO
	TemporaryUsers *TemporaryUserDAO
	Settings       *ForumSettingDAO
}

func (s *Store) EnrichedTopics(ctx context.Context, categoryID *string, limit, offset int) ([]models.EnrichedTopicRow, error) {
	return s.Topics.Enriched(ctx, categoryID, limit, offset)
}

func (s *Store) EnrichedTopicsCount(ctx context.Context, categoryID *string) (int, error) {
	return s.Topics.EnrichedCount(ctx, categoryID)
}

func (s *Store) HotTopics(ctx context.Context, limit, offset int) ([]models.HotTopicRow, error) {
	return s.Topics.Hot(ctx, limit, offset)
}

func (s *Store) HotTopicsCount(ctx context.Context) (int, error) {
	return s.Topics.HotCount(ctx)
}

func (s *Store) CategoriesByActivity(ctx context.Context, parentID *string, level *int) ([]models.CategoryActivityRow, error) {
	return s.Categories.ByActivity(ctx, parentID, level)
}

func (s *Store) CategoryStats(ctx context.Context, categoryID string) (*models.CategoryStats, error) {
	return s.Categories.Stats(ctx, categoryID)
}

func (s *Store) IncrementViewCount(ctx context.Context, topicID string) error {
	return s.Topics.IncrementViewCount(ctx, topicID)
}

func (s *Store) CategoriesByLevel(ctx context.Context, level int) ([]models.Category, error) {
	return s.Categories.FindByLevel(ctx, level)
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string, parentID *string) (*models.Category, error) {
	return s.Categories.FindBySlug(ctx, slug, parentID)
}

func (s *Store) CategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return s.Categories.FindById(ctx, id)
}

func (s *Store) CategoriesByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	return s.Categories.FindByIds(ctx, ids)
}

func (s *Store) Subcategories(ctx context.Context, parentID string) ([]models.Category, error) {
	return s.Categories.FindChildren(ctx, parentID)
}

func (s *Store) TopicByID(ctx context.Context, id string) (*models.Topic, error) {
	return s.Topics.FindById(ctx, id)
}

func (s *Store) TopicBySlug(ctx context.Context, categoryID, slug string) (*models.Topic, error) {
	return s.Topics.FindBySlug(ctx, categoryID, slug)
}

func (s *Store) ListTopics(ctx context.Context, q models.TopicQuery) ([]models.Topic, error) {
	return s.Topics.List(ctx, q)
}

func (s *Store) CountTopics(ctx context.Context) (int, error) {
	return s.Topics.CountVisible(ctx)
}

func (s *Store) LatestApprovedPost(ctx context.Context, topicID string) (*models.Post, error) {
	return s.Posts.Latest(ctx, topicID)
}

func (s *Store) ApprovedPosts(ctx context.Context, topicID string, limit, offset int) ([]models.Post, error) {
	return s.Posts.Approved(ctx, topicID, limit, offset)
}

func (s *Store) CountApprovedPosts(ctx context.Context, topicID string) (int, error) {
	return s.Posts.CountApproved(ctx, topicID)
}

func (s *Store) PostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	return s.Posts.FindByIds(ctx, ids)
}

func (s *Store) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.Profiles.FindById(ctx, id)
}

func (s *Store) ProfilesByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	return s.Profiles.FindByIds(ctx, ids)
}

func (s *Store) TemporaryUsersByIDs(ctx context.Context, ids []string) ([]models.TemporaryUser, error) {
	return s.TemporaryUsers.FindByIds(ctx, ids)
}

func (s *Store) ForumSettings(ctx context.Context) ([]models.ForumSetting, error) {
	return s.Settings.All(ctx)
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Topics:         NewTopicDAO(db),
		Categories:     NewCategoryDAO(db),
		Posts:          NewPostDAO(db),
		Profiles:       NewProfileDAO(db),
		TemporaryUsers: NewTemporaryUserDAO(db),
		Settings:       NewForumSettingDAO(db),
	}
}
