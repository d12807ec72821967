package service

import (
	"Arena/config"
	"Arena/dao/cache"
	"Arena/models"
	"Arena/pkg/errtrack"
	"Arena/pkg/log"
	"Arena/types"
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ IPageService = (*PageService)(nil)

type IPageService interface {
	GetInitialForumData(ctx context.Context) (*types.ForumData, error)
	GetInitialCategoryData(ctx context.Context, slug, subslug string, page, limit int) (*types.CategoryData, error)
	GetInitialTopicData(ctx context.Context, lookup TopicLookup, page, limit int) (*types.TopicData, error)
	GetInitialTopicsPageData(ctx context.Context, page, limit int, orderBy string, ascending bool) (*types.TopicsPageData, error)
	GetInitialCategoriesPageData(ctx context.Context) (*types.CategoriesPageData, error)
	GetInitialSidebarData(ctx context.Context) (*types.SidebarData, error)
}

const viewCountTimeout = 5 * time.Second

// PageService assembles the read model of each server-rendered page. Every
// assembler is one or more read-through cache entries over Backend.
type PageService struct {
	conf     *config.Cache
	backend  Backend
	cache    *cache.PageCache
	reporter errtrack.Reporter

	background conc.WaitGroup
}

func NewPageService(conf *config.Config, backend Backend, pageCache *cache.PageCache, reporter errtrack.Reporter) *PageService {
	c := conf.Cache
	if c == nil {
		c = config.Default().Cache
	}
	return &PageService{
		conf:     c,
		backend:  backend,
		cache:    pageCache,
		reporter: errtrack.Safe(reporter),
	}
}

// Wait blocks until background view-count increments have finished.
func (s *PageService) Wait() {
	s.background.Wait()
}

func (s *PageService) pageParams(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > s.conf.MaxLimit {
		limit = s.conf.DefaultLimit
	}
	return page, limit
}

// fail reports a backend failure with the failing call and its parameters
// and returns it wrapped.
func (s *PageService) fail(err error, rpc string, params map[string]any) error {
	s.reporter.CaptureException(err, errtrack.Options{
		Level: errtrack.LevelError,
		Tags: map[string]string{
			"component": "page_service",
			"rpc":       rpc,
		},
		Extra: params,
	})
	return fmt.Errorf("%s: %w", rpc, err)
}

func (s *PageService) forumSettings(ctx context.Context) (types.ForumSettingsMap, error) {
	return cache.GetCachedData(ctx, s.cache, keyForumSettings, func(ctx context.Context) (types.ForumSettingsMap, error) {
		rows, err := s.backend.ForumSettings(ctx)
		if err != nil {
			return nil, s.fail(err, "forum_settings", nil)
		}
		return normalizeSettings(rows), nil
	}, s.conf.Settings())
}

// enrichedTopics reads one page of get_enriched_topics and its count in
// parallel. A non-empty orderBy re-sorts the page descending.
func (s *PageService) enrichedTopics(ctx context.Context, categoryID *string, page, limit int, orderBy string) (types.Paginated[types.Topic], error) {
	var (
		rows  []models.EnrichedTopicRow
		count int
	)
	offset := (page - 1) * limit
	params := map[string]any{"p_category_id": categoryID, "p_limit": limit, "p_offset": offset}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if rows, err = s.backend.EnrichedTopics(gctx, categoryID, limit, offset); err != nil {
			return s.fail(err, "get_enriched_topics", params)
		}
		return nil
	})
	g.Go(func() (err error) {
		if count, err = s.backend.EnrichedTopicsCount(gctx, categoryID); err != nil {
			return s.fail(err, "get_enriched_topics_count", map[string]any{"p_category_id": categoryID})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Paginated[types.Topic]{}, err
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}
	topics := make([]types.Topic, 0, len(rows))
	for _, row := range rows {
		topics = append(topics, fromEnrichedTopicsRow(row))
	}
	if orderBy != "" {
		sortTopics(topics, orderBy, false)
	}
	return types.NewPaginated(topics, count, page, limit), nil
}

func (s *PageService) categoriesByActivity(ctx context.Context, level int) ([]types.CategoryWithActivity, error) {
	rows, err := s.backend.CategoriesByActivity(ctx, nil, &level)
	if err != nil {
		return nil, s.fail(err, "get_categories_by_activity", map[string]any{"p_category_level": level})
	}
	return fromActivityRows(rows), nil
}

// bumpViewCount records a page view without holding up the response. Its
// failure is reported and otherwise ignored.
func (s *PageService) bumpViewCount(ctx context.Context, topicID string) {
	ctx = context.WithoutCancel(ctx)
	s.background.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, viewCountTimeout)
		defer cancel()
		if err := s.backend.IncrementViewCount(ctx, topicID); err != nil {
			log.L.Warn("increment view count", zap.String("topic_id", topicID), zap.Error(err))
			_ = s.fail(err, "increment_view_count", map[string]any{"topic_id": topicID})
		}
	})
}
