package service

import (
	"Arena/dao/cache"
	"Arena/models"
	"Arena/types"
	"context"

	"golang.org/x/sync/errgroup"
)

// GetInitialForumData assembles the home page from seven independently
// cached entries fetched concurrently.
func (s *PageService) GetInitialForumData(ctx context.Context) (*types.ForumData, error) {
	var data types.ForumData
	limit := s.conf.HomeTopicLimit
	if limit < 1 {
		limit = s.conf.DefaultLimit
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.HotTopics, err = cache.GetCachedData(gctx, s.cache, keyHotTopics, func(ctx context.Context) (types.Paginated[types.HotTopic], error) {
			return s.hotTopics(ctx, 1, limit)
		}, s.conf.TopicList())
		return err
	})
	g.Go(func() (err error) {
		data.NewTopics, err = cache.GetCachedData(gctx, s.cache, keyNewTopics, func(ctx context.Context) (types.Paginated[types.Topic], error) {
			return s.enrichedTopics(ctx, nil, 1, limit, OrderCreatedAt)
		}, s.conf.TopicList())
		return err
	})
	g.Go(func() (err error) {
		data.TopTopics, err = cache.GetCachedData(gctx, s.cache, keyTopTopics, func(ctx context.Context) (types.Paginated[types.Topic], error) {
			return s.enrichedTopics(ctx, nil, 1, limit, OrderViewCount)
		}, s.conf.TopicList())
		return err
	})
	levels := []*[]types.CategoryWithActivity{&data.Level1Forums, &data.Level2Forums, &data.Level3Forums}
	for i, dst := range levels {
		level := i + 1
		g.Go(func() (err error) {
			*dst, err = cache.GetCachedData(gctx, s.cache, levelForumsKey(level), func(ctx context.Context) ([]types.CategoryWithActivity, error) {
				return s.categoriesByActivity(ctx, level)
			}, s.conf.Category())
			return err
		})
	}
	g.Go(func() (err error) {
		data.ForumSettings, err = s.forumSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *PageService) hotTopics(ctx context.Context, page, limit int) (types.Paginated[types.HotTopic], error) {
	var (
		rows  []models.HotTopicRow
		count int
	)
	offset := (page - 1) * limit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if rows, err = s.backend.HotTopics(gctx, limit, offset); err != nil {
			return s.fail(err, "get_hot_topics", map[string]any{"limit_count": limit, "offset_count": offset})
		}
		return nil
	})
	g.Go(func() (err error) {
		if count, err = s.backend.HotTopicsCount(gctx); err != nil {
			return s.fail(err, "get_hot_topics_count", nil)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Paginated[types.HotTopic]{}, err
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}
	topics := make([]types.HotTopic, 0, len(rows))
	for _, row := range rows {
		topics = append(topics, fromHotTopicsRow(row))
	}
	sortHotTopics(topics)
	return types.NewPaginated(topics, count, page, limit), nil
}
