package service

import (
	"Arena/dao/cache"
	"Arena/models"
	"Arena/types"
	"context"

	"golang.org/x/sync/errgroup"
)

// GetInitialTopicsPageData assembles the topic index, sorted server-side by
// orderBy. Unknown columns sort by created_at.
func (s *PageService) GetInitialTopicsPageData(ctx context.Context, page, limit int, orderBy string, ascending bool) (*types.TopicsPageData, error) {
	page, limit = s.pageParams(page, limit)
	orderBy = normalizeOrderBy(orderBy)
	key := topicsPageKey(page, limit, orderBy, ascending)
	return cache.GetCachedData(ctx, s.cache, key, func(ctx context.Context) (*types.TopicsPageData, error) {
		return s.loadTopicsPageData(ctx, models.TopicQuery{
			OrderBy:   orderBy,
			Ascending: ascending,
			Limit:     limit,
			Offset:    (page - 1) * limit,
		}, page)
	}, s.conf.TopicList())
}

func (s *PageService) loadTopicsPageData(ctx context.Context, q models.TopicQuery, page int) (*types.TopicsPageData, error) {
	var (
		rows     []models.Topic
		count    int
		settings types.ForumSettingsMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if rows, err = s.backend.ListTopics(gctx, q); err != nil {
			return s.fail(err, "topics.list", map[string]any{"order_by": q.OrderBy, "ascending": q.Ascending, "limit": q.Limit, "offset": q.Offset})
		}
		return nil
	})
	g.Go(func() (err error) {
		if count, err = s.backend.CountTopics(gctx); err != nil {
			return s.fail(err, "topics.count", nil)
		}
		return nil
	})
	g.Go(func() (err error) {
		settings, err = s.forumSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	var (
		profiles   []models.Profile
		categories []models.Category
	)
	authorIDs := distinct(rows, func(t models.Topic) *string { return t.AuthorID })
	categoryIDs := distinct(rows, func(t models.Topic) *string { return &t.CategoryID })

	g, gctx = errgroup.WithContext(ctx)
	if len(authorIDs) > 0 {
		g.Go(func() (err error) {
			if profiles, err = s.backend.ProfilesByIDs(gctx, authorIDs); err != nil {
				return s.fail(err, "profiles.by_ids", map[string]any{"ids": authorIDs})
			}
			return nil
		})
	}
	if len(categoryIDs) > 0 {
		g.Go(func() (err error) {
			if categories, err = s.backend.CategoriesByIDs(gctx, categoryIDs); err != nil {
				return s.fail(err, "categories.by_ids", map[string]any{"ids": categoryIDs})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byAuthor := indexBy(profiles, func(p models.Profile) string { return p.ID })
	byCategory := indexBy(categories, func(c models.Category) string { return c.ID })
	topics := make([]types.Topic, 0, len(rows))
	for _, row := range rows {
		topics = append(topics, fromRawTableRow(row, byAuthor, byCategory))
	}
	return &types.TopicsPageData{
		Topics:        types.NewPaginated(topics, count, page, q.Limit),
		ForumSettings: settings,
	}, nil
}

// GetInitialCategoriesPageData lists every category by level.
func (s *PageService) GetInitialCategoriesPageData(ctx context.Context) (*types.CategoriesPageData, error) {
	return cache.GetCachedData(ctx, s.cache, keyCategoriesPage, s.loadCategoriesPageData, s.conf.Category())
}

func (s *PageService) loadCategoriesPageData(ctx context.Context) (*types.CategoriesPageData, error) {
	var data types.CategoriesPageData
	g, gctx := errgroup.WithContext(ctx)
	levels := []*[]types.Category{&data.Level1Categories, &data.Level2Categories, &data.Level3Categories}
	for i, dst := range levels {
		level := i + 1
		g.Go(func() error {
			rows, err := s.backend.CategoriesByLevel(gctx, level)
			if err != nil {
				return s.fail(err, "categories.by_level", map[string]any{"level": level})
			}
			*dst = fromCategoryRows(rows)
			return nil
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

// GetInitialSidebarData lists level 1 and 2 forums by recent activity.
func (s *PageService) GetInitialSidebarData(ctx context.Context) (*types.SidebarData, error) {
	return cache.GetCachedData(ctx, s.cache, keySidebar, s.loadSidebarData, s.conf.Sidebar())
}

func (s *PageService) loadSidebarData(ctx context.Context) (*types.SidebarData, error) {
	var data types.SidebarData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Level1Forums, err = s.categoriesByActivity(gctx, 1)
		return err
	})
	g.Go(func() (err error) {
		data.Level2Forums, err = s.categoriesByActivity(gctx, 2)
		return err
	})
	g.Go(func() (err error) {
		data.ForumSettings, err = s.forumSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}
