package service

import (
	"Arena/dao/cache"
	"Arena/models"
	"Arena/types"
	"context"

	"github.com/sourcegraph/conc/iter"
	"golang.org/x/sync/errgroup"
)

// GetInitialCategoryData assembles a category page. An unknown slug yields
// nil category, topics and subcategories with settings still filled in.
func (s *PageService) GetInitialCategoryData(ctx context.Context, slug, subslug string, page, limit int) (*types.CategoryData, error) {
	page, limit = s.pageParams(page, limit)
	return cache.GetCachedData(ctx, s.cache, categoryKey(slug, subslug, page, limit), func(ctx context.Context) (*types.CategoryData, error) {
		return s.loadCategoryData(ctx, slug, subslug, page, limit)
	}, s.conf.CategoryPage())
}

func (s *PageService) loadCategoryData(ctx context.Context, slug, subslug string, page, limit int) (*types.CategoryData, error) {
	var (
		row      *models.Category
		settings types.ForumSettingsMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		row, err = s.resolveCategory(gctx, slug, subslug)
		return err
	})
	g.Go(func() (err error) {
		settings, err = s.forumSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &types.CategoryData{ForumSettings: settings}
	if row == nil {
		return data, nil
	}
	category := fromCategoryRow(*row)

	var (
		topics types.Paginated[types.Topic]
		subs   []types.CategoryWithActivity
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		topics, err = s.enrichedTopics(gctx, &category.ID, page, limit, "")
		return err
	})
	g.Go(func() (err error) {
		subs, err = s.subcategories(gctx, category.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.Category = &category
	data.Topics = &topics
	data.Subcategories = subs
	return data, nil
}

// resolveCategory finds slug, then subslug beneath it when given. Either
// missing resolves to nil.
func (s *PageService) resolveCategory(ctx context.Context, slug, subslug string) (*models.Category, error) {
	parent, err := s.backend.CategoryBySlug(ctx, slug, nil)
	if err != nil {
		return nil, s.fail(err, "categories.by_slug", map[string]any{"slug": slug})
	}
	if parent == nil || subslug == "" {
		return parent, nil
	}
	child, err := s.backend.CategoryBySlug(ctx, subslug, &parent.ID)
	if err != nil {
		return nil, s.fail(err, "categories.by_slug", map[string]any{"slug": subslug, "parent_category_id": parent.ID})
	}
	return child, nil
}

// subcategories lists direct children, each with its own activity
// aggregate.
func (s *PageService) subcategories(ctx context.Context, parentID string) ([]types.CategoryWithActivity, error) {
	rows, err := s.backend.Subcategories(ctx, parentID)
	if err != nil {
		return nil, s.fail(err, "categories.children", map[string]any{"parent_category_id": parentID})
	}
	out, err := iter.MapErr(rows, func(row *models.Category) (types.CategoryWithActivity, error) {
		stats, err := s.backend.CategoryStats(ctx, row.ID)
		if err != nil {
			return types.CategoryWithActivity{}, s.fail(err, "get_category_stats", map[string]any{"p_category_id": row.ID})
		}
		return withActivity(fromCategoryRow(*row), stats), nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.CategoryWithActivity{}
	}
	return out, nil
}
