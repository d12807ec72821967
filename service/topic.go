package service

import (
	"Arena/dao/cache"
	"Arena/models"
	"Arena/types"
	"context"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// GetInitialTopicData assembles a topic page. Every resolved topic counts a
// view, cache hits included.
func (s *PageService) GetInitialTopicData(ctx context.Context, lookup TopicLookup, page, limit int) (*types.TopicData, error) {
	page, limit = s.pageParams(page, limit)
	data, err := cache.GetCachedData(ctx, s.cache, topicKey(lookup, page, limit), func(ctx context.Context) (*types.TopicData, error) {
		return s.loadTopicData(ctx, lookup, page, limit)
	}, s.conf.TopicPage())
	if err != nil {
		return nil, err
	}
	if data != nil && data.Topic != nil {
		s.bumpViewCount(ctx, data.Topic.ID)
	}
	return data, nil
}

func (s *PageService) loadTopicData(ctx context.Context, lookup TopicLookup, page, limit int) (*types.TopicData, error) {
	var (
		row      *models.Topic
		settings types.ForumSettingsMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		row, err = s.resolveTopic(gctx, lookup)
		return err
	})
	g.Go(func() (err error) {
		settings, err = s.forumSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &types.TopicData{ForumSettings: settings}
	if row == nil {
		return data, nil
	}

	var (
		author   *models.Profile
		category *models.Category
		lastPost *models.Post
		posts    types.Paginated[types.Post]
	)
	g, gctx = errgroup.WithContext(ctx)
	if row.AuthorID != nil {
		g.Go(func() (err error) {
			if author, err = s.backend.ProfileByID(gctx, *row.AuthorID); err != nil {
				return s.fail(err, "profiles.by_id", map[string]any{"id": *row.AuthorID})
			}
			return nil
		})
	}
	g.Go(func() (err error) {
		if category, err = s.backend.CategoryByID(gctx, row.CategoryID); err != nil {
			return s.fail(err, "categories.by_id", map[string]any{"id": row.CategoryID})
		}
		return nil
	})
	if intOrZero(row.ReplyCount) > 0 {
		g.Go(func() (err error) {
			if lastPost, err = s.backend.LatestApprovedPost(gctx, row.ID); err != nil {
				return s.fail(err, "posts.latest", map[string]any{"topic_id": row.ID})
			}
			return nil
		})
	}
	g.Go(func() (err error) {
		posts, err = s.topicPosts(gctx, row.ID, page, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	topic := fromRawTableRow(*row, nil, nil)
	topic.Profiles = profileOf(author)
	topic.Categories = categorySummaryOf(category)
	if lastPost != nil {
		topic.LastPostID = &lastPost.ID
	}
	data.Topic = &topic
	data.Posts = &posts
	return data, nil
}

// resolveTopic looks a topic up by legacy id or by its slug path. Ids that
// are not UUIDs cannot exist and resolve to nil without a query.
func (s *PageService) resolveTopic(ctx context.Context, lookup TopicLookup) (*models.Topic, error) {
	if lookup.ID != "" {
		if _, err := uuid.Parse(lookup.ID); err != nil {
			return nil, nil
		}
		row, err := s.backend.TopicByID(ctx, lookup.ID)
		if err != nil {
			return nil, s.fail(err, "topics.by_id", map[string]any{"id": lookup.ID})
		}
		return row, nil
	}

	category, err := s.resolveCategory(ctx, lookup.CategorySlug, lookup.SubcategorySlug)
	if err != nil || category == nil {
		return nil, err
	}
	row, err := s.backend.TopicBySlug(ctx, category.ID, lookup.TopicSlug)
	if err != nil {
		return nil, s.fail(err, "topics.by_slug", map[string]any{"category_id": category.ID, "slug": lookup.TopicSlug})
	}
	return row, nil
}

// topicPosts reads one page of approved posts, oldest first, with authors,
// guest names and replied-to posts resolved in bulk.
func (s *PageService) topicPosts(ctx context.Context, topicID string, page, limit int) (types.Paginated[types.Post], error) {
	var (
		rows  []models.Post
		count int
	)
	offset := (page - 1) * limit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if rows, err = s.backend.ApprovedPosts(gctx, topicID, limit, offset); err != nil {
			return s.fail(err, "posts.approved", map[string]any{"topic_id": topicID, "limit": limit, "offset": offset})
		}
		return nil
	})
	g.Go(func() (err error) {
		if count, err = s.backend.CountApprovedPosts(gctx, topicID); err != nil {
			return s.fail(err, "posts.approved_count", map[string]any{"topic_id": topicID})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Paginated[types.Post]{}, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	parents := indexBy(rows, func(p models.Post) string { return p.ID })
	var missing []string
	for _, id := range distinct(rows, func(p models.Post) *string { return p.ParentPostID }) {
		if _, ok := parents[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		extra, err := s.backend.PostsByIDs(ctx, missing)
		if err != nil {
			return types.Paginated[types.Post]{}, s.fail(err, "posts.by_ids", map[string]any{"ids": missing})
		}
		for _, p := range extra {
			parents[p.ID] = p
		}
	}

	var (
		profiles []models.Profile
		guests   []models.TemporaryUser
	)
	authorIDs := distinct(slices.Concat(rows, valuesOf(parents)), func(p models.Post) *string { return p.AuthorID })
	guestIDs := distinct(rows, func(p models.Post) *string { return p.TemporaryUserID })

	g, gctx = errgroup.WithContext(ctx)
	if len(authorIDs) > 0 {
		g.Go(func() (err error) {
			if profiles, err = s.backend.ProfilesByIDs(gctx, authorIDs); err != nil {
				return s.fail(err, "profiles.by_ids", map[string]any{"ids": authorIDs})
			}
			return nil
		})
	}
	if len(guestIDs) > 0 {
		g.Go(func() (err error) {
			if guests, err = s.backend.TemporaryUsersByIDs(gctx, guestIDs); err != nil {
				return s.fail(err, "temporary_users.by_ids", map[string]any{"ids": guestIDs})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Paginated[types.Post]{}, err
	}

	lookups := postLookups{
		profiles: indexBy(profiles, func(p models.Profile) string { return p.ID }),
		guests:   indexBy(guests, func(u models.TemporaryUser) string { return u.ID }),
		parents:  parents,
	}
	posts := make([]types.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, fromPostRow(row, lookups))
	}
	return types.NewPaginated(posts, count, page, limit), nil
}

func valuesOf[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
