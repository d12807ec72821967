package service

import (
	"Arena/models"
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

var _ Backend = (*fakeBackend)(nil)

func ptr[T any](v T) *T { return &v }

func day(d int) *time.Time {
	t := time.Date(2024, time.March, d, 18, 30, 0, 0, time.UTC)
	return &t
}

// fakeBackend serves a small forum from memory and counts every call.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]error
	views []string

	categories []models.Category
	topics     []models.Topic
	posts      []models.Post
	profiles   []models.Profile
	guests     []models.TemporaryUser
	hot        []models.HotTopicRow
	stats      map[string]models.CategoryStats
	settings   []models.ForumSetting
}

func (f *fakeBackend) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// total counts reads; view increments run in the background and are excluded.
func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for name, c := range f.calls {
		if name != "IncrementViewCount" {
			n += c
		}
	}
	return n
}

func (f *fakeBackend) viewed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.views)
}

func (f *fakeBackend) fail(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = make(map[string]error)
	}
	f.errs[name] = err
}

func window[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	return rows[offset:min(offset+limit, len(rows))]
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixNano()
}

func (f *fakeBackend) visibleTopics(categoryID *string) []models.Topic {
	var out []models.Topic
	for _, t := range f.topics {
		if t.IsHidden != nil && *t.IsHidden {
			continue
		}
		if categoryID != nil && t.CategoryID != *categoryID {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b models.Topic) int {
		return cmp.Compare(unixOrZero(b.CreatedAt), unixOrZero(a.CreatedAt))
	})
	return out
}

func (f *fakeBackend) findProfile(id *string) *models.Profile {
	if id == nil {
		return nil
	}
	for _, p := range f.profiles {
		if p.ID == *id {
			return &p
		}
	}
	return nil
}

func (f *fakeBackend) findCategory(match func(models.Category) bool) *models.Category {
	var best *models.Category
	for _, c := range f.categories {
		if match(c) && (best == nil || c.Level < best.Level) {
			c := c
			best = &c
		}
	}
	return best
}

func (f *fakeBackend) EnrichedTopics(_ context.Context, categoryID *string, limit, offset int) ([]models.EnrichedTopicRow, error) {
	if err := f.hit("EnrichedTopics"); err != nil {
		return nil, err
	}
	var out []models.EnrichedTopicRow
	for _, t := range window(f.visibleTopics(categoryID), limit, offset) {
		row := models.EnrichedTopicRow{Topic: t}
		if p := f.findProfile(t.AuthorID); p != nil {
			row.AuthorUsername, row.AuthorAvatarURL = p.Username, p.AvatarURL
		}
		if c := f.findCategory(func(c models.Category) bool { return c.ID == t.CategoryID }); c != nil {
			row.CategoryName, row.CategoryColor, row.CategorySlug = &c.Name, c.Color, &c.Slug
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeBackend) EnrichedTopicsCount(_ context.Context, categoryID *string) (int, error) {
	if err := f.hit("EnrichedTopicsCount"); err != nil {
		return 0, err
	}
	return len(f.visibleTopics(categoryID)), nil
}

func (f *fakeBackend) HotTopics(_ context.Context, limit, offset int) ([]models.HotTopicRow, error) {
	if err := f.hit("HotTopics"); err != nil {
		return nil, err
	}
	return window(f.hot, limit, offset), nil
}

func (f *fakeBackend) HotTopicsCount(context.Context) (int, error) {
	if err := f.hit("HotTopicsCount"); err != nil {
		return 0, err
	}
	return len(f.hot), nil
}

func (f *fakeBackend) CategoriesByActivity(_ context.Context, parentID *string, level *int) ([]models.CategoryActivityRow, error) {
	if err := f.hit("CategoriesByActivity"); err != nil {
		return nil, err
	}
	out := make([]models.CategoryActivityRow, 0)
	for _, c := range f.categories {
		if level != nil && c.Level != *level {
			continue
		}
		if parentID != nil && (c.ParentCategoryID == nil || *c.ParentCategoryID != *parentID) {
			continue
		}
		out = append(out, models.CategoryActivityRow{Category: c, CategoryStats: f.stats[c.ID]})
	}
	slices.SortStableFunc(out, func(a, b models.CategoryActivityRow) int {
		return cmp.Compare(unixOrZero(b.LastActivityAt), unixOrZero(a.LastActivityAt))
	})
	return out, nil
}

func (f *fakeBackend) CategoryStats(_ context.Context, categoryID string) (*models.CategoryStats, error) {
	if err := f.hit("CategoryStats"); err != nil {
		return nil, err
	}
	stats, ok := f.stats[categoryID]
	if !ok {
		return nil, nil
	}
	return &stats, nil
}

func (f *fakeBackend) IncrementViewCount(_ context.Context, topicID string) error {
	if err := f.hit("IncrementViewCount"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, topicID)
	return nil
}

func (f *fakeBackend) CategoriesByLevel(_ context.Context, level int) ([]models.Category, error) {
	if err := f.hit("CategoriesByLevel"); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0)
	for _, c := range f.categories {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) CategoryBySlug(_ context.Context, slug string, parentID *string) (*models.Category, error) {
	if err := f.hit("CategoryBySlug"); err != nil {
		return nil, err
	}
	return f.findCategory(func(c models.Category) bool {
		if c.Slug != slug {
			return false
		}
		return parentID == nil || (c.ParentCategoryID != nil && *c.ParentCategoryID == *parentID)
	}), nil
}

func (f *fakeBackend) CategoryByID(_ context.Context, id string) (*models.Category, error) {
	if err := f.hit("CategoryByID"); err != nil {
		return nil, err
	}
	return f.findCategory(func(c models.Category) bool { return c.ID == id }), nil
}

func (f *fakeBackend) CategoriesByIDs(_ context.Context, ids []string) ([]models.Category, error) {
	if err := f.hit("CategoriesByIDs"); err != nil {
		return nil, err
	}
	var out []models.Category
	for _, c := range f.categories {
		if slices.Contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) Subcategories(_ context.Context, parentID string) ([]models.Category, error) {
	if err := f.hit("Subcategories"); err != nil {
		return nil, err
	}
	var out []models.Category
	for _, c := range f.categories {
		if c.ParentCategoryID != nil && *c.ParentCategoryID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) TopicByID(_ context.Context, id string) (*models.Topic, error) {
	if err := f.hit("TopicByID"); err != nil {
		return nil, err
	}
	for _, t := range f.topics {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeBackend) TopicBySlug(_ context.Context, categoryID, slug string) (*models.Topic, error) {
	if err := f.hit("TopicBySlug"); err != nil {
		return nil, err
	}
	for _, t := range f.topics {
		if t.CategoryID == categoryID && t.Slug != nil && *t.Slug == slug {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeBackend) ListTopics(_ context.Context, q models.TopicQuery) ([]models.Topic, error) {
	if err := f.hit("ListTopics"); err != nil {
		return nil, err
	}
	rows := f.visibleTopics(nil)
	key := func(t models.Topic) int64 {
		switch q.OrderBy {
		case OrderViewCount:
			return int64(intOrZero(t.ViewCount))
		case OrderReplyCount:
			return int64(intOrZero(t.ReplyCount))
		case OrderLastReplyAt:
			return unixOrZero(t.LastReplyAt)
		}
		return unixOrZero(t.CreatedAt)
	}
	slices.SortStableFunc(rows, func(a, b models.Topic) int {
		if q.Ascending {
			return cmp.Compare(key(a), key(b))
		}
		return cmp.Compare(key(b), key(a))
	})
	return window(rows, q.Limit, q.Offset), nil
}

func (f *fakeBackend) CountTopics(context.Context) (int, error) {
	if err := f.hit("CountTopics"); err != nil {
		return 0, err
	}
	return len(f.visibleTopics(nil)), nil
}

func (f *fakeBackend) approved(topicID string) []models.Post {
	var out []models.Post
	for _, p := range f.posts {
		if p.TopicID == topicID && p.ModerationStatus != nil && *p.ModerationStatus == "approved" {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Post) int {
		return cmp.Compare(unixOrZero(a.CreatedAt), unixOrZero(b.CreatedAt))
	})
	return out
}

func (f *fakeBackend) LatestApprovedPost(_ context.Context, topicID string) (*models.Post, error) {
	if err := f.hit("LatestApprovedPost"); err != nil {
		return nil, err
	}
	posts := f.approved(topicID)
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[len(posts)-1], nil
}

func (f *fakeBackend) ApprovedPosts(_ context.Context, topicID string, limit, offset int) ([]models.Post, error) {
	if err := f.hit("ApprovedPosts"); err != nil {
		return nil, err
	}
	return window(f.approved(topicID), limit, offset), nil
}

func (f *fakeBackend) CountApprovedPosts(_ context.Context, topicID string) (int, error) {
	if err := f.hit("CountApprovedPosts"); err != nil {
		return 0, err
	}
	return len(f.approved(topicID)), nil
}

func (f *fakeBackend) PostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	if err := f.hit("PostsByIDs"); err != nil {
		return nil, err
	}
	var out []models.Post
	for _, p := range f.posts {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) ProfileByID(_ context.Context, id string) (*models.Profile, error) {
	if err := f.hit("ProfileByID"); err != nil {
		return nil, err
	}
	return f.findProfile(&id), nil
}

func (f *fakeBackend) ProfilesByIDs(_ context.Context, ids []string) ([]models.Profile, error) {
	if err := f.hit("ProfilesByIDs"); err != nil {
		return nil, err
	}
	var out []models.Profile
	for _, p := range f.profiles {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) TemporaryUsersByIDs(_ context.Context, ids []string) ([]models.TemporaryUser, error) {
	if err := f.hit("TemporaryUsersByIDs"); err != nil {
		return nil, err
	}
	var out []models.TemporaryUser
	for _, u := range f.guests {
		if slices.Contains(ids, u.ID) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) ForumSettings(context.Context) ([]models.ForumSetting, error) {
	if err := f.hit("ForumSettings"); err != nil {
		return nil, err
	}
	return f.settings, nil
}

const (
	topicOpening = "0b7e1d8a-3c57-4f6e-9d4b-1a2f3c4d5e01"
	topicTrade   = "0b7e1d8a-3c57-4f6e-9d4b-1a2f3c4d5e02"
	topicTryouts = "0b7e1d8a-3c57-4f6e-9d4b-1a2f3c4d5e03"
	topicHidden  = "0b7e1d8a-3c57-4f6e-9d4b-1a2f3c4d5e04"
)

// seedForum is a hockey forum with one top-level category, two
// subcategories and a handful of topics and posts.
func seedForum() *fakeBackend {
	hockey := "cat-hockey"
	u18 := "cat-u18"
	approved, pending := "approved", "pending"
	return &fakeBackend{
		categories: []models.Category{
			{ID: hockey, Name: "Hockey", Slug: "hockey", Level: 1, Color: ptr("#0055aa")},
			{ID: u18, Name: "U18", Slug: "u18", Level: 2, ParentCategoryID: &hockey},
			{ID: "cat-u16", Name: "U16", Slug: "u16", Level: 2, ParentCategoryID: &hockey},
			{ID: "cat-elite", Name: "Elite", Slug: "elite", Level: 3, ParentCategoryID: &u18},
		},
		topics: []models.Topic{
			{ID: topicOpening, Title: "Opening night", CategoryID: hockey, AuthorID: ptr("p-coach"), Slug: ptr("opening-night"),
				ViewCount: ptr(10), ReplyCount: ptr(2), CreatedAt: day(1), ModerationStatus: &approved},
			{ID: topicTrade, Title: "Trade rumours", CategoryID: hockey, Slug: ptr("trade-rumours"),
				ViewCount: ptr(50), ReplyCount: ptr(0), CreatedAt: day(2), IsAnonymous: ptr(true)},
			{ID: topicTryouts, Title: "Tryouts", CategoryID: u18, AuthorID: ptr("p-goalie"), Slug: ptr("tryouts"),
				ViewCount: nil, ReplyCount: ptr(1), CreatedAt: day(3), ModerationStatus: ptr("bogus")},
			{ID: topicHidden, Title: "Spam", CategoryID: hockey, IsHidden: ptr(true), CreatedAt: day(4)},
		},
		posts: []models.Post{
			{ID: "post-1", TopicID: topicOpening, AuthorID: ptr("p-coach"), Content: ptr("Puck drops at 7"), CreatedAt: day(1), ModerationStatus: &approved},
			{ID: "post-2", TopicID: topicOpening, ParentPostID: ptr("post-1"), TemporaryUserID: ptr("guest-1"), IsAnonymous: ptr(true),
				Content: ptr("See you there"), CreatedAt: day(2), ModerationStatus: &approved},
			{ID: "post-3", TopicID: topicOpening, AuthorID: ptr("p-goalie"), Content: ptr("awaiting review"), CreatedAt: day(3), ModerationStatus: &pending},
		},
		profiles: []models.Profile{
			{ID: "p-coach", Username: ptr("coach"), AvatarURL: ptr("https://cdn.example/coach.png")},
			{ID: "p-goalie", Username: ptr("goalie")},
		},
		guests: []models.TemporaryUser{{ID: "guest-1", DisplayName: ptr("Visitor")}},
		hot: []models.HotTopicRow{
			{ID: topicOpening, Title: "Opening night", CategoryID: hockey, HotScore: ptr(3.5), Username: ptr("coach"), CategoryName: ptr("Hockey")},
			{ID: topicTrade, Title: "Trade rumours", CategoryID: hockey, HotScore: ptr(9.0), CreatedAt: day(2)},
		},
		stats: map[string]models.CategoryStats{
			hockey:    {TopicCount: ptr(2), PostCount: ptr(3), LastActivityAt: day(2)},
			u18:       {TopicCount: ptr(1), PostCount: ptr(1), LastActivityAt: day(3)},
			"cat-u16": {TopicCount: ptr(0), PostCount: ptr(0)},
		},
		settings: []models.ForumSetting{
			{SettingKey: "forum_name", SettingValue: models.SettingValue{V: "Arena"}, SettingType: ptr("string"), IsPublic: ptr(true)},
			{SettingKey: "registration_open", SettingValue: models.SettingValue{V: "true"}, SettingType: ptr("boolean")},
			{SettingKey: "maintenance_mode", SettingValue: models.SettingValue{V: false}, SettingType: ptr("boolean")},
			{SettingKey: "tagline", SettingValue: models.SettingValue{V: nil}, SettingType: ptr("string")},
		},
	}
}
