package service

import (
	"Arena/config"
	"Arena/dao/cache"
	"Arena/pkg/errtrack"
	"Arena/types"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHandle struct {
	client *redis.Client
}

func (s staticHandle) GetHandle(context.Context) *redis.Client { return s.client }

type recorder struct {
	mu   sync.Mutex
	rpcs []string
}

func (r *recorder) CaptureException(_ error, opts errtrack.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rpcs = append(r.rpcs, opts.Tags["rpc"])
}

func (r *recorder) reported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.rpcs...)
}

type fixture struct {
	svc     *PageService
	backend *fakeBackend
	rec     *recorder
	redis   *miniredis.Miniredis
}

func newFixture(t *testing.T, withRedis bool) *fixture {
	t.Helper()
	return newFixtureWith(t, seedForum(), withRedis)
}

func newFixtureWith(t *testing.T, backend *fakeBackend, withRedis bool) *fixture {
	t.Helper()
	f := &fixture{backend: backend, rec: &recorder{}}
	conf := config.Default()

	handles := staticHandle{}
	if withRedis {
		f.redis = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: f.redis.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		handles.client = client
	}
	f.svc = NewPageService(conf, f.backend, cache.NewPageCache(conf, handles, f.rec), f.rec)
	t.Cleanup(f.svc.Wait)
	return f
}

func TestForumDataWithoutCache(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialForumData(context.Background())
	require.NoError(t, err)

	require.Len(t, data.HotTopics.Data, 2)
	assert.Equal(t, topicTrade, data.HotTopics.Data[0].ID, "hot topics are score ordered")
	assert.Equal(t, "", data.HotTopics.Data[0].Username)
	assert.Equal(t, "coach", data.HotTopics.Data[1].Username)
	assert.Equal(t, 1, data.HotTopics.CurrentPage)

	var newIDs, topIDs []string
	for _, topic := range data.NewTopics.Data {
		newIDs = append(newIDs, topic.ID)
	}
	for _, topic := range data.TopTopics.Data {
		topIDs = append(topIDs, topic.ID)
	}
	assert.Equal(t, []string{topicTryouts, topicTrade, topicOpening}, newIDs)
	assert.Equal(t, []string{topicTrade, topicOpening, topicTryouts}, topIDs, "missing view counts sort as zero")
	assert.Equal(t, 3, data.NewTopics.TotalCount)
	assert.Equal(t, 1, data.NewTopics.TotalPages)

	require.Len(t, data.Level1Forums, 1)
	require.Len(t, data.Level2Forums, 2)
	assert.Equal(t, "u18", data.Level2Forums[0].Slug, "most recent activity first")
	require.Len(t, data.Level3Forums, 1)
	assert.Nil(t, data.Level3Forums[0].TopicCount)

	assert.True(t, data.ForumSettings.Bool(categoryRequestEnabled))
	assert.True(t, data.ForumSettings.Bool("registration_open"))
	assert.Equal(t, false, data.ForumSettings["maintenance_mode"].Value)
	assert.Equal(t, "", data.ForumSettings["tagline"].Value)
}

func TestForumDataIsServedFromSevenEntries(t *testing.T) {
	f := newFixture(t, true)

	first, err := f.svc.GetInitialForumData(context.Background())
	require.NoError(t, err)
	for _, key := range []string{"hot_topics_initial", "new_topics_initial", "top_topics_initial",
		"level1_forums", "level2_forums", "level3_forums", "forum_settings"} {
		assert.True(t, f.redis.Exists(key), key)
	}

	second, err := f.svc.GetInitialForumData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.backend.count("HotTopics"))
	assert.Equal(t, 2, f.backend.count("EnrichedTopics"))
	assert.Equal(t, 3, f.backend.count("CategoriesByActivity"))
	assert.Equal(t, 1, f.backend.count("ForumSettings"))
}

func TestCategoryDataNotFound(t *testing.T) {
	f := newFixture(t, true)

	data, err := f.svc.GetInitialCategoryData(context.Background(), "curling", "", 1, 20)
	require.NoError(t, err)
	assert.Nil(t, data.Category)
	assert.Nil(t, data.Topics)
	assert.Nil(t, data.Subcategories)
	assert.NotEmpty(t, data.ForumSettings)

	assert.Zero(t, f.backend.count("EnrichedTopics"))
	assert.Zero(t, f.backend.count("Subcategories"))
	assert.Zero(t, f.backend.count("CategoryStats"))
	assert.True(t, f.redis.Exists("category-data:curling:1:20"))
}

func TestCategoryDataWithSubcategories(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialCategoryData(context.Background(), "hockey", "", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, data.Category)
	assert.Equal(t, "Hockey", data.Category.Name)

	require.NotNil(t, data.Topics)
	assert.Len(t, data.Topics.Data, 1)
	assert.Equal(t, 2, data.Topics.TotalCount)
	assert.Equal(t, 2, data.Topics.TotalPages)
	require.NotNil(t, data.Topics.Data[0].Categories)
	assert.Equal(t, "hockey", *data.Topics.Data[0].Categories.Slug)

	require.Len(t, data.Subcategories, 2)
	assert.Equal(t, 2, f.backend.count("CategoryStats"), "one aggregate per subcategory")
	byID := map[string]types.CategoryWithActivity{}
	for _, s := range data.Subcategories {
		byID[s.ID] = s
	}
	assert.Equal(t, 1, *byID["cat-u18"].TopicCount)
	assert.Nil(t, byID["cat-u16"].LastActivityAt)
}

func TestSubcategorySlugResolvesBeneathParent(t *testing.T) {
	f := newFixture(t, true)

	data, err := f.svc.GetInitialCategoryData(context.Background(), "hockey", "u18", 1, 20)
	require.NoError(t, err)
	require.NotNil(t, data.Category)
	assert.Equal(t, "cat-u18", data.Category.ID)
	assert.Equal(t, 1, data.Topics.TotalCount)
	require.Len(t, data.Subcategories, 1)
	assert.Equal(t, "elite", data.Subcategories[0].Slug)
	assert.True(t, f.redis.Exists("category-data:hockey-u18:1:20"))

	missing, err := f.svc.GetInitialCategoryData(context.Background(), "hockey", "u10", 1, 20)
	require.NoError(t, err)
	assert.Nil(t, missing.Category)
}

func TestTopicDataByID(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialTopicData(context.Background(), TopicLookup{ID: topicOpening}, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, data.Topic)

	topic := data.Topic
	require.NotNil(t, topic.Profiles)
	assert.Equal(t, "coach", *topic.Profiles.Username)
	require.NotNil(t, topic.Categories)
	assert.Equal(t, "Hockey", *topic.Categories.Name)
	require.NotNil(t, topic.LastPostID)
	assert.Equal(t, "post-2", *topic.LastPostID)
	assert.Equal(t, "2024-03-01T18:30:00.000000Z", *topic.CreatedAt)

	require.NotNil(t, data.Posts)
	assert.Equal(t, 2, data.Posts.TotalCount, "pending posts are excluded")
	require.Len(t, data.Posts.Data, 2)
	reply := data.Posts.Data[1]
	assert.Nil(t, reply.Profiles)
	require.NotNil(t, reply.TemporaryUsers)
	assert.Equal(t, "Visitor", *reply.TemporaryUsers.DisplayName)
	require.NotNil(t, reply.ParentPost)
	assert.Equal(t, "coach", *reply.ParentPost.Profiles.Username)
	assert.Equal(t, 1, f.backend.count("ProfilesByIDs"), "authors are fetched in one query")
	assert.Zero(t, f.backend.count("PostsByIDs"), "parent on the same page")

	f.svc.Wait()
	assert.Equal(t, []string{topicOpening}, f.backend.viewed())
}

func TestTopicWithoutRepliesSkipsLastPost(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialTopicData(context.Background(), TopicLookup{ID: topicTrade}, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, data.Topic)
	assert.Nil(t, data.Topic.LastPostID)
	assert.Nil(t, data.Topic.Profiles)
	assert.Zero(t, f.backend.count("LatestApprovedPost"))
	assert.Zero(t, f.backend.count("ProfileByID"))
	assert.Empty(t, data.Posts.Data)
	assert.NotNil(t, data.Posts.Data)
}

func TestUnknownModerationStatusBecomesNull(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialTopicData(context.Background(), TopicLookup{CategorySlug: "hockey", SubcategorySlug: "u18", TopicSlug: "tryouts"}, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, data.Topic)
	assert.Equal(t, topicTryouts, data.Topic.ID)
	assert.Nil(t, data.Topic.ModerationStatus)
}

func TestLegacyIDThatIsNotUUID(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialTopicData(context.Background(), TopicLookup{ID: "12345"}, 1, 20)
	require.NoError(t, err)
	assert.Nil(t, data.Topic)
	assert.Nil(t, data.Posts)
	assert.NotEmpty(t, data.ForumSettings)
	assert.Zero(t, f.backend.count("TopicByID"))

	f.svc.Wait()
	assert.Empty(t, f.backend.viewed())
}

func TestTopicSlugPathNotFound(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialTopicData(context.Background(), TopicLookup{CategorySlug: "hockey", TopicSlug: "no-such-topic"}, 1, 20)
	require.NoError(t, err)
	assert.Nil(t, data.Topic)

	f.svc.Wait()
	assert.Empty(t, f.backend.viewed())
}

func TestViewsAreCountedOnCacheHits(t *testing.T) {
	f := newFixture(t, true)
	lookup := TopicLookup{CategorySlug: "hockey", TopicSlug: "opening-night"}

	first, err := f.svc.GetInitialTopicData(context.Background(), lookup, 1, 20)
	require.NoError(t, err)
	assert.True(t, f.redis.Exists("topic-data:hockey/opening-night:1:20"))
	second, err := f.svc.GetInitialTopicData(context.Background(), lookup, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.backend.count("TopicBySlug"))
	f.svc.Wait()
	assert.Equal(t, []string{topicOpening, topicOpening}, f.backend.viewed())
}

func TestViewCountFailureDoesNotFailTheRead(t *testing.T) {
	f := newFixture(t, false)
	f.backend.fail("IncrementViewCount", errors.New("rpc timeout"))

	data, err := f.svc.GetInitialTopicData(context.Background(), TopicLookup{ID: topicOpening}, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, data.Topic)

	f.svc.Wait()
	assert.Contains(t, f.rec.reported(), "increment_view_count")
}

func TestTopicsPageSortsServerSide(t *testing.T) {
	f := newFixture(t, true)

	data, err := f.svc.GetInitialTopicsPageData(context.Background(), 1, 2, OrderViewCount, false)
	require.NoError(t, err)
	require.Len(t, data.Topics.Data, 2)
	assert.Equal(t, topicTrade, data.Topics.Data[0].ID)
	assert.Equal(t, topicOpening, data.Topics.Data[1].ID)
	assert.Equal(t, 3, data.Topics.TotalCount)
	assert.Equal(t, 2, data.Topics.TotalPages)
	require.NotNil(t, data.Topics.Data[1].Profiles)
	assert.Equal(t, "coach", *data.Topics.Data[1].Profiles.Username)
	assert.Equal(t, "Hockey", *data.Topics.Data[0].Categories.Name)
	assert.True(t, f.redis.Exists("topics-page-data:1:2:view_count:false"))

	asc, err := f.svc.GetInitialTopicsPageData(context.Background(), 2, 2, OrderViewCount, true)
	require.NoError(t, err)
	require.Len(t, asc.Topics.Data, 1)
	assert.Equal(t, topicTrade, asc.Topics.Data[0].ID)
	assert.Equal(t, 2, asc.Topics.CurrentPage)
}

func TestParametersAreNormalizedBeforeKeying(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.GetInitialTopicsPageData(context.Background(), 0, 1000, "title; drop table", true)
	require.NoError(t, err)
	assert.True(t, f.redis.Exists("topics-page-data:1:20:created_at:true"))

	_, err = f.svc.GetInitialTopicsPageData(context.Background(), -3, 0, "", true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.backend.count("ListTopics"), "same effective parameters share an entry")
}

func TestCategoriesPage(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.svc.GetInitialCategoriesPageData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Level1Categories, 1)
	assert.Len(t, data.Level2Categories, 2)
	assert.Len(t, data.Level3Categories, 1)
	assert.NotEmpty(t, data.ForumSettings)
}

func TestSidebar(t *testing.T) {
	f := newFixture(t, true)

	data, err := f.svc.GetInitialSidebarData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Level1Forums, 1)
	assert.Len(t, data.Level2Forums, 2)
	assert.Equal(t, 2, *data.Level1Forums[0].TopicCount)
	assert.True(t, f.redis.Exists("sidebar-data"))
}

func TestBackendFailureIsReportedAndReturned(t *testing.T) {
	f := newFixture(t, true)
	boom := errors.New("permission denied for table topics")
	f.backend.fail("EnrichedTopics", boom)

	_, err := f.svc.GetInitialCategoryData(context.Background(), "hockey", "", 1, 20)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, f.rec.reported(), "get_enriched_topics")
	assert.False(t, f.redis.Exists("category-data:hockey:1:20"), "failures are never cached")
}

func TestSubcategoryStatsFailureFailsThePage(t *testing.T) {
	f := newFixture(t, false)
	f.backend.fail("CategoryStats", errors.New("function get_category_stats does not exist"))

	_, err := f.svc.GetInitialCategoryData(context.Background(), "hockey", "", 1, 20)
	require.Error(t, err)
	assert.Contains(t, f.rec.reported(), "get_category_stats")
}

func TestEmptyForumHomePage(t *testing.T) {
	f := newFixtureWith(t, &fakeBackend{}, true)

	data, err := f.svc.GetInitialForumData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.Paginated[types.HotTopic]{Data: []types.HotTopic{}, CurrentPage: 1}, data.HotTopics)
	assert.Equal(t, types.Paginated[types.Topic]{Data: []types.Topic{}, CurrentPage: 1}, data.NewTopics)
	assert.Equal(t, types.Paginated[types.Topic]{Data: []types.Topic{}, CurrentPage: 1}, data.TopTopics)
	assert.Empty(t, data.Level1Forums)
	assert.Empty(t, data.Level2Forums)
	assert.Empty(t, data.Level3Forums)
	assert.True(t, data.ForumSettings.Bool(categoryRequestEnabled))
	assert.Empty(t, f.rec.reported())

	cached, err := f.svc.GetInitialForumData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data.HotTopics, cached.HotTopics)
	assert.Equal(t, 1, f.backend.count("HotTopics"))
}

func TestCacheHitsMatchFreshPages(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	pages := map[string]func() (any, error){
		"category": func() (any, error) { return f.svc.GetInitialCategoryData(ctx, "hockey", "", 1, 20) },
		"subcategory": func() (any, error) {
			return f.svc.GetInitialCategoryData(ctx, "hockey", "u18", 1, 20)
		},
		"topic": func() (any, error) { return f.svc.GetInitialTopicData(ctx, TopicLookup{ID: topicOpening}, 1, 20) },
		"topics": func() (any, error) {
			return f.svc.GetInitialTopicsPageData(ctx, 1, 20, OrderReplyCount, false)
		},
		"categories": func() (any, error) { return f.svc.GetInitialCategoriesPageData(ctx) },
		"sidebar":    func() (any, error) { return f.svc.GetInitialSidebarData(ctx) },
	}
	for name, load := range pages {
		t.Run(name, func(t *testing.T) {
			fresh, err := load()
			require.NoError(t, err)
			before := f.backend.total()

			cached, err := load()
			require.NoError(t, err)
			assert.Equal(t, before, f.backend.total(), "second read is served from the cache")
			assert.Equal(t, fresh, cached)
		})
	}
}
