package types

// ForumData is everything the home page renders.
type ForumData struct {
	HotTopics     Paginated[HotTopic]    `json:"hotTopics"`
	NewTopics     Paginated[Topic]       `json:"newTopics"`
	TopTopics     Paginated[Topic]       `json:"topTopics"`
	Level1Forums  []CategoryWithActivity `json:"level1Forums"`
	Level2Forums  []CategoryWithActivity `json:"level2Forums"`
	Level3Forums  []CategoryWithActivity `json:"level3Forums"`
	ForumSettings ForumSettingsMap       `json:"forumSettings"`
}

// CategoryData is nil-valued except for ForumSettings when the category
// slug does not resolve.
type CategoryData struct {
	Category      *Category              `json:"category"`
	Topics        *Paginated[Topic]      `json:"topics"`
	Subcategories []CategoryWithActivity `json:"subcategories"`
	ForumSettings ForumSettingsMap       `json:"forumSettings"`
}

type TopicData struct {
	Topic         *Topic           `json:"topic"`
	Posts         *Paginated[Post] `json:"posts"`
	ForumSettings ForumSettingsMap `json:"forumSettings"`
}

type TopicsPageData struct {
	Topics        Paginated[Topic] `json:"topics"`
	ForumSettings ForumSettingsMap `json:"forumSettings"`
}

type CategoriesPageData struct {
	Level1Categories []Category       `json:"level1Categories"`
	Level2Categories []Category       `json:"level2Categories"`
	Level3Categories []Category       `json:"level3Categories"`
	ForumSettings    ForumSettingsMap `json:"forumSettings"`
}

type SidebarData struct {
	Level1Forums  []CategoryWithActivity `json:"level1Forums"`
	Level2Forums  []CategoryWithActivity `json:"level2Forums"`
	ForumSettings ForumSettingsMap       `json:"forumSettings"`
}
