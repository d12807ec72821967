package service

import (
	"fmt"
	"strings"
)

const (
	keyHotTopics      = "hot_topics_initial"
	keyNewTopics      = "new_topics_initial"
	keyTopTopics      = "top_topics_initial"
	keyForumSettings  = "forum_settings"
	keyCategoriesPage = "categories-page-data"
	keySidebar        = "sidebar-data"
)

func levelForumsKey(level int) string {
	return fmt.Sprintf("level%d_forums", level)
}

func categoryKey(slug, subslug string, page, limit int) string {
	path := slug
	if subslug != "" {
		path += "-" + subslug
	}
	return fmt.Sprintf("category-data:%s:%d:%d", path, page, limit)
}

func topicKey(lookup TopicLookup, page, limit int) string {
	return fmt.Sprintf("topic-data:%s:%d:%d", lookup.path(), page, limit)
}

func topicsPageKey(page, limit int, orderBy string, ascending bool) string {
	return fmt.Sprintf("topics-page-data:%d:%d:%s:%t", page, limit, orderBy, ascending)
}

// TopicLookup addresses a topic either by its legacy id or by slug path.
type TopicLookup struct {
	ID              string
	CategorySlug    string
	SubcategorySlug string
	TopicSlug       string
}

func (l TopicLookup) path() string {
	if l.ID != "" {
		return l.ID
	}
	parts := []string{l.CategorySlug}
	if l.SubcategorySlug != "" {
		parts = append(parts, l.SubcategorySlug)
	}
	parts = append(parts, l.TopicSlug)
	return strings.Join(parts, "/")
}
