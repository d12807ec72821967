package service

import (
	"Arena/types"
	"cmp"
	"slices"
	"strings"
)

const (
	OrderCreatedAt   = "created_at"
	OrderViewCount   = "view_count"
	OrderReplyCount  = "reply_count"
	OrderHotScore    = "hot_score"
	OrderLastReplyAt = "last_reply_at"
)

// tableOrders are the topics columns the index page may sort on server-side.
var tableOrders = map[string]struct{}{
	OrderCreatedAt:   {},
	OrderViewCount:   {},
	OrderReplyCount:  {},
	OrderLastReplyAt: {},
}

func normalizeOrderBy(orderBy string) string {
	if _, ok := tableOrders[orderBy]; ok {
		return orderBy
	}
	return OrderCreatedAt
}

// sortTopics is a stable in-place sort. Missing values sort as zero.
func sortTopics(topics []types.Topic, orderBy string, ascending bool) {
	compare := topicComparator(orderBy)
	slices.SortStableFunc(topics, func(a, b types.Topic) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
}

func topicComparator(orderBy string) func(a, b types.Topic) int {
	switch orderBy {
	case OrderViewCount:
		return func(a, b types.Topic) int { return cmp.Compare(intOrZero(a.ViewCount), intOrZero(b.ViewCount)) }
	case OrderReplyCount:
		return func(a, b types.Topic) int { return cmp.Compare(intOrZero(a.ReplyCount), intOrZero(b.ReplyCount)) }
	case OrderHotScore:
		return func(a, b types.Topic) int { return cmp.Compare(floatOrZero(a.HotScore), floatOrZero(b.HotScore)) }
	case OrderLastReplyAt:
		return func(a, b types.Topic) int { return strings.Compare(deref(a.LastReplyAt), deref(b.LastReplyAt)) }
	default:
		return func(a, b types.Topic) int { return strings.Compare(deref(a.CreatedAt), deref(b.CreatedAt)) }
	}
}

func sortHotTopics(topics []types.HotTopic) {
	slices.SortStableFunc(topics, func(a, b types.HotTopic) int {
		return cmp.Compare(floatOrZero(b.HotScore), floatOrZero(a.HotScore))
	})
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
