package models

import "time"

// Topic is a raw row of the topics table.
type Topic struct {
	ID               string     `gorm:"column:id;primaryKey" json:"id"`
	Title            string     `gorm:"column:title" json:"title"`
	Content          *string    `gorm:"column:content" json:"content"`
	AuthorID         *string    `gorm:"column:author_id" json:"author_id"`
	CategoryID       string     `gorm:"column:category_id" json:"category_id"`
	IsPinned         *bool      `gorm:"column:is_pinned" json:"is_pinned"`
	IsLocked         *bool      `gorm:"column:is_locked" json:"is_locked"`
	IsHidden         *bool      `gorm:"column:is_hidden" json:"is_hidden"`
	ViewCount        *int       `gorm:"column:view_count" json:"view_count"`
	ReplyCount       *int       `gorm:"column:reply_count" json:"reply_count"`
	LastReplyAt      *time.Time `gorm:"column:last_reply_at" json:"last_reply_at"`
	CreatedAt        *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at"`
	Slug             *string    `gorm:"column:slug" json:"slug"`
	ModerationStatus *string    `gorm:"column:moderation_status" json:"moderation_status"`
	IPAddress        *string    `gorm:"column:ip_address" json:"ip_address"`
	IsAnonymous      *bool      `gorm:"column:is_anonymous" json:"is_anonymous"`
	IsPublic         *bool      `gorm:"column:is_public" json:"is_public"`
	CanonicalURL     *string    `gorm:"column:canonical_url" json:"canonical_url"`
}

func (Topic) TableName() string {
	return "topics"
}

// EnrichedTopicRow is returned by get_enriched_topics: topic columns with the
// author and category flattened in. It never carries hot_score.
type EnrichedTopicRow struct {
	Topic
	AuthorUsername  *string `gorm:"column:author_username" json:"author_username"`
	AuthorAvatarURL *string `gorm:"column:author_avatar_url" json:"author_avatar_url"`
	CategoryName    *string `gorm:"column:category_name" json:"category_name"`
	CategoryColor   *string `gorm:"column:category_color" json:"category_color"`
	CategorySlug    *string `gorm:"column:category_slug" json:"category_slug"`
}

// HotTopicRow is returned by get_hot_topics. It never carries
// moderation_status.
type HotTopicRow struct {
	ID            string     `gorm:"column:id" json:"id"`
	Title         string     `gorm:"column:title" json:"title"`
	Content       *string    `gorm:"column:content" json:"content"`
	AuthorID      *string    `gorm:"column:author_id" json:"author_id"`
	CategoryID    string     `gorm:"column:category_id" json:"category_id"`
	IsPinned      *bool      `gorm:"column:is_pinned" json:"is_pinned"`
	IsLocked      *bool      `gorm:"column:is_locked" json:"is_locked"`
	IsHidden      *bool      `gorm:"column:is_hidden" json:"is_hidden"`
	ViewCount     *int       `gorm:"column:view_count" json:"view_count"`
	ReplyCount    *int       `gorm:"column:reply_count" json:"reply_count"`
	LastReplyAt   *time.Time `gorm:"column:last_reply_at" json:"last_reply_at"`
	CreatedAt     *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`
	Slug          *string    `gorm:"column:slug" json:"slug"`
	HotScore      *float64   `gorm:"column:hot_score" json:"hot_score"`
	LastPostID    *string    `gorm:"column:last_post_id" json:"last_post_id"`
	IsAnonymous   *bool      `gorm:"column:is_anonymous" json:"is_anonymous"`
	Username      *string    `gorm:"column:username" json:"username"`
	AvatarURL     *string    `gorm:"column:avatar_url" json:"avatar_url"`
	CategoryName  *string    `gorm:"column:category_name" json:"category_name"`
	CategoryColor *string    `gorm:"column:category_color" json:"category_color"`
	CategorySlug  *string    `gorm:"column:category_slug" json:"category_slug"`
}
