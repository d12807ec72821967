package types

// ProfileSummary is the author data denormalized onto topics and posts.
type ProfileSummary struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// CategorySummary is the category data denormalized onto topics.
type CategorySummary struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Slug  *string `json:"slug"`
}

type Topic struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Content          *string           `json:"content"`
	AuthorID         *string           `json:"author_id"`
	CategoryID       string            `json:"category_id"`
	IsPinned         *bool             `json:"is_pinned"`
	IsLocked         *bool             `json:"is_locked"`
	IsHidden         *bool             `json:"is_hidden"`
	ViewCount        *int              `json:"view_count"`
	ReplyCount       *int              `json:"reply_count"`
	LastReplyAt      *string           `json:"last_reply_at"`
	CreatedAt        *string           `json:"created_at"`
	UpdatedAt        *string           `json:"updated_at"`
	Slug             *string           `json:"slug"`
	HotScore         *float64          `json:"hot_score"`
	LastPostID       *string           `json:"last_post_id"`
	ModerationStatus *ModerationStatus `json:"moderation_status"`
	IPAddress        *string           `json:"ip_address"`
	IsAnonymous      *bool             `json:"is_anonymous"`
	IsPublic         *bool             `json:"is_public"`
	CanonicalURL     *string           `json:"canonical_url"`
	Profiles         *ProfileSummary   `json:"profiles"`
	Categories       *CategorySummary  `json:"categories"`
}

// HotTopic is the flattened trending-topic shape. Author and category
// fields are plain strings and there is no moderation status.
type HotTopic struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       *string  `json:"content"`
	AuthorID      *string  `json:"author_id"`
	CategoryID    string   `json:"category_id"`
	IsPinned      *bool    `json:"is_pinned"`
	IsLocked      *bool    `json:"is_locked"`
	IsHidden      *bool    `json:"is_hidden"`
	ViewCount     *int     `json:"view_count"`
	ReplyCount    *int     `json:"reply_count"`
	LastReplyAt   *string  `json:"last_reply_at"`
	CreatedAt     *string  `json:"created_at"`
	UpdatedAt     *string  `json:"updated_at"`
	Slug          *string  `json:"slug"`
	HotScore      *float64 `json:"hot_score"`
	LastPostID    *string  `json:"last_post_id"`
	IsAnonymous   *bool    `json:"is_anonymous"`
	Username      string   `json:"username"`
	AvatarURL     string   `json:"avatar_url"`
	CategoryName  string   `json:"category_name"`
	CategoryColor string   `json:"category_color"`
	CategorySlug  string   `json:"category_slug"`
}
