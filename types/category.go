package types

type Category struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Slug               string  `json:"slug"`
	Description        *string `json:"description"`
	Color              *string `json:"color"`
	SortOrder          *int    `json:"sort_order"`
	IsActive           *bool   `json:"is_active"`
	CreatedAt          *string `json:"created_at"`
	Level              int     `json:"level"`
	ParentCategoryID   *string `json:"parent_category_id"`
	Region             *string `json:"region"`
	BirthYear          *int    `json:"birth_year"`
	PlayLevel          *string `json:"play_level"`
	RequiresModeration *bool   `json:"requires_moderation"`
	CanonicalURL       *string `json:"canonical_url"`
	MetaDescription    *string `json:"meta_description"`
	MetaKeywords       *string `json:"meta_keywords"`
	MetaTitle          *string `json:"meta_title"`
	OgDescription      *string `json:"og_description"`
	OgImage            *string `json:"og_image"`
	OgTitle            *string `json:"og_title"`
}

// CategoryWithActivity adds aggregates computed by a separate query.
type CategoryWithActivity struct {
	Category
	TopicCount     *int    `json:"topic_count"`
	PostCount      *int    `json:"post_count"`
	LastActivityAt *string `json:"last_activity_at"`
}
