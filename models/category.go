package models

import "time"

// Category is a raw row of the categories table.
type Category struct {
	ID                 string     `gorm:"column:id;primaryKey" json:"id"`
	Name               string     `gorm:"column:name" json:"name"`
	Slug               string     `gorm:"column:slug" json:"slug"`
	Description        *string    `gorm:"column:description" json:"description"`
	Color              *string    `gorm:"column:color" json:"color"`
	SortOrder          *int       `gorm:"column:sort_order" json:"sort_order"`
	IsActive           *bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt          *time.Time `gorm:"column:created_at" json:"created_at"`
	Level              int        `gorm:"column:level" json:"level"`
	ParentCategoryID   *string    `gorm:"column:parent_category_id" json:"parent_category_id"`
	Region             *string    `gorm:"column:region" json:"region"`
	BirthYear          *int       `gorm:"column:birth_year" json:"birth_year"`
	PlayLevel          *string    `gorm:"column:play_level" json:"play_level"`
	RequiresModeration *bool      `gorm:"column:requires_moderation" json:"requires_moderation"`
	CanonicalURL       *string    `gorm:"column:canonical_url" json:"canonical_url"`
	MetaDescription    *string    `gorm:"column:meta_description" json:"meta_description"`
	MetaKeywords       *string    `gorm:"column:meta_keywords" json:"meta_keywords"`
	MetaTitle          *string    `gorm:"column:meta_title" json:"meta_title"`
	OgDescription      *string    `gorm:"column:og_description" json:"og_description"`
	OgImage            *string    `gorm:"column:og_image" json:"og_image"`
	OgTitle            *string    `gorm:"column:og_title" json:"og_title"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryStats is returned by get_category_stats.
type CategoryStats struct {
	TopicCount     *int       `gorm:"column:topic_count" json:"topic_count"`
	PostCount      *int       `gorm:"column:post_count" json:"post_count"`
	LastActivityAt *time.Time `gorm:"column:last_activity_at" json:"last_activity_at"`
}

// CategoryActivityRow is returned by get_categories_by_activity.
type CategoryActivityRow struct {
	Category      `gorm:"embedded"`
	CategoryStats `gorm:"embedded"`
}
