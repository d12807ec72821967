package models

import "time"

type Post struct {
	ID               string     `gorm:"column:id;primaryKey" json:"id"`
	TopicID          string     `gorm:"column:topic_id" json:"topic_id"`
	ParentPostID     *string    `gorm:"column:parent_post_id" json:"parent_post_id"`
	AuthorID         *string    `gorm:"column:author_id" json:"author_id"`
	TemporaryUserID  *string    `gorm:"column:temporary_user_id" json:"temporary_user_id"`
	Content          *string    `gorm:"column:content" json:"content"`
	CreatedAt        *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at"`
	IsAnonymous      *bool      `gorm:"column:is_anonymous" json:"is_anonymous"`
	IPAddress        *string    `gorm:"column:ip_address" json:"ip_address"`
	ModerationStatus *string    `gorm:"column:moderation_status" json:"moderation_status"`
	VoteScore        *int       `gorm:"column:vote_score" json:"vote_score"`
}

func (Post) TableName() string {
	return "posts"
}
