package types

type TemporaryUserSummary struct {
	DisplayName *string `json:"display_name"`
}

// ParentPost is the replied-to post, denormalized one level deep.
type ParentPost struct {
	ID        string          `json:"id"`
	Content   *string         `json:"content"`
	AuthorID  *string         `json:"author_id"`
	CreatedAt *string         `json:"created_at"`
	Profiles  *ProfileSummary `json:"profiles"`
}

type Post struct {
	ID               string                `json:"id"`
	TopicID          string                `json:"topic_id"`
	ParentPostID     *string               `json:"parent_post_id"`
	AuthorID         *string               `json:"author_id"`
	Content          *string               `json:"content"`
	CreatedAt        *string               `json:"created_at"`
	UpdatedAt        *string               `json:"updated_at"`
	IsAnonymous      *bool                 `json:"is_anonymous"`
	IPAddress        *string               `json:"ip_address"`
	ModerationStatus *ModerationStatus     `json:"moderation_status"`
	VoteScore        *int                  `json:"vote_score"`
	Profiles         *ProfileSummary       `json:"profiles"`
	TemporaryUsers   *TemporaryUserSummary `json:"temporary_users"`
	ParentPost       *ParentPost           `json:"parent_post"`
}
