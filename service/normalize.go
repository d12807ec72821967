package service

import (
	"Arena/models"
	"Arena/types"
	"time"
)

// timeLayout is RFC 3339 with fixed microseconds, so formatted values keep
// timestamptz precision and compare lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(timeLayout)
	return &s
}

func profileSummary(username, avatarURL *string) *types.ProfileSummary {
	if username == nil && avatarURL == nil {
		return nil
	}
	return &types.ProfileSummary{Username: username, AvatarURL: avatarURL}
}

func categorySummary(name, color, slug *string) *types.CategorySummary {
	if name == nil && color == nil && slug == nil {
		return nil
	}
	return &types.CategorySummary{Name: name, Color: color, Slug: slug}
}

func profileOf(p *models.Profile) *types.ProfileSummary {
	if p == nil {
		return nil
	}
	return &types.ProfileSummary{Username: p.Username, AvatarURL: p.AvatarURL}
}

func categorySummaryOf(c *models.Category) *types.CategorySummary {
	if c == nil {
		return nil
	}
	name, slug := c.Name, c.Slug
	return &types.CategorySummary{Name: &name, Color: c.Color, Slug: &slug}
}

func topicFromTable(row models.Topic) types.Topic {
	return types.Topic{
		ID:               row.ID,
		Title:            row.Title,
		Content:          row.Content,
		AuthorID:         row.AuthorID,
		CategoryID:       row.CategoryID,
		IsPinned:         row.IsPinned,
		IsLocked:         row.IsLocked,
		IsHidden:         row.IsHidden,
		ViewCount:        row.ViewCount,
		ReplyCount:       row.ReplyCount,
		LastReplyAt:      timeString(row.LastReplyAt),
		CreatedAt:        timeString(row.CreatedAt),
		UpdatedAt:        timeString(row.UpdatedAt),
		Slug:             row.Slug,
		ModerationStatus: types.ParseModerationStatus(row.ModerationStatus),
		IPAddress:        row.IPAddress,
		IsAnonymous:      row.IsAnonymous,
		IsPublic:         row.IsPublic,
		CanonicalURL:     row.CanonicalURL,
	}
}

// fromEnrichedTopicsRow maps a get_enriched_topics row. The RPC never
// carries hot_score or last_post_id.
func fromEnrichedTopicsRow(row models.EnrichedTopicRow) types.Topic {
	t := topicFromTable(row.Topic)
	t.Profiles = profileSummary(row.AuthorUsername, row.AuthorAvatarURL)
	t.Categories = categorySummary(row.CategoryName, row.CategoryColor, row.CategorySlug)
	return t
}

// fromRawTableRow maps a topics table row, joining author and category from
// lookups fetched in bulk.
func fromRawTableRow(row models.Topic, profiles map[string]models.Profile, categories map[string]models.Category) types.Topic {
	t := topicFromTable(row)
	if row.AuthorID != nil {
		if p, ok := profiles[*row.AuthorID]; ok {
			t.Profiles = profileOf(&p)
		}
	}
	if c, ok := categories[row.CategoryID]; ok {
		t.Categories = categorySummaryOf(&c)
	}
	return t
}

func fromHotTopicsRow(row models.HotTopicRow) types.HotTopic {
	return types.HotTopic{
		ID:            row.ID,
		Title:         row.Title,
		Content:       row.Content,
		AuthorID:      row.AuthorID,
		CategoryID:    row.CategoryID,
		IsPinned:      row.IsPinned,
		IsLocked:      row.IsLocked,
		IsHidden:      row.IsHidden,
		ViewCount:     row.ViewCount,
		ReplyCount:    row.ReplyCount,
		LastReplyAt:   timeString(row.LastReplyAt),
		CreatedAt:     timeString(row.CreatedAt),
		UpdatedAt:     timeString(row.UpdatedAt),
		Slug:          row.Slug,
		HotScore:      row.HotScore,
		LastPostID:    row.LastPostID,
		IsAnonymous:   row.IsAnonymous,
		Username:      deref(row.Username),
		AvatarURL:     deref(row.AvatarURL),
		CategoryName:  deref(row.CategoryName),
		CategoryColor: deref(row.CategoryColor),
		CategorySlug:  deref(row.CategorySlug),
	}
}

func fromCategoryRow(row models.Category) types.Category {
	return types.Category{
		ID:                 row.ID,
		Name:               row.Name,
		Slug:               row.Slug,
		Description:        row.Description,
		Color:              row.Color,
		SortOrder:          row.SortOrder,
		IsActive:           row.IsActive,
		CreatedAt:          timeString(row.CreatedAt),
		Level:              row.Level,
		ParentCategoryID:   row.ParentCategoryID,
		Region:             row.Region,
		BirthYear:          row.BirthYear,
		PlayLevel:          row.PlayLevel,
		RequiresModeration: row.RequiresModeration,
		CanonicalURL:       row.CanonicalURL,
		MetaDescription:    row.MetaDescription,
		MetaKeywords:       row.MetaKeywords,
		MetaTitle:          row.MetaTitle,
		OgDescription:      row.OgDescription,
		OgImage:            row.OgImage,
		OgTitle:            row.OgTitle,
	}
}

func withActivity(c types.Category, stats *models.CategoryStats) types.CategoryWithActivity {
	out := types.CategoryWithActivity{Category: c}
	if stats != nil {
		out.TopicCount = stats.TopicCount
		out.PostCount = stats.PostCount
		out.LastActivityAt = timeString(stats.LastActivityAt)
	}
	return out
}

func fromActivityRows(rows []models.CategoryActivityRow) []types.CategoryWithActivity {
	out := make([]types.CategoryWithActivity, 0, len(rows))
	for i := range rows {
		out = append(out, withActivity(fromCategoryRow(rows[i].Category), &rows[i].CategoryStats))
	}
	return out
}

func fromCategoryRows(rows []models.Category) []types.Category {
	out := make([]types.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromCategoryRow(row))
	}
	return out
}

type postLookups struct {
	profiles map[string]models.Profile
	guests   map[string]models.TemporaryUser
	parents  map[string]models.Post
}

func (l postLookups) profile(id *string) *types.ProfileSummary {
	if id == nil {
		return nil
	}
	if p, ok := l.profiles[*id]; ok {
		return profileOf(&p)
	}
	return nil
}

func fromPostRow(row models.Post, l postLookups) types.Post {
	p := types.Post{
		ID:               row.ID,
		TopicID:          row.TopicID,
		ParentPostID:     row.ParentPostID,
		AuthorID:         row.AuthorID,
		Content:          row.Content,
		CreatedAt:        timeString(row.CreatedAt),
		UpdatedAt:        timeString(row.UpdatedAt),
		IsAnonymous:      row.IsAnonymous,
		IPAddress:        row.IPAddress,
		ModerationStatus: types.ParseModerationStatus(row.ModerationStatus),
		VoteScore:        row.VoteScore,
		Profiles:         l.profile(row.AuthorID),
	}
	if row.TemporaryUserID != nil {
		if g, ok := l.guests[*row.TemporaryUserID]; ok {
			p.TemporaryUsers = &types.TemporaryUserSummary{DisplayName: g.DisplayName}
		}
	}
	if row.ParentPostID != nil {
		if parent, ok := l.parents[*row.ParentPostID]; ok {
			p.ParentPost = &types.ParentPost{
				ID:        parent.ID,
				Content:   parent.Content,
				AuthorID:  parent.AuthorID,
				CreatedAt: timeString(parent.CreatedAt),
				Profiles:  l.profile(parent.AuthorID),
			}
		}
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// distinct collects the non-nil ids in first-seen order.
func distinct[T any](rows []T, ids ...func(T) *string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		for _, id := range ids {
			v := id(row)
			if v == nil || *v == "" {
				continue
			}
			if _, ok := seen[*v]; ok {
				continue
			}
			seen[*v] = struct{}{}
			out = append(out, *v)
		}
	}
	return out
}

func indexBy[T any](rows []T, id func(T) string) map[string]T {
	out := make(map[string]T, len(rows))
	for _, row := range rows {
		out[id(row)] = row
	}
	return out
}
