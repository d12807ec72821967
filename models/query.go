package models

// TopicQuery is a server-side sorted, ranged read of visible topics.
type TopicQuery struct {
	OrderBy   string
	Ascending bool
	Limit     int
	Offset    int
}
