package types

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// ParseModerationStatus returns nil for anything outside the three known
// states, including nil and "".
func ParseModerationStatus(raw *string) *ModerationStatus {
	if raw == nil {
		return nil
	}
	switch s := ModerationStatus(*raw); s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return &s
	}
	return nil
}
