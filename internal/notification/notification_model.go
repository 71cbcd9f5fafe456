package notification

import "time"

// Kind selects the message template.
type Kind string

const (
	KindInvitationReceived  Kind = "invitation_received"
	KindInvitationAccepted  Kind = "invitation_accepted"
	KindInvitationDeclined  Kind = "invitation_declined"
	KindInvitationCancelled Kind = "invitation_cancelled"
	KindTryoutRequest       Kind = "tryout_request"
	KindRequestAccepted     Kind = "request_accepted"
	KindRequestDeclined     Kind = "request_declined"
	KindTryoutCancelled     Kind = "tryout_cancelled"
	KindVideoLiked          Kind = "video_liked"
	KindVideoCommented      Kind = "video_commented"
	KindShortlisted         Kind = "shortlisted"
	KindProfileShared       Kind = "profile_shared"
	KindMediaReviewed       Kind = "media_reviewed"
)

var templates = map[Kind]string{
	KindInvitationReceived:  `%s (%s) invited you to the tryout "%s" at %s on %s`,
	KindInvitationAccepted:  `%s accepted your invitation to the tryout "%s"`,
	KindInvitationDeclined:  `%s declined your invitation to the tryout "%s"`,
	KindInvitationCancelled: `%s cancelled your invitation to the tryout "%s"`,
	KindTryoutRequest:       `%s requested to join your tryout "%s"`,
	KindRequestAccepted:     `%s accepted your request to join the tryout "%s"`,
	KindRequestDeclined:     `%s declined your request to join the tryout "%s"`,
	KindTryoutCancelled:     `The tryout "%s" at %s has been cancelled`,
	KindVideoLiked:          `%s liked your %s "%s"`,
	KindVideoCommented:      `%s commented on your %s "%s": %s`,
	KindShortlisted:         `%s from %s added you to their shortlist`,
	KindProfileShared:       `%s shared their player profile with you: %s`,
	KindMediaReviewed:       `Your %s "%s" was %s by a moderator`,
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Kind      Kind      `gorm:"type:varchar(40);not null" json:"kind"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
