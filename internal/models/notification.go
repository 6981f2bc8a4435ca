package models

import "time"

type NotificationType string

const (
	NotificationPodActivity        NotificationType = "pod_activity"
	NotificationRoomMessage        NotificationType = "room_message"
	NotificationGigApplication     NotificationType = "gig_application"
	NotificationStartupApplication NotificationType = "startup_application"
	NotificationStatusChange       NotificationType = "status_change"
)

// Notification is a per-recipient inbox entry. Seen defaults to false and
// only ever flips forward.
type Notification struct {
	ID        string           `json:"id" bson:"_id"`
	UserID    string           `json:"userId" bson:"user_id"`
	Type      NotificationType `json:"type" bson:"type"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Seen      bool             `json:"seen" bson:"seen"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
	RelatedID string           `json:"relatedId,omitempty" bson:"related_id,omitempty"`
}

type CreateNotificationRequest struct {
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	RelatedID string           `json:"relatedId"`
}

func (r *CreateNotificationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserID == "" {
		errors["userId"] = "Recipient is required"
	}
	if r.Type == "" {
		errors["type"] = "Type is required"
	}

	return errors
}
