package models

import "time"

// Room is a smaller, possibly-private collaboration space with its own
// membership and message stream. LastActivity is bumped on every send.
type Room struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Members      []string  `json:"members" bson:"members"`
	CreatedBy    string    `json:"createdBy" bson:"created_by"`
	IsPrivate    bool      `json:"isPrivate" bson:"is_private"`
	Messages     []string  `json:"messages" bson:"messages"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	LastActivity time.Time `json:"lastActivity" bson:"last_activity"`
}

// MessageType discriminates message payloads.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
	MessageTypeVideo MessageType = "video"
)

type Message struct {
	ID         string      `json:"id" bson:"_id"`
	RoomID     string      `json:"roomId" bson:"room_id"`
	SenderID   string      `json:"senderId" bson:"sender_id"`
	Content    string      `json:"content" bson:"content"`
	Type       MessageType `json:"type" bson:"type"`
	Attachment *Attachment `json:"attachment,omitempty" bson:"attachment,omitempty"`
	Timestamp  time.Time   `json:"timestamp" bson:"timestamp"`
}

// Attachment describes an uploaded file referenced by a message. Size is a
// human-readable display string, not a byte count.
type Attachment struct {
	URL  string `json:"url" bson:"url"`
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
	Size string `json:"size,omitempty" bson:"size,omitempty"`
}

type CreateRoomRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	CreatedBy   string   `json:"createdBy"`
	IsPrivate   bool     `json:"isPrivate"`
}

func (r *CreateRoomRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.CreatedBy == "" {
		errors["createdBy"] = "Creator is required"
	}

	return errors
}

type SendMessageRequest struct {
	RoomID     string      `json:"roomId"`
	SenderID   string      `json:"senderId"`
	Content    string      `json:"content"`
	Type       MessageType `json:"type"`
	Attachment *Attachment `json:"attachment"`
}

func (r *SendMessageRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.RoomID == "" {
		errors["roomId"] = "Room ID is required"
	}
	if r.SenderID == "" {
		errors["senderId"] = "Sender ID is required"
	}
	if r.Content == "" && r.Attachment == nil {
		errors["content"] = "Content or attachment is required"
	}

	return errors
}
