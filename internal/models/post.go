package models

import "time"

// Post belongs to exactly one pod. Likes carry set semantics: a user id
// appears at most once no matter how many times it is added.
type Post struct {
	ID        string    `json:"id" bson:"_id"`
	PodID     string    `json:"podId" bson:"pod_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	Content   string    `json:"content" bson:"content"`
	ImageURL  string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Likes     []string  `json:"likes" bson:"likes"`
	Replies   []string  `json:"replies" bson:"replies"`
	Bookmarks []string  `json:"bookmarks" bson:"bookmarks"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Reply is a standalone reply document referencing its parent post.
type Reply struct {
	ID        string    `json:"id" bson:"_id"`
	PostID    string    `json:"postId" bson:"post_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type CreatePostRequest struct {
	PodID    string `json:"podId"`
	UserID   string `json:"userId"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.PodID == "" {
		errors["podId"] = "Pod ID is required"
	}
	if r.UserID == "" {
		errors["userId"] = "User ID is required"
	}
	if r.Content == "" {
		errors["content"] = "Content is required"
	}

	return errors
}
