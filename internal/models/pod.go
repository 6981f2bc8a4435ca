package models

import "time"

// Pod is a persistent community group with membership and posts.
// MemberCount is denormalized and must always equal len(Members); the two are
// updated together (array mutation paired with an atomic counter bump).
type Pod struct {
	ID              string           `json:"id" bson:"_id"`
	Name            string           `json:"name" bson:"name"`
	Slug            string           `json:"slug" bson:"slug"`
	Description     string           `json:"description" bson:"description"`
	Theme           string           `json:"theme" bson:"theme"`
	Icon            string           `json:"icon" bson:"icon"`
	Members         []string         `json:"members" bson:"members"`
	Posts           []string         `json:"posts" bson:"posts"`
	Events          []PodEvent       `json:"events" bson:"events"`
	PinnedResources []PinnedResource `json:"pinnedResources" bson:"pinned_resources"`
	MemberCount     int              `json:"memberCount" bson:"member_count"`
	IsActive        bool             `json:"isActive" bson:"is_active"`
	CreatedAt       time.Time        `json:"createdAt" bson:"created_at"`
}

type PodEvent struct {
	Title       string `json:"title" bson:"title"`
	Date        string `json:"date" bson:"date"`
	Description string `json:"description" bson:"description"`
}

type PinnedResource struct {
	Title string `json:"title" bson:"title"`
	URL   string `json:"url" bson:"url"`
	Type  string `json:"type" bson:"type"`
}

type CreatePodRequest struct {
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Theme           string           `json:"theme"`
	Icon            string           `json:"icon"`
	Members         []string         `json:"members"`
	Events          []PodEvent       `json:"events"`
	PinnedResources []PinnedResource `json:"pinnedResources"`
	IsActive        bool             `json:"isActive"`
}

func (r *CreatePodRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Slug == "" {
		errors["slug"] = "Slug is required"
	}

	return errors
}
