package models

import "time"

// UserProfile is the per-identity profile document, keyed by the auth UID.
// Exactly one exists per identity; it is created lazily on first sign-in.
type UserProfile struct {
	UID                string           `json:"uid" bson:"_id"`
	Email              string           `json:"email" bson:"email"`
	DisplayName        string           `json:"displayName" bson:"display_name"`
	PhotoURL           string           `json:"photoURL,omitempty" bson:"photo_url,omitempty"`
	Bio                string           `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills             []string         `json:"skills" bson:"skills"`
	Interests          []string         `json:"interests" bson:"interests"`
	Location           string           `json:"location,omitempty" bson:"location,omitempty"`
	JoinedPods         []string         `json:"joinedPods" bson:"joined_pods"`
	JoinedRooms        []string         `json:"joinedRooms" bson:"joined_rooms"`
	PostedStartups     []string         `json:"postedStartups" bson:"posted_startups"`
	PostedGigs         []string         `json:"postedGigs" bson:"posted_gigs"`
	AppliedGigs        []AppliedGig     `json:"appliedGigs" bson:"applied_gigs"`
	AppliedStartups    []AppliedStartup `json:"appliedStartups" bson:"applied_startups"`
	BookmarkedGigs     []string         `json:"bookmarkedGigs" bson:"bookmarked_gigs"`
	BookmarkedStartups []string         `json:"bookmarkedStartups" bson:"bookmarked_startups"`
	Bookmarks          []string         `json:"bookmarks" bson:"bookmarks"`
	ActivityLog        []map[string]any `json:"activityLog" bson:"activity_log"`
	Rating             float64          `json:"rating" bson:"rating"`
	CompletedProjects  int              `json:"completedProjects" bson:"completed_projects"`
	TotalEarnings      string           `json:"totalEarnings" bson:"total_earnings"`
	JoinDate           time.Time        `json:"joinDate" bson:"join_date"`
}

// AppliedGig is the compact applied-record kept on the profile. The full
// application (with the profile snapshot) lives on the gig document.
type AppliedGig struct {
	GigID     string    `json:"gigId" bson:"gig_id"`
	AppliedAt time.Time `json:"appliedAt" bson:"applied_at"`
	Status    string    `json:"status" bson:"status"`
}

type AppliedStartup struct {
	StartupID string    `json:"startupId" bson:"startup_id"`
	AppliedAt time.Time `json:"appliedAt" bson:"applied_at"`
	Status    string    `json:"status" bson:"status"`
}

// UpdateProfileRequest carries user-editable profile fields. Nil means
// "leave unchanged". Membership, application and bookmark lists are managed
// by their own operations and cannot be edited here.
type UpdateProfileRequest struct {
	DisplayName *string   `json:"displayName"`
	PhotoURL    *string   `json:"photoURL"`
	Bio         *string   `json:"bio"`
	Skills      *[]string `json:"skills"`
	Interests   *[]string `json:"interests"`
	Location    *string   `json:"location"`
}
