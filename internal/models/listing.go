package models

import "time"

// ApplicationStatus tracks one applicant's state on a listing.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type StartupStatus string

const (
	StartupActive StartupStatus = "active"
	StartupClosed StartupStatus = "closed"
	StartupPaused StartupStatus = "paused"
)

type GigStatus string

const (
	GigOpen       GigStatus = "open"
	GigClosed     GigStatus = "closed"
	GigInProgress GigStatus = "in-progress"
	GigCompleted  GigStatus = "completed"
)

// Application is embedded in a listing's applicants array, never stored as
// its own document. The profile snapshot is captured at application time and
// deliberately never synced with later profile edits: listing views render
// from it without a join.
type Application struct {
	UserID      string             `json:"userId" bson:"user_id"`
	AppliedAt   time.Time          `json:"appliedAt" bson:"applied_at"`
	Status      ApplicationStatus  `json:"status" bson:"status"`
	CoverLetter string             `json:"coverLetter,omitempty" bson:"cover_letter,omitempty"`
	Portfolio   string             `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
	UserProfile *ApplicantSnapshot `json:"userProfile,omitempty" bson:"user_profile,omitempty"`
}

// ApplicantSnapshot is the denormalized slice of the applicant's profile
// frozen into the application.
type ApplicantSnapshot struct {
	Name              string   `json:"name" bson:"name"`
	Email             string   `json:"email" bson:"email"`
	Avatar            string   `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Skills            []string `json:"skills" bson:"skills"`
	Rating            float64  `json:"rating" bson:"rating"`
	CompletedProjects int      `json:"completedProjects" bson:"completed_projects"`
}

// Startup is an opportunity listing that accepts applications.
// ApplicantCount is denormalized and must equal len(Applicants).
type Startup struct {
	ID             string        `json:"id" bson:"_id"`
	Name           string        `json:"name" bson:"name"`
	Description    string        `json:"description" bson:"description"`
	Industry       string        `json:"industry" bson:"industry"`
	Stage          string        `json:"stage" bson:"stage"`
	Location       string        `json:"location" bson:"location"`
	CreatedBy      string        `json:"createdBy" bson:"created_by"`
	Applicants     []Application `json:"applicants" bson:"applicants"`
	ApplicantCount int           `json:"applicantCount" bson:"applicant_count"`
	Status         StartupStatus `json:"status" bson:"status"`
	Funding        string        `json:"funding" bson:"funding"`
	Equity         string        `json:"equity" bson:"equity"`
	Requirements   []string      `json:"requirements" bson:"requirements"`
	CreatedAt      time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updated_at"`
}

// FreelanceGig mirrors Startup with gig-specific fields.
type FreelanceGig struct {
	ID             string        `json:"id" bson:"_id"`
	Title          string        `json:"title" bson:"title"`
	Description    string        `json:"description" bson:"description"`
	Tags           []string      `json:"tags" bson:"tags"`
	Budget         string        `json:"budget" bson:"budget"`
	Duration       string        `json:"duration" bson:"duration"`
	PostedBy       string        `json:"postedBy" bson:"posted_by"`
	Applicants     []Application `json:"applicants" bson:"applicants"`
	ApplicantCount int           `json:"applicantCount" bson:"applicant_count"`
	Status         GigStatus     `json:"status" bson:"status"`
	Requirements   []string      `json:"requirements" bson:"requirements"`
	CreatedAt      time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updated_at"`
}

type CreateStartupRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Industry     string        `json:"industry"`
	Stage        string        `json:"stage"`
	Location     string        `json:"location"`
	CreatedBy    string        `json:"createdBy"`
	Status       StartupStatus `json:"status"`
	Funding      string        `json:"funding"`
	Equity       string        `json:"equity"`
	Requirements []string      `json:"requirements"`
}

func (r *CreateStartupRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.CreatedBy == "" {
		errors["createdBy"] = "Creator is required"
	}

	return errors
}

type CreateGigRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	Budget       string    `json:"budget"`
	Duration     string    `json:"duration"`
	PostedBy     string    `json:"postedBy"`
	Status       GigStatus `json:"status"`
	Requirements []string  `json:"requirements"`
}

func (r *CreateGigRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.PostedBy == "" {
		errors["postedBy"] = "Poster is required"
	}

	return errors
}

// ApplicationRequest carries the optional free-text parts of an application.
type ApplicationRequest struct {
	CoverLetter string `json:"coverLetter"`
	Portfolio   string `json:"portfolio"`
}
