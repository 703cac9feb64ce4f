package models

import (
	"encoding/json"
	"time"
)

// StaffMember represents a healthcare worker in the directory.
// Rating, ReliabilityScore and TotalShifts are server-computed aggregates;
// clients never write them directly.
// The nested collections (certifications, skills, work history, education,
// documents, social stats) are stored as JSONB and treated as opaque display
// data by the service layer.
type StaffMember struct {
	ID               int64           `json:"id" db:"id"`
	UserID           *int64          `json:"user_id,omitempty" db:"user_id"` // Link to users table for login
	FirstName        string          `json:"first_name" db:"first_name"`
	LastName         string          `json:"last_name" db:"last_name"`
	Email            *string         `json:"email,omitempty" db:"email"`
	PhoneNumber      *string         `json:"phone_number,omitempty" db:"phone_number"`
	Specialty        string          `json:"specialty" db:"specialty"`
	WorkerType       *string         `json:"worker_type,omitempty" db:"worker_type"`         // e.g. internal, agency, 1099
	EmploymentType   *string         `json:"employment_type,omitempty" db:"employment_type"` // e.g. full_time, part_time, per_diem
	HourlyRate       *float64        `json:"hourly_rate,omitempty" db:"hourly_rate"`
	Rating           *float64        `json:"rating,omitempty" db:"rating"`
	ReliabilityScore *float64        `json:"reliability_score,omitempty" db:"reliability_score"`
	TotalShifts      int             `json:"total_shifts" db:"total_shifts"`
	ProfileImageURL  *string         `json:"profile_image_url,omitempty" db:"profile_image_url"`
	IsActive         bool            `json:"is_active" db:"is_active"`
	Certifications   json.RawMessage `json:"certifications,omitempty" db:"certifications"`
	Skills           json.RawMessage `json:"skills,omitempty" db:"skills"`
	WorkHistory      json.RawMessage `json:"work_history,omitempty" db:"work_history"`
	Education        json.RawMessage `json:"education,omitempty" db:"education"`
	Documents        json.RawMessage `json:"documents,omitempty" db:"documents"`
	SocialStats      json.RawMessage `json:"social_stats,omitempty" db:"social_stats"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
	Facilities       []Facility      `json:"facilities,omitempty"` // Assigned facilities, joined on read
}

// StaffPost is a post on the staff social feed.
type StaffPost struct {
	ID         int64     `json:"id" db:"id"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Content    string    `json:"content" db:"content"`
	Likes      int       `json:"likes" db:"likes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
