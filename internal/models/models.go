package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleJobseeker = "jobseeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// Base gives every table a string UUID key filled in on insert.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"not null"                      json:"-"`
	Name         string `gorm:"size:120"                      json:"name"`
	Role         string `gorm:"size:20;not null;index"        json:"role"`
	Phone        string `gorm:"size:40"                       json:"phone,omitempty"`
	Location     string `gorm:"size:120"                      json:"location,omitempty"`
	Bio          string `gorm:"type:text"                     json:"bio,omitempty"`
}

type RefreshToken struct {
	ID        string     `gorm:"primaryKey;size:36"              json:"id"`
	TokenHash string     `gorm:"uniqueIndex;size:64;not null"    json:"-"`
	UserID    string     `gorm:"index;size:36;not null"          json:"userId"`
	FamilyID  string     `gorm:"index;size:36;not null"          json:"familyId"`
	ParentID  *string    `gorm:"size:36"                         json:"parentId,omitempty"`
	ExpiresAt time.Time  `gorm:"not null"                        json:"expiresAt"`
	Revoked   bool       `gorm:"not null;default:false"          json:"revoked"`
	RevokedAt *time.Time `                                       json:"revokedAt,omitempty"`
	CreatedAt time.Time  `                                       json:"createdAt"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type Company struct {
	Base
	OwnerID     string `gorm:"index;size:36;not null"  json:"ownerId"`
	Name        string `gorm:"size:200;not null;index" json:"name"`
	Description string `gorm:"type:text"               json:"description"`
	Website     string `gorm:"size:255"                json:"website,omitempty"`
	Location    string `gorm:"size:120"                json:"location,omitempty"`
}

const (
	JobOpen   = "open"
	JobClosed = "closed"
)

var EmploymentTypes = []string{"full-time", "part-time", "contract", "internship", "temporary"}

type Job struct {
	Base
	CompanyID      string   `gorm:"index;size:36;not null" json:"companyId"`
	PostedBy       string   `gorm:"index;size:36;not null" json:"postedBy"`
	Title          string   `gorm:"size:200;not null"      json:"title"`
	Description    string   `gorm:"type:text;not null"     json:"description"`
	Location       string   `gorm:"size:120;index"         json:"location"`
	EmploymentType string   `gorm:"size:20;index"          json:"employmentType"`
	SalaryMin      int64    `                              json:"salaryMin"`
	SalaryMax      int64    `                              json:"salaryMax"`
	Remote         bool     `gorm:"not null;default:false" json:"remote"`
	Status         string   `gorm:"size:10;not null;index" json:"status"`
	Company        *Company `gorm:"foreignKey:CompanyID"   json:"company,omitempty"`
}

const (
	AppPending   = "pending"
	AppReviewing = "reviewing"
	AppInterview = "interview"
	AppAccepted  = "accepted"
	AppRejected  = "rejected"
	AppWithdrawn = "withdrawn"
)

type Application struct {
	Base
	JobID       string `gorm:"uniqueIndex:idx_application_job_applicant;size:36;not null" json:"jobId"`
	ApplicantID string `gorm:"uniqueIndex:idx_application_job_applicant;size:36;not null;index" json:"applicantId"`
	CoverLetter string `gorm:"type:text"                  json:"coverLetter,omitempty"`
	ResumeURL   string `gorm:"size:500"                   json:"resumeUrl,omitempty"`
	Status      string `gorm:"size:20;not null;index"     json:"status"`
	Job         *Job   `gorm:"foreignKey:JobID"           json:"job,omitempty"`
	Applicant   *User  `gorm:"foreignKey:ApplicantID"     json:"applicant,omitempty"`
}

type SavedJob struct {
	ID        string    `gorm:"primaryKey;size:36"                                   json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_saved_user_job;size:36;not null"      json:"userId"`
	JobID     string    `gorm:"uniqueIndex:idx_saved_user_job;size:36;not null"      json:"jobId"`
	CreatedAt time.Time `                                                            json:"createdAt"`
	Job       *Job      `gorm:"foreignKey:JobID"                                     json:"job,omitempty"`
}

func (s *SavedJob) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

const (
	NotifyApplicationReceived = "application_received"
	NotifyApplicationStatus   = "application_status"
	NotifyJobAlert            = "job_alert"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;size:36"     json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"userId"`
	Type      string    `gorm:"size:40;not null"       json:"type"`
	Title     string    `gorm:"size:200;not null"      json:"title"`
	Message   string    `gorm:"type:text"              json:"message"`
	Link      string    `gorm:"size:255"               json:"link,omitempty"`
	Read      bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index"                  json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

type JobAlert struct {
	Base
	UserID         string `gorm:"index;size:36;not null" json:"userId"`
	Keywords       string `gorm:"size:200"               json:"keywords"`
	Location       string `gorm:"size:120"               json:"location,omitempty"`
	EmploymentType string `gorm:"size:20"                json:"employmentType,omitempty"`
	RemoteOnly     bool   `gorm:"not null"               json:"remoteOnly"`
	Active         bool   `gorm:"not null"               json:"active"`
}

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &RefreshToken{}, &Company{}, &Job{}, &Application{},
		&SavedJob{}, &Notification{}, &JobAlert{},
	}
}
