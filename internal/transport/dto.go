package transport

import (
	"time"

	"github.com/Skotchmaster/job_board/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password,max=72"`
	Name     string `json:"name"     validate:"omitempty,max=120"`
	Role     string `json:"role"     validate:"omitempty,oneof=jobseeker employer"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken           string       `json:"accessToken"`
	RefreshToken          string       `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time    `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time    `json:"refreshTokenExpiresAt"`
	User                  *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=120"`
	Phone    *string `json:"phone"    validate:"omitempty,max=40"`
	Location *string `json:"location" validate:"omitempty,max=120"`
	Bio      *string `json:"bio"      validate:"omitempty,max=2000"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,password,max=72"`
}

type CreateCompanyRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Website     string `json:"website"     validate:"omitempty,url,max=255"`
	Location    string `json:"location"    validate:"omitempty,max=120"`
}

type PatchCompanyRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Website     *string `json:"website"     validate:"omitempty,url,max=255"`
	Location    *string `json:"location"    validate:"omitempty,max=120"`
}

type CreateJobRequest struct {
	CompanyID      string `json:"companyId"      validate:"required"`
	Title          string `json:"title"          validate:"required,max=200"`
	Description    string `json:"description"    validate:"required,max=20000"`
	Location       string `json:"location"       validate:"omitempty,max=120"`
	EmploymentType string `json:"employmentType" validate:"required,oneof=full-time part-time contract internship temporary"`
	SalaryMin      int64  `json:"salaryMin"      validate:"gte=0"`
	SalaryMax      int64  `json:"salaryMax"      validate:"gte=0"`
	Remote         bool   `json:"remote"`
}

type PatchJobRequest struct {
	Title          *string `json:"title"          validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description"    validate:"omitempty,min=1,max=20000"`
	Location       *string `json:"location"       validate:"omitempty,max=120"`
	EmploymentType *string `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship temporary"`
	SalaryMin      *int64  `json:"salaryMin"      validate:"omitempty,gte=0"`
	SalaryMax      *int64  `json:"salaryMax"      validate:"omitempty,gte=0"`
	Remote         *bool   `json:"remote"`
	Status         *string `json:"status"         validate:"omitempty,oneof=open closed"`
}

// JobListQuery is filled from query parameters by the jobs handler.
type JobListQuery struct {
	Q         string `query:"q"         validate:"omitempty,max=200"`
	Location  string `query:"location"  validate:"omitempty,max=120"`
	Type      string `query:"type"      validate:"omitempty,oneof=full-time part-time contract internship temporary"`
	Remote    string `query:"remote"    validate:"omitempty,oneof=true false"`
	CompanyID string `query:"companyId"`
	Status    string `query:"status"    validate:"omitempty,oneof=open closed all"`
	Page      int    `query:"page"`
	Size      int    `query:"size"`
}

type ApplyRequest struct {
	CoverLetter string `json:"coverLetter" validate:"omitempty,max=10000"`
	ResumeURL   string `json:"resumeUrl"   validate:"omitempty,url,max=500"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewing interview accepted rejected"`
}

type JobAlertRequest struct {
	Keywords       string `json:"keywords"       validate:"required,max=200"`
	Location       string `json:"location"       validate:"omitempty,max=120"`
	EmploymentType string `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship temporary"`
	RemoteOnly     bool   `json:"remoteOnly"`
	Active         *bool  `json:"active"`
}

type PatchJobAlertRequest struct {
	Keywords       *string `json:"keywords"       validate:"omitempty,min=1,max=200"`
	Location       *string `json:"location"       validate:"omitempty,max=120"`
	EmploymentType *string `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship temporary"`
	RemoteOnly     *bool   `json:"remoteOnly"`
	Active         *bool   `json:"active"`
}

type UnreadCount struct {
	Unread int64 `json:"unread"`
}
