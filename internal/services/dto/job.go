package dto

import (
	"time"

	"vfxhub_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,notblank,max=140"`
	Description string     `json:"description" validate:"required,max=8000"`
	Specialism  string     `json:"specialism,omitempty" validate:"omitempty,specialism"`
	Software    []string   `json:"software,omitempty" validate:"omitempty,max=20,dive,max=60"`
	Location    string     `json:"location,omitempty" validate:"omitempty,max=100"`
	Remote      bool       `json:"remote"`
	RateMin     int        `json:"rate_min,omitempty" validate:"omitempty,gte=0"`
	RateMax     int        `json:"rate_max,omitempty" validate:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,notblank,max=140"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=8000"`
	Specialism  *string    `json:"specialism,omitempty" validate:"omitempty,specialism"`
	Software    []string   `json:"software,omitempty" validate:"omitempty,max=20,dive,max=60"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=100"`
	Remote      *bool      `json:"remote,omitempty"`
	RateMin     *int       `json:"rate_min,omitempty" validate:"omitempty,gte=0"`
	RateMax     *int       `json:"rate_max,omitempty" validate:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type JobResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Specialism  string     `json:"specialism,omitempty"`
	Software    []string   `json:"software,omitempty"`
	Location    string     `json:"location,omitempty"`
	Remote      bool       `json:"remote"`
	RateMin     int        `json:"rate_min,omitempty"`
	RateMax     int        `json:"rate_max,omitempty"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

func ToJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		OwnerID:     j.OwnerID,
		Title:       j.Title,
		Description: j.Description,
		Specialism:  j.Specialism,
		Software:    DecodeStringList(j.Software),
		Location:    j.Location,
		Remote:      j.Remote,
		RateMin:     j.RateMin,
		RateMax:     j.RateMax,
		Status:      j.Status,
		Deadline:    j.Deadline,
		CreatedAt:   j.CreatedAt,
	}
}
