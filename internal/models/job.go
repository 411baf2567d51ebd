package models

import (
	"time"

	"gorm.io/datatypes"
)

// Job statuses.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusFilled = "filled"
)

// Job is a studio-posted listing artists apply to.
type Job struct {
	BaseModel
	OwnerID     string         `gorm:"type:uuid;index;not null" json:"owner_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Specialism  string         `gorm:"type:varchar(40)" json:"specialism,omitempty"`
	Software    datatypes.JSON `gorm:"type:jsonb" json:"software,omitempty"`
	Location    string         `json:"location,omitempty"`
	Remote      bool           `gorm:"default:false" json:"remote"`
	RateMin     int            `json:"rate_min,omitempty"`
	RateMax     int            `json:"rate_max,omitempty"`
	Status      string         `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Deadline    *time.Time     `json:"deadline,omitempty"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) IsOpen() bool {
	if j.Status != JobStatusOpen {
		return false
	}
	if j.Deadline != nil && time.Now().After(*j.Deadline) {
		return false
	}
	return true
}
