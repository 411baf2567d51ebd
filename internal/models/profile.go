package models

import "gorm.io/datatypes"

// Profile is the public face of a user: display name, avatar and
// VFX-specific career fields. One profile per user.
type Profile struct {
	BaseModel
	UserID      string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DisplayName string         `gorm:"not null" json:"display_name"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	Headline    string         `json:"headline,omitempty"`
	Bio         string         `gorm:"type:text" json:"bio,omitempty"`
	Location    string         `json:"location,omitempty"`
	Specialism  string         `gorm:"type:varchar(40)" json:"specialism,omitempty"`
	Software    datatypes.JSON `gorm:"type:jsonb" json:"software,omitempty"`
	ReelLinks   datatypes.JSON `gorm:"type:jsonb" json:"reel_links,omitempty"`
	Available   bool           `gorm:"default:true" json:"available"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileSummary is the subset of profile fields embedded in
// conversation and notification payloads.
type ProfileSummary struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Headline    string `json:"headline,omitempty"`
}

func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Headline:    p.Headline,
	}
}
