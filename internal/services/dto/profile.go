package dto

import "time"

type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name,omitempty" validate:"omitempty,notblank,max=100"`
	AvatarURL   *string  `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Headline    *string  `json:"headline,omitempty" validate:"omitempty,max=140"`
	Bio         *string  `json:"bio,omitempty" validate:"omitempty,max=4000"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=100"`
	Specialism  *string  `json:"specialism,omitempty" validate:"omitempty,specialism"`
	Software    []string `json:"software,omitempty" validate:"omitempty,max=20,dive,max=60"`
	ReelLinks   []string `json:"reel_links,omitempty" validate:"omitempty,max=10,dive,url"`
	Available   *bool    `json:"available,omitempty"`
}

type ProfileResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Headline    string    `json:"headline,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	Specialism  string    `json:"specialism,omitempty"`
	Software    []string  `json:"software,omitempty"`
	ReelLinks   []string  `json:"reel_links,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}
