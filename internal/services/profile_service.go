package services

import (
	"errors"

	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

type ProfileService interface {
	GetProfile(userID string) (*dto.ProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	Search(criteria repositories.ProfileCriteria) (*dto.ProfileListResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Headline != nil {
		profile.Headline = *req.Headline
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Specialism != nil {
		profile.Specialism = *req.Specialism
	}
	if req.Software != nil {
		profile.Software = dto.EncodeStringList(req.Software)
	}
	if req.ReelLinks != nil {
		profile.ReelLinks = dto.EncodeStringList(req.ReelLinks)
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *profileService) Search(criteria repositories.ProfileCriteria) (*dto.ProfileListResponse, error) {
	profiles, total, err := s.profileRepo.Search(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, toProfileResponse(&profiles[i]))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.ProfileListResponse{
		Profiles: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Headline:    p.Headline,
		Bio:         p.Bio,
		Location:    p.Location,
		Specialism:  p.Specialism,
		Software:    dto.DecodeStringList(p.Software),
		ReelLinks:   dto.DecodeStringList(p.ReelLinks),
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
	}
}
