package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileCriteria filters the public artist directory.
type ProfileCriteria struct {
	Specialism string `form:"specialism"`
	Location   string `form:"location"`
	Available  *bool  `form:"available"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByUserID(userID string) (*models.Profile, error)
	FindSummariesByUserIDs(userIDs []string) (map[string]models.ProfileSummary, error)
	Search(criteria ProfileCriteria) ([]models.Profile, int64, error)
	Update(profile *models.Profile) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindSummariesByUserIDs loads display metadata for a set of users in
// one query. Users without a profile are simply absent from the map.
func (r *ProfileRepositoryImpl) FindSummariesByUserIDs(userIDs []string) (map[string]models.ProfileSummary, error) {
	summaries := make(map[string]models.ProfileSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	var profiles []models.Profile
	err := r.db.
		Select("user_id", "display_name", "avatar_url", "headline").
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		summaries[profiles[i].UserID] = profiles[i].Summary()
	}
	return summaries, nil
}

func (r *ProfileRepositoryImpl) Search(criteria ProfileCriteria) ([]models.Profile, int64, error) {
	query := r.db.Model(&models.Profile{})

	if criteria.Specialism != "" {
		query = query.Where("specialism = ?", criteria.Specialism)
	}
	if criteria.Location != "" {
		query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+criteria.Location+"%")
	}
	if criteria.Available != nil {
		query = query.Where("available = ?", *criteria.Available)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("LOWER(display_name) LIKE LOWER(?) OR LOWER(headline) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}

	var profiles []models.Profile
	err := query.Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *ProfileRepositoryImpl) Update(profile *models.Profile) error {
	result := r.db.Model(&models.Profile{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"display_name": profile.DisplayName,
			"avatar_url":   profile.AvatarURL,
			"headline":     profile.Headline,
			"bio":          profile.Bio,
			"location":     profile.Location,
			"specialism":   profile.Specialism,
			"software":     profile.Software,
			"reel_links":   profile.ReelLinks,
			"available":    profile.Available,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
