package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobCriteria struct {
	Specialism string `form:"specialism"`
	Status     string `form:"status"`
	Remote     *bool  `form:"remote"`
	OwnerID    string `form:"owner_id"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	Search(criteria JobCriteria) ([]models.Job, int64, error)
	Update(job *models.Job) error
	UpdateStatus(ownerID, id, status string) error
	Delete(ownerID, id string) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Search(criteria JobCriteria) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if criteria.Specialism != "" {
		query = query.Where("specialism = ?", criteria.Specialism)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Remote != nil {
		query = query.Where("remote = ?", *criteria.Remote)
	}
	if criteria.OwnerID != "" {
		query = query.Where("owner_id = ?", criteria.OwnerID)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
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

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&jobs).Error

	return jobs, total, err
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ? AND owner_id = ?", job.ID, job.OwnerID).
		Updates(map[string]interface{}{
			"title":       job.Title,
			"description": job.Description,
			"specialism":  job.Specialism,
			"software":    job.Software,
			"location":    job.Location,
			"remote":      job.Remote,
			"rate_min":    job.RateMin,
			"rate_max":    job.RateMax,
			"deadline":    job.Deadline,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(ownerID, id, status string) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(ownerID, id string) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
