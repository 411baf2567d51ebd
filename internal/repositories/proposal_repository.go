package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	FindByID(id string) (*models.Proposal, error)
	FindByJobAndApplicant(jobID, applicantID string) (*models.Proposal, error)
	FindByJob(jobID string) ([]models.Proposal, error)
	FindByApplicant(applicantID string) ([]models.Proposal, error)
	UpdateStatus(id, status string) error
	CountPendingByJob(jobID string) (int64, error)
}

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

func (r *ProposalRepositoryImpl) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByID(id string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Preload("Job").First(&proposal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByJobAndApplicant(jobID, applicantID string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.First(&proposal, "job_id = ? AND applicant_id = ?", jobID, applicantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByJob(jobID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) FindByApplicant(applicantID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) UpdateStatus(id, status string) error {
	result := r.db.Model(&models.Proposal{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryImpl) CountPendingByJob(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).
		Where("job_id = ? AND status = ?", jobID, models.ProposalStatusPending).
		Count(&count).Error
	return count, err
}
