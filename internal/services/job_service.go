package services

import (
	"errors"

	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(ownerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(jobID string) (*dto.JobResponse, error)
	Search(criteria repositories.JobCriteria) (*dto.JobListResponse, error)
	UpdateJob(ownerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	CloseJob(ownerID, jobID string) error
	DeleteJob(ownerID, jobID string) error
}

type jobService struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

func (s *jobService) CreateJob(ownerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if req.RateMax > 0 && req.RateMin > req.RateMax {
		return nil, apperrors.NewBadRequestError("rate_min must not exceed rate_max")
	}

	job := &models.Job{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Specialism:  req.Specialism,
		Software:    dto.EncodeStringList(req.Software),
		Location:    req.Location,
		Remote:      req.Remote,
		RateMin:     req.RateMin,
		RateMax:     req.RateMax,
		Status:      models.JobStatusOpen,
		Deadline:    req.Deadline,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

func (s *jobService) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToJobResponse(job)
	return &resp, nil
}

func (s *jobService) Search(criteria repositories.JobCriteria) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.Search(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, dto.ToJobResponse(&jobs[i]))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.JobListResponse{
		Jobs:     responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateJob only touches rows owned by the caller; anything else
// reads as not found.
func (s *jobService) UpdateJob(ownerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound(repositories.ErrJobNotFound)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Specialism != nil {
		job.Specialism = *req.Specialism
	}
	if req.Software != nil {
		job.Software = dto.EncodeStringList(req.Software)
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.RateMin != nil {
		job.RateMin = *req.RateMin
	}
	if req.RateMax != nil {
		job.RateMax = *req.RateMax
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}

	if job.RateMax > 0 && job.RateMin > job.RateMax {
		return nil, apperrors.NewBadRequestError("rate_min must not exceed rate_max")
	}

	if err := s.jobRepo.Update(job); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

func (s *jobService) CloseJob(ownerID, jobID string) error {
	err := s.jobRepo.UpdateStatus(ownerID, jobID, models.JobStatusClosed)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *jobService) DeleteJob(ownerID, jobID string) error {
	err := s.jobRepo.Delete(ownerID, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
