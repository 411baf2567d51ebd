package services

import (
	"errors"

	"vfxhub_backend/internal/email"
	"vfxhub_backend/internal/logger"
	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

type ProposalService interface {
	Submit(applicantID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error)
	GetForJob(ownerID, jobID string) ([]dto.ProposalResponse, error)
	GetMine(applicantID string) ([]dto.ProposalResponse, error)
	Decide(ownerID, proposalID string, req *dto.DecideProposalRequest) error
	Withdraw(applicantID, proposalID string) error
}

type proposalService struct {
	proposalRepo  repositories.ProposalRepository
	jobRepo       repositories.JobRepository
	profileRepo   repositories.ProfileRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	emails        email.Provider
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	emails email.Provider,
) ProposalService {
	if emails == nil {
		emails = email.NoopProvider{}
	}
	return &proposalService{
		proposalRepo:  proposalRepo,
		jobRepo:       jobRepo,
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		notifications: notifications,
		emails:        emails,
	}
}

func (s *proposalService) Submit(applicantID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	job, err := s.jobRepo.FindByID(req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.OwnerID == applicantID {
		return nil, apperrors.ErrInvalidOperation("jobs", "Cannot apply to your own job")
	}
	if !job.IsOpen() {
		return nil, apperrors.ErrJobClosed
	}

	if _, err := s.proposalRepo.FindByJobAndApplicant(req.JobID, applicantID); err == nil {
		return nil, apperrors.ErrDuplicateProposal
	} else if !errors.Is(err, repositories.ErrProposalNotFound) {
		return nil, apperrors.InternalError(err)
	}

	proposal := &models.Proposal{
		JobID:       req.JobID,
		ApplicantID: applicantID,
		CoverLetter: req.CoverLetter,
		RateOffer:   req.RateOffer,
		Status:      models.ProposalStatusPending,
	}

	if err := s.proposalRepo.Create(proposal); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifications.NotifyNewProposal(job.OwnerID, s.applicantName(applicantID), job.Title, proposal.ID); err != nil {
		logger.WithError(err).Warn("proposal notification failed", "proposal_id", proposal.ID)
	}

	resp := dto.ToProposalResponse(proposal)
	return &resp, nil
}

// GetForJob lists a job's proposals for its owner only.
func (s *proposalService) GetForJob(ownerID, jobID string) ([]dto.ProposalResponse, error) {
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

	proposals, err := s.proposalRepo.FindByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		responses = append(responses, dto.ToProposalResponse(&proposals[i]))
	}
	return responses, nil
}

func (s *proposalService) GetMine(applicantID string) ([]dto.ProposalResponse, error) {
	proposals, err := s.proposalRepo.FindByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		responses = append(responses, dto.ToProposalResponse(&proposals[i]))
	}
	return responses, nil
}

// Decide moves a pending proposal to accepted or rejected. Accepting
// also marks the job filled.
func (s *proposalService) Decide(ownerID, proposalID string, req *dto.DecideProposalRequest) error {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if proposal.Job == nil || proposal.Job.OwnerID != ownerID {
		return apperrors.ErrNotFound(repositories.ErrProposalNotFound)
	}
	if proposal.IsDecided() {
		return apperrors.ErrProposalDecided
	}
	if proposal.Status == models.ProposalStatusWithdrawn {
		return apperrors.ErrInvalidStatus("jobs", "This proposal was withdrawn")
	}

	if err := s.proposalRepo.UpdateStatus(proposalID, req.Status); err != nil {
		return apperrors.InternalError(err)
	}

	if req.Status == models.ProposalStatusAccepted {
		if err := s.jobRepo.UpdateStatus(ownerID, proposal.JobID, models.JobStatusFilled); err != nil {
			logger.WithError(err).Warn("failed to mark job filled", "job_id", proposal.JobID)
		}
	}

	if err := s.notifications.NotifyProposalDecision(proposal.ApplicantID, proposal.Job.Title, req.Status, proposalID); err != nil {
		logger.WithError(err).Warn("decision notification failed", "proposal_id", proposalID)
	}

	go s.sendDecisionEmail(proposal, req.Status)
	return nil
}

func (s *proposalService) sendDecisionEmail(proposal *models.Proposal, status string) {
	applicant, err := s.userRepo.FindByID(proposal.ApplicantID)
	if err != nil {
		logger.WithError(err).Warn("decision email skipped", "proposal_id", proposal.ID)
		return
	}

	msg := &email.EmailMessage{
		To:      []string{applicant.Email},
		Subject: "Your proposal was " + status,
		Body:    "Your proposal for \"" + proposal.Job.Title + "\" was " + status + ".\n",
	}
	if err := s.emails.Send(msg); err != nil {
		logger.WithError(err).Warn("decision email failed", "proposal_id", proposal.ID)
	}
}

func (s *proposalService) Withdraw(applicantID, proposalID string) error {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if proposal.ApplicantID != applicantID {
		return apperrors.ErrNotFound(repositories.ErrProposalNotFound)
	}
	if proposal.Status != models.ProposalStatusPending {
		return apperrors.ErrInvalidStatus("jobs", "Only pending proposals can be withdrawn")
	}

	if err := s.proposalRepo.UpdateStatus(proposalID, models.ProposalStatusWithdrawn); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *proposalService) applicantName(applicantID string) string {
	profile, err := s.profileRepo.FindByUserID(applicantID)
	if err != nil || profile.DisplayName == "" {
		return "An artist"
	}
	return profile.DisplayName
}
