package dto

import (
	"time"

	"vfxhub_backend/internal/models"
)

type CreateProposalRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid4"`
	CoverLetter string `json:"cover_letter" validate:"required,notblank,max=8000"`
	RateOffer   int    `json:"rate_offer,omitempty" validate:"omitempty,gte=0"`
}

type DecideProposalRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type ProposalResponse struct {
	ID          string       `json:"id"`
	JobID       string       `json:"job_id"`
	ApplicantID string       `json:"applicant_id"`
	CoverLetter string       `json:"cover_letter"`
	RateOffer   int          `json:"rate_offer,omitempty"`
	Status      string       `json:"status"`
	Job         *JobResponse `json:"job,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

func ToProposalResponse(p *models.Proposal) ProposalResponse {
	resp := ProposalResponse{
		ID:          p.ID,
		JobID:       p.JobID,
		ApplicantID: p.ApplicantID,
		CoverLetter: p.CoverLetter,
		RateOffer:   p.RateOffer,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
	if p.Job != nil {
		job := ToJobResponse(p.Job)
		resp.Job = &job
	}
	return resp
}
