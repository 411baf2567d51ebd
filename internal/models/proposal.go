package models

// Proposal statuses. pending -> accepted | rejected, or withdrawn by
// the applicant while still pending.
const (
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
	ProposalStatusWithdrawn = "withdrawn"
)

// Proposal is an artist's application to a job. One per (job, applicant).
type Proposal struct {
	BaseModel
	JobID       string `gorm:"type:uuid;index;uniqueIndex:idx_proposals_job_applicant;not null" json:"job_id"`
	ApplicantID string `gorm:"type:uuid;index;uniqueIndex:idx_proposals_job_applicant;not null" json:"applicant_id"`
	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	RateOffer   int    `json:"rate_offer,omitempty"`
	Status      string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (Proposal) TableName() string {
	return "proposals"
}

func (p *Proposal) IsDecided() bool {
	return p.Status == ProposalStatusAccepted || p.Status == ProposalStatusRejected
}
