package handlers

import (
	"vfxhub_backend/internal/services"
	"vfxhub_backend/internal/validator"
)

// AppHandlers holds every HTTP handler the router mounts.
type AppHandlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Notification *NotificationHandler
	Message      *MessageHandler
	Job          *JobHandler
	Proposal     *ProposalHandler
}

func NewAppHandlers(v *validator.Validator, svc *services.ServiceContainer) *AppHandlers {
	return &AppHandlers{
		Auth:         NewAuthHandler(v, svc.AuthService),
		Profile:      NewProfileHandler(v, svc.ProfileService),
		Notification: NewNotificationHandler(v, svc.NotificationService),
		Message:      NewMessageHandler(v, svc.MessageService),
		Job:          NewJobHandler(v, svc.JobService),
		Proposal:     NewProposalHandler(v, svc.ProposalService),
	}
}
