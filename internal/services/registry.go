package services

import "vfxhub_backend/internal/email"

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	NotificationService NotificationService
	MessageService      MessageService
	JobService          JobService
	ProposalService     ProposalService
	EmailProvider       email.Provider
}
