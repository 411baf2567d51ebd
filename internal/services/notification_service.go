package services

import (
	"context"
	"errors"

	"vfxhub_backend/internal/cache"
	"vfxhub_backend/internal/logger"
	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

type NotificationService interface {
	GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	GetNotification(userID, notificationID string) (*dto.NotificationResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	GetStats(userID string) (*repositories.NotificationStats, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	Delete(userID, notificationID string) error

	// Factory methods other services call to write inbox rows.
	NotifyNewMessage(receiverID, senderName, messageID string) error
	NotifyNewProposal(ownerID, applicantName, jobTitle, proposalID string) error
	NotifyProposalDecision(applicantID, jobTitle, status, proposalID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	unreadCache      *cache.UnreadCache
	publisher        EventPublisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	unreadCache *cache.UnreadCache,
	publisher EventPublisher,
) NotificationService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		unreadCache:      unreadCache,
		publisher:        publisher,
	}
}

// GetUserNotifications returns the inbox page plus the unread badge
// count. The count is always recomputed from the table so it can never
// drift from the rows the client sees.
func (s *notificationService) GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, dto.ToNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) GetNotification(userID, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByID(userID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToNotificationResponse(notification)
	return &resp, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, ok := s.unreadCache.GetNotificationCount(ctx, userID); ok {
		return count, nil
	}

	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	s.unreadCache.SetNotificationCount(ctx, userID, count)
	return count, nil
}

func (s *notificationService) GetStats(userID string) (*repositories.NotificationStats, error) {
	stats, err := s.notificationRepo.GetStats(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

// MarkAsRead is idempotent: the first call flips the row and stamps
// read_at, later calls succeed without touching it. A row owned by
// another user reads as not found.
func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(userID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	s.unreadCache.Invalidate(context.Background(), userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	updated, err := s.notificationRepo.MarkAllAsRead(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if updated > 0 {
		s.unreadCache.Invalidate(context.Background(), userID)
	}
	return nil
}

func (s *notificationService) Delete(userID, notificationID string) error {
	err := s.notificationRepo.Delete(userID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	s.unreadCache.Invalidate(context.Background(), userID)
	return nil
}

// ---------------- Factory methods ----------------

func (s *notificationService) NotifyNewMessage(receiverID, senderName, messageID string) error {
	return s.create(models.NewMessageNotification(receiverID, senderName, messageID))
}

func (s *notificationService) NotifyNewProposal(ownerID, applicantName, jobTitle, proposalID string) error {
	return s.create(models.NewProposalNotification(ownerID, applicantName, jobTitle, proposalID))
}

func (s *notificationService) NotifyProposalDecision(applicantID, jobTitle, status, proposalID string) error {
	return s.create(models.NewProposalDecisionNotification(applicantID, jobTitle, status, proposalID))
}

func (s *notificationService) create(notification *models.Notification) error {
	if err := s.notificationRepo.Create(notification); err != nil {
		return apperrors.InternalError(err)
	}

	s.unreadCache.Invalidate(context.Background(), notification.UserID)
	s.publisher.Publish(notification.UserID, EventNotificationNew, dto.ToNotificationResponse(notification))

	logger.Debug("notification created",
		"user_id", notification.UserID,
		"type", notification.Type,
	)
	return nil
}
