package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"vfxhub_backend/internal/cache"
	"vfxhub_backend/internal/logger"
	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

type MessageService interface {
	// GetConversations folds every message the user sent or received
	// into one summary per counterpart.
	GetConversations(userID string) (*dto.ConversationListResponse, error)
	// GetConversation returns the full history with one counterpart,
	// oldest first, and marks every unread incoming message read.
	GetConversation(userID, counterpartID string) (*dto.ConversationResponse, error)
	SendMessage(userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	DeleteConversation(userID, counterpartID string) error
}

type messageService struct {
	db          *gorm.DB
	messageRepo repositories.MessageRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	unreadCache *cache.UnreadCache
	publisher   EventPublisher
}

func NewMessageService(
	db *gorm.DB,
	messageRepo repositories.MessageRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	unreadCache *cache.UnreadCache,
	publisher EventPublisher,
) MessageService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &messageService{
		db:          db,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		unreadCache: unreadCache,
		publisher:   publisher,
	}
}

// GetConversations scans the user's messages newest-first. The first
// row seen for a counterpart supplies last_message; unread_count
// accumulates over every incoming unread row for that counterpart.
// Display metadata for all counterparts is loaded in one batch at the
// end.
func (s *messageService) GetConversations(userID string) (*dto.ConversationListResponse, error) {
	messages, err := s.messageRepo.FindAllForUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byCounterpart := make(map[string]*models.Conversation)
	var order []string

	for i := range messages {
		m := &messages[i]
		counterpartID := m.CounterpartOf(userID)

		conv, seen := byCounterpart[counterpartID]
		if !seen {
			conv = &models.Conversation{
				CounterpartID: counterpartID,
				LastMessage:   m.Content,
				LastMessageAt: m.CreatedAt,
			}
			byCounterpart[counterpartID] = conv
			order = append(order, counterpartID)
		}
		if m.ReceiverID == userID && !m.IsRead {
			conv.UnreadCount++
		}
	}

	summaries, err := s.profileRepo.FindSummariesByUserIDs(order)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	conversations := make([]models.Conversation, 0, len(order))
	var totalUnread int64
	for _, counterpartID := range order {
		conv := byCounterpart[counterpartID]
		if summary, ok := summaries[counterpartID]; ok {
			conv.Counterpart = summary
		} else {
			conv.Counterpart = models.ProfileSummary{UserID: counterpartID}
		}
		totalUnread += conv.UnreadCount
		conversations = append(conversations, *conv)
	}

	return &dto.ConversationListResponse{
		Conversations: conversations,
		TotalUnread:   totalUnread,
	}, nil
}

func (s *messageService) GetConversation(userID, counterpartID string) (*dto.ConversationResponse, error) {
	messages, err := s.messageRepo.FindConversation(userID, counterpartID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The fetch already returned the pre-read content, so the batched
	// update needs no per-row mirroring. Rows flipped here are the
	// messages the client is about to render.
	updated, err := s.messageRepo.MarkConversationRead(userID, counterpartID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if updated > 0 {
		s.unreadCache.Invalidate(context.Background(), userID)
		s.publisher.Publish(counterpartID, EventConversationRead, map[string]interface{}{
			"reader_id": userID,
		})
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, dto.ToMessageResponse(&messages[i]))
	}

	summaries, err := s.profileRepo.FindSummariesByUserIDs([]string{counterpartID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	counterpart, ok := summaries[counterpartID]
	if !ok {
		counterpart = models.ProfileSummary{UserID: counterpartID}
	}

	return &dto.ConversationResponse{
		CounterpartID: counterpartID,
		Counterpart:   counterpart,
		Messages:      responses,
	}, nil
}

// SendMessage inserts the message row and the receiver's inbox
// notification in one transaction: either both exist or neither does.
func (s *messageService) SendMessage(userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if req.ReceiverID == userID {
		return nil, apperrors.ErrSelfMessage
	}

	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	senderName := s.senderDisplayName(userID)

	message := &models.Message{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Content:    content,
	}

	var notification *models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewMessageRepository(tx).Create(message); err != nil {
			return err
		}
		notification = models.NewMessageNotification(req.ReceiverID, senderName, message.ID)
		return repositories.NewNotificationRepository(tx).Create(notification)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.unreadCache.Invalidate(context.Background(), req.ReceiverID)

	resp := dto.ToMessageResponse(message)
	s.publisher.Publish(req.ReceiverID, EventMessageNew, resp)
	s.publisher.Publish(req.ReceiverID, EventNotificationNew, dto.ToNotificationResponse(notification))

	logger.Debug("message sent",
		"sender_id", userID,
		"receiver_id", req.ReceiverID,
	)
	return &resp, nil
}

func (s *messageService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, ok := s.unreadCache.GetMessageCount(ctx, userID); ok {
		return count, nil
	}

	count, err := s.messageRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	s.unreadCache.SetMessageCount(ctx, userID, count)
	return count, nil
}

func (s *messageService) DeleteConversation(userID, counterpartID string) error {
	if err := s.messageRepo.DeleteConversation(userID, counterpartID); err != nil {
		return apperrors.InternalError(err)
	}
	s.unreadCache.Invalidate(context.Background(), userID)
	return nil
}

func (s *messageService) senderDisplayName(userID string) string {
	summaries, err := s.profileRepo.FindSummariesByUserIDs([]string{userID})
	if err == nil {
		if summary, ok := summaries[userID]; ok && summary.DisplayName != "" {
			return summary.DisplayName
		}
	}
	return "Someone"
}
