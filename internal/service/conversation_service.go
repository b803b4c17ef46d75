package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"voice-relay/internal/domain"
	"voice-relay/internal/repository"
)

var (
	ErrConversationServiceNotConfigured = errors.New("conversation service not configured")
	ErrInvalidInput                     = errors.New("invalid input")
	ErrConversationNotFound             = repository.ErrConversationNotFound
	ErrMessageNotFound                  = repository.ErrMessageNotFound
)

// ConversationService encapsula las reglas sobre conversaciones y sus mensajes.
type ConversationService struct {
	repo repository.ConversationRepository
	now  func() time.Time
}

func NewConversationService(repo repository.ConversationRepository) *ConversationService {
	return &ConversationService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *ConversationService) List(ctx context.Context) ([]domain.ConversationSummary, error) {
	if s == nil || s.repo == nil {
		return nil, ErrConversationServiceNotConfigured
	}
	return s.repo.List(ctx), nil
}

// Create abre una conversación vacía. Sin título usa DefaultConversationTitle.
func (s *ConversationService) Create(ctx context.Context, title string) (domain.Conversation, error) {
	if s == nil || s.repo == nil {
		return domain.Conversation{}, ErrConversationServiceNotConfigured
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultConversationTitle
	}
	return s.repo.Create(ctx, title, s.now()), nil
}

func (s *ConversationService) Get(ctx context.Context, id string) (domain.Conversation, error) {
	if s == nil || s.repo == nil {
		return domain.Conversation{}, ErrConversationServiceNotConfigured
	}
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// UpdateTitle cambia el título; un título vacío deja la conversación como está.
func (s *ConversationService) UpdateTitle(ctx context.Context, id, title string) (domain.Conversation, error) {
	if s == nil || s.repo == nil {
		return domain.Conversation{}, ErrConversationServiceNotConfigured
	}
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if title == "" {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.UpdateTitle(ctx, id, title)
}

func (s *ConversationService) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return ErrConversationServiceNotConfigured
	}
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func (s *ConversationService) AddMessage(ctx context.Context, convID, role, content string) (domain.Message, error) {
	if s == nil || s.repo == nil {
		return domain.Message{}, ErrConversationServiceNotConfigured
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if !domain.ValidRole(role) || strings.TrimSpace(content) == "" {
		return domain.Message{}, ErrInvalidInput
	}
	return s.repo.AppendMessage(ctx, strings.TrimSpace(convID), domain.Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	})
}

func (s *ConversationService) EditMessage(ctx context.Context, convID, msgID, content string) (domain.Message, error) {
	if s == nil || s.repo == nil {
		return domain.Message{}, ErrConversationServiceNotConfigured
	}
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, ErrInvalidInput
	}
	return s.repo.UpdateMessage(ctx, strings.TrimSpace(convID), strings.TrimSpace(msgID), content)
}

func (s *ConversationService) DeleteMessage(ctx context.Context, convID, msgID string) error {
	if s == nil || s.repo == nil {
		return ErrConversationServiceNotConfigured
	}
	return s.repo.DeleteMessage(ctx, strings.TrimSpace(convID), strings.TrimSpace(msgID))
}
