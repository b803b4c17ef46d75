package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"voice-relay/internal/domain"
	"voice-relay/internal/llm"
	"voice-relay/internal/repository"
)

var ErrChatServiceNotConfigured = errors.New("chat service not configured")

// ChatInput acepta una conversación existente o un mensaje suelto.
type ChatInput struct {
	ConversationID string
	Message        string
}

// ChatService arma el historial con el prompt de sistema y lo reenvía al LLM.
type ChatService struct {
	llmClient     llm.LLMClient
	conversations repository.ConversationRepository
	systemPrompt  string
	logger        *zap.Logger
}

func NewChatService(llmClient llm.LLMClient, conversations repository.ConversationRepository, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		llmClient:     llmClient,
		conversations: conversations,
		systemPrompt:  SystemPrompt,
		logger:        logger,
	}
}

// Reply devuelve la respuesta del asistente. Si la conversación no existe se
// cae al modo de mensaje único con input.Message.
func (s *ChatService) Reply(ctx context.Context, input ChatInput) (string, error) {
	if s == nil || s.llmClient == nil {
		return "", ErrChatServiceNotConfigured
	}
	if !s.llmClient.Configured() {
		s.logger.Error("chat requested without llm api key")
		return "", llm.ErrNotConfigured
	}

	messages, err := s.buildMessages(ctx, input)
	if err != nil {
		return "", err
	}

	reply, err := s.llmClient.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return reply, nil
}

func (s *ChatService) buildMessages(ctx context.Context, input ChatInput) ([]llm.ChatMessage, error) {
	messages := []llm.ChatMessage{{Role: domain.RoleSystem, Content: s.systemPrompt}}

	convID := strings.TrimSpace(input.ConversationID)
	if convID != "" && s.conversations != nil {
		conv, err := s.conversations.GetByID(ctx, convID)
		switch {
		case err == nil:
			for _, m := range conv.Messages {
				messages = append(messages, llm.ChatMessage{Role: m.Role, Content: m.Content})
			}
			s.logger.Debug("built message history",
				zap.String("conversation_id", convID),
				zap.Int("messages", len(messages)),
			)
			return messages, nil
		case errors.Is(err, repository.ErrConversationNotFound):
			s.logger.Debug("conversation not found, using single message mode", zap.String("conversation_id", convID))
		default:
			return nil, fmt.Errorf("load conversation: %w", err)
		}
	}

	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrInvalidInput
	}
	messages = append(messages, llm.ChatMessage{Role: domain.RoleUser, Content: input.Message})
	s.logger.Debug("single message mode", zap.String("message", domain.TitleFromContent(input.Message)))
	return messages, nil
}
