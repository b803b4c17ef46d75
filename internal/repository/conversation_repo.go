package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"voice-relay/internal/domain"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

type ConversationRepository interface {
	List(ctx context.Context) []domain.ConversationSummary
	Create(ctx context.Context, title string, createdAt time.Time) domain.Conversation
	GetByID(ctx context.Context, id string) (domain.Conversation, error)
	UpdateTitle(ctx context.Context, id, title string) (domain.Conversation, error)
	Delete(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, id string, msg domain.Message) (domain.Message, error)
	UpdateMessage(ctx context.Context, id, msgID, content string) (domain.Message, error)
	DeleteMessage(ctx context.Context, id, msgID string) error
}

type conversationRecord struct {
	conv    domain.Conversation
	seq     uint64
	nextMsg uint64
}

// MemoryConversationRepository guarda conversaciones en memoria durante la vida del proceso.
// Los IDs salen de contadores monótonos, así que nunca se reutilizan tras un borrado.
type MemoryConversationRepository struct {
	mu      sync.RWMutex
	items   map[string]*conversationRecord
	nextSeq uint64
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{
		items: make(map[string]*conversationRecord),
	}
}

func (r *MemoryConversationRepository) List(_ context.Context) []domain.ConversationSummary {
	type entry struct {
		summary domain.ConversationSummary
		seq     uint64
	}

	r.mu.RLock()
	entries := make([]entry, 0, len(r.items))
	for _, rec := range r.items {
		entries = append(entries, entry{summary: rec.conv.Summary(), seq: rec.seq})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.summary.CreatedAt.Equal(b.summary.CreatedAt) {
			return a.summary.CreatedAt.After(b.summary.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]domain.ConversationSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.summary)
	}
	return out
}

func (r *MemoryConversationRepository) Create(_ context.Context, title string, createdAt time.Time) domain.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	id := strconv.FormatUint(r.nextSeq, 10)
	rec := &conversationRecord{
		conv: domain.Conversation{
			ID:        id,
			Title:     title,
			CreatedAt: createdAt,
			Messages:  []domain.Message{},
		},
		seq: r.nextSeq,
	}
	r.items[id] = rec
	return rec.conv.Clone()
}

func (r *MemoryConversationRepository) GetByID(_ context.Context, id string) (domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return domain.Conversation{}, ErrConversationNotFound
	}
	return rec.conv.Clone(), nil
}

func (r *MemoryConversationRepository) UpdateTitle(_ context.Context, id, title string) (domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return domain.Conversation{}, ErrConversationNotFound
	}
	rec.conv.Title = title
	return rec.conv.Clone(), nil
}

func (r *MemoryConversationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrConversationNotFound
	}
	delete(r.items, id)
	return nil
}

// AppendMessage asigna el ID del mensaje y lo agrega al final. Si es el primer
// mensaje y viene del usuario, el título pasa a derivarse de su contenido.
func (r *MemoryConversationRepository) AppendMessage(_ context.Context, id string, msg domain.Message) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return domain.Message{}, ErrConversationNotFound
	}
	rec.nextMsg++
	msg.ID = strconv.FormatUint(rec.nextMsg, 10)
	msg.Edited = false
	rec.conv.Messages = append(rec.conv.Messages, msg)

	if len(rec.conv.Messages) == 1 && msg.Role == domain.RoleUser {
		rec.conv.Title = domain.TitleFromContent(msg.Content)
	}
	return msg, nil
}

func (r *MemoryConversationRepository) UpdateMessage(_ context.Context, id, msgID, content string) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return domain.Message{}, ErrConversationNotFound
	}
	for i := range rec.conv.Messages {
		if rec.conv.Messages[i].ID == msgID {
			rec.conv.Messages[i].Content = content
			rec.conv.Messages[i].Edited = true
			return rec.conv.Messages[i], nil
		}
	}
	return domain.Message{}, ErrMessageNotFound
}

func (r *MemoryConversationRepository) DeleteMessage(_ context.Context, id, msgID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return ErrConversationNotFound
	}
	kept := rec.conv.Messages[:0]
	found := false
	for _, m := range rec.conv.Messages {
		if m.ID == msgID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return ErrMessageNotFound
	}
	rec.conv.Messages = kept
	return nil
}
