package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"voice-relay/internal/domain"
)

func TestMemoryConversationRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	created := repo.Create(ctx, "Entrevista", time.Now().UTC())
	if created.ID != "1" {
		t.Fatalf("expected id 1, got %q", created.ID)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Title != "Entrevista" {
		t.Fatalf("expected title Entrevista, got %q", got.Title)
	}
	if got.Messages == nil || len(got.Messages) != 0 {
		t.Fatalf("expected empty non-nil messages, got %+v", got.Messages)
	}
}

func TestMemoryConversationRepository_GetMissing(t *testing.T) {
	repo := NewMemoryConversationRepository()
	if _, err := repo.GetByID(context.Background(), "42"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestMemoryConversationRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	repo.Create(ctx, "old", base.Add(-2*time.Hour))
	repo.Create(ctx, "new", base)
	repo.Create(ctx, "mid", base.Add(-time.Hour))

	list := repo.List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(list))
	}
	want := []string{"new", "mid", "old"}
	for i, w := range want {
		if list[i].Title != w {
			t.Fatalf("position %d: expected %q, got %q", i, w, list[i].Title)
		}
	}
}

func TestMemoryConversationRepository_ListTieBreaksBySequence(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	repo.Create(ctx, "first", now)
	repo.Create(ctx, "second", now)

	list := repo.List(ctx)
	if list[0].Title != "second" || list[1].Title != "first" {
		t.Fatalf("expected latest created first, got %+v", list)
	}
}

func TestMemoryConversationRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	a := repo.Create(ctx, "a", time.Now())
	b := repo.Create(ctx, "b", time.Now())
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	c := repo.Create(ctx, "c", time.Now())
	if c.ID == a.ID || c.ID == b.ID {
		t.Fatalf("expected fresh id, got %q (a=%q b=%q)", c.ID, a.ID, b.ID)
	}

	m1, _ := repo.AppendMessage(ctx, c.ID, domain.Message{Role: domain.RoleUser, Content: "uno"})
	m2, _ := repo.AppendMessage(ctx, c.ID, domain.Message{Role: domain.RoleAssistant, Content: "dos"})
	if err := repo.DeleteMessage(ctx, c.ID, m2.ID); err != nil {
		t.Fatalf("delete message failed: %v", err)
	}
	m3, _ := repo.AppendMessage(ctx, c.ID, domain.Message{Role: domain.RoleUser, Content: "tres"})
	if m3.ID == m1.ID || m3.ID == m2.ID {
		t.Fatalf("expected fresh message id, got %q", m3.ID)
	}
}

func TestMemoryConversationRepository_AppendAutoTitle(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	conv := repo.Create(ctx, domain.DefaultConversationTitle, time.Now())
	long := strings.Repeat("x", 60)
	if _, err := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleUser, Content: long}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, conv.ID)
	if got.Title != strings.Repeat("x", 50)+"..." {
		t.Fatalf("unexpected auto title %q", got.Title)
	}

	if _, err := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleUser, Content: "otro"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, conv.ID)
	if got.Title != strings.Repeat("x", 50)+"..." {
		t.Fatalf("expected title unchanged after second message, got %q", got.Title)
	}
}

func TestMemoryConversationRepository_AppendAssistantFirstKeepsTitle(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	conv := repo.Create(ctx, "Mi título", time.Now())
	if _, err := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleAssistant, Content: "hola"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, conv.ID)
	if got.Title != "Mi título" {
		t.Fatalf("expected title unchanged, got %q", got.Title)
	}
}

func TestMemoryConversationRepository_UpdateMessage(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	conv := repo.Create(ctx, "t", time.Now())
	msg, _ := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleUser, Content: "hola"})

	updated, err := repo.UpdateMessage(ctx, conv.ID, msg.ID, "chau")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Content != "chau" || !updated.Edited {
		t.Fatalf("expected edited content, got %+v", updated)
	}
	if !updated.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("expected timestamp preserved")
	}

	if _, err := repo.UpdateMessage(ctx, conv.ID, "99", "x"); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
	if _, err := repo.UpdateMessage(ctx, "99", msg.ID, "x"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestMemoryConversationRepository_DeleteMessageOnlyTarget(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	conv := repo.Create(ctx, "t", time.Now())
	m1, _ := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleUser, Content: "a"})
	m2, _ := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleAssistant, Content: "b"})
	m3, _ := repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleUser, Content: "c"})

	if err := repo.DeleteMessage(ctx, conv.ID, m2.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, conv.ID)
	if len(got.Messages) != 2 || got.Messages[0].ID != m1.ID || got.Messages[1].ID != m3.ID {
		t.Fatalf("unexpected messages after delete: %+v", got.Messages)
	}
	if got.Messages[1].Content != "c" {
		t.Fatalf("expected other messages untouched, got %+v", got.Messages[1])
	}

	if err := repo.DeleteMessage(ctx, conv.ID, m2.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestMemoryConversationRepository_ReturnedCopiesAreIsolated(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	conv := repo.Create(ctx, "t", time.Now())
	_, _ = repo.AppendMessage(ctx, conv.ID, domain.Message{Role: domain.RoleUser, Content: "a"})

	got, _ := repo.GetByID(ctx, conv.ID)
	got.Messages[0].Content = "mutated"

	again, _ := repo.GetByID(ctx, conv.ID)
	if again.Messages[0].Content != "a" {
		t.Fatalf("expected stored message untouched, got %q", again.Messages[0].Content)
	}
}
