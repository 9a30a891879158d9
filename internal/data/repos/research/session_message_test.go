package research

import (
	"context"
	"testing"
	"time"

	"github.com/bulldozer-ai/bulldozer-backend/internal/data/repos/testutil"
	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
)

func TestSessionRepoListNewestFirst(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewSessionRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	base := time.Now().Add(-time.Hour)
	for i, ext := range []string{"thread-a", "thread-b", "thread-c"} {
		s := &types.ResearchSession{
			ProjectID: p.ID,
			SessionID: ext,
			Status:    types.StatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s): %v", ext, err)
		}
	}

	list, err := repo.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(list))
	}
	for i, want := range []string{"thread-c", "thread-b", "thread-a"} {
		if list[i].SessionID != want {
			t.Fatalf("list[%d]: got %q, want %q", i, list[i].SessionID, want)
		}
	}
}

func TestSessionRepoCreateRequiresProject(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewSessionRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	err := repo.Create(ctx, &types.ResearchSession{
		ProjectID: 424242,
		SessionID: "orphan",
		Status:    types.StatusActive,
	})
	if err == nil {
		t.Fatal("expected foreign key violation for missing project")
	}
}

func TestMessageRepoChronologicalOrderAndCount(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewMessageRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	sess := testutil.SeedSession(t, ctx, gdb, p.ID, "thread-42")

	base := time.Now().Add(-time.Minute)
	turns := []struct {
		role    string
		content string
	}{
		{types.RoleUser, "first"},
		{types.RoleAssistant, "second"},
		{types.RoleUser, "third"},
	}
	for i, turn := range turns {
		m := &types.SessionMessage{
			SessionID:   sess.ID,
			Role:        turn.role,
			Content:     turn.content,
			MessageType: types.MessageTypeText,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create(%d): %v", i, err)
		}
	}

	list, err := repo.ListBySession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(list))
	}
	for i, turn := range turns {
		if list[i].Content != turn.content || list[i].Role != turn.role {
			t.Fatalf("list[%d]: got %s/%q, want %s/%q",
				i, list[i].Role, list[i].Content, turn.role, turn.content)
		}
	}

	n, err := repo.CountBySession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("CountBySession: %v", err)
	}
	if n != 3 {
		t.Fatalf("CountBySession: expected 3, got %d", n)
	}

	n, err = repo.CountBySession(ctx, 999999)
	if err != nil {
		t.Fatalf("CountBySession (missing): %v", err)
	}
	if n != 0 {
		t.Fatalf("CountBySession (missing): expected 0, got %d", n)
	}
}

func TestMessageRepoToolCallsRoundTrip(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewMessageRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	sess := testutil.SeedSession(t, ctx, gdb, p.ID, "thread-1")

	m := &types.SessionMessage{
		SessionID:   sess.ID,
		Role:        types.RoleAssistant,
		Content:     "searching",
		MessageType: types.MessageTypeToolCall,
		ToolCalls: types.ToolCallList{
			{Name: "web_search", Arguments: []byte(`{"query":"labor conditions"}`)},
		},
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.ListBySession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(list) != 1 || len(list[0].ToolCalls) != 1 {
		t.Fatalf("expected one message with one tool call, got %+v", list)
	}
	if list[0].ToolCalls[0].Name != "web_search" {
		t.Fatalf("tool call name: got %q", list[0].ToolCalls[0].Name)
	}
}
