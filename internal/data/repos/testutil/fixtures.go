package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
)

func SeedProject(tb testing.TB, ctx context.Context, gdb *gorm.DB, title string) *types.ResearchProject {
	tb.Helper()
	p := &types.ResearchProject{
		Title:  title,
		Status: types.StatusActive,
	}
	if err := gdb.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedDocument(tb testing.TB, ctx context.Context, gdb *gorm.DB, projectID uint, title string) *types.ResearchDocument {
	tb.Helper()
	d := &types.ResearchDocument{
		ProjectID:    projectID,
		Title:        title,
		DocumentType: "web",
	}
	if err := gdb.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed document: %v", err)
	}
	return d
}

func SeedSession(tb testing.TB, ctx context.Context, gdb *gorm.DB, projectID uint, externalID string) *types.ResearchSession {
	tb.Helper()
	s := &types.ResearchSession{
		ProjectID: projectID,
		SessionID: externalID,
		Status:    types.StatusActive,
	}
	if err := gdb.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedMessage(tb testing.TB, ctx context.Context, gdb *gorm.DB, sessionID uint, role, content string) *types.SessionMessage {
	tb.Helper()
	m := &types.SessionMessage{
		SessionID:   sessionID,
		Role:        role,
		Content:     content,
		MessageType: types.MessageTypeText,
	}
	if err := gdb.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return m
}
