package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bulldozer-ai/bulldozer-backend/internal/data/db"
	repos "github.com/bulldozer-ai/bulldozer-backend/internal/data/repos/research"
	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

// ResearchService is the persistence facade the API layer talks to.
// Every method is one bounded unit of work: a 30s deadline is applied,
// one create-or-query runs against the pool, and the connection is back
// in the pool when the call returns. Faults propagate unclassified; the
// handlers decide what is client-visible.
type ResearchService interface {
	CreateProject(ctx context.Context, title, description, tags string) (*types.ResearchProject, error)
	// GetProject returns (nil, nil) when no project matches.
	GetProject(ctx context.Context, id uint) (*types.ResearchProject, error)
	ListProjects(ctx context.Context) ([]*types.ResearchProject, error)
	// DeleteProject cascades to everything the project owns. Returns
	// false when the project does not exist.
	DeleteProject(ctx context.Context, id uint) (bool, error)

	CreateSession(ctx context.Context, projectID uint, externalSessionID, title string) (*types.ResearchSession, error)
	GetSession(ctx context.Context, id uint) (*types.ResearchSession, error)
	ListSessions(ctx context.Context, projectID uint) ([]*types.ResearchSession, error)

	SaveMessage(ctx context.Context, sessionID uint, role, content, messageType string, toolCalls types.ToolCallList) (*types.SessionMessage, error)
	ListMessages(ctx context.Context, sessionID uint) ([]*types.SessionMessage, error)
	CountMessages(ctx context.Context, sessionID uint) (int64, error)

	CreateFinding(ctx context.Context, in CreateFindingInput) (*types.ResearchFinding, error)
	ListFindings(ctx context.Context, projectID uint) ([]*types.ResearchFinding, error)

	CreateDocument(ctx context.Context, in CreateDocumentInput) (*types.ResearchDocument, error)
	ListDocuments(ctx context.Context, projectID uint) ([]*types.ResearchDocument, error)

	AddChunks(ctx context.Context, documentID uint, chunks []ChunkInput) ([]*types.DocumentChunk, error)
	ListChunks(ctx context.Context, documentID uint) ([]*types.DocumentChunk, error)
}

type CreateFindingInput struct {
	ProjectID       uint
	Title           string
	Content         string
	Category        string
	Confidence      float64
	SourceDocuments types.DocumentIDs
	Tags            string
}

type CreateDocumentInput struct {
	ProjectID    uint
	Title        string
	Content      string
	SourceURL    string
	DocumentType string
}

type ChunkInput struct {
	Content   string
	Index     int
	Embedding []byte
}

type researchService struct {
	db        *gorm.DB
	log       *logger.Logger
	projects  repos.ProjectRepo
	documents repos.DocumentRepo
	chunks    repos.ChunkRepo
	findings  repos.FindingRepo
	sessions  repos.SessionRepo
	messages  repos.MessageRepo
}

// NewResearchService wires the repos over gdb. A nil gdb produces a
// degraded service whose every operation reports the store as
// unavailable, which keeps the process serving when startup decided to
// continue without persistence.
func NewResearchService(gdb *gorm.DB, log *logger.Logger) ResearchService {
	serviceLog := log.With("service", "ResearchService")
	s := &researchService{db: gdb, log: serviceLog}
	if gdb != nil {
		s.projects = repos.NewProjectRepo(gdb, log)
		s.documents = repos.NewDocumentRepo(gdb, log)
		s.chunks = repos.NewChunkRepo(gdb, log)
		s.findings = repos.NewFindingRepo(gdb, log)
		s.sessions = repos.NewSessionRepo(gdb, log)
		s.messages = repos.NewMessageRepo(gdb, log)
	}
	return s
}

func (s *researchService) unit(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if s.db == nil {
		return nil, nil, db.ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, db.AcquireTimeout)
	return ctx, cancel, nil
}

func (s *researchService) CreateProject(ctx context.Context, title, description, tags string) (*types.ResearchProject, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	project := &types.ResearchProject{
		Title:       title,
		Description: description,
		Tags:        tags,
		Status:      types.StatusActive,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *researchService) GetProject(ctx context.Context, id uint) (*types.ResearchProject, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	project, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (s *researchService) ListProjects(ctx context.Context) ([]*types.ResearchProject, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return s.projects.List(ctx)
}

func (s *researchService) DeleteProject(ctx context.Context, id uint) (bool, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return false, err
	}
	defer cancel()

	found, err := s.projects.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	if found {
		s.log.Info("Deleted project and owned records", "project_id", id)
	}
	return found, nil
}

func (s *researchService) CreateSession(ctx context.Context, projectID uint, externalSessionID, title string) (*types.ResearchSession, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	session := &types.ResearchSession{
		ProjectID: projectID,
		SessionID: externalSessionID,
		Title:     title,
		Status:    types.StatusActive,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *researchService) GetSession(ctx context.Context, id uint) (*types.ResearchSession, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	session, err := s.sessions.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *researchService) ListSessions(ctx context.Context, projectID uint) ([]*types.ResearchSession, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return s.sessions.ListByProject(ctx, projectID)
}

func (s *researchService) SaveMessage(ctx context.Context, sessionID uint, role, content, messageType string, toolCalls types.ToolCallList) (*types.SessionMessage, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if strings.TrimSpace(messageType) == "" {
		messageType = types.MessageTypeText
	}
	message := &types.SessionMessage{
		SessionID:   sessionID,
		Role:        role,
		Content:     content,
		MessageType: messageType,
		ToolCalls:   toolCalls,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	return message, nil
}

func (s *researchService) ListMessages(ctx context.Context, sessionID uint) ([]*types.SessionMessage, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return s.messages.ListBySession(ctx, sessionID)
}

func (s *researchService) CountMessages(ctx context.Context, sessionID uint) (int64, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()
	return s.messages.CountBySession(ctx, sessionID)
}

func (s *researchService) CreateFinding(ctx context.Context, in CreateFindingInput) (*types.ResearchFinding, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if strings.TrimSpace(in.Category) == "" {
		in.Category = types.CategoryInsight
	}
	finding := &types.ResearchFinding{
		ProjectID:       in.ProjectID,
		Title:           in.Title,
		Content:         in.Content,
		Category:        in.Category,
		Confidence:      in.Confidence,
		SourceDocuments: in.SourceDocuments,
		Tags:            in.Tags,
	}
	if err := s.findings.Create(ctx, finding); err != nil {
		return nil, fmt.Errorf("create finding: %w", err)
	}
	return finding, nil
}

func (s *researchService) ListFindings(ctx context.Context, projectID uint) ([]*types.ResearchFinding, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return s.findings.ListByProject(ctx, projectID)
}

func (s *researchService) CreateDocument(ctx context.Context, in CreateDocumentInput) (*types.ResearchDocument, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if strings.TrimSpace(in.DocumentType) == "" {
		in.DocumentType = "web"
	}
	document := &types.ResearchDocument{
		ProjectID:    in.ProjectID,
		Title:        in.Title,
		Content:      in.Content,
		SourceURL:    in.SourceURL,
		DocumentType: in.DocumentType,
	}
	if err := s.documents.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return document, nil
}

func (s *researchService) ListDocuments(ctx context.Context, projectID uint) ([]*types.ResearchDocument, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return s.documents.ListByProject(ctx, projectID)
}

func (s *researchService) AddChunks(ctx context.Context, documentID uint, chunks []ChunkInput) ([]*types.DocumentChunk, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	// Resolve the parent first so a bad document id fails as a lookup
	// error instead of a constraint violation mid-batch.
	if _, err := s.documents.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("add chunks: resolve document: %w", err)
	}

	rows := make([]*types.DocumentChunk, 0, len(chunks))
	for _, c := range chunks {
		rows = append(rows, &types.DocumentChunk{
			DocumentID: documentID,
			Content:    c.Content,
			ChunkIndex: c.Index,
			Embedding:  datatypes.JSON(c.Embedding),
		})
	}
	if err := s.chunks.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("add chunks: %w", err)
	}
	return rows, nil
}

func (s *researchService) ListChunks(ctx context.Context, documentID uint) ([]*types.DocumentChunk, error) {
	ctx, cancel, err := s.unit(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return s.chunks.ListByDocument(ctx, documentID)
}
