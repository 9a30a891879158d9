package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bulldozer-ai/bulldozer-backend/internal/data/db"
	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/http/response"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
	"github.com/bulldozer-ai/bulldozer-backend/internal/services"
)

type ResearchHandler struct {
	research services.ResearchService
	log      *logger.Logger
}

func NewResearchHandler(research services.ResearchService, log *logger.Logger) *ResearchHandler {
	return &ResearchHandler{research: research, log: log.With("handler", "ResearchHandler")}
}

// Flat response records; timestamps rendered as RFC 3339 text.

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Tags        string `json:"tags"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type SessionResponse struct {
	ID           uint   `json:"id"`
	ProjectID    uint   `json:"project_id"`
	SessionID    string `json:"session_id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
}

type MessageResponse struct {
	ID          uint               `json:"id"`
	SessionID   uint               `json:"session_id"`
	Role        string             `json:"role"`
	Content     string             `json:"content"`
	MessageType string             `json:"message_type"`
	ToolCalls   types.ToolCallList `json:"tool_calls,omitempty"`
	CreatedAt   string             `json:"created_at"`
}

type FindingResponse struct {
	ID              uint              `json:"id"`
	ProjectID       uint              `json:"project_id"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	Category        string            `json:"category"`
	Confidence      float64           `json:"confidence"`
	SourceDocuments types.DocumentIDs `json:"source_documents,omitempty"`
	Tags            string            `json:"tags"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

type DocumentResponse struct {
	ID           uint   `json:"id"`
	ProjectID    uint   `json:"project_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	SourceURL    string `json:"source_url"`
	DocumentType string `json:"document_type"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func renderTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func projectResponse(p *types.ResearchProject) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Tags:        p.Tags,
		CreatedAt:   renderTime(p.CreatedAt),
		UpdatedAt:   renderTime(p.UpdatedAt),
	}
}

func messageResponse(m *types.SessionMessage) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SessionID:   m.SessionID,
		Role:        m.Role,
		Content:     m.Content,
		MessageType: m.MessageType,
		ToolCalls:   m.ToolCalls,
		CreatedAt:   renderTime(m.CreatedAt),
	}
}

func findingResponse(f *types.ResearchFinding) FindingResponse {
	return FindingResponse{
		ID:              f.ID,
		ProjectID:       f.ProjectID,
		Title:           f.Title,
		Content:         f.Content,
		Category:        f.Category,
		Confidence:      f.Confidence,
		SourceDocuments: f.SourceDocuments,
		Tags:            f.Tags,
		CreatedAt:       renderTime(f.CreatedAt),
		UpdatedAt:       renderTime(f.UpdatedAt),
	}
}

func documentResponse(d *types.ResearchDocument) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		ProjectID:    d.ProjectID,
		Title:        d.Title,
		Content:      d.Content,
		SourceURL:    d.SourceURL,
		DocumentType: d.DocumentType,
		CreatedAt:    renderTime(d.CreatedAt),
		UpdatedAt:    renderTime(d.UpdatedAt),
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// GET /projects
//
// The one deliberately masked path: an unreachable store yields an
// empty list and a success status so the app stays usable with no
// configured database.
func (h *ResearchHandler) ListProjects(c *gin.Context) {
	projects, err := h.research.ListProjects(c.Request.Context())
	if err != nil {
		if db.IsUnreachable(err) {
			h.log.Warn("Store unreachable, returning empty project list", "error", err)
			response.RespondOK(c, []ProjectResponse{})
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "list_projects_failed", err)
		return
	}
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse(p))
	}
	response.RespondOK(c, out)
}

// GET /projects/:id
func (h *ResearchHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := h.research.GetProject(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_project_failed", err)
		return
	}
	if project == nil {
		response.RespondError(c, http.StatusNotFound, "project_not_found", errors.New("project not found"))
		return
	}
	response.RespondOK(c, projectResponse(project))
}

// GET /projects/:id/sessions
//
// Each session is annotated with its message count, computed eagerly by
// listing that session's messages.
func (h *ResearchHandler) ListProjectSessions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sessions, err := h.research.ListSessions(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_sessions_failed", err)
		return
	}
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		messages, err := h.research.ListMessages(c.Request.Context(), s.ID)
		if err != nil {
			response.RespondError(c, http.StatusInternalServerError, "list_sessions_failed", err)
			return
		}
		out = append(out, SessionResponse{
			ID:           s.ID,
			ProjectID:    s.ProjectID,
			SessionID:    s.SessionID,
			Title:        s.Title,
			Status:       s.Status,
			CreatedAt:    renderTime(s.CreatedAt),
			UpdatedAt:    renderTime(s.UpdatedAt),
			MessageCount: len(messages),
		})
	}
	response.RespondOK(c, out)
}

// GET /sessions/:id/messages
func (h *ResearchHandler) ListSessionMessages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	messages, err := h.research.ListMessages(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_messages_failed", err)
		return
	}
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageResponse(m))
	}
	response.RespondOK(c, out)
}

// GET /projects/:id/findings
func (h *ResearchHandler) ListProjectFindings(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	findings, err := h.research.ListFindings(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_findings_failed", err)
		return
	}
	out := make([]FindingResponse, 0, len(findings))
	for _, f := range findings {
		out = append(out, findingResponse(f))
	}
	response.RespondOK(c, out)
}

// GET /projects/:id/documents
func (h *ResearchHandler) ListProjectDocuments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	documents, err := h.research.ListDocuments(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_documents_failed", err)
		return
	}
	out := make([]DocumentResponse, 0, len(documents))
	for _, d := range documents {
		out = append(out, documentResponse(d))
	}
	response.RespondOK(c, out)
}

type createProjectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// POST /projects
func (h *ResearchHandler) CreateProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Title == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("title is required"))
		return
	}
	project, err := h.research.CreateProject(c.Request.Context(), req.Title, req.Description, req.Tags)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "create_project_failed", err)
		return
	}
	response.RespondOK(c, projectResponse(project))
}

type createFindingReq struct {
	ProjectID       uint              `json:"project_id"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	Category        string            `json:"category"`
	Confidence      float64           `json:"confidence"`
	SourceDocuments types.DocumentIDs `json:"source_documents"`
	Tags            string            `json:"tags"`
}

// POST /findings
func (h *ResearchHandler) CreateFinding(c *gin.Context) {
	var req createFindingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ProjectID == 0 || req.Title == "" || req.Content == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			errors.New("project_id, title and content are required"))
		return
	}
	finding, err := h.research.CreateFinding(c.Request.Context(), services.CreateFindingInput{
		ProjectID:       req.ProjectID,
		Title:           req.Title,
		Content:         req.Content,
		Category:        req.Category,
		Confidence:      req.Confidence,
		SourceDocuments: req.SourceDocuments,
		Tags:            req.Tags,
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "create_finding_failed", err)
		return
	}
	response.RespondOK(c, findingResponse(finding))
}

type createDocumentReq struct {
	ProjectID    uint   `json:"project_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	SourceURL    string `json:"source_url"`
	DocumentType string `json:"document_type"`
}

// POST /documents
func (h *ResearchHandler) CreateDocument(c *gin.Context) {
	var req createDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ProjectID == 0 || req.Title == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			errors.New("project_id and title are required"))
		return
	}
	document, err := h.research.CreateDocument(c.Request.Context(), services.CreateDocumentInput{
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Content:      req.Content,
		SourceURL:    req.SourceURL,
		DocumentType: req.DocumentType,
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "create_document_failed", err)
		return
	}
	response.RespondOK(c, documentResponse(document))
}

// DELETE /projects/:id
func (h *ResearchHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.research.DeleteProject(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_project_failed", err)
		return
	}
	if !found {
		response.RespondError(c, http.StatusNotFound, "project_not_found", errors.New("project not found"))
		return
	}
	response.RespondOK(c, gin.H{"deleted": id})
}
