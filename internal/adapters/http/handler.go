package httpadapter

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rankpilot/rankpilot/internal/app/assistant"
	"github.com/rankpilot/rankpilot/internal/app/chat"
	"github.com/rankpilot/rankpilot/internal/domain"
)

type Server struct {
	assistant *assistant.Service
	chat      *chat.Service
}

func NewServer(assistantSvc *assistant.Service, chatSvc *chat.Service) http.Handler {
	s := &Server{
		assistant: assistantSvc,
		chat:      chatSvc,
	}

	r := chi.NewRouter()
	r.Use(withRequestID, withLogging, withCORS)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/keywords", s.handleKeywords)
		r.Post("/optimize", s.handleOptimize)
		r.Post("/meta-tags", s.handleMetaTags)
		r.Post("/images", s.handleCreateImage)
		r.Post("/images/refine", s.handleRefineImage)
		r.Get("/news", s.handleNews)
		r.Post("/news/read", s.handleReadArticle)

		r.Post("/conversations", s.handleStartConversation)
		r.Get("/conversations/{id}", s.handleGetConversation)
		r.Post("/conversations/{id}/messages", s.handleSendMessage)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type keywordsRequest struct {
	Topic        string `json:"topic"`
	UseGrounding bool   `json:"use_grounding,omitempty"`
}

type reportResponse struct {
	Markdown  string             `json:"markdown"`
	Citations []citationResponse `json:"citations,omitempty"`
}

type citationResponse struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type optimizeRequest struct {
	Draft string `json:"draft"`
}

type metaTagsRequest struct {
	Content string `json:"content"`
}

type metaTagsResponse struct {
	Markdown string              `json:"markdown"`
	Preview  *domain.MetaPreview `json:"preview,omitempty"`
}

type createImageRequest struct {
	Content string `json:"content"`
}

type refineImageRequest struct {
	Feedback            string `json:"feedback"`
	PreviousImageBase64 string `json:"previous_image_base64"`
}

type imageResponse struct {
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type"`
	Text        string `json:"text,omitempty"`
}

type newsResponse struct {
	Items []domain.NewsItem `json:"items"`
}

type readArticleRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type startConversationRequest struct {
	Title string `json:"title,omitempty"`
}

type conversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type turnResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Author         string    `json:"author"`
	Text           string    `json:"text"`
	IsError        bool      `json:"is_error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type startConversationResponse struct {
	Conversation conversationResponse `json:"conversation"`
	Greeting     turnResponse         `json:"greeting"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	UserTurn  turnResponse       `json:"user_turn"`
	AgentTurn turnResponse       `json:"agent_turn"`
	Citations []citationResponse `json:"citations,omitempty"`
}

type getConversationResponse struct {
	Conversation conversationResponse `json:"conversation"`
	Turns        []turnResponse       `json:"turns"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	report, err := s.assistant.Keywords(r.Context(), req.Topic, req.UseGrounding)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	report, err := s.assistant.Optimize(r.Context(), req.Draft)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (s *Server) handleMetaTags(w http.ResponseWriter, r *http.Request) {
	var req metaTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.assistant.MetaTags(r.Context(), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metaTagsResponse{
		Markdown: out.Markdown,
		Preview:  out.Preview,
	})
}

func (s *Server) handleCreateImage(w http.ResponseWriter, r *http.Request) {
	var req createImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.assistant.CreateImage(r.Context(), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toImageResponse(out))
}

func (s *Server) handleRefineImage(w http.ResponseWriter, r *http.Request) {
	var req refineImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	previous, err := base64.StdEncoding.DecodeString(req.PreviousImageBase64)
	if err != nil {
		badRequest(w, "previous_image_base64 is not valid base64")
		return
	}

	out, err := s.assistant.RefineImage(r.Context(), req.Feedback, previous)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toImageResponse(out))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.assistant.NewsDigest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newsResponse{Items: items})
}

func (s *Server) handleReadArticle(w http.ResponseWriter, r *http.Request) {
	var req readArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	report, err := s.assistant.ReadArticle(r.Context(), req.URL, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	}

	out, err := s.chat.StartConversation(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, startConversationResponse{
		Conversation: toConversationResponse(out.Conversation),
		Greeting:     toTurnResponse(out.Greeting),
	})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := domain.ConversationID(chi.URLParam(r, "id"))

	conv, turns, err := s.chat.Timeline(r.Context(), id, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := getConversationResponse{
		Conversation: toConversationResponse(conv),
		Turns:        make([]turnResponse, 0, len(turns)),
	}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, toTurnResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.ConversationID(chi.URLParam(r, "id"))

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.chat.SendMessage(r.Context(), chat.SendMessageInput{
		ConversationID: id,
		Text:           req.Text,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserTurn:  toTurnResponse(out.UserTurn),
		AgentTurn: toTurnResponse(out.AgentTurn),
		Citations: toCitationResponses(out.Citations),
	})
}

// ─────────────────────────────────────────────
// Response helpers
// ─────────────────────────────────────────────

func toReportResponse(rep *assistant.Report) reportResponse {
	return reportResponse{
		Markdown:  rep.Markdown,
		Citations: toCitationResponses(rep.Citations),
	}
}

func toCitationResponses(citations []domain.Citation) []citationResponse {
	if len(citations) == 0 {
		return nil
	}
	out := make([]citationResponse, 0, len(citations))
	for _, c := range citations {
		out = append(out, citationResponse{URI: c.URI, Title: c.Title})
	}
	return out
}

func toImageResponse(out *assistant.ImageOutput) imageResponse {
	return imageResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(out.Data),
		MIMEType:    out.MIMEType,
		Text:        out.Text,
	}
}

func toConversationResponse(c *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:        string(c.ID),
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTurnResponse(t *domain.Turn) turnResponse {
	return turnResponse{
		ID:             string(t.ID),
		ConversationID: string(t.ConversationID),
		Author:         string(t.Author),
		Text:           t.Text,
		IsError:        t.IsError,
		CreatedAt:      t.CreatedAt,
	}
}

// ─────────────────────────────────────────────
// HTTP helpers
// ─────────────────────────────────────────────

// writeError maps service errors onto the wire. Gateway messages are already
// user-facing; anything unrecognized stays generic.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		badRequest(w, err.Error())
	case errors.Is(err, domain.ErrConversationNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		if ge, ok := domain.AsGatewayError(err); ok {
			status := http.StatusBadGateway
			if ge.Kind == domain.GatewayEmpty {
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, map[string]string{"error": ge.Msg})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}
