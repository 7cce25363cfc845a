package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/chat"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/handler/http/response"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/jwt"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/service/file"
)

type ChatHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	UploadFile(w http.ResponseWriter, r *http.Request)
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type ChatHandlerImpl struct {
	chatService chat.ChatService
	fileService file.FileService
	jwtService  jwt.Service
}

func NewChatHandler(chatService chat.ChatService, fileService file.FileService, jwtService jwt.Service) ChatHandler {
	return &ChatHandlerImpl{
		chatService: chatService,
		fileService: fileService,
		jwtService:  jwtService,
	}
}

// Send implements ChatHandler.
func (h *ChatHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req chat.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Send message decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.chatService.Send(r.Context(), req)
	if err != nil {
		slog.Error("Send message service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent", result)
}

// History implements ChatHandler.
func (h *ChatHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	filter := chat.HistoryFilter{
		PeerID: chi.URLParam(r, "peerID"),
		Limit:  limit,
	}

	results, err := h.chatService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UploadFile implements ChatHandler. The returned URL goes into a
// subsequent Send as file_url.
func (h *ChatHandlerImpl) UploadFile(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	userID, _ := claims["user_id"].(string)

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required", nil)
		return
	}
	defer f.Close()

	url, err := h.fileService.UploadChatFile(r.Context(), userID, f, header.Filename)
	if err != nil {
		slog.Error("UploadChatFile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded", map[string]string{"file_url": url})
}

// GetStreamToken implements ChatHandler. EventSource cannot set an
// Authorization header, so the stream authenticates with a short-lived
// token passed as a query parameter.
func (h *ChatHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, chat.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream implements ChatHandler. It holds an SSE connection open and
// forwards live chat events for the authenticated user.
func (h *ChatHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.chatService.Subscribe(r.Context(), userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
