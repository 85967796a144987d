package handler

import (
	"encoding/json"
	"net/http"

	"tdsc_backend/internal/api/middleware"
	"tdsc_backend/internal/app/service"
	"tdsc_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

// EngagementHandler serves the per-post vote and comment routes under
// /posts/{slug}.
type EngagementHandler struct {
	voteService    *service.VoteService
	commentService *service.CommentService
}

func NewEngagementHandler(voteService *service.VoteService, commentService *service.CommentService) *EngagementHandler {
	return &EngagementHandler{voteService: voteService, commentService: commentService}
}

func (h *EngagementHandler) RegisterRoutes(r chi.Router) {
	// Public reads attach the caller's identity when a valid token is
	// present, else proceed anonymously.
	r.Get("/{slug}/votes", h.getVotes)
	r.Get("/{slug}/comments", h.listComments)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireUser)
		protected.Post("/{slug}/votes", h.submitVote)
		protected.Post("/{slug}/comments", h.addComment)
		protected.Delete("/{slug}/comments/{commentID}", h.deleteComment)
	})
}

func (h *EngagementHandler) getVotes(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	callerID, _ := middleware.GetUserIDFromContext(r.Context())

	counts, err := h.voteService.Counts(r.Context(), slug, callerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, counts)
}

func (h *EngagementHandler) submitVote(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req struct {
		VoteType string `json:"vote_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	counts, err := h.voteService.Submit(r.Context(), userID, slug, req.VoteType)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, counts)
}

func (h *EngagementHandler) listComments(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	callerID, _ := middleware.GetUserIDFromContext(r.Context())

	entries, err := h.commentService.List(r.Context(), slug, callerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *EngagementHandler) addComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.CommentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	entry, err := h.commentService.Create(r.Context(), slug, userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entry)
}

func (h *EngagementHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Comment deleted"})
}
