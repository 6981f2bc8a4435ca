package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

type PostHandler struct {
	posts  services.PostService
	logger *zap.Logger
}

func NewPostHandler(posts services.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	req.PodID = chi.URLParam(r, "podId")
	req.UserID = userID

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	post, err := h.posts.CreatePost(r.Context(), &req)
	if err != nil {
		h.logger.Error("create post failed", zap.String("podId", req.PodID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *PostHandler) ListPodPosts(w http.ResponseWriter, r *http.Request) {
	podID := chi.URLParam(r, "podId")

	posts, err := h.posts.GetPodPosts(r.Context(), podID)
	if err != nil {
		h.logger.Error("list pod posts failed", zap.String("podId", podID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.setMembership(w, r, h.posts.LikePost, "Failed to like post")
}

func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	h.setMembership(w, r, h.posts.UnlikePost, "Failed to unlike post")
}

func (h *PostHandler) BookmarkPost(w http.ResponseWriter, r *http.Request) {
	h.setMembership(w, r, h.posts.BookmarkPost, "Failed to bookmark post")
}

func (h *PostHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Content is required"))
		return
	}

	reply, err := h.posts.CreateReply(r.Context(), postID, userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		h.logger.Error("create reply failed", zap.String("postId", postID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create reply"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(reply))
}

func (h *PostHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	replies, err := h.posts.GetPostReplies(r.Context(), postID)
	if err != nil {
		h.logger.Error("list replies failed", zap.String("postId", postID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list replies"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(replies))
}

// setMembership shares the handler body of the like/unlike/bookmark toggles.
func (h *PostHandler) setMembership(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, postID, userID string) error, failMsg string) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	if err := op(r.Context(), postID, userID); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		h.logger.Error("post toggle failed", zap.String("postId", postID), zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(failMsg))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
