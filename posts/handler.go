package posts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/K-s-c49/post-comment-web/apperror"
	"github.com/K-s-c49/post-comment-web/auth"
)

// Handler exposes the post service over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the HTTP handlers for the post endpoints.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the post routes on a sub-router. Listing posts and
// comments is public; every mutation goes through requireAuth.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth func(next http.Handler) http.Handler) {
	r.Get("/", h.handleList)
	r.Get("/{id}/comments", h.handleListComments)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.handleCreate)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/comments", h.handleAddComment)
		r.Delete("/{id}/comments/{commentID}", h.handleRemoveComment)
	})
}

// handleList godoc
// @Summary List posts
// @Description Returns all posts, newest first, with comments embedded.
// @Tags posts
// @Produce json
// @Success 200 {array} posts.Post
// @Router /api/posts [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// handleCreate godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post details"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/posts [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Missing Bearer token", nil))
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	post, err := h.service.Create(r.Context(), requester, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, post)
}

// handleDelete godoc
// @Summary Delete a post
// @Description Deletes a post; only its owner may do so.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} posts.AckResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Missing Bearer token", nil))
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), postID, requester); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, AckResponse{OK: true})
}

// handleListComments godoc
// @Summary List a post's comments
// @Tags comments
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {array} posts.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/comments [get]
func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	comments, err := h.service.Comments(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, comments)
}

// handleAddComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param commentBody body posts.CreateCommentRequest true "Comment details"
// @Success 201 {object} posts.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/comments [post]
func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Missing Bearer token", nil))
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	comment, err := h.service.AddComment(r.Context(), postID, requester, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, comment)
}

// handleRemoveComment godoc
// @Summary Delete a comment
// @Description Deletes a comment; allowed for its author or the post's owner.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param commentID path string true "Comment id"
// @Success 200 {object} posts.AckResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/comments/{commentID} [delete]
func (h *Handler) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Missing Bearer token", nil))
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid comment id", nil))
		return
	}

	if err := h.service.RemoveComment(r.Context(), postID, commentID, requester); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, AckResponse{OK: true})
}

// parsePostID rejects malformed path ids before any store access, so a bad
// id is always a 400 and never a 404.
func parsePostID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid post id", nil)
	}
	return id, nil
}
