// Package posts implements the post and comment surface: listing, creation
// and deletion of posts, and the comment sequence embedded in each post.
// Mutations enforce the ownership rules: a post is deleted only by its
// owner, a comment by its author or the owning post's owner.
package posts

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/K-s-c49/post-comment-web/apperror"
)

const (
	maxImageURLLen = 2000
	maxCaptionLen  = 500
	maxCommentLen  = 500
)

// Store persists posts and their comments. Lookup methods return (nil, nil)
// when the resource is absent. ListPosts and GetPost embed comments ordered
// by creation time ascending; ListPosts orders posts newest first.
type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	CreatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error
}

// Service carries the post/comment business rules.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every post, newest first, comments embedded.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.store.ListPosts(ctx)
}

// Create validates the payload and persists a post owned by owner.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, req CreatePostRequest) (*Post, error) {
	imageURL := strings.TrimSpace(req.ImageURL)
	caption := strings.TrimSpace(req.Caption)
	if imageURL == "" || caption == "" {
		return nil, apperror.NewBadRequestError("imageUrl and caption are required", nil)
	}
	if utf8.RuneCountInString(imageURL) > maxImageURLLen {
		return nil, apperror.NewBadRequestError("imageUrl must be at most 2000 characters", nil)
	}
	if utf8.RuneCountInString(caption) > maxCaptionLen {
		return nil, apperror.NewBadRequestError("caption must be at most 500 characters", nil)
	}

	post := &Post{
		ID:       uuid.New(),
		Owner:    owner,
		ImageURL: imageURL,
		Caption:  caption,
		Comments: []Comment{},
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the owner may delete it; the post's comments
// go with it.
func (s *Service) Delete(ctx context.Context, postID, requester uuid.UUID) error {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	if post.Owner != requester {
		return apperror.NewForbiddenError("Forbidden", nil)
	}
	return s.store.DeletePost(ctx, postID)
}

// Comments returns the comment sequence of a post.
func (s *Service) Comments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}
	return post.Comments, nil
}

// AddComment validates the payload and appends a comment authored by author
// to the post's sequence.
func (s *Service) AddComment(ctx context.Context, postID, author uuid.UUID, req CreateCommentRequest) (*Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperror.NewBadRequestError("text is required", nil)
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return nil, apperror.NewBadRequestError("text must be at most 500 characters", nil)
	}

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}

	comment := &Comment{
		ID:     uuid.New(),
		PostID: postID,
		Author: author,
		Text:   text,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// RemoveComment deletes a comment. The requester must be the comment's
// author or the post's owner. Existence is checked before authorization so
// absent resources answer 404, not 403.
func (s *Service) RemoveComment(ctx context.Context, postID, commentID, requester uuid.UUID) error {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperror.NewNotFoundError("Post not found", nil)
	}

	comment, err := s.store.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperror.NewNotFoundError("Comment not found", nil)
	}

	if comment.Author != requester && post.Owner != requester {
		return apperror.NewForbiddenError("Forbidden", nil)
	}

	return s.store.DeleteComment(ctx, postID, commentID)
}
