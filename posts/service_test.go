package posts

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-s-c49/post-comment-web/apperror"
)

func errorMessage(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperror.FromError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	return appErr.Message
}

func mustCreatePost(t *testing.T, svc *Service, owner uuid.UUID, caption string) *Post {
	t.Helper()
	post, err := svc.Create(context.Background(), owner, CreatePostRequest{
		ImageURL: "https://example.com/" + caption + ".jpg",
		Caption:  caption,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreatePostRequest
		wantMsg string
	}{
		{"missing imageUrl", CreatePostRequest{Caption: "hello"}, "imageUrl and caption are required"},
		{"missing caption", CreatePostRequest{ImageURL: "https://example.com/a.jpg"}, "imageUrl and caption are required"},
		{"whitespace caption", CreatePostRequest{ImageURL: "https://example.com/a.jpg", Caption: "   "}, "imageUrl and caption are required"},
		{"imageUrl too long", CreatePostRequest{ImageURL: "https://example.com/" + strings.Repeat("a", 2000), Caption: "hello"}, "imageUrl must be at most 2000 characters"},
		{"caption too long", CreatePostRequest{ImageURL: "https://example.com/a.jpg", Caption: strings.Repeat("a", 501)}, "caption must be at most 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemStore())
			_, err := svc.Create(context.Background(), uuid.New(), tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsBadRequest(err))
			assert.Equal(t, tt.wantMsg, errorMessage(t, err))
		})
	}
}

func TestCreatePostSetsOwner(t *testing.T) {
	svc := NewService(newMemStore())
	owner := uuid.New()

	post, err := svc.Create(context.Background(), owner, CreatePostRequest{
		ImageURL: "  https://example.com/cat.jpg  ",
		Caption:  "  my cat  ",
	})
	require.NoError(t, err)
	assert.Equal(t, owner, post.Owner)
	assert.Equal(t, "https://example.com/cat.jpg", post.ImageURL)
	assert.Equal(t, "my cat", post.Caption)
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)
}

func TestListPostsNewestFirst(t *testing.T) {
	svc := NewService(newMemStore())
	owner := uuid.New()

	mustCreatePost(t, svc, owner, "a")
	mustCreatePost(t, svc, owner, "b")
	mustCreatePost(t, svc, owner, "c")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Caption)
	assert.Equal(t, "b", list[1].Caption)
	assert.Equal(t, "a", list[2].Caption)
}

func TestServiceDeletePost(t *testing.T) {
	svc := NewService(newMemStore())
	owner := uuid.New()
	stranger := uuid.New()
	post := mustCreatePost(t, svc, owner, "a")

	t.Run("unknown post", func(t *testing.T) {
		err := svc.Delete(context.Background(), uuid.New(), owner)
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t, "Post not found", errorMessage(t, err))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := svc.Delete(context.Background(), post.ID, stranger)
		assert.True(t, apperror.IsForbidden(err))
		assert.Equal(t, "Forbidden", errorMessage(t, err))
	})

	t.Run("owner deletes and the post is unlistable", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), post.ID, owner))
		list, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)

		err = svc.Delete(context.Background(), post.ID, owner)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestComments(t *testing.T) {
	svc := NewService(newMemStore())
	owner := uuid.New()
	commenter := uuid.New()
	post := mustCreatePost(t, svc, owner, "a")

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.Comments(context.Background(), uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("empty sequence is non-nil", func(t *testing.T) {
		comments, err := svc.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("added comment appears exactly once with its author", func(t *testing.T) {
		created, err := svc.AddComment(context.Background(), post.ID, commenter, CreateCommentRequest{Text: "nice"})
		require.NoError(t, err)
		assert.Equal(t, commenter, created.Author)

		comments, err := svc.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, created.ID, comments[0].ID)
		assert.Equal(t, commenter, comments[0].Author)
		assert.Equal(t, "nice", comments[0].Text)
	})

	t.Run("comments come back oldest first", func(t *testing.T) {
		_, err := svc.AddComment(context.Background(), post.ID, commenter, CreateCommentRequest{Text: "second"})
		require.NoError(t, err)

		comments, err := svc.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "nice", comments[0].Text)
		assert.Equal(t, "second", comments[1].Text)
	})
}

func TestAddCommentValidation(t *testing.T) {
	svc := NewService(newMemStore())
	post := mustCreatePost(t, svc, uuid.New(), "a")

	t.Run("missing text", func(t *testing.T) {
		_, err := svc.AddComment(context.Background(), post.ID, uuid.New(), CreateCommentRequest{Text: "  "})
		assert.True(t, apperror.IsBadRequest(err))
		assert.Equal(t, "text is required", errorMessage(t, err))
	})

	t.Run("text too long", func(t *testing.T) {
		_, err := svc.AddComment(context.Background(), post.ID, uuid.New(), CreateCommentRequest{Text: strings.Repeat("a", 501)})
		assert.True(t, apperror.IsBadRequest(err))
		assert.Equal(t, "text must be at most 500 characters", errorMessage(t, err))
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), CreateCommentRequest{Text: "hi"})
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t, "Post not found", errorMessage(t, err))
	})
}

func TestRemoveComment(t *testing.T) {
	svc := NewService(newMemStore())
	owner := uuid.New()
	author := uuid.New()
	stranger := uuid.New()

	post := mustCreatePost(t, svc, owner, "a")
	comment, err := svc.AddComment(context.Background(), post.ID, author, CreateCommentRequest{Text: "hi"})
	require.NoError(t, err)

	t.Run("unknown post", func(t *testing.T) {
		err := svc.RemoveComment(context.Background(), uuid.New(), comment.ID, author)
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t, "Post not found", errorMessage(t, err))
	})

	t.Run("unknown comment", func(t *testing.T) {
		err := svc.RemoveComment(context.Background(), post.ID, uuid.New(), author)
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t, "Comment not found", errorMessage(t, err))
	})

	t.Run("neither author nor post owner", func(t *testing.T) {
		err := svc.RemoveComment(context.Background(), post.ID, comment.ID, stranger)
		assert.True(t, apperror.IsForbidden(err))

		comments, listErr := svc.Comments(context.Background(), post.ID)
		require.NoError(t, listErr)
		assert.Len(t, comments, 1)
	})

	t.Run("author removes own comment", func(t *testing.T) {
		require.NoError(t, svc.RemoveComment(context.Background(), post.ID, comment.ID, author))
		comments, err := svc.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("post owner removes another user's comment", func(t *testing.T) {
		again, err := svc.AddComment(context.Background(), post.ID, author, CreateCommentRequest{Text: "again"})
		require.NoError(t, err)
		require.NoError(t, svc.RemoveComment(context.Background(), post.ID, again.ID, owner))

		comments, err := svc.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
