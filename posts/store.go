package posts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/K-s-c49/post-comment-web/apperror"
)

// PgStore is the PostgreSQL-backed Store. Comments live in their own table
// keyed by post id; deletion of a comment is a single conditional DELETE, so
// there is no read-modify-write window on the sequence.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a PgStore on the given pool.
func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

// ListPosts returns all posts newest first with their comments embedded.
func (s *PgStore) ListPosts(ctx context.Context) ([]Post, error) {
	query := `SELECT id, owner_id, image_url, caption, created_at, updated_at
	          FROM posts
	          ORDER BY created_at DESC, id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	posts := []Post{}
	ids := []uuid.UUID{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Owner, &p.ImageURL, &p.Caption, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		p.Comments = []Comment{}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	byPost, err := s.commentsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if cs, ok := byPost[posts[i].ID]; ok {
			posts[i].Comments = cs
		}
	}
	return posts, nil
}

// GetPost returns one post with comments embedded, or (nil, nil) when no
// post has that id.
func (s *PgStore) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	query := `SELECT id, owner_id, image_url, caption, created_at, updated_at
	          FROM posts
	          WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Owner, &p.ImageURL, &p.Caption, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}

	byPost, err := s.commentsForPosts(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return nil, err
	}
	p.Comments = []Comment{}
	if cs, ok := byPost[p.ID]; ok {
		p.Comments = cs
	}
	return &p, nil
}

// CreatePost inserts the post and fills in its timestamps.
func (s *PgStore) CreatePost(ctx context.Context, post *Post) error {
	query := `INSERT INTO posts (id, owner_id, image_url, caption)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err := s.db.QueryRow(ctx, query, post.ID, post.Owner, post.ImageURL, post.Caption).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return apperror.NewDatabaseError("failed to create post", err)
	}
	return nil
}

// DeletePost removes the post; its comments cascade with it.
func (s *PgStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// CreateComment appends a comment to its post's sequence.
func (s *PgStore) CreateComment(ctx context.Context, comment *Comment) error {
	query := `INSERT INTO comments (id, post_id, author_id, body)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err := s.db.QueryRow(ctx, query, comment.ID, comment.PostID, comment.Author, comment.Text).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return apperror.NewDatabaseError("failed to create comment", err)
	}
	return nil
}

// GetComment returns one comment of the given post, or (nil, nil) when the
// post has no such comment.
func (s *PgStore) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*Comment, error) {
	var c Comment
	query := `SELECT id, post_id, author_id, body, created_at, updated_at
	          FROM comments
	          WHERE id = $1 AND post_id = $2`
	err := s.db.QueryRow(ctx, query, commentID, postID).
		Scan(&c.ID, &c.PostID, &c.Author, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get comment", err)
	}
	return &c, nil
}

// DeleteComment removes a comment in one conditional statement.
func (s *PgStore) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1 AND post_id = $2`
	if _, err := s.db.Exec(ctx, query, commentID, postID); err != nil {
		return apperror.NewDatabaseError("failed to delete comment", err)
	}
	return nil
}

// commentsForPosts loads the comment sequences for a set of posts in one
// query, grouped by post and ordered oldest first within each post.
func (s *PgStore) commentsForPosts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]Comment, error) {
	query := `SELECT id, post_id, author_id, body, created_at, updated_at
	          FROM comments
	          WHERE post_id = ANY($1)
	          ORDER BY created_at, id`
	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	byPost := make(map[uuid.UUID][]Comment)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment", err)
		}
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	return byPost, nil
}
