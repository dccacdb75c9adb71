package posts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store with the same contract as the PostgreSQL
// store: (nil, nil) on absent lookups, posts newest first, comments oldest
// first. A stepped clock keeps creation times strictly ordered.
type memStore struct {
	mu       sync.Mutex
	clock    time.Time
	posts    map[uuid.UUID]Post
	comments map[uuid.UUID][]Comment
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		posts:    make(map[uuid.UUID]Post),
		comments: make(map[uuid.UUID][]Comment),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) ListPosts(ctx context.Context) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []Post{}
	for id := range m.posts {
		list = append(list, m.postLocked(id))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (m *memStore) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.posts[id]; !exists {
		return nil, nil
	}
	post := m.postLocked(id)
	return &post, nil
}

func (m *memStore) CreatePost(ctx context.Context, post *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.CreatedAt = m.tick()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	stored.Comments = nil
	m.posts[post.ID] = stored
	return nil
}

func (m *memStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	delete(m.comments, id)
	return nil
}

func (m *memStore) CreateComment(ctx context.Context, comment *Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.CreatedAt = m.tick()
	comment.UpdatedAt = comment.CreatedAt
	m.comments[comment.PostID] = append(m.comments[comment.PostID], *comment)
	return nil
}

func (m *memStore) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments[postID] {
		if c.ID == commentID {
			comment := c
			return &comment, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.comments[postID][:0]
	for _, c := range m.comments[postID] {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	m.comments[postID] = kept
	return nil
}

// postLocked assembles a post with its comment sequence; callers hold mu.
func (m *memStore) postLocked(id uuid.UUID) Post {
	post := m.posts[id]
	post.Comments = append([]Comment{}, m.comments[id]...)
	return post
}
