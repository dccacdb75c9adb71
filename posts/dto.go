package posts

// CreatePostRequest is the payload for creating a post. The image is
// referenced by URL; uploads are out of scope.
type CreatePostRequest struct {
	ImageURL string `json:"imageUrl" example:"https://example.com/cat.jpg"`
	Caption  string `json:"caption" example:"my cat"`
}

// CreateCommentRequest is the payload for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text" example:"nice cat"`
}

// AckResponse acknowledges a successful deletion.
type AckResponse struct {
	OK bool `json:"ok" example:"true"`
}
