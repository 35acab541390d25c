package model

// Comment mirrors the backend's comment view. The text field is named
// "comment" on responses but "content" on create/update requests.
type Comment struct {
	ID         int64  `json:"id"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
	Author     string `json:"author"`
	AuthorID   int64  `json:"authorId"`
	PostID     int64  `json:"postId,omitempty"`
	PostStatus string `json:"postStatus,omitempty"`
}

type CommentRequest struct {
	Content string `json:"content"`
}
