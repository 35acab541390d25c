package model

const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
)

type Post struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
	Username   string     `json:"username"`
	Status     string     `json:"status"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	Categories []Category `json:"categories"`
	Comments   []Comment  `json:"comments,omitempty"`
}

type PostRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Status      string  `json:"status,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CategoryIDs []int64 `json:"categoryIds"`
}
