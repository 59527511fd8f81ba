package domain

import "time"

// Comment is a reader comment on a single article. Only the authoring user
// may edit or delete it; the backend enforces that, the client merely hides
// controls it believes are unauthorized.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bookmark is the (user, article) existence fact owned by the backend.
type Bookmark struct {
	ArticleID string    `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}
