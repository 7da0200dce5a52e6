package models

// BlogPost is an article in the content feed. Posts are admin-owned; the feed
// is insertion-ordered with the newest post first.
type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"` // HTML body
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	OriginalURL string   `json:"original_url,omitempty"`
}
