package models

// KnowledgeItem is one downloadable resource inside a knowledge category.
// Only metadata is kept; the URL points at an external location.
type KnowledgeItem struct {
	Title string   `json:"title"`
	Type  string   `json:"type"` // e.g. "pdf", "xlsx", "video"
	Size  string   `json:"size"`
	Tags  []string `json:"tags,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// KnowledgeCategory groups resources in the solution library. The two boolean
// flags mark categories with special rendering: the AI repository feed and the
// per-project report shelf.
type KnowledgeCategory struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Color            string          `json:"color,omitempty"`
	Items            []KnowledgeItem `json:"items,omitempty"`
	IsAiRepository   bool            `json:"is_ai_repository,omitempty"`
	IsProjectReports bool            `json:"is_project_reports,omitempty"`
}
