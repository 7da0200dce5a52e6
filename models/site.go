package models

// EmailLog is one append-only audit entry for an outbound notification.
type EmailLog struct {
	ID        string `json:"id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body,omitempty"`
	SentAt    string `json:"sent_at"`
	TriggerBy string `json:"trigger_by,omitempty"`
}

// IntroVideo is the singleton landing-page video configuration.
type IntroVideo struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// AboutUsInfo is the singleton "about us" page content.
type AboutUsInfo struct {
	Title   string `json:"title"`
	Content string `json:"content"` // HTML body
	Contact string `json:"contact,omitempty"`
}
