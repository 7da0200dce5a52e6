package models

// TranscriptLine is one time-ordered caption line of a lesson video. Time is
// the playback position in seconds; the line whose time is the largest value
// not exceeding the current position is the "active" line.
type TranscriptLine struct {
	Time int    `json:"time"`
	Text string `json:"text"`
}

// Highlight is a labeled timestamp marker into a lesson's media timeline.
type Highlight struct {
	Label string `json:"label"`
	Time  int    `json:"time"`
	Color string `json:"color,omitempty"`
}

// Lesson is one entry of the video-course library.
type Lesson struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Duration        string           `json:"duration"` // display string, e.g. "12:30"
	DurationSeconds int              `json:"duration_seconds"`
	Thumbnail       string           `json:"thumbnail,omitempty"`
	VideoURL        string           `json:"video_url,omitempty"`
	Transcript      []TranscriptLine `json:"transcript,omitempty"`
	Highlights      []Highlight      `json:"highlights,omitempty"`
	Category        string           `json:"category,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
}
