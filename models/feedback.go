package models

// UploadStatus tracks the admin review state of a user upload.
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusCompleted UploadStatus = "completed"
)

// UserUpload records a file a user submitted for review. File selection is
// simulated: only name/size/type metadata is kept, never file bytes. Status
// moves from pending to completed only through an explicit admin action.
type UserUpload struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	UserName    string       `json:"user_name"`
	FileName    string       `json:"file_name"`
	FileSize    string       `json:"file_size"`
	FileType    string       `json:"file_type"`
	Status      UploadStatus `json:"status"`
	SubmittedAt string       `json:"submitted_at"`
}

// AdminNote is a user-authored note, optionally quoting a transcript excerpt
// from the lesson it was taken in.
type AdminNote struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	LessonID  string `json:"lesson_id,omitempty"`
	Quote     string `json:"quote,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
