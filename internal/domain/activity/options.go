package activity

import "github.com/rpggio/tracker/internal/upload"

// CreateRequest carries the fields of a new activity. Nothing is validated;
// missing fields are stored empty.
type CreateRequest struct {
	Priority     string
	Project      string
	Line         string
	Description  string
	StartDate    string
	CompleteDate string
	Status       string
	Remarks      string
	Attachment   *upload.File
}

// CreateResult is the outcome of Create.
type CreateResult struct {
	Activity Activity
	Upload   UploadStatus
}

// UpdateRequest appends an update entry to an activity's log.
type UpdateRequest struct {
	Serial  int
	Details string
	File    *upload.File
}

// UpdateResult is the outcome of Update. Entry is nil when the serial was unknown.
type UpdateResult struct {
	Outcome Outcome
	Upload  UploadStatus
	Entry   *LogEntry
}
