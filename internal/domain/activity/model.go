package activity

import "strconv"

// Actions recorded in an activity's log.
const (
	ActionCreated = "Activity Created"
	ActionUpdated = "Activity Updated"
)

// TimestampLayout is the textual format of LogEntry.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	createdDetails       = "Initial creation of activity"
	defaultUpdateDetails = "No details provided"
)

// Activity is one tracked task. Serial is positional: it is always the
// record's 1-based index in the collection. ID never changes.
type Activity struct {
	Serial       int    `json:"sno"`
	ID           string `json:"id,omitempty"`
	Priority     string `json:"priority"`
	Project      string `json:"project"`
	Line         string `json:"line"`
	Description  string `json:"description"`
	StartDate    string `json:"start_date"`
	CompleteDate string `json:"complete_date"`
	Status       string `json:"status"`
	Attachment   string `json:"attachment"`
	Remarks      string `json:"remarks"`
}

// LogKey addresses the activity's log collection. Records written before
// stable IDs existed keep their serial-keyed logs.
func (a Activity) LogKey() string {
	if a.ID != "" {
		return a.ID
	}
	return SerialLogKey(a.Serial)
}

// SerialLogKey is the log key used for records without a stable ID.
func SerialLogKey(serial int) string {
	return strconv.Itoa(serial)
}

// LogEntry is one immutable audit event in an activity's history.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	File      string `json:"file"`
}

// Outcome reports whether an operation found its target.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeNotFound Outcome = "not_found"
)

// UploadStatus reports what happened to a submitted file.
type UploadStatus string

const (
	UploadNone     UploadStatus = "none"
	UploadAccepted UploadStatus = "accepted"
	UploadRejected UploadStatus = "rejected"
)

// Renumber rewrites serials to 1..len(activities) in slice order.
func Renumber(activities []Activity) {
	for i := range activities {
		activities[i].Serial = i + 1
	}
}
