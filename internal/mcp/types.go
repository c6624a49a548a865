package mcp

import "github.com/rpggio/tracker/internal/domain/activity"

type ListActivitiesParams struct{}

type SerialParams struct {
	Serial int `json:"sno" jsonschema:"serial number of the activity as shown in the list"`
}

type CreateActivityParams struct {
	Priority     string `json:"priority,omitempty" jsonschema:"priority label"`
	Project      string `json:"project,omitempty" jsonschema:"project name"`
	Line         string `json:"line,omitempty" jsonschema:"line or area the work belongs to"`
	Description  string `json:"description,omitempty" jsonschema:"what the activity is about"`
	StartDate    string `json:"start_date,omitempty" jsonschema:"start date, free text"`
	CompleteDate string `json:"complete_date,omitempty" jsonschema:"completion date, free text"`
	Status       string `json:"status,omitempty" jsonschema:"current status"`
	Remarks      string `json:"remarks,omitempty" jsonschema:"free-form remarks"`
}

type UpdateActivityParams struct {
	Serial  int    `json:"sno" jsonschema:"serial number of the activity to update"`
	Details string `json:"details,omitempty" jsonschema:"what changed; defaults to a placeholder when empty"`
}

type ActivityResponse struct {
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

type LogEntryResponse struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	File      string `json:"file"`
}

type ListActivitiesResult struct {
	Activities []ActivityResponse `json:"activities"`
}

type CreateActivityResult struct {
	Activity ActivityResponse `json:"activity"`
}

type UpdateActivityResult struct {
	Outcome string            `json:"outcome" jsonschema:"ok, or not_found when no activity holds the serial"`
	Entry   *LogEntryResponse `json:"entry,omitempty"`
}

type DeleteActivityResult struct {
	Outcome string `json:"outcome" jsonschema:"ok, or not_found when no activity held the serial"`
}

type ViewLogsResult struct {
	Entries []LogEntryResponse `json:"entries"`
}

func toActivityResponse(act activity.Activity) ActivityResponse {
	return ActivityResponse{
		Serial:       act.Serial,
		ID:           act.ID,
		Priority:     act.Priority,
		Project:      act.Project,
		Line:         act.Line,
		Description:  act.Description,
		StartDate:    act.StartDate,
		CompleteDate: act.CompleteDate,
		Status:       act.Status,
		Attachment:   act.Attachment,
		Remarks:      act.Remarks,
	}
}

func toLogEntryResponse(entry activity.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		Timestamp: entry.Timestamp,
		Action:    entry.Action,
		Details:   entry.Details,
		File:      entry.File,
	}
}
