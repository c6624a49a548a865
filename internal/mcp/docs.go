package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `tracker keeps a list of activities, each with an append-only log.

Core concepts:
- Activity: a task with priority, project, line, description, dates, status and remarks.
- sno: an activity's serial number. Serials are always 1..N in list order and shift down when an activity is deleted.
- Log: timestamped entries ("Activity Created", "Activity Updated") attached to an activity. Logs follow the activity across renumbering.

Workflow:
1) Call list_activities to learn current serials before acting on one.
2) Use create_activity for new work and update_activity to record progress.
3) delete_activity renumbers everything after the deleted serial; list again before the next call.
4) view_logs returns the history of one activity.

Updating or deleting an unknown serial is not an error; the result reports outcome "not_found".
Attachments are only accepted through the web form.

Docs:
- tracker://docs/data-model
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "tracker://docs/data-model",
		Name:        "docs_data_model",
		Title:       "tracker data model",
		Description: "Fields of activities and log entries, and how serials behave.",
		Content: `# tracker data model

## Activity

| field | meaning |
|---|---|
| sno | serial number, dense 1..N in list order |
| id | stable identifier, never changes |
| priority, project, line, description | free text |
| start_date, complete_date | free text dates |
| status, remarks | free text |
| attachment | stored file name, empty when none |

No field is validated. Missing fields are stored as empty strings.

## Log entry

| field | meaning |
|---|---|
| timestamp | local time, YYYY-MM-DD HH:MM:SS |
| action | "Activity Created" or "Activity Updated" |
| details | free text; updates without details read "No details provided" |
| file | stored file name, empty when none |

Entries are only ever appended. Deleting an activity keeps its log.

## Serials

Deleting activity k moves every activity after it down by one. A serial
therefore names a position, not an activity: re-read the list after any
delete.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
