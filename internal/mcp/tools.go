package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/tracker/internal/domain/activity"
)

func registerTools(server *sdkmcp.Server, activities ActivityService) {
	h := &toolHandlers{activities: activities}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List all activities in display order",
	}, h.listActivities)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_activity",
		Description: "Get the activity currently holding a serial number",
	}, h.getActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_activity",
		Description: "Create an activity; it receives the next serial number and an initial log entry",
	}, h.createActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_activity",
		Description: "Append an update entry to an activity's log; the activity itself is unchanged",
	}, h.updateActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity and renumber the remaining ones; its log is kept",
	}, h.deleteActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "view_logs",
		Description: "Return the log entries of an activity, oldest first",
	}, h.viewLogs)
}

type toolHandlers struct {
	activities ActivityService
}

func (h *toolHandlers) listActivities(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListActivitiesParams) (*sdkmcp.CallToolResult, ListActivitiesResult, error) {
	acts, err := h.activities.List(ctx)
	if err != nil {
		return nil, ListActivitiesResult{}, toolError(err)
	}
	resp := make([]ActivityResponse, 0, len(acts))
	for _, act := range acts {
		resp = append(resp, toActivityResponse(act))
	}
	return nil, ListActivitiesResult{Activities: resp}, nil
}

func (h *toolHandlers) getActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in SerialParams) (*sdkmcp.CallToolResult, ActivityResponse, error) {
	act, err := h.activities.Get(ctx, in.Serial)
	if err != nil {
		return nil, ActivityResponse{}, toolError(err)
	}
	return nil, toActivityResponse(*act), nil
}

func (h *toolHandlers) createActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateActivityParams) (*sdkmcp.CallToolResult, CreateActivityResult, error) {
	res, err := h.activities.Create(ctx, activity.CreateRequest{
		Priority:     in.Priority,
		Project:      in.Project,
		Line:         in.Line,
		Description:  in.Description,
		StartDate:    in.StartDate,
		CompleteDate: in.CompleteDate,
		Status:       in.Status,
		Remarks:      in.Remarks,
	})
	if err != nil {
		return nil, CreateActivityResult{}, toolError(err)
	}
	return nil, CreateActivityResult{Activity: toActivityResponse(res.Activity)}, nil
}

func (h *toolHandlers) updateActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateActivityParams) (*sdkmcp.CallToolResult, UpdateActivityResult, error) {
	if in.Serial < 1 {
		return nil, UpdateActivityResult{}, toolError(activity.ErrInvalidInput)
	}
	res, err := h.activities.Update(ctx, activity.UpdateRequest{
		Serial:  in.Serial,
		Details: in.Details,
	})
	if err != nil {
		return nil, UpdateActivityResult{}, toolError(err)
	}
	out := UpdateActivityResult{Outcome: string(res.Outcome)}
	if res.Entry != nil {
		entry := toLogEntryResponse(*res.Entry)
		out.Entry = &entry
	}
	return nil, out, nil
}

func (h *toolHandlers) deleteActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in SerialParams) (*sdkmcp.CallToolResult, DeleteActivityResult, error) {
	if in.Serial < 1 {
		return nil, DeleteActivityResult{}, toolError(activity.ErrInvalidInput)
	}
	outcome, err := h.activities.Delete(ctx, in.Serial)
	if err != nil {
		return nil, DeleteActivityResult{}, toolError(err)
	}
	return nil, DeleteActivityResult{Outcome: string(outcome)}, nil
}

func (h *toolHandlers) viewLogs(ctx context.Context, _ *sdkmcp.CallToolRequest, in SerialParams) (*sdkmcp.CallToolResult, ViewLogsResult, error) {
	if in.Serial < 1 {
		return nil, ViewLogsResult{}, toolError(activity.ErrInvalidInput)
	}
	entries, err := h.activities.ViewLogs(ctx, in.Serial)
	if err != nil {
		return nil, ViewLogsResult{}, toolError(err)
	}
	resp := make([]LogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toLogEntryResponse(entry))
	}
	return nil, ViewLogsResult{Entries: resp}, nil
}
