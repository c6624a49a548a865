// Package templates renders the tracker's HTML pages as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/rpggio/tracker/internal/domain/activity"
)

// AppName is shown in page titles and headers.
const AppName = "Activity Tracker"

// ActivityFormFields lists the text fields of the add form, in display order.
var ActivityFormFields = []FormField{
	{Name: "priority", Label: "Priority"},
	{Name: "project", Label: "Project"},
	{Name: "line", Label: "Line"},
	{Name: "description", Label: "Description", Multiline: true},
	{Name: "start_date", Label: "Start date", Type: "date"},
	{Name: "complete_date", Label: "Complete date", Type: "date"},
	{Name: "status", Label: "Status"},
	{Name: "remarks", Label: "Remarks", Multiline: true},
}

// FormField describes one input of the add form.
type FormField struct {
	Name      string
	Label     string
	Type      string
	Multiline bool
}

// IndexPage lists all activities.
func IndexPage(activities []activity.Activity) templ.Component {
	return layout("Activities", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<p><a href="/add">Add activity</a></p>`)
		if len(activities) == 0 {
			p.printf(`<p class="empty">No activities yet.</p>`)
			return p.err
		}
		p.printf(`<table><thead><tr>`)
		for _, h := range []string{"S.No", "Priority", "Project", "Line", "Description", "Start", "Complete", "Status", "Attachment", "Remarks", ""} {
			p.printf(`<th>%s</th>`, templ.EscapeString(h))
		}
		p.printf(`</tr></thead><tbody>`)
		for _, act := range activities {
			serial := strconv.Itoa(act.Serial)
			p.printf(`<tr>`)
			for _, v := range []string{serial, act.Priority, act.Project, act.Line, act.Description, act.StartDate, act.CompleteDate, act.Status} {
				p.printf(`<td>%s</td>`, templ.EscapeString(v))
			}
			if act.Attachment != "" {
				p.printf(`<td><a href="/uploads/%s">%s</a></td>`, templ.EscapeString(url.PathEscape(act.Attachment)), templ.EscapeString(act.Attachment))
			} else {
				p.printf(`<td></td>`)
			}
			p.printf(`<td>%s</td>`, templ.EscapeString(act.Remarks))
			p.printf(`<td><a href="/update/%s">Update</a> <a href="/view_logs/%s">Logs</a>`, serial, serial)
			p.printf(`<form method="post" action="/delete/%s" class="inline"><button type="submit">Delete</button></form></td>`, serial)
			p.printf(`</tr>`)
		}
		p.printf(`</tbody></table>`)
		return p.err
	}))
}

// AddPage renders the activity creation form.
func AddPage() templ.Component {
	return layout("Add activity", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<form method="post" action="/add" enctype="multipart/form-data">`)
		for _, f := range ActivityFormFields {
			p.printf(`<label for="%[1]s">%[2]s</label>`, f.Name, templ.EscapeString(f.Label))
			if f.Multiline {
				p.printf(`<textarea id="%[1]s" name="%[1]s"></textarea>`, f.Name)
				continue
			}
			inputType := f.Type
			if inputType == "" {
				inputType = "text"
			}
			p.printf(`<input id="%[1]s" name="%[1]s" type="%[2]s">`, f.Name, inputType)
		}
		p.printf(`<label for="attachment">Attachment (pdf, png, jpg)</label><input id="attachment" name="attachment" type="file">`)
		p.printf(`<button type="submit">Save</button> <a href="/">Cancel</a></form>`)
		return p.err
	}))
}

// UpdatePage renders the update form for the activity at serial. act is nil
// when no activity currently holds serial.
func UpdatePage(serial int, act *activity.Activity) templ.Component {
	return layout(fmt.Sprintf("Update activity %d", serial), templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		if act != nil {
			p.printf(`<p><strong>%s</strong> %s</p>`, templ.EscapeString(act.Project), templ.EscapeString(act.Description))
		}
		p.printf(`<form method="post" action="/update/%d" enctype="multipart/form-data">`, serial)
		p.printf(`<label for="update_details">Details</label><textarea id="update_details" name="update_details"></textarea>`)
		p.printf(`<label for="update_file">File (pdf, png, jpg)</label><input id="update_file" name="update_file" type="file">`)
		p.printf(`<button type="submit">Add update</button> <a href="/">Cancel</a></form>`)
		p.printf(`<p><a href="/view_logs/%d">View log</a></p>`, serial)
		return p.err
	}))
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s | %s</title>`, templ.EscapeString(title), AppName)
		p.printf(`<style>table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px}form.inline{display:inline}label{display:block;margin-top:8px}</style>`)
		p.printf(`</head><body><h1><a href="/">%s</a></h1><h2>%s</h2>`, AppName, templ.EscapeString(title))
		if p.err != nil {
			return p.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.printf(`</body></html>`)
		return p.err
	})
}

// printer stops writing after the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
