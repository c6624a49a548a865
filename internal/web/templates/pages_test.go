package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestIndexPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, IndexPage(nil).Render(context.Background(), &buf))

	html := buf.String()
	require.Contains(t, html, "No activities yet.")
	require.Contains(t, html, `href="/add"`)
	require.NotContains(t, html, "<table>")
}

func TestIndexPage_Rows(t *testing.T) {
	activities := []activity.Activity{
		{Serial: 1, Project: "Bridge", Status: "Open", Attachment: "1_plan.pdf"},
		{Serial: 2, Project: "<script>", Description: "a & b"},
	}

	var buf bytes.Buffer
	require.NoError(t, IndexPage(activities).Render(context.Background(), &buf))

	html := buf.String()
	require.Contains(t, html, "<td>Bridge</td>")
	require.Contains(t, html, `href="/uploads/1_plan.pdf"`)
	require.Contains(t, html, `action="/delete/2"`)
	require.Contains(t, html, `href="/update/1"`)
	require.Contains(t, html, `href="/view_logs/2"`)
	require.Contains(t, html, "&lt;script&gt;")
	require.Contains(t, html, "a &amp; b")
	require.NotContains(t, html, "<script>")
}

func TestAddPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AddPage().Render(context.Background(), &buf))

	html := buf.String()
	require.Contains(t, html, `enctype="multipart/form-data"`)
	for _, f := range ActivityFormFields {
		require.Contains(t, html, `name="`+f.Name+`"`)
	}
	require.Contains(t, html, `name="attachment" type="file"`)
}

func TestUpdatePage(t *testing.T) {
	act := &activity.Activity{Serial: 3, Project: "Paint"}

	var buf bytes.Buffer
	require.NoError(t, UpdatePage(3, act).Render(context.Background(), &buf))

	html := buf.String()
	require.Contains(t, html, `action="/update/3"`)
	require.Contains(t, html, `name="update_details"`)
	require.Contains(t, html, `name="update_file" type="file"`)
	require.Contains(t, html, "<strong>Paint</strong>")

	buf.Reset()
	require.NoError(t, UpdatePage(99, nil).Render(context.Background(), &buf))
	require.Contains(t, buf.String(), `action="/update/99"`)
}
