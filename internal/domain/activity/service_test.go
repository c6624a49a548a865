package activity_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/rpggio/tracker/internal/repository/mocks"
	"github.com/rpggio/tracker/internal/upload"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memRecords struct {
	activities []activity.Activity
}

func (m *memRecords) Load(context.Context) ([]activity.Activity, error) {
	return append([]activity.Activity(nil), m.activities...), nil
}

func (m *memRecords) Save(_ context.Context, activities []activity.Activity) error {
	m.activities = append([]activity.Activity(nil), activities...)
	return nil
}

type memLogs struct {
	logs map[string][]activity.LogEntry
}

func (m *memLogs) Load(_ context.Context, key string) ([]activity.LogEntry, error) {
	return append([]activity.LogEntry{}, m.logs[key]...), nil
}

func (m *memLogs) Save(_ context.Context, key string, entries []activity.LogEntry) error {
	if m.logs == nil {
		m.logs = map[string][]activity.LogEntry{}
	}
	m.logs[key] = append([]activity.LogEntry(nil), entries...)
	return nil
}

type memFiles struct {
	files map[string][]byte
	err   error
}

func (m *memFiles) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	stored := name
	for i := 1; m.files[stored] != nil; i++ {
		ext := path.Ext(name)
		stored = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), i, ext)
	}
	m.files[stored] = data
	return stored, nil
}

type countingRecorder struct {
	created, deleted int
	actions          []string
	uploads          []activity.UploadStatus
}

func (c *countingRecorder) ActivityCreated()          { c.created++ }
func (c *countingRecorder) ActivityDeleted()          { c.deleted++ }
func (c *countingRecorder) LogAppended(action string) { c.actions = append(c.actions, action) }
func (c *countingRecorder) Upload(status activity.UploadStatus) {
	c.uploads = append(c.uploads, status)
}

type testEnv struct {
	records  *memRecords
	logs     *memLogs
	files    *memFiles
	recorder *countingRecorder
	svc      *activity.Service
	clock    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		records:  &memRecords{},
		logs:     &memLogs{},
		files:    &memFiles{},
		recorder: &countingRecorder{},
		clock:    time.Date(2025, 7, 28, 9, 30, 15, 0, time.Local),
	}
	ids := 0
	env.svc = activity.NewService(env.records, env.logs, env.files, nil,
		activity.WithRecorder(env.recorder),
		activity.WithClock(func() time.Time { return env.clock }),
		activity.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)
	return env
}

func (env *testEnv) create(t *testing.T, project string) activity.Activity {
	t.Helper()
	res, err := env.svc.Create(context.Background(), activity.CreateRequest{Project: project})
	require.NoError(t, err)
	return res.Activity
}

func file(name, content string) *upload.File {
	return &upload.File{Name: name, Content: strings.NewReader(content)}
}

func TestCreate_BridgeScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.svc.Create(ctx, activity.CreateRequest{Project: "Bridge", Priority: "High"})
	require.NoError(t, err)
	require.Equal(t, activity.UploadNone, res.Upload)
	require.Equal(t, 1, res.Activity.Serial)
	require.Equal(t, "Bridge", res.Activity.Project)
	require.Equal(t, "High", res.Activity.Priority)
	require.Equal(t, "", res.Activity.Attachment)

	logs, err := env.svc.ViewLogs(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []activity.LogEntry{{
		Timestamp: "2025-07-28 09:30:15",
		Action:    activity.ActionCreated,
		Details:   "Initial creation of activity",
		File:      "",
	}}, logs)
	require.Equal(t, 1, env.recorder.created)
}

func TestCreate_SerialsAreDense(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		env.create(t, fmt.Sprintf("p%d", i))
	}

	activities, err := env.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 5)
	for i, act := range activities {
		require.Equal(t, i+1, act.Serial)
		require.Equal(t, fmt.Sprintf("p%d", i), act.Project)
	}
}

func TestCreate_StoresAcceptedAttachment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "first")

	res, err := env.svc.Create(ctx, activity.CreateRequest{
		Project:    "Bridge",
		Attachment: file("site plan.PDF", "%PDF"),
	})
	require.NoError(t, err)
	require.Equal(t, activity.UploadAccepted, res.Upload)
	require.Equal(t, "2_site_plan.PDF", res.Activity.Attachment)
	require.Equal(t, []byte("%PDF"), env.files.files["2_site_plan.PDF"])

	logs, err := env.svc.ViewLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "2_site_plan.PDF", logs[0].File)
}

func TestCreate_ReusedSerialKeepsEarlierAttachment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, p := range []struct{ project, content string }{{"A", "a"}, {"B", "b"}} {
		_, err := env.svc.Create(ctx, activity.CreateRequest{Project: p.project, Attachment: file("x.pdf", p.content)})
		require.NoError(t, err)
	}
	_, err := env.svc.Delete(ctx, 1)
	require.NoError(t, err)

	res, err := env.svc.Create(ctx, activity.CreateRequest{Project: "C", Attachment: file("x.pdf", "c")})
	require.NoError(t, err)
	require.Equal(t, 2, res.Activity.Serial)
	require.Equal(t, "2_x_1.pdf", res.Activity.Attachment)

	activities, err := env.svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "2_x.pdf", activities[0].Attachment)
	require.Equal(t, []byte("b"), env.files.files["2_x.pdf"])
	require.Equal(t, []byte("c"), env.files.files["2_x_1.pdf"])

	logs, err := env.svc.ViewLogs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "2_x_1.pdf", logs[0].File)
}

func TestCreate_RejectsDisallowedExtension(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.svc.Create(ctx, activity.CreateRequest{
		Project:    "Bridge",
		Attachment: file("report.exe", "MZ"),
	})
	require.NoError(t, err)
	require.Equal(t, activity.UploadRejected, res.Upload)
	require.Equal(t, "", res.Activity.Attachment)
	require.Empty(t, env.files.files)

	logs, err := env.svc.ViewLogs(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "", logs[0].File)
	require.Equal(t, []activity.UploadStatus{activity.UploadRejected}, env.recorder.uploads)
}

func TestCreate_OversizedUploadIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.files.err = upload.ErrTooLarge

	res, err := env.svc.Create(ctx, activity.CreateRequest{Attachment: file("big.png", "x")})
	require.NoError(t, err)
	require.Equal(t, activity.UploadRejected, res.Upload)
	require.Equal(t, "", res.Activity.Attachment)
}

func TestCreate_UploadFailurePropagates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.files.err = errors.New("disk full")

	_, err := env.svc.Create(ctx, activity.CreateRequest{Attachment: file("a.png", "x")})
	require.ErrorContains(t, err, "disk full")
	require.Empty(t, env.records.activities)
}

func TestUpdate_AppendsEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "Bridge")
	before, err := env.svc.ViewLogs(ctx, 1)
	require.NoError(t, err)

	env.clock = env.clock.Add(time.Hour)
	res, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 1, Details: "Paint done"})
	require.NoError(t, err)
	require.Equal(t, activity.OutcomeOK, res.Outcome)
	require.Equal(t, activity.UploadNone, res.Upload)

	logs, err := env.svc.ViewLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, before[0], logs[0])
	require.Equal(t, activity.LogEntry{
		Timestamp: "2025-07-28 10:30:15",
		Action:    activity.ActionUpdated,
		Details:   "Paint done",
	}, logs[1])
	require.Equal(t, &logs[1], res.Entry)
}

func TestUpdate_EachCallAppendsOne(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "Bridge")

	for i := 1; i <= 3; i++ {
		_, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 1, Details: fmt.Sprintf("step %d", i)})
		require.NoError(t, err)

		logs, err := env.svc.ViewLogs(ctx, 1)
		require.NoError(t, err)
		require.Len(t, logs, i+1)
		require.Equal(t, activity.ActionCreated, logs[0].Action)
		for j := 1; j <= i; j++ {
			require.Equal(t, fmt.Sprintf("step %d", j), logs[j].Details)
		}
	}
}

func TestUpdate_DoesNotModifyRecord(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	created := env.create(t, "Bridge")

	_, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 1, Details: "x", File: file("a.png", "png")})
	require.NoError(t, err)

	got, err := env.svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, created, *got)
}

func TestUpdate_DefaultDetails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "Bridge")

	res, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 1, Details: "   "})
	require.NoError(t, err)
	require.Equal(t, "No details provided", res.Entry.Details)
}

func TestUpdate_StoresLogAttachment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "Bridge")

	res, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 1, Details: "photo", File: file("C:\\pics\\wall.jpg", "jpg")})
	require.NoError(t, err)
	require.Equal(t, activity.UploadAccepted, res.Upload)
	require.Equal(t, "log_1_20250728093015_wall.jpg", res.Entry.File)
	require.Contains(t, env.files.files, "log_1_20250728093015_wall.jpg")
}

func TestUpdate_UnknownSerialIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "Bridge")
	recordsBefore := append([]activity.Activity(nil), env.records.activities...)

	res, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 99, Details: "ghost", File: file("a.pdf", "x")})
	require.NoError(t, err)
	require.Equal(t, activity.OutcomeNotFound, res.Outcome)
	require.Nil(t, res.Entry)
	require.Equal(t, recordsBefore, env.records.activities)
	require.Empty(t, env.files.files)

	logs, err := env.svc.ViewLogs(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestDelete_RenumbersSurvivors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "A")
	env.create(t, "B")

	outcome, err := env.svc.Delete(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, activity.OutcomeOK, outcome)

	activities, err := env.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, 1, activities[0].Serial)
	require.Equal(t, "B", activities[0].Project)
	require.Equal(t, 1, env.recorder.deleted)
}

func TestDelete_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	for _, p := range []string{"A", "B", "C", "D", "E"} {
		env.create(t, p)
	}

	_, err := env.svc.Delete(ctx, 3)
	require.NoError(t, err)
	_, err = env.svc.Delete(ctx, 1)
	require.NoError(t, err)

	activities, err := env.svc.List(ctx)
	require.NoError(t, err)
	var projects []string
	for i, act := range activities {
		require.Equal(t, i+1, act.Serial)
		projects = append(projects, act.Project)
	}
	require.Equal(t, []string{"B", "D", "E"}, projects)
}

func TestDelete_LogsFollowStableID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "A")
	second := env.create(t, "B")
	_, err := env.svc.Update(ctx, activity.UpdateRequest{Serial: 2, Details: "B progress"})
	require.NoError(t, err)

	_, err = env.svc.Delete(ctx, 1)
	require.NoError(t, err)

	logs, err := env.svc.ViewLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "B progress", logs[1].Details)

	// The deleted activity's log collection is kept.
	require.Contains(t, env.logs.logs, "id-1")
	require.Contains(t, env.logs.logs, second.ID)
}

func TestDelete_UnknownSerial(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "A")

	outcome, err := env.svc.Delete(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, activity.OutcomeNotFound, outcome)
	require.Len(t, env.records.activities, 1)
	require.Equal(t, 0, env.recorder.deleted)
}

func TestViewLogs_LegacySerialKey(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.records.activities = []activity.Activity{{Serial: 1, Project: "legacy"}}
	env.logs.logs = map[string][]activity.LogEntry{
		"1": {{Timestamp: "2025-07-01 08:00:00", Action: activity.ActionCreated}},
	}

	logs, err := env.svc.ViewLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	_, err = env.svc.Update(ctx, activity.UpdateRequest{Serial: 1, Details: "later"})
	require.NoError(t, err)
	require.Len(t, env.logs.logs["1"], 2)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "A")

	act, err := env.svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "A", act.Project)

	_, err = env.svc.Get(ctx, 2)
	require.ErrorIs(t, err, activity.ErrActivityNotFound)

	_, err = env.svc.Get(ctx, 0)
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	env := newTestEnv(t)
	activities, err := env.svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, activities)
	require.Empty(t, activities)
}

func TestRenumber(t *testing.T) {
	activities := []activity.Activity{{Serial: 4}, {Serial: 9}, {Serial: 2}}
	activity.Renumber(activities)
	require.Equal(t, []activity.Activity{{Serial: 1}, {Serial: 2}, {Serial: 3}}, activities)
}

func TestCreate_RecordSaveErrorPropagates(t *testing.T) {
	ctx := context.Background()
	records := &mocks.ActivityRepository{}
	logs := &mocks.LogRepository{}
	files := &mocks.FileStore{}

	records.On("Load", ctx).Return([]activity.Activity{}, nil)
	records.On("Save", ctx, mock.Anything).Return(errors.New("read-only file system"))

	svc := activity.NewService(records, logs, files, nil)
	_, err := svc.Create(ctx, activity.CreateRequest{Project: "Bridge"})
	require.ErrorContains(t, err, "saving activities")
	logs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_LogSaveErrorKeepsRecord(t *testing.T) {
	ctx := context.Background()
	records := &mocks.ActivityRepository{}
	logs := &mocks.LogRepository{}
	files := &mocks.FileStore{}

	records.On("Load", ctx).Return([]activity.Activity{}, nil)
	records.On("Save", ctx, mock.MatchedBy(func(list []activity.Activity) bool {
		return len(list) == 1 && list[0].Project == "Bridge"
	})).Return(nil)
	logs.On("Save", ctx, mock.Anything, mock.Anything).Return(errors.New("logs dir missing"))

	svc := activity.NewService(records, logs, files, nil)
	_, err := svc.Create(ctx, activity.CreateRequest{Project: "Bridge"})
	require.ErrorContains(t, err, "saving activity log")
	records.AssertExpectations(t)
}

func TestUpdate_LoadErrorPropagates(t *testing.T) {
	ctx := context.Background()
	records := &mocks.ActivityRepository{}
	records.On("Load", ctx).Return(nil, errors.New("permission denied"))

	svc := activity.NewService(records, &mocks.LogRepository{}, &mocks.FileStore{}, nil)
	_, err := svc.Update(ctx, activity.UpdateRequest{Serial: 1})
	require.ErrorContains(t, err, "permission denied")
}

func TestCreate_UploadUsesFileStore(t *testing.T) {
	ctx := context.Background()
	records := &mocks.ActivityRepository{}
	logs := &mocks.LogRepository{}
	files := &mocks.FileStore{}
	content := bytes.NewReader([]byte("png"))

	records.On("Load", ctx).Return([]activity.Activity{}, nil)
	records.On("Save", ctx, mock.Anything).Return(nil)
	logs.On("Save", ctx, "fixed", []activity.LogEntry{{
		Timestamp: "2025-07-28 09:30:15",
		Action:    activity.ActionCreated,
		Details:   "Initial creation of activity",
		File:      "1_shot.png",
	}}).Return(nil)
	files.On("Save", ctx, "1_shot.png", content).Return("1_shot.png", nil)

	svc := activity.NewService(records, logs, files, nil,
		activity.WithClock(func() time.Time { return time.Date(2025, 7, 28, 9, 30, 15, 0, time.Local) }),
		activity.WithIDGenerator(func() string { return "fixed" }),
	)
	res, err := svc.Create(ctx, activity.CreateRequest{Attachment: &upload.File{Name: "shot.png", Content: content}})
	require.NoError(t, err)
	require.Equal(t, "1_shot.png", res.Activity.Attachment)
	files.AssertExpectations(t)
	logs.AssertExpectations(t)
}
