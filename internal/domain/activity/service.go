package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/tracker/internal/upload"
)

// Service handles activity records and their logs.
type Service struct {
	records  RecordStore
	logs     LogStore
	files    FileStore
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	// mu serializes read-modify-write cycles on the stores.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports service events to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the time source used for log timestamps and upload names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how stable activity IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService creates a new activity service.
func NewService(records RecordStore, logs LogStore, files FileStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		records:  records,
		logs:     logs,
		files:    files,
		recorder: nopRecorder{},
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a new activity with the next serial and starts its log.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activities, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	now := s.now()
	act := Activity{
		Serial:       len(activities) + 1,
		ID:           s.newID(),
		Priority:     req.Priority,
		Project:      req.Project,
		Line:         req.Line,
		Description:  req.Description,
		StartDate:    req.StartDate,
		CompleteDate: req.CompleteDate,
		Status:       req.Status,
		Remarks:      req.Remarks,
	}

	attachment, status, err := s.storeUpload(ctx, req.Attachment, func(name string) string {
		return upload.ActivityFilename(act.Serial, name)
	})
	if err != nil {
		return nil, err
	}
	act.Attachment = attachment

	activities = append(activities, act)
	if err := s.records.Save(ctx, activities); err != nil {
		return nil, fmt.Errorf("saving activities: %w", err)
	}

	entries := []LogEntry{{
		Timestamp: now.Format(TimestampLayout),
		Action:    ActionCreated,
		Details:   createdDetails,
		File:      attachment,
	}}
	if err := s.logs.Save(ctx, act.LogKey(), entries); err != nil {
		return nil, fmt.Errorf("saving activity log: %w", err)
	}

	s.recorder.ActivityCreated()
	s.recorder.LogAppended(ActionCreated)
	s.logger.Info("activity created", "sno", act.Serial, "id", act.ID, "upload", status)

	return &CreateResult{Activity: act, Upload: status}, nil
}

// List returns every activity in storage order.
func (s *Service) List(ctx context.Context) ([]Activity, error) {
	activities, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	if activities == nil {
		activities = []Activity{}
	}
	return activities, nil
}

// Get returns the activity currently holding serial.
func (s *Service) Get(ctx context.Context, serial int) (*Activity, error) {
	if serial < 1 {
		return nil, ErrInvalidInput
	}
	activities, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	idx := indexOf(activities, serial)
	if idx < 0 {
		return nil, ErrActivityNotFound
	}
	act := activities[idx]
	return &act, nil
}

// Update appends an "Activity Updated" entry to the activity's log. The
// activity record itself is not modified. An unknown serial is a no-op
// reported as OutcomeNotFound.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activities, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	idx := indexOf(activities, req.Serial)
	if idx < 0 {
		s.logger.Warn("update for unknown activity ignored", "sno", req.Serial)
		return &UpdateResult{Outcome: OutcomeNotFound, Upload: UploadNone}, nil
	}
	act := activities[idx]

	entries, err := s.logs.Load(ctx, act.LogKey())
	if err != nil {
		return nil, fmt.Errorf("loading activity log: %w", err)
	}

	now := s.now()
	file, status, err := s.storeUpload(ctx, req.File, func(name string) string {
		return upload.LogFilename(act.Serial, now, name)
	})
	if err != nil {
		return nil, err
	}

	details := req.Details
	// Whitespace-only details count as missing.
	if strings.TrimSpace(details) == "" {
		details = defaultUpdateDetails
	}
	entry := LogEntry{
		Timestamp: now.Format(TimestampLayout),
		Action:    ActionUpdated,
		Details:   details,
		File:      file,
	}
	entries = append(entries, entry)
	if err := s.logs.Save(ctx, act.LogKey(), entries); err != nil {
		return nil, fmt.Errorf("saving activity log: %w", err)
	}

	s.recorder.LogAppended(ActionUpdated)
	s.logger.Info("activity updated", "sno", act.Serial, "id", act.ID, "entries", len(entries), "upload", status)

	return &UpdateResult{Outcome: OutcomeOK, Upload: status, Entry: &entry}, nil
}

// Delete removes the activity at serial and renumbers the survivors. Log
// collections are left in place.
func (s *Service) Delete(ctx context.Context, serial int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activities, err := s.records.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("loading activities: %w", err)
	}

	kept := make([]Activity, 0, len(activities))
	removed := 0
	for _, act := range activities {
		if act.Serial == serial {
			removed++
			continue
		}
		kept = append(kept, act)
	}
	Renumber(kept)

	if err := s.records.Save(ctx, kept); err != nil {
		return "", fmt.Errorf("saving activities: %w", err)
	}

	if removed == 0 {
		s.logger.Warn("delete for unknown activity ignored", "sno", serial)
		return OutcomeNotFound, nil
	}
	for range removed {
		s.recorder.ActivityDeleted()
	}
	s.logger.Info("activity deleted", "sno", serial, "remaining", len(kept))
	return OutcomeOK, nil
}

// ViewLogs returns the log collection of the activity at serial. When no
// activity holds serial, the serial-keyed collection is returned instead,
// which is empty unless legacy logs exist under that number.
func (s *Service) ViewLogs(ctx context.Context, serial int) ([]LogEntry, error) {
	activities, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	key := SerialLogKey(serial)
	if idx := indexOf(activities, serial); idx >= 0 {
		key = activities[idx].LogKey()
	}

	entries, err := s.logs.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading activity log: %w", err)
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	return entries, nil
}

// storeUpload validates and stores file. Rejections are not errors: the
// caller gets an empty name and UploadRejected.
func (s *Service) storeUpload(ctx context.Context, file *upload.File, name func(string) string) (string, UploadStatus, error) {
	if !file.Present() {
		return "", UploadNone, nil
	}
	if !upload.Allowed(file.Name) {
		return s.rejectUpload(file.Name, "extension not allowed")
	}
	stored := name(file.Name)
	if stored == "" {
		return s.rejectUpload(file.Name, "unusable file name")
	}

	stored, err := s.files.Save(ctx, stored, file.Content)
	if err != nil {
		if errors.Is(err, upload.ErrTooLarge) || errors.Is(err, upload.ErrInvalidName) {
			return s.rejectUpload(file.Name, err.Error())
		}
		return "", "", fmt.Errorf("storing upload: %w", err)
	}

	s.recorder.Upload(UploadAccepted)
	return stored, UploadAccepted, nil
}

func (s *Service) rejectUpload(filename, reason string) (string, UploadStatus, error) {
	s.recorder.Upload(UploadRejected)
	s.logger.Info("upload rejected", "filename", filename, "reason", reason)
	return "", UploadRejected, nil
}

func indexOf(activities []Activity, serial int) int {
	for i := range activities {
		if activities[i].Serial == serial {
			return i
		}
	}
	return -1
}
