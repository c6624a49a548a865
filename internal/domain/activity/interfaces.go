package activity

import (
	"context"
	"io"
)

// RecordStore loads and saves the whole activity collection.
type RecordStore interface {
	Load(ctx context.Context) ([]Activity, error)
	Save(ctx context.Context, activities []Activity) error
}

// LogStore loads and saves one activity's log collection. Load returns an
// empty slice when no collection exists for key.
type LogStore interface {
	Load(ctx context.Context, key string) ([]LogEntry, error)
	Save(ctx context.Context, key string, entries []LogEntry) error
}

// FileStore persists accepted uploads. Save returns the name the file was
// stored under, which differs from name when name is already taken.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// Recorder observes service events, e.g. for metrics.
type Recorder interface {
	ActivityCreated()
	ActivityDeleted()
	LogAppended(action string)
	Upload(status UploadStatus)
}

type nopRecorder struct{}

func (nopRecorder) ActivityCreated()    {}
func (nopRecorder) ActivityDeleted()    {}
func (nopRecorder) LogAppended(string)  {}
func (nopRecorder) Upload(UploadStatus) {}
