package mocks

import (
	"context"
	"io"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Load(ctx context.Context) ([]activity.Activity, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Save(ctx context.Context, activities []activity.Activity) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

// LogRepository is a mock for repository.LogRepository.
type LogRepository struct {
	mock.Mock
}

func (m *LogRepository) Load(ctx context.Context, key string) ([]activity.LogEntry, error) {
	args := m.Called(ctx, key)
	if list, ok := args.Get(0).([]activity.LogEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LogRepository) Save(ctx context.Context, key string, entries []activity.LogEntry) error {
	args := m.Called(ctx, key, entries)
	return args.Error(0)
}

// FileStore is a mock for activity.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	args := m.Called(ctx, name, r)
	return args.String(0), args.Error(1)
}
