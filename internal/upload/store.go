package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidName is returned when a stored name would escape the upload directory.
	ErrInvalidName = errors.New("invalid upload name")
	// ErrTooLarge is returned when an upload exceeds the configured size limit.
	ErrTooLarge = errors.New("upload exceeds size limit")
)

const maxNameAttempts = 1000

// DiskStore keeps uploaded files in a single flat directory.
type DiskStore struct {
	dir      string
	maxBytes int64
}

// NewDiskStore creates a store rooted at dir. A maxBytes of zero disables the size limit.
func NewDiskStore(dir string, maxBytes int64) *DiskStore {
	return &DiskStore{dir: dir, maxBytes: maxBytes}
}

// Init creates the upload directory if needed.
func (s *DiskStore) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	return nil
}

// Dir returns the upload directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// FS exposes stored files for serving.
func (s *DiskStore) FS() fs.FS {
	return os.DirFS(s.dir)
}

// Save writes r to the upload directory under name and returns the name
// it was stored as. An existing file is never replaced: when name is taken,
// the first free "<stem>_<n><ext>" is used instead. The file only becomes
// visible once it is fully written.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !validName(name) {
		return "", ErrInvalidName
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp upload: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		return "", ErrTooLarge
	}

	stored, err := s.publish(tmpName, name)
	if err != nil {
		return "", fmt.Errorf("store upload %s: %w", name, err)
	}
	return stored, nil
}

// publish hard-links tmpName into the directory under the first free
// candidate of name. Link fails instead of overwriting an existing target.
func (s *DiskStore) publish(tmpName, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxNameAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		err := os.Link(tmpName, filepath.Join(s.dir, candidate))
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free name after %d attempts", maxNameAttempts)
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
