package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Reader loads a whole file.
type Reader interface {
	ReadAll(ctx context.Context, path string) ([]byte, error)
}

// Writer stores a whole file, replacing any previous content.
type Writer interface {
	WriteAll(ctx context.Context, path string, data []byte) error
}

// DefaultFilePermissions is the mode of written images.
const DefaultFilePermissions = 0o644

var (
	// ErrNotFound is returned when the file to read does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrShortRead is returned when fewer bytes were read than the file reports.
	ErrShortRead = errors.New("short read")
	// errNotRegular is returned when the path is a directory or a device.
	errNotRegular = errors.New("not a regular file")
)

// FileRepository reads and writes files on the local filesystem.
// Relative paths are resolved against root.
type FileRepository struct {
	// root is the base directory for relative paths; empty means the working directory.
	root string
	// open opens a file for ReadAll.
	open func(name string) (fs.File, error)
}

// NewFileRepository creates a repository resolving relative paths against root.
func NewFileRepository(root string) *FileRepository {
	if root != "" {
		root = filepath.Clean(root)
	}

	return &FileRepository{
		root: root,
		open: func(name string) (fs.File, error) {
			return os.Open(name) //nolint:gosec // Paths come from the FRU description.
		},
	}
}

// Resolve returns the path the repository uses for p.
func (r *FileRepository) Resolve(p string) string {
	if r.root == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(r.root, p)
}

// ReadAll reads the entire file. The byte count must match the size reported
// by stat, otherwise ErrShortRead is returned.
func (r *FileRepository) ReadAll(_ context.Context, p string) ([]byte, error) {
	path := r.Resolve(p)

	f, err := r.open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, errNotRegular)
	}

	data := make([]byte, info.Size())

	n, err := io.ReadFull(f, data)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: read %d of %d bytes: %w", path, n, len(data), ErrShortRead)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

// WriteAll writes data to a temporary file next to p and renames it into place.
func (r *FileRepository) WriteAll(_ context.Context, p string, data []byte) error {
	path := r.Resolve(p)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	tmpName := tmp.Name()

	// Removing after a successful rename fails harmlessly.
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err = tmp.Chmod(DefaultFilePermissions); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	return nil
}
