package outputs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Open for names not in the store.
var ErrNotFound = errors.New("output file not found")

const filePrefix = "questions-"

// File describes a generated output file.
type File struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified_at"`
}

// Store keeps generated files in one directory, capped at MaxFiles.
// Saves and pruning are serialized.
type Store struct {
	mu       sync.Mutex
	dir      string
	maxFiles int
	log      *slog.Logger
}

func NewStore(dir string, maxFiles int, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{dir: dir, maxFiles: maxFiles, log: log}, nil
}

// Save writes a new file with the given extension, then prunes old files.
// The file only becomes visible once write succeeds.
func (s *Store) Save(ext string, write func(io.Writer) error) (File, error) {
	f, info, err := s.Create(ext, write)
	if err != nil {
		return File{}, err
	}
	f.Close()
	return info, nil
}

// Create is Save that also returns the new file opened for reading. The
// handle is taken before pruning, so it stays readable even if later
// saves prune the file. The caller closes it.
func (s *Store) Create(ext string, write func(io.Writer) error) (*os.File, File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, File{}, fmt.Errorf("generate file id: %w", err)
	}
	name := filePrefix + id.String() + "." + strings.TrimPrefix(ext, ".")

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return nil, File{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, File{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, File{}, fmt.Errorf("close temp file: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return nil, File{}, fmt.Errorf("rename output file: %w", err)
	}

	out, err := os.Open(path)
	if err != nil {
		return nil, File{}, fmt.Errorf("open output file: %w", err)
	}
	info, err := out.Stat()
	if err != nil {
		out.Close()
		return nil, File{}, fmt.Errorf("stat output file: %w", err)
	}

	if err := s.pruneLocked(); err != nil {
		s.log.Warn("output retention failed", "error", err)
	}

	return out, File{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// List returns stored files, newest first.
func (s *Store) List() ([]File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Open opens a stored file by name.
func (s *Store) Open(name string) (*os.File, File, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, File{}, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, File{}, ErrNotFound
	}
	if err != nil {
		return nil, File{}, fmt.Errorf("open output file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, File{}, fmt.Errorf("stat output file: %w", err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, File{}, ErrNotFound
	}
	return f, File{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Prune deletes the oldest files beyond MaxFiles.
func (s *Store) Prune() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked()
}

func (s *Store) pruneLocked() error {
	if s.maxFiles <= 0 {
		return nil
	}
	files, err := s.listLocked()
	if err != nil {
		return err
	}
	var errs []error
	for _, f := range files[min(len(files), s.maxFiles):] {
		if err := os.Remove(filepath.Join(s.dir, f.Name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		s.log.Debug("removed old output file", "name", f.Name)
	}
	return errors.Join(errs...)
}

func (s *Store) listLocked() ([]File, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	// Ties on mtime fall back to name; uuid v7 names sort by creation time.
	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name > files[j].Name
	})
	return files, nil
}
