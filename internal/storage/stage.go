// Package storage writes a group of output files so that either all of them
// land at their destinations or none do.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// staged is one temporary file waiting to be promoted
type staged struct {
	file      *os.File
	tmpPath   string
	finalPath string
}

// Stage collects temporary files next to their destinations and promotes them together
type Stage struct {
	mu    sync.Mutex
	files []*staged
	done  bool
}

// NewStage creates an empty stage
func NewStage() *Stage {
	return &Stage{}
}

// Create opens a temporary file in path's directory. The file is renamed to
// path on Commit and removed on Abort; callers write to it but don't close it.
func (s *Stage) Create(path string) (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil, fmt.Errorf("stage already finished")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	s.files = append(s.files, &staged{file: file, tmpPath: file.Name(), finalPath: path})
	return file, nil
}

// Commit flushes every staged file and renames each onto its destination.
// If any step fails the remaining temp files and any already promoted files are removed.
// A promoted file has already replaced whatever was at its destination, so a failed
// Commit can leave a destination empty that held a previous file before the call.
func (s *Stage) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return fmt.Errorf("stage already finished")
	}
	s.done = true

	for _, f := range s.files {
		if err := f.file.Sync(); err != nil {
			s.cleanup(nil)
			return fmt.Errorf("failed to flush %s: %w", f.finalPath, err)
		}
		if err := f.file.Close(); err != nil {
			s.cleanup(nil)
			return fmt.Errorf("failed to close %s: %w", f.finalPath, err)
		}
		f.file = nil
	}

	var promoted []*staged
	for _, f := range s.files {
		if err := os.Rename(f.tmpPath, f.finalPath); err != nil {
			s.cleanup(promoted)
			return fmt.Errorf("failed to move %s into place: %w", f.finalPath, err)
		}
		promoted = append(promoted, f)
	}
	return nil
}

// Abort discards every staged file. It is a no-op after Commit.
func (s *Stage) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true
	s.cleanup(nil)
}

// cleanup closes and removes temp files and deletes promoted destinations
func (s *Stage) cleanup(promoted []*staged) {
	for _, f := range s.files {
		if f.file != nil {
			f.file.Close()
			f.file = nil
		}
		os.Remove(f.tmpPath)
	}
	for _, f := range promoted {
		os.Remove(f.finalPath)
	}
}
