// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	tempSuffix   = ".themerc.tmp"
	backupSuffix = ".bak"
)

// 📊 Outcome is the result of processing one qualifying file
type Outcome int

const (
	OutcomeUnknown    Outcome = iota
	OutcomeRewritten          // File content changed (or would change in a dry run)
	OutcomeUnchanged          // File qualified but every pass was a no-op
	OutcomeDiagnostic         // Rewritten or not, but a pass could not apply
	OutcomeFailed             // File could not be read or written
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeRewritten:
		return "rewritten"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeDiagnostic:
		return "diagnostic"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Entry is the outcome record for a single file
type Entry struct {
	Path       string   // Path as yielded by the selector
	Outcome    Outcome  // What happened
	Changes    []string // Passes that changed the content
	Written    bool     // Whether the file was overwritten
	Size       int      // Size of the resulting content
	Checksum   string   // Content hash of the resulting content
	Patch      string   // Textual patch, filled in dry runs
	Diagnostic error    // Pattern or filesystem error, if any
}

// 📈 Summary counts entries by outcome
type Summary struct {
	Rewritten  int
	Unchanged  int
	Diagnostic int
	Failed     int
}

// Total returns the number of tracked files
func (s Summary) Total() int {
	return s.Rewritten + s.Unchanged + s.Diagnostic + s.Failed
}

// 💾 FileManager handles the file system collaborators of a migration
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	BackupFile(ctx context.Context, path string) error
	RestoreFile(ctx context.Context, path string) error
}

// 📈 Reporter collects one Entry per qualifying file
type Reporter interface {
	Track(ctx context.Context, entry Entry)
	Get(ctx context.Context, path string) (Entry, error)
	Entries(ctx context.Context) []Entry
	Summary(ctx context.Context) Summary
}

var (
	_ FileManager = (*Manager)(nil)
	_ Reporter    = (*Manager)(nil)
)

// 🔧 Manager implements both FileManager and Reporter
type Manager struct {
	formatter FileFormatter

	mu      sync.RWMutex
	entries map[string]Entry
}

// 🏭 New creates a new status manager
func New() *Manager {
	return &Manager{
		formatter: NewDefaultFileFormatter(),
		entries:   make(map[string]Entry),
	}
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewFileSystemError("read", path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, NewFileSystemError("read", path, err)
	}
	return content, nil
}

// WriteFileAtomic writes content next to path and renames it into place,
// keeping the mode of the file it replaces.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := path + tempSuffix
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return NewFileSystemError("write", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return NewFileSystemError("write", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("size", len(content)).Msg("wrote file")
	return nil
}

func (m *Manager) BackupFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return NewFileSystemError("backup", path, err)
	}

	if err := copyFile(path, path+backupSuffix); err != nil {
		return NewFileSystemError("backup", path, err)
	}
	return nil
}

func (m *Manager) RestoreFile(ctx context.Context, path string) error {
	backupPath := path + backupSuffix

	if _, err := os.Stat(backupPath); err != nil {
		return NewFileSystemError("restore", path, err)
	}

	if err := copyFile(backupPath, path); err != nil {
		return NewFileSystemError("restore", path, err)
	}

	if err := os.Remove(backupPath); err != nil {
		return NewFileSystemError("restore", path, err)
	}
	return nil
}

// Reporter interface implementation

func (m *Manager) Track(ctx context.Context, entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entry.Path] = entry

	zerolog.Ctx(ctx).Trace().
		Str("path", entry.Path).
		Str("outcome", entry.Outcome.String()).
		Strs("changes", entry.Changes).
		Bool("written", entry.Written).
		AnErr("diagnostic", entry.Diagnostic).
		Msg(m.formatter.FormatEntry(entry))
}

func (m *Manager) Get(ctx context.Context, path string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[path]
	if !ok {
		return Entry{}, errors.Errorf("file not tracked: %s", path)
	}
	return entry, nil
}

// Entries returns every tracked entry ordered by path
func (m *Manager) Entries(ctx context.Context) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func (m *Manager) Summary(ctx context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Summary
	for _, entry := range m.entries {
		switch entry.Outcome {
		case OutcomeRewritten:
			s.Rewritten++
		case OutcomeUnchanged:
			s.Unchanged++
		case OutcomeDiagnostic:
			s.Diagnostic++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// Helper functions

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}
