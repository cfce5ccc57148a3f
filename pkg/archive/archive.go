// Package archive stores processed statements and their extraction results
// on the local filesystem, keyed by job ID. Archived inputs are what make
// extraction-quality regressions reproducible after the fact.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry describes one archived statement.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	StoredName string    `json:"storedName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Archive persists uploads and results.
type Archive interface {
	SaveUpload(filename string, r io.Reader) (*Entry, error)
	SaveResult(id uuid.UUID, result any) error
	Open(id uuid.UUID) (io.ReadCloser, *Entry, error)
	List() ([]*Entry, error)
}

// Local implements Archive on a base directory. Uploads live under
// uploads/, result JSON under results/, entry metadata under .meta/.
type Local struct {
	basePath string
}

// NewLocal creates the directory layout if needed.
func NewLocal(basePath string) (*Local, error) {
	for _, dir := range []string{"uploads", "results", ".meta"} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}
	return &Local{basePath: basePath}, nil
}

// SaveUpload stores the raw statement under a uuid-prefixed name so
// repeated uploads of the same filename never collide.
func (a *Local) SaveUpload(filename string, r io.Reader) (*Entry, error) {
	id := uuid.New()
	storedName := fmt.Sprintf("%s_%s", id.String()[:8], sanitizeFilename(filename))
	path := filepath.Join(a.basePath, "uploads", storedName)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write archive file: %w", err)
	}

	entry := &Entry{
		ID:         id,
		Filename:   filename,
		Size:       size,
		StoredName: storedName,
		CreatedAt:  time.Now(),
	}
	if err := a.saveMeta(entry); err != nil {
		os.Remove(path)
		return nil, err
	}
	return entry, nil
}

// SaveResult writes the extraction result JSON next to the upload.
func (a *Local) SaveResult(id uuid.UUID, result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	path := filepath.Join(a.basePath, "results", id.String()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// Open returns the archived upload for a job ID.
func (a *Local) Open(id uuid.UUID) (io.ReadCloser, *Entry, error) {
	entry, err := a.readMeta(id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(a.basePath, "uploads", entry.StoredName))
	if err != nil {
		return nil, nil, fmt.Errorf("open archived upload: %w", err)
	}
	return f, entry, nil
}

// List returns every archived entry, newest first.
func (a *Local) List() ([]*Entry, error) {
	metaDir := filepath.Join(a.basePath, ".meta")
	files, err := os.ReadDir(metaDir)
	if err != nil {
		return nil, fmt.Errorf("read archive metadata: %w", err)
	}

	entries := make([]*Entry, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(file.Name(), ".json"))
		if err != nil {
			continue
		}
		entry, err := a.readMeta(id)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (a *Local) saveMeta(entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode archive metadata: %w", err)
	}
	path := filepath.Join(a.basePath, ".meta", entry.ID.String()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write archive metadata: %w", err)
	}
	return nil
}

func (a *Local) readMeta(id uuid.UUID) (*Entry, error) {
	data, err := os.ReadFile(filepath.Join(a.basePath, ".meta", id.String()+".json"))
	if err != nil {
		return nil, fmt.Errorf("read archive metadata: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode archive metadata: %w", err)
	}
	return &entry, nil
}

// sanitizeFilename removes unsafe characters from filenames
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
