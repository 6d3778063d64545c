package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tareas/internal/model"
)

// JSON-backed storage. Single file, human-readable, rewritten whole on
// every save. No locking: one process owns the file.

// DefaultFile is the backing file used when nothing else is configured.
const DefaultFile = "tareas.json"

var (
	// ErrNotFound is returned by Load when the backing file does not exist.
	ErrNotFound = errors.New("backing file not found")
	// ErrMalformed is returned by Load when the file exists but does not
	// hold an array of task records.
	ErrMalformed = errors.New("malformed backing file")
)

//go:embed schema.json
var schemaSource string

// schemaID is absolute so validation messages do not depend on the working
// directory.
const schemaID = "https://tareas.local/schema.json"

var fileSchema = jsonschema.MustCompileString(schemaID, schemaSource)

// Store reads and writes the task list at a fixed path.
type Store struct {
	path string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the persisted tasks in file order.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(b)
}

// Decode parses the contents of a backing file.
func Decode(b []byte) ([]model.Task, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %w", ErrMalformed, err)
	}
	if err := fileSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var records []model.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %w", ErrMalformed, err)
	}
	tasks := make([]model.Task, 0, len(records))
	for i, r := range records {
		t, err := model.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: [%d]: %w", ErrMalformed, i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Encode renders tasks in the backing file format.
func Encode(tasks []model.Task) ([]byte, error) {
	records := make([]model.Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}
	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// Save replaces the file with the given tasks. The new content is written
// next to the target and renamed over it, so readers never see a half
// written file.
func (s *Store) Save(tasks []model.Task) error {
	b, err := Encode(tasks)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
