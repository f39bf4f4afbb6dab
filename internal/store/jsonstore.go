package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// JSONStore reads and writes derived artifacts (scaled tables, cached
// reports) as JSON files under a root directory.
type JSONStore struct {
	Root string // e.g. "data/derived"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// WriteJSON marshals v with indentation and writes it at rel, creating
// parent directories as needed.
func (s *JSONStore) WriteJSON(rel string, v any) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadJSON unmarshals the file at rel into v. Returns os.ErrNotExist when
// the artifact has not been written yet.
func (s *JSONStore) ReadJSON(rel string, v any) error {
	b, err := os.ReadFile(s.Path(rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.ErrNotExist
		}
		return err
	}
	return json.Unmarshal(b, v)
}
