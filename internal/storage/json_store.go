package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// JSONStore persists a single document set as one pretty-printed JSON file.
// It backs the memory data layer; callers serialize access, so the store
// itself carries no locking.
type JSONStore struct {
	filePath string
}

func NewJSONStore(dataDir, filename string) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &JSONStore{filePath: filepath.Join(dataDir, filename)}, nil
}

// Load decodes the file into data. A missing file is not an error: the store
// simply starts empty.
func (s *JSONStore) Load(data interface{}) error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(data)
}

// Save writes data through a temp file and an atomic rename, so a crash
// mid-write never corrupts the existing file.
func (s *JSONStore) Save(data interface{}) error {
	tempFile := s.filePath + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		file.Close()
		os.Remove(tempFile)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}
	return os.Rename(tempFile, s.filePath)
}
