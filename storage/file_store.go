// storage/file_store.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
)

// FileStore persists the collection as pretty-printed JSON in a single file
// (db.json by default), the format the Express variant wrote.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = "db.json"
	}
	return &FileStore{Path: path}
}

func (s *FileStore) LoadAll(ctx context.Context) ([]models.Battle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		// First run: the file is created by the first SaveAll.
		return []models.Battle{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, s.Path, err)
	}
	if len(data) == 0 {
		return []models.Battle{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStorage, s.Path, err)
	}
	if doc.Battles == nil {
		return []models.Battle{}, nil
	}
	return doc.Battles, nil
}

func (s *FileStore) SaveAll(ctx context.Context, battles []models.Battle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(document{Battles: battles}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorage, err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrStorage, dir, err)
	}

	// Write to a temp file and rename so readers never observe a torn file.
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write %s: %v", ErrStorage, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close %s: %v", ErrStorage, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename to %s: %v", ErrStorage, s.Path, err)
	}
	return nil
}
