package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStorage keeps uploads on disk just long enough for GDAL to open them by path.
type FileStorage interface {
	Save(path string, data io.Reader) error
	SaveTemp(ext string, data io.Reader) (string, error)
	Delete(path string) error
	Exists(path string) bool
	FullPath(path string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	if basePath == "" {
		basePath = filepath.Join(os.TempDir(), "georaster")
	}
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) Save(path string, data io.Reader) error {
	fullPath := s.FullPath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

// SaveTemp stores data under a fresh unique name and returns that name.
func (s *fileStorage) SaveTemp(ext string, data io.Reader) (string, error) {
	name := uuid.New().String() + ext
	if err := s.Save(name, data); err != nil {
		s.Delete(name)
		return "", err
	}
	return name, nil
}

func (s *fileStorage) Delete(path string) error {
	return os.Remove(s.FullPath(path))
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(s.FullPath(path))
	return !os.IsNotExist(err)
}

func (s *fileStorage) FullPath(path string) string {
	return filepath.Join(s.basePath, path)
}
