package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore сохраняет документы проектов в подкаталоге uploads
// корневого каталога. Имена дополняются уникальным префиксом, поэтому
// параллельные загрузки не конфликтуют.
type FileStore struct {
	root string
}

// NewFileStore создаёт хранилище с указанным корневым каталогом
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// UploadsDir возвращает каталог для сохранённых документов
func (s *FileStore) UploadsDir() string {
	return filepath.Join(s.root, "uploads")
}

// Save записывает загруженный файл под именем "<uuid>_<оригинал>"
// и возвращает сохранённое имя. Каталог uploads создаётся при
// необходимости.
func (s *FileStore) Save(fh *multipart.FileHeader) (string, error) {
	dir := s.UploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	storedName := uuid.NewString() + "_" + filepath.Base(fh.Filename)

	dst, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return storedName, nil
}
