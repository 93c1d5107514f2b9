package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"monoblog/internal/apperrors"
	"monoblog/internal/config"
)

type Storage interface {
	// SaveProfilePicture сохраняет файл и возвращает путь/URL, по которому
	// он будет записан в профиль пользователя
	SaveProfilePicture(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (string, error)
}

// LocalStorage пишет аватары на диск в cfg.UploadDir.
// Имя файла {userId}-{filename}; повторная загрузка с тем же именем
// отклоняется, существующий файл не перезаписывается.
type LocalStorage struct {
	cfg *config.Config
}

func NewLocalStorage(cfg *config.Config) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог загрузок: %w", err)
	}

	return &LocalStorage{cfg: cfg}, nil
}

func (s *LocalStorage) SaveProfilePicture(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (string, error) {
	// filepath.Base отсекает попытки выхода из каталога загрузок
	destPath := filepath.Join(s.cfg.UploadDir, fmt.Sprintf("%d-%s", userID, filepath.Base(fileName)))

	// проверка и создание не атомарны; гонка двух одинаковых загрузок
	// известна и оставлена как есть
	if _, err := os.Stat(destPath); err == nil {
		return "", fmt.Errorf("%s: %w", destPath, apperrors.ErrFileExists)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	if err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}

	return destPath, nil
}
