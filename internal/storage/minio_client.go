package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"monoblog/internal/apperrors"
	"monoblog/internal/config"
)

// MinIOStorage - альтернативный бэкенд для аватаров (STORAGE_BACKEND=minio).
// Имена объектов уникальны за счёт uuid, поэтому проверка существования
// здесь не нужна.
type MinIOStorage struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOStorage(cfg *config.Config) (*MinIOStorage, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MinIO: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
	}

	return &MinIOStorage{client: client, cfg: cfg}, nil
}

func (m *MinIOStorage) SaveProfilePicture(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("profiles/%d/%s%s", userID, uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return "", fmt.Errorf("%w: ошибка загрузки в MinIO: %v", apperrors.ErrWriteFailed, err)
	}

	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}

	pictureURL := fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.MinIO.Endpoint, m.cfg.MinIO.BucketName, objectName)

	return pictureURL, nil
}
