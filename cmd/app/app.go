package app

import (
	"log"

	"monoblog/internal/config"
	"monoblog/internal/database"
	"monoblog/internal/notifier"
	"monoblog/internal/repository"
	"monoblog/internal/service"
	"monoblog/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service, storage.Storage, *notifier.Hub) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// storage backend for profile pictures
	store := newStorage(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg)

	hub := notifier.NewHub()

	return db, services, store, hub
}

func newStorage(cfg *config.Config) storage.Storage {
	if cfg.StorageBackend == "minio" {
		store, err := storage.NewMinIOStorage(cfg)
		if err != nil {
			log.Fatalf("Не удалось инициализировать MinIO: %v", err)
		}
		return store
	}

	store, err := storage.NewLocalStorage(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать локальное хранилище: %v", err)
	}
	return store
}
