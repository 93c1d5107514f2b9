package handlers

import (
	"github.com/go-playground/validator/v10"

	"monoblog/internal/config"
	"monoblog/internal/notifier"
	"monoblog/internal/service"
	"monoblog/internal/storage"
)

type Handlers struct {
	UserService  service.UserService
	AuthService  service.AuthService
	PostService  service.PostService
	StatsService service.StatsService
	Storage      storage.Storage
	Notifier     notifier.Notifier
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(services *service.Service, store storage.Storage, hub notifier.Notifier, config *config.Config) *Handlers {
	return &Handlers{
		UserService:  services.User,
		AuthService:  services.Auth,
		PostService:  services.Post,
		StatsService: services.Stats,
		Storage:      store,
		Notifier:     hub,
		Cfg:          config,
		Validate:     validator.New(),
	}
}
