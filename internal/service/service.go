package service

import (
	"monoblog/internal/config"
	"monoblog/internal/repository"
)

type Service struct {
	User  UserService
	Post  PostService
	Auth  AuthService
	Stats StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		User:  NewUserService(rep.User, rep.Post, cfg),
		Post:  NewPostService(rep.Post),
		Auth:  NewAuthService(rep.User, cfg),
		Stats: NewStatsService(rep.Stats),
	}
}
