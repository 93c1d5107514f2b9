package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"monoblog/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	UpdateProfilePicture(ctx context.Context, id int64, path string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	DeleteByAuthorID(ctx context.Context, authorID int64) error
}

type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountPosts(ctx context.Context) (int, error)
}

type Repository struct {
	User  UserRepository
	Post  PostRepository
	Stats StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Post:  NewPostRepository(db),
		Stats: NewStatsRepository(db),
	}
}
