package service

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"monoblog/internal/apperrors"
	"monoblog/internal/config"
	"monoblog/internal/models"
	"monoblog/internal/repository"
)

// emailPattern - простая синтаксическая проверка, как в исходном сервисе
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type CreateUserRequest struct {
	Email          string
	Password       string
	Role           models.Role
	Name           *string
	ProfilePicture *string
}

// UpdateUserRequest - частичное обновление: nil означает "поле не менять"
type UpdateUserRequest struct {
	Email          *string
	Password       *string
	Role           *models.Role
	Name           *string
	ProfilePicture *string
}

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ValidatePassword(password, hash string) bool
	UpdateProfilePicture(ctx context.Context, id int64, path string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		postRepo: postRepo,
		cfg:      cfg,
	}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}

	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !req.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("пользователь с email %s: %w", req.Email, apperrors.ErrEmailInUse)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           req.Role,
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if !emailPattern.MatchString(*req.Email) {
			return nil, apperrors.ErrInvalidEmail
		}
		user.Email = *req.Email
	}

	// пароль хешируем заново только если он передан
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperrors.ErrInvalidRole
		}
		user.Role = *req.Role
	}

	if req.Name != nil {
		user.Name = req.Name
	}

	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}

	err = s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	// политика каскадного удаления задаётся конфигом: либо сервис удаляет
	// посты сам, либо срабатывает ON DELETE CASCADE в БД
	if s.cfg.CascadeDeletePosts {
		if err := s.postRepo.DeleteByAuthorID(ctx, id); err != nil {
			return err
		}
	}

	return s.userRepo.Delete(ctx, id)
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) ValidatePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, id int64, path string) (*models.User, error) {
	err := s.userRepo.UpdateProfilePicture(ctx, id, path)
	if err != nil {
		return nil, err
	}

	// предыдущий файл не удаляем - известная утечка, оставлена как есть
	return s.userRepo.GetByID(ctx, id)
}
