package service

import (
	"context"

	"monoblog/internal/apperrors"
	"monoblog/internal/models"
	"monoblog/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, title, content string, authorID int64) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	GetAllPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (p *postService) CreatePost(ctx context.Context, title, content string, authorID int64) (*models.Post, error) {
	if title == "" {
		return nil, apperrors.ErrMissingTitle
	}
	if content == "" {
		return nil, apperrors.ErrMissingContent
	}

	post := &models.Post{
		Title:    title,
		Content:  &content,
		AuthorID: authorID,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	// пустая строка означает "не менять": поведение исходного сервиса,
	// сознательно сохранено
	if title == "" && content == "" {
		return nil, apperrors.ErrNothingToUpdate
	}

	post, err := p.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = &content
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, id int64) error {
	_, err := p.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return p.postRepo.Delete(ctx, id)
}

func (p *postService) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, id)
}

func (p *postService) GetAllPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	// ноль считается отсутствующим ID; реальные ID начинаются с 1
	if authorID == 0 {
		return nil, apperrors.ErrMissingAuthorID
	}

	return p.postRepo.GetByAuthorID(ctx, authorID)
}

func (p *postService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}
