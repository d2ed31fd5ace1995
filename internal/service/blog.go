package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

type BlogService interface {
	Create(ctx context.Context, req *dto.BlogPostRequest) (*model.BlogPost, error)
	Update(ctx context.Context, id string, req *dto.BlogPostRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
	GetBySlug(ctx context.Context, postSlug string) (*model.BlogPost, error)
	ListPublished(ctx context.Context) ([]*model.BlogPost, error)
	ListAll(ctx context.Context) ([]*model.BlogPost, error)
}

type blogServiceImpl struct {
	repo repository.BlogRepository
}

func NewBlogService(repo repository.BlogRepository) BlogService {
	return &blogServiceImpl{repo: repo}
}

func (s *blogServiceImpl) Create(ctx context.Context, req *dto.BlogPostRequest) (*model.BlogPost, error) {
	post := &model.BlogPost{
		ID:         uuid.NewString(),
		Slug:       postSlug(req),
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug %q already in use", ErrValidation, post.Slug)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *blogServiceImpl) Update(ctx context.Context, id string, req *dto.BlogPostRequest) (*model.BlogPost, error) {
	post := &model.BlogPost{
		ID:         id,
		Slug:       postSlug(req),
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	err := s.repo.Update(ctx, post)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *blogServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *blogServiceImpl) GetBySlug(ctx context.Context, postSlug string) (*model.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, postSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *blogServiceImpl) ListPublished(ctx context.Context) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, true)
}

func (s *blogServiceImpl) ListAll(ctx context.Context) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, false)
}

func postSlug(req *dto.BlogPostRequest) string {
	if req.Slug != "" {
		return slug.Make(req.Slug)
	}
	return slug.Make(req.Title)
}
