package repository

import (
	"context"

	"gorm.io/gorm"

	"provideo-rentals/internal/model"
)

type BlogRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	Update(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]*model.BlogPost, error)
}

type blogRepoImpl struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepoImpl{db: db}
}

func (r *blogRepoImpl) Create(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepoImpl) Update(ctx context.Context, post *model.BlogPost) error {
	result := r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"slug":        post.Slug,
			"title":       post.Title,
			"excerpt":     post.Excerpt,
			"content":     post.Content,
			"cover_image": post.CoverImage,
			"published":   post.Published,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *blogRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *blogRepoImpl) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepoImpl) List(ctx context.Context, publishedOnly bool) ([]*model.BlogPost, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var posts []*model.BlogPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
