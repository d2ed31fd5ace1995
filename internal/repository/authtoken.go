package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"provideo-rentals/internal/model"
)

type AuthTokenRepository interface {
	// Upsert replaces any existing token for the email; one active magic
	// link per customer.
	Upsert(ctx context.Context, token *model.AuthToken) error
	FindValid(ctx context.Context, email, tokenHash string, now time.Time) (*model.AuthToken, error)
	Delete(ctx context.Context, email string) error
}

type authTokenRepoImpl struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &authTokenRepoImpl{db: db}
}

func (r *authTokenRepoImpl) Upsert(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(token).Error
}

func (r *authTokenRepoImpl) FindValid(ctx context.Context, email, tokenHash string, now time.Time) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).
		Where("email = ? AND token_hash = ? AND expires_at > ?", email, tokenHash, now).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepoImpl) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&model.AuthToken{}).Error
}
